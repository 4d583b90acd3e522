package venues

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/jcarcamo/fyyur-project/pkg/errcodes"
	"github.com/jcarcamo/fyyur-project/pkg/forms"
	"github.com/jcarcamo/fyyur-project/pkg/search"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	venueService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	areas, err := h.venueService.ListVenuesByLocation(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"areas": areas}))
}

func (h *handler) search(c echo.Context) error {
	ctx := c.Request().Context()

	params := search.SearchQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	results, err := h.venueService.SearchVenues(ctx, params.SearchTerm)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, search.SearchResponse{
		SearchTerm: params.SearchTerm,
		Results:    results,
	}))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Venue")
	}

	detail, err := h.venueService.RetrieveVenueDetail(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, detail))
}

func (h *handler) createForm(c echo.Context) error {
	return errors.WithStack(c.JSON(http.StatusOK, FormResponse{
		Form:    &VenueForm{Genres: []string{}},
		Choices: forms.DefaultChoices(),
	}))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := VenueForm{}
	if err := c.Bind(&params); err != nil {
		return errcodes.WithForm(errors.WithStack(err), params)
	}

	venue, err := h.venueService.CreateVenue(ctx, &params)
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/venues/%d", venue.ID))
	return errors.WithStack(c.JSON(http.StatusCreated, MutationResponse{
		ID:      venue.ID,
		Message: fmt.Sprintf("Venue %s was successfully listed!", venue.Name),
	}))
}

func (h *handler) editForm(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Venue")
	}

	venue, err := h.venueService.RetrieveVenue(ctx, RetrieveVenueOptions{ID: &id})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, FormResponse{
		ID:      venue.ID,
		Form:    FormFromVenue(venue),
		Choices: forms.DefaultChoices(),
	}))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Venue")
	}

	if err := h.venueService.EnsureVenueExists(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	params := VenueForm{}
	if err := c.Bind(&params); err != nil {
		return errcodes.WithForm(errors.WithStack(err), params)
	}

	venue, err := h.venueService.UpdateVenue(ctx, id, &params)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, MutationResponse{
		ID:      venue.ID,
		Message: fmt.Sprintf("Venue %s was successfully updated!", venue.Name),
	}))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Venue")
	}

	if err := h.venueService.DeleteVenue(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]string{"status": "success"}))
}
