package artists

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
	artistService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	artists, err := h.artistService.ListArtists(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"artists": artists}))
}

func (h *handler) search(c echo.Context) error {
	ctx := c.Request().Context()

	params := search.SearchQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	results, err := h.artistService.SearchArtists(ctx, params.SearchTerm)
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
		return errcodes.NotFound("Artist")
	}

	detail, err := h.artistService.RetrieveArtistDetail(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, detail))
}

func (h *handler) createForm(c echo.Context) error {
	return errors.WithStack(c.JSON(http.StatusOK, FormResponse{
		Form:    &ArtistForm{Genres: []string{}},
		Choices: forms.DefaultChoices(),
	}))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := ArtistForm{}
	if err := c.Bind(&params); err != nil {
		return errcodes.WithForm(errors.WithStack(err), params)
	}

	artist, err := h.artistService.CreateArtist(ctx, &params)
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/artists/%d", artist.ID))
	return errors.WithStack(c.JSON(http.StatusCreated, MutationResponse{
		ID:      artist.ID,
		Message: fmt.Sprintf("Artist %s was successfully listed!", artist.Name),
	}))
}

func (h *handler) editForm(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Artist")
	}

	artist, err := h.artistService.RetrieveArtist(ctx, RetrieveArtistOptions{ID: &id})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, FormResponse{
		ID:      artist.ID,
		Form:    FormFromArtist(artist),
		Choices: forms.DefaultChoices(),
	}))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Artist")
	}

	if err := h.artistService.EnsureArtistExists(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	params := ArtistForm{}
	if err := c.Bind(&params); err != nil {
		return errcodes.WithForm(errors.WithStack(err), params)
	}

	artist, err := h.artistService.UpdateArtist(ctx, id, &params)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, MutationResponse{
		ID:      artist.ID,
		Message: fmt.Sprintf("Artist %s was successfully updated!", artist.Name),
	}))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Artist")
	}

	if err := h.artistService.DeleteArtist(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]string{"status": "success"}))
}
