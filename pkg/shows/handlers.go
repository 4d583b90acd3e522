package shows

import (
	"net/http"

	"github.com/jcarcamo/fyyur-project/pkg/errcodes"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	showService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	listings, err := h.showService.ListUpcomingShows(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"shows": listings}))
}

func (h *handler) createForm(c echo.Context) error {
	ctx := c.Request().Context()

	artistOptions, venueOptions, err := h.showService.FormOptions(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, FormResponse{
		Form:    h.showService.DefaultForm(),
		Artists: artistOptions,
		Venues:  venueOptions,
	}))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := ShowForm{}
	if err := c.Bind(&params); err != nil {
		return errcodes.WithForm(errors.WithStack(err), params)
	}

	show, err := h.showService.CreateShow(ctx, &params)
	if err != nil {
		return errcodes.WithForm(errors.WithStack(err), params)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, MutationResponse{
		ID:      show.ID,
		Message: "Show was successfully listed!",
	}))
}
