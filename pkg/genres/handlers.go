package genres

import (
	"net/http"
	"strconv"

	"github.com/jcarcamo/fyyur-project/pkg/errcodes"
	"github.com/jcarcamo/fyyur-project/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	genreService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListGenresQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	genres, err := h.genreService.ListGenres(ctx, ListGenresOptions{Search: params.Search})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"genres": genres}))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Genre")
	}

	genre, err := h.genreService.RetrieveGenre(ctx, RetrieveGenreOptions{ID: &id})
	if err != nil {
		return errors.WithStack(err)
	}

	venues, artists, err := h.genreService.ListMembers(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	response := struct {
		*models.Genre
		Venues  []Member `json:"venues"`
		Artists []Member `json:"artists"`
	}{genre, venues, artists}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}
