package testutils

import (
	"context"
	"net/http"

	"github.com/jcarcamo/fyyur-project/pkg/database"
	"github.com/jcarcamo/fyyur-project/pkg/models"
	"github.com/jcarcamo/fyyur-project/pkg/seed"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type handler struct {
	db     *bun.DB
	seeder *seed.Seeder
}

// seedData loads the sample directory.
// POST /test/seed.
func (h *handler) seedData(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.seeder.Load(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusCreated, result)
}

// deleteAllDataResponse counts the deleted rows per table.
type deleteAllDataResponse struct {
	Deleted map[string]int `json:"deleted"`
}

// deleteAllData empties every directory table.
// DELETE /test/data.
func (h *handler) deleteAllData(c echo.Context) error {
	ctx := c.Request().Context()
	resp := deleteAllDataResponse{Deleted: map[string]int{}}

	// children before parents
	tables := []struct {
		name  string
		model interface{}
	}{
		{"shows", (*models.Show)(nil)},
		{"venue_genres", (*models.VenueGenre)(nil)},
		{"artist_genres", (*models.ArtistGenre)(nil)},
		{"genres", (*models.Genre)(nil)},
		{"venues", (*models.Venue)(nil)},
		{"artists", (*models.Artist)(nil)},
	}

	err := database.RunInTx(ctx, h.db, func(ctx context.Context, tx bun.Tx) error {
		for _, table := range tables {
			result, err := tx.NewDelete().
				Model(table.model).
				Where("1=1").
				Exec(ctx)
			if err != nil {
				return errors.Wrapf(err, "failed to delete %s", table.name)
			}
			n, _ := result.RowsAffected()
			resp.Deleted[table.name] = int(n)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}
