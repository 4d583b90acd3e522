package testutils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jcarcamo/fyyur-project/pkg/artists"
	"github.com/jcarcamo/fyyur-project/pkg/config"
	"github.com/jcarcamo/fyyur-project/pkg/database"
	"github.com/jcarcamo/fyyur-project/pkg/errcodes"
	"github.com/jcarcamo/fyyur-project/pkg/genres"
	"github.com/jcarcamo/fyyur-project/pkg/migrations"
	"github.com/jcarcamo/fyyur-project/pkg/models"
	"github.com/jcarcamo/fyyur-project/pkg/search"
	"github.com/jcarcamo/fyyur-project/pkg/seed"
	"github.com/jcarcamo/fyyur-project/pkg/shows"
	"github.com/jcarcamo/fyyur-project/pkg/venues"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedAndReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db, err := database.New(config.NewForTest())
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})
	_, err = migrations.BringUpToDate(ctx, db)
	require.NoError(t, err)

	genreService := genres.NewService(db)
	searchService := search.NewService(db, 5)
	venueService := venues.NewService(db, genreService, searchService)
	artistService := artists.NewService(db, genreService, searchService)
	showService := shows.NewService(db, artistService, venueService)

	e := echo.New()
	e.HTTPErrorHandler = errcodes.NewHandler().Handle
	RegisterRoutes(e, db, seed.New(db, venueService, artistService, showService))

	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/test/seed", nil))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.JSONEq(t, `{"venues":3,"artists":3,"shows":5}`, rr.Body.String())

	rr = httptest.NewRecorder()
	e.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/test/seed", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = httptest.NewRecorder()
	e.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/test/data", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"shows":5`)
	assert.Contains(t, rr.Body.String(), `"venues":3`)

	n, err := db.NewSelect().Model((*models.Genre)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
