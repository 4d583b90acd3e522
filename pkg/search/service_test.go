package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jcarcamo/fyyur-project/pkg/config"
	"github.com/jcarcamo/fyyur-project/pkg/database"
	"github.com/jcarcamo/fyyur-project/pkg/migrations"
	"github.com/jcarcamo/fyyur-project/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

var testNow = time.Date(2035, time.April, 1, 20, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	db, err := database.New(config.NewForTest())
	require.NoError(t, err)

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func insertVenue(t *testing.T, db *bun.DB, name, sortName string) int {
	t.Helper()
	v := &models.Venue{Name: name, SortName: sortName, City: "San Francisco", State: "CA", Address: "1 Main St"}
	_, err := db.NewInsert().Model(v).Exec(context.Background())
	require.NoError(t, err)
	return v.ID
}

func insertArtist(t *testing.T, db *bun.DB, name string) int {
	t.Helper()
	a := &models.Artist{Name: name, SortName: name, City: "San Francisco", State: "CA"}
	_, err := db.NewInsert().Model(a).Exec(context.Background())
	require.NoError(t, err)
	return a.ID
}

func TestSearchVenues(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db, 5)
	ctx := context.Background()

	hop := insertVenue(t, db, "The Musical Hop", "Musical Hop, The")
	park := insertVenue(t, db, "Park Square Live Music & Coffee", "Park Square Live Music & Coffee")
	insertVenue(t, db, "The Dueling Pianos Bar", "Dueling Pianos Bar, The")
	odd := insertVenue(t, db, "100% Fun_Club", "100% Fun_Club")

	artist := insertArtist(t, db, "Guns N Petals")
	_, err := db.NewInsert().Model(&[]models.Show{
		{ArtistID: artist, VenueID: park, StartTime: testNow.Add(time.Hour)},
		{ArtistID: artist, VenueID: park, StartTime: testNow.Add(-time.Hour)},
	}).Exec(ctx)
	require.NoError(t, err)

	t.Run("matches substrings ignoring case", func(tt *testing.T) {
		results, err := svc.SearchVenues(ctx, "MUSIC", testNow, 0)
		require.NoError(tt, err)
		assert.Equal(tt, &Results{Count: 2, Data: []Result{
			{ID: hop, Name: "The Musical Hop"},
			{ID: park, Name: "Park Square Live Music & Coffee", NumUpcomingShows: 1},
		}}, results)
	})

	t.Run("treats wildcards literally", func(tt *testing.T) {
		results, err := svc.SearchVenues(ctx, "0%", testNow, 0)
		require.NoError(tt, err)
		require.Equal(tt, 1, results.Count)
		assert.Equal(tt, odd, results.Data[0].ID)

		results, err = svc.SearchVenues(ctx, "n_c", testNow, 0)
		require.NoError(tt, err)
		assert.Equal(tt, 1, results.Count)

		results, err = svc.SearchVenues(ctx, "u_i", testNow, 0)
		require.NoError(tt, err)
		assert.Equal(tt, 0, results.Count)
	})

	t.Run("empty term matches everything", func(tt *testing.T) {
		results, err := svc.SearchVenues(ctx, "  ", testNow, 0)
		require.NoError(tt, err)
		assert.Equal(tt, 4, results.Count)
	})

	t.Run("limit keeps the total count", func(tt *testing.T) {
		results, err := svc.SearchVenues(ctx, "", testNow, 2)
		require.NoError(tt, err)
		assert.Equal(tt, 4, results.Count)
		assert.Len(tt, results.Data, 2)
	})
}

func TestSearchVenues_NonASCII(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db, 5)
	ctx := context.Background()

	eclat := insertVenue(t, db, "Éclat Ñandú Hall", "Éclat Ñandú Hall")
	insertVenue(t, db, "Straße Club", "Straße Club")

	for _, term := range []string{"ñandú", "ÉCLAT", "Ñandú Hall"} {
		results, err := svc.SearchVenues(ctx, term, testNow, 0)
		require.NoError(t, err)
		require.Equal(t, 1, results.Count, term)
		assert.Equal(t, eclat, results.Data[0].ID, term)
	}

	results, err := svc.SearchVenues(ctx, "STRASSE", testNow, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, results.Count)
}

func TestGlobalSearch(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db, 1)
	svc.now = func() time.Time { return testNow }

	insertVenue(t, db, "The Musical Hop", "Musical Hop, The")
	insertVenue(t, db, "Park Square Live Music & Coffee", "Park Square Live Music & Coffee")
	sax := insertArtist(t, db, "The Wild Sax Band")

	result, err := svc.GlobalSearch(context.Background(), " a ")
	require.NoError(t, err)
	assert.Equal(t, "a", result.SearchTerm)
	assert.Equal(t, 2, result.Venues.Count)
	assert.Len(t, result.Venues.Data, 1)
	assert.Equal(t, Results{Count: 1, Data: []Result{{ID: sax, Name: "The Wild Sax Band"}}}, result.Artists)
}

func TestGlobalSearchHandler(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db, 5)
	insertArtist(t, db, "Matt Quevedo")

	e := echo.New()
	RegisterRoutesWithGroup(e.Group("/search"), svc)

	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/search?search_term=matt", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	resp := GlobalSearchResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Venues.Count)
	assert.Equal(t, []Result{}, resp.Venues.Data)
	assert.Equal(t, 1, resp.Artists.Count)
}
