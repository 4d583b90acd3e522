package artists

import (
	"context"
	"testing"
	"time"

	"github.com/jcarcamo/fyyur-project/pkg/config"
	"github.com/jcarcamo/fyyur-project/pkg/database"
	"github.com/jcarcamo/fyyur-project/pkg/errcodes"
	"github.com/jcarcamo/fyyur-project/pkg/genres"
	"github.com/jcarcamo/fyyur-project/pkg/migrations"
	"github.com/jcarcamo/fyyur-project/pkg/models"
	"github.com/jcarcamo/fyyur-project/pkg/search"
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

func newTestService(t *testing.T) (*Service, *bun.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewService(db, genres.NewService(db), search.NewService(db, 5))
	svc.now = func() time.Time { return testNow }
	return svc, db
}

func gunsNPetalsForm() *ArtistForm {
	return &ArtistForm{
		Name:               "Guns N Petals",
		City:               "San Francisco",
		State:              "CA",
		Phone:              "326-123-5000",
		ImageLink:          "https://images.unsplash.com/photo-1549213783-8284d0336c4f",
		FacebookLink:       "https://www.facebook.com/GunsNPetals",
		Website:            "https://www.gunsnpetalsband.com",
		Genres:             []string{"Rock n Roll"},
		SeekingVenue:       true,
		SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
	}
}

func createVenue(t *testing.T, db *bun.DB, name string) *models.Venue {
	t.Helper()
	venue := &models.Venue{Name: name, SortName: name, City: "San Francisco", State: "CA", Address: "1015 Folsom Street"}
	_, err := db.NewInsert().Model(venue).Exec(context.Background())
	require.NoError(t, err)
	return venue
}

func createShow(t *testing.T, db *bun.DB, artistID, venueID int, start time.Time) {
	t.Helper()
	_, err := db.NewInsert().Model(&models.Show{ArtistID: artistID, VenueID: venueID, StartTime: start}).Exec(context.Background())
	require.NoError(t, err)
}

func TestCreateArtist_RoundTrip(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()

	form := gunsNPetalsForm()
	artist, err := svc.CreateArtist(ctx, form)
	require.NoError(t, err)

	fetched, err := svc.RetrieveArtist(ctx, RetrieveArtistOptions{ID: &artist.ID})
	require.NoError(t, err)
	assert.Equal(t, form, FormFromArtist(fetched))
}

func TestCreateArtist_StoresSeekingDescriptionAsSubmitted(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()

	form := gunsNPetalsForm()
	form.SeekingDescription = "Bands <no covers> please & R&amp;B too"
	artist, err := svc.CreateArtist(ctx, form)
	require.NoError(t, err)

	fetched, err := svc.RetrieveArtist(ctx, RetrieveArtistOptions{ID: &artist.ID})
	require.NoError(t, err)
	assert.Equal(t, form, FormFromArtist(fetched))
}

func TestListArtists_OrderedBySortName(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()

	names := []string{"The Wild Sax Band", "Matt Quevedo", "Guns N Petals"}
	ids := map[string]int{}
	for _, name := range names {
		form := gunsNPetalsForm()
		form.Name = name
		artist, err := svc.CreateArtist(ctx, form)
		require.NoError(t, err)
		ids[name] = artist.ID
	}

	artists, err := svc.ListArtists(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Summary{
		{ID: ids["Guns N Petals"], Name: "Guns N Petals"},
		{ID: ids["Matt Quevedo"], Name: "Matt Quevedo"},
		{ID: ids["The Wild Sax Band"], Name: "The Wild Sax Band"},
	}, artists)
}

func TestSearchArtists(t *testing.T) {
	t.Parallel()
	svc, db := newTestService(t)
	ctx := context.Background()

	guns, err := svc.CreateArtist(ctx, gunsNPetalsForm())
	require.NoError(t, err)
	form := gunsNPetalsForm()
	form.Name = "The Wild Sax Band"
	sax, err := svc.CreateArtist(ctx, form)
	require.NoError(t, err)

	venue := createVenue(t, db, "The Musical Hop")
	createShow(t, db, sax.ID, venue.ID, testNow.Add(time.Hour))

	results, err := svc.SearchArtists(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, 2, results.Count)
	assert.Equal(t, []search.Result{
		{ID: guns.ID, Name: "Guns N Petals"},
		{ID: sax.ID, Name: "The Wild Sax Band", NumUpcomingShows: 1},
	}, results.Data)

	results, err = svc.SearchArtists(ctx, "band")
	require.NoError(t, err)
	assert.Equal(t, 1, results.Count)
	assert.Equal(t, sax.ID, results.Data[0].ID)
}

func TestSearchArtists_FoldsNonASCIILetters(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()

	form := gunsNPetalsForm()
	form.Name = "Björk Ødegård"
	artist, err := svc.CreateArtist(ctx, form)
	require.NoError(t, err)

	for _, term := range []string{"björk", "BJÖRK", "ødegård", "ØDEGÅRD"} {
		results, err := svc.SearchArtists(ctx, term)
		require.NoError(t, err)
		require.Equal(t, 1, results.Count, term)
		assert.Equal(t, artist.ID, results.Data[0].ID, term)
	}

	// renaming refreshes the folded name
	form.Name = "Sigur Rós"
	_, err = svc.UpdateArtist(ctx, artist.ID, form)
	require.NoError(t, err)

	results, err := svc.SearchArtists(ctx, "björk")
	require.NoError(t, err)
	assert.Equal(t, 0, results.Count)
	results, err = svc.SearchArtists(ctx, "RÓS")
	require.NoError(t, err)
	assert.Equal(t, 1, results.Count)
}

func TestRetrieveArtistDetail(t *testing.T) {
	t.Parallel()
	svc, db := newTestService(t)
	ctx := context.Background()

	artist, err := svc.CreateArtist(ctx, gunsNPetalsForm())
	require.NoError(t, err)
	venue := createVenue(t, db, "The Musical Hop")
	createShow(t, db, artist.ID, venue.ID, testNow.Add(-24*time.Hour))
	createShow(t, db, artist.ID, venue.ID, testNow)
	createShow(t, db, artist.ID, venue.ID, testNow.Add(24*time.Hour))

	detail, err := svc.RetrieveArtistDetail(ctx, artist.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rock n Roll"}, detail.Genres)
	assert.Equal(t, 1, detail.PastShowsCount)
	assert.Equal(t, 2, detail.UpcomingShowsCount)
	assert.Equal(t, "The Musical Hop", detail.PastShows[0].VenueName)
	assert.True(t, testNow.Equal(detail.UpcomingShows[0].StartTime))

	_, err = svc.RetrieveArtistDetail(ctx, artist.ID+100)
	assert.Equal(t, errcodes.CodeNotFound, errcodes.CodeOf(err))
}

func TestUpdateArtist(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()

	artist, err := svc.CreateArtist(ctx, gunsNPetalsForm())
	require.NoError(t, err)

	form := gunsNPetalsForm()
	form.City = "Oakland"
	form.Genres = []string{"Rock n Roll", "Blues"}
	form.SeekingVenue = false
	form.SeekingDescription = ""

	updated, err := svc.UpdateArtist(ctx, artist.ID, form)
	require.NoError(t, err)
	assert.Equal(t, form, FormFromArtist(updated))

	_, err = svc.UpdateArtist(ctx, artist.ID+100, form)
	assert.Equal(t, errcodes.CodeNotFound, errcodes.CodeOf(err))
}

func TestDeleteArtist(t *testing.T) {
	t.Parallel()
	svc, db := newTestService(t)
	ctx := context.Background()

	artist, err := svc.CreateArtist(ctx, gunsNPetalsForm())
	require.NoError(t, err)
	venue := createVenue(t, db, "The Musical Hop")
	createShow(t, db, artist.ID, venue.ID, testNow.Add(-time.Hour))
	createShow(t, db, artist.ID, venue.ID, testNow.Add(time.Hour))

	require.NoError(t, svc.DeleteArtist(ctx, artist.ID))

	n, err := db.NewSelect().Model((*models.Show)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	n, err = db.NewSelect().Model((*models.Genre)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	assert.Equal(t, errcodes.CodeNotFound, errcodes.CodeOf(svc.EnsureArtistExists(ctx, artist.ID)))
	assert.Equal(t, errcodes.CodeNotFound, errcodes.CodeOf(svc.DeleteArtist(ctx, artist.ID)))

	// the venue is untouched
	exists, err := db.NewSelect().Model((*models.Venue)(nil)).Where("v.id = ?", venue.ID).Exists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)
}
