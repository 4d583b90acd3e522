package genres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jcarcamo/fyyur-project/pkg/errcodes"
	"github.com/jcarcamo/fyyur-project/pkg/models"
	"github.com/jcarcamo/fyyur-project/pkg/search"
	"github.com/jcarcamo/fyyur-project/pkg/sortname"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RetrieveGenreOptions struct {
	ID   *int
	Name *string
}

type ListGenresOptions struct {
	Search *string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) RetrieveGenre(ctx context.Context, opts RetrieveGenreOptions) (*models.Genre, error) {
	return svc.retrieveGenre(ctx, svc.db, opts)
}

func (svc *Service) retrieveGenre(ctx context.Context, idb bun.IDB, opts RetrieveGenreOptions) (*models.Genre, error) {
	genre := &models.Genre{}

	q := idb.NewSelect().
		Model(genre).
		ColumnExpr("g.*").
		ColumnExpr("(SELECT COUNT(*) FROM venue_genres AS vg WHERE vg.genre_id = g.id) AS venue_count").
		ColumnExpr("(SELECT COUNT(*) FROM artist_genres AS ag WHERE ag.genre_id = g.id) AS artist_count")

	if opts.ID != nil {
		q = q.Where("g.id = ?", *opts.ID)
	}
	if opts.Name != nil {
		q = q.Where("g.search_name = ?", sortname.Fold(strings.TrimSpace(*opts.Name)))
	}

	err := q.Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Genre")
		}
		return nil, errors.WithStack(err)
	}

	return genre, nil
}

// FindOrCreateGenre returns the genre whose name matches, ignoring case, or
// creates it. It runs on idb so it joins the caller's transaction.
func (svc *Service) FindOrCreateGenre(ctx context.Context, idb bun.IDB, name string) (*models.Genre, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errcodes.ValidationError("Genre name can't be empty.")
	}

	genre, err := svc.retrieveGenre(ctx, idb, RetrieveGenreOptions{Name: &name})
	if err == nil {
		return genre, nil
	}
	if !errors.Is(err, errcodes.NotFound("Genre")) {
		return nil, err
	}

	genre = &models.Genre{
		CreatedAt: time.Now().UTC(),
		Name:      name,
	}
	_, err = idb.NewInsert().
		Model(genre).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return genre, nil
}

// DedupeNames trims names and drops blanks and case-insensitive repeats,
// keeping the first spelling and the submitted order.
func DedupeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		key := sortname.Fold(name)
		if name == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}

// SetVenueGenres replaces the venue's genre list, keeping the given order.
func (svc *Service) SetVenueGenres(ctx context.Context, tx bun.IDB, venueID int, names []string) error {
	_, err := tx.NewDelete().
		Model((*models.VenueGenre)(nil)).
		Where("venue_id = ?", venueID).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	links := []*models.VenueGenre{}
	for i, name := range DedupeNames(names) {
		genre, err := svc.FindOrCreateGenre(ctx, tx, name)
		if err != nil {
			return err
		}
		links = append(links, &models.VenueGenre{VenueID: venueID, GenreID: genre.ID, SortOrder: i + 1})
	}
	if len(links) == 0 {
		return nil
	}
	_, err = tx.NewInsert().Model(&links).Exec(ctx)
	return errors.WithStack(err)
}

// SetArtistGenres replaces the artist's genre list, keeping the given order.
func (svc *Service) SetArtistGenres(ctx context.Context, tx bun.IDB, artistID int, names []string) error {
	_, err := tx.NewDelete().
		Model((*models.ArtistGenre)(nil)).
		Where("artist_id = ?", artistID).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	links := []*models.ArtistGenre{}
	for i, name := range DedupeNames(names) {
		genre, err := svc.FindOrCreateGenre(ctx, tx, name)
		if err != nil {
			return err
		}
		links = append(links, &models.ArtistGenre{ArtistID: artistID, GenreID: genre.ID, SortOrder: i + 1})
	}
	if len(links) == 0 {
		return nil
	}
	_, err = tx.NewInsert().Model(&links).Exec(ctx)
	return errors.WithStack(err)
}

// ListGenres lists genres by name with their venue and artist counts.
func (svc *Service) ListGenres(ctx context.Context, opts ListGenresOptions) ([]*models.Genre, error) {
	genres := []*models.Genre{}

	q := svc.db.NewSelect().
		Model(&genres).
		ColumnExpr("g.*").
		ColumnExpr("(SELECT COUNT(*) FROM venue_genres AS vg WHERE vg.genre_id = g.id) AS venue_count").
		ColumnExpr("(SELECT COUNT(*) FROM artist_genres AS ag WHERE ag.genre_id = g.id) AS artist_count").
		OrderExpr("g.name COLLATE NOCASE ASC")
	if opts.Search != nil {
		q = search.WhereContains(q, "g.search_name", *opts.Search)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, errors.WithStack(err)
	}
	return genres, nil
}

// Member is a venue or artist carrying a genre.
type Member struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ListMembers returns the venues and artists tagged with the genre, each
// ordered by sort name.
func (svc *Service) ListMembers(ctx context.Context, genreID int) (venues []Member, artists []Member, err error) {
	venues = []Member{}
	err = svc.db.NewSelect().
		TableExpr("venues AS v").
		ColumnExpr("v.id, v.name").
		Join("JOIN venue_genres AS vg ON vg.venue_id = v.id").
		Where("vg.genre_id = ?", genreID).
		OrderExpr("v.sort_name COLLATE NOCASE ASC, v.id ASC").
		Scan(ctx, &venues)
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}

	artists = []Member{}
	err = svc.db.NewSelect().
		TableExpr("artists AS a").
		ColumnExpr("a.id, a.name").
		Join("JOIN artist_genres AS ag ON ag.artist_id = a.id").
		Where("ag.genre_id = ?", genreID).
		OrderExpr("a.sort_name COLLATE NOCASE ASC, a.id ASC").
		Scan(ctx, &artists)
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}
	return venues, artists, nil
}

// CleanupOrphanedGenres deletes genres no venue or artist uses.
func (svc *Service) CleanupOrphanedGenres(ctx context.Context, tx bun.IDB) (int, error) {
	result, err := tx.NewDelete().
		Model((*models.Genre)(nil)).
		Where("id NOT IN (SELECT genre_id FROM venue_genres)").
		Where("id NOT IN (SELECT genre_id FROM artist_genres)").
		Exec(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	n, _ := result.RowsAffected()
	return int(n), nil
}
