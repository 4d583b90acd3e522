package artists

import (
	"context"
	"database/sql"
	"time"

	"github.com/jcarcamo/fyyur-project/pkg/database"
	"github.com/jcarcamo/fyyur-project/pkg/errcodes"
	"github.com/jcarcamo/fyyur-project/pkg/genres"
	"github.com/jcarcamo/fyyur-project/pkg/models"
	"github.com/jcarcamo/fyyur-project/pkg/search"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
)

type RetrieveArtistOptions struct {
	ID *int
}

type Service struct {
	db            *bun.DB
	genreService  *genres.Service
	searchService *search.Service
	now           func() time.Time
}

func NewService(db *bun.DB, genreService *genres.Service, searchService *search.Service) *Service {
	return &Service{
		db:            db,
		genreService:  genreService,
		searchService: searchService,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// ListArtists returns every artist as an id/name pair ordered by sort name.
func (svc *Service) ListArtists(ctx context.Context) ([]Summary, error) {
	artists := []Summary{}
	err := svc.db.NewSelect().
		TableExpr("artists AS a").
		ColumnExpr("a.id, a.name").
		OrderExpr("a.sort_name COLLATE NOCASE ASC, a.id ASC").
		Scan(ctx, &artists)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return artists, nil
}

func (svc *Service) SearchArtists(ctx context.Context, term string) (*search.Results, error) {
	return svc.searchService.SearchArtists(ctx, term, svc.now(), 0)
}

func (svc *Service) RetrieveArtist(ctx context.Context, opts RetrieveArtistOptions) (*models.Artist, error) {
	return svc.retrieveArtist(ctx, svc.db, opts)
}

func (svc *Service) retrieveArtist(ctx context.Context, idb bun.IDB, opts RetrieveArtistOptions) (*models.Artist, error) {
	artist := &models.Artist{}

	q := idb.NewSelect().
		Model(artist).
		Relation("ArtistGenres", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Order("ag.sort_order ASC")
		}).
		Relation("ArtistGenres.Genre")

	if opts.ID != nil {
		q = q.Where("a.id = ?", *opts.ID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Artist")
		}
		return nil, errors.WithStack(err)
	}
	return artist, nil
}

func (svc *Service) EnsureArtistExists(ctx context.Context, id int) error {
	return EnsureExists(ctx, svc.db, id)
}

// EnsureExists checks for the artist on idb, so it can run inside another
// service's transaction.
func EnsureExists(ctx context.Context, idb bun.IDB, id int) error {
	exists, err := idb.NewSelect().
		Model((*models.Artist)(nil)).
		Where("a.id = ?", id).
		Exists(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if !exists {
		return errcodes.NotFound("Artist")
	}
	return nil
}

// RetrieveArtistDetail loads the artist page. A show starting exactly now
// is upcoming.
func (svc *Service) RetrieveArtistDetail(ctx context.Context, id int) (*Detail, error) {
	now := svc.now()
	var artist *models.Artist
	shows := []Show{}

	err := database.RunRead(ctx, svc.db, func(ctx context.Context, tx bun.Tx) error {
		var err error
		artist, err = svc.retrieveArtist(ctx, tx, RetrieveArtistOptions{ID: &id})
		if err != nil {
			return err
		}
		err = tx.NewSelect().
			TableExpr("shows AS s").
			ColumnExpr("s.venue_id, v.name AS venue_name, v.image_link AS venue_image_link, s.start_time").
			Join("JOIN venues AS v ON v.id = s.venue_id").
			Where("s.artist_id = ?", id).
			OrderExpr("s.start_time ASC, s.id ASC").
			Scan(ctx, &shows)
		return errors.WithStack(err)
	})
	if err != nil {
		return nil, err
	}

	detail := &Detail{
		ID:                 artist.ID,
		Name:               artist.Name,
		Genres:             artist.GenreNames(),
		City:               artist.City,
		State:              artist.State,
		Phone:              artist.Phone,
		Website:            artist.Website,
		FacebookLink:       artist.FacebookLink,
		SeekingVenue:       artist.SeekingVenue,
		SeekingDescription: artist.SeekingDescription,
		ImageLink:          artist.ImageLink,
		PastShows:          []Show{},
		UpcomingShows:      []Show{},
	}
	for _, show := range shows {
		if show.StartTime.Before(now) {
			detail.PastShows = append(detail.PastShows, show)
		} else {
			detail.UpcomingShows = append(detail.UpcomingShows, show)
		}
	}
	detail.PastShowsCount = len(detail.PastShows)
	detail.UpcomingShowsCount = len(detail.UpcomingShows)
	return detail, nil
}

func (svc *Service) CreateArtist(ctx context.Context, form *ArtistForm) (*models.Artist, error) {
	now := svc.now()
	artist := &models.Artist{CreatedAt: now}
	form.apply(artist, now)

	err := database.RunInTx(ctx, svc.db, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().
			Model(artist).
			Returning("*").
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		return svc.genreService.SetArtistGenres(ctx, tx, artist.ID, form.Genres)
	})
	if err != nil {
		return nil, errcodes.PersistenceFailure("Artist "+form.Name, "listed", err)
	}

	logger.FromContext(ctx).Info("artist created", logger.Data{"artist_id": artist.ID})
	return artist, nil
}

func (svc *Service) UpdateArtist(ctx context.Context, id int, form *ArtistForm) (*models.Artist, error) {
	now := svc.now()
	artist := &models.Artist{ID: id}
	form.apply(artist, now)

	err := database.RunInTx(ctx, svc.db, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model(artist).
			Column("name", "sort_name", "search_name", "city", "state", "phone", "image_link",
				"facebook_link", "website", "seeking_venue", "seeking_description", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return errcodes.NotFound("Artist")
		}
		if err := svc.genreService.SetArtistGenres(ctx, tx, id, form.Genres); err != nil {
			return err
		}
		_, err = svc.genreService.CleanupOrphanedGenres(ctx, tx)
		return err
	})
	if err != nil {
		if errcodes.CodeOf(err) == errcodes.CodeNotFound {
			return nil, err
		}
		return nil, errcodes.PersistenceFailure("Artist "+form.Name, "updated", err)
	}

	return svc.RetrieveArtist(ctx, RetrieveArtistOptions{ID: &id})
}

// DeleteArtist removes the artist, its shows and its genre links.
func (svc *Service) DeleteArtist(ctx context.Context, id int) error {
	err := database.RunInTx(ctx, svc.db, func(ctx context.Context, tx bun.Tx) error {
		if err := EnsureExists(ctx, tx, id); err != nil {
			return err
		}
		_, err := tx.NewDelete().
			Model((*models.Show)(nil)).
			Where("artist_id = ?", id).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = tx.NewDelete().
			Model((*models.ArtistGenre)(nil)).
			Where("artist_id = ?", id).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = tx.NewDelete().
			Model((*models.Artist)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = svc.genreService.CleanupOrphanedGenres(ctx, tx)
		return err
	})
	if err != nil {
		if errcodes.CodeOf(err) == errcodes.CodeNotFound {
			return err
		}
		return errcodes.Unprocessable("Artist", err)
	}
	return nil
}
