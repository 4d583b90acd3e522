package venues

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

type RetrieveVenueOptions struct {
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

type locationRow struct {
	ID               int
	Name             string
	City             string
	State            string
	NumUpcomingShows int
}

// ListVenuesByLocation groups venues by (state, city). Areas are ordered by
// state then city and venues inside an area by sort name.
// NumUpcomingShows counts shows strictly after now.
func (svc *Service) ListVenuesByLocation(ctx context.Context) ([]Area, error) {
	now := svc.now()
	rows := []locationRow{}

	err := svc.db.NewSelect().
		TableExpr("venues AS v").
		ColumnExpr("v.id, v.name, v.city, v.state").
		ColumnExpr("(SELECT COUNT(*) FROM shows AS s WHERE s.venue_id = v.id AND s.start_time > ?) AS num_upcoming_shows", now).
		OrderExpr("v.state ASC, v.city ASC, v.sort_name COLLATE NOCASE ASC, v.id ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	areas := []Area{}
	for _, row := range rows {
		if n := len(areas); n == 0 || areas[n-1].State != row.State || areas[n-1].City != row.City {
			areas = append(areas, Area{City: row.City, State: row.State, Venues: []Summary{}})
		}
		area := &areas[len(areas)-1]
		area.Venues = append(area.Venues, Summary{ID: row.ID, Name: row.Name, NumUpcomingShows: row.NumUpcomingShows})
	}
	return areas, nil
}

// SearchVenues matches term against venue names, ignoring case. An empty
// term matches every venue.
func (svc *Service) SearchVenues(ctx context.Context, term string) (*search.Results, error) {
	return svc.searchService.SearchVenues(ctx, term, svc.now(), 0)
}

func (svc *Service) RetrieveVenue(ctx context.Context, opts RetrieveVenueOptions) (*models.Venue, error) {
	return svc.retrieveVenue(ctx, svc.db, opts)
}

func (svc *Service) retrieveVenue(ctx context.Context, idb bun.IDB, opts RetrieveVenueOptions) (*models.Venue, error) {
	venue := &models.Venue{}

	q := idb.NewSelect().
		Model(venue).
		Relation("VenueGenres", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Order("vg.sort_order ASC")
		}).
		Relation("VenueGenres.Genre")

	if opts.ID != nil {
		q = q.Where("v.id = ?", *opts.ID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Venue")
		}
		return nil, errors.WithStack(err)
	}
	return venue, nil
}

// EnsureVenueExists returns a NotFound error when no venue has the id.
func (svc *Service) EnsureVenueExists(ctx context.Context, id int) error {
	return EnsureExists(ctx, svc.db, id)
}

// EnsureExists is EnsureVenueExists on idb, for use inside a transaction.
func EnsureExists(ctx context.Context, idb bun.IDB, id int) error {
	exists, err := idb.NewSelect().
		Model((*models.Venue)(nil)).
		Where("v.id = ?", id).
		Exists(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if !exists {
		return errcodes.NotFound("Venue")
	}
	return nil
}

// RetrieveVenueDetail loads the venue page. Shows before now are past and
// the rest, including one starting exactly now, are upcoming. Both lists are
// ordered by start time.
func (svc *Service) RetrieveVenueDetail(ctx context.Context, id int) (*Detail, error) {
	now := svc.now()
	var venue *models.Venue
	shows := []Show{}

	err := database.RunRead(ctx, svc.db, func(ctx context.Context, tx bun.Tx) error {
		var err error
		venue, err = svc.retrieveVenue(ctx, tx, RetrieveVenueOptions{ID: &id})
		if err != nil {
			return err
		}
		err = tx.NewSelect().
			TableExpr("shows AS s").
			ColumnExpr("s.artist_id, a.name AS artist_name, a.image_link AS artist_image_link, s.start_time").
			Join("JOIN artists AS a ON a.id = s.artist_id").
			Where("s.venue_id = ?", id).
			OrderExpr("s.start_time ASC, s.id ASC").
			Scan(ctx, &shows)
		return errors.WithStack(err)
	})
	if err != nil {
		return nil, err
	}

	detail := &Detail{
		ID:                 venue.ID,
		Name:               venue.Name,
		Genres:             venue.GenreNames(),
		Address:            venue.Address,
		City:               venue.City,
		State:              venue.State,
		Phone:              venue.Phone,
		Website:            venue.Website,
		FacebookLink:       venue.FacebookLink,
		SeekingTalent:      venue.SeekingTalent,
		SeekingDescription: venue.SeekingDescription,
		ImageLink:          venue.ImageLink,
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

// CreateVenue stores the venue and its genres in one unit of work.
func (svc *Service) CreateVenue(ctx context.Context, form *VenueForm) (*models.Venue, error) {
	now := svc.now()
	venue := &models.Venue{CreatedAt: now}
	form.apply(venue, now)

	err := database.RunInTx(ctx, svc.db, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().
			Model(venue).
			Returning("*").
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		return svc.genreService.SetVenueGenres(ctx, tx, venue.ID, form.Genres)
	})
	if err != nil {
		return nil, errcodes.PersistenceFailure("Venue "+form.Name, "listed", err)
	}

	logger.FromContext(ctx).Info("venue created", logger.Data{"venue_id": venue.ID})
	return venue, nil
}

// UpdateVenue overwrites every attribute and the genre list of the venue.
func (svc *Service) UpdateVenue(ctx context.Context, id int, form *VenueForm) (*models.Venue, error) {
	now := svc.now()
	venue := &models.Venue{ID: id}
	form.apply(venue, now)

	err := database.RunInTx(ctx, svc.db, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model(venue).
			Column("name", "sort_name", "search_name", "city", "state", "address", "phone", "image_link",
				"facebook_link", "website", "seeking_talent", "seeking_description", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return errcodes.NotFound("Venue")
		}
		if err := svc.genreService.SetVenueGenres(ctx, tx, id, form.Genres); err != nil {
			return err
		}
		_, err = svc.genreService.CleanupOrphanedGenres(ctx, tx)
		return err
	})
	if err != nil {
		if errcodes.CodeOf(err) == errcodes.CodeNotFound {
			return nil, err
		}
		return nil, errcodes.PersistenceFailure("Venue "+form.Name, "updated", err)
	}

	return svc.RetrieveVenue(ctx, RetrieveVenueOptions{ID: &id})
}

// DeleteVenue removes the venue together with its shows and genre links.
func (svc *Service) DeleteVenue(ctx context.Context, id int) error {
	err := database.RunInTx(ctx, svc.db, func(ctx context.Context, tx bun.Tx) error {
		if err := EnsureExists(ctx, tx, id); err != nil {
			return err
		}
		_, err := tx.NewDelete().
			Model((*models.Show)(nil)).
			Where("venue_id = ?", id).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = tx.NewDelete().
			Model((*models.VenueGenre)(nil)).
			Where("venue_id = ?", id).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = tx.NewDelete().
			Model((*models.Venue)(nil)).
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
		return errcodes.Unprocessable("Venue", err)
	}
	return nil
}

// ListOptions returns every venue as an id/name pair for the show form.
func (svc *Service) ListOptions(ctx context.Context) ([]Summary, error) {
	options := []Summary{}
	err := svc.db.NewSelect().
		TableExpr("venues AS v").
		ColumnExpr("v.id, v.name").
		OrderExpr("v.sort_name COLLATE NOCASE ASC, v.id ASC").
		Scan(ctx, &options)
	return options, errors.WithStack(err)
}
