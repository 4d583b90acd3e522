package shows

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jcarcamo/fyyur-project/pkg/artists"
	"github.com/jcarcamo/fyyur-project/pkg/database"
	"github.com/jcarcamo/fyyur-project/pkg/errcodes"
	"github.com/jcarcamo/fyyur-project/pkg/forms"
	"github.com/jcarcamo/fyyur-project/pkg/models"
	"github.com/jcarcamo/fyyur-project/pkg/venues"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
)

type Service struct {
	db            *bun.DB
	artistService *artists.Service
	venueService  *venues.Service
	now           func() time.Time
}

func NewService(db *bun.DB, artistService *artists.Service, venueService *venues.Service) *Service {
	return &Service{
		db:            db,
		artistService: artistService,
		venueService:  venueService,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// ListUpcomingShows returns the shows starting now or later, soonest first.
func (svc *Service) ListUpcomingShows(ctx context.Context) ([]Listing, error) {
	listings := []Listing{}
	err := svc.db.NewSelect().
		TableExpr("shows AS s").
		ColumnExpr("s.id, s.venue_id, v.name AS venue_name").
		ColumnExpr("s.artist_id, a.name AS artist_name, a.image_link AS artist_image_link, s.start_time").
		Join("JOIN venues AS v ON v.id = s.venue_id").
		Join("JOIN artists AS a ON a.id = s.artist_id").
		Where("s.start_time >= ?", svc.now()).
		OrderExpr("s.start_time ASC, s.id ASC").
		Scan(ctx, &listings)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return listings, nil
}

// NextStartTime returns the earliest start time at or after now, or nil
// when no show is upcoming. Listings that split shows into past and upcoming
// stay valid until then.
func (svc *Service) NextStartTime(ctx context.Context, now time.Time) (*time.Time, error) {
	show := &models.Show{}
	err := svc.db.NewSelect().
		Model(show).
		Column("start_time").
		Where("start_time >= ?", now).
		Order("start_time ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.WithStack(err)
	}
	start := show.StartTime.UTC()
	return &start, nil
}

// CreateShow books the artist at the venue. Both must exist; a missing one
// is reported as a validation error.
func (svc *Service) CreateShow(ctx context.Context, form *ShowForm) (*models.Show, error) {
	start, err := forms.ParseStartTime(form.StartTime)
	if err != nil {
		return nil, errcodes.ValidationError(fmt.Sprintf("%q is not a valid start time.", form.StartTime))
	}

	show := &models.Show{
		CreatedAt: svc.now(),
		StartTime: start,
		ArtistID:  form.ArtistID,
		VenueID:   form.VenueID,
	}

	err = database.RunInTx(ctx, svc.db, func(ctx context.Context, tx bun.Tx) error {
		if err := artists.EnsureExists(ctx, tx, form.ArtistID); err != nil {
			if errcodes.CodeOf(err) == errcodes.CodeNotFound {
				return errcodes.ValidationError(fmt.Sprintf("Artist %d does not exist.", form.ArtistID))
			}
			return err
		}
		if err := venues.EnsureExists(ctx, tx, form.VenueID); err != nil {
			if errcodes.CodeOf(err) == errcodes.CodeNotFound {
				return errcodes.ValidationError(fmt.Sprintf("Venue %d does not exist.", form.VenueID))
			}
			return err
		}
		_, err := tx.NewInsert().
			Model(show).
			Returning("*").
			Exec(ctx)
		return errors.WithStack(err)
	})
	if err != nil {
		if errcodes.CodeOf(err) == errcodes.CodeValidation {
			return nil, err
		}
		return nil, errcodes.PersistenceFailure("Show", "listed", err)
	}

	logger.FromContext(ctx).Info("show created", logger.Data{
		"show_id":   show.ID,
		"artist_id": show.ArtistID,
		"venue_id":  show.VenueID,
	})
	return show, nil
}

// FormOptions lists the artists and venues a show can be booked for.
func (svc *Service) FormOptions(ctx context.Context) ([]Option, []Option, error) {
	artistList, err := svc.artistService.ListArtists(ctx)
	if err != nil {
		return nil, nil, err
	}
	venueList, err := svc.venueService.ListOptions(ctx)
	if err != nil {
		return nil, nil, err
	}

	artistOptions := make([]Option, 0, len(artistList))
	for _, a := range artistList {
		artistOptions = append(artistOptions, Option{ID: a.ID, Name: a.Name})
	}
	venueOptions := make([]Option, 0, len(venueList))
	for _, v := range venueList {
		venueOptions = append(venueOptions, Option{ID: v.ID, Name: v.Name})
	}
	return artistOptions, venueOptions, nil
}

// DefaultForm is the empty create form with the start time set to now.
func (svc *Service) DefaultForm() *ShowForm {
	return &ShowForm{StartTime: svc.now().Format(forms.StartTimeLayout)}
}
