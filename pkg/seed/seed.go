// Package seed loads the sample venues, artists and shows of the original
// Fyyur starter.
package seed

import (
	"context"
	_ "embed"

	"github.com/jcarcamo/fyyur-project/pkg/artists"
	"github.com/jcarcamo/fyyur-project/pkg/errcodes"
	"github.com/jcarcamo/fyyur-project/pkg/models"
	"github.com/jcarcamo/fyyur-project/pkg/shows"
	"github.com/jcarcamo/fyyur-project/pkg/venues"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/segmentio/encoding/json"
	"github.com/uptrace/bun"
)

//go:embed data.json
var rawData []byte

type showData struct {
	Venue     string `json:"venue"`
	Artist    string `json:"artist"`
	StartTime string `json:"start_time"`
}

type data struct {
	Venues  []venues.VenueForm   `json:"venues"`
	Artists []artists.ArtistForm `json:"artists"`
	Shows   []showData           `json:"shows"`
}

// Result counts what Load created.
type Result struct {
	Venues  int `json:"venues"`
	Artists int `json:"artists"`
	Shows   int `json:"shows"`
}

type Seeder struct {
	db            *bun.DB
	venueService  *venues.Service
	artistService *artists.Service
	showService   *shows.Service
}

func New(db *bun.DB, venueService *venues.Service, artistService *artists.Service, showService *shows.Service) *Seeder {
	return &Seeder{
		db:            db,
		venueService:  venueService,
		artistService: artistService,
		showService:   showService,
	}
}

// Load creates the sample data through the services. It refuses to run
// against a database that already holds venues or artists.
func (s *Seeder) Load(ctx context.Context) (*Result, error) {
	d := data{}
	if err := json.Unmarshal(rawData, &d); err != nil {
		return nil, errors.Wrap(err, "decoding seed data")
	}

	for _, model := range []interface{}{(*models.Venue)(nil), (*models.Artist)(nil)} {
		exists, err := s.db.NewSelect().Model(model).Exists(ctx)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if exists {
			return nil, errcodes.ValidationError("The database already has venues or artists.")
		}
	}

	result := &Result{}
	venueIDs := map[string]int{}
	for i := range d.Venues {
		venue, err := s.venueService.CreateVenue(ctx, &d.Venues[i])
		if err != nil {
			return result, err
		}
		venueIDs[venue.Name] = venue.ID
		result.Venues++
	}

	artistIDs := map[string]int{}
	for i := range d.Artists {
		artist, err := s.artistService.CreateArtist(ctx, &d.Artists[i])
		if err != nil {
			return result, err
		}
		artistIDs[artist.Name] = artist.ID
		result.Artists++
	}

	for _, sd := range d.Shows {
		_, err := s.showService.CreateShow(ctx, &shows.ShowForm{
			ArtistID:  artistIDs[sd.Artist],
			VenueID:   venueIDs[sd.Venue],
			StartTime: sd.StartTime,
		})
		if err != nil {
			return result, err
		}
		result.Shows++
	}

	logger.FromContext(ctx).Info("seed data loaded", logger.Data{
		"venues":  result.Venues,
		"artists": result.Artists,
		"shows":   result.Shows,
	})
	return result, nil
}
