package models

import (
	"context"
	"time"

	"github.com/jcarcamo/fyyur-project/pkg/sortname"
	"github.com/uptrace/bun"
)

type Venue struct {
	bun.BaseModel `bun:"table:venues,alias:v"`

	ID                 int           `bun:",pk,autoincrement" json:"id"`
	CreatedAt          time.Time     `bun:",nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt          time.Time     `bun:",nullzero,notnull,default:current_timestamp" json:"updated_at"`
	Name               string        `bun:",notnull" json:"name"`
	SortName           string        `bun:",notnull" json:"sort_name"`
	SearchName         string        `bun:",notnull" json:"-"`
	City               string        `bun:",notnull" json:"city"`
	State              string        `bun:",notnull" json:"state"`
	Address            string        `bun:",notnull" json:"address"`
	Phone              *string       `json:"phone"`
	ImageLink          *string       `json:"image_link"`
	FacebookLink       *string       `json:"facebook_link"`
	Website            *string       `json:"website"`
	SeekingTalent      bool          `bun:",notnull" json:"seeking_talent"`
	SeekingDescription *string       `json:"seeking_description"`
	VenueGenres        []*VenueGenre `bun:"rel:has-many,join:id=venue_id" json:"-"`
	NumUpcomingShows   int           `bun:",scanonly" json:"-"`
}

var _ bun.BeforeAppendModelHook = (*Venue)(nil)

// BeforeAppendModel keeps search_name in step with name on every write.
func (v *Venue) BeforeAppendModel(_ context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery, *bun.UpdateQuery:
		v.SearchName = sortname.Fold(v.Name)
	}
	return nil
}

// GenreNames returns the venue's genres in their stored order. VenueGenres
// must be loaded with their Genre.
func (v *Venue) GenreNames() []string {
	names := make([]string, 0, len(v.VenueGenres))
	for _, vg := range v.VenueGenres {
		if vg.Genre != nil {
			names = append(names, vg.Genre.Name)
		}
	}
	return names
}
