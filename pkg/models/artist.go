package models

import (
	"context"
	"time"

	"github.com/jcarcamo/fyyur-project/pkg/sortname"
	"github.com/uptrace/bun"
)

type Artist struct {
	bun.BaseModel `bun:"table:artists,alias:a"`

	ID                 int            `bun:",pk,autoincrement" json:"id"`
	CreatedAt          time.Time      `bun:",nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt          time.Time      `bun:",nullzero,notnull,default:current_timestamp" json:"updated_at"`
	Name               string         `bun:",notnull" json:"name"`
	SortName           string         `bun:",notnull" json:"sort_name"`
	SearchName         string         `bun:",notnull" json:"-"`
	City               string         `bun:",notnull" json:"city"`
	State              string         `bun:",notnull" json:"state"`
	Phone              *string        `json:"phone"`
	ImageLink          *string        `json:"image_link"`
	FacebookLink       *string        `json:"facebook_link"`
	Website            *string        `json:"website"`
	SeekingVenue       bool           `bun:",notnull" json:"seeking_venue"`
	SeekingDescription *string        `json:"seeking_description"`
	ArtistGenres       []*ArtistGenre `bun:"rel:has-many,join:id=artist_id" json:"-"`
	NumUpcomingShows   int            `bun:",scanonly" json:"-"`
}

var _ bun.BeforeAppendModelHook = (*Artist)(nil)

// BeforeAppendModel keeps search_name in step with name on every write.
func (a *Artist) BeforeAppendModel(_ context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery, *bun.UpdateQuery:
		a.SearchName = sortname.Fold(a.Name)
	}
	return nil
}

func (a *Artist) GenreNames() []string {
	names := make([]string, 0, len(a.ArtistGenres))
	for _, ag := range a.ArtistGenres {
		if ag.Genre != nil {
			names = append(names, ag.Genre.Name)
		}
	}
	return names
}
