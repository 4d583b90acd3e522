package models

import (
	"context"
	"time"

	"github.com/jcarcamo/fyyur-project/pkg/sortname"
	"github.com/uptrace/bun"
)

type Genre struct {
	bun.BaseModel `bun:"table:genres,alias:g"`

	ID          int       `bun:",pk,autoincrement" json:"id"`
	CreatedAt   time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"created_at"`
	Name        string    `bun:",notnull" json:"name"`
	SearchName  string    `bun:",notnull" json:"-"`
	VenueCount  int       `bun:",scanonly" json:"venue_count"`
	ArtistCount int       `bun:",scanonly" json:"artist_count"`
}

var _ bun.BeforeAppendModelHook = (*Genre)(nil)

// BeforeAppendModel keeps search_name in step with name on every write.
func (g *Genre) BeforeAppendModel(_ context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery, *bun.UpdateQuery:
		g.SearchName = sortname.Fold(g.Name)
	}
	return nil
}

type VenueGenre struct {
	bun.BaseModel `bun:"table:venue_genres,alias:vg"`

	ID        int    `bun:",pk,autoincrement" json:"id"`
	VenueID   int    `bun:",notnull" json:"venue_id"`
	GenreID   int    `bun:",notnull" json:"genre_id"`
	Genre     *Genre `bun:"rel:belongs-to,join:genre_id=id" json:"genre,omitempty"`
	SortOrder int    `bun:",notnull" json:"sort_order"`
}

type ArtistGenre struct {
	bun.BaseModel `bun:"table:artist_genres,alias:ag"`

	ID        int    `bun:",pk,autoincrement" json:"id"`
	ArtistID  int    `bun:",notnull" json:"artist_id"`
	GenreID   int    `bun:",notnull" json:"genre_id"`
	Genre     *Genre `bun:"rel:belongs-to,join:genre_id=id" json:"genre,omitempty"`
	SortOrder int    `bun:",notnull" json:"sort_order"`
}
