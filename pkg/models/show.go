package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Show struct {
	bun.BaseModel `bun:"table:shows,alias:s"`

	ID        int       `bun:",pk,autoincrement" json:"id"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"created_at"`
	StartTime time.Time `bun:",notnull" json:"start_time"`
	ArtistID  int       `bun:",notnull" json:"artist_id"`
	Artist    *Artist   `bun:"rel:belongs-to,join:artist_id=id" json:"artist,omitempty"`
	VenueID   int       `bun:",notnull" json:"venue_id"`
	Venue     *Venue    `bun:"rel:belongs-to,join:venue_id=id" json:"venue,omitempty"`
}
