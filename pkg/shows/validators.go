package shows

import (
	"time"
)

// ShowForm is the create payload. StartTime accepts RFC 3339 or
// "YYYY-MM-DD HH:MM[:SS]" read as UTC.
type ShowForm struct {
	ArtistID  int    `json:"artist_id" form:"artist_id" validate:"required,min=1"`
	VenueID   int    `json:"venue_id" form:"venue_id" validate:"required,min=1"`
	StartTime string `json:"start_time" form:"start_time" mod:"trim" validate:"required,starttime"`
}

// Listing is an upcoming show joined to its venue and artist.
type Listing struct {
	ID              int       `json:"id"`
	VenueID         int       `json:"venue_id"`
	VenueName       string    `json:"venue_name"`
	ArtistID        int       `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink *string   `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

type Option struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type FormResponse struct {
	Form    *ShowForm `json:"form"`
	Artists []Option  `json:"artists"`
	Venues  []Option  `json:"venues"`
}

type MutationResponse struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}
