package artists

import (
	"time"

	"github.com/jcarcamo/fyyur-project/pkg/forms"
	"github.com/jcarcamo/fyyur-project/pkg/models"
	"github.com/jcarcamo/fyyur-project/pkg/sortname"
)

// ArtistForm is the create and edit payload.
type ArtistForm struct {
	Name               string   `json:"name" form:"name" mod:"trim" validate:"required,max=200"`
	City               string   `json:"city" form:"city" mod:"trim" validate:"required,max=120"`
	State              string   `json:"state" form:"state" mod:"trim,ucase" validate:"required,usstate"`
	Phone              string   `json:"phone" form:"phone" mod:"trim" validate:"omitempty,phone"`
	ImageLink          string   `json:"image_link" form:"image_link" mod:"trim" validate:"omitempty,max=500,url"`
	FacebookLink       string   `json:"facebook_link" form:"facebook_link" mod:"trim" validate:"omitempty,max=500,url"`
	Website            string   `json:"website" form:"website" mod:"trim" validate:"omitempty,max=500,url"`
	Genres             []string `json:"genres" form:"genres" mod:"dive,trim" validate:"required,min=1,max=20,dive,required,max=50"`
	SeekingVenue       bool     `json:"seeking_venue" form:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description" form:"seeking_description" mod:"trim" validate:"max=2000"`
}

func (f *ArtistForm) apply(artist *models.Artist, now time.Time) {
	artist.Name = f.Name
	artist.SortName = sortname.ForName(f.Name)
	artist.City = f.City
	artist.State = f.State
	artist.Phone = forms.Optional(f.Phone)
	artist.ImageLink = forms.Optional(f.ImageLink)
	artist.FacebookLink = forms.Optional(f.FacebookLink)
	artist.Website = forms.Optional(f.Website)
	artist.SeekingVenue = f.SeekingVenue
	artist.SeekingDescription = forms.Optional(f.SeekingDescription)
	artist.UpdatedAt = now
}

func FormFromArtist(artist *models.Artist) *ArtistForm {
	return &ArtistForm{
		Name:               artist.Name,
		City:               artist.City,
		State:              artist.State,
		Phone:              forms.Value(artist.Phone),
		ImageLink:          forms.Value(artist.ImageLink),
		FacebookLink:       forms.Value(artist.FacebookLink),
		Website:            forms.Value(artist.Website),
		Genres:             artist.GenreNames(),
		SeekingVenue:       artist.SeekingVenue,
		SeekingDescription: forms.Value(artist.SeekingDescription),
	}
}

type Summary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Show is a show by the artist joined to its venue.
type Show struct {
	VenueID        int       `json:"venue_id"`
	VenueName      string    `json:"venue_name"`
	VenueImageLink *string   `json:"venue_image_link"`
	StartTime      time.Time `json:"start_time"`
}

type Detail struct {
	ID                 int      `json:"id"`
	Name               string   `json:"name"`
	Genres             []string `json:"genres"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Phone              *string  `json:"phone"`
	Website            *string  `json:"website"`
	FacebookLink       *string  `json:"facebook_link"`
	SeekingVenue       bool     `json:"seeking_venue"`
	SeekingDescription *string  `json:"seeking_description"`
	ImageLink          *string  `json:"image_link"`
	PastShows          []Show   `json:"past_shows"`
	UpcomingShows      []Show   `json:"upcoming_shows"`
	PastShowsCount     int      `json:"past_shows_count"`
	UpcomingShowsCount int      `json:"upcoming_shows_count"`
}

type MutationResponse struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}

type FormResponse struct {
	ID      int           `json:"id,omitempty"`
	Form    *ArtistForm   `json:"form"`
	Choices forms.Choices `json:"choices"`
}
