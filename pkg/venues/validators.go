package venues

import (
	"time"

	"github.com/jcarcamo/fyyur-project/pkg/forms"
	"github.com/jcarcamo/fyyur-project/pkg/models"
	"github.com/jcarcamo/fyyur-project/pkg/sortname"
)

// VenueForm is the create and edit payload. Form posts repeat the genres
// key once per genre.
type VenueForm struct {
	Name               string   `json:"name" form:"name" mod:"trim" validate:"required,max=200"`
	City               string   `json:"city" form:"city" mod:"trim" validate:"required,max=120"`
	State              string   `json:"state" form:"state" mod:"trim,ucase" validate:"required,usstate"`
	Address            string   `json:"address" form:"address" mod:"trim" validate:"required,max=120"`
	Phone              string   `json:"phone" form:"phone" mod:"trim" validate:"omitempty,phone"`
	ImageLink          string   `json:"image_link" form:"image_link" mod:"trim" validate:"omitempty,max=500,url"`
	FacebookLink       string   `json:"facebook_link" form:"facebook_link" mod:"trim" validate:"omitempty,max=500,url"`
	Website            string   `json:"website" form:"website" mod:"trim" validate:"omitempty,max=500,url"`
	Genres             []string `json:"genres" form:"genres" mod:"dive,trim" validate:"required,min=1,max=20,dive,required,max=50"`
	SeekingTalent      bool     `json:"seeking_talent" form:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description" form:"seeking_description" mod:"trim" validate:"max=2000"`
}

// apply copies the form onto venue. Genres are stored separately.
func (f *VenueForm) apply(venue *models.Venue, now time.Time) {
	venue.Name = f.Name
	venue.SortName = sortname.ForName(f.Name)
	venue.City = f.City
	venue.State = f.State
	venue.Address = f.Address
	venue.Phone = forms.Optional(f.Phone)
	venue.ImageLink = forms.Optional(f.ImageLink)
	venue.FacebookLink = forms.Optional(f.FacebookLink)
	venue.Website = forms.Optional(f.Website)
	venue.SeekingTalent = f.SeekingTalent
	venue.SeekingDescription = forms.Optional(f.SeekingDescription)
	venue.UpdatedAt = now
}

// FormFromVenue prefills the edit form. venue must have its genres loaded.
func FormFromVenue(venue *models.Venue) *VenueForm {
	return &VenueForm{
		Name:               venue.Name,
		City:               venue.City,
		State:              venue.State,
		Address:            venue.Address,
		Phone:              forms.Value(venue.Phone),
		ImageLink:          forms.Value(venue.ImageLink),
		FacebookLink:       forms.Value(venue.FacebookLink),
		Website:            forms.Value(venue.Website),
		Genres:             venue.GenreNames(),
		SeekingTalent:      venue.SeekingTalent,
		SeekingDescription: forms.Value(venue.SeekingDescription),
	}
}

// Summary is a venue row inside an area or a search result.
type Summary struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// Area groups the venues of one city.
type Area struct {
	City   string    `json:"city"`
	State  string    `json:"state"`
	Venues []Summary `json:"venues"`
}

// Show is a show at the venue joined to its artist.
type Show struct {
	ArtistID        int       `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink *string   `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// Detail is the venue page.
type Detail struct {
	ID                 int      `json:"id"`
	Name               string   `json:"name"`
	Genres             []string `json:"genres"`
	Address            string   `json:"address"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Phone              *string  `json:"phone"`
	Website            *string  `json:"website"`
	FacebookLink       *string  `json:"facebook_link"`
	SeekingTalent      bool     `json:"seeking_talent"`
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
	Form    *VenueForm    `json:"form"`
	Choices forms.Choices `json:"choices"`
}
