// Package forms holds the choice lists offered by the venue, artist and show
// forms.
package forms

import "strings"

// States are the US state codes accepted for venues and artists.
var States = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL",
	"GA", "HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME",
	"MT", "NE", "NV", "NH", "NJ", "NM", "NY", "NC", "ND", "OH",
	"OK", "OR", "MD", "MA", "MI", "MN", "MS", "MO", "PA", "RI",
	"SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI",
	"WY",
}

// Genres is the suggested genre list. Genre names aren't limited to it.
var Genres = []string{
	"Alternative",
	"Blues",
	"Classical",
	"Country",
	"Electronic",
	"Folk",
	"Funk",
	"Hip-Hop",
	"Heavy Metal",
	"Instrumental",
	"Jazz",
	"Musical Theatre",
	"Pop",
	"Punk",
	"R&B",
	"Reggae",
	"Rock n Roll",
	"Soul",
	"Other",
}

var stateSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(States))
	for _, s := range States {
		m[s] = struct{}{}
	}
	return m
}()

// IsState reports whether s is one of States. The comparison is
// case-insensitive.
func IsState(s string) bool {
	_, ok := stateSet[strings.ToUpper(s)]
	return ok
}

// Choices is the set of options sent along with a form.
type Choices struct {
	States []string `json:"states"`
	Genres []string `json:"genres"`
}

func DefaultChoices() Choices {
	return Choices{States: States, Genres: Genres}
}
