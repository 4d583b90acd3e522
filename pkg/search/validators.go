package search

// SearchQuery carries the search term of both the GET query string and the
// POSTed search form.
type SearchQuery struct {
	SearchTerm string `query:"search_term" form:"search_term" json:"search_term" mod:"trim" validate:"max=100"`
}

type Result struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

type Results struct {
	Count int      `json:"count"`
	Data  []Result `json:"data"`
}

// SearchResponse is the body of the venue and artist search endpoints.
type SearchResponse struct {
	SearchTerm string   `json:"search_term"`
	Results    *Results `json:"results"`
}

// GlobalSearchResponse returns up to the configured limit per resource type.
type GlobalSearchResponse struct {
	SearchTerm string  `json:"search_term"`
	Venues     Results `json:"venues"`
	Artists    Results `json:"artists"`
}
