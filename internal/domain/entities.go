package domain

// Candidate is the slice of a search result needed to label a selection
// option and resolve the selection back to a full record.
type Candidate struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

type Movie struct {
	ID               int      `json:"id"`
	Title            string   `json:"title"`
	Overview         string   `json:"overview"`
	ReleaseDate      string   `json:"release_date"`
	VoteAverage      float64  `json:"vote_average"`
	Genres           []string `json:"genres"`
	Cast             []string `json:"cast"`
	OriginalLanguage string   `json:"original_language"`
	RuntimeMinutes   int      `json:"runtime"`
	Budget           int64    `json:"budget"`
	Revenue          int64    `json:"revenue"`
	PosterPath       string   `json:"poster_path"`
	IMDbID           string   `json:"imdb_id"`
}

// Session is one user's remembered browse state: the candidate set the
// last search produced and the position currently on display. Version is
// bumped on every store mutation so a navigation that suspended on a
// network fetch can detect that it lost the race before committing.
type Session struct {
	UserID        int64
	CorrelationID string
	Candidates    []Candidate
	CurrentIndex  int
	AwaitingQuery bool
	Version       uint64
}
