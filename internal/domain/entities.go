package domain

import (
	"fmt"
	"strings"
)

// MovieSummary is the denormalized copy of a catalog movie stored in a list.
// It is captured once and never refreshed from the catalog.
type MovieSummary struct {
	ID          int      `json:"id"`           // Catalog identifier
	Title       string   `json:"title"`        // Display title at capture time
	PosterPath  *string  `json:"poster_path"`  // Relative poster path, nil when absent
	ReleaseDate *string  `json:"release_date"` // As supplied by the catalog, not validated
	VoteAverage *float64 `json:"vote_average"` // Rating at capture time
}

// Year returns the leading year of the release date, or "" when unknown
func (s MovieSummary) Year() string {
	if s.ReleaseDate == nil {
		return ""
	}
	return releaseYear(*s.ReleaseDate)
}

// Rating returns the captured rating and whether one was stored
func (s MovieSummary) Rating() (float64, bool) {
	if s.VoteAverage == nil {
		return 0, false
	}
	return *s.VoteAverage, true
}

// Poster returns the poster path or "" when absent
func (s MovieSummary) Poster() string {
	if s.PosterPath == nil {
		return ""
	}
	return *s.PosterPath
}

// Movie expands the summary for display. Fields the summary never
// captured stay zero.
func (s MovieSummary) Movie() Movie {
	rating, _ := s.Rating()
	m := Movie{
		ID:          s.ID,
		Title:       s.Title,
		PosterPath:  s.Poster(),
		VoteAverage: rating,
	}
	if s.ReleaseDate != nil {
		m.ReleaseDate = *s.ReleaseDate
	}
	return m
}

// Movie is a catalog movie as returned by list and search endpoints
type Movie struct {
	ID            int
	Title         string
	OriginalTitle string
	Overview      string
	PosterPath    string // "" when the catalog has no poster
	BackdropPath  string
	ReleaseDate   string // YYYY-MM-DD, may be empty
	VoteAverage   float64
	VoteCount     int
	Popularity    float64
	GenreIDs      []int
}

// DisplayTitle returns the title, falling back to the original title
func (m Movie) DisplayTitle() string {
	if m.Title != "" {
		return m.Title
	}
	return m.OriginalTitle
}

// Year returns the release year or "" when unknown
func (m Movie) Year() string {
	return releaseYear(m.ReleaseDate)
}

// TitleWithYear formats "Title (YYYY)" when the year is known
func (m Movie) TitleWithYear() string {
	if y := m.Year(); y != "" {
		return fmt.Sprintf("%s (%s)", m.DisplayTitle(), y)
	}
	return m.DisplayTitle()
}

// SummaryOf captures a list entry from a catalog movie.
func SummaryOf(m Movie) MovieSummary {
	s := MovieSummary{
		ID:    m.ID,
		Title: m.DisplayTitle(),
	}
	if m.PosterPath != "" {
		poster := m.PosterPath
		s.PosterPath = &poster
	}
	if m.ReleaseDate != "" {
		date := m.ReleaseDate
		s.ReleaseDate = &date
	}
	vote := m.VoteAverage
	s.VoteAverage = &vote
	return s
}

// MoviePage is one page of catalog results
type MoviePage struct {
	Page         int
	TotalPages   int // Capped at MaxPages
	TotalResults int
	Results      []Movie
}

// MaxPages is the deepest page the catalog will serve
const MaxPages = 500

// SinglePage wraps locally held movies as a one-page result
func SinglePage(movies []Movie) MoviePage {
	return MoviePage{
		Page:         1,
		TotalPages:   1,
		TotalResults: len(movies),
		Results:      movies,
	}
}

// Genre is a catalog genre
type Genre struct {
	ID   int
	Name string
}

// MovieDetail is the full record for a single movie
type MovieDetail struct {
	Movie
	Tagline  string
	Runtime  int // Minutes
	Status   string
	Genres   []Genre
	Homepage string
	IMDbID   string
}

// FormattedRuntime returns the runtime as "2h 5m", or "" when unknown
func (d MovieDetail) FormattedRuntime() string {
	if d.Runtime <= 0 {
		return ""
	}
	h := d.Runtime / 60
	mins := d.Runtime % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// GenreNames joins the genre names with the given separator
func (d MovieDetail) GenreNames(sep string) string {
	names := make([]string, len(d.Genres))
	for i, g := range d.Genres {
		names[i] = g.Name
	}
	return strings.Join(names, sep)
}

// CastMember is a credited actor
type CastMember struct {
	ID          int
	Name        string
	Character   string
	ProfilePath string
	Order       int
}

// CrewMember is a credited crew member
type CrewMember struct {
	ID         int
	Name       string
	Job        string
	Department string
}

// Credits lists the cast and crew of a movie
type Credits struct {
	Cast []CastMember
	Crew []CrewMember
}

// Directors returns the names of crew credited with the Director job
func (c Credits) Directors() []string {
	var names []string
	for _, m := range c.Crew {
		if m.Job == "Director" {
			names = append(names, m.Name)
		}
	}
	return names
}

// Video is a trailer, teaser or clip hosted on an external site
type Video struct {
	Key      string
	Name     string
	Site     string
	Type     string // Trailer, Teaser, Clip, Featurette...
	Official bool
}

// Person is a cast or crew member's biography
type Person struct {
	ID                 int
	Name               string
	Biography          string
	Birthday           string
	PlaceOfBirth       string
	ProfilePath        string
	KnownForDepartment string
}

// PersonCredits lists movies a person appeared in
type PersonCredits struct {
	Cast []Movie
}

// releaseYear extracts YYYY from a YYYY-MM-DD date
func releaseYear(date string) string {
	if len(date) >= 4 {
		return date[:4]
	}
	return ""
}
