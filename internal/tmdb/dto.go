package tmdb

// TMDB v3 JSON payloads. Only the fields marquee reads are declared.

type movieDTO struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	Overview      string  `json:"overview"`
	PosterPath    *string `json:"poster_path"`
	BackdropPath  *string `json:"backdrop_path"`
	ReleaseDate   string  `json:"release_date"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int     `json:"vote_count"`
	Popularity    float64 `json:"popularity"`
	GenreIDs      []int   `json:"genre_ids"`
}

type pageDTO struct {
	Page         int        `json:"page"`
	Results      []movieDTO `json:"results"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
}

type genreDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type genreListDTO struct {
	Genres []genreDTO `json:"genres"`
}

type movieDetailDTO struct {
	movieDTO
	Tagline  string     `json:"tagline"`
	Runtime  *int       `json:"runtime"`
	Status   string     `json:"status"`
	Genres   []genreDTO `json:"genres"`
	Homepage string     `json:"homepage"`
	IMDbID   *string    `json:"imdb_id"`
}

type castDTO struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
	Order       int     `json:"order"`
}

type crewDTO struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
}

type creditsDTO struct {
	ID   int       `json:"id"`
	Cast []castDTO `json:"cast"`
	Crew []crewDTO `json:"crew"`
}

type videoDTO struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

type videoListDTO struct {
	ID      int        `json:"id"`
	Results []videoDTO `json:"results"`
}

type personDTO struct {
	ID                 int     `json:"id"`
	Name               string  `json:"name"`
	Biography          string  `json:"biography"`
	Birthday           *string `json:"birthday"`
	PlaceOfBirth       *string `json:"place_of_birth"`
	ProfilePath        *string `json:"profile_path"`
	KnownForDepartment string  `json:"known_for_department"`
}

type personCreditsDTO struct {
	ID   int        `json:"id"`
	Cast []movieDTO `json:"cast"`
}

// errorDTO is the body TMDB sends with non-2xx responses
type errorDTO struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       bool   `json:"success"`
}

// Query parameter sets, encoded with go-querystring

type pageParams struct {
	Page     int    `url:"page,omitempty"`
	Language string `url:"language,omitempty"`
}

type languageParams struct {
	Language string `url:"language,omitempty"`
}

type searchParams struct {
	Query    string `url:"query"`
	Page     int    `url:"page,omitempty"`
	Language string `url:"language,omitempty"`
}

type discoverParams struct {
	Page           int     `url:"page,omitempty"`
	Language       string  `url:"language,omitempty"`
	SortBy         string  `url:"sort_by"`
	WithGenres     int     `url:"with_genres,omitempty"`
	Year           int     `url:"year,omitempty"`
	VoteAverageGte float64 `url:"vote_average.gte,omitempty"`
}
