package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummaryOfCapturesOptionalFields(t *testing.T) {
	full := SummaryOf(Movie{ID: 603, Title: "The Matrix", PosterPath: "/m.jpg", ReleaseDate: "1999-03-30", VoteAverage: 8.2})
	assert.Equal(t, "The Matrix", full.Title)
	assert.Equal(t, "/m.jpg", full.Poster())
	assert.Equal(t, "1999", full.Year())
	rating, ok := full.Rating()
	assert.True(t, ok)
	assert.Equal(t, 8.2, rating)

	bare := SummaryOf(Movie{ID: 1, OriginalTitle: "Stalker"})
	assert.Equal(t, "Stalker", bare.Title, "falls back to the original title")
	assert.Nil(t, bare.PosterPath)
	assert.Nil(t, bare.ReleaseDate)
	assert.Empty(t, bare.Year())
}

func TestSummaryMovieRoundTrip(t *testing.T) {
	movie := Movie{ID: 603, Title: "The Matrix", PosterPath: "/m.jpg", ReleaseDate: "1999-03-30", VoteAverage: 8.2}
	assert.Equal(t, movie, SummaryOf(movie).Movie())

	var empty MovieSummary
	assert.Equal(t, Movie{}, empty.Movie())
}

func TestReleaseYear(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"1999-03-30", "1999"},
		{"1999", "1999"},
		{"99", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Movie{ReleaseDate: tt.date}.Year(), tt.date)
	}
}

func TestTitleWithYear(t *testing.T) {
	assert.Equal(t, "Heat (1995)", Movie{Title: "Heat", ReleaseDate: "1995-12-15"}.TitleWithYear())
	assert.Equal(t, "Heat", Movie{Title: "Heat"}.TitleWithYear())
}

func TestFormattedRuntime(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, ""},
		{-5, ""},
		{45, "45m"},
		{60, "1h 0m"},
		{139, "2h 19m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MovieDetail{Runtime: tt.minutes}.FormattedRuntime())
	}
}

func TestDirectors(t *testing.T) {
	credits := Credits{Crew: []CrewMember{
		{Name: "Lana Wachowski", Job: "Director"},
		{Name: "Joel Silver", Job: "Producer"},
		{Name: "Lilly Wachowski", Job: "Director"},
	}}
	assert.Equal(t, []string{"Lana Wachowski", "Lilly Wachowski"}, credits.Directors())
	assert.Empty(t, Credits{}.Directors())
}

func TestGenreNames(t *testing.T) {
	d := MovieDetail{Genres: []Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}}}
	assert.Equal(t, "Action, Science Fiction", d.GenreNames(", "))
}
