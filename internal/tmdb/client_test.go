package tmdb

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to create a mock server and a client pointed at it
func setupTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := NewClient(server.URL+"/3", "test-token", "en-US", logger)
	return server, client
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

const samplePage = `{
	"page": 2,
	"total_pages": 1200,
	"total_results": 24000,
	"results": [
		{"id": 550, "title": "Fight Club", "poster_path": "/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg", "release_date": "1999-10-15", "vote_average": 8.4, "genre_ids": [18]},
		{"id": 551, "title": "No Poster", "poster_path": null, "backdrop_path": null, "release_date": "", "vote_average": 0}
	]
}`

func TestListEndpoints(t *testing.T) {
	tests := []struct {
		name string
		path string
		call func(*Client) (domain.MoviePage, error)
	}{
		{"now playing", "/3/movie/now_playing", func(c *Client) (domain.MoviePage, error) { return c.NowPlaying(context.Background(), 2) }},
		{"popular", "/3/movie/popular", func(c *Client) (domain.MoviePage, error) { return c.Popular(context.Background(), 2) }},
		{"top rated", "/3/movie/top_rated", func(c *Client) (domain.MoviePage, error) { return c.TopRated(context.Background(), 2) }},
		{"trending", "/3/trending/movie/day", func(c *Client) (domain.MoviePage, error) { return c.Trending(context.Background(), 2) }},
		{"recommendations", "/3/movie/550/recommendations", func(c *Client) (domain.MoviePage, error) {
			return c.Recommendations(context.Background(), 550, 2)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, tt.path, r.URL.Path)
				assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
				assert.Equal(t, "application/json", r.Header.Get("Accept"))
				assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
				assert.Equal(t, "2", r.URL.Query().Get("page"))
				assert.Equal(t, "en-US", r.URL.Query().Get("language"))
				writeJSON(w, http.StatusOK, samplePage)
			}
			_, client := setupTestServer(t, handler)

			page, err := tt.call(client)
			require.NoError(t, err)
			assert.Equal(t, 2, page.Page)
			assert.Equal(t, domain.MaxPages, page.TotalPages, "total pages is capped")
			assert.Equal(t, 24000, page.TotalResults)
			require.Len(t, page.Results, 2)
			assert.Equal(t, "Fight Club", page.Results[0].Title)
			assert.Equal(t, "/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg", page.Results[0].PosterPath)
			assert.Equal(t, []int{18}, page.Results[0].GenreIDs)
			assert.Empty(t, page.Results[1].PosterPath)
		})
	}
}

func TestTotalPagesBelowCapUnchanged(t *testing.T) {
	_, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"page":1,"total_pages":7,"total_results":130,"results":[]}`)
	})

	page, err := client.Popular(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 7, page.TotalPages)
	assert.Empty(t, page.Results)
}

func TestPageIsNormalized(t *testing.T) {
	var pages []string
	_, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		pages = append(pages, r.URL.Query().Get("page"))
		writeJSON(w, http.StatusOK, `{"page":1,"total_pages":1,"total_results":0,"results":[]}`)
	})

	_, err := client.Popular(context.Background(), 0)
	require.NoError(t, err)
	_, err = client.Popular(context.Background(), -3)
	require.NoError(t, err)
	_, err = client.Popular(context.Background(), 9000)
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "1", "500"}, pages)
}

func TestSearch(t *testing.T) {
	_, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/search/movie", r.URL.Path)
		assert.Equal(t, "the matrix & more", r.URL.Query().Get("query"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		writeJSON(w, http.StatusOK, `{"page":1,"total_pages":1,"total_results":1,"results":[{"id":603,"title":"The Matrix"}]}`)
	})

	page, err := client.Search(context.Background(), "the matrix & more", 1)
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, 603, page.Results[0].ID)
}

func TestDiscover(t *testing.T) {
	t.Run("optional params omitted", func(t *testing.T) {
		_, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/3/discover/movie", r.URL.Path)
			q := r.URL.Query()
			assert.Equal(t, domain.SortPopularityDesc, q.Get("sort_by"))
			assert.False(t, q.Has("with_genres"))
			assert.False(t, q.Has("year"))
			assert.False(t, q.Has("vote_average.gte"))
			writeJSON(w, http.StatusOK, `{"page":1,"total_pages":1,"total_results":0,"results":[]}`)
		})

		_, err := client.Discover(context.Background(), domain.DiscoverFilter{}, 1)
		require.NoError(t, err)
	})

	t.Run("all params sent", func(t *testing.T) {
		_, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, domain.SortRatingDesc, q.Get("sort_by"))
			assert.Equal(t, "28", q.Get("with_genres"))
			assert.Equal(t, "1999", q.Get("year"))
			assert.Equal(t, "7.5", q.Get("vote_average.gte"))
			assert.Equal(t, "3", q.Get("page"))
			writeJSON(w, http.StatusOK, `{"page":3,"total_pages":4,"total_results":70,"results":[]}`)
		})

		page, err := client.Discover(context.Background(), domain.DiscoverFilter{
			GenreID:   28,
			Year:      1999,
			MinRating: 7.5,
			SortBy:    domain.SortRatingDesc,
		}, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, page.Page)
	})
}

func TestGenres(t *testing.T) {
	_, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/genre/movie/list", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"genres":[{"id":28,"name":"Action"},{"id":18,"name":"Drama"}]}`)
	})

	genres, err := client.Genres(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Genre{{ID: 28, Name: "Action"}, {ID: 18, Name: "Drama"}}, genres)
}

func TestMovieDetail(t *testing.T) {
	_, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/movie/550", r.URL.Path)
		writeJSON(w, http.StatusOK, `{
			"id": 550,
			"title": "Fight Club",
			"tagline": "Mischief. Mayhem. Soap.",
			"runtime": 139,
			"status": "Released",
			"imdb_id": "tt0137523",
			"release_date": "1999-10-15",
			"vote_average": 8.4,
			"genres": [{"id": 18, "name": "Drama"}, {"id": 53, "name": "Thriller"}]
		}`)
	})

	detail, err := client.MovieDetail(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, "Fight Club", detail.Title)
	assert.Equal(t, "Mischief. Mayhem. Soap.", detail.Tagline)
	assert.Equal(t, 139, detail.Runtime)
	assert.Equal(t, "tt0137523", detail.IMDbID)
	assert.Equal(t, []int{18, 53}, detail.GenreIDs)
	assert.Equal(t, "Drama, Thriller", detail.GenreNames(", "))
}

func TestMovieDetailNullRuntime(t *testing.T) {
	_, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"id": 9, "title": "Unreleased", "runtime": null, "imdb_id": null, "genres": []}`)
	})

	detail, err := client.MovieDetail(context.Background(), 9)
	require.NoError(t, err)
	assert.Zero(t, detail.Runtime)
	assert.Empty(t, detail.IMDbID)
}

func TestMovieCredits(t *testing.T) {
	_, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/movie/550/credits", r.URL.Path)
		assert.False(t, r.URL.Query().Has("language"))
		writeJSON(w, http.StatusOK, `{
			"id": 550,
			"cast": [{"id": 819, "name": "Edward Norton", "character": "The Narrator", "profile_path": "/8nytsqL59SFJTVYVrN72k6qkGgJ.jpg", "order": 0}],
			"crew": [{"id": 7467, "name": "David Fincher", "job": "Director", "department": "Directing"}]
		}`)
	})

	credits, err := client.MovieCredits(context.Background(), 550)
	require.NoError(t, err)
	require.Len(t, credits.Cast, 1)
	assert.Equal(t, "The Narrator", credits.Cast[0].Character)
	assert.Equal(t, []string{"David Fincher"}, credits.Directors())
}

func TestVideosKeepsOnlyYouTube(t *testing.T) {
	_, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/movie/550/videos", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"id":550,"results":[
			{"key":"abc","name":"Official Trailer","site":"YouTube","type":"Trailer","official":true},
			{"key":"v123","name":"Vimeo Clip","site":"Vimeo","type":"Clip"},
			{"key":"def","name":"Teaser","site":"YouTube","type":"Teaser"}
		]}`)
	})

	videos, err := client.Videos(context.Background(), 550)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	for _, v := range videos {
		assert.Equal(t, SiteYouTube, v.Site)
	}
	assert.Equal(t, "abc", videos[0].Key)
	assert.True(t, videos[0].Official)
}

func TestPersonAndCredits(t *testing.T) {
	_, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/3/person/819":
			writeJSON(w, http.StatusOK, `{"id":819,"name":"Edward Norton","biography":"Actor.","birthday":"1969-08-18","place_of_birth":null,"known_for_department":"Acting"}`)
		case "/3/person/819/movie_credits":
			writeJSON(w, http.StatusOK, `{"id":819,"cast":[{"id":550,"title":"Fight Club","poster_path":"/p.jpg"}]}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	person, err := client.Person(context.Background(), 819)
	require.NoError(t, err)
	assert.Equal(t, "Edward Norton", person.Name)
	assert.Equal(t, "1969-08-18", person.Birthday)
	assert.Empty(t, person.PlaceOfBirth)

	credits, err := client.PersonMovieCredits(context.Background(), 819)
	require.NoError(t, err)
	require.Len(t, credits.Cast, 1)
	assert.Equal(t, "Fight Club", credits.Cast[0].Title)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		body   string
		want   error
	}{
		{http.StatusUnauthorized, `{"status_code":7,"status_message":"Invalid API key: You must be granted a valid key.","success":false}`, domain.ErrAuthFailed},
		{http.StatusNotFound, `{"status_code":34,"status_message":"The resource you requested could not be found.","success":false}`, domain.ErrNotFound},
		{http.StatusTooManyRequests, `{"status_code":25,"status_message":"Your request count is over the allowed limit.","success":false}`, domain.ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			_, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})

			_, err := client.Popular(context.Background(), 1)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUnexpectedStatusIsAPIError(t *testing.T) {
	_, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, `{"status_code":43,"status_message":"Internal error.","success":false}`)
	})

	_, err := client.MovieDetail(context.Background(), 1)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.HTTPStatus)
	assert.Equal(t, 43, apiErr.Code)
	assert.Equal(t, "Internal error.", apiErr.Message)
	assert.Contains(t, err.Error(), "503")
}

func TestUnexpectedStatusWithoutBody(t *testing.T) {
	_, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Popular(context.Background(), 1)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "tmdb: unexpected status code: 502", err.Error())
}

func TestMalformedBody(t *testing.T) {
	_, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `<html>not json</html>`)
	})

	_, err := client.Popular(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse response")
}

func TestServerOffline(t *testing.T) {
	server, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := client.Popular(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrCatalogOffline)
}

func TestTimeout(t *testing.T) {
	_, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	client.SetTimeout(50 * time.Millisecond)

	_, err := client.Popular(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrCatalogOffline)
}

func TestCanceledContextIsNotOffline(t *testing.T) {
	_, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"page":1,"results":[]}`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Popular(ctx, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, domain.ErrCatalogOffline)
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("", "tok", "", nil)
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, DefaultLanguage, c.Language())
	assert.Equal(t, defaultTimeout, c.httpClient.Timeout)

	c = NewClient("http://localhost:9999/3/", "tok", "de-DE", nil)
	assert.Equal(t, "http://localhost:9999/3", c.baseURL)
	assert.Equal(t, "de-DE", c.Language())
}

func TestRedact(t *testing.T) {
	assert.Equal(t, "http://x/3/search/movie?page=1&query=REDACTED",
		redact("http://x/3/search/movie?query=secret+plans&page=1"))
	assert.Equal(t, "http://x/3/movie/popular?page=1", redact("http://x/3/movie/popular?page=1"))
}

func TestImageHelpers(t *testing.T) {
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/abc.jpg", ImageURL(PosterLarge, "/abc.jpg"))
	assert.Equal(t, "https://image.tmdb.org/t/p/original/abc.jpg", ImageURL("", "/abc.jpg"))
	assert.Empty(t, ImageURL(PosterLarge, ""))

	assert.Equal(t, "https://www.youtube.com/watch?v=SUXWAEX2jlg", YouTubeURL("SUXWAEX2jlg"))
	assert.Empty(t, YouTubeURL(""))

	assert.Equal(t, "https://www.themoviedb.org/movie/550", MoviePageURL(550))
	assert.Equal(t, "https://www.themoviedb.org/person/1158", PersonPageURL(1158))
}
