package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/mmcdole/marquee/internal/domain"
)

const (
	// DefaultBaseURL is the TMDB v3 API root
	DefaultBaseURL = "https://api.themoviedb.org/3"

	// DefaultLanguage is sent when no language is configured
	DefaultLanguage = "en-US"

	defaultTimeout = 30 * time.Second
	userAgent      = "Marquee/1.0"
)

// APIError is a non-2xx response that does not map to a domain sentinel
type APIError struct {
	HTTPStatus int
	Code       int    // TMDB status_code
	Message    string // TMDB status_message
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("tmdb: status %d: %s", e.HTTPStatus, e.Message)
	}
	return fmt.Sprintf("tmdb: unexpected status code: %d", e.HTTPStatus)
}

// Client implements domain.Catalog against the TMDB v3 API
type Client struct {
	baseURL    string
	token      string
	language   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new TMDB API client authenticated with a v4 read access token
func NewClient(baseURL, token, language string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if language == "" {
		language = DefaultLanguage
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		token:    token,
		language: language,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// SetTimeout overrides the per-request HTTP timeout
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.httpClient.Timeout = d
	}
}

// Language returns the language sent with localized requests
func (c *Client) Language() string {
	return c.language
}

// doRequest performs an authenticated GET and returns the raw body
func (c *Client) doRequest(ctx context.Context, path string, params interface{}) ([]byte, error) {
	reqURL := c.baseURL + path
	if params != nil {
		v, err := query.Values(params)
		if err != nil {
			return nil, fmt.Errorf("failed to encode query parameters: %w", err)
		}
		if encoded := v.Encode(); encoded != "" {
			reqURL += "?" + encoded
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("tmdb request", "path", path, "url", redact(reqURL))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		c.logger.Error("tmdb request failed", "path", path, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	apiErr := &APIError{HTTPStatus: resp.StatusCode}
	var payload errorDTO
	if json.Unmarshal(body, &payload) == nil {
		apiErr.Code = payload.StatusCode
		apiErr.Message = payload.StatusMessage
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: %s", domain.ErrAuthFailed, apiErr.Message)
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	case http.StatusTooManyRequests:
		return nil, domain.ErrRateLimited
	}

	c.logger.Error("tmdb request error", "path", path, "status", resp.StatusCode, "body", string(body))
	return nil, apiErr
}

// get performs a request and decodes the JSON body into target
func (c *Client) get(ctx context.Context, path string, params, target interface{}) error {
	body, err := c.doRequest(ctx, path, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		c.logger.Error("JSON parse error", "path", path, "error", err, "bodyLen", len(body))
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func (c *Client) getPage(ctx context.Context, path string, params interface{}) (domain.MoviePage, error) {
	var dto pageDTO
	if err := c.get(ctx, path, params, &dto); err != nil {
		return domain.MoviePage{}, err
	}
	return MapPage(dto), nil
}

func (c *Client) pageParams(page int) pageParams {
	return pageParams{Page: normalizePage(page), Language: c.language}
}

// === Lists ===

// NowPlaying returns movies currently in theaters
func (c *Client) NowPlaying(ctx context.Context, page int) (domain.MoviePage, error) {
	return c.getPage(ctx, "/movie/now_playing", c.pageParams(page))
}

// Popular returns the most popular movies
func (c *Client) Popular(ctx context.Context, page int) (domain.MoviePage, error) {
	return c.getPage(ctx, "/movie/popular", c.pageParams(page))
}

// TopRated returns the highest rated movies
func (c *Client) TopRated(ctx context.Context, page int) (domain.MoviePage, error) {
	return c.getPage(ctx, "/movie/top_rated", c.pageParams(page))
}

// Trending returns today's trending movies
func (c *Client) Trending(ctx context.Context, page int) (domain.MoviePage, error) {
	return c.getPage(ctx, "/trending/movie/day", c.pageParams(page))
}

// Search finds movies by title
func (c *Client) Search(ctx context.Context, q string, page int) (domain.MoviePage, error) {
	return c.getPage(ctx, "/search/movie", searchParams{
		Query:    q,
		Page:     normalizePage(page),
		Language: c.language,
	})
}

// Discover lists movies matching a filter. Unset filter fields are not sent.
func (c *Client) Discover(ctx context.Context, filter domain.DiscoverFilter, page int) (domain.MoviePage, error) {
	return c.getPage(ctx, "/discover/movie", discoverParams{
		Page:           normalizePage(page),
		Language:       c.language,
		SortBy:         filter.Sort(),
		WithGenres:     filter.GenreID,
		Year:           filter.Year,
		VoteAverageGte: filter.MinRating,
	})
}

// Genres returns the movie genre list
func (c *Client) Genres(ctx context.Context) ([]domain.Genre, error) {
	var dto genreListDTO
	if err := c.get(ctx, "/genre/movie/list", languageParams{Language: c.language}, &dto); err != nil {
		return nil, err
	}
	return MapGenres(dto.Genres), nil
}

// === Movies ===

// MovieDetail returns the full record for a movie
func (c *Client) MovieDetail(ctx context.Context, id int) (*domain.MovieDetail, error) {
	var dto movieDetailDTO
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", id), languageParams{Language: c.language}, &dto); err != nil {
		return nil, err
	}
	return MapMovieDetail(dto), nil
}

// MovieCredits returns cast and crew
func (c *Client) MovieCredits(ctx context.Context, id int) (*domain.Credits, error) {
	var dto creditsDTO
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/credits", id), nil, &dto); err != nil {
		return nil, err
	}
	return MapCredits(dto), nil
}

// Recommendations returns movies similar to the given one
func (c *Client) Recommendations(ctx context.Context, id, page int) (domain.MoviePage, error) {
	return c.getPage(ctx, fmt.Sprintf("/movie/%d/recommendations", id), c.pageParams(page))
}

// Videos returns the movie's YouTube videos
func (c *Client) Videos(ctx context.Context, id int) ([]domain.Video, error) {
	var dto videoListDTO
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/videos", id), languageParams{Language: c.language}, &dto); err != nil {
		return nil, err
	}
	return MapVideos(dto.Results), nil
}

// === People ===

// Person returns a person's biography
func (c *Client) Person(ctx context.Context, id int) (*domain.Person, error) {
	var dto personDTO
	if err := c.get(ctx, fmt.Sprintf("/person/%d", id), nil, &dto); err != nil {
		return nil, err
	}
	return MapPerson(dto), nil
}

// PersonMovieCredits returns the movies a person appeared in
func (c *Client) PersonMovieCredits(ctx context.Context, id int) (*domain.PersonCredits, error) {
	var dto personCreditsDTO
	if err := c.get(ctx, fmt.Sprintf("/person/%d/movie_credits", id), nil, &dto); err != nil {
		return nil, err
	}
	return MapPersonCredits(dto), nil
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	if page > domain.MaxPages {
		return domain.MaxPages
	}
	return page
}

// redact strips the query string's search term from log output
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	if q.Has("query") {
		q.Set("query", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

var _ domain.Catalog = (*Client)(nil)
