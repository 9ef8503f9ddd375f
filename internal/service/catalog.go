package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/patrickmn/go-cache"
	"github.com/sourcegraph/conc"
)

const (
	detailTTL = 10 * time.Minute
	genresTTL = 24 * time.Hour
)

// MovieView is everything the inspector shows for one movie
type MovieView struct {
	Detail          *domain.MovieDetail
	Cast            []domain.CastMember
	Directors       []string
	Recommendations []domain.Movie
}

// PersonView is a cast member with the movies they appeared in
type PersonView struct {
	Person *domain.Person
	Movies []domain.Movie // Posters only, newest first
}

// CatalogService wraps the remote catalog with short-lived caching and
// the page-level logic shared by the TUI and the CLI.
type CatalogService struct {
	repo   domain.Catalog
	logger *slog.Logger
	cache  *cache.Cache
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo domain.Catalog, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{
		repo:   repo,
		logger: logger,
		cache:  cache.New(detailTTL, 2*detailTTL),
	}
}

// Browse fetches one page of a catalog source. A non-empty query always
// searches, whatever the source. Saved-list sources are not served here.
func (s *CatalogService) Browse(ctx context.Context, source domain.Source, query string, filter domain.DiscoverFilter, page int) (domain.MoviePage, error) {
	var (
		result domain.MoviePage
		err    error
	)

	switch {
	case source.IsList():
		return domain.MoviePage{}, fmt.Errorf("source %s is not a catalog source", source)
	case query != "":
		result, err = s.repo.Search(ctx, query, page)
	case source == domain.SourceSearch:
		// Nothing typed yet
		return domain.MoviePage{Page: 1, TotalPages: 1}, nil
	case source == domain.SourceNowPlaying:
		result, err = s.repo.NowPlaying(ctx, page)
	case source == domain.SourceTrending:
		result, err = s.repo.Trending(ctx, page)
	case source == domain.SourceTopRated:
		result, err = s.repo.TopRated(ctx, page)
	case source == domain.SourcePopular:
		result, err = s.repo.Popular(ctx, page)
	default:
		result, err = s.repo.Discover(ctx, filter, page)
	}

	if err != nil {
		s.logger.Warn("browse failed", "source", source.String(), "page", page, "error", err)
		return domain.MoviePage{}, err
	}

	s.logger.Debug("browse complete", "source", source.String(), "page", result.Page, "results", len(result.Results))
	return result, nil
}

// Details fetches a movie's detail, credits and recommendations in parallel.
// Only the detail call is required; the other two degrade to empty.
func (s *CatalogService) Details(ctx context.Context, id int) (MovieView, error) {
	key := cacheKey(PrefixMovie, id)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(MovieView), nil
	}

	var (
		wg         conc.WaitGroup
		detail     *domain.MovieDetail
		detailErr  error
		credits    *domain.Credits
		creditsErr error
		recs       domain.MoviePage
		recsErr    error
	)

	wg.Go(func() { detail, detailErr = s.repo.MovieDetail(ctx, id) })
	wg.Go(func() { credits, creditsErr = s.repo.MovieCredits(ctx, id) })
	wg.Go(func() { recs, recsErr = s.repo.Recommendations(ctx, id, 1) })
	wg.Wait()

	if detailErr != nil {
		s.logger.Warn("failed to load movie", "movie_id", id, "error", detailErr)
		return MovieView{}, detailErr
	}

	view := MovieView{Detail: detail}
	if creditsErr != nil {
		s.logger.Warn("failed to load credits", "movie_id", id, "error", creditsErr)
	} else if credits != nil {
		view.Cast = credits.Cast
		view.Directors = credits.Directors()
	}
	if recsErr != nil {
		s.logger.Warn("failed to load recommendations", "movie_id", id, "error", recsErr)
	} else {
		view.Recommendations = recs.Results
	}

	// Partial views are not cached so the next open retries the missing parts
	if creditsErr == nil && recsErr == nil {
		s.cache.Set(key, view, detailTTL)
	}
	return view, nil
}

// Genres returns the genre list (cached)
func (s *CatalogService) Genres(ctx context.Context) ([]domain.Genre, error) {
	if cached, ok := s.cache.Get(PrefixGenres); ok {
		return cached.([]domain.Genre), nil
	}

	genres, err := s.repo.Genres(ctx)
	if err != nil {
		s.logger.Warn("failed to load genres", "error", err)
		return nil, err
	}

	s.cache.Set(PrefixGenres, genres, genresTTL)
	return genres, nil
}

// Trailer returns the preferred YouTube video for a movie, or nil when it has none
func (s *CatalogService) Trailer(ctx context.Context, id int) (*domain.Video, error) {
	videos, err := s.repo.Videos(ctx, id)
	if err != nil {
		s.logger.Warn("failed to load videos", "movie_id", id, "error", err)
		return nil, err
	}
	return PickTrailer(videos), nil
}

// Person fetches a person and their movies in parallel. Both are required.
func (s *CatalogService) Person(ctx context.Context, id int) (PersonView, error) {
	key := cacheKey(PrefixPerson, id)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(PersonView), nil
	}

	var (
		wg         conc.WaitGroup
		person     *domain.Person
		personErr  error
		credits    *domain.PersonCredits
		creditsErr error
	)

	wg.Go(func() { person, personErr = s.repo.Person(ctx, id) })
	wg.Go(func() { credits, creditsErr = s.repo.PersonMovieCredits(ctx, id) })
	wg.Wait()

	if personErr != nil {
		s.logger.Warn("failed to load person", "person_id", id, "error", personErr)
		return PersonView{}, personErr
	}
	if creditsErr != nil {
		s.logger.Warn("failed to load person credits", "person_id", id, "error", creditsErr)
		return PersonView{}, creditsErr
	}

	view := PersonView{
		Person: person,
		Movies: SortByReleaseThenPopularity(FilterWithPoster(credits.Cast)),
	}
	s.cache.Set(key, view, detailTTL)
	return view, nil
}

// InvalidateCache drops every cached response
func (s *CatalogService) InvalidateCache() {
	s.cache.Flush()
}

// videoTypeRank orders video types for trailer selection
var videoTypeRank = map[string]int{
	"Trailer": 1,
	"Teaser":  2,
	"Clip":    3,
}

// PickTrailer returns the first YouTube video by Trailer > Teaser > Clip >
// anything else, keeping the catalog's order within a type.
func PickTrailer(videos []domain.Video) *domain.Video {
	var best *domain.Video
	bestRank := 0
	for i := range videos {
		v := &videos[i]
		if v.Site != "YouTube" || v.Key == "" {
			continue
		}
		rank, ok := videoTypeRank[v.Type]
		if !ok {
			rank = 99
		}
		if best == nil || rank < bestRank {
			best, bestRank = v, rank
		}
	}
	if best == nil {
		return nil
	}
	out := *best
	return &out
}

// SortByReleaseThenPopularity orders movies newest release first. Movies
// missing a date are compared by popularity.
func SortByReleaseThenPopularity(movies []domain.Movie) []domain.Movie {
	sorted := make([]domain.Movie, len(movies))
	copy(sorted, movies)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.ReleaseDate != "" && b.ReleaseDate != "" && a.ReleaseDate != b.ReleaseDate {
			// YYYY-MM-DD sorts lexically
			return a.ReleaseDate > b.ReleaseDate
		}
		return a.Popularity > b.Popularity
	})
	return sorted
}
