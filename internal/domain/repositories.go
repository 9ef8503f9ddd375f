package domain

import (
	"context"
)

// CatalogRepository provides read access to the remote movie catalog
type CatalogRepository interface {
	// NowPlaying returns movies currently in theaters
	NowPlaying(ctx context.Context, page int) (MoviePage, error)

	// Popular returns the most popular movies
	Popular(ctx context.Context, page int) (MoviePage, error)

	// TopRated returns the highest rated movies
	TopRated(ctx context.Context, page int) (MoviePage, error)

	// Trending returns today's trending movies
	Trending(ctx context.Context, page int) (MoviePage, error)

	// Search finds movies by title
	Search(ctx context.Context, query string, page int) (MoviePage, error)

	// Discover lists movies matching a filter
	Discover(ctx context.Context, filter DiscoverFilter, page int) (MoviePage, error)

	// Genres returns the movie genre list
	Genres(ctx context.Context) ([]Genre, error)
}

// MovieRepository provides per-movie metadata
type MovieRepository interface {
	MovieDetail(ctx context.Context, id int) (*MovieDetail, error)
	MovieCredits(ctx context.Context, id int) (*Credits, error)
	Recommendations(ctx context.Context, id, page int) (MoviePage, error)

	// Videos returns only videos hosted on YouTube
	Videos(ctx context.Context, id int) ([]Video, error)
}

// PersonRepository provides cast and crew metadata
type PersonRepository interface {
	Person(ctx context.Context, id int) (*Person, error)
	PersonMovieCredits(ctx context.Context, id int) (*PersonCredits, error)
}

// Catalog is everything the remote catalog client offers
type Catalog interface {
	CatalogRepository
	MovieRepository
	PersonRepository
}

// SnapshotRepository reads and writes the durable list record.
// Load returns ErrNoSnapshot or ErrCorruptSnapshot when there is nothing usable.
type SnapshotRepository interface {
	Load() (Snapshot, error)
	Save(snapshot Snapshot) error
}
