package service

import (
	"context"

	"github.com/mmcdole/marquee/internal/domain"
)

// fetchPages walks catalog pages starting at start until count pages have
// been read or the last page is reached.
func fetchPages[T any](
	ctx context.Context,
	fetch func(ctx context.Context, page int) ([]T, int, error),
	start, count int,
	onProgress func(page, totalPages int),
) ([]T, error) {
	if start < 1 {
		start = 1
	}
	if count < 1 {
		count = 1
	}

	var all []T
	for page := start; page < start+count; page++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		items, totalPages, err := fetch(ctx, page)
		if err != nil {
			return nil, err
		}

		all = append(all, items...)

		if onProgress != nil {
			onProgress(page, totalPages)
		}

		if page >= totalPages || len(items) == 0 {
			break
		}
	}

	return all, nil
}

// BrowsePages reads up to count consecutive pages of a source
func (s *CatalogService) BrowsePages(ctx context.Context, source domain.Source, query string, filter domain.DiscoverFilter, start, count int) ([]domain.Movie, error) {
	return fetchPages(ctx, func(ctx context.Context, page int) ([]domain.Movie, int, error) {
		result, err := s.Browse(ctx, source, query, filter, page)
		if err != nil {
			return nil, 0, err
		}
		return result.Results, result.TotalPages, nil
	}, start, count, func(page, totalPages int) {
		s.logger.Debug("page fetched", "source", source.String(), "page", page, "total_pages", totalPages)
	})
}

// FilterWithPoster drops movies without a poster
func FilterWithPoster(movies []domain.Movie) []domain.Movie {
	filtered := make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		if m.PosterPath != "" {
			filtered = append(filtered, m)
		}
	}
	return filtered
}
