package domain

import (
	"fmt"
	"strings"
)

// Source identifies what feeds the main movie list
type Source int

const (
	SourceNowPlaying Source = iota
	SourceTrending
	SourceTopRated
	SourcePopular
	SourceDiscover
	SourceSearch
	SourceFavorites
	SourceWatchlist
)

// Sources lists every source in sidebar order
var Sources = []Source{
	SourceNowPlaying,
	SourceTrending,
	SourceTopRated,
	SourcePopular,
	SourceDiscover,
	SourceSearch,
	SourceFavorites,
	SourceWatchlist,
}

// String returns the navigation name used on the command line and in config
func (s Source) String() string {
	switch s {
	case SourceNowPlaying:
		return "now-playing"
	case SourceTrending:
		return "trending"
	case SourceTopRated:
		return "top-rated"
	case SourcePopular:
		return "popular"
	case SourceDiscover:
		return "discover"
	case SourceSearch:
		return "search"
	case SourceFavorites:
		return "favorites"
	case SourceWatchlist:
		return "watchlist"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// Label is the short name shown in the sidebar
func (s Source) Label() string {
	switch s {
	case SourceNowPlaying:
		return "Now Playing"
	case SourceTrending:
		return "Trending"
	case SourceTopRated:
		return "Top Rated"
	case SourcePopular:
		return "Popular"
	case SourceDiscover:
		return "Discover"
	case SourceSearch:
		return "Search"
	case SourceFavorites:
		return "Favorites"
	case SourceWatchlist:
		return "Watchlist"
	default:
		return s.String()
	}
}

// Title is the heading shown above the movie list. query is only used for search.
func (s Source) Title(query string) string {
	switch s {
	case SourceNowPlaying:
		return "Now Playing"
	case SourceTrending:
		return "Trending Movies"
	case SourceTopRated:
		return "Top Rated Movies"
	case SourcePopular:
		return "Popular Movies"
	case SourceSearch:
		if query == "" {
			return "Search"
		}
		return fmt.Sprintf("Search Results for %q", query)
	case SourceFavorites:
		return Favorites.Title()
	case SourceWatchlist:
		return Watchlist.Title()
	default:
		return "Explore Movies"
	}
}

// IsList reports whether the source is served from a personal list
func (s Source) IsList() bool {
	return s == SourceFavorites || s == SourceWatchlist
}

// ListKind returns the list backing the source, if any
func (s Source) ListKind() (ListKind, bool) {
	switch s {
	case SourceFavorites:
		return Favorites, true
	case SourceWatchlist:
		return Watchlist, true
	default:
		return 0, false
	}
}

// ParseSource accepts the names produced by String
func ParseSource(name string) (Source, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range Sources {
		if s.String() == name {
			return s, nil
		}
	}
	switch name {
	case "", "explore":
		return SourceDiscover, nil
	case "top_rated", "toprated":
		return SourceTopRated, nil
	case "now_playing", "nowplaying":
		return SourceNowPlaying, nil
	}
	return 0, fmt.Errorf("unknown source %q", name)
}

// Sort orders accepted by the discover endpoint
const (
	SortPopularityDesc  = "popularity.desc"
	SortRatingDesc      = "vote_average.desc"
	SortReleaseDateDesc = "primary_release_date.desc"
	SortRevenueDesc     = "revenue.desc"
	SortTitleAsc        = "original_title.asc"
)

// SortOrders lists discover sort orders with their display names
var SortOrders = []struct {
	Value string
	Label string
}{
	{SortPopularityDesc, "Most Popular"},
	{SortRatingDesc, "Highest Rated"},
	{SortReleaseDateDesc, "Newest"},
	{SortRevenueDesc, "Highest Grossing"},
	{SortTitleAsc, "Title A-Z"},
}

// DiscoverFilter narrows the discover source. Zero values mean "any".
type DiscoverFilter struct {
	GenreID   int
	Year      int
	MinRating float64
	SortBy    string // Defaults to SortPopularityDesc
}

// Sort returns the effective sort order
func (f DiscoverFilter) Sort() string {
	if f.SortBy == "" {
		return SortPopularityDesc
	}
	return f.SortBy
}

// IsZero reports whether no filter is applied
func (f DiscoverFilter) IsZero() bool {
	return f.GenreID == 0 && f.Year == 0 && f.MinRating == 0 && f.Sort() == SortPopularityDesc
}

// Year bounds offered by the discover filter
const (
	MinDiscoverYear = 1950
)
