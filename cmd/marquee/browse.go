package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/spf13/cobra"
)

const pageTimeout = 15 * time.Second

func newBrowseCmd(e *env) *cobra.Command {
	var (
		page   int
		pages  int
		query  string
		filter domain.DiscoverFilter
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "browse <source>",
		Short: "Print a page of a catalog source",
		Long: `Print one page of a catalog source, or several consecutive pages joined.

Sources: now-playing, trending, top-rated, popular, discover, search.
A --query always searches, whatever the source.`,
		Example: `  marquee browse popular --page 2
  marquee browse search --query "heat"
  marquee browse discover --genre 28 --year 1995 --min-rating 7 --pages 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := domain.ParseSource(args[0])
			if err != nil {
				return err
			}
			if src.IsList() {
				return fmt.Errorf("%s is a saved list, use `marquee %s ls`", src, src)
			}
			query = strings.TrimSpace(query)
			if src == domain.SourceSearch && query == "" {
				return fmt.Errorf("search needs --query")
			}
			if page < 1 || page > domain.MaxPages {
				return fmt.Errorf("--page must be between 1 and %d", domain.MaxPages)
			}
			pages = max(pages, 1)

			catalog, err := e.catalog()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(pages)*pageTimeout)
			defer cancel()

			out := cmd.OutOrStdout()
			if pages > 1 {
				movies, err := catalog.BrowsePages(ctx, src, query, filter, page, pages)
				if err != nil {
					return fmt.Errorf("failed to load %s: %w", src.Label(), err)
				}
				return printMovies(out, movies, asJSON)
			}

			result, err := catalog.Browse(ctx, src, query, filter, page)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", src.Label(), err)
			}
			if !asJSON {
				fmt.Fprintf(out, "%s · page %d of %d\n", src.Title(query), result.Page, max(result.TotalPages, 1))
			}
			return printMovies(out, result.Results, asJSON)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&page, "page", "p", 1, "Page to print")
	flags.IntVarP(&pages, "pages", "n", 1, "Number of consecutive pages to print")
	flags.StringVarP(&query, "query", "q", "", "Search text")
	flags.IntVar(&filter.GenreID, "genre", 0, "Discover: genre id")
	flags.IntVar(&filter.Year, "year", 0, "Discover: primary release year")
	flags.Float64Var(&filter.MinRating, "min-rating", 0, "Discover: minimum average vote")
	flags.StringVar(&filter.SortBy, "sort", domain.SortPopularityDesc, "Discover: sort order")
	flags.BoolVar(&asJSON, "json", false, "Print movies as JSON")
	return cmd
}

// printMovies prints catalog movies in the same shape as saved entries
func printMovies(w io.Writer, movies []domain.Movie, asJSON bool) error {
	summaries := make([]domain.MovieSummary, len(movies))
	for i, m := range movies {
		summaries[i] = domain.SummaryOf(m)
	}
	if asJSON {
		return writeJSON(w, summaries)
	}
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No movies found")
		return nil
	}
	writeSummaries(w, summaries)
	return nil
}
