package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/spf13/cobra"
)

const lookupTimeout = 20 * time.Second

// newListCmd builds the favorites or watchlist command group
func newListCmd(e *env, name string) *cobra.Command {
	kind, err := domain.ParseListKind(name)
	if err != nil {
		panic(err)
	}

	cmd := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Manage %s", kind.Title()),
	}
	cmd.AddCommand(
		newListLsCmd(e, kind),
		newListAddCmd(e, kind),
		newListRmCmd(e, kind),
		newListToggleCmd(e, kind),
	)
	return cmd
}

func newListLsCmd(e *env, kind domain.ListKind) *cobra.Command {
	var (
		filter string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   fmt.Sprintf("List %s entries", kind.Title()),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := e.openLists(false)
			if err != nil {
				return err
			}
			movies := service.RankTitles(filter, l.Movies(kind))

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, movies)
			}
			if len(movies) == 0 {
				fmt.Fprintf(out, "No movies in %s\n", kind.Title())
				return nil
			}
			writeSummaries(out, movies)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Only show titles matching this text, best match first")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")
	return cmd
}

func newListAddCmd(e *env, kind domain.ListKind) *cobra.Command {
	return &cobra.Command{
		Use:   "add <movie-id>",
		Short: fmt.Sprintf("Add a movie to %s", kind.Title()),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMovieID(args[0])
			if err != nil {
				return err
			}
			l, err := e.openLists(false)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if l.Contains(kind, id) {
				fmt.Fprintf(out, "Movie %d is already in %s\n", id, kind.Title())
				return nil
			}

			summary, err := e.fetchSummary(cmd.Context(), id)
			if err != nil {
				return err
			}
			l.Add(kind, summary)
			fmt.Fprintf(out, "Added %s to %s\n", summaryLabel(summary), kind.Title())
			return nil
		},
	}
}

func newListRmCmd(e *env, kind domain.ListKind) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <movie-id>",
		Aliases: []string{"remove"},
		Short:   fmt.Sprintf("Remove a movie from %s", kind.Title()),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMovieID(args[0])
			if err != nil {
				return err
			}
			l, err := e.openLists(false)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			summary, ok := findSummary(l.Movies(kind), id)
			if !ok {
				fmt.Fprintf(out, "Movie %d is not in %s\n", id, kind.Title())
				return nil
			}
			l.Remove(kind, id)
			fmt.Fprintf(out, "Removed %s from %s\n", summaryLabel(summary), kind.Title())
			return nil
		},
	}
}

func newListToggleCmd(e *env, kind domain.ListKind) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <movie-id>",
		Short: fmt.Sprintf("Add a movie to %s, or remove it if present", kind.Title()),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMovieID(args[0])
			if err != nil {
				return err
			}
			l, err := e.openLists(false)
			if err != nil {
				return err
			}

			// Removal only needs the saved entry; additions capture fresh data
			summary, saved := findSummary(l.Movies(kind), id)
			if !saved {
				summary, err = e.fetchSummary(cmd.Context(), id)
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if l.Toggle(kind, summary) {
				fmt.Fprintf(out, "Added %s to %s\n", summaryLabel(summary), kind.Title())
			} else {
				fmt.Fprintf(out, "Removed %s from %s\n", summaryLabel(summary), kind.Title())
			}
			return nil
		},
	}
}

// fetchSummary captures the movie's current catalog data
func (e *env) fetchSummary(ctx context.Context, id int) (domain.MovieSummary, error) {
	client, err := e.tmdbClient()
	if err != nil {
		return domain.MovieSummary{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	detail, err := client.MovieDetail(ctx, id)
	if err != nil {
		return domain.MovieSummary{}, fmt.Errorf("failed to fetch movie %d: %w", id, err)
	}
	return domain.SummaryOf(detail.Movie), nil
}

func findSummary(movies []domain.MovieSummary, id int) (domain.MovieSummary, bool) {
	for _, s := range movies {
		if s.ID == id {
			return s, true
		}
	}
	return domain.MovieSummary{}, false
}

func parseMovieID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid movie id %q", arg)
	}
	return id, nil
}

// summaryLabel formats "Title (YYYY)" when the year is known
func summaryLabel(s domain.MovieSummary) string {
	if y := s.Year(); y != "" {
		return fmt.Sprintf("%s (%s)", s.Title, y)
	}
	return s.Title
}

// writeSummaries prints one aligned row per movie: id, year, rating, title
func writeSummaries(w io.Writer, movies []domain.MovieSummary) {
	for _, s := range movies {
		year := s.Year()
		if year == "" {
			year = "-"
		}
		rating := "-"
		if r, ok := s.Rating(); ok {
			rating = fmt.Sprintf("%.1f", r)
		}
		fmt.Fprintf(w, "%-8d %-4s %4s  %s\n", s.ID, year, rating, s.Title)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
