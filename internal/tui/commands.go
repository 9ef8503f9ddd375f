package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
)

const (
	listTimeout   = 15 * time.Second
	detailTimeout = 20 * time.Second
	tickInterval  = 100 * time.Millisecond
)

// Catalog is the slice of service.CatalogService the TUI depends on
type Catalog interface {
	Browse(ctx context.Context, source domain.Source, query string, filter domain.DiscoverFilter, page int) (domain.MoviePage, error)
	Details(ctx context.Context, id int) (service.MovieView, error)
	Trailer(ctx context.Context, id int) (*domain.Video, error)
	Person(ctx context.Context, id int) (service.PersonView, error)
	Genres(ctx context.Context) ([]domain.Genre, error)
	InvalidateCache()
}

// Command factories for async operations

// BrowseCmd loads one page of a catalog source
func BrowseCmd(svc Catalog, seq uint64, source domain.Source, query string, filter domain.DiscoverFilter, page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), listTimeout)
		defer cancel()

		result, err := svc.Browse(ctx, source, query, filter, page)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading " + source.Label(), Seq: seq}
		}
		return PageLoadedMsg{Seq: seq, Source: source, Query: query, Page: result}
	}
}

// DetailsCmd loads the inspector view and trailer for a movie.
// A missing trailer is not an error.
func DetailsCmd(svc Catalog, seq uint64, movieID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), detailTimeout)
		defer cancel()

		view, err := svc.Details(ctx, movieID)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading details", Seq: seq}
		}
		trailer, _ := svc.Trailer(ctx, movieID)
		return DetailsLoadedMsg{Seq: seq, MovieID: movieID, View: view, Trailer: trailer}
	}
}

// PersonCmd loads a cast member and their movies
func PersonCmd(svc Catalog, seq uint64, personID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), detailTimeout)
		defer cancel()

		view, err := svc.Person(ctx, personID)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading person", Seq: seq}
		}
		return PersonLoadedMsg{Seq: seq, PersonID: personID, View: view}
	}
}

// OpenCmd runs an external opener off the update loop and reports the outcome
func OpenCmd(open func(url string) error, url, label string) tea.Cmd {
	return func() tea.Msg {
		if err := open(url); err != nil {
			return StatusMsg{Message: "Could not open " + label + ": " + err.Error(), IsError: true}
		}
		return StatusMsg{Message: "Opened " + label}
	}
}

// GenresCmd loads the discover genre list. Failure leaves the modal with "Any" only.
func GenresCmd(svc Catalog) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), listTimeout)
		defer cancel()

		genres, err := svc.Genres(ctx)
		if err != nil {
			return nil
		}
		return GenresLoadedMsg{Genres: genres}
	}
}

// WaitForListChangeCmd waits for the next List Store notification
func WaitForListChangeCmd(ch <-chan domain.ListChange) tea.Cmd {
	return func() tea.Msg {
		change, ok := <-ch
		if !ok {
			return nil
		}
		return ListChangedMsg{Change: change}
	}
}

// TickCmd returns a command that sends a tick message
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears the status after a delay
func ClearStatusCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
