package tui

import (
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
)

// Message types for the TUI

// ErrMsg represents a failed catalog request. Seq ties it to the view that
// asked, so failures for superseded requests are dropped like their results.
type ErrMsg struct {
	Err     error
	Context string
	Seq     uint64
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// PageLoadedMsg carries one page of the active source
type PageLoadedMsg struct {
	Seq    uint64
	Source domain.Source
	Query  string
	Page   domain.MoviePage
}

// DetailsLoadedMsg carries the inspector data for one movie
type DetailsLoadedMsg struct {
	Seq     uint64
	MovieID int
	View    service.MovieView
	Trailer *domain.Video
}

// PersonLoadedMsg carries a cast member's filmography
type PersonLoadedMsg struct {
	Seq      uint64
	PersonID int
	View     service.PersonView
}

// GenresLoadedMsg carries the genre list for the discover modal
type GenresLoadedMsg struct {
	Genres []domain.Genre
}

// ListChangedMsg relays a List Store notification into the update loop
type ListChangedMsg struct {
	Change domain.ListChange
}

// TickMsg drives the spinner animation
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
