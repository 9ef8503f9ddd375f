package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/tmdb"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.State == StateHelp {
		m.State = StateBrowsing
		return m, nil
	}

	// Route to active modal if any
	if handled, newModel, cmd := m.routeToModal(msg); handled {
		return newModel, cmd
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if top := m.ColumnStack.Top(); top != nil && top.IsFiltering() {
			top.ClearFilter()
			return m, m.updateInspector()
		}
		if m.ColumnStack.CanGoBack() {
			return m.handleBack()
		}
		return m, nil

	case key.Matches(msg, Keys.Filter):
		if top := m.ColumnStack.Top(); top != nil && !m.SidebarFocused {
			top.ToggleFilter()
		}
		return m, nil

	case key.Matches(msg, Keys.Search):
		// Inside a saved list, search jumps within it instead of hitting the catalog
		if kind, ok := m.Source.ListKind(); ok && m.ColumnStack.Len() == 1 {
			m.Omnibar.ShowLocal(kind, m.Lists.Movies(kind))
		} else {
			m.Omnibar.Show(m.Query)
		}
		m.Omnibar.SetSize(m.Width, m.Height)
		return m, m.Omnibar.Init()

	case key.Matches(msg, Keys.Discover):
		m.DiscoverModal.Show(m.Filter)
		return m, nil

	case key.Matches(msg, Keys.ToggleFavorite):
		return m.toggleList(domain.Favorites)

	case key.Matches(msg, Keys.ToggleWatchlist):
		return m.toggleList(domain.Watchlist)

	case key.Matches(msg, Keys.PostersOnly):
		m.PostersOnly = !m.PostersOnly
		if root := m.ColumnStack.Root(); root != nil {
			root.RefreshMovies(m.visibleResults())
		}
		m.StatusMsg = "Showing all movies"
		if m.PostersOnly {
			m.StatusMsg = "Showing movies with posters only"
		}
		m.StatusIsErr = false
		return m, tea.Batch(m.updateInspector(), ClearStatusCmd(2*time.Second))

	case key.Matches(msg, Keys.ToggleInspector):
		m.ShowInspector = !m.ShowInspector
		m.updateLayout()
		return m, nil

	case key.Matches(msg, Keys.Refresh):
		return m.refresh()

	case key.Matches(msg, Keys.Trailer):
		return m.playTrailer()

	case key.Matches(msg, Keys.OpenPage):
		return m.openPage()

	case key.Matches(msg, Keys.NextPage):
		return m, m.gotoPage(m.Page + 1)

	case key.Matches(msg, Keys.PrevPage):
		return m, m.gotoPage(m.Page - 1)

	case key.Matches(msg, Keys.GoToPage):
		if !m.Source.IsList() && m.TotalPages > 1 && m.ColumnStack.Len() == 1 {
			m.InputModal.Show(
				"Go to page",
				fmt.Sprintf("1-%d", m.TotalPages),
				"enter to jump · esc to cancel",
			)
		}
		return m, nil

	case key.Matches(msg, Keys.ScrollInfo):
		if msg.String() == "J" {
			m.Inspector.ScrollBy(1)
		} else {
			m.Inspector.ScrollBy(-1)
		}
		return m, nil

	case key.Matches(msg, Keys.FocusNext):
		if m.ColumnStack.Len() == 1 {
			m.setSidebarFocus(!m.SidebarFocused)
		}
		return m, nil

	case key.Matches(msg, Keys.Cast):
		return m.showCast()

	case key.Matches(msg, Keys.Enter, Keys.Right):
		return m.handleEnter()

	case key.Matches(msg, Keys.Back):
		if m.SidebarFocused {
			return m, nil
		}
		return m.handleBack()
	}

	// Let the focused pane handle remaining keys (j/k/g/G navigation)
	if m.SidebarFocused {
		var cmd tea.Cmd
		m.Sidebar, cmd = m.Sidebar.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	if top := m.ColumnStack.Top(); top != nil {
		oldCursor := top.SelectedIndex()
		_, cmd := top.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if oldCursor != top.SelectedIndex() {
			cmds = append(cmds, m.updateInspector())
		}
	}

	return m, tea.Batch(cmds...)
}

// routeToModal routes key input to active modals
// Returns (handled, model, cmd) where handled is true if a modal consumed the input
func (m Model) routeToModal(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	if m.Omnibar.IsVisible() {
		var cmd tea.Cmd
		var submitted bool
		m.Omnibar, cmd, submitted = m.Omnibar.Update(msg)
		if !submitted {
			return true, m, cmd
		}

		if m.Omnibar.IsLocal() {
			if r := m.Omnibar.SelectedResult(); r != nil {
				if root := m.ColumnStack.Root(); root != nil {
					root.SelectMovie(r.ID)
				}
			}
			m.Omnibar.Hide()
			m.setSidebarFocus(false)
			return true, m, m.updateInspector()
		}

		m.Query = m.Omnibar.Query()
		m.Omnibar.Hide()
		m.setSidebarFocus(false)
		return true, m, m.openSource(domain.SourceSearch)
	}

	if m.DiscoverModal.IsVisible() {
		_, applied := m.DiscoverModal.HandleKey(msg.String())
		if applied != nil {
			m.Filter = *applied
			m.setSidebarFocus(false)
			return true, m, m.openSource(domain.SourceDiscover)
		}
		return true, m, nil
	}

	if m.InputModal.IsVisible() {
		var cmd tea.Cmd
		var submitted bool
		m.InputModal, cmd, submitted = m.InputModal.Update(msg)
		if !submitted {
			return true, m, cmd
		}

		value := m.InputModal.Value()
		m.InputModal.Hide()
		page, err := strconv.Atoi(value)
		if err != nil {
			m.StatusMsg = fmt.Sprintf("Not a page number: %q", value)
			m.StatusIsErr = true
			return true, m, ClearStatusCmd(3 * time.Second)
		}
		return true, m, m.gotoPage(page)
	}

	// Handle filter typing mode
	if top := m.ColumnStack.Top(); top != nil && !m.SidebarFocused && top.IsFilterTyping() {
		_, cmd := top.Update(msg)
		return true, m, tea.Batch(cmd, m.updateInspector())
	}

	return false, m, nil
}

// toggleList flips the selected movie's membership in a saved list. The
// view catches up when the store's change notification arrives.
func (m Model) toggleList(kind domain.ListKind) (tea.Model, tea.Cmd) {
	movie := m.selectedMovie()
	if movie == nil {
		return m, nil
	}

	verb := "Removed from"
	if m.Lists.Toggle(kind, domain.SummaryOf(*movie)) {
		verb = "Added to"
	}
	m.StatusMsg = fmt.Sprintf("%s %s: %s", verb, kind.Title(), movie.DisplayTitle())
	m.StatusIsErr = false
	return m, ClearStatusCmd(2 * time.Second)
}

// playTrailer opens the selected movie's trailer once its details are loaded
func (m Model) playTrailer() (tea.Model, tea.Cmd) {
	movie := m.selectedMovie()
	if movie == nil || m.opener == nil {
		return m, nil
	}

	d, ok := m.details[movie.ID]
	switch {
	case !ok:
		m.StatusMsg = "Details still loading"
	case d.trailer == nil:
		m.StatusMsg = "No trailer for " + movie.DisplayTitle()
	default:
		return m, OpenCmd(m.opener.PlayTrailer, tmdb.YouTubeURL(d.trailer.Key), "trailer for "+movie.DisplayTitle())
	}
	m.StatusIsErr = false
	return m, ClearStatusCmd(2 * time.Second)
}

// openPage opens the selected movie, or the cast member under the cursor,
// on the catalog's website
func (m Model) openPage() (tea.Model, tea.Cmd) {
	top := m.ColumnStack.Top()
	if m.SidebarFocused || top == nil || m.opener == nil {
		return m, nil
	}
	if movie := top.SelectedMovie(); movie != nil {
		return m, OpenCmd(m.opener.OpenPage, tmdb.MoviePageURL(movie.ID), movie.DisplayTitle())
	}
	if member := top.SelectedCast(); member != nil {
		return m, OpenCmd(m.opener.OpenPage, tmdb.PersonPageURL(member.ID), member.Name)
	}
	return m, nil
}

// selectedMovie returns the movie under the cursor of the focused column
func (m Model) selectedMovie() *domain.Movie {
	top := m.ColumnStack.Top()
	if m.SidebarFocused || top == nil {
		return nil
	}
	return top.SelectedMovie()
}

// refresh drops every cached catalog response and reloads what is on screen
func (m Model) refresh() (tea.Model, tea.Cmd) {
	m.Catalog.InvalidateCache()
	m.details = make(map[int]movieDetails)
	m.persons = make(map[int]service.PersonView)
	m.failed = make(map[string]bool)
	m.detailWant = 0
	m.personWant = 0

	cmds := []tea.Cmd{m.updateInspector()}
	if !m.Source.IsList() && (m.Source != domain.SourceSearch || m.Query != "") {
		cmds = append(cmds, m.loadPage(m.Page))
	}
	return m, tea.Batch(cmds...)
}
