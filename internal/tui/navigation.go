package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/tui/components"
)

// nextSeq hands out request sequence numbers. Zero is never issued.
func (m *Model) nextSeq() uint64 {
	m.seq++
	return m.seq
}

func failKey(prefix string, id int) string {
	return fmt.Sprintf("%s:%d", prefix, id)
}

// openSource resets the column stack to a fresh root column for src.
// Saved lists fill synchronously; catalog sources start loading page 1.
func (m *Model) openSource(src domain.Source) tea.Cmd {
	if src != domain.SourceSearch {
		m.Query = ""
	}
	m.Source = src
	m.Page = 1
	m.TotalPages = 1
	m.results = nil
	m.pendingCast = 0
	m.pendingPerson = 0

	// Invalidate any page still in flight for the previous source
	m.pageSeq = m.nextSeq()
	m.Loading = false

	root := components.NewMoviesColumn(components.ColumnTypeMovies, src.Title(m.Query), nil, m.Lists)
	m.ColumnStack.Reset(root)
	m.Sidebar.SetActive(src)
	m.setSidebarFocus(m.SidebarFocused)
	m.updateLayout()

	if kind, ok := src.ListKind(); ok {
		root.SetEmptyText(emptyListText(kind))
		root.SetMovies(m.visibleResults())
		return m.updateInspector()
	}

	if src == domain.SourceSearch && m.Query == "" {
		root.SetEmptyText("Press s to search")
		return m.updateInspector()
	}

	root.SetEmptyText("No movies found")
	return m.loadPage(1)
}

func emptyListText(kind domain.ListKind) string {
	if kind == domain.Watchlist {
		return "Nothing here yet. Press w on a movie"
	}
	return "Nothing here yet. Press f on a movie"
}

// loadPage requests one page of the active catalog source
func (m *Model) loadPage(page int) tea.Cmd {
	m.pageSeq = m.nextSeq()
	m.Loading = true
	if root := m.ColumnStack.Root(); root != nil {
		root.SetLoading(true)
	}
	return BrowseCmd(m.Catalog, m.pageSeq, m.Source, m.Query, m.Filter, page)
}

// gotoPage loads another page of the active catalog source. Saved lists
// are a single page and paging is only allowed from the root column.
func (m *Model) gotoPage(page int) tea.Cmd {
	if m.Source.IsList() || m.ColumnStack.Len() > 1 {
		return nil
	}
	page = service.PageWindow(m.Page, m.TotalPages).Clamp(page)
	if page == m.Page {
		return nil
	}
	return m.loadPage(page)
}

// visibleResults is what the root column shows: the loaded page or the
// saved list, with the posters-only toggle applied
func (m Model) visibleResults() []domain.Movie {
	movies := m.results
	if kind, ok := m.Source.ListKind(); ok {
		movies = m.listMovies(kind)
	}
	if m.PostersOnly {
		return service.FilterWithPoster(movies)
	}
	return movies
}

// listMovies expands a saved list for the movie column
func (m Model) listMovies(kind domain.ListKind) []domain.Movie {
	summaries := m.Lists.Movies(kind)
	movies := make([]domain.Movie, len(summaries))
	for i, s := range summaries {
		movies[i] = s.Movie()
	}
	return movies
}

// refreshLists re-reads the store after a change signal: the badges always,
// the rows when a saved list is on screen
func (m *Model) refreshLists() {
	m.Sidebar.SetCounts(m.Lists.Count(domain.Favorites), m.Lists.Count(domain.Watchlist))

	if !m.Source.IsList() {
		return
	}
	if root := m.ColumnStack.Root(); root != nil {
		root.RefreshMovies(m.visibleResults())
	}
}

// setSidebarFocus moves focus between the sidebar and the top column
func (m *Model) setSidebarFocus(focused bool) {
	m.SidebarFocused = focused
	m.Sidebar.SetFocused(focused)
	m.ColumnStack.SetFocused(!focused)
}

// updateInspector points the inspector at the top column's selection and
// requests its details when they are neither cached, in flight nor failed
func (m *Model) updateInspector() tea.Cmd {
	top := m.ColumnStack.Top()
	if top == nil {
		m.Inspector.SetItem(nil)
		return nil
	}

	if movie := top.SelectedMovie(); movie != nil {
		m.pendingPerson = 0
		if m.pendingCast != movie.ID {
			m.pendingCast = 0
		}
		return m.inspectMovie(*movie)
	}

	m.pendingCast = 0
	if member := top.SelectedCast(); member != nil {
		if m.pendingPerson != member.ID {
			m.pendingPerson = 0
		}
		return m.inspectPerson(*member)
	}

	m.pendingPerson = 0
	m.Inspector.SetItem(nil)
	return nil
}

func (m *Model) inspectMovie(movie domain.Movie) tea.Cmd {
	info := components.MovieInfo{Movie: movie}
	if d, ok := m.details[movie.ID]; ok {
		info.View = &d.view
		info.Trailer = d.trailer
		m.Inspector.SetItem(info)
		return nil
	}
	if m.failed[failKey("movie", movie.ID)] {
		m.Inspector.SetItem(info)
		return nil
	}

	info.Loading = true
	m.Inspector.SetItem(info)
	if m.detailWant == movie.ID {
		return nil
	}
	m.detailWant = movie.ID
	m.detailSeq = m.nextSeq()
	return DetailsCmd(m.Catalog, m.detailSeq, movie.ID)
}

func (m *Model) inspectPerson(member domain.CastMember) tea.Cmd {
	info := components.CastInfo{Member: member}
	if p, ok := m.persons[member.ID]; ok {
		info.View = &p
		m.Inspector.SetItem(info)
		return nil
	}
	if m.failed[failKey("person", member.ID)] {
		m.Inspector.SetItem(info)
		return nil
	}

	info.Loading = true
	m.Inspector.SetItem(info)
	if m.personWant == member.ID {
		return nil
	}
	m.personWant = member.ID
	m.personSeq = m.nextSeq()
	return PersonCmd(m.Catalog, m.personSeq, member.ID)
}

// pushCast opens the cast column for a movie whose details are loaded
func (m *Model) pushCast(movieID int) {
	d, ok := m.details[movieID]
	top := m.ColumnStack.Top()
	if !ok || top == nil {
		return
	}
	if selected := top.SelectedMovie(); selected == nil || selected.ID != movieID {
		return
	}

	title := "Cast"
	if d.view.Detail != nil {
		title = "Cast: " + d.view.Detail.DisplayTitle()
	}
	m.ColumnStack.Push(components.NewCastColumn(title, d.view.Cast), top.SelectedIndex())
	m.updateLayout()
}

// pushPersonMovies opens the filmography column for a loaded cast member
func (m *Model) pushPersonMovies(personID int) {
	p, ok := m.persons[personID]
	top := m.ColumnStack.Top()
	if !ok || top == nil {
		return
	}
	member := top.SelectedCast()
	if member == nil || member.ID != personID {
		return
	}

	title := member.Name
	if p.Person != nil && p.Person.Name != "" {
		title = p.Person.Name
	}
	col := components.NewMoviesColumn(components.ColumnTypePersonMovies, title, p.Movies, m.Lists)
	col.SetEmptyText("No movies with posters")
	m.ColumnStack.Push(col, top.SelectedIndex())
	m.updateLayout()
}

// handleBack pops one column, or hands focus to the sidebar at the root
func (m Model) handleBack() (tea.Model, tea.Cmd) {
	if m.ColumnStack.CanGoBack() {
		m.ColumnStack.Pop()
		m.updateLayout()
		return m, m.updateInspector()
	}
	m.setSidebarFocus(true)
	return m, nil
}

// showCast drills into the selected movie's cast, fetching details first
// if needed. The column is pushed when the details arrive.
func (m Model) showCast() (tea.Model, tea.Cmd) {
	top := m.ColumnStack.Top()
	if m.SidebarFocused || top == nil {
		return m, nil
	}
	movie := top.SelectedMovie()
	if movie == nil {
		return m, nil
	}

	if _, ok := m.details[movie.ID]; ok {
		m.pushCast(movie.ID)
		return m, m.updateInspector()
	}

	// An explicit request retries a failed load
	delete(m.failed, failKey("movie", movie.ID))
	m.pendingCast = movie.ID
	return m, m.updateInspector()
}

// showPersonMovies drills into a cast member's movies
func (m Model) showPersonMovies(member domain.CastMember) (tea.Model, tea.Cmd) {
	if _, ok := m.persons[member.ID]; ok {
		m.pushPersonMovies(member.ID)
		return m, m.updateInspector()
	}

	delete(m.failed, failKey("person", member.ID))
	m.pendingPerson = member.ID
	return m, m.updateInspector()
}

// handleEnter opens the sidebar source or drills into the selection
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	if m.SidebarFocused {
		src, ok := m.Sidebar.SelectedSource()
		if !ok {
			return m, nil
		}
		m.setSidebarFocus(false)
		if src == m.Source && src != domain.SourceSearch {
			return m, m.updateInspector()
		}
		cmd := m.openSource(src)
		if src == domain.SourceSearch && m.Query == "" {
			m.Omnibar.Show("")
			m.Omnibar.SetSize(m.Width, m.Height)
			return m, tea.Batch(cmd, m.Omnibar.Init())
		}
		return m, cmd
	}

	top := m.ColumnStack.Top()
	if top == nil {
		return m, nil
	}
	if top.SelectedMovie() != nil {
		return m.showCast()
	}
	if member := top.SelectedCast(); member != nil {
		return m.showPersonMovies(*member)
	}
	return m, nil
}
