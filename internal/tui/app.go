package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
)


// Opener hands URLs to programs outside the terminal
type Opener interface {
	PlayTrailer(url string) error
	OpenPage(url string) error
}

// Options configures a new Model
type Options struct {
	StartSource domain.Source
	PostersOnly bool
	Opener      Opener // nil disables the trailer and page keys
	Logger      *slog.Logger
}

// movieDetails is a loaded inspector entry
type movieDetails struct {
	view    service.MovieView
	trailer *domain.Video
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	Catalog Catalog
	Lists   domain.Lists
	opener  Opener
	logger  *slog.Logger

	// UI Components
	Sidebar       components.Sidebar
	ColumnStack   *ColumnStack
	Inspector     components.Inspector
	Omnibar       components.Omnibar
	DiscoverModal components.DiscoverModal
	InputModal    components.InputModal

	// Active source
	Source      domain.Source
	Query       string
	Filter      domain.DiscoverFilter
	Page        int
	TotalPages  int
	PostersOnly bool
	results     []domain.Movie // current catalog page before the posters filter

	// Request sequencing. Each view remembers the seq of its newest request
	// and drops responses carrying any other.
	seq       uint64
	pageSeq   uint64
	detailSeq uint64
	personSeq uint64

	// Inspector data
	details       map[int]movieDetails
	persons       map[int]service.PersonView
	failed        map[string]bool // "movie:ID" or "person:ID" that failed to load
	detailWant    int             // movie with a request in flight
	personWant    int             // person with a request in flight
	pendingCast   int             // push the cast column when this movie's details arrive
	pendingPerson int             // push the filmography when this person arrives

	listChanges chan domain.ListChange
	startCmd    tea.Cmd

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg      string
	StatusIsErr    bool
	Loading        bool
	SpinnerFrame   int
	ShowInspector  bool
	SidebarFocused bool
}

// NewModel creates the application model and subscribes it to list changes
func NewModel(catalog Catalog, lists domain.Lists, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	listChanges := make(chan domain.ListChange, 1)
	lists.Subscribe(NewChannelObserver(listChanges))

	m := Model{
		State:         StateBrowsing,
		Catalog:       catalog,
		Lists:         lists,
		opener:        opts.Opener,
		logger:        logger,
		Sidebar:       components.NewSidebar(),
		ColumnStack:   NewColumnStack(),
		Inspector:     components.NewInspector(lists),
		Omnibar:       components.NewOmnibar(),
		DiscoverModal: components.NewDiscoverModal(time.Now().Year()),
		InputModal:    components.NewInputModal(),
		Source:        opts.StartSource,
		Page:          1,
		TotalPages:    1,
		PostersOnly:   opts.PostersOnly,
		details:       make(map[int]movieDetails),
		persons:       make(map[int]service.PersonView),
		failed:        make(map[string]bool),
		listChanges:   listChanges,
		ShowInspector: true,
	}
	m.Sidebar.SetCounts(lists.Count(domain.Favorites), lists.Count(domain.Watchlist))
	m.startCmd = m.openSource(m.Source)
	return m
}

// Init starts the first page load, the genre fetch and the list watcher
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.startCmd,
		GenresCmd(m.Catalog),
		WaitForListChangeCmd(m.listChanges),
		TickCmd(tickInterval),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		m.ColumnStack.UpdateSpinnerFrame(m.SpinnerFrame)
		m.Inspector.SetSpinnerFrame(m.SpinnerFrame)
		return m, TickCmd(tickInterval)

	case PageLoadedMsg:
		if msg.Seq != m.pageSeq {
			m.logger.Debug("dropping stale page", "source", msg.Source.String(), "seq", msg.Seq)
			return m, nil
		}
		m.Loading = false
		m.Page = msg.Page.Page
		m.TotalPages = max(msg.Page.TotalPages, 1)
		m.results = msg.Page.Results
		if root := m.ColumnStack.Root(); root != nil {
			root.SetMovies(m.visibleResults())
		}
		return m, m.updateInspector()

	case DetailsLoadedMsg:
		if msg.Seq != m.detailSeq {
			return m, nil
		}
		m.detailWant = 0
		m.details[msg.MovieID] = movieDetails{view: msg.View, trailer: msg.Trailer}
		if m.pendingCast == msg.MovieID {
			m.pendingCast = 0
			m.pushCast(msg.MovieID)
		}
		return m, m.updateInspector()

	case PersonLoadedMsg:
		if msg.Seq != m.personSeq {
			return m, nil
		}
		m.personWant = 0
		m.persons[msg.PersonID] = msg.View
		if m.pendingPerson == msg.PersonID {
			m.pendingPerson = 0
			m.pushPersonMovies(msg.PersonID)
		}
		return m, m.updateInspector()

	case GenresLoadedMsg:
		m.DiscoverModal.SetGenres(msg.Genres)
		return m, nil

	case ListChangedMsg:
		m.refreshLists()
		return m, tea.Batch(m.updateInspector(), WaitForListChangeCmd(m.listChanges))

	case ErrMsg:
		return m.handleError(msg)

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(3 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Forward cursor blink and other input messages to an open text input
	var cmd tea.Cmd
	switch {
	case m.Omnibar.IsVisible():
		m.Omnibar, cmd, _ = m.Omnibar.Update(msg)
	case m.InputModal.IsVisible():
		m.InputModal, cmd, _ = m.InputModal.Update(msg)
	}
	return m, cmd
}

// handleError routes a failed request to the view that asked for it.
// Failures render as that view's empty state. Only an auth failure is named
// in the status line, since the user has to fix the token to recover.
func (m Model) handleError(msg ErrMsg) (tea.Model, tea.Cmd) {
	switch msg.Seq {
	case m.pageSeq:
		m.Loading = false
		m.results = nil
		if root := m.ColumnStack.Root(); root != nil {
			root.SetMovies(nil)
			root.SetEmptyText("Nothing to show")
		}
	case m.detailSeq:
		if m.detailWant != 0 {
			m.failed[failKey("movie", m.detailWant)] = true
		}
		m.detailWant = 0
		m.pendingCast = 0
	case m.personSeq:
		if m.personWant != 0 {
			m.failed[failKey("person", m.personWant)] = true
		}
		m.personWant = 0
		m.pendingPerson = 0
	default:
		m.logger.Debug("dropping stale error", "context", msg.Context, "seq", msg.Seq)
		return m, nil
	}

	m.logger.Warn("request failed", "context", msg.Context, "error", msg.Err)

	var cmds []tea.Cmd
	if errors.Is(msg.Err, domain.ErrAuthFailed) {
		m.StatusMsg = "TMDB rejected the token, check tmdb.token in your config"
		m.StatusIsErr = true
		cmds = append(cmds, ClearStatusCmd(10*time.Second))
	}
	cmds = append(cmds, m.updateInspector())
	return m, tea.Batch(cmds...)
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	layout := m.calculateColumnLayout(m.Width)
	contentHeight := m.Height - ChromeHeight

	var zones []string
	if layout.sidebarWidth > 0 {
		m.Sidebar.SetSize(layout.sidebarWidth, contentHeight)
		zones = append(zones, m.Sidebar.View())
	}
	if parent := m.ColumnStack.Parent(); parent != nil {
		parent.SetSize(layout.parentWidth, contentHeight)
		zones = append(zones, parent.View())
	}
	if top := m.ColumnStack.Top(); top != nil {
		top.SetSize(layout.activeWidth, contentHeight)
		zones = append(zones, top.View())
	}
	if layout.inspectorWidth > 0 {
		m.Inspector.SetSize(layout.inspectorWidth, contentHeight)
		zones = append(zones, m.Inspector.View())
	}

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, zones...),
		m.renderPager(),
		m.renderFooter(),
	)

	// Overlays
	if m.Omnibar.IsVisible() {
		view = m.Omnibar.View()
	}
	if m.DiscoverModal.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.DiscoverModal.View())
	}
	if m.InputModal.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.InputModal.View())
	}

	return view
}

// renderPager renders the page window for catalog sources
func (m Model) renderPager() string {
	if m.Source.IsList() {
		kind, _ := m.Source.ListKind()
		return styles.DimStyle.Render(fmt.Sprintf(" %d saved", m.Lists.Count(kind)))
	}
	if m.TotalPages <= 1 {
		return ""
	}

	p := service.PageWindow(m.Page, m.TotalPages)
	arrow := func(text string, enabled bool) string {
		if enabled {
			return styles.AccentStyle.Render(text)
		}
		return styles.DimStyle.Render(text)
	}
	number := func(n int) string {
		if n == p.Current {
			return styles.BadgeStyle.Render(fmt.Sprintf("%d", n))
		}
		return styles.SubtitleStyle.Render(fmt.Sprintf(" %d ", n))
	}

	parts := []string{arrow("‹ prev", p.HasPrev)}
	if p.First {
		parts = append(parts, number(1))
		if p.LeadingGap {
			parts = append(parts, styles.DimStyle.Render("…"))
		}
	}
	for _, n := range p.Pages {
		parts = append(parts, number(n))
	}
	if p.Last {
		if p.TrailingGap {
			parts = append(parts, styles.DimStyle.Render("…"))
		}
		parts = append(parts, number(p.Total))
	}
	parts = append(parts, arrow("next ›", p.HasNext))

	return " " + strings.Join(parts, " ")
}

// renderFooter renders the status line and help hint
func (m Model) renderFooter() string {
	var left string
	if m.Loading {
		left = styles.SpinnerStyle.Render(styles.Spinner(m.SpinnerFrame)) + " " + styles.DimStyle.Render("Loading...")
	} else if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	// Center: filters in effect
	var center string
	if m.Source == domain.SourceDiscover && !m.Filter.IsZero() {
		center = styles.AccentStyle.Render("d") + styles.DimStyle.Render(" filters active")
	}
	if m.PostersOnly {
		if center != "" {
			center += styles.DimStyle.Render(" · ")
		}
		center += styles.DimStyle.Render("posters only")
	}

	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		gap := max(m.Width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
NAVIGATION                      LISTS
  j/k        Up/down               f      Toggle favorite
  h/l        Back/open             w      Toggle watchlist
  g/G        First/last item
  Ctrl+u/d   Scroll half page     BROWSE
  Tab        Sources/movies        s      Search
  J/K        Scroll info           d      Discover filters
                                   c      Cast of movie
PAGES                              /      Filter this page
  n/]        Next page             P      Posters only
  p/[        Previous page         i      Toggle inspector
  :          Go to page            r      Refresh
                                   t      Play trailer
                                   o      Open on TMDB

  q  Quit       ?  This help       Esc    Close / Cancel

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}
