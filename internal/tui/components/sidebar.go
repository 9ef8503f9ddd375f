package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// SourceItem implements list.Item for a movie source
type SourceItem struct {
	Source domain.Source
	Count  int  // Saved-list size, shown as a badge
	Active bool // Source currently shown in the list column
}

func (i SourceItem) FilterValue() string { return i.Source.Label() }

func (i SourceItem) Title() string {
	marker := "  "
	if i.Active {
		marker = "▸ "
	}
	if i.Source.IsList() {
		return fmt.Sprintf("%s%s (%d)", marker, i.Source.Label(), i.Count)
	}
	return marker + i.Source.Label()
}

func (i SourceItem) Description() string { return i.Source.String() }

// Border overhead for the sidebar panel
const BorderSize = 2

// Sidebar is the source selection sidebar component
type Sidebar struct {
	list    list.Model
	focused bool
	width   int
	height  int
	active  domain.Source
	counts  map[domain.Source]int
}

// NewSidebar creates a new sidebar component
func NewSidebar() Sidebar {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Foreground(styles.White).
		Background(styles.SlateLight).
		Padding(0, 1)
	delegate.Styles.NormalTitle = lipgloss.NewStyle().
		Foreground(styles.LightGray).
		Padding(0, 1)

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Marquee"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(styles.Marquee).
		Bold(true).
		Padding(0, 1)

	s := Sidebar{
		list:   l,
		counts: make(map[domain.Source]int),
	}
	s.refreshItems()
	return s
}

// SetCounts updates the saved-list badges
func (s *Sidebar) SetCounts(favorites, watchlist int) {
	s.counts[domain.SourceFavorites] = favorites
	s.counts[domain.SourceWatchlist] = watchlist
	s.refreshItems()
}

// SetActive marks the source shown in the list column and moves the cursor to it
func (s *Sidebar) SetActive(source domain.Source) {
	s.active = source
	s.refreshItems()
	for i, src := range domain.Sources {
		if src == source {
			s.list.Select(i)
			break
		}
	}
}

// Active returns the source shown in the list column
func (s Sidebar) Active() domain.Source {
	return s.active
}

func (s *Sidebar) refreshItems() {
	items := make([]list.Item, len(domain.Sources))
	for i, src := range domain.Sources {
		items[i] = SourceItem{
			Source: src,
			Count:  s.counts[src],
			Active: src == s.active,
		}
	}
	s.list.SetItems(items)
}

// SetSize updates the component dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.list.SetSize(width-BorderSize, height-BorderSize)
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state
func (s Sidebar) IsFocused() bool {
	return s.focused
}

// SelectedSource returns the source under the cursor
func (s Sidebar) SelectedSource() (domain.Source, bool) {
	item, ok := s.list.SelectedItem().(SourceItem)
	if !ok {
		return 0, false
	}
	return item.Source, true
}

// Update handles messages
func (s Sidebar) Update(msg tea.Msg) (Sidebar, tea.Cmd) {
	if !s.focused {
		return s, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "j", "down":
			s.list.CursorDown()
		case "k", "up":
			s.list.CursorUp()
		case "g", "home":
			s.list.Select(0)
		case "G", "end":
			s.list.Select(len(s.list.Items()) - 1)
		}
	}

	return s, nil
}

// View renders the component
func (s Sidebar) View() string {
	style := styles.InactiveBorder
	if s.focused {
		style = styles.ActiveBorder
	}

	// Subtract frame (border) size so total rendered size equals s.width x s.height
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(s.width - frameW).
		Height(s.height - frameH).
		Render(s.list.View())
}
