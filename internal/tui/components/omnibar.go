package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

const omnibarMaxResults = 10

// Omnibar is the search modal. In remote mode enter submits the query to
// the catalog. In local mode it ranks a saved list as you type.
type Omnibar struct {
	input     textinput.Model
	local     []domain.MovieSummary // saved list being searched, local mode only
	localKind domain.ListKind
	localMode bool
	results   []domain.MovieSummary
	cursor    int
	visible   bool
	width     int
	height    int
	prevQuery string
}

// NewOmnibar creates a new omnibar component
func NewOmnibar() Omnibar {
	ti := textinput.New()
	ti.Placeholder = "Search movies..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return Omnibar{
		input: ti,
	}
}

// Show opens the omnibar for a remote catalog search, prefilled with query
func (o *Omnibar) Show(query string) {
	o.visible = true
	o.localMode = false
	o.local = nil
	o.results = nil
	o.cursor = 0
	o.input.Placeholder = "Search movies..."
	o.input.SetValue(query)
	o.input.CursorEnd()
	o.input.Focus()
	o.prevQuery = query
}

// ShowLocal opens the omnibar over a saved list
func (o *Omnibar) ShowLocal(kind domain.ListKind, movies []domain.MovieSummary) {
	o.visible = true
	o.localMode = true
	o.localKind = kind
	o.local = movies
	o.results = movies
	o.cursor = 0
	o.input.Placeholder = "Search " + kind.Title() + "..."
	o.input.SetValue("")
	o.input.Focus()
	o.prevQuery = ""
}

// Hide hides the omnibar
func (o *Omnibar) Hide() {
	o.visible = false
	o.input.Blur()
}

// IsVisible returns true if the omnibar is visible
func (o Omnibar) IsVisible() bool {
	return o.visible
}

// IsLocal returns true when searching a saved list
func (o Omnibar) IsLocal() bool {
	return o.localMode
}

// SetSize updates the component dimensions
func (o *Omnibar) SetSize(width, height int) {
	o.width = width
	o.height = height
	o.input.Width = width - 10
}

// Query returns the trimmed search query
func (o Omnibar) Query() string {
	return strings.TrimSpace(o.input.Value())
}

// SelectedResult returns the highlighted saved-list entry in local mode
func (o Omnibar) SelectedResult() *domain.MovieSummary {
	if !o.localMode || len(o.results) == 0 || o.cursor >= len(o.results) {
		return nil
	}
	r := o.results[o.cursor]
	return &r
}

// Init initializes the component
func (o Omnibar) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages, returns (omnibar, cmd, submitted)
func (o Omnibar) Update(msg tea.Msg) (Omnibar, tea.Cmd, bool) {
	if !o.visible {
		return o, nil, false
	}

	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			o.Hide()
			return o, nil, false

		case "enter":
			if o.localMode {
				return o, nil, len(o.results) > 0
			}
			return o, nil, o.Query() != ""

		case "down", "ctrl+n":
			if o.cursor < len(o.results)-1 {
				o.cursor++
			}
			return o, nil, false

		case "up", "ctrl+p":
			if o.cursor > 0 {
				o.cursor--
			}
			return o, nil, false
		}
	}

	o.input, cmd = o.input.Update(msg)
	if o.localMode && o.input.Value() != o.prevQuery {
		o.prevQuery = o.input.Value()
		o.results = service.RankTitles(o.prevQuery, o.local)
		o.cursor = 0
	}
	return o, cmd, false
}

// View renders the component centered in the window
func (o Omnibar) View() string {
	if !o.visible {
		return ""
	}

	modalWidth := o.width * 2 / 3
	if modalWidth < 40 {
		modalWidth = 40
	}
	if modalWidth > 80 {
		modalWidth = 80
	}

	var b strings.Builder

	if o.localMode {
		b.WriteString(o.localKind.Title())
	} else {
		b.WriteString("Search")
	}
	b.WriteString("\n\n")

	b.WriteString(o.input.View())
	b.WriteString("\n\n")

	if o.localMode {
		o.renderLocalResults(&b, modalWidth)
	} else {
		b.WriteString(styles.DimStyle.Render("enter to search the catalog · esc to cancel"))
	}

	content := lipgloss.NewStyle().
		Width(modalWidth - 4).
		Render(b.String())

	modal := styles.ModalStyle.
		Width(modalWidth).
		Render(content)

	return lipgloss.Place(
		o.width,
		o.height,
		lipgloss.Center,
		lipgloss.Center,
		modal,
	)
}

func (o Omnibar) renderLocalResults(b *strings.Builder, modalWidth int) {
	if len(o.results) == 0 {
		if o.input.Value() != "" {
			b.WriteString(styles.DimStyle.Render("No matches found"))
		} else {
			b.WriteString(styles.DimStyle.Render("This list is empty"))
		}
		return
	}

	displayCount := len(o.results)
	if displayCount > omnibarMaxResults {
		displayCount = omnibarMaxResults
	}

	for i := 0; i < displayCount; i++ {
		result := o.results[i]

		var line strings.Builder
		if y := result.Year(); y != "" {
			line.WriteString(styles.DimBadgeStyle.Render(y))
		} else {
			line.WriteString(styles.DimBadgeStyle.Render("----"))
		}
		line.WriteString(" ")

		style := styles.NormalItemStyle
		if i == o.cursor {
			style = styles.SelectedItemStyle
		}
		line.WriteString(style.Render(styles.Truncate(result.Title, modalWidth-15)))

		b.WriteString(line.String())
		b.WriteString("\n")
	}

	if len(o.results) > omnibarMaxResults {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("... and %d more", len(o.results)-omnibarMaxResults)))
	}
}
