package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// Layout constants for list columns
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2
)

// ListColumn is a scrollable list of movies or cast members
type ListColumn struct {
	// Content - only one of these is populated, depending on columnType
	movies []domain.Movie
	cast   []domain.CastMember

	columnType ColumnType

	// Membership markers; nil hides them
	marks domain.ListQueries

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	title     string
	emptyText string

	// Loading state
	loading      bool
	spinnerFrame int

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into original slice
}

// NewListColumn creates a new list column with the given type and title
func NewListColumn(colType ColumnType, title string) *ListColumn {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &ListColumn{
		columnType:  colType,
		title:       title,
		emptyText:   "No movies",
		filterInput: ti,
	}
}

// NewMoviesColumn creates a column for a page of movies
func NewMoviesColumn(colType ColumnType, title string, movies []domain.Movie, marks domain.ListQueries) *ListColumn {
	col := NewListColumn(colType, title)
	col.movies = movies
	col.marks = marks
	return col
}

// NewCastColumn creates a column for a movie's cast
func NewCastColumn(title string, cast []domain.CastMember) *ListColumn {
	col := NewListColumn(ColumnTypeCast, title)
	col.cast = cast
	col.emptyText = "No cast listed"
	return col
}

// Update handles navigation and filter keys while focused
func (c *ListColumn) Update(msg tea.Msg) (*ListColumn, tea.Cmd) {
	if !c.focused {
		return c, nil
	}

	// Typing into the filter
	if c.filterActive && c.filterInput.Focused() {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch msg.String() {
			case "esc":
				c.clearFilter()
				return c, nil
			case "enter":
				// Accept filter, blur input to allow navigation
				c.filterInput.Blur()
				return c, nil
			case "backspace":
				if c.filterInput.Value() == "" {
					c.clearFilter()
					return c, nil
				}
			}
		}

		var cmd tea.Cmd
		c.filterInput, cmd = c.filterInput.Update(msg)
		c.applyFilter()
		return c, cmd
	}

	// Navigating filtered results
	if c.filterActive {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "esc":
				c.clearFilter()
				return c, nil
			case "/":
				c.filterInput.Focus()
				return c, nil
			}
		}
	}

	count := c.ItemCount()
	if count == 0 {
		return c, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "j", "down":
			if c.cursor < count-1 {
				c.cursor++
				c.ensureVisible()
			}
		case "k", "up":
			if c.cursor > 0 {
				c.cursor--
				c.ensureVisible()
			}
		case "g", "home":
			c.cursor = 0
			c.offset = 0
		case "G", "end":
			c.cursor = count - 1
			c.ensureVisible()
		case "ctrl+d", "pgdown":
			c.cursor += c.maxVisible / 2
			if c.cursor >= count {
				c.cursor = count - 1
			}
			c.ensureVisible()
		case "ctrl+u", "pgup":
			c.cursor -= c.maxVisible / 2
			if c.cursor < 0 {
				c.cursor = 0
			}
			c.ensureVisible()
		}
	}

	return c, nil
}

// View renders the column inside its border
func (c *ListColumn) View() string {
	style := styles.InactiveBorder
	if c.focused {
		style = styles.ActiveBorder
	}

	content := c.renderContent()

	// Subtract frame (border) size so total rendered size equals c.width x c.height
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(c.width - frameW).
		Height(c.height - frameH).
		Render(content)
}

func (c *ListColumn) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.recalcMaxVisible()
	c.ensureVisible()
}

func (c *ListColumn) SetFocused(focused bool) {
	c.focused = focused
}

func (c *ListColumn) IsFocused() bool {
	return c.focused
}

func (c *ListColumn) Title() string {
	return c.title
}

func (c *ListColumn) SetTitle(title string) {
	c.title = title
}

// SetEmptyText sets the message shown when there are no rows
func (c *ListColumn) SetEmptyText(text string) {
	c.emptyText = text
}

// ColumnType returns the column's content type
func (c *ListColumn) ColumnType() ColumnType {
	return c.columnType
}

func (c *ListColumn) SetLoading(loading bool) {
	c.loading = loading
}

func (c *ListColumn) IsLoading() bool {
	return c.loading
}

// SetSpinnerFrame updates the spinner animation frame
func (c *ListColumn) SetSpinnerFrame(frame int) {
	c.spinnerFrame = frame
}

// SetMovies replaces the rows and resets the cursor
func (c *ListColumn) SetMovies(movies []domain.Movie) {
	c.loading = false
	c.cursor = 0
	c.offset = 0
	c.clearFilter()
	c.movies = movies
}

// RefreshMovies replaces the rows in place, keeping the cursor and any
// active filter. Used when a saved list changes under an open view.
func (c *ListColumn) RefreshMovies(movies []domain.Movie) {
	c.loading = false
	c.movies = movies
	if c.filterActive && c.filterQuery != "" {
		c.applyFilter()
	}
	c.SetSelectedIndex(c.cursor)
}

// SelectedMovie returns the movie under the cursor, if rows are movies
func (c *ListColumn) SelectedMovie() *domain.Movie {
	if !c.columnType.IsMovies() {
		return nil
	}
	idx, ok := c.selectedRaw()
	if !ok || idx >= len(c.movies) {
		return nil
	}
	m := c.movies[idx]
	return &m
}

// SelectedCast returns the cast member under the cursor, if rows are cast
func (c *ListColumn) SelectedCast() *domain.CastMember {
	if c.columnType != ColumnTypeCast {
		return nil
	}
	idx, ok := c.selectedRaw()
	if !ok || idx >= len(c.cast) {
		return nil
	}
	cm := c.cast[idx]
	return &cm
}

// SelectMovie moves the cursor to the movie with the given id, clearing
// any filter that hides it. Returns false if the movie is not in the column.
func (c *ListColumn) SelectMovie(id int) bool {
	for i, m := range c.movies {
		if m.ID == id {
			c.clearFilter()
			c.SetSelectedIndex(i)
			return true
		}
	}
	return false
}

func (c *ListColumn) SelectedIndex() int {
	return c.cursor
}

func (c *ListColumn) SetSelectedIndex(idx int) {
	max := c.ItemCount() - 1
	if max < 0 {
		c.cursor = 0
		c.offset = 0
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx > max {
		idx = max
	}
	c.cursor = idx
	c.ensureVisible()
}

// ItemCount returns the number of visible (filtered) rows
func (c *ListColumn) ItemCount() int {
	if c.filteredIdx != nil {
		return len(c.filteredIdx)
	}
	return c.rawItemCount()
}

func (c *ListColumn) IsEmpty() bool {
	return c.ItemCount() == 0
}

// ToggleFilter activates the filter input
func (c *ListColumn) ToggleFilter() {
	c.filterActive = true
	c.filterInput.Focus()
	c.recalcMaxVisible()
}

// IsFiltering returns true if filter mode is active
func (c *ListColumn) IsFiltering() bool {
	return c.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (c *ListColumn) IsFilterTyping() bool {
	return c.filterActive && c.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (c *ListColumn) ClearFilter() {
	c.clearFilter()
}

// Internal methods

func (c *ListColumn) selectedRaw() (int, bool) {
	count := c.ItemCount()
	if count == 0 || c.cursor >= count {
		return 0, false
	}
	return c.mapIndex(c.cursor), true
}

func (c *ListColumn) recalcMaxVisible() {
	// Interior height minus title line and both scroll indicators
	interiorHeight := c.height - BorderHeight
	c.maxVisible = interiorHeight - ScrollIndicatorLines - 1
	if c.filterActive {
		c.maxVisible--
	}
	if c.maxVisible < 1 {
		c.maxVisible = 1
	}
}

func (c *ListColumn) ensureVisible() {
	// Size not known yet
	if c.maxVisible <= 0 {
		return
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.maxVisible {
		c.offset = c.cursor - c.maxVisible + 1
	}
}

func (c *ListColumn) clearFilter() {
	c.filterActive = false
	c.filterQuery = ""
	c.filteredIdx = nil
	c.filterInput.SetValue("")
	c.filterInput.Blur()
	c.recalcMaxVisible()
}

func (c *ListColumn) applyFilter() {
	query := c.filterInput.Value()
	c.filterQuery = query

	if query == "" {
		c.filteredIdx = nil
		return
	}

	titles := c.getTitles()
	lowerTitles := make([]string, len(titles))
	for i, t := range titles {
		lowerTitles[i] = strings.ToLower(t)
	}

	matches := fuzzy.Find(strings.ToLower(query), lowerTitles)

	c.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		c.filteredIdx[i] = match.Index
	}

	c.cursor = 0
	c.offset = 0
}

func (c *ListColumn) getTitles() []string {
	switch c.columnType {
	case ColumnTypeCast:
		titles := make([]string, len(c.cast))
		for i, cm := range c.cast {
			titles[i] = cm.Name
		}
		return titles
	default:
		titles := make([]string, len(c.movies))
		for i, m := range c.movies {
			titles[i] = m.DisplayTitle()
		}
		return titles
	}
}

func (c *ListColumn) rawItemCount() int {
	if c.columnType == ColumnTypeCast {
		return len(c.cast)
	}
	return len(c.movies)
}

func (c *ListColumn) mapIndex(i int) int {
	if c.filteredIdx != nil && i < len(c.filteredIdx) {
		return c.filteredIdx[i]
	}
	return i
}

// Rendering

func (c *ListColumn) renderContent() string {
	itemWidth := c.width - BorderWidth
	if itemWidth < 10 {
		itemWidth = 10
	}

	titleLine := styles.AccentStyle.Render(styles.Truncate(c.title, itemWidth))

	if c.loading {
		loadingLine := styles.DimStyle.Render(styles.Spinner(c.spinnerFrame) + " Loading...")
		return titleLine + "\n" + " " + "\n" + loadingLine + "\n" + " "
	}

	count := c.ItemCount()
	if count == 0 {
		emptyMsg := styles.DimStyle.Render(c.emptyText)
		if c.filterActive && c.filterQuery != "" {
			emptyMsg = styles.DimStyle.Render("No matches")
		}
		content := titleLine + "\n" + " " + "\n" + emptyMsg + "\n" + " "
		if c.filterActive {
			content += "\n" + c.renderFilterBar()
		}
		return content
	}

	var lines []string

	end := c.offset + c.maxVisible
	if end > count {
		end = count
	}

	for i := c.offset; i < end; i++ {
		selected := i == c.cursor
		idx := c.mapIndex(i)

		if c.columnType == ColumnTypeCast {
			lines = append(lines, c.renderCastItem(c.cast[idx], selected, itemWidth))
		} else {
			lines = append(lines, c.renderMovieItem(c.movies[idx], selected, itemWidth))
		}
	}

	// Always reserve the indicator lines so the layout doesn't shift
	header := " "
	if c.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer

	if c.filterActive {
		content += "\n" + c.renderFilterBar()
	}

	return content
}

func (c *ListColumn) renderMovieItem(movie domain.Movie, selected bool, width int) string {
	favChar, watchChar := " ", " "
	if c.marks != nil {
		if c.marks.Contains(domain.Favorites, movie.ID) {
			favChar = styles.FavoriteChar
		}
		if c.marks.Contains(domain.Watchlist, movie.ID) {
			watchChar = styles.WatchlistChar
		}
	}
	pink, blue := styles.Pink, styles.Blue

	rating := ""
	if movie.VoteAverage > 0 {
		rating = fmt.Sprintf(" %.1f", movie.VoteAverage)
	}
	ratingFg := styles.RatingColor(movie.VoteAverage)

	// markers(2) + space(1) + rating + margins(2)
	availableForTitle := width - 5 - len(rating)
	if availableForTitle < 5 {
		availableForTitle = 5
	}
	title := styles.Truncate(movie.TitleWithYear(), availableForTitle)

	parts := []styles.RowPart{
		{Text: favChar, Foreground: &pink},
		{Text: watchChar, Foreground: &blue},
		{Text: " " + title},
	}
	if rating != "" {
		// Right-align the rating
		gap := width - 2 - 3 - lipgloss.Width(title) - len(rating)
		if gap > 0 {
			parts = append(parts, styles.RowPart{Text: strings.Repeat(" ", gap)})
		}
		parts = append(parts, styles.RowPart{Text: rating, Foreground: &ratingFg})
	}

	return styles.RenderListRow(parts, selected, width)
}

func (c *ListColumn) renderCastItem(member domain.CastMember, selected bool, width int) string {
	dim := styles.DimGray

	availableForName := width - 4
	if availableForName < 5 {
		availableForName = 5
	}
	name := styles.Truncate(member.Name, availableForName)

	parts := []styles.RowPart{{Text: name}}
	if member.Character != "" {
		remaining := availableForName - lipgloss.Width(name) - 4
		if remaining > 3 {
			parts = append(parts, styles.RowPart{
				Text:       " as " + styles.Truncate(member.Character, remaining),
				Foreground: &dim,
			})
		}
	}

	return styles.RenderListRow(parts, selected, width)
}

func (c *ListColumn) renderFilterBar() string {
	input := c.filterInput.View()

	countStr := ""
	if c.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", c.ItemCount(), c.rawItemCount()))
	}

	return input + countStr
}
