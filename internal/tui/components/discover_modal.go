package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Minimum rating choices, "any" first
var ratingChoices = []float64{0, 8, 7, 6, 5}

type discoverRow int

const (
	rowGenre discoverRow = iota
	rowYear
	rowRating
	rowSort
	discoverRowCount
)

const discoverLabelWidth = 12

// DiscoverModal is a small popup for the discover filters. Each row cycles
// through its choices with h/l; enter applies, esc cancels.
type DiscoverModal struct {
	visible bool
	cursor  discoverRow
	genres  []domain.Genre

	// Choice indexes; 0 is "any" for genre, year and rating
	genreIdx  int
	yearIdx   int
	ratingIdx int
	sortIdx   int

	years []int // current year down to MinDiscoverYear
}

// NewDiscoverModal creates a discover modal offering years down from currentYear
func NewDiscoverModal(currentYear int) DiscoverModal {
	if currentYear < domain.MinDiscoverYear {
		currentYear = domain.MinDiscoverYear
	}
	years := make([]int, 0, currentYear-domain.MinDiscoverYear+1)
	for y := currentYear; y >= domain.MinDiscoverYear; y-- {
		years = append(years, y)
	}
	return DiscoverModal{years: years}
}

// SetGenres updates the genre choices
func (m *DiscoverModal) SetGenres(genres []domain.Genre) {
	m.genres = genres
}

// Show displays the modal positioned on the current filter
func (m *DiscoverModal) Show(filter domain.DiscoverFilter) {
	m.visible = true
	m.cursor = rowGenre

	m.genreIdx = 0
	for i, g := range m.genres {
		if g.ID == filter.GenreID {
			m.genreIdx = i + 1
			break
		}
	}
	m.yearIdx = 0
	for i, y := range m.years {
		if y == filter.Year {
			m.yearIdx = i + 1
			break
		}
	}
	m.ratingIdx = 0
	for i, r := range ratingChoices {
		if r == filter.MinRating {
			m.ratingIdx = i
			break
		}
	}
	m.sortIdx = 0
	for i, s := range domain.SortOrders {
		if s.Value == filter.Sort() {
			m.sortIdx = i
			break
		}
	}
}

// Hide dismisses the modal
func (m *DiscoverModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m DiscoverModal) IsVisible() bool {
	return m.visible
}

// Filter returns the filter for the current choices
func (m DiscoverModal) Filter() domain.DiscoverFilter {
	var f domain.DiscoverFilter
	if m.genreIdx > 0 && m.genreIdx <= len(m.genres) {
		f.GenreID = m.genres[m.genreIdx-1].ID
	}
	if m.yearIdx > 0 && m.yearIdx <= len(m.years) {
		f.Year = m.years[m.yearIdx-1]
	}
	f.MinRating = ratingChoices[m.ratingIdx]
	f.SortBy = domain.SortOrders[m.sortIdx].Value
	return f
}

// HandleKey processes a key press, returns (handled, filter).
// A non-nil filter means the user applied their choices.
func (m *DiscoverModal) HandleKey(key string) (handled bool, applied *domain.DiscoverFilter) {
	if !m.visible {
		return false, nil
	}

	switch key {
	case "j", "down", "tab":
		if m.cursor < discoverRowCount-1 {
			m.cursor++
		}
	case "k", "up", "shift+tab":
		if m.cursor > 0 {
			m.cursor--
		}
	case "l", "right":
		m.cycle(1)
	case "h", "left":
		m.cycle(-1)
	case "x":
		// Reset every row to its default
		m.genreIdx, m.yearIdx, m.ratingIdx, m.sortIdx = 0, 0, 0, 0
	case "enter":
		f := m.Filter()
		m.visible = false
		return true, &f
	case "esc", "d":
		m.visible = false
	}

	return true, nil // consume all keys when visible
}

func (m *DiscoverModal) cycle(delta int) {
	wrap := func(idx, n int) int {
		if n == 0 {
			return 0
		}
		return ((idx+delta)%n + n) % n
	}
	switch m.cursor {
	case rowGenre:
		m.genreIdx = wrap(m.genreIdx, len(m.genres)+1)
	case rowYear:
		m.yearIdx = wrap(m.yearIdx, len(m.years)+1)
	case rowRating:
		m.ratingIdx = wrap(m.ratingIdx, len(ratingChoices))
	case rowSort:
		m.sortIdx = wrap(m.sortIdx, len(domain.SortOrders))
	}
}

func (m DiscoverModal) rowValue(row discoverRow) (label, value string) {
	switch row {
	case rowGenre:
		value = "Any genre"
		if m.genreIdx > 0 && m.genreIdx <= len(m.genres) {
			value = m.genres[m.genreIdx-1].Name
		}
		return "Genre", value
	case rowYear:
		value = "Any year"
		if m.yearIdx > 0 && m.yearIdx <= len(m.years) {
			value = fmt.Sprintf("%d", m.years[m.yearIdx-1])
		}
		return "Year", value
	case rowRating:
		value = "Any rating"
		if r := ratingChoices[m.ratingIdx]; r > 0 {
			value = fmt.Sprintf("%.0f+ ★", r)
		}
		return "Min rating", value
	default:
		return "Sort by", domain.SortOrders[m.sortIdx].Label
	}
}

// View renders the discover modal
func (m DiscoverModal) View() string {
	if !m.visible {
		return ""
	}

	var lines []string
	for row := rowGenre; row < discoverRowCount; row++ {
		label, value := m.rowValue(row)
		text := styles.Pad(label, discoverLabelWidth) + "‹ " + styles.Pad(value, 18) + " ›"

		if row == m.cursor {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(styles.White).
				Background(styles.SlateLight).
				Render(text))
		} else {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(styles.LightGray).
				Render(text))
		}
	}

	hint := styles.DimStyle.Render("h/l change · x reset · enter apply")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Marquee).
		Background(styles.SlateDark).
		Padding(0, 1).
		Render(styles.ModalTitleStyle.Render("Discover") + "\n" + strings.Join(lines, "\n") + "\n\n" + hint)
}
