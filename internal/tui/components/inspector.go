package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/tmdb"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Layout constants for inspector
const (
	InspectorBorderHeight     = 2
	InspectorScrollIndicators = 2

	inspectorTopCast = 5
	inspectorRecs    = 5
)

// MovieInfo is a movie plus its detail once loaded
type MovieInfo struct {
	Movie   domain.Movie
	View    *service.MovieView // nil while loading or after a failure
	Trailer *domain.Video
	Loading bool
}

// CastInfo is a cast member plus their biography once loaded
type CastInfo struct {
	Member  domain.CastMember
	View    *service.PersonView
	Loading bool
}

// inspectorContent holds the three-zone layout content
type inspectorContent struct {
	header string // fixed top
	body   string // scrollable middle
	footer string // fixed bottom
}

// Inspector displays detailed metadata for the selected row
type Inspector struct {
	item         interface{}
	key          string
	marks        domain.ListQueries
	width        int
	height       int
	offset       int // scroll offset
	maxVisible   int // max visible lines
	spinnerFrame int
}

// NewInspector creates a new inspector component
func NewInspector(marks domain.ListQueries) Inspector {
	return Inspector{marks: marks}
}

// SetItem sets the item to display. Scroll resets only when the item changes.
func (i *Inspector) SetItem(item interface{}) {
	key := itemKey(item)
	if key != i.key {
		i.offset = 0
	}
	i.key = key
	i.item = item
}

// SetSize updates the component dimensions
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
	// Reserve border, scroll indicators, title and the blank line under it
	i.maxVisible = height - InspectorBorderHeight - InspectorScrollIndicators - 2
	if i.maxVisible < 1 {
		i.maxVisible = 1
	}
}

// SetSpinnerFrame updates the spinner animation frame
func (i *Inspector) SetSpinnerFrame(frame int) {
	i.spinnerFrame = frame
}

// ScrollBy moves the body window; View clamps it
func (i *Inspector) ScrollBy(lines int) {
	i.offset += lines
	if i.offset < 0 {
		i.offset = 0
	}
}

// HasItem returns true if there is an item to display
func (i Inspector) HasItem() bool {
	return i.item != nil
}

// View renders the component
func (i Inspector) View() string {
	style := styles.InactiveBorder

	// Border takes 2 chars (1 each side), leave 1 char safety margin
	contentWidth := i.width - 3
	if contentWidth < 10 {
		contentWidth = 10
	}
	content := i.renderInspector(contentWidth)

	titleLine := styles.AccentStyle.Render(styles.Truncate("Info", contentWidth))

	// Three-zone layout: header is fixed, body scrolls, footer is fixed
	headerLines := splitLines(content.header)
	footerLines := splitLines(content.footer)
	bodyLines := splitLines(content.body)

	availableForBody := i.maxVisible - len(headerLines) - len(footerLines)
	if availableForBody < 1 {
		availableForBody = 1
	}

	totalBodyLines := len(bodyLines)
	maxOffset := totalBodyLines - availableForBody
	if maxOffset < 0 {
		maxOffset = 0
	}
	offset := i.offset
	if offset > maxOffset {
		offset = maxOffset
	}

	end := offset + availableForBody
	if end > totalBodyLines {
		end = totalBodyLines
	}
	visibleBody := bodyLines[offset:end]

	// Scroll indicators for body only
	header := " "
	if offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < totalBodyLines {
		footer = styles.DimStyle.Render("↓ more")
	}

	parts := []string{titleLine, ""}
	if content.header != "" {
		parts = append(parts, strings.Join(headerLines, "\n"))
	}
	parts = append(parts, header)
	if len(visibleBody) > 0 {
		parts = append(parts, strings.Join(visibleBody, "\n"))
	}

	// Pin the footer zone to the bottom
	for j := len(visibleBody); j < availableForBody; j++ {
		parts = append(parts, "")
	}
	parts = append(parts, footer)
	if content.footer != "" {
		parts = append(parts, strings.Join(footerLines, "\n"))
	}

	frameW, frameH := style.GetFrameSize()

	return style.
		Width(i.width - frameW).
		Height(i.height - frameH).
		Render(strings.Join(parts, "\n"))
}

// renderInspector renders the inspector panel content as three zones
func (i Inspector) renderInspector(width int) inspectorContent {
	switch v := i.item.(type) {
	case MovieInfo:
		return i.renderMovieInspector(v, width)
	case CastInfo:
		return i.renderCastInspector(v, width)
	default:
		return inspectorContent{body: styles.DimStyle.Render("No item selected")}
	}
}

func (i Inspector) renderMovieInspector(info MovieInfo, width int) inspectorContent {
	movie := info.Movie
	var detail *domain.MovieDetail
	if info.View != nil {
		detail = info.View.Detail
	}

	// Header: title, tagline, meta, rating
	var h strings.Builder
	h.WriteString(styles.TitleStyle.Render(styles.Truncate(movie.DisplayTitle(), width)))
	h.WriteString("\n")
	if detail != nil && detail.Tagline != "" {
		h.WriteString(styles.SubtitleStyle.Render(styles.Truncate(detail.Tagline, width)))
		h.WriteString("\n")
	}

	var metaParts []string
	if y := movie.Year(); y != "" {
		metaParts = append(metaParts, y)
	}
	if detail != nil {
		if rt := detail.FormattedRuntime(); rt != "" {
			metaParts = append(metaParts, rt)
		}
		if g := detail.GenreNames(", "); g != "" {
			metaParts = append(metaParts, g)
		}
	}
	if len(metaParts) > 0 {
		h.WriteString(styles.DimStyle.Render(styles.Truncate(strings.Join(metaParts, " · "), width)))
		h.WriteString("\n")
	}

	var statusParts []string
	if movie.VoteAverage > 0 {
		ratingStyle := lipgloss.NewStyle().Foreground(styles.RatingColor(movie.VoteAverage))
		statusParts = append(statusParts, ratingStyle.Render(fmt.Sprintf("★ %.1f", movie.VoteAverage)))
	}
	if i.marks != nil {
		if i.marks.Contains(domain.Favorites, movie.ID) {
			statusParts = append(statusParts, styles.FavoriteStyle.Render(styles.FavoriteChar+" Favorite"))
		}
		if i.marks.Contains(domain.Watchlist, movie.ID) {
			statusParts = append(statusParts, styles.WatchlistStyle.Render(styles.WatchlistChar+" Watchlist"))
		}
	}
	if len(statusParts) > 0 {
		h.WriteString(strings.Join(statusParts, "   "))
	}

	// Body: overview, credits, recommendations
	bodyWidth := width - 2
	if bodyWidth > 80 {
		bodyWidth = 80
	}
	var b strings.Builder
	if movie.Overview != "" {
		b.WriteString(styles.SubtitleStyle.Render(wordWrap(movie.Overview, bodyWidth)))
		b.WriteString("\n")
	}
	if info.Loading {
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render(styles.Spinner(i.spinnerFrame) + " Loading details..."))
	}
	if info.View != nil {
		if len(info.View.Directors) > 0 {
			b.WriteString("\n")
			b.WriteString(styles.DimStyle.Render("Directed by ") + strings.Join(info.View.Directors, ", "))
			b.WriteString("\n")
		}
		if len(info.View.Cast) > 0 {
			b.WriteString("\n")
			b.WriteString(styles.AccentStyle.Render("Top Cast"))
			b.WriteString("\n")
			for idx, cm := range info.View.Cast {
				if idx == inspectorTopCast {
					break
				}
				name := styles.Truncate(cm.Name, bodyWidth)
				b.WriteString(name)
				if remaining := bodyWidth - lipgloss.Width(name) - 4; cm.Character != "" && remaining > 3 {
					b.WriteString(styles.DimStyle.Render(" as " + styles.Truncate(cm.Character, remaining)))
				}
				b.WriteString("\n")
			}
		}
		if len(info.View.Recommendations) > 0 {
			b.WriteString("\n")
			b.WriteString(styles.AccentStyle.Render("Recommended"))
			b.WriteString("\n")
			for idx, rec := range info.View.Recommendations {
				if idx == inspectorRecs {
					break
				}
				b.WriteString(styles.Truncate(rec.TitleWithYear(), bodyWidth))
				b.WriteString("\n")
			}
		}
	}

	// Footer: links
	var f strings.Builder
	if info.Trailer != nil || movie.PosterPath != "" {
		f.WriteString(styles.DimStyle.Render(strings.Repeat("─", width)))
		f.WriteString("\n")
	}
	if info.Trailer != nil {
		f.WriteString(styles.DimStyle.Render("Trailer "))
		f.WriteString(styles.LinkStyle.Render(styles.Truncate(tmdb.YouTubeURL(info.Trailer.Key), width-8)))
		f.WriteString("\n")
	}
	if movie.PosterPath != "" {
		f.WriteString(styles.DimStyle.Render("Poster  "))
		f.WriteString(styles.LinkStyle.Render(styles.Truncate(tmdb.ImageURL(tmdb.PosterLarge, movie.PosterPath), width-8)))
	}

	return inspectorContent{
		header: strings.TrimRight(h.String(), "\n"),
		body:   strings.TrimRight(b.String(), "\n"),
		footer: strings.TrimRight(f.String(), "\n"),
	}
}

func (i Inspector) renderCastInspector(info CastInfo, width int) inspectorContent {
	var h strings.Builder
	h.WriteString(styles.TitleStyle.Render(styles.Truncate(info.Member.Name, width)))
	if info.Member.Character != "" {
		h.WriteString("\n")
		h.WriteString(styles.SubtitleStyle.Render(styles.Truncate("as "+info.Member.Character, width)))
	}

	var b strings.Builder
	if info.Loading {
		b.WriteString(styles.DimStyle.Render(styles.Spinner(i.spinnerFrame) + " Loading..."))
	}
	if info.View != nil && info.View.Person != nil {
		p := info.View.Person
		var meta []string
		if p.KnownForDepartment != "" {
			meta = append(meta, p.KnownForDepartment)
		}
		if p.Birthday != "" {
			meta = append(meta, "Born "+p.Birthday)
		}
		if p.PlaceOfBirth != "" {
			meta = append(meta, p.PlaceOfBirth)
		}
		if len(meta) > 0 {
			b.WriteString(styles.DimStyle.Render(wordWrap(strings.Join(meta, " · "), width-2)))
			b.WriteString("\n\n")
		}
		if p.Biography != "" {
			b.WriteString(styles.SubtitleStyle.Render(wordWrap(p.Biography, width-2)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("%d movies · enter to browse", len(info.View.Movies))))
	}

	return inspectorContent{
		header: h.String(),
		body:   strings.TrimRight(b.String(), "\n"),
	}
}

func itemKey(item interface{}) string {
	switch v := item.(type) {
	case MovieInfo:
		return fmt.Sprintf("movie:%d", v.Movie.ID)
	case CastInfo:
		return fmt.Sprintf("person:%d", v.Member.ID)
	default:
		return ""
	}
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// wordWrap wraps text to the specified width
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wordLen := len([]rune(word))

		if lineLen+wordLen+1 > width && lineLen > 0 {
			result.WriteString("\n")
			lineLen = 0
		}

		if i > 0 && lineLen > 0 {
			result.WriteString(" ")
			lineLen++
		}

		result.WriteString(word)
		lineLen += wordLen
	}

	return result.String()
}
