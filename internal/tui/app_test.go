package tui

import (
	"context"
	"fmt"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/lists"
	"github.com/mmcdole/marquee/internal/log"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalog serves canned pages and details
type fakeCatalog struct {
	mu          sync.Mutex
	movies      []domain.Movie
	totalPages  int
	views       map[int]service.MovieView
	persons     map[int]service.PersonView
	browseCalls []string
	invalidated int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		movies: []domain.Movie{
			{ID: 1, Title: "Heat", PosterPath: "/heat.jpg", ReleaseDate: "1995-12-15", VoteAverage: 7.9},
			{ID: 2, Title: "No Poster", ReleaseDate: "2001-01-01"},
			{ID: 3, Title: "Ronin", PosterPath: "/ronin.jpg", ReleaseDate: "1998-09-25", VoteAverage: 7.1},
		},
		totalPages: 3,
		views: map[int]service.MovieView{
			1: {
				Detail: &domain.MovieDetail{Movie: domain.Movie{ID: 1, Title: "Heat"}, Tagline: "A Los Angeles crime saga"},
				Cast: []domain.CastMember{
					{ID: 1158, Name: "Al Pacino", Character: "Vincent Hanna"},
					{ID: 380, Name: "Robert De Niro", Character: "Neil McCauley"},
				},
			},
		},
		persons: map[int]service.PersonView{
			1158: {
				Person: &domain.Person{ID: 1158, Name: "Al Pacino"},
				Movies: []domain.Movie{{ID: 238, Title: "The Godfather", PosterPath: "/gf.jpg"}},
			},
		},
	}
}

func (f *fakeCatalog) Browse(_ context.Context, source domain.Source, query string, _ domain.DiscoverFilter, page int) (domain.MoviePage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.browseCalls = append(f.browseCalls, fmt.Sprintf("%s:%s:%d", source, query, page))
	return domain.MoviePage{Page: page, TotalPages: f.totalPages, Results: f.movies}, nil
}

func (f *fakeCatalog) Details(_ context.Context, id int) (service.MovieView, error) {
	if v, ok := f.views[id]; ok {
		return v, nil
	}
	return service.MovieView{}, domain.ErrNotFound
}

func (f *fakeCatalog) Trailer(context.Context, int) (*domain.Video, error) {
	return &domain.Video{Key: "abc123", Site: "YouTube", Type: "Trailer"}, nil
}

func (f *fakeCatalog) Person(_ context.Context, id int) (service.PersonView, error) {
	if p, ok := f.persons[id]; ok {
		return p, nil
	}
	return service.PersonView{}, domain.ErrNotFound
}

func (f *fakeCatalog) Genres(context.Context) ([]domain.Genre, error) {
	return []domain.Genre{{ID: 28, Name: "Action"}, {ID: 80, Name: "Crime"}}, nil
}

func (f *fakeCatalog) InvalidateCache() {
	f.invalidated++
}

// Test helpers

func newTestModel(t *testing.T, src domain.Source, initial domain.Snapshot) (Model, *lists.Store, *fakeCatalog) {
	t.Helper()
	catalog := newFakeCatalog()
	store := lists.New(initial)
	m := NewModel(catalog, store, Options{StartSource: src, Logger: log.NullLogger()})
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, store, catalog
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func keyPress(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = update(t, m, keyPress(k))
	}
	return m
}

// loadFirstPage answers the model's pending page request
func loadFirstPage(t *testing.T, m Model, catalog *fakeCatalog) Model {
	t.Helper()
	msg := BrowseCmd(catalog, m.pageSeq, m.Source, m.Query, m.Filter, 1)()
	return update(t, m, msg)
}

func receiveChange(t *testing.T, m Model) domain.ListChange {
	t.Helper()
	select {
	case change := <-m.listChanges:
		return change
	default:
		t.Fatal("expected a list change notification")
		return domain.ListChange{}
	}
}

func ptr[T any](v T) *T { return &v }

func summary(id int, title string) domain.MovieSummary {
	return domain.MovieSummary{ID: id, Title: title}
}

// Tests

func TestInitialPageLoad(t *testing.T) {
	m, _, catalog := newTestModel(t, domain.SourcePopular, domain.EmptySnapshot())

	assert.True(t, m.Loading)
	assert.NotZero(t, m.pageSeq)
	assert.True(t, m.ColumnStack.Root().IsLoading())

	m = loadFirstPage(t, m, catalog)
	assert.False(t, m.Loading)
	assert.Equal(t, 3, m.ColumnStack.Root().ItemCount())
	assert.Equal(t, 3, m.TotalPages)
	assert.Equal(t, 1, m.detailWant, "first movie details requested")
	assert.Contains(t, m.View(), "Heat")
}

func TestStalePageIsDropped(t *testing.T) {
	m, _, catalog := newTestModel(t, domain.SourcePopular, domain.EmptySnapshot())

	stale := PageLoadedMsg{
		Seq:    m.pageSeq - 1,
		Source: domain.SourcePopular,
		Page:   domain.MoviePage{Page: 1, TotalPages: 1, Results: catalog.movies[:1]},
	}
	m = update(t, m, stale)
	assert.True(t, m.Loading)
	assert.Zero(t, m.ColumnStack.Root().ItemCount())

	m = loadFirstPage(t, m, catalog)
	assert.Equal(t, 3, m.ColumnStack.Root().ItemCount())
}

func TestSwitchingSourceInvalidatesInflightPage(t *testing.T) {
	m, _, catalog := newTestModel(t, domain.SourcePopular, domain.EmptySnapshot())
	popularSeq := m.pageSeq

	m = press(t, m, "h") // focus sidebar
	require.True(t, m.SidebarFocused)
	m = press(t, m, "j", "enter") // popular -> discover
	require.Equal(t, domain.SourceDiscover, m.Source)

	late := BrowseCmd(catalog, popularSeq, domain.SourcePopular, "", domain.DiscoverFilter{}, 1)()
	m = update(t, m, late)
	assert.Zero(t, m.ColumnStack.Root().ItemCount(), "late popular page must not fill the discover view")
}

func TestToggleFavoriteKey(t *testing.T) {
	m, store, catalog := newTestModel(t, domain.SourcePopular, domain.EmptySnapshot())
	m = loadFirstPage(t, m, catalog)

	m = press(t, m, "f")
	assert.True(t, store.Contains(domain.Favorites, 1))
	assert.False(t, store.Contains(domain.Watchlist, 1))
	assert.Contains(t, m.StatusMsg, "Added to My Favorites")

	change := receiveChange(t, m)
	assert.Equal(t, domain.Favorites, change.Kind)
	assert.Equal(t, domain.OpToggle, change.Op)
	assert.True(t, change.Changed)

	m = press(t, m, "f")
	assert.False(t, store.Contains(domain.Favorites, 1))
	assert.Contains(t, m.StatusMsg, "Removed from My Favorites")
	receiveChange(t, m)
}

func TestToggleCapturesSummary(t *testing.T) {
	m, store, catalog := newTestModel(t, domain.SourcePopular, domain.EmptySnapshot())
	m = loadFirstPage(t, m, catalog)

	press(t, m, "w")
	saved := store.Movies(domain.Watchlist)
	require.Len(t, saved, 1)
	assert.Equal(t, "Heat", saved[0].Title)
	assert.Equal(t, "/heat.jpg", saved[0].Poster())
	assert.Equal(t, "1995", saved[0].Year())
}

func TestToggleCapturesFreshCopy(t *testing.T) {
	initial := domain.EmptySnapshot()
	initial.Watchlist.Movies = []domain.MovieSummary{{ID: 1, Title: "Heat", VoteAverage: ptr(6.1)}}
	m, store, catalog := newTestModel(t, domain.SourcePopular, initial)
	m = loadFirstPage(t, m, catalog)

	press(t, m, "f")
	favorites := store.Movies(domain.Favorites)
	require.Len(t, favorites, 1)
	rating, ok := favorites[0].Rating()
	require.True(t, ok)
	assert.Equal(t, 7.9, rating)
	assert.Equal(t, "/heat.jpg", favorites[0].Poster())

	watchlist := store.Movies(domain.Watchlist)
	require.Len(t, watchlist, 1)
	assert.Equal(t, 6.1, *watchlist[0].VoteAverage, "the other list keeps its own copy")
}

func TestListViewRefreshesOnChange(t *testing.T) {
	initial := domain.EmptySnapshot()
	initial.Favorites.Movies = []domain.MovieSummary{summary(10, "Alien"), summary(11, "Aliens")}
	m, store, _ := newTestModel(t, domain.SourceFavorites, initial)

	root := m.ColumnStack.Root()
	require.Equal(t, 2, root.ItemCount())
	assert.False(t, m.Loading, "saved lists load without a request")

	m = press(t, m, "j")
	require.Equal(t, 1, root.SelectedIndex())

	store.Add(domain.Favorites, summary(12, "Alien 3"))
	m = update(t, m, ListChangedMsg{Change: receiveChange(t, m)})
	assert.Equal(t, 3, m.ColumnStack.Root().ItemCount())
	assert.Equal(t, 1, m.ColumnStack.Root().SelectedIndex(), "cursor survives a refresh")

	// Toggling off from inside the list removes the row
	m = press(t, m, "f")
	m = update(t, m, ListChangedMsg{Change: receiveChange(t, m)})
	assert.Equal(t, 2, m.ColumnStack.Root().ItemCount())
	assert.False(t, store.Contains(domain.Favorites, 11))
}

func TestOtherListChangeLeavesViewAlone(t *testing.T) {
	initial := domain.EmptySnapshot()
	initial.Favorites.Movies = []domain.MovieSummary{summary(10, "Alien")}
	m, store, _ := newTestModel(t, domain.SourceFavorites, initial)

	store.Add(domain.Watchlist, summary(20, "Brazil"))
	m = update(t, m, ListChangedMsg{Change: receiveChange(t, m)})
	assert.Equal(t, 1, m.ColumnStack.Root().ItemCount())
	assert.Equal(t, 1, m.Lists.Count(domain.Watchlist))
}

func TestCastDrillDown(t *testing.T) {
	m, _, catalog := newTestModel(t, domain.SourcePopular, domain.EmptySnapshot())
	m = loadFirstPage(t, m, catalog)

	// Ask for the cast before details arrive; the column opens once they do
	m = press(t, m, "c")
	assert.Equal(t, 1, m.ColumnStack.Len())
	assert.Equal(t, 1, m.pendingCast)

	details := DetailsCmd(catalog, m.detailSeq, 1)()
	m = update(t, m, details)
	require.Equal(t, 2, m.ColumnStack.Len())
	top := m.ColumnStack.Top()
	assert.Equal(t, components.ColumnTypeCast, top.ColumnType())
	assert.Equal(t, "Cast: Heat", top.Title())
	assert.Equal(t, 1158, m.personWant, "first cast member requested")

	// Enter on a cast member opens their movies
	m = press(t, m, "enter")
	assert.Equal(t, 2, m.ColumnStack.Len())
	person := PersonCmd(catalog, m.personSeq, 1158)()
	m = update(t, m, person)
	require.Equal(t, 3, m.ColumnStack.Len())
	assert.Equal(t, components.ColumnTypePersonMovies, m.ColumnStack.Top().ColumnType())
	assert.Equal(t, "The Godfather", m.ColumnStack.Top().SelectedMovie().Title)

	// Back out to the root
	m = press(t, m, "h", "esc")
	assert.Equal(t, 1, m.ColumnStack.Len())
	assert.Equal(t, 1, m.ColumnStack.Top().SelectedMovie().ID)
}

func TestCachedDetailsOpenCastImmediately(t *testing.T) {
	m, _, catalog := newTestModel(t, domain.SourcePopular, domain.EmptySnapshot())
	m = loadFirstPage(t, m, catalog)
	m = update(t, m, DetailsCmd(catalog, m.detailSeq, 1)())

	m = press(t, m, "c")
	assert.Equal(t, 2, m.ColumnStack.Len())
}

func TestStaleDetailsAreDropped(t *testing.T) {
	m, _, catalog := newTestModel(t, domain.SourcePopular, domain.EmptySnapshot())
	m = loadFirstPage(t, m, catalog)
	firstSeq := m.detailSeq

	m = press(t, m, "j")
	assert.Equal(t, 2, m.detailWant)
	assert.NotEqual(t, firstSeq, m.detailSeq)

	m = update(t, m, DetailsCmd(catalog, firstSeq, 1)())
	_, cached := m.details[1]
	assert.False(t, cached)
}

func TestPendingCastClearedWhenSelectionMoves(t *testing.T) {
	m, _, catalog := newTestModel(t, domain.SourcePopular, domain.EmptySnapshot())
	m = loadFirstPage(t, m, catalog)
	seq := m.detailSeq

	m = press(t, m, "c", "j", "k")
	assert.Zero(t, m.pendingCast)

	m = update(t, m, DetailsCmd(catalog, seq, 1)())
	assert.Equal(t, 1, m.ColumnStack.Len())
}

func TestAuthErrorShowsStatus(t *testing.T) {
	m, _, _ := newTestModel(t, domain.SourcePopular, domain.EmptySnapshot())

	m = update(t, m, ErrMsg{Err: fmt.Errorf("%w: bad", domain.ErrAuthFailed), Context: "loading Popular", Seq: m.pageSeq})
	assert.False(t, m.Loading)
	assert.True(t, m.StatusIsErr)
	assert.Contains(t, m.StatusMsg, "token")
	assert.Zero(t, m.ColumnStack.Root().ItemCount())
}

func TestOtherErrorsRenderEmptyState(t *testing.T) {
	m, _, _ := newTestModel(t, domain.SourcePopular, domain.EmptySnapshot())

	m = update(t, m, ErrMsg{Err: domain.ErrCatalogOffline, Context: "loading Popular", Seq: m.pageSeq})
	assert.False(t, m.Loading)
	assert.Empty(t, m.StatusMsg)
	assert.Contains(t, m.View(), "Nothing to show")
}

func TestFailedDetailsAreNotRetriedUntilAsked(t *testing.T) {
	m, _, catalog := newTestModel(t, domain.SourcePopular, domain.EmptySnapshot())
	m = loadFirstPage(t, m, catalog)

	m = press(t, m, "j") // No Poster, unknown to the fake
	m = update(t, m, DetailsCmd(catalog, m.detailSeq, 2)())
	assert.True(t, m.failed[failKey("movie", 2)])

	m = press(t, m, "k")
	seq := m.detailSeq
	m = press(t, m, "j")
	assert.Equal(t, seq, m.detailSeq, "no new request for a failed movie")

	m = press(t, m, "c")
	assert.NotEqual(t, seq, m.detailSeq, "explicit cast request retries")
}

func TestPaging(t *testing.T) {
	m, _, catalog := newTestModel(t, domain.SourcePopular, domain.EmptySnapshot())
	m = loadFirstPage(t, m, catalog)

	m, cmd := updateCmd(t, m, keyPress("p"))
	assert.Nil(t, cmd, "no page before the first")

	m, cmd = updateCmd(t, m, keyPress("n"))
	require.NotNil(t, cmd)
	m = update(t, m, cmd())
	assert.Equal(t, 2, m.Page)

	m, cmd = updateCmd(t, m, keyPress("]"))
	require.NotNil(t, cmd)
	m = update(t, m, cmd())
	assert.Equal(t, 3, m.Page)

	_, cmd = updateCmd(t, m, keyPress("n"))
	assert.Nil(t, cmd, "no page after the last")
}

func TestGoToPage(t *testing.T) {
	m, _, catalog := newTestModel(t, domain.SourcePopular, domain.EmptySnapshot())
	m = loadFirstPage(t, m, catalog)

	m = press(t, m, ":")
	require.True(t, m.InputModal.IsVisible())
	m = press(t, m, "3")
	m, cmd := updateCmd(t, m, keyPress("enter"))
	assert.False(t, m.InputModal.IsVisible())
	require.NotNil(t, cmd)
	m = update(t, m, cmd())
	assert.Equal(t, 3, m.Page)

	m = press(t, m, ":", "x", "enter")
	assert.True(t, m.StatusIsErr)
}

func TestSearchFromOmnibar(t *testing.T) {
	m, _, catalog := newTestModel(t, domain.SourcePopular, domain.EmptySnapshot())
	m = loadFirstPage(t, m, catalog)

	m = press(t, m, "s")
	require.True(t, m.Omnibar.IsVisible())
	require.False(t, m.Omnibar.IsLocal())

	m = press(t, m, "heat")
	m, cmd := updateCmd(t, m, keyPress("enter"))
	assert.False(t, m.Omnibar.IsVisible())
	assert.Equal(t, domain.SourceSearch, m.Source)
	assert.Equal(t, "heat", m.Query)
	assert.Equal(t, `Search Results for "heat"`, m.ColumnStack.Root().Title())
	require.NotNil(t, cmd)

	m = update(t, m, BrowseCmd(catalog, m.pageSeq, m.Source, m.Query, m.Filter, 1)())
	assert.Equal(t, 3, m.ColumnStack.Root().ItemCount())
	assert.Contains(t, catalog.browseCalls, "search:heat:1")
}

func TestSearchInsideSavedListJumpsToMovie(t *testing.T) {
	initial := domain.EmptySnapshot()
	initial.Watchlist.Movies = []domain.MovieSummary{summary(10, "Alien"), summary(11, "Brazil"), summary(12, "Casablanca")}
	m, _, _ := newTestModel(t, domain.SourceWatchlist, initial)

	m = press(t, m, "s")
	require.True(t, m.Omnibar.IsLocal())
	m = press(t, m, "casa", "enter")
	assert.False(t, m.Omnibar.IsVisible())
	assert.Equal(t, domain.SourceWatchlist, m.Source)
	assert.Equal(t, 12, m.ColumnStack.Root().SelectedMovie().ID)
}

func TestDiscoverModalAppliesFilter(t *testing.T) {
	m, _, catalog := newTestModel(t, domain.SourcePopular, domain.EmptySnapshot())
	m = loadFirstPage(t, m, catalog)

	m = press(t, m, "d")
	require.True(t, m.DiscoverModal.IsVisible())

	// Genre, Year, Min rating: move to the rating row and pick 8+
	m = press(t, m, "j", "j", "l")
	m, cmd := updateCmd(t, m, keyPress("enter"))
	assert.False(t, m.DiscoverModal.IsVisible())
	assert.Equal(t, domain.SourceDiscover, m.Source)
	assert.Equal(t, 8.0, m.Filter.MinRating)
	assert.NotNil(t, cmd)
}

func TestPostersOnlyToggle(t *testing.T) {
	m, _, catalog := newTestModel(t, domain.SourcePopular, domain.EmptySnapshot())
	m = loadFirstPage(t, m, catalog)

	m = press(t, m, "P")
	assert.True(t, m.PostersOnly)
	assert.Equal(t, 2, m.ColumnStack.Root().ItemCount())

	m = press(t, m, "P")
	assert.Equal(t, 3, m.ColumnStack.Root().ItemCount())
}

func TestPostersOnlyAppliesToSavedLists(t *testing.T) {
	initial := domain.EmptySnapshot()
	initial.Watchlist.Movies = []domain.MovieSummary{
		{ID: 1, Title: "Heat", PosterPath: ptr("/heat.jpg")},
		summary(2, "No Poster"),
	}
	m, store, _ := newTestModel(t, domain.SourceWatchlist, initial)
	require.Equal(t, 2, m.ColumnStack.Root().ItemCount())

	m = press(t, m, "P")
	assert.Equal(t, 1, m.ColumnStack.Root().ItemCount())
	assert.Contains(t, m.View(), "posters only")

	store.Add(domain.Watchlist, summary(3, "Also No Poster"))
	m = update(t, m, ListChangedMsg{Change: receiveChange(t, m)})
	assert.Equal(t, 1, m.ColumnStack.Root().ItemCount())

	m = press(t, m, "P")
	assert.Equal(t, 3, m.ColumnStack.Root().ItemCount())
}

func TestRefreshInvalidatesCache(t *testing.T) {
	m, _, catalog := newTestModel(t, domain.SourcePopular, domain.EmptySnapshot())
	m = loadFirstPage(t, m, catalog)
	m = update(t, m, DetailsCmd(catalog, m.detailSeq, 1)())
	require.Len(t, m.details, 1)

	m = press(t, m, "r")
	assert.Equal(t, 1, catalog.invalidated)
	assert.Empty(t, m.details)
	assert.True(t, m.Loading)
}

func TestHelpScreen(t *testing.T) {
	m, _, _ := newTestModel(t, domain.SourcePopular, domain.EmptySnapshot())

	m = press(t, m, "?")
	assert.Equal(t, StateHelp, m.State)
	assert.Contains(t, m.View(), "Toggle favorite")

	m = press(t, m, "x")
	assert.Equal(t, StateBrowsing, m.State)
}

func TestChannelObserverKeepsNewestChange(t *testing.T) {
	ch := make(chan domain.ListChange, 1)
	obs := NewChannelObserver(ch)

	obs.OnListChange(domain.ListChange{MovieID: 1})
	obs.OnListChange(domain.ListChange{MovieID: 2})
	obs.OnListChange(domain.ListChange{MovieID: 3})

	assert.Len(t, ch, 1)
	assert.Equal(t, 3, (<-ch).MovieID)
}

func TestCollapsedChangesStillRefreshList(t *testing.T) {
	initial := domain.EmptySnapshot()
	initial.Favorites.Movies = []domain.MovieSummary{summary(10, "Alien")}
	m, store, _ := newTestModel(t, domain.SourceFavorites, initial)

	// The favorites change is replaced by the later watchlist one
	store.Add(domain.Favorites, summary(11, "Aliens"))
	store.Add(domain.Watchlist, summary(20, "Brazil"))
	change := receiveChange(t, m)
	assert.Equal(t, domain.Watchlist, change.Kind)

	m = update(t, m, ListChangedMsg{Change: change})
	assert.Equal(t, 2, m.ColumnStack.Root().ItemCount())
}

func TestWaitForListChangeCmd(t *testing.T) {
	ch := make(chan domain.ListChange, 1)
	ch <- domain.ListChange{Kind: domain.Watchlist, MovieID: 7}

	msg := WaitForListChangeCmd(ch)()
	changed, ok := msg.(ListChangedMsg)
	require.True(t, ok)
	assert.Equal(t, 7, changed.Change.MovieID)
}

type fakeOpener struct {
	trailers []string
	pages    []string
}

func (f *fakeOpener) PlayTrailer(url string) error {
	f.trailers = append(f.trailers, url)
	return nil
}

func (f *fakeOpener) OpenPage(url string) error {
	f.pages = append(f.pages, url)
	return nil
}

func TestPlayTrailer(t *testing.T) {
	m, _, catalog := newTestModel(t, domain.SourcePopular, domain.EmptySnapshot())
	opener := &fakeOpener{}
	m.opener = opener
	m = loadFirstPage(t, m, catalog)

	m, _ = updateCmd(t, m, keyPress("t"))
	assert.Equal(t, "Details still loading", m.StatusMsg)

	m = update(t, m, DetailsCmd(catalog, m.detailSeq, 1)())
	m, cmd := updateCmd(t, m, keyPress("t"))
	require.NotNil(t, cmd)
	m = update(t, m, cmd())
	assert.Equal(t, []string{"https://www.youtube.com/watch?v=abc123"}, opener.trailers)
	assert.Equal(t, "Opened trailer for Heat", m.StatusMsg)
}

func TestOpenPage(t *testing.T) {
	m, _, catalog := newTestModel(t, domain.SourcePopular, domain.EmptySnapshot())
	opener := &fakeOpener{}
	m.opener = opener
	m = loadFirstPage(t, m, catalog)
	m = update(t, m, DetailsCmd(catalog, m.detailSeq, 1)())

	_, cmd := updateCmd(t, m, keyPress("o"))
	require.NotNil(t, cmd)
	cmd()

	m = press(t, m, "c")
	_, cmd = updateCmd(t, m, keyPress("o"))
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, []string{
		"https://www.themoviedb.org/movie/1",
		"https://www.themoviedb.org/person/1158",
	}, opener.pages)
}

func TestOpenerKeysWithoutOpener(t *testing.T) {
	m, _, catalog := newTestModel(t, domain.SourcePopular, domain.EmptySnapshot())
	m = loadFirstPage(t, m, catalog)

	_, cmd := updateCmd(t, m, keyPress("o"))
	assert.Nil(t, cmd)
}
