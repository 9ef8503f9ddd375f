package lists

import (
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
)

// collection is an ordered list of summaries, unique by movie ID.
type collection struct {
	movies []domain.MovieSummary
	index  map[int]int // movie ID -> position in movies
}

func newCollection(movies []domain.MovieSummary) *collection {
	c := &collection{index: make(map[int]int, len(movies))}
	for _, m := range movies {
		c.add(m) // Duplicate IDs in restored state keep the first occurrence
	}
	return c
}

func (c *collection) contains(id int) bool {
	_, ok := c.index[id]
	return ok
}

func (c *collection) add(m domain.MovieSummary) bool {
	if c.contains(m.ID) {
		return false
	}
	c.index[m.ID] = len(c.movies)
	c.movies = append(c.movies, m)
	return true
}

func (c *collection) remove(id int) bool {
	pos, ok := c.index[id]
	if !ok {
		return false
	}
	c.movies = append(c.movies[:pos], c.movies[pos+1:]...)
	delete(c.index, id)
	for i := pos; i < len(c.movies); i++ {
		c.index[c.movies[i].ID] = i
	}
	return true
}

func (c *collection) copyMovies() []domain.MovieSummary {
	out := make([]domain.MovieSummary, len(c.movies))
	copy(out, c.movies)
	return out
}

// Store owns the Favorites and Watchlist collections for the process lifetime.
// Every Add/Remove/Toggle call notifies subscribed observers exactly once,
// after the mutation is applied and the lock released.
type Store struct {
	mu        sync.RWMutex
	lists     map[domain.ListKind]*collection
	observers []domain.ListObserver
}

// New creates a store seeded from a snapshot. Pass domain.EmptySnapshot()
// when there is no prior state.
func New(initial domain.Snapshot) *Store {
	return &Store{
		lists: map[domain.ListKind]*collection{
			domain.Favorites: newCollection(initial.Favorites.Movies),
			domain.Watchlist: newCollection(initial.Watchlist.Movies),
		},
	}
}

// Subscribe registers an observer. Observers are called in registration order.
func (s *Store) Subscribe(observer domain.ListObserver) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	s.observers = append(s.observers, observer)
	s.mu.Unlock()
}

// Add appends the summary unless its ID is already present.
// An existing entry is never overwritten.
func (s *Store) Add(kind domain.ListKind, summary domain.MovieSummary) {
	s.mutate(kind, domain.OpAdd, summary.ID, func(c *collection) bool {
		return c.add(summary)
	})
}

// Remove drops the entry with the given ID, if present.
func (s *Store) Remove(kind domain.ListKind, id int) {
	s.mutate(kind, domain.OpRemove, id, func(c *collection) bool {
		return c.remove(id)
	})
}

// Toggle removes the entry if present, otherwise appends it.
// It returns whether the movie is in the list afterwards.
func (s *Store) Toggle(kind domain.ListKind, summary domain.MovieSummary) bool {
	var member bool
	s.mutate(kind, domain.OpToggle, summary.ID, func(c *collection) bool {
		if c.contains(summary.ID) {
			c.remove(summary.ID)
			member = false
		} else {
			c.add(summary)
			member = true
		}
		return true
	})
	return member
}

// Contains reports whether the movie is in the list
func (s *Store) Contains(kind domain.ListKind, id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.get(kind)
	return ok && c.contains(id)
}

// Count returns the number of entries in the list
func (s *Store) Count(kind domain.ListKind) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.get(kind)
	if !ok {
		return 0
	}
	return len(c.movies)
}

// Movies returns a copy of the list in insertion order
func (s *Store) Movies(kind domain.ListKind) []domain.MovieSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.get(kind)
	if !ok {
		return nil
	}
	return c.copyMovies()
}

// Snapshot returns a deep copy of both lists
func (s *Store) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() domain.Snapshot {
	return domain.Snapshot{
		Favorites: domain.Collection{Movies: s.lists[domain.Favorites].copyMovies()},
		Watchlist: domain.Collection{Movies: s.lists[domain.Watchlist].copyMovies()},
	}
}

func (s *Store) get(kind domain.ListKind) (*collection, bool) {
	c, ok := s.lists[kind]
	return c, ok
}

// mutate applies fn under the write lock, then notifies observers outside it.
// Unknown kinds are ignored without notifying.
func (s *Store) mutate(kind domain.ListKind, op domain.ListOp, id int, fn func(c *collection) bool) {
	s.mu.Lock()
	c, ok := s.get(kind)
	if !ok {
		s.mu.Unlock()
		return
	}
	changed := fn(c)
	change := domain.ListChange{
		Kind:     kind,
		Op:       op,
		MovieID:  id,
		Changed:  changed,
		Snapshot: s.snapshotLocked(),
	}
	observers := make([]domain.ListObserver, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, o := range observers {
		o.OnListChange(change)
	}
}

var _ domain.Lists = (*Store)(nil)
