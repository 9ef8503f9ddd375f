package domain

import "fmt"

// ListKind selects one of the two personal lists
type ListKind int

const (
	Favorites ListKind = iota
	Watchlist
)

// ListKinds enumerates every list in display order
var ListKinds = []ListKind{Favorites, Watchlist}

func (k ListKind) String() string {
	switch k {
	case Favorites:
		return "favorites"
	case Watchlist:
		return "watchlist"
	default:
		return fmt.Sprintf("ListKind(%d)", int(k))
	}
}

// Title returns the heading used when the list is shown as a source
func (k ListKind) Title() string {
	switch k {
	case Favorites:
		return "My Favorites"
	case Watchlist:
		return "My Watchlist"
	default:
		return k.String()
	}
}

// ParseListKind accepts "favorites" or "watchlist" (and their singulars)
func ParseListKind(s string) (ListKind, error) {
	switch s {
	case "favorites", "favorite", "fav":
		return Favorites, nil
	case "watchlist", "watch":
		return Watchlist, nil
	default:
		return 0, fmt.Errorf("unknown list %q", s)
	}
}

// Collection is the persisted form of one list
type Collection struct {
	Movies []MovieSummary `json:"movies"`
}

// Snapshot is the durable record of both lists
type Snapshot struct {
	Favorites Collection `json:"favorites"`
	Watchlist Collection `json:"watchlist"`
}

// EmptySnapshot returns a snapshot with two empty, non-nil collections
func EmptySnapshot() Snapshot {
	return Snapshot{
		Favorites: Collection{Movies: []MovieSummary{}},
		Watchlist: Collection{Movies: []MovieSummary{}},
	}
}

// Collection returns the collection for a list kind
func (s Snapshot) Collection(kind ListKind) Collection {
	if kind == Watchlist {
		return s.Watchlist
	}
	return s.Favorites
}

// ListOp names the operation that produced a ListChange
type ListOp int

const (
	OpAdd ListOp = iota
	OpRemove
	OpToggle
)

func (o ListOp) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpRemove:
		return "remove"
	case OpToggle:
		return "toggle"
	default:
		return "unknown"
	}
}

// ListChange describes one mutation call on the list store.
type ListChange struct {
	Kind     ListKind
	Op       ListOp
	MovieID  int
	Changed  bool     // False when the call was a no-op (duplicate add, missing remove)
	Snapshot Snapshot // State of both lists after the call
}

// ListObserver receives a notification after every list mutation call.
type ListObserver interface {
	OnListChange(change ListChange)
}
