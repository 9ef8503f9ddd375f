package domain

// ListQueries: synchronous, in-memory reads.
// Safe to call from View() for badge counts and membership markers.
type ListQueries interface {
	Contains(kind ListKind, id int) bool
	Count(kind ListKind) int
	Movies(kind ListKind) []MovieSummary
	Snapshot() Snapshot
}

// ListCommands: mutations. Each call notifies subscribed observers once.
type ListCommands interface {
	Add(kind ListKind, summary MovieSummary)
	Remove(kind ListKind, id int)
	Toggle(kind ListKind, summary MovieSummary) bool
}

// Lists is the full list store surface handed to the view layer
type Lists interface {
	ListQueries
	ListCommands
	Subscribe(observer ListObserver)
}
