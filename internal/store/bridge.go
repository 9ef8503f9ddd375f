package store

import (
	"errors"
	"log/slog"

	"github.com/mmcdole/marquee/internal/domain"
)

// Bridge mirrors the list store into durable storage. It owns no data:
// Initial seeds the list store once at startup and OnListChange writes the
// full snapshot after every mutation call. Storage failures never reach the
// caller.
type Bridge struct {
	repo   domain.SnapshotRepository
	logger *slog.Logger
}

// NewBridge creates a bridge over a snapshot repository
func NewBridge(repo domain.SnapshotRepository, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{repo: repo, logger: logger}
}

// Initial loads the saved lists, or empty lists when none are usable
func (b *Bridge) Initial() domain.Snapshot {
	snap, err := b.repo.Load()
	switch {
	case err == nil:
		b.logger.Debug("restored lists",
			"favorites", len(snap.Favorites.Movies),
			"watchlist", len(snap.Watchlist.Movies))
		return snap
	case !IsAbsent(err):
		b.logger.Warn("failed to load saved lists, starting empty", "error", err)
	case errors.Is(err, domain.ErrCorruptSnapshot):
		b.logger.Warn("saved lists unreadable, starting empty", "error", err)
	default:
		b.logger.Debug("no saved lists, starting empty")
	}
	return domain.EmptySnapshot()
}

// OnListChange persists the snapshot carried by the change
func (b *Bridge) OnListChange(change domain.ListChange) {
	if err := b.repo.Save(change.Snapshot); err != nil {
		b.logger.Error("failed to persist lists",
			"list", change.Kind.String(),
			"op", change.Op.String(),
			"movie_id", change.MovieID,
			"error", err)
	}
}

var _ domain.ListObserver = (*Bridge)(nil)
