package tui

import "github.com/mmcdole/marquee/internal/domain"

// ChannelObserver adapts domain.ListObserver to a channel for Bubble Tea.
// The channel works as a dirty flag: at most the newest change waits in it,
// and the view re-reads the store whenever it receives one.
type ChannelObserver struct {
	ch chan domain.ListChange
}

// NewChannelObserver creates a new channel-based observer. ch should have a
// buffer of one.
func NewChannelObserver(ch chan domain.ListChange) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// OnListChange queues the change without blocking, replacing one that is
// still pending.
func (o *ChannelObserver) OnListChange(change domain.ListChange) {
	for {
		select {
		case o.ch <- change:
			return
		default:
		}
		select {
		case <-o.ch:
		default:
		}
	}
}
