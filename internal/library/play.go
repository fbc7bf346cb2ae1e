package library

import (
	"context"
	"time"

	"github.com/tessro/spin/internal/core"
	"github.com/tessro/spin/internal/recent"
)

// Plays is the recently-played history.
type Plays struct {
	list   *recent.Manager[core.PlayEntry]
	maxLen int
	now    func() time.Time
}

// Record notes that track was played now. A track already in the history
// keeps its original position and timestamp.
func (p *Plays) Record(ctx context.Context, track core.Track) ([]core.PlayEntry, error) {
	if track.ID == "" {
		return nil, ErrMissingID
	}
	entry := core.PlayEntry{Track: track, PlayedAt: p.now()}
	return p.list.Save(ctx, entry, PlayKey, recent.By(entry, core.PlayEntryID), p.maxLen)
}

// Remove deletes the entry for the track with id.
func (p *Plays) Remove(ctx context.Context, id string) ([]core.PlayEntry, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	return remove(ctx, p.list, PlayKey, func(e core.PlayEntry) bool {
		return e.Track.ID == id
	})
}

// List returns the history, most recent first.
func (p *Plays) List(ctx context.Context) ([]core.PlayEntry, error) {
	return p.list.Load(ctx, PlayKey)
}

// Clear forgets every play.
func (p *Plays) Clear(ctx context.Context) error {
	return p.list.Clear(ctx, PlayKey)
}
