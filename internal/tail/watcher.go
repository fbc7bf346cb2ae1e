package tail

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tessro/spin/internal/recent"
)

// EventType represents the kind of list change.
type EventType int

const (
	EventInsert EventType = iota
	EventRemove
	EventClear
	EventUpdate
)

func (t EventType) String() string {
	switch t {
	case EventInsert:
		return "insert"
	case EventRemove:
		return "remove"
	case EventClear:
		return "clear"
	case EventUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// Event represents one change to a watched list.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Key       string
	ID        string
	Label     string
	Position  int
}

// LoadFunc reads the current contents of the watched list.
type LoadFunc[T any] func(ctx context.Context) ([]T, error)

// Watcher polls a list for changes and emits events.
type Watcher[T any] struct {
	load     LoadFunc[T]
	key      string
	id       func(T) string
	label    func(T) string
	interval time.Duration
	events   chan Event
	done     chan struct{}
	logger   *log.Logger
}

// WatcherOption configures a Watcher.
type WatcherOption func(*watcherOptions)

type watcherOptions struct {
	logger *log.Logger
}

// WithLogger sets the logger used to report poll failures.
func WithLogger(l *log.Logger) WatcherOption {
	return func(o *watcherOptions) {
		o.logger = l
	}
}

// NewWatcher creates a watcher for the list read by load; key names the list
// in events. id identifies items across polls and label renders them; label
// may be nil.
func NewWatcher[T any](load LoadFunc[T], key string, id, label func(T) string, interval time.Duration, opts ...WatcherOption) *Watcher[T] {
	if interval == 0 {
		interval = time.Second
	}
	if label == nil {
		label = id
	}
	o := watcherOptions{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&o)
	}
	return &Watcher[T]{
		load:     load,
		key:      key,
		id:       id,
		label:    label,
		interval: interval,
		events:   make(chan Event, 16),
		done:     make(chan struct{}),
		logger:   o.logger,
	}
}

// Events returns the channel of list events.
func (w *Watcher[T]) Events() <-chan Event {
	return w.events
}

// Start polls until ctx is cancelled or Stop is called.
func (w *Watcher[T]) Start(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer close(w.events)

	// Initial snapshot is the baseline; it produces no events.
	prev, err := w.load(ctx)
	if err != nil {
		w.logger.Warn("initial load failed", "key", w.key, "err", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		case <-ticker.C:
			curr, err := w.load(ctx)
			if err != nil {
				w.logger.Warn("poll failed", "key", w.key, "err", err)
				continue
			}

			for _, e := range w.diff(prev, curr, time.Now()) {
				select {
				case w.events <- e:
				default:
					// Drop event if channel is full
					w.logger.Debug("dropped event", "key", w.key, "id", e.ID)
				}
			}

			prev = curr
		}
	}
}

// Stop stops the watcher.
func (w *Watcher[T]) Stop() {
	close(w.done)
}

// diff compares two snapshots. Removals are reported first, then items whose
// contents changed in place, then inserts from oldest to newest so they read
// in the order they happened.
func (w *Watcher[T]) diff(prev, curr []T, now time.Time) []Event {
	if len(prev) > 0 && len(curr) == 0 {
		return []Event{{Type: EventClear, Timestamp: now, Key: w.key}}
	}

	prevByID := make(map[string]T, len(prev))
	for _, v := range prev {
		id := w.id(v)
		if _, ok := prevByID[id]; !ok {
			prevByID[id] = v
		}
	}
	currIDs := make(map[string]struct{}, len(curr))
	for _, v := range curr {
		currIDs[w.id(v)] = struct{}{}
	}

	var events []Event
	for i, v := range prev {
		if _, ok := currIDs[w.id(v)]; !ok {
			events = append(events, w.event(EventRemove, v, i, now))
		}
	}
	for i, v := range curr {
		old, ok := prevByID[w.id(v)]
		if ok && !recent.SameAs(old)(v) {
			events = append(events, w.event(EventUpdate, v, i, now))
		}
	}
	for i := len(curr) - 1; i >= 0; i-- {
		if _, ok := prevByID[w.id(curr[i])]; !ok {
			events = append(events, w.event(EventInsert, curr[i], i, now))
		}
	}
	return events
}

func (w *Watcher[T]) event(t EventType, v T, pos int, now time.Time) Event {
	return Event{
		Type:      t,
		Timestamp: now,
		Key:       w.key,
		ID:        w.id(v),
		Label:     w.label(v),
		Position:  pos,
	}
}
