// Package library holds the recency lists a player keeps for its user:
// search history, play history, and favourites.
package library

import (
	"context"
	"errors"
	"time"

	"github.com/tessro/spin/internal/core"
	"github.com/tessro/spin/internal/kv"
	"github.com/tessro/spin/internal/recent"
)

// Store keys for each list.
const (
	SearchKey   = "__search__"
	PlayKey     = "__play__"
	FavoriteKey = "__favorite__"
)

// Default capacities.
const (
	DefaultSearchMax   = 200
	DefaultPlayMax     = 200
	DefaultFavoriteMax = 100
)

var (
	ErrEmptyQuery = errors.New("empty search query")
	ErrMissingID  = errors.New("track has no id")
)

// Limits caps each list. Zero or negative means unbounded.
type Limits struct {
	Search   int
	Play     int
	Favorite int
}

// DefaultLimits returns the stock capacities.
func DefaultLimits() Limits {
	return Limits{
		Search:   DefaultSearchMax,
		Play:     DefaultPlayMax,
		Favorite: DefaultFavoriteMax,
	}
}

// Option configures a Library.
type Option func(*settings)

type settings struct {
	now    func() time.Time
	remove recent.RemovePolicy
}

// WithClock overrides the clock used to stamp play entries.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRemovePolicy sets how removals from every list behave.
func WithRemovePolicy(p recent.RemovePolicy) Option {
	return func(s *settings) {
		s.remove = p
	}
}

// Library groups the lists kept in one store.
type Library struct {
	Searches  *Searches
	Plays     *Plays
	Favorites *Favorites
}

// New creates a Library over store.
func New(store kv.Store, limits Limits, opts ...Option) *Library {
	s := settings{now: time.Now}
	for _, opt := range opts {
		opt(&s)
	}
	policy := recent.WithRemovePolicy(s.remove)

	return &Library{
		Searches: &Searches{
			list:   recent.New[string](store, policy),
			maxLen: capacity(limits.Search),
		},
		Plays: &Plays{
			list:   recent.New[core.PlayEntry](store, policy),
			maxLen: capacity(limits.Play),
			now:    s.now,
		},
		Favorites: &Favorites{
			list:   recent.New[core.Track](store, policy),
			maxLen: capacity(limits.Favorite),
		},
	}
}

func capacity(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// remove applies the list's policy; under RemoveInMemory the facade is the
// caller responsible for writing the result back.
func remove[T any](ctx context.Context, list *recent.Manager[T], key string, compare recent.Compare[T]) ([]T, error) {
	items, err := list.Remove(ctx, key, compare)
	if err != nil {
		return nil, err
	}
	if list.RemovePolicy() == recent.RemoveInMemory {
		if err := list.Store(ctx, key, items); err != nil {
			return nil, err
		}
	}
	return items, nil
}
