package library

import (
	"context"
	"slices"

	"github.com/tessro/spin/internal/core"
	"github.com/tessro/spin/internal/recent"
)

// Favorites is the user's list of favourite tracks.
type Favorites struct {
	list   *recent.Manager[core.Track]
	maxLen int
}

// Add marks track as a favourite.
func (f *Favorites) Add(ctx context.Context, track core.Track) ([]core.Track, error) {
	if track.ID == "" {
		return nil, ErrMissingID
	}
	return f.list.Save(ctx, track, FavoriteKey, recent.By(track, core.TrackID), f.maxLen)
}

// Remove unmarks the track with id.
func (f *Favorites) Remove(ctx context.Context, id string) ([]core.Track, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	return remove(ctx, f.list, FavoriteKey, func(t core.Track) bool {
		return t.ID == id
	})
}

// Toggle adds track if it is not a favourite and removes it otherwise.
// It reports whether the track is a favourite afterwards.
func (f *Favorites) Toggle(ctx context.Context, track core.Track) (bool, []core.Track, error) {
	ok, err := f.Contains(ctx, track.ID)
	if err != nil {
		return false, nil, err
	}
	if ok {
		items, err := f.Remove(ctx, track.ID)
		if err != nil {
			return false, nil, err
		}
		return containsID(items, track.ID), items, nil
	}
	items, err := f.Add(ctx, track)
	if err != nil {
		return false, nil, err
	}
	return containsID(items, track.ID), items, nil
}

// Contains reports whether the track with id is a favourite.
func (f *Favorites) Contains(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, ErrMissingID
	}
	items, err := f.list.Load(ctx, FavoriteKey)
	if err != nil {
		return false, err
	}
	return containsID(items, id), nil
}

// List returns favourites, most recently added first.
func (f *Favorites) List(ctx context.Context) ([]core.Track, error) {
	return f.list.Load(ctx, FavoriteKey)
}

// Clear removes every favourite.
func (f *Favorites) Clear(ctx context.Context) error {
	return f.list.Clear(ctx, FavoriteKey)
}

func containsID(items []core.Track, id string) bool {
	return slices.ContainsFunc(items, func(t core.Track) bool { return t.ID == id })
}
