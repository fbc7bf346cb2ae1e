// Package kv provides the key/value persistence layer that recency lists are
// stored in. Values are JSON-serialisable and addressed by a string key.
package kv

import (
	"context"
	"errors"
)

var (
	// ErrCorrupt is returned when a stored value cannot be decoded.
	ErrCorrupt = errors.New("corrupt stored value")

	// ErrInvalidKey is returned for keys a store cannot address.
	ErrInvalidKey = errors.New("invalid key")
)

// Store persists values under string keys.
type Store interface {
	// Get decodes the value stored under key into dst. It reports false
	// and leaves dst untouched when the key has never been set.
	Get(ctx context.Context, key string, dst any) (bool, error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value any) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Get returns the value stored under key, or def if the key is absent.
func Get[T any](ctx context.Context, s Store, key string, def T) (T, error) {
	var v T
	found, err := s.Get(ctx, key, &v)
	if err != nil {
		return def, err
	}
	if !found {
		return def, nil
	}
	return v, nil
}

// Set stores value under key.
func Set[T any](ctx context.Context, s Store, key string, value T) error {
	return s.Set(ctx, key, value)
}
