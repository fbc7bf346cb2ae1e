package recent

import (
	"context"
	"fmt"

	"github.com/tessro/spin/internal/kv"
)

// RemovePolicy selects how Remove behaves.
type RemovePolicy int

const (
	// RemovePersist removes the first match, if any, and writes the
	// result back to the store.
	RemovePersist RemovePolicy = iota

	// RemoveInMemory removes the first match but leaves persisting the
	// result to the caller.
	RemoveInMemory

	// RemoveLegacy keeps compatibility with lists written by earlier
	// releases: nothing is removed when a match exists, the last element
	// is removed when none does, and nothing is written back.
	RemoveLegacy
)

// String returns the configuration name of the policy.
func (p RemovePolicy) String() string {
	switch p {
	case RemovePersist:
		return "persist"
	case RemoveInMemory:
		return "memory"
	case RemoveLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// ParseRemovePolicy parses a policy name as written in configuration.
func ParseRemovePolicy(s string) (RemovePolicy, error) {
	switch s {
	case "", "persist":
		return RemovePersist, nil
	case "memory":
		return RemoveInMemory, nil
	case "legacy":
		return RemoveLegacy, nil
	default:
		return RemovePersist, fmt.Errorf("invalid remove policy: %s (must be persist, memory, or legacy)", s)
	}
}

// Option configures a Manager.
type Option func(*options)

type options struct {
	removePolicy RemovePolicy
}

// WithRemovePolicy sets the policy used by Remove.
func WithRemovePolicy(p RemovePolicy) Option {
	return func(o *options) {
		o.removePolicy = p
	}
}

// Manager performs read-modify-write operations on lists of T held in a
// kv.Store. It keeps no list state between calls. Calls on the same key
// are not isolated from each other.
type Manager[T any] struct {
	store kv.Store
	opts  options
}

// New creates a Manager over store.
func New[T any](store kv.Store, opts ...Option) *Manager[T] {
	m := &Manager[T]{store: store}
	for _, opt := range opts {
		opt(&m.opts)
	}
	return m
}

// RemovePolicy returns the policy Remove uses.
func (m *Manager[T]) RemovePolicy() RemovePolicy {
	return m.opts.removePolicy
}

// Save inserts item at the front of the list under key unless an element
// already satisfies compare. A positive maxLen caps the list length by
// evicting from the back. The list is written back on every call, even when
// item was rejected as a duplicate.
func (m *Manager[T]) Save(ctx context.Context, item T, key string, compare Compare[T], maxLen int) ([]T, error) {
	items, err := m.read(ctx, key)
	if err != nil {
		return nil, err
	}

	items = Insert(items, item, compare, maxLen)

	if err := m.write(ctx, key, items); err != nil {
		return nil, err
	}
	return clone(items), nil
}

// Remove deletes the first element satisfying compare according to the
// manager's RemovePolicy and returns the resulting list.
func (m *Manager[T]) Remove(ctx context.Context, key string, compare Compare[T]) ([]T, error) {
	items, err := m.read(ctx, key)
	if err != nil {
		return nil, err
	}

	switch m.opts.removePolicy {
	case RemoveLegacy:
		return deleteLegacy(items, compare), nil
	case RemoveInMemory:
		return Delete(items, compare), nil
	}

	items = Delete(items, compare)
	if err := m.write(ctx, key, items); err != nil {
		return nil, err
	}
	return clone(items), nil
}

// Load returns the list under key, or an empty list if there is none.
func (m *Manager[T]) Load(ctx context.Context, key string) ([]T, error) {
	return m.read(ctx, key)
}

// Store writes items as the list under key. Callers using RemoveInMemory
// persist their results with it.
func (m *Manager[T]) Store(ctx context.Context, key string, items []T) error {
	return m.write(ctx, key, clone(items))
}

// Clear deletes the list under key; later loads see an empty list.
func (m *Manager[T]) Clear(ctx context.Context, key string) error {
	if err := m.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("clear %s: %w", key, err)
	}
	return nil
}

func (m *Manager[T]) read(ctx context.Context, key string) ([]T, error) {
	items, err := kv.Get(ctx, m.store, key, []T{})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (m *Manager[T]) write(ctx context.Context, key string, items []T) error {
	if err := kv.Set(ctx, m.store, key, items); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
