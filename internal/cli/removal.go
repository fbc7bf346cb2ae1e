package cli

import (
	"context"
	"fmt"
)

// removal is the stored list before and after a remove command.
type removal[T any] struct {
	before []T
	after  []T
}

// removeStored runs remove between two reads of the stored list, so the
// result reflects what was persisted rather than what remove returned.
func removeStored[T any](ctx context.Context, list func(context.Context) ([]T, error), remove func(context.Context) ([]T, error)) (removal[T], error) {
	var r removal[T]
	var err error
	if r.before, err = list(ctx); err != nil {
		return r, err
	}
	if _, err = remove(ctx); err != nil {
		return r, err
	}
	if r.after, err = list(ctx); err != nil {
		return r, err
	}
	return r, nil
}

// gone returns the first element of before that is missing from after.
func (r removal[T]) gone(id func(T) string) (T, bool) {
	kept := make(map[string]struct{}, len(r.after))
	for _, v := range r.after {
		kept[id(v)] = struct{}{}
	}
	for _, v := range r.before {
		if _, ok := kept[id(v)]; !ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func removalStatus(removed bool) string {
	if removed {
		return "removed"
	}
	return "not_removed"
}

func printNotRemoved(what string) {
	fmt.Println(muted(fmt.Sprintf("Nothing removed for %s", what)))
}
