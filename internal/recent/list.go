// Package recent maintains bounded, de-duplicated "recently used" lists on top
// of a kv.Store. The most recently inserted item is always first.
package recent

// Compare reports whether candidate is the item a caller is looking for.
// It must be free of side effects.
type Compare[T any] func(candidate T) bool

// Insert returns items with item placed at the front, unless an element
// already satisfies compare, in which case a copy of items is returned
// unchanged. When maxLen is positive and the insert pushes the length past
// it, the last element is dropped. items is never modified.
func Insert[T any](items []T, item T, compare Compare[T], maxLen int) []T {
	if index(items, compare) >= 0 {
		return clone(items)
	}

	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	out = append(out, items...)

	// At most one element is added, so at most one is evicted.
	if maxLen > 0 && len(out) > maxLen {
		out = out[:len(out)-1]
	}
	return out
}

// Delete returns a copy of items without the first element satisfying
// compare. If nothing matches, the copy is unchanged.
func Delete[T any](items []T, compare Compare[T]) []T {
	i := index(items, compare)
	if i < 0 {
		return clone(items)
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

// deleteLegacy reproduces the removal that shipped in earlier releases: the
// guard is inverted, so a match leaves the list alone, while a miss removes
// the last element (a splice at index -1).
func deleteLegacy[T any](items []T, compare Compare[T]) []T {
	if index(items, compare) >= 0 || len(items) == 0 {
		return clone(items)
	}
	return clone(items[:len(items)-1])
}

func index[T any](items []T, compare Compare[T]) int {
	for i, v := range items {
		if compare(v) {
			return i
		}
	}
	return -1
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
