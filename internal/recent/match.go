package recent

import "github.com/mitchellh/hashstructure/v2"

// Equal matches candidates equal to v.
func Equal[T comparable](v T) Compare[T] {
	return func(candidate T) bool {
		return candidate == v
	}
}

// By matches candidates whose extracted key equals the key of item,
// e.g. By(track, func(t Track) string { return t.ID }).
func By[T any, K comparable](item T, key func(T) K) Compare[T] {
	want := key(item)
	return func(candidate T) bool {
		return key(candidate) == want
	}
}

// SameAs matches candidates that are structurally identical to item.
// Values that cannot be hashed never match.
func SameAs[T any](item T) Compare[T] {
	want, err := hashstructure.Hash(item, hashstructure.FormatV2, nil)
	if err != nil {
		return func(T) bool { return false }
	}
	return func(candidate T) bool {
		got, err := hashstructure.Hash(candidate, hashstructure.FormatV2, nil)
		return err == nil && got == want
	}
}
