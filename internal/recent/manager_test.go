package recent

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/tessro/spin/internal/kv"
)

// countingStore wraps a MemoryStore and records calls.
type countingStore struct {
	*kv.MemoryStore
	gets, sets int
	setErr     error
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryStore: kv.NewMemoryStore()}
}

func (s *countingStore) Get(ctx context.Context, key string, dst any) (bool, error) {
	s.gets++
	return s.MemoryStore.Get(ctx, key, dst)
}

func (s *countingStore) Set(ctx context.Context, key string, value any) error {
	s.sets++
	if s.setErr != nil {
		return s.setErr
	}
	return s.MemoryStore.Set(ctx, key, value)
}

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func byID(id string) Compare[item] {
	return func(c item) bool { return c.ID == id }
}

func TestSaveSequence(t *testing.T) {
	ctx := context.Background()
	m := New[string](kv.NewMemoryStore())

	want := [][]string{
		{"A"},
		{"B", "A"},
		{"C", "B", "A"},
		{"D", "C", "B"},
	}

	for i, v := range []string{"A", "B", "C", "D"} {
		got, err := m.Save(ctx, v, "history", Equal(v), 3)
		if err != nil {
			t.Fatalf("Save(%q) error = %v", v, err)
		}
		if !slices.Equal(got, want[i]) {
			t.Errorf("Save(%q) = %v, want %v", v, got, want[i])
		}
	}
}

func TestSaveDuplicateStillWrites(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	m := New[item](store)

	for _, it := range []item{{"c", "C"}, {"b", "B"}, {"a", "A"}} {
		if _, err := m.Save(ctx, it, "k", byID(it.ID), 10); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}
	store.gets, store.sets = 0, 0

	got, err := m.Save(ctx, item{"a", "A'"}, "k", byID("a"), 10)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	want := []item{{"a", "A"}, {"b", "B"}, {"c", "C"}}
	if !slices.Equal(got, want) {
		t.Errorf("Save() = %v, want %v", got, want)
	}
	if store.gets != 1 || store.sets != 1 {
		t.Errorf("store calls = %d gets, %d sets, want 1 and 1", store.gets, store.sets)
	}
}

func TestSaveUnbounded(t *testing.T) {
	ctx := context.Background()
	m := New[int](kv.NewMemoryStore())

	var got []int
	var err error
	for i := 0; i < 50; i++ {
		got, err = m.Save(ctx, i, "k", Equal(i), 0)
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}
	if len(got) != 50 {
		t.Errorf("len = %d, want 50", len(got))
	}
	if got[0] != 49 || got[49] != 0 {
		t.Errorf("order = first %d last %d, want 49 and 0", got[0], got[49])
	}
}

func TestSaveThenLoad(t *testing.T) {
	ctx := context.Background()
	m := New[string](kv.NewMemoryStore())

	saved, err := m.Save(ctx, "x", "k", Equal("x"), 2)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := m.Load(ctx, "k")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !slices.Equal(saved, loaded) {
		t.Errorf("Load() = %v, want %v", loaded, saved)
	}
}

func TestLoadIsReadOnly(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	m := New[string](store)

	empty, err := m.Load(ctx, "absent")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("Load() of absent key = %#v, want empty non-nil slice", empty)
	}

	_, _ = m.Save(ctx, "a", "k", Equal("a"), 0)
	before, _ := store.Raw("k")
	store.sets = 0

	first, _ := m.Load(ctx, "k")
	second, _ := m.Load(ctx, "k")
	after, _ := store.Raw("k")

	if !slices.Equal(first, second) {
		t.Errorf("Load() not idempotent: %v then %v", first, second)
	}
	if store.sets != 0 {
		t.Errorf("Load() wrote %d times, want 0", store.sets)
	}
	if string(before) != string(after) {
		t.Errorf("stored value changed: %s -> %s", before, after)
	}
}

func TestReturnedListDoesNotAlias(t *testing.T) {
	ctx := context.Background()
	m := New[string](kv.NewMemoryStore())

	got, _ := m.Save(ctx, "a", "k", Equal("a"), 0)
	got[0] = "mutated"

	loaded, _ := m.Load(ctx, "k")
	if loaded[0] != "a" {
		t.Errorf("Load() = %v, caller mutation leaked into store", loaded)
	}
}

func TestRemovePolicies(t *testing.T) {
	ctx := context.Background()
	seed := []string{"a", "b", "c"}

	tests := []struct {
		name      string
		policy    RemovePolicy
		target    string
		want      []string
		wantSaved []string
	}{
		{"persist removes match", RemovePersist, "b", []string{"a", "c"}, []string{"a", "c"}},
		{"persist miss is a no-op", RemovePersist, "z", []string{"a", "b", "c"}, []string{"a", "b", "c"}},
		{"in-memory removes without writing", RemoveInMemory, "b", []string{"a", "c"}, []string{"a", "b", "c"}},
		{"legacy keeps match", RemoveLegacy, "b", []string{"a", "b", "c"}, []string{"a", "b", "c"}},
		{"legacy miss drops last", RemoveLegacy, "z", []string{"a", "b"}, []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := kv.NewMemoryStore()
			if err := kv.Set(ctx, store, "k", seed); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			m := New[string](store, WithRemovePolicy(tt.policy))

			got, err := m.Remove(ctx, "k", Equal(tt.target))
			if err != nil {
				t.Fatalf("Remove() error = %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Remove() = %v, want %v", got, tt.want)
			}

			saved, _ := m.Load(ctx, "k")
			if !slices.Equal(saved, tt.wantSaved) {
				t.Errorf("stored after Remove() = %v, want %v", saved, tt.wantSaved)
			}
		})
	}
}

func TestStoreAfterInMemoryRemove(t *testing.T) {
	ctx := context.Background()
	m := New[string](kv.NewMemoryStore(), WithRemovePolicy(RemoveInMemory))

	_, _ = m.Save(ctx, "a", "k", Equal("a"), 0)
	_, _ = m.Save(ctx, "b", "k", Equal("b"), 0)

	got, _ := m.Remove(ctx, "k", Equal("a"))
	if err := m.Store(ctx, "k", got); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	loaded, _ := m.Load(ctx, "k")
	if !slices.Equal(loaded, []string{"b"}) {
		t.Errorf("Load() = %v, want [b]", loaded)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	m := New[string](kv.NewMemoryStore())

	_, _ = m.Save(ctx, "a", "k", Equal("a"), 0)
	if err := m.Clear(ctx, "k"); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	got, _ := m.Load(ctx, "k")
	if len(got) != 0 {
		t.Errorf("Load() after Clear = %v, want empty", got)
	}
}

func TestStoreErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	store.setErr = errors.New("quota exceeded")
	m := New[string](store)

	if _, err := m.Save(ctx, "a", "k", Equal("a"), 0); !errors.Is(err, store.setErr) {
		t.Errorf("Save() error = %v, want wrapped %v", err, store.setErr)
	}

	store.SetRaw("bad", []byte("{"))
	if _, err := m.Load(ctx, "bad"); !errors.Is(err, kv.ErrCorrupt) {
		t.Errorf("Load() error = %v, want ErrCorrupt", err)
	}
}

func TestParseRemovePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    RemovePolicy
		wantErr bool
	}{
		{"", RemovePersist, false},
		{"persist", RemovePersist, false},
		{"memory", RemoveInMemory, false},
		{"legacy", RemoveLegacy, false},
		{"bogus", RemovePersist, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRemovePolicy(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRemovePolicy() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRemovePolicy() = %v, want %v", got, tt.want)
			}
			if !tt.wantErr && tt.in != "" && got.String() != tt.in {
				t.Errorf("String() = %q, want %q", got.String(), tt.in)
			}
		})
	}
}
