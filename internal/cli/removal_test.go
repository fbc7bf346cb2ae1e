package cli

import (
	"context"
	"testing"

	"github.com/tessro/spin/internal/kv"
	"github.com/tessro/spin/internal/library"
	"github.com/tessro/spin/internal/recent"
)

func TestRemoveStoredReportsPersistedChange(t *testing.T) {
	identity := func(s string) string { return s }

	tests := []struct {
		name     string
		policy   recent.RemovePolicy
		query    string
		wantGone string
		wantOK   bool
	}{
		{"persist match", recent.RemovePersist, "b", "b", true},
		{"persist miss", recent.RemovePersist, "zzz", "", false},
		{"memory match", recent.RemoveInMemory, "B", "b", true},
		{"legacy match", recent.RemoveLegacy, "b", "", false},
		{"legacy miss", recent.RemoveLegacy, "zzz", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			lib := library.New(kv.NewMemoryStore(), library.DefaultLimits(), library.WithRemovePolicy(tt.policy))
			for _, q := range []string{"a", "b", "c"} {
				if _, err := lib.Searches.Add(ctx, q); err != nil {
					t.Fatalf("Add(%q) error = %v", q, err)
				}
			}

			r, err := removeStored(ctx, lib.Searches.List, func(ctx context.Context) ([]string, error) {
				return lib.Searches.Remove(ctx, tt.query)
			})
			if err != nil {
				t.Fatalf("removeStored() error = %v", err)
			}

			gone, ok := r.gone(identity)
			if ok != tt.wantOK || gone != tt.wantGone {
				t.Errorf("gone() = (%q, %v), want (%q, %v)", gone, ok, tt.wantGone, tt.wantOK)
			}
		})
	}
}

func TestRemovalGone(t *testing.T) {
	identity := func(s string) string { return s }

	tests := []struct {
		name   string
		before []string
		after  []string
		want   string
		wantOK bool
	}{
		{"unchanged", []string{"a", "b"}, []string{"a", "b"}, "", false},
		{"middle", []string{"a", "b", "c"}, []string{"a", "c"}, "b", true},
		{"last", []string{"a", "b", "c"}, []string{"a", "b"}, "c", true},
		{"empty", nil, nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := removal[string]{before: tt.before, after: tt.after}.gone(identity)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("gone() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
