package recent

import (
	"slices"
	"testing"
)

func TestInsert(t *testing.T) {
	tests := []struct {
		name   string
		items  []string
		item   string
		maxLen int
		want   []string
	}{
		{
			name:  "empty list",
			items: nil,
			item:  "a",
			want:  []string{"a"},
		},
		{
			name:   "prepends new item",
			items:  []string{"b", "c"},
			item:   "a",
			maxLen: 5,
			want:   []string{"a", "b", "c"},
		},
		{
			name:   "duplicate is rejected, not moved",
			items:  []string{"a", "b", "c"},
			item:   "b",
			maxLen: 5,
			want:   []string{"a", "b", "c"},
		},
		{
			name:   "evicts last when full",
			items:  []string{"c", "b", "a"},
			item:   "d",
			maxLen: 3,
			want:   []string{"d", "c", "b"},
		},
		{
			name:   "zero maxLen is unbounded",
			items:  []string{"c", "b", "a"},
			item:   "d",
			maxLen: 0,
			want:   []string{"d", "c", "b", "a"},
		},
		{
			name:   "negative maxLen is unbounded",
			items:  []string{"a"},
			item:   "b",
			maxLen: -1,
			want:   []string{"b", "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Insert(tt.items, tt.item, Equal(tt.item), tt.maxLen)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Insert() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInsertDoesNotModifyInput(t *testing.T) {
	items := []string{"c", "b", "a"}
	_ = Insert(items, "d", Equal("d"), 3)

	if !slices.Equal(items, []string{"c", "b", "a"}) {
		t.Errorf("input modified: %v", items)
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name   string
		items  []string
		target string
		want   []string
	}{
		{"removes match", []string{"a", "b", "c"}, "b", []string{"a", "c"}},
		{"removes first match only", []string{"a", "b", "b"}, "b", []string{"a", "b"}},
		{"no match is a no-op", []string{"a", "b"}, "z", []string{"a", "b"}},
		{"empty list", nil, "a", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Delete(tt.items, Equal(tt.target))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Delete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeleteLegacy(t *testing.T) {
	tests := []struct {
		name   string
		items  []string
		target string
		want   []string
	}{
		{"match leaves list alone", []string{"a", "b", "c"}, "b", []string{"a", "b", "c"}},
		{"miss drops last element", []string{"a", "b", "c"}, "z", []string{"a", "b"}},
		{"empty list", []string{}, "z", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := deleteLegacy(tt.items, Equal(tt.target))
			if !slices.Equal(got, tt.want) {
				t.Errorf("deleteLegacy() = %v, want %v", got, tt.want)
			}
		})
	}
}
