package library

import (
	"context"
	"strings"

	"golang.org/x/text/cases"

	"github.com/tessro/spin/internal/recent"
)

// Searches is the search-term history. Terms that differ only in case or
// surrounding whitespace are the same term.
type Searches struct {
	list   *recent.Manager[string]
	maxLen int
}

// Add records query as the most recent search.
func (s *Searches) Add(ctx context.Context, query string) ([]string, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, ErrEmptyQuery
	}
	return s.list.Save(ctx, q, SearchKey, sameQuery(q), s.maxLen)
}

// Remove deletes query from the history.
func (s *Searches) Remove(ctx context.Context, query string) ([]string, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, ErrEmptyQuery
	}
	return remove(ctx, s.list, SearchKey, sameQuery(q))
}

// List returns the history, most recent first.
func (s *Searches) List(ctx context.Context) ([]string, error) {
	return s.list.Load(ctx, SearchKey)
}

// Clear forgets every search.
func (s *Searches) Clear(ctx context.Context) error {
	return s.list.Clear(ctx, SearchKey)
}

func sameQuery(q string) recent.Compare[string] {
	want := fold(q)
	return func(candidate string) bool {
		return fold(strings.TrimSpace(candidate)) == want
	}
}

func fold(s string) string {
	return cases.Fold().String(s)
}
