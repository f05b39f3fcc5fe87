// Package search provides the filter engine behind the course and FAQ
// search screens. Filtering is pure: it never mutates its input and always
// returns a fresh slice.
package search

import "strings"

// Record is anything the filter engine can match against.
type Record interface {
	// SearchFields returns the values a free-text query is matched against.
	SearchFields() []string
	// Category returns the record's category, or "" when it has none.
	Category() string
}

// Query is a snapshot of the search box and the selected category pill.
// An empty Category means no category constraint.
type Query struct {
	Text     string
	Category string
}

// Result holds the filtered records in source order.
type Result[T Record] struct {
	Items     []T
	NoResults bool
}

// Filter returns the records that match q, in their original order.
// Matching is a literal, case-sensitive substring test.
func Filter[T Record](records []T, q Query) Result[T] {
	items := make([]T, 0, len(records))
	for _, r := range records {
		if Matches(r, q) {
			items = append(items, r)
		}
	}
	return Result[T]{Items: items, NoResults: len(items) == 0}
}

// Matches reports whether a single record satisfies q.
func Matches(r Record, q Query) bool {
	if q.Category != "" && r.Category() != q.Category {
		return false
	}
	if q.Text == "" {
		return true
	}
	for _, field := range r.SearchFields() {
		if strings.Contains(field, q.Text) {
			return true
		}
	}
	return false
}
