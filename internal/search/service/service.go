// Package service applies the filter engine to the course and FAQ catalogs.
package service

import (
	"sigma_app/internal/catalog"
	"sigma_app/internal/search"
)

// AllCategories is the FAQ pill that removes the category constraint.
const AllCategories = "전체"

// CategoryCount is one FAQ pill with the number of bundled entries behind it.
type CategoryCount struct {
	Name  string
	Color string
	// Advertised is the count the category itself claims.
	Advertised int
	// Entries is how many bundled entries are filed under it.
	Entries int
}

// Shown is the number printed on the pill: the bundled entry count for
// AllCategories, the advertised count for every other category.
func (c CategoryCount) Shown() int {
	if c.Name == AllCategories {
		return c.Entries
	}
	return c.Advertised
}

// SearchCourses matches text, as typed, against title, professor and code.
func SearchCourses(courses []catalog.Course, text string) search.Result[catalog.Course] {
	return search.Filter(courses, search.Query{Text: text})
}

// SearchFAQ matches text against question and answer, limited to category
// unless it is empty or AllCategories.
func SearchFAQ(entries []catalog.FAQEntry, text, category string) search.Result[catalog.FAQEntry] {
	q := search.Query{Text: text, Category: category}
	if q.Category == AllCategories {
		q.Category = ""
	}
	return search.Filter(entries, q)
}

// CategoryCounts returns the pills in display order, led by AllCategories.
func CategoryCounts(entries []catalog.FAQEntry, categories []catalog.FAQCategory) []CategoryCount {
	perCategory := make(map[string]int, len(categories))
	advertisedTotal := 0
	for _, e := range entries {
		perCategory[e.Category()]++
	}
	for _, c := range categories {
		advertisedTotal += c.Count
	}

	counts := make([]CategoryCount, 0, len(categories)+1)
	counts = append(counts, CategoryCount{
		Name:       AllCategories,
		Advertised: advertisedTotal,
		Entries:    len(entries),
	})
	for _, c := range categories {
		counts = append(counts, CategoryCount{
			Name:       c.Name,
			Color:      c.Color,
			Advertised: c.Count,
			Entries:    perCategory[c.Name],
		})
	}
	return counts
}
