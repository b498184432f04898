package search

import (
	"strings"

	"github.com/coursexpert/coursexpert/pkg/catalog"
)

// DefaultSuggestionLimit is the autocomplete dropdown size.
const DefaultSuggestionLimit = 8

// Suggest builds a deduplicated, capped list of autocomplete candidates for
// the query. With a blank query it falls back to the first limit course
// titles in collection order.
//
// With a query, the candidate set is seeded with every course title (the
// dropdown always offers titles first), then extended with titles, tags,
// platform and level values containing the lowercased query, plus any
// description word longer than three characters containing it. Candidates
// keep first-insertion order and the result never exceeds limit.
func Suggest(courses []catalog.Course, query string, limit int) []string {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	set := newOrderedSet()

	if strings.TrimSpace(query) == "" {
		for _, course := range courses {
			set.add(course.Title)
		}
		return set.first(limit)
	}

	for _, course := range courses {
		set.add(course.Title)
	}

	queryLower := strings.ToLower(query)

	for _, course := range courses {
		if strings.Contains(strings.ToLower(course.Title), queryLower) {
			set.add(course.Title)
		}
		for _, tag := range course.Tags {
			if strings.Contains(strings.ToLower(tag), queryLower) {
				set.add(tag)
			}
		}
		if strings.Contains(strings.ToLower(course.Platform), queryLower) {
			set.add(course.Platform)
		}
		if strings.Contains(strings.ToLower(course.Level), queryLower) {
			set.add(course.Level)
		}
		for _, word := range strings.Fields(strings.ToLower(course.Description)) {
			if len(word) > 3 && strings.Contains(word, queryLower) {
				set.add(word)
			}
		}
	}

	return set.first(limit)
}

// orderedSet is a string set that preserves first-insertion order.
type orderedSet struct {
	seen  map[string]bool
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]bool)}
}

func (s *orderedSet) add(item string) {
	if item == "" || s.seen[item] {
		return
	}
	s.seen[item] = true
	s.items = append(s.items, item)
}

func (s *orderedSet) first(n int) []string {
	if len(s.items) <= n {
		return s.items
	}
	return s.items[:n]
}
