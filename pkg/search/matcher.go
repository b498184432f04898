package search

import (
	"strings"

	"github.com/coursexpert/coursexpert/pkg/catalog"
)

// Match returns the courses whose title, description, instructor, platform,
// level or any tag contains the query, case-insensitively. A blank or
// whitespace-only query returns the input unchanged (identity, not an empty
// result). Input order is preserved; there is no relevance ranking.
func Match(courses []catalog.Course, query string) []catalog.Course {
	if strings.TrimSpace(query) == "" {
		return courses
	}

	queryLower := strings.ToLower(query)

	var matched []catalog.Course
	for _, course := range courses {
		if matchesQuery(course, queryLower) {
			matched = append(matched, course)
		}
	}
	return matched
}

func matchesQuery(c catalog.Course, queryLower string) bool {
	if strings.Contains(strings.ToLower(c.Title), queryLower) ||
		strings.Contains(strings.ToLower(c.Description), queryLower) ||
		strings.Contains(strings.ToLower(c.Instructor), queryLower) ||
		strings.Contains(strings.ToLower(c.Platform), queryLower) ||
		strings.Contains(strings.ToLower(c.Level), queryLower) {
		return true
	}
	for _, tag := range c.Tags {
		if strings.Contains(strings.ToLower(tag), queryLower) {
			return true
		}
	}
	return false
}
