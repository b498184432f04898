package catalog

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Collection holds the in-memory course catalog, grouped by provider
// instance name. Provider fetches replace their group wholesale; there is no
// incremental mutation. Every replacement produces a new snapshot ID so
// consumers can detect that the catalog changed underneath them.
//
// Saved (bookmark) flags live alongside the courses and survive catalog
// replacement: a refreshed course keeps its bookmark as long as its ID is
// stable.
type Collection struct {
	mu       sync.RWMutex
	snapshot string
	courses  map[string][]Course
	saved    map[string]bool
}

func NewCollection() *Collection {
	return &Collection{
		snapshot: uuid.New().String(),
		courses:  make(map[string][]Course),
		saved:    make(map[string]bool),
	}
}

// SetProviderCourses replaces the course group for the given provider and
// returns the new snapshot ID. Passing an empty slice is valid and models a
// failed or empty fetch: the provider simply contributes no courses.
func (c *Collection) SetProviderCourses(provider string, courses []Course) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	group := make([]Course, len(courses))
	copy(group, courses)
	c.courses[provider] = group

	c.snapshot = uuid.New().String()
	return c.snapshot
}

// Courses returns every course in the collection, grouped by provider in
// lexical provider order with each group's fetch order preserved. Saved
// flags are applied to the returned copies.
func (c *Collection) Courses() []Course {
	c.mu.RLock()
	defer c.mu.RUnlock()

	providers := make([]string, 0, len(c.courses))
	for name := range c.courses {
		providers = append(providers, name)
	}
	sort.Strings(providers)

	var all []Course
	for _, name := range providers {
		for _, course := range c.courses[name] {
			course.Saved = c.saved[course.ID]
			all = append(all, course)
		}
	}
	return all
}

// ProviderCourses returns the course group for one provider instance, with
// saved flags applied. Unknown providers yield an empty slice.
func (c *Collection) ProviderCourses(provider string) []Course {
	c.mu.RLock()
	defer c.mu.RUnlock()

	group := make([]Course, len(c.courses[provider]))
	copy(group, c.courses[provider])
	for i := range group {
		group[i].Saved = c.saved[group[i].ID]
	}
	return group
}

// Providers returns the provider instance names currently holding courses.
func (c *Collection) Providers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.courses))
	for name := range c.courses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the total number of courses across all providers.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, group := range c.courses {
		total += len(group)
	}
	return total
}

// Snapshot returns the current snapshot ID. The ID changes whenever any
// provider group is replaced.
func (c *Collection) Snapshot() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// ToggleSaved flips the bookmark flag for a course ID and reports the new
// state. Toggling an ID not present in the catalog is allowed; the flag
// applies as soon as a course with that ID appears.
func (c *Collection) ToggleSaved(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.saved[id] {
		delete(c.saved, id)
		return false
	}
	c.saved[id] = true
	return true
}

// SavedIDs returns the bookmarked course IDs in lexical order.
func (c *Collection) SavedIDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, 0, len(c.saved))
	for id := range c.saved {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
