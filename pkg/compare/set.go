// Package compare implements the bounded, rotating comparison selection set:
// the course IDs a user has picked for side-by-side comparison.
//
// Two page variants exist in the product. Course grids use a capacity of 3
// and rotate out the oldest selection when full; the dedicated compare page
// uses a capacity of 4, refuses additions when full and enforces a minimum
// of 2 selections on removal, surfacing both violations through the
// notification sink. The underlying transitions are pure functions over ID
// slices; Tracker owns the mutable slot for a page session.
package compare

import (
	"github.com/coursexpert/coursexpert/pkg/notify"
)

const (
	// DefaultCapacity is the canonical comparison capacity used by course
	// grids.
	DefaultCapacity = 3

	// PageCapacity is the larger capacity of the dedicated compare page.
	PageCapacity = 4

	// MinComparable is the smallest set the compare page will shrink to.
	MinComparable = 2
)

// Toggle is the pure comparison-set transition. Toggling an ID already
// present removes it; toggling a new ID appends it while length is below
// capacity; toggling a new ID at capacity evicts the oldest entry (index 0)
// and appends the new ID (FIFO rotation). The input slice is never mutated.
func Toggle(ids []string, id string, capacity int) []string {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	for i, existing := range ids {
		if existing == id {
			next := make([]string, 0, len(ids)-1)
			next = append(next, ids[:i]...)
			return append(next, ids[i+1:]...)
		}
	}

	if len(ids) < capacity {
		next := make([]string, 0, len(ids)+1)
		next = append(next, ids...)
		return append(next, id)
	}

	// At capacity: drop the oldest, keep order, append the new ID.
	next := make([]string, 0, capacity)
	next = append(next, ids[1:]...)
	return append(next, id)
}

// Contains reports whether the ID is currently selected.
func Contains(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

// Tracker owns a comparison set for one page session. All transitions go
// through pure functions; Tracker just holds the current value and fires
// notifications on bound violations.
type Tracker struct {
	ids      []string
	capacity int
	rotate   bool
	minSize  int
	notifier notify.Notifier
}

// NewTracker returns the course-grid variant: capacity 3, silent FIFO
// rotation when full, no minimum.
func NewTracker(notifier notify.Notifier) *Tracker {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Tracker{capacity: DefaultCapacity, rotate: true, notifier: notifier}
}

// NewPageTracker returns the compare-page variant: capacity 4, additions
// refused when full, removals refused below 2. Both refusals notify.
func NewPageTracker(notifier notify.Notifier) *Tracker {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Tracker{capacity: PageCapacity, minSize: MinComparable, notifier: notifier}
}

// Toggle applies the transition rule for this tracker's variant and returns
// the resulting set.
func (t *Tracker) Toggle(id string) []string {
	if Contains(t.ids, id) {
		if t.minSize > 0 && len(t.ids) <= t.minSize {
			t.notifier.Notify(
				"Minimum courses required",
				"You need at least 2 courses to compare.",
				notify.KindDestructive,
			)
			return t.IDs()
		}
		t.ids = Toggle(t.ids, id, t.capacity)
		return t.IDs()
	}

	if len(t.ids) >= t.capacity && !t.rotate {
		t.notifier.Notify(
			"Maximum limit reached",
			"You can compare up to 4 courses at a time.",
			notify.KindDestructive,
		)
		return t.IDs()
	}

	t.ids = Toggle(t.ids, id, t.capacity)
	return t.IDs()
}

// SetIDs replaces the current selection, truncating to capacity. Used by
// stateless callers that carry the set across requests.
func (t *Tracker) SetIDs(ids []string) {
	if len(ids) > t.capacity {
		ids = ids[len(ids)-t.capacity:]
	}
	t.ids = make([]string, len(ids))
	copy(t.ids, ids)
}

// SetCapacity overrides the variant's capacity. Values below 1 are ignored.
func (t *Tracker) SetCapacity(capacity int) {
	if capacity > 0 {
		t.capacity = capacity
	}
}

// IDs returns a copy of the current selection in insertion order.
func (t *Tracker) IDs() []string {
	ids := make([]string, len(t.ids))
	copy(ids, t.ids)
	return ids
}

// Len returns the current selection size.
func (t *Tracker) Len() int {
	return len(t.ids)
}

// Contains reports whether the ID is currently selected.
func (t *Tracker) Contains(id string) bool {
	return Contains(t.ids, id)
}

// Clear empties the selection.
func (t *Tracker) Clear() {
	t.ids = nil
}
