package compare

import (
	"reflect"
	"testing"

	"github.com/coursexpert/coursexpert/pkg/notify"
)

func TestToggleAdd(t *testing.T) {
	got := Toggle(nil, "a", DefaultCapacity)
	if !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("expected [a], got %v", got)
	}

	got = Toggle([]string{"a"}, "b", DefaultCapacity)
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("expected [a b], got %v", got)
	}
}

func TestToggleRemove(t *testing.T) {
	got := Toggle([]string{"a", "b", "c"}, "b", DefaultCapacity)
	if !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("expected [a c], got %v", got)
	}
}

func TestToggleRotatesAtCapacity(t *testing.T) {
	// The oldest selection is evicted, order is preserved.
	got := Toggle([]string{"a", "b", "c"}, "d", DefaultCapacity)
	if !reflect.DeepEqual(got, []string{"b", "c", "d"}) {
		t.Errorf("expected [b c d], got %v", got)
	}
}

func TestToggleNeverMutatesInput(t *testing.T) {
	input := []string{"a", "b", "c"}
	_ = Toggle(input, "d", DefaultCapacity)
	_ = Toggle(input, "b", DefaultCapacity)

	if !reflect.DeepEqual(input, []string{"a", "b", "c"}) {
		t.Errorf("input slice was mutated: %v", input)
	}
}

func TestTrackerGridVariantRotates(t *testing.T) {
	tracker := NewTracker(nil)

	for _, id := range []string{"a", "b", "c", "d"} {
		tracker.Toggle(id)
	}

	if got := tracker.IDs(); !reflect.DeepEqual(got, []string{"b", "c", "d"}) {
		t.Errorf("expected rotation to [b c d], got %v", got)
	}
	if tracker.Contains("a") {
		t.Error("evicted ID must not be reported as selected")
	}
}

func TestTrackerPageVariantRefusesWhenFull(t *testing.T) {
	recorder := &notify.Recorder{}
	tracker := NewPageTracker(recorder)

	for _, id := range []string{"a", "b", "c", "d"} {
		tracker.Toggle(id)
	}

	got := tracker.Toggle("e")
	if !reflect.DeepEqual(got, []string{"a", "b", "c", "d"}) {
		t.Fatalf("expected refusal to keep [a b c d], got %v", got)
	}

	notice := recorder.Last()
	if notice == nil {
		t.Fatal("expected a notification on refusal")
	}
	if notice.Title != "Maximum limit reached" {
		t.Errorf("unexpected notice title %q", notice.Title)
	}
	if notice.Description != "You can compare up to 4 courses at a time." {
		t.Errorf("unexpected notice description %q", notice.Description)
	}
	if notice.Kind != notify.KindDestructive {
		t.Errorf("expected destructive notice, got %q", notice.Kind)
	}
}

func TestTrackerPageVariantEnforcesMinimum(t *testing.T) {
	recorder := &notify.Recorder{}
	tracker := NewPageTracker(recorder)

	tracker.Toggle("a")
	tracker.Toggle("b")

	got := tracker.Toggle("a")
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("expected minimum to keep [a b], got %v", got)
	}

	notice := recorder.Last()
	if notice == nil || notice.Title != "Minimum courses required" {
		t.Fatalf("expected minimum notice, got %+v", notice)
	}
	if notice.Description != "You need at least 2 courses to compare." {
		t.Errorf("unexpected notice description %q", notice.Description)
	}
}

func TestTrackerSetIDsTruncatesToCapacity(t *testing.T) {
	tracker := NewTracker(nil)
	tracker.SetIDs([]string{"a", "b", "c", "d", "e"})

	if got := tracker.IDs(); !reflect.DeepEqual(got, []string{"c", "d", "e"}) {
		t.Errorf("expected newest three kept, got %v", got)
	}
}

func TestTrackerClear(t *testing.T) {
	tracker := NewTracker(nil)
	tracker.Toggle("a")
	tracker.Clear()

	if tracker.Len() != 0 {
		t.Errorf("expected empty tracker, got %d", tracker.Len())
	}
}
