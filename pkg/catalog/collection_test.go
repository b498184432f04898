package catalog

import (
	"testing"
)

func testCourses(prefix string, n int) []Course {
	courses := make([]Course, n)
	for i := range courses {
		courses[i] = Normalize(map[string]any{
			"id":    prefix + "-" + string(rune('a'+i)),
			"title": prefix,
		}, i)
	}
	return courses
}

func TestCollectionReplaceSemantics(t *testing.T) {
	c := NewCollection()

	c.SetProviderCourses("nptel", testCourses("nptel", 3))
	if c.Len() != 3 {
		t.Fatalf("expected 3 courses, got %d", c.Len())
	}

	// Replacing a provider group swaps it wholesale.
	c.SetProviderCourses("nptel", testCourses("nptel", 1))
	if c.Len() != 1 {
		t.Errorf("expected replacement to leave 1 course, got %d", c.Len())
	}

	// An empty contribution clears the group but keeps others intact.
	c.SetProviderCourses("udemy", testCourses("udemy", 2))
	c.SetProviderCourses("nptel", nil)
	if c.Len() != 2 {
		t.Errorf("expected 2 courses after clearing nptel, got %d", c.Len())
	}
}

func TestCollectionSnapshotChangesOnWrite(t *testing.T) {
	c := NewCollection()

	first := c.SetProviderCourses("nptel", testCourses("nptel", 1))
	if first == "" {
		t.Fatal("expected non-empty snapshot ID")
	}
	if c.Snapshot() != first {
		t.Errorf("Snapshot() should report the latest write")
	}

	second := c.SetProviderCourses("udemy", testCourses("udemy", 1))
	if second == first {
		t.Error("expected a new snapshot ID per write")
	}
}

func TestCollectionProviderOrder(t *testing.T) {
	c := NewCollection()
	c.SetProviderCourses("udemy", testCourses("udemy", 1))
	c.SetProviderCourses("coursera", testCourses("coursera", 1))
	c.SetProviderCourses("nptel", testCourses("nptel", 1))

	providers := c.Providers()
	want := []string{"coursera", "nptel", "udemy"}
	for i, name := range want {
		if providers[i] != name {
			t.Fatalf("expected providers in lexical order %v, got %v", want, providers)
		}
	}

	// Courses() follows the same order so results are deterministic.
	courses := c.Courses()
	if courses[0].Title != "coursera" || courses[2].Title != "udemy" {
		t.Errorf("expected courses grouped in provider order, got %v then %v",
			courses[0].Title, courses[2].Title)
	}
}

func TestCollectionToggleSaved(t *testing.T) {
	c := NewCollection()
	c.SetProviderCourses("nptel", testCourses("nptel", 2))

	id := c.Courses()[0].ID

	if saved := c.ToggleSaved(id); !saved {
		t.Error("first toggle should save")
	}
	if !c.Courses()[0].Saved {
		t.Error("saved flag should be applied to course views")
	}
	if got := c.SavedIDs(); len(got) != 1 || got[0] != id {
		t.Errorf("expected saved IDs [%s], got %v", id, got)
	}

	if saved := c.ToggleSaved(id); saved {
		t.Error("second toggle should unsave")
	}
	if len(c.SavedIDs()) != 0 {
		t.Error("expected no saved IDs after unsave")
	}
}
