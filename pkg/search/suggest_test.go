package search

import (
	"fmt"
	"testing"

	"github.com/coursexpert/coursexpert/pkg/catalog"
)

func TestSuggestBlankQueryFallsBackToTitles(t *testing.T) {
	courses := sampleCourses()

	got := Suggest(courses, "", 0)
	if len(got) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(got))
	}
	if got[0] != "Intro to Machine Learning" {
		t.Errorf("expected collection order, got %v", got)
	}
}

func TestSuggestSeedsAllTitles(t *testing.T) {
	courses := sampleCourses()

	// Titles come first even when they don't contain the query.
	got := Suggest(courses, "go", 10)
	if len(got) < 3 {
		t.Fatalf("expected at least the three titles, got %v", got)
	}
	for i, want := range []string{"Intro to Machine Learning", "Advanced Go Programming", "Data Structures"} {
		if got[i] != want {
			t.Fatalf("expected title seed %q at %d, got %v", want, i, got)
		}
	}

	// The matching tag follows the seeded titles.
	found := false
	for _, s := range got[3:] {
		if s == "Go" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected tag Go among suggestions, got %v", got)
	}
}

func TestSuggestCapAndDedup(t *testing.T) {
	var courses []catalog.Course
	for i := 0; i < 20; i++ {
		courses = append(courses, catalog.Course{
			Title: fmt.Sprintf("Python Course %d", i),
			Tags:  []string{"Python"}, // identical tag across all courses
		})
	}

	got := Suggest(courses, "py", DefaultSuggestionLimit)
	if len(got) != DefaultSuggestionLimit {
		t.Fatalf("expected cap of %d, got %d", DefaultSuggestionLimit, len(got))
	}

	seen := make(map[string]bool)
	for _, s := range got {
		if seen[s] {
			t.Fatalf("duplicate suggestion %q", s)
		}
		seen[s] = true
	}
}

func TestSuggestEmptyCatalog(t *testing.T) {
	if got := Suggest(nil, "anything", 5); len(got) != 0 {
		t.Errorf("expected no suggestions from empty catalog, got %v", got)
	}
}
