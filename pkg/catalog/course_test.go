package catalog

import (
	"reflect"
	"testing"
)

func TestNormalizeDefaults(t *testing.T) {
	course := Normalize(map[string]any{}, 7)

	if course.ID != "course-7" {
		t.Errorf("expected synthesized ID course-7, got %s", course.ID)
	}
	if course.Title != "N/A" {
		t.Errorf("expected default title N/A, got %s", course.Title)
	}
	if course.Price != "Free" {
		t.Errorf("expected default price Free, got %s", course.Price)
	}
	if course.Rating != 4.5 {
		t.Errorf("expected default rating 4.5, got %v", course.Rating)
	}
	if !reflect.DeepEqual(course.Tags, []string{"N/A"}) {
		t.Errorf("expected tags to default to platform, got %v", course.Tags)
	}
}

func TestNormalizeFullRecord(t *testing.T) {
	raw := map[string]any{
		"id":          "ml-101",
		"title":       "Intro to Machine Learning",
		"instructor":  "Prof. Anand",
		"platform":    "NPTEL",
		"level":       "Beginner",
		"description": "Fundamentals of ML",
		"price":       "Free",
		"duration":    "12 weeks",
		"rating":      4.8,
		"students":    "40k",
		"tags":        []any{"ML", "AI"},
		"link":        "https://nptel.ac.in/courses/ml-101",
	}

	course := Normalize(raw, 0)

	if course.ID != "ml-101" {
		t.Errorf("expected ID ml-101, got %s", course.ID)
	}
	if course.Platform != "NPTEL" {
		t.Errorf("expected platform NPTEL, got %s", course.Platform)
	}
	if course.Rating != 4.8 {
		t.Errorf("expected rating 4.8, got %v", course.Rating)
	}
	if !reflect.DeepEqual(course.Tags, []string{"ML", "AI"}) {
		t.Errorf("unexpected tags: %v", course.Tags)
	}
}

func TestNormalizeAlternateKeys(t *testing.T) {
	raw := map[string]any{
		"provider":     "Coursera",
		"url":          "https://example.com/c1",
		"start_date":   "2026-09-01",
		"review_count": "1.2k",
	}

	course := Normalize(raw, 0)

	if course.Platform != "Coursera" {
		t.Errorf("expected provider key to map to platform, got %s", course.Platform)
	}
	if course.Link != "https://example.com/c1" {
		t.Errorf("expected url key to map to link, got %s", course.Link)
	}
	if course.StartDate != "2026-09-01" {
		t.Errorf("expected start_date key to map, got %s", course.StartDate)
	}
	if course.ReviewCount != "1.2k" {
		t.Errorf("expected review_count key to map, got %s", course.ReviewCount)
	}
}

func TestNormalizeNumericFields(t *testing.T) {
	tests := []struct {
		name     string
		raw      map[string]any
		expected Course
	}{
		{
			name: "numeric price becomes display string",
			raw:  map[string]any{"price": 49.0},
			expected: Course{
				Price: "49",
			},
		},
		{
			name: "integer rating accepted",
			raw:  map[string]any{"rating": 4},
			expected: Course{
				Rating: 4,
			},
		},
		{
			name: "string rating ignored",
			raw:  map[string]any{"rating": "great"},
			expected: Course{
				Rating: 4.5,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			course := Normalize(tt.raw, 0)
			if tt.expected.Price != "" && course.Price != tt.expected.Price {
				t.Errorf("expected price %s, got %s", tt.expected.Price, course.Price)
			}
			if tt.expected.Rating != 0 && course.Rating != tt.expected.Rating {
				t.Errorf("expected rating %v, got %v", tt.expected.Rating, course.Rating)
			}
		})
	}
}

func TestNormalizeNeverPanics(t *testing.T) {
	hostile := []map[string]any{
		nil,
		{"tags": "not-a-list"},
		{"tags": []any{1, 2, 3}},
		{"title": nil, "rating": nil},
		{"price": map[string]any{"amount": 10}},
	}

	for i, raw := range hostile {
		course := Normalize(raw, i)
		if course.ID == "" {
			t.Errorf("record %d: ID must never be empty", i)
		}
		if len(course.Tags) == 0 {
			t.Errorf("record %d: tags must never be empty", i)
		}
	}
}

func TestCourseSummary(t *testing.T) {
	course := Course{Title: "Go Basics", Platform: "Udemy", Level: "Beginner", Price: "$19"}
	want := "Go Basics (Udemy, Beginner, $19)"
	if got := course.Summary(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
