package filter

import (
	"testing"

	"github.com/coursexpert/coursexpert/pkg/catalog"
)

func TestMatchesEmptySpec(t *testing.T) {
	course := catalog.Course{Platform: "Udemy", Level: "Beginner", Price: "$99"}

	// A spec with no selections matches every course.
	if !Matches(course, Spec{}) {
		t.Error("empty spec must match any course")
	}
}

func TestMatchesCombinesCategoriesWithAnd(t *testing.T) {
	course := catalog.Course{
		Platform: "NPTEL",
		Level:    "Beginner",
		Price:    "Free",
		Duration: "12 hours",
		Rating:   4.5,
		Tags:     []string{"NPTEL", "Self-paced"},
	}

	tests := []struct {
		name string
		spec Spec
		want bool
	}{
		{
			name: "all categories satisfied",
			spec: Spec{Platforms: []string{"NPTEL"}, Levels: []string{"Beginner"}, PriceRanges: []string{"Free"}},
			want: true,
		},
		{
			name: "one failing category fails the course",
			spec: Spec{Platforms: []string{"NPTEL"}, Levels: []string{"Advanced"}},
			want: false,
		},
		{
			name: "within a category selections are OR",
			spec: Spec{Levels: []string{"Advanced", "Beginner"}},
			want: true,
		},
		{
			name: "format matches tags case-insensitively",
			spec: Spec{Formats: []string{"self-paced"}},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(course, tt.spec); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPriceBuckets(t *testing.T) {
	tests := []struct {
		price  string
		bucket string
		want   bool
	}{
		{"Free", "Free", true},
		{"$0", "Free", false}, // only the literal "Free" matches
		{"$19.99", "<$20", true},
		{"$20", "<$20", false},
		{"$20", "$20-$50", true}, // lower bound inclusive
		{"$50", "$20-$50", true},
		{"$50", "$50-$100", false},
		{"$50.01", "$50-$100", true},
		{"$100", "$50-$100", true},
		{"$100", "$100+", false},
		{"$149", "$100+", true},
		{"what", "<$20", true}, // unparseable prices parse to 0
	}

	for _, tt := range tests {
		t.Run(tt.price+" vs "+tt.bucket, func(t *testing.T) {
			course := catalog.Course{Price: tt.price}
			spec := Spec{PriceRanges: []string{tt.bucket}}
			if got := Matches(course, spec); got != tt.want {
				t.Errorf("price %q against bucket %q = %v, want %v", tt.price, tt.bucket, got, tt.want)
			}
		})
	}
}

func TestDurationBuckets(t *testing.T) {
	tests := []struct {
		duration string
		bucket   string
		want     bool
	}{
		{"4 hours", "< 5 hours", true},
		{"5 hours", "< 5 hours", false},
		{"5 hours", "5-15 hours", true},
		{"15 hours", "5-15 hours", true},
		{"16 hours", "15-30 hours", true},
		{"30 hours", "15-30 hours", true},
		{"31 hours", "30+ hours", true},
		{"12 weeks", "5-15 hours", true}, // only the leading number is read
		{"self paced", "< 5 hours", true},
	}

	for _, tt := range tests {
		t.Run(tt.duration+" vs "+tt.bucket, func(t *testing.T) {
			course := catalog.Course{Duration: tt.duration}
			spec := Spec{Durations: []string{tt.bucket}}
			if got := Matches(course, spec); got != tt.want {
				t.Errorf("duration %q against bucket %q = %v, want %v", tt.duration, tt.bucket, got, tt.want)
			}
		})
	}
}

func TestRatingBuckets(t *testing.T) {
	tests := []struct {
		rating float64
		bucket string
		want   bool
	}{
		{4.5, "4+ stars", true},
		{4.0, "4+ stars", true},
		{3.9, "4+ stars", false},
		{3.9, "3+ stars", true},
		{2.0, "2+ stars", true},
	}

	for _, tt := range tests {
		course := catalog.Course{Rating: tt.rating}
		spec := Spec{Ratings: []string{tt.bucket}}
		if got := Matches(course, spec); got != tt.want {
			t.Errorf("rating %v against bucket %q = %v, want %v", tt.rating, tt.bucket, got, tt.want)
		}
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"$49.99", 49.99},
		{" $20 ", 20},
		{"Free", 0},
		{"", 0},
		{"N/A", 0},
	}

	for _, tt := range tests {
		if got := ParsePrice(tt.in); got != tt.want {
			t.Errorf("ParsePrice(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseHours(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"12 hours", 12},
		{"  8h", 8},
		{"12 weeks", 12},
		{"self paced", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := ParseHours(tt.in); got != tt.want {
			t.Errorf("ParseHours(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSpecToggle(t *testing.T) {
	s := Spec{}

	s = s.Toggle("levels", "Beginner")
	if len(s.Levels) != 1 || s.Levels[0] != "Beginner" {
		t.Fatalf("expected Beginner selected, got %v", s.Levels)
	}

	s = s.Toggle("levels", "Advanced")
	if len(s.Levels) != 2 {
		t.Fatalf("expected two levels selected, got %v", s.Levels)
	}

	s = s.Toggle("levels", "Beginner")
	if len(s.Levels) != 1 || s.Levels[0] != "Advanced" {
		t.Fatalf("expected Beginner deselected, got %v", s.Levels)
	}

	if s.ActiveCount() != 1 {
		t.Errorf("expected ActiveCount 1, got %d", s.ActiveCount())
	}
	if s.IsEmpty() {
		t.Error("spec with selections must not be empty")
	}
}
