// Package filter implements the structured filter predicate engine for the
// course catalog. A Spec holds the user's selected option labels per filter
// category; Matches evaluates a course against it.
//
// Semantics: categories are AND-ed together, selected options within one
// category are OR-ed, and a category with no selected options is vacuously
// satisfied. An empty Spec therefore matches every course.
package filter

// Canonical option labels per category. These match the labels rendered by
// the filter panel and accepted by the API's query parameters.
var (
	PlatformOptions = []string{"Coursera", "Udemy", "NPTEL", "edX", "All Platforms"}
	LevelOptions    = []string{"Beginner", "Intermediate", "Advanced", "All Levels"}
	PriceOptions    = []string{"Free", "<$20", "$20-$50", "$50-$100", "$100+"}
	DurationOptions = []string{"< 5 hours", "5-15 hours", "15-30 hours", "30+ hours"}
	RatingOptions   = []string{"4+ stars", "3+ stars", "2+ stars"}
	FormatOptions   = []string{"Hands-on Labs", "Quizzes & Assignments", "Certificate Available"}
)

// Spec is the user-selected constraint set across all filter categories.
// Selection order within a category is irrelevant; an empty category means
// "no constraint", which is different from "constrain to nothing".
type Spec struct {
	Platforms   []string `json:"platforms,omitempty"`
	Levels      []string `json:"levels,omitempty"`
	PriceRanges []string `json:"price_ranges,omitempty"`
	Durations   []string `json:"durations,omitempty"`
	Ratings     []string `json:"ratings,omitempty"`
	Formats     []string `json:"formats,omitempty"`
}

// IsEmpty reports whether no category has a selection.
func (s Spec) IsEmpty() bool {
	return s.ActiveCount() == 0
}

// ActiveCount returns the total number of selected options across all
// categories, mirroring the badge shown on the filter panel.
func (s Spec) ActiveCount() int {
	return len(s.Platforms) + len(s.Levels) + len(s.PriceRanges) +
		len(s.Durations) + len(s.Ratings) + len(s.Formats)
}

// Toggle adds the value to the category when absent and removes it when
// present, returning the updated Spec. Unknown categories are ignored.
func (s Spec) Toggle(category, value string) Spec {
	switch category {
	case "platforms":
		s.Platforms = toggleValue(s.Platforms, value)
	case "levels":
		s.Levels = toggleValue(s.Levels, value)
	case "price_ranges":
		s.PriceRanges = toggleValue(s.PriceRanges, value)
	case "durations":
		s.Durations = toggleValue(s.Durations, value)
	case "ratings":
		s.Ratings = toggleValue(s.Ratings, value)
	case "formats":
		s.Formats = toggleValue(s.Formats, value)
	}
	return s
}

func toggleValue(selected []string, value string) []string {
	for i, v := range selected {
		if v == value {
			return append(append([]string{}, selected[:i]...), selected[i+1:]...)
		}
	}
	return append(append([]string{}, selected...), value)
}
