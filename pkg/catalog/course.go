package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Course is the normalized representation of one course offering.
//
// Courses are the fundamental data structure in CourseXpert. Provider modules
// fetch heterogeneous raw JSON records and pass each one through Normalize,
// which guarantees that every field consumed by filtering and search has a
// defined value. After normalization a Course is immutable except for the
// Saved flag, which mirrors the user's bookmark action.
type Course struct {
	// ID is a stable unique identifier within the owning collection.
	// Taken from the source record, or synthesized from the positional
	// index when absent.
	ID string `json:"id"`

	Title       string `json:"title"`
	Instructor  string `json:"instructor"`
	Platform    string `json:"platform"`
	Level       string `json:"level"`
	Description string `json:"description"`

	// Price is a free-form display string, e.g. "Free" or "$49.99".
	Price string `json:"price"`

	// Duration is a free-form display string containing a leading numeric
	// hour count, e.g. "12 hours".
	Duration string `json:"duration"`

	StartDate string `json:"start_date"`
	Link      string `json:"link"`

	Rating float64 `json:"rating"`

	// Students and ReviewCount are display strings; the source data mixes
	// numbers ("1200") and labels ("40k").
	Students    string `json:"students"`
	ReviewCount string `json:"review_count"`

	// Tags is an ordered sequence used by search and the format filter.
	// Defaults to a single-element sequence containing the platform name.
	Tags []string `json:"tags"`

	// Saved reflects the user's bookmark toggle. It is the only mutable
	// field after normalization.
	Saved bool `json:"saved,omitempty"`
}

// Defaults applied by Normalize for missing or malformed fields.
const (
	defaultText   = "N/A"
	defaultPrice  = "Free"
	defaultRating = 4.5
)

// Normalize converts an arbitrary raw record from a provider JSON payload
// into a Course. The positional index is used to synthesize an ID when the
// record has none.
//
// Normalize is total: it never fails, any missing or malformed field falls
// back to a documented default, and the result satisfies every Course
// invariant. It has no side effects.
func Normalize(raw map[string]any, index int) Course {
	c := Course{
		ID:          stringField(raw, "", "id"),
		Title:       stringField(raw, defaultText, "title"),
		Instructor:  stringField(raw, defaultText, "instructor"),
		Platform:    stringField(raw, defaultText, "platform", "provider"),
		Level:       stringField(raw, defaultText, "level"),
		Description: stringField(raw, defaultText, "description"),
		Price:       stringField(raw, defaultPrice, "price"),
		Duration:    stringField(raw, defaultText, "duration"),
		StartDate:   stringField(raw, defaultText, "startDate", "start_date"),
		Link:        stringField(raw, defaultText, "link", "url"),
		Rating:      floatField(raw, defaultRating, "rating"),
		Students:    stringField(raw, defaultText, "students"),
		ReviewCount: stringField(raw, defaultText, "reviewCount", "review_count"),
	}

	if c.ID == "" {
		c.ID = fmt.Sprintf("course-%d", index)
	}

	c.Tags = tagsField(raw, "tags")
	if len(c.Tags) == 0 {
		c.Tags = []string{c.Platform}
	}

	return c
}

// stringField extracts the first present key as a string, converting numeric
// values to their display form. Returns fallback when no key yields text.
func stringField(raw map[string]any, fallback string, keys ...string) string {
	for _, key := range keys {
		value, ok := raw[key]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				return v
			}
		case float64:
			// encoding/json decodes all JSON numbers as float64
			if v == float64(int64(v)) {
				return strconv.FormatInt(int64(v), 10)
			}
			return strconv.FormatFloat(v, 'f', -1, 64)
		case int:
			return strconv.Itoa(v)
		}
	}
	return fallback
}

// floatField extracts the first present key as a float. Numeric strings are
// parsed; anything else falls back.
func floatField(raw map[string]any, fallback float64, keys ...string) float64 {
	for _, key := range keys {
		value, ok := raw[key]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case float64:
			return v
		case int:
			return float64(v)
		case string:
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return parsed
			}
		}
	}
	return fallback
}

func tagsField(raw map[string]any, key string) []string {
	value, ok := raw[key]
	if !ok || value == nil {
		return nil
	}
	var tags []string
	switch v := value.(type) {
	case []string:
		tags = append(tags, v...)
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				tags = append(tags, s)
			}
		}
	case string:
		if v != "" {
			tags = append(tags, v)
		}
	}
	return tags
}

// Summary returns a concise one-line summary of the course for compact
// display in CLI listings and logs.
func (c Course) Summary() string {
	return fmt.Sprintf("%s (%s, %s, %s)", c.Title, c.Platform, c.Level, c.Price)
}
