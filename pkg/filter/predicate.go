package filter

import (
	"strconv"
	"strings"

	"github.com/coursexpert/coursexpert/pkg/catalog"
)

// Matches evaluates a course against a Spec, short-circuiting on the first
// failing category. Platform and level are exact label matches; price,
// duration and rating are bucket matches (any selected bucket satisfies its
// category); formats match against the course tags.
func Matches(c catalog.Course, s Spec) bool {
	if len(s.Platforms) > 0 && !containsLabel(s.Platforms, c.Platform) {
		return false
	}
	if len(s.Levels) > 0 && !containsLabel(s.Levels, c.Level) {
		return false
	}
	if len(s.PriceRanges) > 0 && !anyPriceBucket(c.Price, s.PriceRanges) {
		return false
	}
	if len(s.Durations) > 0 && !anyDurationBucket(c.Duration, s.Durations) {
		return false
	}
	if len(s.Ratings) > 0 && !anyRatingBucket(c.Rating, s.Ratings) {
		return false
	}
	if len(s.Formats) > 0 && !anyFormatTag(c.Tags, s.Formats) {
		return false
	}
	return true
}

func containsLabel(selected []string, value string) bool {
	for _, label := range selected {
		if label == value {
			return true
		}
	}
	return false
}

// ParsePrice parses a free-form price string by stripping a leading "$" and
// parsing the remainder as a float. Unparseable prices (including "Free")
// parse to 0, which only matches the lowest bucket. This is the defined
// fallback, not a failure.
func ParsePrice(price string) float64 {
	trimmed := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(price), "$"))
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0
	}
	return value
}

// ParseHours extracts the leading integer hour count from a free-form
// duration string, e.g. "12 hours" -> 12. Unparseable durations parse to 0.
func ParseHours(duration string) int {
	trimmed := strings.TrimSpace(duration)
	end := 0
	for end < len(trimmed) && trimmed[end] >= '0' && trimmed[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	hours, err := strconv.Atoi(trimmed[:end])
	if err != nil {
		return 0
	}
	return hours
}

// anyPriceBucket reports whether the price matches any selected bucket.
// The "Free" bucket matches only the literal "Free" price; numeric buckets
// are "<$20" (p < 20), "$20-$50" (20 <= p <= 50), "$50-$100" (50 < p <= 100)
// and "$100+" (p > 100). The lower bound of "$20-$50" is inclusive.
func anyPriceBucket(price string, buckets []string) bool {
	value := ParsePrice(price)
	for _, bucket := range buckets {
		switch bucket {
		case "Free":
			if price == "Free" {
				return true
			}
		case "<$20":
			if value < 20 {
				return true
			}
		case "$20-$50":
			if value >= 20 && value <= 50 {
				return true
			}
		case "$50-$100":
			if value > 50 && value <= 100 {
				return true
			}
		case "$100+":
			if value > 100 {
				return true
			}
		}
	}
	return false
}

// anyDurationBucket reports whether the duration's hour count matches any
// selected bucket, with the same any-selected semantics as price.
func anyDurationBucket(duration string, buckets []string) bool {
	hours := ParseHours(duration)
	for _, bucket := range buckets {
		switch bucket {
		case "< 5 hours":
			if hours < 5 {
				return true
			}
		case "5-15 hours":
			if hours >= 5 && hours <= 15 {
				return true
			}
		case "15-30 hours":
			if hours > 15 && hours <= 30 {
				return true
			}
		case "30+ hours":
			if hours > 30 {
				return true
			}
		}
	}
	return false
}

// anyRatingBucket reports whether the rating meets any selected threshold.
// Buckets are threshold-inclusive lower bounds ("4+ stars" means >= 4).
func anyRatingBucket(rating float64, buckets []string) bool {
	for _, bucket := range buckets {
		digits := strings.TrimSpace(strings.TrimSuffix(bucket, "+ stars"))
		threshold, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			continue
		}
		if rating >= threshold {
			return true
		}
	}
	return false
}

// anyFormatTag reports whether any selected format label matches a course
// tag, case-insensitively. The source data never carried a dedicated format
// field, so tags are the observable surface for it.
func anyFormatTag(tags []string, formats []string) bool {
	for _, format := range formats {
		for _, tag := range tags {
			if strings.EqualFold(tag, format) {
				return true
			}
		}
	}
	return false
}
