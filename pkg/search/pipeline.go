package search

import (
	"net/url"
	"strconv"

	"github.com/coursexpert/coursexpert/pkg/catalog"
	"github.com/coursexpert/coursexpert/pkg/filter"
)

// Apply is the combined query pipeline: it evaluates the filter spec against
// every course, then applies the free-text matcher to the survivors. A
// course must pass both to appear in the result. This composed function is
// re-evaluated on every query or filter change and its output is the
// canonical visible course list.
//
// Apply is NOT used for suggestion generation: suggestions operate over the
// full collection independent of the active filter spec (query-only), while
// results are query AND filter.
func Apply(courses []catalog.Course, query string, spec filter.Spec) []catalog.Course {
	filtered := courses
	if !spec.IsEmpty() {
		filtered = nil
		for _, course := range courses {
			if filter.Matches(course, spec) {
				filtered = append(filtered, course)
			}
		}
	}
	return Match(filtered, query)
}

// Params represents all parameters for a catalog query. It provides a
// unified structure that works across both the API and CLI surfaces.
type Params struct {
	// Query is the free-text search term. Can be empty (no text
	// constraint).
	Query string

	// Providers limits the query to specific provider instances. If empty,
	// the whole catalog is queried.
	Providers []string

	// Filters is the structured filter spec applied before text matching.
	Filters filter.Spec

	// Page is the page number for pagination (1-based). Defaults to 1.
	Page int

	// Limit is the maximum number of results per page. Defaults to 30.
	Limit int
}

// Results contains the outcome of a catalog query along with pagination
// metadata.
type Results struct {
	Courses    []catalog.Course
	TotalCount int
	Page       int
	Limit      int
	TotalPages int
	HasMore    bool
	Query      string
}

// ParseParams parses HTTP query parameters into a Params struct. It handles
// type conversion and provides defaults for missing or invalid values;
// invalid numbers silently fall back rather than erroring.
//
// Supported parameters:
//   - q: free-text search query
//   - provider: provider instance filter (repeatable)
//   - platform, level, price, duration, rating, format: filter category
//     selections (each repeatable)
//   - page: page number (positive integer, defaults to 1)
//   - limit: results per page (positive integer, defaults to 30)
func ParseParams(queryParams url.Values) Params {
	params := Params{
		Page:  1,
		Limit: 30,
	}

	if q := queryParams["q"]; len(q) > 0 {
		params.Query = q[0]
	}

	if providers := queryParams["provider"]; len(providers) > 0 {
		params.Providers = providers
	}

	params.Filters = filter.Spec{
		Platforms:   queryParams["platform"],
		Levels:      queryParams["level"],
		PriceRanges: queryParams["price"],
		Durations:   queryParams["duration"],
		Ratings:     queryParams["rating"],
		Formats:     queryParams["format"],
	}

	if limitStr := queryParams["limit"]; len(limitStr) > 0 && limitStr[0] != "" {
		if parsed, err := strconv.Atoi(limitStr[0]); err == nil && parsed > 0 {
			params.Limit = parsed
		}
	}

	if pageStr := queryParams["page"]; len(pageStr) > 0 && pageStr[0] != "" {
		if parsed, err := strconv.Atoi(pageStr[0]); err == nil && parsed > 0 {
			params.Page = parsed
		}
	}

	return params
}

// Service provides catalog queries over an in-memory collection. It
// encapsulates the collection and exposes a clean interface for executing
// the combined pipeline with pagination.
type Service struct {
	collection *catalog.Collection
}

// NewService creates a search service over the provided collection.
func NewService(collection *catalog.Collection) *Service {
	return &Service{collection: collection}
}

// Search executes the combined query pipeline with the provided parameters:
// provider scoping, filter spec, free-text match, then pagination. A page
// past the end yields an empty (not nil-metadata) result.
func (s *Service) Search(params Params) *Results {
	courses := s.scopedCourses(params.Providers)
	visible := Apply(courses, params.Query, params.Filters)

	total := len(visible)
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = 30
	}

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	totalPages := (total + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}

	return &Results{
		Courses:    visible[start:end],
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasMore:    end < total,
		Query:      params.Query,
	}
}

// Suggest generates autocomplete candidates for the query. Provider scoping
// is honored so platform pages suggest within their own catalog, but the
// active filter spec never constrains suggestions.
func (s *Service) Suggest(providers []string, query string, limit int) []string {
	return Suggest(s.scopedCourses(providers), query, limit)
}

func (s *Service) scopedCourses(providers []string) []catalog.Course {
	if len(providers) == 0 {
		return s.collection.Courses()
	}
	var scoped []catalog.Course
	for _, name := range providers {
		scoped = append(scoped, s.collection.ProviderCourses(name)...)
	}
	return scoped
}
