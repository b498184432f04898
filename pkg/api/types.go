package api

import (
	"time"

	"github.com/coursexpert/coursexpert/pkg/catalog"
	"github.com/coursexpert/coursexpert/pkg/notify"
)

type ProviderInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	CourseCount int    `json:"course_count"`
}

type ListProvidersResponse struct {
	Providers []ProviderInfo `json:"providers"`
	Count     int            `json:"count"`
}

type ListCoursesResponse struct {
	Provider   string           `json:"provider,omitempty"`
	Courses    []catalog.Course `json:"courses"`
	Count      int              `json:"count"`
	TotalCount int              `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	HasMore    bool             `json:"has_more"`
	Query      string           `json:"query,omitempty"`
}

type SuggestResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
	Count       int      `json:"count"`
}

type CompareToggleRequest struct {
	IDs      []string `json:"ids"`
	ID       string   `json:"id"`
	Capacity int      `json:"capacity,omitempty"`
	// Page selects the compare-page variant: capacity 4, refuse at
	// capacity, minimum of 2 on removal. The default grid variant rotates.
	Page bool `json:"page,omitempty"`
}

type CompareToggleResponse struct {
	IDs    []string       `json:"ids"`
	Notice *notify.Notice `json:"notice,omitempty"`
}

type StatsResponse struct {
	Snapshot     string         `json:"snapshot"`
	TotalCourses int            `json:"total_courses"`
	SavedCourses int            `json:"saved_courses"`
	Providers    map[string]int `json:"providers"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}
