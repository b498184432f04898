package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/coursexpert/coursexpert/pkg/catalog"
	"github.com/coursexpert/coursexpert/pkg/compare"
	"github.com/coursexpert/coursexpert/pkg/notify"
	"github.com/coursexpert/coursexpert/pkg/profile"
	"github.com/coursexpert/coursexpert/pkg/search"
	"github.com/coursexpert/coursexpert/pkg/version"
)

func (s *Server) HandleListProviders(w http.ResponseWriter, r *http.Request) {
	providers := s.registry.GetAllProviders()

	infos := make([]ProviderInfo, 0, len(providers))
	for _, name := range s.registry.ListProviders() {
		provider := providers[name]
		infos = append(infos, ProviderInfo{
			Name:        name,
			Type:        provider.Type(),
			CourseCount: len(s.collection.ProviderCourses(name)),
		})
	}

	response := ListProvidersResponse{
		Providers: infos,
		Count:     len(infos),
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) HandleCourses(w http.ResponseWriter, r *http.Request) {
	params := search.ParseParams(r.URL.Query())
	results := s.service.Search(params)

	s.writeJSON(w, http.StatusOK, listResponse("", results))
}

func (s *Server) HandleProviderCourses(w http.ResponseWriter, r *http.Request) {
	providerName := r.PathValue("provider")
	if providerName == "" {
		s.writeError(w, http.StatusBadRequest, "Invalid path", "Provider name is required")
		return
	}

	if _, err := s.registry.GetProvider(providerName); err != nil {
		s.writeError(w, http.StatusNotFound, "Provider not found", fmt.Sprintf("Provider '%s' does not exist", providerName))
		return
	}

	params := search.ParseParams(r.URL.Query())
	params.Providers = []string{providerName}
	// Default for the provider-scoped endpoint.
	if params.Limit == 30 {
		params.Limit = 20
	}

	results := s.service.Search(params)
	s.writeJSON(w, http.StatusOK, listResponse(providerName, results))
}

func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	params := search.ParseParams(r.URL.Query())

	// The search endpoint requires a query or at least one active filter;
	// plain browsing goes through /api/courses.
	if params.Query == "" && params.Filters.IsEmpty() {
		s.writeError(w, http.StatusBadRequest, "Missing query parameter", "Query parameter 'q' or a filter parameter is required")
		return
	}

	results := s.service.Search(params)
	s.writeJSON(w, http.StatusOK, listResponse("", results))
}

func (s *Server) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	params := search.ParseParams(r.URL.Query())

	limit := search.DefaultSuggestionLimit
	if params.Limit != 30 {
		limit = params.Limit
	}

	// Suggestions ignore filter state on purpose: they reflect the whole
	// provider-scoped catalog, not the filtered view.
	suggestions := s.service.Suggest(params.Providers, params.Query, limit)

	response := SuggestResponse{
		Query:       params.Query,
		Suggestions: suggestions,
		Count:       len(suggestions),
	}

	s.writeJSON(w, http.StatusOK, response)
}

// HandleCompareToggle is stateless: the request carries the caller's current
// comparison set and the toggled course, the response carries the new set
// plus any notice a bound violation produced.
func (s *Server) HandleCompareToggle(w http.ResponseWriter, r *http.Request) {
	var req CompareToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid body", err.Error())
		return
	}
	if req.ID == "" {
		s.writeError(w, http.StatusBadRequest, "Invalid body", "Field 'id' is required")
		return
	}

	recorder := &notify.Recorder{}
	var tracker *compare.Tracker
	if req.Page {
		tracker = compare.NewPageTracker(recorder)
	} else {
		tracker = compare.NewTracker(recorder)
	}
	if req.Capacity > 0 {
		tracker.SetCapacity(req.Capacity)
	}
	tracker.SetIDs(req.IDs)

	response := CompareToggleResponse{
		IDs:    tracker.Toggle(req.ID),
		Notice: recorder.Last(),
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) HandleToggleSaved(w http.ResponseWriter, r *http.Request) {
	courseID := r.PathValue("id")
	if courseID == "" {
		s.writeError(w, http.StatusBadRequest, "Invalid path", "Course ID is required")
		return
	}

	saved := s.collection.ToggleSaved(courseID)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"id":    courseID,
		"saved": saved,
	})
}

func (s *Server) HandleStats(w http.ResponseWriter, r *http.Request) {
	perProvider := make(map[string]int)
	for _, name := range s.collection.Providers() {
		perProvider[name] = len(s.collection.ProviderCourses(name))
	}

	response := StatsResponse{
		Snapshot:     s.collection.Snapshot(),
		TotalCourses: s.collection.Len(),
		SavedCourses: len(s.collection.SavedIDs()),
		Providers:    perProvider,
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   version.APIVersion(),
	}

	s.writeJSON(w, http.StatusOK, health)
}

func (s *Server) HandleSaveProfile(w http.ResponseWriter, r *http.Request) {
	if s.profiles == nil {
		s.writeError(w, http.StatusServiceUnavailable, "Profiles unavailable", "No profile store configured")
		return
	}

	var p profile.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid body", err.Error())
		return
	}
	if p.ID == "" {
		s.writeError(w, http.StatusBadRequest, "Invalid body", "Field 'id' is required")
		return
	}

	if err := s.profiles.SaveProfile(p); err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to save profile", err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	if s.profiles == nil {
		s.writeError(w, http.StatusServiceUnavailable, "Profiles unavailable", "No profile store configured")
		return
	}

	p, err := s.profiles.GetProfile(r.PathValue("id"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, "Profile not found", err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) HandleToggleBookmark(w http.ResponseWriter, r *http.Request) {
	if s.profiles == nil {
		s.writeError(w, http.StatusServiceUnavailable, "Profiles unavailable", "No profile store configured")
		return
	}

	profileID := r.PathValue("id")
	courseID := r.PathValue("courseID")

	bookmarked, err := s.profiles.ToggleBookmark(profileID, courseID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to toggle bookmark", err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"profile_id": profileID,
		"course_id":  courseID,
		"bookmarked": bookmarked,
	})
}

func (s *Server) HandleListBookmarks(w http.ResponseWriter, r *http.Request) {
	if s.profiles == nil {
		s.writeError(w, http.StatusServiceUnavailable, "Profiles unavailable", "No profile store configured")
		return
	}

	bookmarks, err := s.profiles.Bookmarks(r.PathValue("id"))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to list bookmarks", err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"bookmarks": bookmarks,
		"count":     len(bookmarks),
	})
}

func listResponse(provider string, results *search.Results) ListCoursesResponse {
	courses := results.Courses
	if courses == nil {
		courses = []catalog.Course{}
	}
	return ListCoursesResponse{
		Provider:   provider,
		Courses:    courses,
		Count:      len(courses),
		TotalCount: results.TotalCount,
		Page:       results.Page,
		Limit:      results.Limit,
		TotalPages: results.TotalPages,
		HasMore:    results.HasMore,
		Query:      results.Query,
	}
}
