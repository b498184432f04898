package api

import (
	"net/http"
)

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// API routes with method-specific routing
	mux.HandleFunc("GET /api/providers", s.HandleListProviders)
	mux.HandleFunc("GET /api/courses", s.HandleCourses)
	mux.HandleFunc("GET /api/courses/{provider}", s.HandleProviderCourses)
	mux.HandleFunc("GET /api/search", s.HandleSearch)
	mux.HandleFunc("GET /api/suggest", s.HandleSuggest)
	mux.HandleFunc("POST /api/compare/toggle", s.HandleCompareToggle)
	mux.HandleFunc("POST /api/courses/{id}/save", s.HandleToggleSaved)
	mux.HandleFunc("GET /api/stats", s.HandleStats)
	mux.HandleFunc("GET /api/firehose/ws", s.HandleFirehoseWS)
	mux.HandleFunc("GET /health", s.HandleHealth)

	s.registerProfileRoutes(mux)
}

func (s *Server) registerProfileRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/profiles", s.HandleSaveProfile)
	mux.HandleFunc("GET /api/profiles/{id}", s.HandleGetProfile)
	mux.HandleFunc("POST /api/profiles/{id}/bookmarks/{courseID}", s.HandleToggleBookmark)
	mux.HandleFunc("GET /api/profiles/{id}/bookmarks", s.HandleListBookmarks)
}
