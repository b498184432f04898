package api

import (
	"encoding/json"
	"net/http"

	"github.com/coursexpert/coursexpert/pkg/catalog"
	"github.com/coursexpert/coursexpert/pkg/log"
	"github.com/coursexpert/coursexpert/pkg/profile"
	"github.com/coursexpert/coursexpert/pkg/realtime"
	"github.com/coursexpert/coursexpert/pkg/search"
)

type Server struct {
	registry   *catalog.Registry
	collection *catalog.Collection
	service    *search.Service
	profiles   *profile.Store
	hub        *realtime.Hub
	logger     *log.Logger
}

func NewServer(registry *catalog.Registry, collection *catalog.Collection) *Server {
	return &Server{
		registry:   registry,
		collection: collection,
		service:    search.NewService(collection),
		logger:     log.ForComponent("api"),
	}
}

// SetFirehoseHub injects the realtime hub enabling push delivery on the
// firehose WebSocket endpoint. Without a hub the endpoint still serves the
// init snapshot but never pushes live events.
func (s *Server) SetFirehoseHub(hub *realtime.Hub) {
	s.hub = hub
}

// SetProfileStore injects the profile database. Profile endpoints return
// 503 until a store is attached.
func (s *Server) SetProfileStore(store *profile.Store) {
	s.profiles = store
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Errorf("encoding JSON response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, error, message string) {
	response := ErrorResponse{
		Error:   error,
		Message: message,
	}
	s.writeJSON(w, status, response)
}

func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
