// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mergington/activities/internal/domain/activity"
	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/internal/domain/types"
	"github.com/mergington/activities/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// List returns every activity keyed by name.
	List(ctx context.Context) (activity.Directory, error)

	// Enroll and Unenroll mutate one roster and return a confirmation message.
	Enroll(ctx context.Context, name, email string) (string, error)
	Unenroll(ctx context.Context, name, email string) (string, error)

	// Changes returns up to n recent roster changes, newest first.
	Changes(ctx context.Context, n int) ([]model.Change, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	activitiesHandler *ActivitiesHandler
	rosterHandler     *RosterHandler
	changesHandler    *ChangesHandler
	dashboardHandler  *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	cfg := serverConfig{maxChangesLimit: defaultMaxChangesLimit}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.Get()
	}

	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		activitiesHandler: NewActivitiesHandler(deps, cfg.logger),
		rosterHandler:     NewRosterHandler(deps, cfg.logger),
		changesHandler:    NewChangesHandler(deps, cfg.maxChangesLimit, cfg.logger),
		dashboardHandler:  newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux. Known paths answer other
// methods with 405.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /activities", MetricsMiddleware(s.activitiesHandler.HandleList, "activities"))
	mux.HandleFunc("POST /activities/{name}/signup", MetricsMiddleware(s.rosterHandler.HandleSignup, "signup"))
	mux.HandleFunc("DELETE /activities/{name}/unregister", MetricsMiddleware(s.rosterHandler.HandleUnregister, "unregister"))
	mux.HandleFunc("GET /changes", MetricsMiddleware(s.changesHandler.HandleList, "changes"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /dashboard", s.dashboardHandler.HandleDashboard)
}

// messageResponse is the success body of roster mutations.
type messageResponse = types.Message

// errorResponse is the body of every API error.
type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Detail: msg})
}
