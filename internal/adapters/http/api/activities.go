package api

import (
	"context"
	"net/http"

	"github.com/mergington/activities/internal/domain/activity"
	"github.com/mergington/activities/pkg/logger"
)

// ActivitiesDependencies defines the interface for listing activities.
type ActivitiesDependencies interface {
	List(ctx context.Context) (activity.Directory, error)
}

// ActivitiesHandler handles activity listing requests.
type ActivitiesHandler struct {
	deps   ActivitiesDependencies
	logger logger.Logger
}

// NewActivitiesHandler creates a new activities handler.
func NewActivitiesHandler(deps ActivitiesDependencies, l logger.Logger) *ActivitiesHandler {
	return &ActivitiesHandler{deps: deps, logger: l}
}

// HandleList handles GET /activities requests.
func (h *ActivitiesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	all, err := h.deps.List(r.Context())
	if err != nil {
		h.logger.Error(r.Context(), "list activities failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, nil)
		return
	}
	writeJSON(w, http.StatusOK, all)
}
