package api

import (
	"context"
	"net/http"

	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/pkg/logger"
)

// ChangesDependencies defines the interface for reading the change journal.
type ChangesDependencies interface {
	Changes(ctx context.Context, n int) ([]model.Change, error)
}

// ChangesHandler handles recent roster change requests.
type ChangesHandler struct {
	deps     ChangesDependencies
	maxLimit int
	logger   logger.Logger
}

// NewChangesHandler creates a new changes handler.
func NewChangesHandler(deps ChangesDependencies, maxLimit int, l logger.Logger) *ChangesHandler {
	return &ChangesHandler{
		deps:     deps,
		maxLimit: maxLimit,
		logger:   l,
	}
}

// HandleList handles GET /changes?limit=N requests.
func (h *ChangesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	n, err := limitParam(r, h.maxLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	changes, err := h.deps.Changes(r.Context(), n)
	if err != nil {
		h.logger.Error(r.Context(), "read changes failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, nil)
		return
	}
	writeJSON(w, http.StatusOK, changes)
}
