package api

import (
	"context"
	"net/http"

	"github.com/mergington/activities/pkg/logger"
)

// RosterDependencies defines the interface for roster mutations.
type RosterDependencies interface {
	Enroll(ctx context.Context, name, email string) (string, error)
	Unenroll(ctx context.Context, name, email string) (string, error)
}

// RosterHandler handles signup and unregister requests.
type RosterHandler struct {
	deps   RosterDependencies
	logger logger.Logger
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(deps RosterDependencies, l logger.Logger) *RosterHandler {
	return &RosterHandler{deps: deps, logger: l}
}

// HandleSignup handles POST /activities/{name}/signup?email= requests.
func (h *RosterHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.deps.Enroll)
}

// HandleUnregister handles DELETE /activities/{name}/unregister?email= requests.
func (h *RosterHandler) HandleUnregister(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.deps.Unenroll)
}

func (h *RosterHandler) mutate(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, name, email string) (string, error),
) {
	email, err := emailParam(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	msg, err := op(r.Context(), r.PathValue("name"), email)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.Error(r.Context(), "roster update failed",
				logger.String("activity", r.PathValue("name")),
				logger.Error(err),
			)
			writeError(w, status, nil)
			return
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}
