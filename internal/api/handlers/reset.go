package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/finsight-app/finsight/internal/api/middleware"
	"github.com/finsight-app/finsight/internal/domain"
)

// Resetter executes scoped store resets.
type Resetter interface {
	Reset(ctx context.Context, scope string) (domain.ResetScope, error)
}

// ResetHandler handles the destructive reset endpoint.
type ResetHandler struct {
	controller Resetter
	log        zerolog.Logger
}

// NewResetHandler creates a new reset handler.
func NewResetHandler(controller Resetter, log zerolog.Logger) *ResetHandler {
	return &ResetHandler{controller: controller, log: log}
}

// Reset handles POST /api/reset. The body is optional: an absent or
// malformed body resets with the default (full) scope.
func (h *ResetHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
	}
	// Tolerate an empty body; scope normalization handles the rest.
	_ = json.NewDecoder(r.Body).Decode(&req)

	mode, err := h.controller.Reset(r.Context(), req.Mode)
	if err != nil {
		writeFailure(w, h.log, "Reset failed", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"mode":    mode,
	})
}
