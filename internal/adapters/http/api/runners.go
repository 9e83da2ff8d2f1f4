package api

import (
	"net/http"

	"github.com/okian/trailboard/pkg/logger"
)

// RunnersHandler serves whole datasets as [name, details] pairs.
type RunnersHandler struct {
	deps   RunnersDependencies
	logger logger.Logger
}

// NewRunnersHandler creates a new runners handler.
func NewRunnersHandler(deps RunnersDependencies, log logger.Logger) *RunnersHandler {
	return &RunnersHandler{deps: deps, logger: log}
}

// HandleDefault handles GET /api/runners.
func (h *RunnersHandler) HandleDefault(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	ds, err := h.deps.DefaultRunners(r.Context())
	if err != nil {
		writeServiceError(r.Context(), h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

// HandleDistance handles GET /api/runners/{distance}.
func (h *RunnersHandler) HandleDistance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	ds, err := h.deps.Runners(r.Context(), r.PathValue("distance"))
	if err != nil {
		writeServiceError(r.Context(), h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, ds)
}
