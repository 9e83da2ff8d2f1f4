package api

import (
	"net/http"

	"github.com/okian/trailboard/pkg/logger"
)

// FacetsHandler serves the filter options of a distance.
type FacetsHandler struct {
	deps   FacetsDependencies
	logger logger.Logger
}

// NewFacetsHandler creates a new facets handler.
func NewFacetsHandler(deps FacetsDependencies, log logger.Logger) *FacetsHandler {
	return &FacetsHandler{deps: deps, logger: log}
}

// HandleFacets handles GET /api/runners/{distance}/facets.
func (h *FacetsHandler) HandleFacets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	f, err := h.deps.Facets(r.Context(), r.PathValue("distance"))
	if err != nil {
		writeServiceError(r.Context(), h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}
