// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	service "github.com/okian/trailboard/internal/app"
	"github.com/okian/trailboard/internal/domain/types"
	"github.com/okian/trailboard/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	RunnersDependencies
	FacetsDependencies
	SearchDependencies
}

// RunnersDependencies serves raw datasets.
type RunnersDependencies interface {
	Runners(ctx context.Context, distance string) (types.Dataset, error)
	DefaultRunners(ctx context.Context) (types.Dataset, error)
}

// FacetsDependencies derives filter options.
type FacetsDependencies interface {
	Facets(ctx context.Context, distance string) (types.Facets, error)
}

// SearchDependencies serves filtered pages.
type SearchDependencies interface {
	Search(ctx context.Context, distance string, p service.SearchParams) (service.Page, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	runnersHandler *RunnersHandler
	facetsHandler  *FacetsHandler
	searchHandler  *SearchHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxPageSize int) *Server {
	log := logger.Named("api")
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		runnersHandler: NewRunnersHandler(deps, log),
		facetsHandler:  NewFacetsHandler(deps, log),
		searchHandler:  NewSearchHandler(deps, maxPageSize, log),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	route := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, RequestIDMiddleware(MetricsMiddleware(h, endpoint)))
	}

	route("/healthz", "healthz", s.healthHandler.HandleHealth)
	route("/stats", "stats", s.statsHandler.HandleStats)
	route("/api/runners", "runners", s.runnersHandler.HandleDefault)
	route("/api/runners/{distance}", "runners_distance", s.runnersHandler.HandleDistance)
	route("/api/runners/{distance}/facets", "facets", s.facetsHandler.HandleFacets)
	route("/api/runners/{distance}/search", "search", s.searchHandler.HandleSearch)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
