// Package site serves the embedded web page for browsing runners.
package site

import (
	"context"
	"net/http"
)

// Register attaches the site routes to mux.
// Routes:
//
//	GET /          -> index.html
//	GET /static/*  -> page assets
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	files := http.FileServer(FS())
	mux.HandleFunc("/{$}", getOnly(NewRootHandler().HandleRoot))
	mux.Handle("/static/", getOnly(http.StripPrefix("/static", files).ServeHTTP))
}

func getOnly(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}
}

// RootHandler serves the browser page.
type RootHandler struct {
	files http.Handler
}

// NewRootHandler creates a new root handler
func NewRootHandler() *RootHandler {
	return &RootHandler{files: http.FileServer(FS())}
}

// HandleRoot handles GET / requests.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	h.files.ServeHTTP(w, r)
}
