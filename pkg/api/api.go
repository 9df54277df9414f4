// Package api exposes the evaluation pipeline over HTTP. The handlers are
// thin adapters: decode a request, run the shared pipeline Runner, encode
// the result. Errors surface as JSON bodies carrying the engine's
// machine-readable error codes.
package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/firegrid/firegrid/pkg/pipeline"
)

// Server wires the pipeline runner into an HTTP handler tree.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// NewServer creates an API server around the given runner. A nil logger
// falls back to the runner's logger.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	return &Server{runner: runner, logger: logger}
}

// Router builds the route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/report", s.handleReport)
		r.Post("/validate", s.handleValidate)
		r.Post("/battery", s.handleBattery)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
