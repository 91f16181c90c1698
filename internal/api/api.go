// Package api implements the HTTP compile API.
//
// The API wraps the build pipeline: clients POST a tree and get the
// compiled document back. Submitted trees are additionally stored in the
// cache under their content hash, so a document can be rebuilt later by
// hash alone without resubmitting the tree.
//
// # Endpoints
//
//	POST /v1/dashboards          compile a submitted tree
//	GET  /v1/dashboards/{hash}   recompile a previously submitted tree
//	GET  /healthz                liveness probe
//
// Errors are returned as JSON with a stable machine-readable code:
//
//	{"error": {"code": "INVALID_CONTAINER", "message": "..."}}
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dashforge/dashforge/pkg/cache"
	"github.com/dashforge/dashforge/pkg/errors"
	"github.com/dashforge/dashforge/pkg/pipeline"
)

// Server handles HTTP compile requests.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates the API handler around a pipeline runner.
func New(runner *pipeline.Runner, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/dashboards", s.handleCompile)
		r.Get("/dashboards/{hash}", s.handleRebuild)
	})

	return r
}

// logRequests emits one structured line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Millisecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// compileRequest is the POST /v1/dashboards body.
type compileRequest struct {
	Tree     json.RawMessage `json:"tree"`
	Defaults map[string]any  `json:"defaults,omitempty"`
	UID      string          `json:"uid,omitempty"`
	Pretty   bool            `json:"pretty,omitempty"`
	Refresh  bool            `json:"refresh,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCompile compiles a submitted tree and stores it for later
// retrieval by hash.
func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	var req compileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request"))
		return
	}
	if len(req.Tree) == 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "request is missing a tree"))
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Source:   req.Tree,
		Defaults: req.Defaults,
		UID:      req.UID,
		Pretty:   req.Pretty,
		Refresh:  req.Refresh,
		Logger:   s.logger,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	// Store the submitted tree under its hash so GET can rebuild it.
	treeKey := s.runner.Keyer.TreeKey(result.TreeHash)
	if err := s.runner.Cache.Set(r.Context(), treeKey, req.Tree, cache.TreeTTL); err != nil {
		s.logger.Warn("store tree failed", "err", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Tree-Hash", result.TreeHash)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Encoded)
}

// handleRebuild recompiles a previously submitted tree by its hash.
func (s *Server) handleRebuild(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, "hash")

	source, found, err := s.runner.Cache.Get(r.Context(), s.runner.Keyer.TreeKey(hash))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "load tree"))
		return
	}
	if !found {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "no tree stored under %q", hash))
		return
	}

	q := r.URL.Query()
	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Source: source,
		UID:    q.Get("uid"),
		Pretty: q.Get("pretty") == "true",
		Logger: s.logger,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Tree-Hash", result.TreeHash)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Encoded)
}

// writeError maps coded errors onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)

	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidRoot, errors.ErrCodeInvalidContainer,
		errors.ErrCodeInvalidDefaults, errors.ErrCodeInvalidFormat, errors.ErrCodePanelOverflow:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeUnsupported:
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}

	writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"code":    string(code),
			"message": errors.UserMessage(err),
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
