// Package server exposes the editor core over HTTP.
//
// The server is a thin collaborator around an injected network.Store: every
// route maps onto one store operation or one render pass. The store keeps
// its single-writer contract — a server-level mutex serializes all access at
// the transport boundary, so handlers never touch the store concurrently.
package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apperrors "github.com/hydrotools/penstock/pkg/errors"
	"github.com/hydrotools/penstock/pkg/network"
	"github.com/hydrotools/penstock/pkg/project"
)

// Server wires the topology store, optional project persistence and the
// render pipeline into an HTTP API.
type Server struct {
	mu       sync.Mutex
	store    *network.Store
	projects project.Store // nil disables the /api/projects routes
	logger   *log.Logger
}

// New creates a server around the given store. projects may be nil.
func New(store *network.Store, projects project.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{store: store, projects: projects, logger: logger}
}

// Router builds the chi route tree.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/api/network", func(r chi.Router) {
		r.Get("/", s.handleGetNetwork)
		r.Post("/", s.handleLoadNetwork)
		r.Delete("/", s.handleClearNetwork)

		r.Post("/nodes", s.handleAddNode)
		r.Patch("/nodes/{id}", s.handleUpdateNode)
		r.Delete("/nodes/{id}", s.handleDeleteNode)

		r.Post("/edges", s.handleConnect)
		r.Patch("/edges/{id}", s.handleUpdateEdge)
		r.Delete("/edges/{id}", s.handleDeleteEdge)

		r.Put("/params", s.handleSetParams)
		r.Post("/requests", s.handleAddRequest)
		r.Delete("/requests/{id}", s.handleRemoveRequest)

		r.Post("/undo", s.handleUndo)
		r.Post("/redo", s.handleRedo)
	})

	r.Get("/diagram.svg", s.handleDiagramSVG)
	r.Get("/diagram.dot", s.handleDiagramDOT)

	if s.projects != nil {
		r.Route("/api/projects", func(r chi.Router) {
			r.Get("/", s.handleListProjects)
			r.Post("/", s.handleSaveProject)
			r.Get("/{id}", s.handleGetProject)
			r.Post("/{id}/load", s.handleLoadProject)
			r.Delete("/{id}", s.handleDeleteProject)
		})
	}

	return r
}

// requestLogger logs method, path, status and duration for every request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond))
	})
}

// errorBody is the JSON shape of all error responses.
type errorBody struct {
	Error string         `json:"error"`
	Code  apperrors.Code `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorBody{
		Error: apperrors.UserMessage(err),
		Code:  apperrors.GetCode(err),
	})
}
