package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/hydrotools/penstock/pkg/errors"
	netio "github.com/hydrotools/penstock/pkg/io"
	"github.com/hydrotools/penstock/pkg/network"
	"github.com/hydrotools/penstock/pkg/network/render"
	"github.com/hydrotools/penstock/pkg/project"
	"github.com/hydrotools/penstock/pkg/render/nodelink"
)

// =============================================================================
// Network state
// =============================================================================

func (s *Server) handleGetNetwork(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	f := netio.FromStore(s.store)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleLoadNetwork(w http.ResponseWriter, r *http.Request) {
	f, err := netio.ReadJSON(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "invalid snapshot"))
		return
	}
	s.mu.Lock()
	s.store.Load(f.Snapshot(), f.ProjectName)
	out := netio.FromStore(s.store)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleClearNetwork(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.store.Clear()
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Mutations
// =============================================================================

type addNodeRequest struct {
	Type     network.NodeType `json:"type"`
	Position network.Position `json:"position"`
}

func (s *Server) handleAddNode(w http.ResponseWriter, r *http.Request) {
	var req addNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if !req.Type.Valid() {
		writeError(w, http.StatusBadRequest, apperrors.New(apperrors.ErrCodeInvalidNodeType, "unknown node type: %s", req.Type))
		return
	}
	s.mu.Lock()
	n := s.store.AddNode(req.Type, req.Position)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, n)
}

type connectRequest struct {
	Source int `json:"source"`
	Target int `json:"target"`
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	var req connectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	// The store performs no self-loop validation; rejecting them is this
	// caller's responsibility.
	if req.Source == req.Target {
		writeError(w, http.StatusBadRequest, apperrors.New(apperrors.ErrCodeSelfLoop, "cannot connect node %d to itself", req.Source))
		return
	}
	s.mu.Lock()
	e := s.store.Connect(req.Source, req.Target)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleUpdateNode(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch network.NodePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	s.mu.Lock()
	s.store.UpdateNode(id, patch)
	n, found := s.store.Node(id)
	s.mu.Unlock()
	if !found {
		writeError(w, http.StatusNotFound, apperrors.New(apperrors.ErrCodeNotFound, "node %d not found", id))
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (s *Server) handleUpdateEdge(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch network.EdgePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if patch.Type != nil && !patch.Type.Valid() {
		writeError(w, http.StatusBadRequest, apperrors.New(apperrors.ErrCodeInvalidEdgeType, "unknown edge type: %s", *patch.Type))
		return
	}
	s.mu.Lock()
	s.store.UpdateEdge(id, patch)
	e, found := s.store.Edge(id)
	s.mu.Unlock()
	if !found {
		writeError(w, http.StatusNotFound, apperrors.New(apperrors.ErrCodeNotFound, "edge %d not found", id))
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleDeleteNode(w http.ResponseWriter, r *http.Request) {
	s.handleDelete(w, r, network.KindNode)
}

func (s *Server) handleDeleteEdge(w http.ResponseWriter, r *http.Request) {
	s.handleDelete(w, r, network.KindEdge)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request, kind network.ElementKind) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	s.store.Delete(id, kind)
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetParams(w http.ResponseWriter, r *http.Request) {
	var params network.ComputationalParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	s.mu.Lock()
	s.store.SetParams(params)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, params)
}

type addRequestRequest struct {
	ElementID   int                 `json:"element_id"`
	ElementKind network.ElementKind `json:"element_kind"`
	RequestType network.RequestType `json:"request_type"`
	Variables   []string            `json:"variables"`
}

func (s *Server) handleAddRequest(w http.ResponseWriter, r *http.Request) {
	var req addRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	s.mu.Lock()
	out := s.store.AddOutputRequest(req.ElementID, req.ElementKind, req.RequestType, req.Variables)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) handleRemoveRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	s.store.RemoveOutputRequest(id)
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

type historyResponse struct {
	Applied bool `json:"applied"`
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	applied := s.store.Undo()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, historyResponse{Applied: applied})
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	applied := s.store.Redo()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, historyResponse{Applied: applied})
}

// =============================================================================
// Diagrams
// =============================================================================

func (s *Server) handleDiagramSVG(w http.ResponseWriter, r *http.Request) {
	showLabels := r.URL.Query().Get("labels") == "1"
	s.mu.Lock()
	snap := s.store.Snapshot()
	s.mu.Unlock()

	svg := render.SVG(snap.Nodes, snap.Edges, render.Options{ShowLabels: showLabels})
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write([]byte(svg))
}

func (s *Server) handleDiagramDOT(w http.ResponseWriter, r *http.Request) {
	detailed := r.URL.Query().Get("detailed") == "1"
	s.mu.Lock()
	snap := s.store.Snapshot()
	s.mu.Unlock()

	dot := nodelink.ToDOT(snap.Nodes, snap.Edges, nodelink.Options{Detailed: detailed})
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	_, _ = w.Write([]byte(dot))
}

// =============================================================================
// Projects
// =============================================================================

type saveProjectRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleSaveProject(w http.ResponseWriter, r *http.Request) {
	var req saveProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if err := apperrors.ValidateProjectName(req.Name); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	snap := s.store.Snapshot()
	s.mu.Unlock()

	p := project.New(req.Name, snap)
	if err := s.projects.Save(r.Context(), p); err != nil {
		writeError(w, http.StatusInternalServerError, apperrors.Wrap(apperrors.ErrCodeStorage, err, "save project"))
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	list, err := s.projects.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, apperrors.Wrap(apperrors.ErrCodeStorage, err, "list projects"))
		return
	}
	if list == nil {
		list = []project.Summary{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	p, ok := s.loadProject(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleLoadProject(w http.ResponseWriter, r *http.Request) {
	p, ok := s.loadProject(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	s.store.Load(p.Snapshot, p.Name)
	out := netio.FromStore(s.store)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.projects.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, apperrors.Wrap(apperrors.ErrCodeStorage, err, "delete project"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) loadProject(w http.ResponseWriter, r *http.Request) (*project.Project, bool) {
	id := chi.URLParam(r, "id")
	p, err := s.projects.Load(r.Context(), id)
	if errors.Is(err, project.ErrNotFound) {
		writeError(w, http.StatusNotFound, apperrors.New(apperrors.ErrCodeProjectNotFound, "project %s not found", id))
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, apperrors.Wrap(apperrors.ErrCodeStorage, err, "load project"))
		return nil, false
	}
	return p, true
}

// pathID parses the {id} route parameter as an integer.
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid id: %s", chi.URLParam(r, "id")))
		return 0, false
	}
	return id, true
}
