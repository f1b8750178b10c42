package network

// NodePatch is a partial node update. Nil fields are left unchanged; set
// fields are shallow-merged onto the node.
type NodePatch struct {
	Type            *NodeType `json:"type,omitempty"`
	Position        *Position `json:"position,omitempty"`
	Label           *string   `json:"label,omitempty"`
	Comment         *string   `json:"comment,omitempty"`
	Elevation       *float64  `json:"elevation,omitempty"`
	TopElevation    *float64  `json:"top_elevation,omitempty"`
	BottomElevation *float64  `json:"bottom_elevation,omitempty"`
	Diameter        *float64  `json:"diameter,omitempty"`
	Celerity        *float64  `json:"celerity,omitempty"`
	Friction        *float64  `json:"friction,omitempty"`
	Schedule        *int      `json:"schedule,omitempty"`
}

// EdgePatch is a partial edge update. Nil fields are left unchanged.
// Changing Type regenerates the label and reassigns the stroke style.
type EdgePatch struct {
	Type     *EdgeType `json:"type,omitempty"`
	Label    *string   `json:"label,omitempty"`
	Length   *float64  `json:"length,omitempty"`
	Diameter *float64  `json:"diameter,omitempty"`
	Celerity *float64  `json:"celerity,omitempty"`
	Friction *float64  `json:"friction,omitempty"`
	Segments *int      `json:"segments,omitempty"`
}

// Store owns the network graph, computational parameters, output requests
// and the bounded undo/redo history for one editing session.
//
// The store is explicitly owned state: construct it with NewStore and inject
// it into consumers. It has a single-writer mutation contract and is not
// safe for concurrent use without external synchronization; layout and
// rendering read snapshots and never touch it.
type Store struct {
	nodes    []Node
	edges    []Edge
	params   ComputationalParams
	requests []OutputRequest

	projectName string
	selection   *Selection
	locked      bool

	nextID int
	past   []Snapshot
	future []Snapshot
}

// NewStore creates an empty store with the id counter at 1.
func NewStore() *Store {
	return &Store{nextID: 1}
}

// =============================================================================
// Accessors
// =============================================================================

// Nodes returns a deep copy of all nodes in insertion order.
func (s *Store) Nodes() []Node {
	out := make([]Node, len(s.nodes))
	for i, n := range s.nodes {
		out[i] = n.Clone()
	}
	return out
}

// Edges returns a deep copy of all edges in insertion order.
func (s *Store) Edges() []Edge {
	out := make([]Edge, len(s.edges))
	for i, e := range s.edges {
		out[i] = e.Clone()
	}
	return out
}

// Node returns a copy of the node with the given id.
func (s *Store) Node(id int) (Node, bool) {
	for _, n := range s.nodes {
		if n.ID == id {
			return n.Clone(), true
		}
	}
	return Node{}, false
}

// Edge returns a copy of the edge with the given id.
func (s *Store) Edge(id int) (Edge, bool) {
	for _, e := range s.edges {
		if e.ID == id {
			return e.Clone(), true
		}
	}
	return Edge{}, false
}

// NodeCount returns the number of nodes.
func (s *Store) NodeCount() int { return len(s.nodes) }

// EdgeCount returns the number of edges.
func (s *Store) EdgeCount() int { return len(s.edges) }

// Params returns the computational parameters.
func (s *Store) Params() ComputationalParams { return s.params }

// Requests returns a deep copy of all output requests.
func (s *Store) Requests() []OutputRequest {
	out := make([]OutputRequest, len(s.requests))
	for i, r := range s.requests {
		out[i] = r.Clone()
	}
	return out
}

// ProjectName returns the current project name.
func (s *Store) ProjectName() string { return s.projectName }

// Selection returns the current selection, or nil if nothing is selected.
func (s *Store) Selection() *Selection {
	if s.selection == nil {
		return nil
	}
	sel := *s.selection
	return &sel
}

// Locked reports whether the editor lock toggle is on.
func (s *Store) Locked() bool { return s.locked }

// Snapshot returns a deep copy of the undoable state.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Nodes:    s.nodes,
		Edges:    s.edges,
		Params:   s.params,
		Requests: s.requests,
	}.Clone()
}

// =============================================================================
// Tracked mutations
// =============================================================================

// AddNode creates a node of the given type at the given position with the
// per-type default attributes, assigns the next id and appends it.
// Always succeeds; the created node is returned.
func (s *Store) AddNode(t NodeType, pos Position) Node {
	s.saveToHistory()
	n := NewNode(t, pos)
	n.ID = s.allocID()
	s.nodes = append(s.nodes, n)
	return n.Clone()
}

// Connect creates a conduit edge from source to target with fixed defaults.
// The label is C{n+1} where n is the current count of conduit-typed edges.
//
// Connect performs no self-loop or endpoint validation; rejecting a
// source == target connection is the caller's responsibility.
func (s *Store) Connect(source, target int) Edge {
	s.saveToHistory()
	e := newConduit(source, target, s.countEdges(EdgeConduit))
	e.ID = s.allocID()
	s.edges = append(s.edges, e)
	return e.Clone()
}

// UpdateNode shallow-merges the patch onto the node with the given id.
// A nonexistent id leaves the node collection unchanged.
func (s *Store) UpdateNode(id int, p NodePatch) {
	s.saveToHistory()
	for i := range s.nodes {
		if s.nodes[i].ID != id {
			continue
		}
		n := &s.nodes[i]
		if p.Type != nil {
			n.Type = *p.Type
		}
		if p.Position != nil {
			n.Position = *p.Position
		}
		if p.Label != nil {
			n.Label = *p.Label
		}
		if p.Comment != nil {
			n.Comment = *p.Comment
		}
		if p.Elevation != nil {
			n.Elevation = clonePtr(p.Elevation)
		}
		if p.TopElevation != nil {
			n.TopElevation = clonePtr(p.TopElevation)
		}
		if p.BottomElevation != nil {
			n.BottomElevation = clonePtr(p.BottomElevation)
		}
		if p.Diameter != nil {
			n.Diameter = clonePtr(p.Diameter)
		}
		if p.Celerity != nil {
			n.Celerity = clonePtr(p.Celerity)
		}
		if p.Friction != nil {
			n.Friction = clonePtr(p.Friction)
		}
		if p.Schedule != nil {
			n.Schedule = clonePtr(p.Schedule)
		}
		return
	}
}

// UpdateEdge shallow-merges the patch onto the edge with the given id.
// A type change regenerates the label from the count of same-new-type edges
// (excluding the edge itself) and reassigns the stroke style.
// A nonexistent id leaves the edge collection unchanged.
func (s *Store) UpdateEdge(id int, p EdgePatch) {
	s.saveToHistory()
	for i := range s.edges {
		if s.edges[i].ID != id {
			continue
		}
		e := &s.edges[i]
		if p.Type != nil && *p.Type != e.Type {
			count := 0
			for _, other := range s.edges {
				if other.ID != id && other.Type == *p.Type {
					count++
				}
			}
			e.Type = *p.Type
			e.Label = edgeLabel(*p.Type, count)
			e.Style = styleForType(*p.Type)
		}
		if p.Label != nil {
			e.Label = *p.Label
		}
		if p.Length != nil {
			e.Length = clonePtr(p.Length)
		}
		if p.Diameter != nil {
			e.Diameter = clonePtr(p.Diameter)
		}
		if p.Celerity != nil {
			e.Celerity = clonePtr(p.Celerity)
		}
		if p.Friction != nil {
			e.Friction = clonePtr(p.Friction)
		}
		if p.Segments != nil {
			e.Segments = clonePtr(p.Segments)
		}
		return
	}
}

// Delete removes the element with the given id. Deleting a node cascades to
// every edge where it is source or target; deleting an edge removes only
// that edge. The selection is cleared if the deleted element was selected.
func (s *Store) Delete(id int, kind ElementKind) {
	s.saveToHistory()
	switch kind {
	case KindNode:
		kept := s.nodes[:0]
		for _, n := range s.nodes {
			if n.ID != id {
				kept = append(kept, n)
			}
		}
		s.nodes = kept
		keptEdges := s.edges[:0]
		for _, e := range s.edges {
			if e.Source != id && e.Target != id {
				keptEdges = append(keptEdges, e)
			}
		}
		s.edges = keptEdges
	case KindEdge:
		kept := s.edges[:0]
		for _, e := range s.edges {
			if e.ID != id {
				kept = append(kept, e)
			}
		}
		s.edges = kept
	}
	if s.selection != nil && s.selection.ID == id && s.selection.Kind == kind {
		s.selection = nil
	}
}

// SetParams replaces the computational parameters.
func (s *Store) SetParams(p ComputationalParams) {
	s.saveToHistory()
	s.params = p
}

// AddOutputRequest creates an output request for the given element and
// returns it.
func (s *Store) AddOutputRequest(elementID int, kind ElementKind, rt RequestType, variables []string) OutputRequest {
	s.saveToHistory()
	r := OutputRequest{
		ID:          s.allocID(),
		ElementID:   elementID,
		ElementKind: kind,
		RequestType: rt,
		Variables:   append([]string(nil), variables...),
	}
	s.requests = append(s.requests, r)
	return r.Clone()
}

// RemoveOutputRequest deletes the request with the given id.
// A nonexistent id is a no-op (the history push still happens).
func (s *Store) RemoveOutputRequest(id int) {
	s.saveToHistory()
	kept := s.requests[:0]
	for _, r := range s.requests {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.requests = kept
}

// Clear empties nodes, edges and output requests, resets the project name
// and resets the id counter to 1. The cleared state is undoable.
func (s *Store) Clear() {
	s.saveToHistory()
	s.nodes = nil
	s.edges = nil
	s.requests = nil
	s.params = ComputationalParams{}
	s.projectName = ""
	s.selection = nil
	s.nextID = 1
}

// =============================================================================
// Untracked mutations
// =============================================================================

// Select records the current selection. Selection changes are not undoable.
func (s *Store) Select(id int, kind ElementKind) {
	s.selection = &Selection{ID: id, Kind: kind}
}

// ClearSelection clears the current selection.
func (s *Store) ClearSelection() { s.selection = nil }

// SetLocked toggles the editor lock. Not undoable.
func (s *Store) SetLocked(locked bool) { s.locked = locked }

// SetProjectName renames the project. Not undoable.
func (s *Store) SetProjectName(name string) { s.projectName = name }

// Load replaces the whole graph with the given snapshot. Load is a fresh
// baseline, not an undoable edit: it does not push to history.
//
// The id counter is recomputed as max(existing ids) + 1 so future adds
// cannot collide. Nested legacy variable bags on edges are flattened to
// top-level fields with HasVariable set. A zero-valued Params keeps the
// current parameters (the field was optional in the source snapshot).
func (s *Store) Load(snap Snapshot, name string) {
	snap = snap.Clone()

	maxID := 0
	for _, n := range snap.Nodes {
		if n.ID > maxID {
			maxID = n.ID
		}
	}
	for i := range snap.Edges {
		e := &snap.Edges[i]
		if e.ID > maxID {
			maxID = e.ID
		}
		flattenVariable(e)
	}
	for _, r := range snap.Requests {
		if r.ID > maxID {
			maxID = r.ID
		}
	}

	s.nodes = snap.Nodes
	s.edges = snap.Edges
	s.requests = snap.Requests
	if snap.Params != (ComputationalParams{}) {
		s.params = snap.Params
	}
	s.projectName = name
	s.selection = nil
	s.nextID = maxID + 1
}

// flattenVariable moves a nested legacy variable bag onto the edge itself.
// Bag fields win over any top-level values already present.
func flattenVariable(e *Edge) {
	if e.Variable == nil {
		return
	}
	v := e.Variable
	if v.Length != nil {
		e.Length = v.Length
	}
	if v.Diameter != nil {
		e.Diameter = v.Diameter
	}
	if v.Celerity != nil {
		e.Celerity = v.Celerity
	}
	if v.Friction != nil {
		e.Friction = v.Friction
	}
	if v.Segments != nil {
		e.Segments = v.Segments
	}
	e.HasVariable = true
	e.Variable = nil
}

// =============================================================================
// Internal
// =============================================================================

func (s *Store) allocID() int {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Store) countEdges(t EdgeType) int {
	count := 0
	for _, e := range s.edges {
		if e.Type == t {
			count++
		}
	}
	return count
}
