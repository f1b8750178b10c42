package network

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// NodeType identifies the hydraulic element a node represents.
type NodeType string

// Node types.
const (
	NodeReservoir    NodeType = "reservoir"
	NodeSimple       NodeType = "simpleNode"
	NodeJunction     NodeType = "junction"
	NodeSurgeTank    NodeType = "surgeTank"
	NodeFlowBoundary NodeType = "flowBoundary"
)

// Valid reports whether t is a known node type.
func (t NodeType) Valid() bool {
	switch t {
	case NodeReservoir, NodeSimple, NodeJunction, NodeSurgeTank, NodeFlowBoundary:
		return true
	}
	return false
}

// EdgeType identifies the kind of link connecting two nodes.
type EdgeType string

// Edge types.
const (
	EdgeConduit EdgeType = "conduit"
	EdgeDummy   EdgeType = "dummy"
)

// Valid reports whether t is a known edge type.
func (t EdgeType) Valid() bool {
	return t == EdgeConduit || t == EdgeDummy
}

// ElementKind distinguishes node-addressed from edge-addressed operations
// (deletion, selection, output requests).
type ElementKind string

// Element kinds.
const (
	KindNode ElementKind = "node"
	KindEdge ElementKind = "edge"
)

// RequestType identifies how an output request is reported by the
// downstream transient-analysis engine.
type RequestType string

// Output request types.
const (
	RequestHistory     RequestType = "HISTORY"
	RequestPlot        RequestType = "PLOT"
	RequestSpreadsheet RequestType = "SPREADSHEET"
)

// =============================================================================
// Node
// =============================================================================

// Position is the editor-assigned canvas position of a node. It is
// independent of the column/row coordinates the layout engine computes.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Node is a vertex in the hydraulic network. Attributes beyond ID, Type and
// Position are type-specific: unset optional fields are nil and omitted from
// serialization. Which fields a given type populates is decided by the
// defaults table in NewNode; updates may fill or change any of them.
type Node struct {
	ID       int      `json:"id" bson:"id"`
	Type     NodeType `json:"type" bson:"type"`
	Position Position `json:"position" bson:"position"`
	Label    string   `json:"label,omitempty" bson:"label,omitempty"`
	Comment  string   `json:"comment,omitempty" bson:"comment,omitempty"`

	Elevation       *float64 `json:"elevation,omitempty" bson:"elevation,omitempty"`
	TopElevation    *float64 `json:"top_elevation,omitempty" bson:"top_elevation,omitempty"`
	BottomElevation *float64 `json:"bottom_elevation,omitempty" bson:"bottom_elevation,omitempty"`
	Diameter        *float64 `json:"diameter,omitempty" bson:"diameter,omitempty"`
	Celerity        *float64 `json:"celerity,omitempty" bson:"celerity,omitempty"`
	Friction        *float64 `json:"friction,omitempty" bson:"friction,omitempty"`
	Schedule        *int     `json:"schedule,omitempty" bson:"schedule,omitempty"`
}

// Clone returns a deep copy of the node.
func (n Node) Clone() Node {
	c := n
	c.Elevation = clonePtr(n.Elevation)
	c.TopElevation = clonePtr(n.TopElevation)
	c.BottomElevation = clonePtr(n.BottomElevation)
	c.Diameter = clonePtr(n.Diameter)
	c.Celerity = clonePtr(n.Celerity)
	c.Friction = clonePtr(n.Friction)
	c.Schedule = clonePtr(n.Schedule)
	return c
}

// =============================================================================
// Edge
// =============================================================================

// VariableBag is the nested attribute object legacy snapshot files attach to
// an edge under the "variable" key. Load flattens it onto the edge itself.
type VariableBag struct {
	Length   *float64 `json:"length,omitempty" bson:"length,omitempty"`
	Diameter *float64 `json:"diameter,omitempty" bson:"diameter,omitempty"`
	Celerity *float64 `json:"celerity,omitempty" bson:"celerity,omitempty"`
	Friction *float64 `json:"friction,omitempty" bson:"friction,omitempty"`
	Segments *int     `json:"segments,omitempty" bson:"segments,omitempty"`
}

// Edge is a directed link between two nodes. Source and Target hold node IDs;
// they may dangle after external edits — dangling edges are filtered at
// render time, never treated as corruption.
//
// Label is derived from the edge type and creation order ("C3", "D1"); it is
// display text, not an authoritative key.
type Edge struct {
	ID     int      `json:"id" bson:"id"`
	Source int      `json:"source" bson:"source"`
	Target int      `json:"target" bson:"target"`
	Type   EdgeType `json:"type" bson:"type"`
	Label  string   `json:"label,omitempty" bson:"label,omitempty"`
	Style  string   `json:"style,omitempty" bson:"style,omitempty"`

	Length   *float64 `json:"length,omitempty" bson:"length,omitempty"`
	Diameter *float64 `json:"diameter,omitempty" bson:"diameter,omitempty"`
	Celerity *float64 `json:"celerity,omitempty" bson:"celerity,omitempty"`
	Friction *float64 `json:"friction,omitempty" bson:"friction,omitempty"`
	Segments *int     `json:"segments,omitempty" bson:"segments,omitempty"`

	// HasVariable marks edges whose attributes came from a flattened
	// legacy variable bag.
	HasVariable bool `json:"has_variable,omitempty" bson:"has_variable,omitempty"`

	// Variable is the raw nested bag as read from legacy files. It is
	// consumed (flattened and cleared) by Store.Load.
	Variable *VariableBag `json:"variable,omitempty" bson:"variable,omitempty"`
}

// Clone returns a deep copy of the edge.
func (e Edge) Clone() Edge {
	c := e
	c.Length = clonePtr(e.Length)
	c.Diameter = clonePtr(e.Diameter)
	c.Celerity = clonePtr(e.Celerity)
	c.Friction = clonePtr(e.Friction)
	c.Segments = clonePtr(e.Segments)
	if e.Variable != nil {
		v := VariableBag{
			Length:   clonePtr(e.Variable.Length),
			Diameter: clonePtr(e.Variable.Diameter),
			Celerity: clonePtr(e.Variable.Celerity),
			Friction: clonePtr(e.Variable.Friction),
			Segments: clonePtr(e.Variable.Segments),
		}
		c.Variable = &v
	}
	return c
}

// =============================================================================
// Parameters and Output Requests
// =============================================================================

// ComputationalParams are the scalar simulation controls handed to the
// transient-analysis engine. One instance per project.
type ComputationalParams struct {
	DTComp float64 `json:"dtcomp" bson:"dtcomp"`
	DTOut  float64 `json:"dtout" bson:"dtout"`
	TMax   float64 `json:"tmax" bson:"tmax"`
}

// OutputRequest asks the engine to report variables for one element.
type OutputRequest struct {
	ID          int         `json:"id" bson:"id"`
	ElementID   int         `json:"element_id" bson:"element_id"`
	ElementKind ElementKind `json:"element_kind" bson:"element_kind"`
	RequestType RequestType `json:"request_type" bson:"request_type"`
	Variables   []string    `json:"variables,omitempty" bson:"variables,omitempty"`
}

// Clone returns a deep copy of the request.
func (r OutputRequest) Clone() OutputRequest {
	c := r
	if r.Variables != nil {
		c.Variables = append([]string(nil), r.Variables...)
	}
	return c
}

// =============================================================================
// Snapshot
// =============================================================================

// Snapshot is an immutable copy of the undoable project state. It
// deliberately excludes selection, lock state and project name — those are
// not undoable.
type Snapshot struct {
	Nodes    []Node              `json:"nodes" bson:"nodes"`
	Edges    []Edge              `json:"edges" bson:"edges"`
	Params   ComputationalParams `json:"computational_params" bson:"computational_params"`
	Requests []OutputRequest     `json:"output_requests,omitempty" bson:"output_requests,omitempty"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	c := Snapshot{Params: s.Params}
	if s.Nodes != nil {
		c.Nodes = make([]Node, len(s.Nodes))
		for i, n := range s.Nodes {
			c.Nodes[i] = n.Clone()
		}
	}
	if s.Edges != nil {
		c.Edges = make([]Edge, len(s.Edges))
		for i, e := range s.Edges {
			c.Edges[i] = e.Clone()
		}
	}
	if s.Requests != nil {
		c.Requests = make([]OutputRequest, len(s.Requests))
		for i, r := range s.Requests {
			c.Requests[i] = r.Clone()
		}
	}
	return c
}

// Selection identifies the currently selected element, if any.
type Selection struct {
	ID   int         `json:"id"`
	Kind ElementKind `json:"kind"`
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func ptr[T any](v T) *T { return &v }
