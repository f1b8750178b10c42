package network

import (
	"reflect"
	"testing"
)

func TestAddNodeDefaults(t *testing.T) {
	tests := []struct {
		name      string
		nodeType  NodeType
		wantLabel string
		check     func(t *testing.T, n Node)
	}{
		{
			name:      "reservoir",
			nodeType:  NodeReservoir,
			wantLabel: "HW",
			check: func(t *testing.T, n Node) {
				if n.Elevation == nil || *n.Elevation != 100 {
					t.Errorf("reservoir elevation = %v, want 100", n.Elevation)
				}
			},
		},
		{
			name:      "simple node",
			nodeType:  NodeSimple,
			wantLabel: "N",
			check: func(t *testing.T, n Node) {
				if n.Elevation == nil || *n.Elevation != 0 {
					t.Errorf("simple node elevation = %v, want 0", n.Elevation)
				}
			},
		},
		{
			name:      "junction",
			nodeType:  NodeJunction,
			wantLabel: "J",
			check:     func(t *testing.T, n Node) {},
		},
		{
			name:      "surge tank",
			nodeType:  NodeSurgeTank,
			wantLabel: "ST",
			check: func(t *testing.T, n Node) {
				if n.TopElevation == nil || *n.TopElevation != 120 {
					t.Errorf("surge tank top elevation = %v, want 120", n.TopElevation)
				}
				if n.BottomElevation == nil || *n.BottomElevation != 80 {
					t.Errorf("surge tank bottom elevation = %v, want 80", n.BottomElevation)
				}
				if n.Diameter == nil || *n.Diameter != 1 {
					t.Errorf("surge tank diameter = %v, want 1", n.Diameter)
				}
			},
		},
		{
			name:      "flow boundary",
			nodeType:  NodeFlowBoundary,
			wantLabel: "FB",
			check: func(t *testing.T, n Node) {
				if n.Schedule == nil || *n.Schedule != 1 {
					t.Errorf("flow boundary schedule = %v, want 1", n.Schedule)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			n := s.AddNode(tt.nodeType, Position{X: 10, Y: 20})
			if n.ID != 1 {
				t.Errorf("first node id = %d, want 1", n.ID)
			}
			if n.Label != tt.wantLabel {
				t.Errorf("label = %q, want %q", n.Label, tt.wantLabel)
			}
			if n.Position != (Position{X: 10, Y: 20}) {
				t.Errorf("position = %+v, want {10 20}", n.Position)
			}
			tt.check(t, n)
		})
	}
}

func TestIDsAreMonotonic(t *testing.T) {
	s := NewStore()
	a := s.AddNode(NodeReservoir, Position{})
	b := s.AddNode(NodeJunction, Position{})
	e := s.Connect(a.ID, b.ID)
	r := s.AddOutputRequest(a.ID, KindNode, RequestPlot, []string{"head"})

	got := []int{a.ID, b.ID, e.ID, r.ID}
	want := []int{1, 2, 3, 4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}

	// Deleting does not recycle ids.
	s.Delete(b.ID, KindNode)
	c := s.AddNode(NodeSimple, Position{})
	if c.ID != 5 {
		t.Errorf("id after delete = %d, want 5", c.ID)
	}
}

func TestConnectDefaults(t *testing.T) {
	s := NewStore()
	a := s.AddNode(NodeReservoir, Position{})
	b := s.AddNode(NodeJunction, Position{})

	e := s.Connect(a.ID, b.ID)
	if e.Type != EdgeConduit {
		t.Errorf("type = %q, want conduit", e.Type)
	}
	if e.Label != "C1" {
		t.Errorf("label = %q, want C1", e.Label)
	}
	if e.Style != StyleSolid {
		t.Errorf("style = %q, want solid", e.Style)
	}
	if e.Length == nil || *e.Length != DefaultConduitLength {
		t.Errorf("length = %v, want %v", e.Length, DefaultConduitLength)
	}
	if e.Segments == nil || *e.Segments != DefaultConduitSegments {
		t.Errorf("segments = %v, want %v", e.Segments, DefaultConduitSegments)
	}

	// Labels count existing conduits, so subsequent connects are C2, C3.
	if e2 := s.Connect(b.ID, a.ID); e2.Label != "C2" {
		t.Errorf("second label = %q, want C2", e2.Label)
	}
	if e3 := s.Connect(a.ID, b.ID); e3.Label != "C3" {
		t.Errorf("third label = %q, want C3", e3.Label)
	}
}

func TestConnectLabelCountsOnlyConduits(t *testing.T) {
	s := NewStore()
	a := s.AddNode(NodeReservoir, Position{})
	b := s.AddNode(NodeJunction, Position{})
	c := s.AddNode(NodeSurgeTank, Position{})

	e1 := s.Connect(a.ID, b.ID)
	dummy := EdgeDummy
	s.UpdateEdge(e1.ID, EdgePatch{Type: &dummy})

	// The only existing edge is now a dummy, so the next conduit is C1 again.
	e2 := s.Connect(b.ID, c.ID)
	if e2.Label != "C1" {
		t.Errorf("label = %q, want C1", e2.Label)
	}
}

func TestUpdateNodeMergesPatch(t *testing.T) {
	s := NewStore()
	n := s.AddNode(NodeReservoir, Position{X: 1, Y: 2})

	label := "Headwater"
	elev := 180.5
	s.UpdateNode(n.ID, NodePatch{Label: &label, Elevation: &elev})

	got, ok := s.Node(n.ID)
	if !ok {
		t.Fatal("node not found after update")
	}
	if got.Label != "Headwater" {
		t.Errorf("label = %q, want Headwater", got.Label)
	}
	if got.Elevation == nil || *got.Elevation != 180.5 {
		t.Errorf("elevation = %v, want 180.5", got.Elevation)
	}
	// Untouched fields survive.
	if got.Position != (Position{X: 1, Y: 2}) {
		t.Errorf("position changed: %+v", got.Position)
	}
}

func TestUpdateNodeNonexistentIsNoOp(t *testing.T) {
	s := NewStore()
	s.AddNode(NodeJunction, Position{})
	before := s.Snapshot()

	label := "ghost"
	s.UpdateNode(999, NodePatch{Label: &label})

	after := s.Snapshot()
	if !reflect.DeepEqual(before.Nodes, after.Nodes) {
		t.Error("node collection changed by update of nonexistent id")
	}
	// The mutation attempt is still recorded in history.
	if s.UndoDepth() != 2 {
		t.Errorf("undo depth = %d, want 2", s.UndoDepth())
	}
}

func TestUpdateEdgeTypeChangeRelabels(t *testing.T) {
	s := NewStore()
	a := s.AddNode(NodeReservoir, Position{})
	b := s.AddNode(NodeJunction, Position{})
	c := s.AddNode(NodeSurgeTank, Position{})
	e1 := s.Connect(a.ID, b.ID)
	s.Connect(b.ID, c.ID)

	dummy := EdgeDummy
	s.UpdateEdge(e1.ID, EdgePatch{Type: &dummy})

	got, _ := s.Edge(e1.ID)
	if got.Type != EdgeDummy {
		t.Errorf("type = %q, want dummy", got.Type)
	}
	if got.Label != "D1" {
		t.Errorf("label = %q, want D1", got.Label)
	}
	if got.Style != StyleDashed {
		t.Errorf("style = %q, want dashed", got.Style)
	}
}

func TestUpdateEdgeExplicitLabelWinsOverRelabel(t *testing.T) {
	s := NewStore()
	a := s.AddNode(NodeReservoir, Position{})
	b := s.AddNode(NodeJunction, Position{})
	e := s.Connect(a.ID, b.ID)

	dummy := EdgeDummy
	label := "bypass"
	s.UpdateEdge(e.ID, EdgePatch{Type: &dummy, Label: &label})

	got, _ := s.Edge(e.ID)
	if got.Label != "bypass" {
		t.Errorf("label = %q, want bypass", got.Label)
	}
	if got.Style != StyleDashed {
		t.Errorf("style = %q, want dashed", got.Style)
	}
}

func TestDeleteNodeCascades(t *testing.T) {
	s := NewStore()
	a := s.AddNode(NodeReservoir, Position{})
	b := s.AddNode(NodeJunction, Position{})
	c := s.AddNode(NodeSurgeTank, Position{})
	s.Connect(a.ID, b.ID)
	s.Connect(b.ID, c.ID)
	keep := s.Connect(a.ID, c.ID)

	s.Delete(b.ID, KindNode)

	if s.NodeCount() != 2 {
		t.Errorf("node count = %d, want 2", s.NodeCount())
	}
	edges := s.Edges()
	if len(edges) != 1 {
		t.Fatalf("edge count = %d, want 1", len(edges))
	}
	if edges[0].ID != keep.ID {
		t.Errorf("surviving edge id = %d, want %d", edges[0].ID, keep.ID)
	}
}

func TestDeleteClearsMatchingSelection(t *testing.T) {
	s := NewStore()
	a := s.AddNode(NodeReservoir, Position{})
	b := s.AddNode(NodeJunction, Position{})

	s.Select(a.ID, KindNode)
	s.Delete(b.ID, KindNode)
	if s.Selection() == nil {
		t.Error("selection cleared by deletion of a different element")
	}

	s.Delete(a.ID, KindNode)
	if s.Selection() != nil {
		t.Error("selection not cleared by deletion of selected element")
	}
}

func TestDeleteEdgeLeavesNodes(t *testing.T) {
	s := NewStore()
	a := s.AddNode(NodeReservoir, Position{})
	b := s.AddNode(NodeJunction, Position{})
	e := s.Connect(a.ID, b.ID)

	s.Delete(e.ID, KindEdge)

	if s.EdgeCount() != 0 {
		t.Errorf("edge count = %d, want 0", s.EdgeCount())
	}
	if s.NodeCount() != 2 {
		t.Errorf("node count = %d, want 2", s.NodeCount())
	}
}

func TestOutputRequests(t *testing.T) {
	s := NewStore()
	n := s.AddNode(NodeSurgeTank, Position{})

	r := s.AddOutputRequest(n.ID, KindNode, RequestPlot, []string{"head", "flow"})
	if r.ElementID != n.ID || r.ElementKind != KindNode {
		t.Errorf("request element = (%d, %s), want (%d, node)", r.ElementID, r.ElementKind, n.ID)
	}
	if len(s.Requests()) != 1 {
		t.Fatalf("request count = %d, want 1", len(s.Requests()))
	}

	s.RemoveOutputRequest(r.ID)
	if len(s.Requests()) != 0 {
		t.Errorf("request count after remove = %d, want 0", len(s.Requests()))
	}
}

func TestClearResetsIDCounter(t *testing.T) {
	s := NewStore()
	s.AddNode(NodeReservoir, Position{})
	s.AddNode(NodeJunction, Position{})
	s.SetProjectName("plant A")

	s.Clear()

	if s.NodeCount() != 0 || s.EdgeCount() != 0 {
		t.Error("clear left elements behind")
	}
	if s.ProjectName() != "" {
		t.Errorf("project name = %q, want empty", s.ProjectName())
	}
	n := s.AddNode(NodeReservoir, Position{})
	if n.ID != 1 {
		t.Errorf("first id after clear = %d, want 1", n.ID)
	}
}

func TestLoadRecomputesIDCounter(t *testing.T) {
	s := NewStore()
	snap := Snapshot{
		Nodes: []Node{
			{ID: 3, Type: NodeReservoir},
			{ID: 7, Type: NodeJunction},
		},
		Edges: []Edge{{ID: 5, Source: 3, Target: 7, Type: EdgeConduit}},
	}

	s.Load(snap, "imported")

	n := s.AddNode(NodeSimple, Position{})
	if n.ID != 8 {
		t.Errorf("id after load = %d, want 8", n.ID)
	}
	if s.ProjectName() != "imported" {
		t.Errorf("project name = %q, want imported", s.ProjectName())
	}
}

func TestLoadFlattensVariableBag(t *testing.T) {
	s := NewStore()
	length := 250.0
	topLength := 1.0
	segments := 4
	snap := Snapshot{
		Nodes: []Node{{ID: 1, Type: NodeReservoir}, {ID: 2, Type: NodeJunction}},
		Edges: []Edge{{
			ID: 3, Source: 1, Target: 2, Type: EdgeConduit,
			Length:   &topLength,
			Variable: &VariableBag{Length: &length, Segments: &segments},
		}},
	}

	s.Load(snap, "")

	e, ok := s.Edge(3)
	if !ok {
		t.Fatal("edge not found after load")
	}
	if e.Length == nil || *e.Length != 250 {
		t.Errorf("length = %v, want 250 (bag wins over top-level)", e.Length)
	}
	if e.Segments == nil || *e.Segments != 4 {
		t.Errorf("segments = %v, want 4", e.Segments)
	}
	if !e.HasVariable {
		t.Error("HasVariable not set after flattening")
	}
	if e.Variable != nil {
		t.Error("nested bag not cleared after flattening")
	}
}

func TestLoadZeroParamsKeepsCurrent(t *testing.T) {
	s := NewStore()
	s.SetParams(ComputationalParams{DTComp: 0.01, DTOut: 0.1, TMax: 60})

	s.Load(Snapshot{Nodes: []Node{{ID: 1, Type: NodeReservoir}}}, "")

	if got := s.Params(); got != (ComputationalParams{DTComp: 0.01, DTOut: 0.1, TMax: 60}) {
		t.Errorf("params = %+v, want preserved values", got)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := NewStore()
	s.AddNode(NodeReservoir, Position{})

	nodes := s.Nodes()
	nodes[0].Label = "mutated"
	*nodes[0].Elevation = -1

	got, _ := s.Node(nodes[0].ID)
	if got.Label == "mutated" {
		t.Error("mutating the returned slice changed store state")
	}
	if *got.Elevation == -1 {
		t.Error("mutating a returned pointer field changed store state")
	}
}
