package network

import "fmt"

// Default conduit attributes applied by Connect.
const (
	DefaultConduitLength   = 1000.0
	DefaultConduitDiameter = 0.5
	DefaultConduitCelerity = 1000.0
	DefaultConduitFriction = 0.02
	DefaultConduitSegments = 1
)

// Edge stroke styles, reassigned deterministically whenever the edge type
// changes.
const (
	StyleSolid  = "solid"
	StyleDashed = "dashed"
)

// NewNode builds a node of the given type with its default attributes.
// The ID is left zero; the store assigns it.
func NewNode(t NodeType, pos Position) Node {
	n := Node{Type: t, Position: pos}
	switch t {
	case NodeReservoir:
		n.Label = "HW"
		n.Elevation = ptr(100.0)
	case NodeSimple:
		n.Label = "N"
		n.Elevation = ptr(0.0)
	case NodeJunction:
		n.Label = "J"
		n.Elevation = ptr(0.0)
	case NodeSurgeTank:
		n.Label = "ST"
		n.TopElevation = ptr(120.0)
		n.BottomElevation = ptr(80.0)
		n.Diameter = ptr(1.0)
		n.Celerity = ptr(1000.0)
		n.Friction = ptr(0.02)
	case NodeFlowBoundary:
		n.Label = "FB"
		n.Elevation = ptr(0.0)
		n.Schedule = ptr(1)
	}
	return n
}

// newConduit builds a conduit edge with fixed defaults. The label is derived
// from the current count of conduit-typed edges, not from the edge ID.
func newConduit(source, target, conduitCount int) Edge {
	return Edge{
		Source:   source,
		Target:   target,
		Type:     EdgeConduit,
		Label:    edgeLabel(EdgeConduit, conduitCount),
		Style:    styleForType(EdgeConduit),
		Length:   ptr(DefaultConduitLength),
		Diameter: ptr(DefaultConduitDiameter),
		Celerity: ptr(DefaultConduitCelerity),
		Friction: ptr(DefaultConduitFriction),
		Segments: ptr(DefaultConduitSegments),
	}
}

// edgeLabel derives a display label from the type prefix and the count of
// same-typed edges at creation time. Count-based labeling can produce
// duplicates once edges are deleted and re-added out of insertion order;
// that matches the behavior of the legacy editor and is kept as-is.
func edgeLabel(t EdgeType, sameTypeCount int) string {
	prefix := "C"
	if t == EdgeDummy {
		prefix = "D"
	}
	return fmt.Sprintf("%s%d", prefix, sameTypeCount+1)
}

func styleForType(t EdgeType) string {
	if t == EdgeDummy {
		return StyleDashed
	}
	return StyleSolid
}
