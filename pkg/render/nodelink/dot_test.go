package nodelink

import (
	"strings"
	"testing"

	"github.com/hydrotools/penstock/pkg/network"
)

func floatPtr(v float64) *float64 { return &v }

func TestToDOT(t *testing.T) {
	nodes := []network.Node{
		{ID: 1, Type: network.NodeReservoir, Label: "HW", Elevation: floatPtr(152)},
		{ID: 2, Type: network.NodeJunction},
		{ID: 3, Type: network.NodeSurgeTank, Label: "ST"},
	}
	edges := []network.Edge{
		{ID: 4, Source: 1, Target: 2, Type: network.EdgeConduit},
		{ID: 5, Source: 2, Target: 3, Type: network.EdgeDummy},
	}

	dot := ToDOT(nodes, edges, Options{})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Error("output is not a digraph")
	}
	if !strings.Contains(dot, "rankdir=LR") {
		t.Error("missing left-to-right rank direction")
	}
	if !strings.Contains(dot, `"n1" [label="HW", fillcolor=lightblue]`) {
		t.Error("reservoir node missing or unstyled")
	}
	if !strings.Contains(dot, `"n1" -> "n2";`) {
		t.Error("conduit edge missing")
	}
	if !strings.Contains(dot, `"n2" -> "n3" [style=dashed, color=grey, arrowhead=none];`) {
		t.Error("dummy edge missing or unstyled")
	}
}

func TestToDOTDetailedLabels(t *testing.T) {
	nodes := []network.Node{
		{ID: 1, Type: network.NodeReservoir, Label: "HW", Elevation: floatPtr(152)},
	}

	dot := ToDOT(nodes, nil, Options{Detailed: true})

	if !strings.Contains(dot, "elev: 152") {
		t.Error("detailed label missing elevation")
	}
	if !strings.Contains(dot, "reservoir") {
		t.Error("detailed label missing node type")
	}
}

func TestToDOTSkipsDanglingEdges(t *testing.T) {
	nodes := []network.Node{{ID: 1, Type: network.NodeReservoir}}
	edges := []network.Edge{
		{ID: 2, Source: 1, Target: 99, Type: network.EdgeConduit},
	}

	dot := ToDOT(nodes, edges, Options{})

	if strings.Contains(dot, "->") {
		t.Error("dangling edge was emitted")
	}
}

func TestToDOTFallbackLabel(t *testing.T) {
	nodes := []network.Node{{ID: 7, Type: network.NodeSimple}}

	dot := ToDOT(nodes, nil, Options{})

	if !strings.Contains(dot, `label="n7"`) {
		t.Error("unlabeled node did not fall back to its id name")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" width="120pt" height="50pt" viewBox="0.00 0.00 120.75 50.25">
<g></g>
</svg>`)

	out := normalizeViewBox(in)

	if !strings.Contains(string(out), `viewBox="0 0 120.75 50.25"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(string(out), `width="121" height="50"`) {
		t.Errorf("dimensions not rewritten: %s", out)
	}
}

func TestNormalizeViewBoxPassthrough(t *testing.T) {
	in := []byte("<svg>no viewbox here</svg>")
	if got := normalizeViewBox(in); string(got) != string(in) {
		t.Error("input without a viewBox was modified")
	}
}
