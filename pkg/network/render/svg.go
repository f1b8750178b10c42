package render

import (
	"bytes"
	"fmt"
	"math"
	"slices"
	"unicode/utf8"

	svg "github.com/ajstarks/svgo"

	"github.com/hydrotools/penstock/pkg/network"
	"github.com/hydrotools/penstock/pkg/network/layout"
)

// Options configures diagram rendering.
type Options struct {
	// ShowLabels adds a text label to every node and edge. Edge labels get
	// an auto-sized background rectangle to stay legible over crossings.
	ShowLabels bool

	// Layout overrides the diagram geometry. The zero value selects
	// layout.DefaultOptions.
	Layout layout.Options
}

// Stroke colors for the fixed visual encoding.
const (
	colorConduit   = "#2b6cb0"
	colorDummy     = "#999999"
	colorReservoir = "#2b6cb0"
	colorJunction  = "#2f855a"
	colorSurgeTank = "#6b46c1"
	colorFlow      = "#c05621"
	colorNeutral   = "#a0aec0"
)

const arrowMarkerID = "arrowhead"

// SVG renders the network as a self-contained vector-markup document.
//
// SVG is pure: it takes a defensive copy of the node list, never mutates
// caller-owned state, and produces identical output for identical input.
// Edges whose source or target cannot be resolved to a positioned node are
// skipped silently.
func SVG(nodes []network.Node, edges []network.Edge, opts Options) string {
	nodes = slices.Clone(nodes)

	lopts := opts.Layout
	if lopts == (layout.Options{}) {
		lopts = layout.DefaultOptions()
	}
	res := layout.Compute(nodes, edges, lopts)

	byID := make(map[int]network.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(round(res.Width), round(res.Height))

	canvas.Def()
	canvas.Marker(arrowMarkerID, 10, 5, 12, 10, `orient="auto"`, `markerUnits="userSpaceOnUse"`)
	canvas.Path("M0,0 L10,5 L0,10 z", "fill:"+colorConduit)
	canvas.MarkerEnd()
	canvas.DefEnd()

	// Edges first so nodes draw on top of their endpoints.
	for _, e := range edges {
		src, okS := byID[e.Source]
		dst, okD := byID[e.Target]
		if !okS || !okD {
			continue
		}
		ps, okS := res.Positions[src.ID]
		pd, okD := res.Positions[dst.ID]
		if !okS || !okD {
			continue
		}
		drawEdge(canvas, e, ps, pd, opts.ShowLabels)
	}

	for _, n := range nodes {
		p, ok := res.Positions[n.ID]
		if !ok {
			continue
		}
		drawNode(canvas, n, p, opts.ShowLabels)
	}

	canvas.End()
	return buf.String()
}

// drawEdge emits a quadratic curve bowed away from the chord, plus an
// invisible wide hit-area stroke for interaction affordance.
func drawEdge(canvas *svg.SVG, e network.Edge, src, dst layout.Placement, showLabel bool) {
	cx, cy := edgeControl(src.X, src.Y, dst.X, dst.Y)

	canvas.Group(`class="edge"`)
	canvas.Title(edgeTooltip(e))

	stroke := "fill:none;stroke:" + colorConduit + ";stroke-width:2"
	switch {
	case e.Type == network.EdgeDummy:
		stroke = "fill:none;stroke:" + colorDummy + ";stroke-width:2;stroke-dasharray:6,4"
		canvas.Qbez(round(src.X), round(src.Y), round(cx), round(cy), round(dst.X), round(dst.Y), stroke)
	default:
		canvas.Qbez(round(src.X), round(src.Y), round(cx), round(cy), round(dst.X), round(dst.Y),
			stroke, fmt.Sprintf(`marker-end="url(#%s)"`, arrowMarkerID))
	}

	// Invisible wide stroke so hover and click targets are forgiving.
	canvas.Qbez(round(src.X), round(src.Y), round(cx), round(cy), round(dst.X), round(dst.Y),
		"fill:none;stroke:#000;stroke-opacity:0;stroke-width:16")

	if showLabel && e.Label != "" {
		// Midpoint of the quadratic curve.
		lx := 0.25*src.X + 0.5*cx + 0.25*dst.X
		ly := 0.25*src.Y + 0.5*cy + 0.25*dst.Y
		w := utf8.RuneCountInString(e.Label)*8 + 12
		canvas.CenterRect(round(lx), round(ly), w, 18, "fill:#ffffff;stroke:#cbd5e0")
		canvas.Text(round(lx), round(ly)+4, e.Label,
			"font-size:11px;text-anchor:middle;fill:#2d3748")
	}

	canvas.Gend()
}

// edgeControl returns the quadratic control point: the chord midpoint offset
// perpendicular to the chord by 10% of the vertical delta between endpoints.
// This visually separates near-parallel routes.
func edgeControl(x1, y1, x2, y2 float64) (float64, float64) {
	mx, my := (x1+x2)/2, (y1+y2)/2
	dx, dy := x2-x1, y2-y1
	l := math.Hypot(dx, dy)
	if l == 0 {
		return mx, my
	}
	off := 0.1 * dy
	return mx + (-dy/l)*off, my + (dx/l)*off
}

func drawNode(canvas *svg.SVG, n network.Node, p layout.Placement, showLabel bool) {
	x, y := round(p.X), round(p.Y)

	canvas.Group(`class="node"`)
	canvas.Title(nodeTooltip(n))

	switch n.Type {
	case network.NodeReservoir:
		canvas.CenterRect(x, y, 64, 32, "fill:"+colorReservoir+";stroke:#1a4971")
		canvas.Text(x, y+4, orDefault(n.Label, "HW"),
			"font-size:12px;text-anchor:middle;fill:#ffffff")
	case network.NodeJunction:
		canvas.Circle(x, y, 7, "fill:"+colorJunction)
	case network.NodeSurgeTank:
		canvas.CenterRect(x, y, 22, 56, "fill:"+colorSurgeTank+";stroke:#44337a")
		canvas.Text(x, y+4, "ST", "font-size:10px;text-anchor:middle;fill:#ffffff")
	case network.NodeFlowBoundary:
		canvas.Polygon(
			[]int{x - 12, x - 12, x + 14},
			[]int{y - 12, y + 12, y},
			"fill:"+colorFlow+";stroke:#7b341e")
		canvas.Text(x, y+24, orDefault(n.Label, "FB"),
			"font-size:11px;text-anchor:middle;fill:#2d3748")
	default:
		canvas.Circle(x, y, 6, "fill:"+colorNeutral)
	}

	if showLabel && n.Label != "" && n.Type != network.NodeReservoir && n.Type != network.NodeFlowBoundary {
		canvas.Text(x, y+24, n.Label, "font-size:11px;text-anchor:middle;fill:#2d3748")
	}

	canvas.Gend()
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func round(v float64) int {
	return int(math.Round(v))
}
