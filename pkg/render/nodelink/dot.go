package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/hydrotools/penstock/pkg/network"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes hydraulic attributes in node labels.
	// When false, only the display label is shown.
	Detailed bool
}

// ToDOT converts a network snapshot to Graphviz DOT format for node-link
// visualization. The resulting DOT string can be rendered with [RenderSVG].
//
// Edges whose endpoints do not resolve to nodes are skipped, matching the
// diagram renderer's tolerance for dangling references.
func ToDOT(nodes []network.Node, edges []network.Edge, opts Options) string {
	known := make(map[int]bool, len(nodes))

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, n := range nodes {
		known[n.ID] = true
		fmt.Fprintf(&buf, "  %q [label=%q%s];\n", nodeName(n.ID), fmtLabel(n, opts.Detailed), fmtAttrs(n))
	}

	buf.WriteString("\n")
	for _, e := range edges {
		if !known[e.Source] || !known[e.Target] {
			continue
		}
		style := ""
		if e.Type == network.EdgeDummy {
			style = " [style=dashed, color=grey, arrowhead=none]"
		}
		fmt.Fprintf(&buf, "  %q -> %q%s;\n", nodeName(e.Source), nodeName(e.Target), style)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeName(id int) string {
	return fmt.Sprintf("n%d", id)
}

func fmtLabel(n network.Node, detailed bool) string {
	label := n.Label
	if label == "" {
		label = nodeName(n.ID)
	}
	if !detailed {
		return label
	}

	out := label + "\n" + string(n.Type)
	if n.Elevation != nil {
		out += fmt.Sprintf("\nelev: %g", *n.Elevation)
	}
	if n.TopElevation != nil && n.BottomElevation != nil {
		out += fmt.Sprintf("\nrange: %g-%g", *n.BottomElevation, *n.TopElevation)
	}
	return out
}

func fmtAttrs(n network.Node) string {
	switch n.Type {
	case network.NodeReservoir:
		return ", fillcolor=lightblue"
	case network.NodeSurgeTank:
		return ", fillcolor=plum, height=1.0"
	case network.NodeFlowBoundary:
		return ", shape=cds, fillcolor=moccasin"
	case network.NodeJunction:
		return ", shape=circle, width=0.3, fixedsize=true, label=\"\""
	}
	return ""
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the Graphviz-emitted svg element so the viewBox
// starts at the origin and width/height match it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
