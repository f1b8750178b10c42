package render

import (
	"fmt"
	"strings"

	"github.com/hydrotools/penstock/pkg/network"
)

// tooltipSep joins the attribute fragments of a hover tooltip.
const tooltipSep = " | "

// nodeTooltip concatenates id, type and every defined attribute.
// Unset optional fields are skipped.
func nodeTooltip(n network.Node) string {
	parts := []string{
		fmt.Sprintf("id=%d", n.ID),
		fmt.Sprintf("type=%s", n.Type),
	}
	if n.Label != "" {
		parts = append(parts, "label="+n.Label)
	}
	parts = appendFloat(parts, "elevation", n.Elevation)
	parts = appendFloat(parts, "top_elevation", n.TopElevation)
	parts = appendFloat(parts, "bottom_elevation", n.BottomElevation)
	parts = appendFloat(parts, "diameter", n.Diameter)
	parts = appendFloat(parts, "celerity", n.Celerity)
	parts = appendFloat(parts, "friction", n.Friction)
	if n.Schedule != nil {
		parts = append(parts, fmt.Sprintf("schedule=%d", *n.Schedule))
	}
	if n.Comment != "" {
		parts = append(parts, "comment="+n.Comment)
	}
	return strings.Join(parts, tooltipSep)
}

func edgeTooltip(e network.Edge) string {
	parts := []string{
		fmt.Sprintf("id=%d", e.ID),
		fmt.Sprintf("type=%s", e.Type),
	}
	if e.Label != "" {
		parts = append(parts, "label="+e.Label)
	}
	parts = appendFloat(parts, "length", e.Length)
	parts = appendFloat(parts, "diameter", e.Diameter)
	parts = appendFloat(parts, "celerity", e.Celerity)
	parts = appendFloat(parts, "friction", e.Friction)
	if e.Segments != nil {
		parts = append(parts, fmt.Sprintf("segments=%d", *e.Segments))
	}
	return strings.Join(parts, tooltipSep)
}

func appendFloat(parts []string, name string, v *float64) []string {
	if v == nil {
		return parts
	}
	return append(parts, fmt.Sprintf("%s=%g", name, *v))
}
