package layout

import (
	"github.com/hydrotools/penstock/pkg/network"
)

// Options controls the geometry of the layered layout.
type Options struct {
	MarginX  float64 // left margin before the first column
	HSpacing float64 // horizontal distance between columns
	VSpacing float64 // vertical distance between nodes in a column
	Height   float64 // fixed canvas height
	MinWidth float64 // lower bound for the computed canvas width
}

// DefaultOptions returns the standard diagram geometry.
func DefaultOptions() Options {
	return Options{
		MarginX:  60,
		HSpacing: 180,
		VSpacing: 90,
		Height:   600,
		MinWidth: 400,
	}
}

// Placement is the computed position of one node.
type Placement struct {
	Level int     // breadth-first distance tier from the nearest reservoir
	X     float64 // column pixel position
	Y     float64 // row pixel position within the column
}

// Result holds per-node placements and the canvas dimensions.
type Result struct {
	Positions map[int]Placement
	Width     float64
	Height    float64
}

// Compute assigns every node a column (level) and a row pixel position.
//
// Levels are breadth-first distance tiers from the reservoir nodes: all
// reservoirs sit at level 0, and a node reachable over multiple paths
// converges to the maximum path length from any root, not the first-seen
// length, capped at the node count minus one so cyclic routes terminate.
// Nodes unreachable from any reservoir default to level 0, so a level-0
// bucket may contain non-reservoir nodes.
//
// Compute is pure and deterministic: identical input (same node order, same
// edges) always yields identical coordinates.
func Compute(nodes []network.Node, edges []network.Edge, opts Options) Result {
	levels := assignLevels(nodes, edges)

	// Bucket nodes per level, preserving input ordering within each bucket.
	buckets := make(map[int][]int)
	maxLevel := 0
	for _, n := range nodes {
		lvl := levels[n.ID]
		buckets[lvl] = append(buckets[lvl], n.ID)
		if lvl > maxLevel {
			maxLevel = lvl
		}
	}

	positions := make(map[int]Placement, len(nodes))
	for lvl, ids := range buckets {
		x := opts.MarginX + float64(lvl)*opts.HSpacing
		startY := (opts.Height - float64(len(ids)-1)*opts.VSpacing) / 2
		for i, id := range ids {
			positions[id] = Placement{
				Level: lvl,
				X:     x,
				Y:     startY + float64(i)*opts.VSpacing,
			}
		}
	}

	width := float64(len(buckets)+1) * opts.HSpacing
	if width < opts.MinWidth {
		width = opts.MinWidth
	}

	return Result{Positions: positions, Width: width, Height: opts.Height}
}

// assignLevels runs the multi-source breadth-first propagation. The root set
// is every reservoir node; each successor is raised to
// max(current level, parent level + 1) and re-enqueued whenever its level
// increases.
//
// Levels are capped at len(nodes)-1, the longest possible simple path. The
// cap makes the propagation terminate on cyclic graphs (looped pipe
// networks), where each lap around a cycle would otherwise keep raising
// every member's level forever.
func assignLevels(nodes []network.Node, edges []network.Edge) map[int]int {
	known := make(map[int]bool, len(nodes))
	for _, n := range nodes {
		known[n.ID] = true
	}

	succ := make(map[int][]int)
	for _, e := range edges {
		if !known[e.Source] || !known[e.Target] {
			continue // dangling reference, filtered not fatal
		}
		succ[e.Source] = append(succ[e.Source], e.Target)
	}

	levels := make(map[int]int, len(nodes))
	assigned := make(map[int]bool, len(nodes))

	var queue []int
	for _, n := range nodes {
		if n.Type == network.NodeReservoir {
			levels[n.ID] = 0
			assigned[n.ID] = true
			queue = append(queue, n.ID)
		}
	}

	maxLevel := len(nodes) - 1
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, next := range succ[curr] {
			candidate := levels[curr] + 1
			if candidate > maxLevel {
				continue // back-edge of a cycle, level already saturated
			}
			if !assigned[next] || candidate > levels[next] {
				levels[next] = candidate
				assigned[next] = true
				queue = append(queue, next)
			}
		}
	}

	// Unreached nodes keep the zero value: level 0.
	for _, n := range nodes {
		if !assigned[n.ID] {
			levels[n.ID] = 0
		}
	}

	return levels
}
