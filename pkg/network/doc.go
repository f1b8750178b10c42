// Package network implements the topology model for hydraulic transient
// networks: reservoirs, junctions, surge tanks, flow boundaries and the
// conduits and dummy links connecting them.
//
// # Architecture
//
// The package centers on [Store], the single owner of the editable project
// state. Editor actions mutate the store; a render pass reads a [Snapshot]
// and hands it to the layout and render packages, which are pure and never
// touch stored state:
//
//	store := network.NewStore()
//	r := store.AddNode(network.NodeReservoir, network.Position{X: 0, Y: 0})
//	j := store.AddNode(network.NodeJunction, network.Position{X: 200, Y: 0})
//	store.Connect(r.ID, j.ID)
//
//	snap := store.Snapshot()
//	svg := render.SVG(snap.Nodes, snap.Edges, render.Options{ShowLabels: true})
//
// # History
//
// Every structural or parameter-affecting mutation snapshots the prior state
// before applying, bounded to [MaxHistory] entries. [Store.Undo] and
// [Store.Redo] walk the two stacks; both are no-ops when empty. Selection,
// the lock toggle and project renaming are deliberately not tracked, and
// [Store.Load] establishes a fresh baseline without pushing history.
//
// # Graceful degradation
//
// The store raises no errors in normal operation. Mutations addressed to a
// nonexistent id leave the collection unchanged, and edges whose endpoints
// no longer resolve are tolerated here and filtered at render time.
//
// # Concurrency
//
// Store has a single-writer contract and no internal locking. Construct one
// per editing session and inject it; callers that share a store across
// goroutines (e.g. an HTTP server) must serialize access themselves.
package network
