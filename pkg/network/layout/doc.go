// Package layout computes column/row coordinates for hydraulic network
// diagrams.
//
// The algorithm is a multi-source breadth-first level assignment: reservoirs
// form the root set at level 0, every other node lands at the maximum
// breadth-first distance from any reservoir, and nodes the propagation never
// reaches default to level 0. Levels become columns; nodes within a column
// are stacked and vertically centered.
//
// Compute is a pure function over a graph snapshot. It is safe to call
// repeatedly and concurrently on the same input and always produces
// identical coordinates for identical input.
package layout
