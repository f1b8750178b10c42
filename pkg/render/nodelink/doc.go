// Package nodelink renders networks as classic node-link diagrams via
// Graphviz.
//
// This is the alternative to the layered diagram in pkg/network/render: the
// network is exported to DOT and Graphviz computes the geometry. Useful for
// quick topology inspection and for embedding in tools that already consume
// DOT.
package nodelink
