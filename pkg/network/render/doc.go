// Package render turns a network snapshot into a self-contained SVG diagram.
//
// The visual encoding is a fixed lookup table by element type: reservoirs
// are filled rectangles, junctions small circles, surge tanks tall
// rectangles, flow boundaries triangles; conduits draw as solid strokes with
// an arrowhead and dummy links as dashed gray strokes without one. Every
// element carries a hover tooltip listing its defined attributes.
//
// Rendering is a pure function over the snapshot: it invokes the layout
// engine internally, never mutates caller state, and silently skips edges
// whose endpoints do not resolve.
package render
