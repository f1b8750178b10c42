// Package io reads and writes network snapshot files.
//
// The JSON format is the editor's ingest/export boundary: a full graph
// snapshot with optional project name, computational parameters and output
// requests. Parsing other source formats (the legacy engine's text format)
// is a converter's job; this package only handles the canonical JSON shape.
package io
