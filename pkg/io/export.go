package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hydrotools/penstock/pkg/network"
)

// FromStore captures the store's current state as a file.
func FromStore(s *network.Store) File {
	snap := s.Snapshot()
	params := snap.Params
	return File{
		ProjectName: s.ProjectName(),
		Nodes:       snap.Nodes,
		Edges:       snap.Edges,
		Params:      &params,
		Requests:    snap.Requests,
	}
}

// WriteJSON encodes a snapshot file as indented JSON to w.
// The output round-trips through [ReadJSON].
func WriteJSON(f File, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes the snapshot file to path with 0644 permissions.
func ExportJSON(f File, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()
	return WriteJSON(f, out)
}
