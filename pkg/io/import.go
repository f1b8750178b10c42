package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hydrotools/penstock/pkg/network"
)

// File is the wire format for a full network snapshot, as produced by the
// editor's save operation and by the legacy text-format converter.
type File struct {
	ProjectName string                       `json:"project_name,omitempty"`
	Nodes       []network.Node               `json:"nodes"`
	Edges       []network.Edge               `json:"edges"`
	Params      *network.ComputationalParams `json:"computational_params,omitempty"`
	Requests    []network.OutputRequest      `json:"output_requests,omitempty"`
}

// Snapshot converts the file into a store-loadable snapshot. A missing
// params block maps to the zero value, which Store.Load treats as "keep
// current parameters".
func (f File) Snapshot() network.Snapshot {
	s := network.Snapshot{
		Nodes:    f.Nodes,
		Edges:    f.Edges,
		Requests: f.Requests,
	}
	if f.Params != nil {
		s.Params = *f.Params
	}
	return s
}

// ReadJSON decodes a network snapshot file from r.
//
// The input must be a JSON object with "nodes" and "edges" arrays; project
// name, computational parameters and output requests are optional. Nested
// legacy "variable" objects on edges are preserved here and flattened later
// by Store.Load.
//
// ReadJSON does not validate referential integrity: edges referencing
// unknown node ids decode fine and are filtered at render time. Detecting a
// semantically empty file (zero nodes) is the caller's responsibility.
func ReadJSON(r io.Reader) (File, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return File{}, fmt.Errorf("decode: %w", err)
	}
	return f, nil
}

// ImportJSON reads the snapshot file at path.
func ImportJSON(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
