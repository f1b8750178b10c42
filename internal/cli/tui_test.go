package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hydrotools/penstock/pkg/network"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m editorModel, keys ...string) editorModel {
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(editorModel)
	}
	return m
}

func TestEditorAddsNodes(t *testing.T) {
	store := network.NewStore()
	m := press(newEditorModel(store, "test.json"), "r", "n", "t", "b")

	if store.NodeCount() != 4 {
		t.Fatalf("node count = %d, want 4", store.NodeCount())
	}
	nodes := store.Nodes()
	types := []network.NodeType{nodes[0].Type, nodes[1].Type, nodes[2].Type, nodes[3].Type}
	want := []network.NodeType{
		network.NodeReservoir, network.NodeSimple,
		network.NodeSurgeTank, network.NodeFlowBoundary,
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("node %d type = %s, want %s", i, types[i], want[i])
		}
	}
	if m.status == "" {
		t.Error("status line empty after adding nodes")
	}
}

func TestEditorConnectFlow(t *testing.T) {
	store := network.NewStore()
	m := press(newEditorModel(store, "test.json"), "r", "n")

	// Select node 1, start connecting, move to node 2, finish.
	m = press(m, "c", "j", "c")

	if store.EdgeCount() != 1 {
		t.Fatalf("edge count = %d, want 1", store.EdgeCount())
	}
	e := store.Edges()[0]
	if e.Source != 1 || e.Target != 2 {
		t.Errorf("edge = %d -> %d, want 1 -> 2", e.Source, e.Target)
	}
	if m.connect != 0 {
		t.Error("connect mode still active after completing a connection")
	}
}

func TestEditorRejectsSelfConnection(t *testing.T) {
	store := network.NewStore()
	m := press(newEditorModel(store, "test.json"), "r")

	m = press(m, "c", "c")

	if store.EdgeCount() != 0 {
		t.Errorf("edge count = %d, want 0 (self-loop rejected)", store.EdgeCount())
	}
	if m.connect != 0 {
		t.Error("connect mode not reset after rejected self-loop")
	}
}

func TestEditorUndoKey(t *testing.T) {
	store := network.NewStore()
	m := press(newEditorModel(store, "test.json"), "r", "u")

	if store.NodeCount() != 0 {
		t.Errorf("node count after undo = %d, want 0", store.NodeCount())
	}
	m = press(m, "u")
	if m.status != "nothing to undo" {
		t.Errorf("status = %q, want nothing to undo", m.status)
	}
}

func TestEditorLockBlocksMutations(t *testing.T) {
	store := network.NewStore()
	m := press(newEditorModel(store, "test.json"), "L", "r")

	if store.NodeCount() != 0 {
		t.Errorf("locked editor still added a node")
	}

	m = press(m, "L", "r")
	if store.NodeCount() != 1 {
		t.Errorf("node count after unlock = %d, want 1", store.NodeCount())
	}
	_ = m
}

func TestEditorViewRendersState(t *testing.T) {
	store := network.NewStore()
	store.SetProjectName("plant-a")
	m := press(newEditorModel(store, "test.json"), "r")

	view := m.View()
	if view == "" {
		t.Fatal("empty view")
	}
	for _, want := range []string{"plant-a", "HW", "1 nodes, 0 edges"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
