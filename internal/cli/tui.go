package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	netio "github.com/hydrotools/penstock/pkg/io"
	"github.com/hydrotools/penstock/pkg/network"
)

// =============================================================================
// Editor Model
// =============================================================================

// editorModel is the bubbletea model for the interactive network editor.
type editorModel struct {
	store   *network.Store
	path    string
	cursor  int // index into the combined node list
	connect int // source node id while in connect mode, 0 otherwise
	status  string
	saveErr error
}

func newEditorModel(store *network.Store, path string) editorModel {
	return editorModel{store: store, path: path}
}

func (m editorModel) Init() tea.Cmd {
	return nil
}

// syncSelection mirrors the cursor into the store's selection state.
// Selection is untracked, so moving the cursor never pollutes history.
func (m editorModel) syncSelection(nodes []network.Node) {
	if len(nodes) == 0 {
		m.store.ClearSelection()
		return
	}
	m.store.Select(nodes[m.cursor].ID, network.KindNode)
}

// sortedNodes returns the store's nodes ordered by id for stable display.
func (m editorModel) sortedNodes() []network.Node {
	nodes := m.store.Nodes()
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return nodes
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	nodes := m.sortedNodes()

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.syncSelection(nodes)
		return m, nil

	case "down", "j":
		if m.cursor < len(nodes)-1 {
			m.cursor++
		}
		m.syncSelection(nodes)
		return m, nil
	}

	if m.store.Locked() {
		switch key.String() {
		case "L":
			m.store.SetLocked(false)
			m.status = "unlocked"
		default:
			m.status = "network is locked (press L to unlock)"
		}
		return m, nil
	}

	switch key.String() {
	case "r":
		n := m.store.AddNode(network.NodeReservoir, network.Position{})
		m.status = fmt.Sprintf("added reservoir %s (id=%d)", n.Label, n.ID)

	case "n":
		n := m.store.AddNode(network.NodeSimple, network.Position{})
		m.status = fmt.Sprintf("added node %s (id=%d)", n.Label, n.ID)

	case "t":
		n := m.store.AddNode(network.NodeSurgeTank, network.Position{})
		m.status = fmt.Sprintf("added surge tank %s (id=%d)", n.Label, n.ID)

	case "b":
		n := m.store.AddNode(network.NodeFlowBoundary, network.Position{})
		m.status = fmt.Sprintf("added flow boundary %s (id=%d)", n.Label, n.ID)

	case "c":
		if len(nodes) == 0 {
			break
		}
		target := nodes[m.cursor].ID
		if m.connect == 0 {
			m.connect = target
			m.status = fmt.Sprintf("connecting from node %d, select target and press c", target)
			break
		}
		if m.connect == target {
			m.status = "cannot connect a node to itself"
			m.connect = 0
			break
		}
		e := m.store.Connect(m.connect, target)
		m.status = fmt.Sprintf("connected %d -> %d (%s)", e.Source, e.Target, e.Label)
		m.connect = 0

	case "d":
		if len(nodes) == 0 {
			break
		}
		id := nodes[m.cursor].ID
		m.store.Delete(id, network.KindNode)
		m.status = fmt.Sprintf("deleted node %d", id)
		if m.cursor >= m.store.NodeCount() && m.cursor > 0 {
			m.cursor--
		}

	case "u":
		if m.store.Undo() {
			m.status = "undo"
		} else {
			m.status = "nothing to undo"
		}

	case "ctrl+r":
		if m.store.Redo() {
			m.status = "redo"
		} else {
			m.status = "nothing to redo"
		}

	case "L":
		m.store.SetLocked(true)
		m.status = "locked"

	case "s":
		if err := netio.ExportJSON(netio.FromStore(m.store), m.path); err != nil {
			m.saveErr = err
			m.status = errorStyle.Render("save failed: " + err.Error())
			break
		}
		m.saveErr = nil
		m.status = "saved to " + m.path

	case "esc":
		m.connect = 0
		m.status = ""
	}

	return m, nil
}

func (m editorModel) View() string {
	var b strings.Builder

	name := m.store.ProjectName()
	if name == "" {
		name = "untitled"
	}
	title := name
	if m.store.Locked() {
		title += lockedStyle.Render(" [locked]")
	}
	b.WriteString(titleStyle.Render("penstock: "+title) + "\n\n")

	nodes := m.sortedNodes()
	if len(nodes) == 0 {
		b.WriteString(statusStyle.Render("no nodes yet") + "\n")
	}
	for i, n := range nodes {
		line := fmt.Sprintf("%3d  %-12s %s", n.ID, n.Type, n.Label)
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		if m.connect == n.ID {
			line += statusStyle.Render("  (connecting...)")
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + statusStyle.Render(fmt.Sprintf(
		"%d nodes, %d edges, undo %d, redo %d",
		m.store.NodeCount(), m.store.EdgeCount(),
		m.store.UndoDepth(), m.store.RedoDepth())) + "\n")

	if m.status != "" {
		b.WriteString(m.status + "\n")
	}

	b.WriteString("\n" + helpStyle.Render(
		"r/n/t/b add node · c connect · d delete · u undo · ctrl+r redo · L lock · s save · q quit"))

	return b.String()
}
