package menu

import (
	"errors"
	"fmt"

	"github.com/likhanovw/redTripwireBot/internal/transport"
)

// ErrUnknownTransition is returned when a button payload does not name a
// configured node. Payloads are generated by the bot itself, so this is a
// programming or configuration error, never user input.
var ErrUnknownTransition = errors.New("menu: unknown transition payload")

// ActionKind is the closed set of terminal actions a node may carry.
type ActionKind int

const (
	// ActionNone: the node is a plain screen fanning out to more buttons.
	ActionNone ActionKind = iota
	// ActionSendDocument: send the document named by Action.DocID.
	ActionSendDocument
	// ActionShowText: render the message named by the node's TextKey.
	ActionShowText
	// ActionRequestContact: show the share-contact reply keyboard.
	ActionRequestContact
	// ActionShowStats: render the user's stored data and store statistics.
	ActionShowStats
)

// Action is a node's terminal effect.
type Action struct {
	Kind  ActionKind
	DocID string
}

// Edge is one ordered (label, target) transition out of a node. Back edges
// are explicit named edges and may jump to a non-parent ancestor; shortcut
// navigation is configured, not computed from a stack.
type Edge struct {
	Label  string
	Target string
}

// Node is a named point in the navigation graph.
type Node struct {
	ID      string
	TextKey string
	Edges   []Edge
	Action  Action
}

// Keyboard renders the node's edges as one button per row, payload being the
// target node ID.
func (n *Node) Keyboard() [][]transport.Button {
	if len(n.Edges) == 0 {
		return nil
	}
	rows := make([][]transport.Button, 0, len(n.Edges))
	for _, e := range n.Edges {
		rows = append(rows, transport.Row(e.Label, e.Target))
	}
	return rows
}

// Graph is the immutable navigation graph, built once at startup.
type Graph struct {
	nodes map[string]*Node
	start string
}

// NewGraph validates the node set and builds the graph. Every edge target
// must resolve to a node, every send-document action must name a document,
// and the start node must exist. Validation failures are configuration
// errors and abort startup.
func NewGraph(nodes []*Node, start string) (*Graph, error) {
	index := make(map[string]*Node, len(nodes))
	for _, n := range nodes {
		if n.ID == "" {
			return nil, errors.New("menu: node with empty ID")
		}
		if _, dup := index[n.ID]; dup {
			return nil, fmt.Errorf("menu: duplicate node %q", n.ID)
		}
		index[n.ID] = n
	}

	if _, ok := index[start]; !ok {
		return nil, fmt.Errorf("menu: start node %q not defined", start)
	}

	for _, n := range nodes {
		for _, e := range n.Edges {
			if _, ok := index[e.Target]; !ok {
				return nil, fmt.Errorf("menu: node %q edge %q targets unknown node %q", n.ID, e.Label, e.Target)
			}
		}
		if n.Action.Kind == ActionSendDocument && n.Action.DocID == "" {
			return nil, fmt.Errorf("menu: node %q sends a document but names none", n.ID)
		}
		if n.Action.Kind == ActionNone && n.TextKey == "" {
			return nil, fmt.Errorf("menu: screen node %q has no text", n.ID)
		}
	}

	return &Graph{nodes: index, start: start}, nil
}

// Start returns the main menu node.
func (g *Graph) Start() *Node {
	return g.nodes[g.start]
}

// Node looks up a node by ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Transition resolves a button payload to its destination node.
func (g *Graph) Transition(payload string) (*Node, error) {
	n, ok := g.nodes[payload]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransition, payload)
	}
	return n, nil
}
