package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNodes() []*Node {
	return []*Node{
		{
			ID:      "start",
			TextKey: "welcome",
			Edges: []Edge{
				{Label: "Files", Target: "files"},
				{Label: "Deep", Target: "level1"},
			},
		},
		{
			ID:      "files",
			TextKey: "files",
			Edges:   []Edge{{Label: "Back", Target: "start"}},
		},
		{
			ID:      "level1",
			TextKey: "level1",
			Edges:   []Edge{{Label: "Down", Target: "level2"}, {Label: "Back", Target: "start"}},
		},
		{
			ID:      "level2",
			TextKey: "level2",
			Edges:   []Edge{{Label: "Send", Target: "send"}, {Label: "Back", Target: "level1"}},
		},
		{
			ID:     "send",
			Action: Action{Kind: ActionSendDocument, DocID: "file.pdf"},
			// Shortcut: back jumps over level2 straight to level1's parent.
			Edges: []Edge{{Label: "Back", Target: "start"}},
		},
	}
}

func TestNewGraphValidates(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func([]*Node) []*Node
		start   string
		wantErr string
	}{
		{
			name:   "valid graph",
			mutate: func(n []*Node) []*Node { return n },
			start:  "start",
		},
		{
			name:    "missing start node",
			mutate:  func(n []*Node) []*Node { return n },
			start:   "nope",
			wantErr: "start node",
		},
		{
			name: "edge to unknown node",
			mutate: func(n []*Node) []*Node {
				n[0].Edges = append(n[0].Edges, Edge{Label: "X", Target: "ghost"})
				return n
			},
			start:   "start",
			wantErr: "unknown node",
		},
		{
			name: "duplicate node ID",
			mutate: func(n []*Node) []*Node {
				return append(n, &Node{ID: "start", TextKey: "again"})
			},
			start:   "start",
			wantErr: "duplicate",
		},
		{
			name: "send-document node without document",
			mutate: func(n []*Node) []*Node {
				n[4].Action.DocID = ""
				return n
			},
			start:   "start",
			wantErr: "names none",
		},
		{
			name: "screen node without text",
			mutate: func(n []*Node) []*Node {
				n[1].TextKey = ""
				return n
			},
			start:   "start",
			wantErr: "no text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGraph(tt.mutate(testNodes()), tt.start)
			if tt.wantErr == "" {
				require.NoError(t, err)
				require.NotNil(t, g)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTransition(t *testing.T) {
	g, err := NewGraph(testNodes(), "start")
	require.NoError(t, err)

	node, err := g.Transition("files")
	require.NoError(t, err)
	assert.Equal(t, "files", node.ID)

	_, err = g.Transition("not_configured")
	assert.ErrorIs(t, err, ErrUnknownTransition)
}

func TestBackEdgeMayJumpToNonParentAncestor(t *testing.T) {
	g, err := NewGraph(testNodes(), "start")
	require.NoError(t, err)

	// send is reached start -> level1 -> level2 -> send, but its back edge
	// jumps straight to start.
	node, err := g.Transition("send")
	require.NoError(t, err)
	require.Len(t, node.Edges, 1)
	assert.Equal(t, "start", node.Edges[0].Target)
}

func TestKeyboardRendersEdgesInOrder(t *testing.T) {
	g, err := NewGraph(testNodes(), "start")
	require.NoError(t, err)

	kb := g.Start().Keyboard()
	require.Len(t, kb, 2)
	assert.Equal(t, "Files", kb[0][0].Label)
	assert.Equal(t, "files", kb[0][0].Payload)
	assert.Equal(t, "Deep", kb[1][0].Label)

	leaf := &Node{ID: "x", TextKey: "x"}
	assert.Nil(t, leaf.Keyboard())
}
