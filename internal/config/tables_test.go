package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/likhanovw/redTripwireBot/internal/menu"
)

func TestMenuGraphBuilds(t *testing.T) {
	g, err := menu.NewGraph(MenuNodes(), StartNode)
	require.NoError(t, err)
	require.NotNil(t, g.Start())
	assert.Equal(t, StartNode, g.Start().ID)
}

func TestEveryScreenHasConfiguredText(t *testing.T) {
	for _, node := range MenuNodes() {
		if node.Action.Kind == menu.ActionSendDocument || node.Action.Kind == menu.ActionShowStats {
			continue
		}
		_, ok := Messages[node.TextKey]
		assert.True(t, ok, "node %q references missing message %q", node.ID, node.TextKey)
	}
}

func TestKeywordRulesAreComplete(t *testing.T) {
	require.NotEmpty(t, KeywordRules)
	for _, rule := range KeywordRules {
		assert.NotEmpty(t, rule.Keyword)
		assert.NotEmpty(t, rule.DocumentID)
	}
}

func TestBriefDocumentConfigured(t *testing.T) {
	assert.Equal(t, "RED.brief.odt", Documents["brief"])
}

func TestBackShortcutsInAuditBranch(t *testing.T) {
	g, err := menu.NewGraph(MenuNodes(), StartNode)
	require.NoError(t, err)

	// The audit document screens are reached via own_team or outstaff, but
	// their back edges jump to has_product.
	for _, id := range []string{"audit_processes", "audit_product", "audit_outstaff"} {
		node, ok := g.Node(id)
		require.True(t, ok, "node %q missing", id)
		require.Len(t, node.Edges, 1)
		assert.Equal(t, "has_product", node.Edges[0].Target, "node %q back edge", id)
	}
}
