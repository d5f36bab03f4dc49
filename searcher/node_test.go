package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/EmoruwaTolu/ShowdownBattler/game"
)

func TestSelectEdge(t *testing.T) {
	a := game.Action{Type: game.MoveAction, Move: "earthquake"}
	b := game.Action{Type: game.MoveAction, Move: "icefang"}
	legal := []game.Action{a, b}

	t.Run("unvisited node follows the prior", func(t *testing.T) {
		n := newNode()
		n.expand(legal, []float64{0.8, 0.2})

		action, e := n.selectEdge(legal, 1.6)

		require.Equal(t, a, action)
		require.Same(t, n.edges[a], e)
	})

	t.Run("value can overcome a weaker prior", func(t *testing.T) {
		n := newNode()
		n.expand(legal, []float64{0.8, 0.2})
		n.edges[a].visits = 10
		n.edges[a].value = -8 // consistently bad
		n.edges[b].visits = 10
		n.edges[b].value = 9 // consistently good

		action, _ := n.selectEdge(legal, 1.6)

		require.Equal(t, b, action)
	})

	t.Run("actions outside this determinization's legal set are skipped", func(t *testing.T) {
		n := newNode()
		n.expand(legal, []float64{0.5, 0.5})

		action, _ := n.selectEdge([]game.Action{b}, 1.6)

		require.Equal(t, b, action)
	})

	t.Run("a late-appearing legal action gets a lazy uniform edge", func(t *testing.T) {
		n := newNode()
		n.expand(legal, []float64{0.5, 0.5})
		c := game.Action{Type: game.SwitchAction, Switch: 2}

		_, _ = n.selectEdge([]game.Action{a, b, c}, 1.6)

		require.Contains(t, n.edges, c)
		require.InDelta(t, 1.0/3.0, n.edges[c].prior, 1e-9)
	})
}

func TestVirtualLoss(t *testing.T) {
	e := &edge{child: newNode()}

	e.applyLoss()
	require.Equal(t, 1.0, e.visits)
	require.Equal(t, Loss, e.value)
	require.Equal(t, Loss, e.q(), "an in-flight simulation should look like a loss")

	e.reverseLoss()
	require.Equal(t, 0.0, e.visits)
	require.Equal(t, 0.0, e.value)
	require.Equal(t, 0.0, e.q())
}

func TestBackup(t *testing.T) {
	n1, n2 := newNode(), newNode()
	e1 := &edge{child: n2}
	e2 := &edge{child: newNode()}
	e1.applyLoss()
	e2.applyLoss()

	backup([]pathStep{{node: n1, edge: e1}, {node: n2, edge: e2}}, 0.7)

	for _, e := range []*edge{e1, e2} {
		require.Equal(t, 1.0, e.visits)
		require.InDelta(t, 0.7, e.value, 1e-9, "virtual loss should be fully reversed")
	}
}

func TestMeanValue(t *testing.T) {
	n := newNode()
	a := game.Action{Type: game.MoveAction, Move: "earthquake"}
	b := game.Action{Type: game.MoveAction, Move: "icefang"}
	n.expand([]game.Action{a, b}, []float64{0.5, 0.5})

	require.Equal(t, 0.0, n.meanValue(), "unvisited node is neutral")

	n.edges[a].visits = 3
	n.edges[a].value = 1.5
	n.edges[b].visits = 1
	n.edges[b].value = -0.5

	require.InDelta(t, 0.25, n.meanValue(), 1e-9)
}
