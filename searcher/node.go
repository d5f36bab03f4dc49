package searcher

import (
	"math"
	"sync"

	"github.com/EmoruwaTolu/ShowdownBattler/game"
)

// Loss is the virtual loss discouraging concurrent simulations from piling
// onto the same line; applied on selection, reversed at backup.
const Loss = -1.0

// node is one tree position, keyed by the path of our actions that reaches
// it. States are not stored: each simulation re-derives its own concrete
// state from a fresh determinization while descending.
type node struct {
	sync.Mutex
	edges    map[game.Action]*edge
	expanded bool
}

// edge carries the search statistics for one action at one node. Statistics
// are guarded by the owning node's lock, never the edge itself.
type edge struct {
	prior  float64
	visits float64
	value  float64 // cumulative backed-up value W
	child  *node
}

// pathStep pairs a traversed edge with the node that owns it, so backup can
// take the same lock selection holds when it touches the statistics.
type pathStep struct {
	node *node
	edge *edge
}

func newNode() *node {
	return &node{edges: make(map[game.Action]*edge)}
}

func (e *edge) q() float64 {
	if e.visits <= 0 {
		return 0
	}
	return e.value / e.visits
}

func (e *edge) applyLoss() {
	e.visits++
	e.value += Loss
}

func (e *edge) reverseLoss() {
	e.visits--
	e.value -= Loss
}

// expand creates one child edge per legal action with the given prior.
// Caller holds the node lock.
func (n *node) expand(legal []game.Action, priors []float64) {
	for i, a := range legal {
		if _, ok := n.edges[a]; !ok {
			n.edges[a] = &edge{prior: priors[i], child: newNode()}
		}
	}
	n.expanded = true
}

// selectEdge picks the action maximizing Q + c*P*sqrt(N_parent)/(1+n) among
// the actions legal in the current simulation's state. Actions that became
// legal only under this determinization get a uniform prior edge lazily.
// Caller holds the node lock.
func (n *node) selectEdge(legal []game.Action, cPuct float64) (game.Action, *edge) {
	parentVisits := 1.0
	for _, e := range n.edges {
		parentVisits += e.visits
	}
	sqrtN := math.Sqrt(parentVisits)

	var bestAction game.Action
	var best *edge
	bestScore := math.Inf(-1)
	for _, a := range legal {
		e, ok := n.edges[a]
		if !ok {
			e = &edge{prior: 1.0 / float64(len(legal)), child: newNode()}
			n.edges[a] = e
		}
		score := e.q() + cPuct*e.prior*sqrtN/(1+e.visits)
		if score > bestScore {
			bestScore = score
			bestAction, best = a, e
		}
	}
	return bestAction, best
}

// visitStats returns per-action visits restricted to the given actions.
// Used to turn root statistics into the output policy.
func (n *node) visitStats(legal []game.Action) map[game.Action]float64 {
	n.Lock()
	defer n.Unlock()
	out := make(map[game.Action]float64, len(legal))
	for _, a := range legal {
		if e, ok := n.edges[a]; ok && e.visits > 0 {
			out[a] = e.visits
		} else {
			out[a] = 0
		}
	}
	return out
}

// meanValue is the visit-weighted mean backed-up value across all edges.
func (n *node) meanValue() float64 {
	n.Lock()
	defer n.Unlock()
	var visits, value float64
	for _, e := range n.edges {
		visits += e.visits
		value += e.value
	}
	if visits <= 0 {
		return 0
	}
	return value / visits
}
