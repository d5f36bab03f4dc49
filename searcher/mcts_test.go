package searcher

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/EmoruwaTolu/ShowdownBattler/belief"
	"github.com/EmoruwaTolu/ShowdownBattler/game"
)

// searchFixture wires a dex, a populated belief store, and our side for a
// garchomp-versus-magnezone decision where earthquake is clearly best.
type searchFixture struct {
	dex  *game.Dex
	us   game.Side
	opp  game.OpponentPublic
	snap *belief.Snapshot
}

func newSearchFixture(t *testing.T) searchFixture {
	t.Helper()
	dex := game.DefaultDex()

	data, ok := dex.SpeciesByName("garchomp")
	require.True(t, ok)
	us := game.Side{Team: []game.Pokemon{{
		Species: data.Name,
		Level:   data.Level,
		Types:   data.Types,
		Stats:   game.CalcStats(data.BaseStats, data.Level),
		Moves:   []string{"earthquake", "icefang"},
		HP:      1.0,
	}}}

	store := belief.NewStore(dex, belief.Roster{TeamSize: 1})
	require.NoError(t, store.Observe(belief.SpeciesRevealed{Slot: 0, Species: "magnezone"}))

	opp := game.OpponentPublic{
		ActiveSlot: 0,
		TeamSize:   1,
		Mons:       []game.PublicMon{{Slot: 0, Species: "magnezone", HP: 1.0}},
	}

	return searchFixture{dex: dex, us: us, opp: opp, snap: store.Snapshot()}
}

func (f searchFixture) mcts(options ...Option) *MCTS {
	return NewMCTS(f.dex, belief.NewDeterminizer(f.dex, 0), options...)
}

func TestChooseActionFindsDominantMove(t *testing.T) {
	f := newSearchFixture(t)
	m := f.mcts(WithSimulations(10000), WithMetrics())

	decision, err := m.ChooseAction(context.Background(), f.us, f.opp, f.snap)

	require.NoError(t, err)
	require.Equal(t, game.Action{Type: game.MoveAction, Move: "earthquake"}, decision.Action,
		"a 4x super effective hit should dominate")
	require.Greater(t, decision.Policy[decision.Action], 0.9,
		"the dominant action should absorb nearly all visits")
	require.Equal(t, 10000, decision.Metric.Simulations)

	total := 0.0
	for _, p := range decision.Policy {
		require.GreaterOrEqual(t, p, 0.0)
		total += p
	}
	require.InDelta(t, 1.0, total, 1e-9, "policy should be a distribution over legal actions")
	require.Len(t, decision.Policy, 2, "single-mon side has exactly its two moves")
}

func TestChooseActionParallelVisitAccounting(t *testing.T) {
	f := newSearchFixture(t)
	m := f.mcts(WithSimulations(4000), WithGoroutines(8), WithMetrics())

	decision, err := m.ChooseAction(context.Background(), f.us, f.opp, f.snap)

	require.NoError(t, err)
	require.Equal(t, 4000, decision.Metric.Simulations)

	// Each simulation applies a virtual loss at the root and reverses it in
	// backup, so concurrent workers must land on exactly one net visit each.
	total := 0.0
	for _, v := range decision.root.visitStats(decision.legal) {
		require.GreaterOrEqual(t, v, 0.0, "torn counters would go negative")
		total += v
	}
	require.Equal(t, 4000.0, total, "every simulation books exactly one root visit")
	require.Equal(t, game.Action{Type: game.MoveAction, Move: "earthquake"}, decision.Action)
}

func TestChooseActionDeterministicPerSeed(t *testing.T) {
	f := newSearchFixture(t)

	run := func() Decision {
		m := f.mcts(WithSimulations(300), WithSeed(42))
		d, err := m.ChooseAction(context.Background(), f.us, f.opp, f.snap)
		require.NoError(t, err)
		return d
	}

	first := run()
	second := run()

	require.Equal(t, first.Action, second.Action)
	require.Equal(t, first.Policy, second.Policy, "one goroutine and a fixed seed must reproduce exactly")
	require.InDelta(t, first.RootValue, second.RootValue, 1e-12)
}

func TestChooseActionNoLegalActions(t *testing.T) {
	f := newSearchFixture(t)
	f.us.Team[0].HP = 0 // our whole side is down

	m := f.mcts(WithSimulations(10))
	_, err := m.ChooseAction(context.Background(), f.us, f.opp, f.snap)

	require.ErrorIs(t, err, ErrNoLegalActions)
}

func TestChooseActionHonorsContext(t *testing.T) {
	f := newSearchFixture(t)
	m := f.mcts(WithSimulations(100000))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	decision, err := m.ChooseAction(ctx, f.us, f.opp, f.snap)

	require.NoError(t, err, "a cancelled search still yields the partial answer")
	require.Contains(t, decision.Policy, decision.Action)
}

// brokenEvaluator returns garbage to exercise the boundary validation.
type brokenEvaluator struct{}

func (brokenEvaluator) ActionPriors(state *game.ShadowState, legal []game.Action) []float64 {
	out := make([]float64, len(legal))
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

func (brokenEvaluator) LeafValue(state *game.ShadowState) float64 {
	return math.Inf(1)
}

func TestChooseActionSurvivesBrokenEvaluator(t *testing.T) {
	f := newSearchFixture(t)
	m := f.mcts(WithSimulations(200), WithEvaluator(brokenEvaluator{}))

	decision, err := m.ChooseAction(context.Background(), f.us, f.opp, f.snap)

	require.NoError(t, err)
	require.False(t, math.IsNaN(decision.RootValue))
	require.False(t, math.IsInf(decision.RootValue, 0))
	for _, p := range decision.Policy {
		require.False(t, math.IsNaN(p))
	}
}

func TestNewMCTSRequiresBudget(t *testing.T) {
	f := newSearchFixture(t)
	require.Panics(t, func() {
		f.mcts()
	})
}

func TestPriorsSanitization(t *testing.T) {
	f := newSearchFixture(t)
	m := f.mcts(WithSimulations(1))
	state := game.NewShadowState(f.dex, f.us, f.us)
	legal := state.LegalActions()

	t.Run("valid priors are normalized", func(t *testing.T) {
		m.evaluate = game.NewHeuristic()
		priors := m.priors(state, legal)
		total := 0.0
		for _, p := range priors {
			total += p
		}
		require.InDelta(t, 1.0, total, 1e-9)
	})

	t.Run("NaN priors become uniform", func(t *testing.T) {
		m.evaluate = brokenEvaluator{}
		priors := m.priors(state, legal)
		for _, p := range priors {
			require.InDelta(t, 1.0/float64(len(legal)), p, 1e-9)
		}
	})
}

func TestFormatTree(t *testing.T) {
	f := newSearchFixture(t)
	m := f.mcts(WithSimulations(100))

	decision, err := m.ChooseAction(context.Background(), f.us, f.opp, f.snap)
	require.NoError(t, err)

	out := FormatTree(decision, 2, 3)

	require.Contains(t, out, "ROOT")
	require.Contains(t, out, "earthquake")
	require.Contains(t, strings.ToLower(out), "n=", "per-edge visit counts should be printed")

	require.Equal(t, "(no search tree)", FormatTree(Decision{}, 2, 3))
}
