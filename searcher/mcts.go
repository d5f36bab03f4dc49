package searcher

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/EmoruwaTolu/ShowdownBattler/belief"
	"github.com/EmoruwaTolu/ShowdownBattler/game"
)

// ErrNoLegalActions reports a decision requested on a state with nothing to
// choose: a precondition violation on a well-formed battle state.
var ErrNoLegalActions = errors.New("no legal actions at the search root")

type Option func(m *MCTS)

// MCTS runs belief-aware PUCT search: every simulation samples a fresh
// determinization of the opponent's hidden state and traverses a tree shared
// across all hypotheses, so root statistics estimate an expectation over the
// belief distribution.
type MCTS struct {
	dex          *game.Dex
	determinizer *belief.Determinizer
	evaluate     game.Evaluator
	oppPolicy    game.Evaluator

	goroutines  int
	simulations int
	duration    time.Duration
	maxDepth    int
	cPuct       float64
	temperature float64
	seed        uint64
	metrics     Collector
}

func WithSimulations(n int) Option {
	return func(m *MCTS) {
		if n > 0 {
			m.simulations = n
		}
	}
}

func WithDuration(d time.Duration) Option {
	return func(m *MCTS) {
		if d > 0 {
			m.duration = d
		}
	}
}

func WithMaxDepth(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.maxDepth = depth
		}
	}
}

func WithCPuct(c float64) Option {
	return func(m *MCTS) {
		if c > 0 {
			m.cPuct = c
		}
	}
}

// WithTemperature sets the root action selection temperature: 0 is argmax
// visits, larger values sample proportionally to N^(1/T).
func WithTemperature(t float64) Option {
	return func(m *MCTS) {
		if t >= 0 {
			m.temperature = t
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) { m.seed = seed }
}

func WithGoroutines(goroutines int) Option {
	return func(m *MCTS) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

func WithEvaluator(e game.Evaluator) Option {
	return func(m *MCTS) {
		if e != nil {
			m.evaluate = e
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) { m.metrics = NewCollector() }
}

func NewMCTS(dex *game.Dex, determinizer *belief.Determinizer, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		dex:          dex,
		determinizer: determinizer,
		evaluate:     game.NewHeuristic(),
		oppPolicy:    &game.Heuristic{Tau: 8.0}, // sharper than the prior softmax
		goroutines:   1,
		maxDepth:     4,
		cPuct:        1.6,
		seed:         1,
		metrics:      NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.simulations <= 0 && m.duration <= 0 {
		panic("Must specify search simulations or duration")
	}
	return m
}

// Decision is the complete output of one ChooseAction call.
type Decision struct {
	Action game.Action
	// Policy is the normalized root visit distribution over legal actions.
	Policy    map[game.Action]float64
	RootValue float64
	Metric    SearchMetric

	root   *node
	legal  []game.Action
	sample *game.ShadowState
}

// ChooseAction runs the simulation budget against a frozen belief snapshot
// and aggregates root visit counts into an action. The snapshot must not be
// mutated while the search is in flight; completed simulations always yield a
// well-formed partial answer on cancellation or deadline.
func (m *MCTS) ChooseAction(ctx context.Context, us game.Side, opp game.OpponentPublic, snap *belief.Snapshot) (Decision, error) {
	m.metrics.Start(m.goroutines)
	masterRNG := rand.New(rand.NewSource(m.seed))

	// Expand the root once: our legal actions do not depend on the sampled
	// hypothesis, only the priors do.
	rootState, err := m.sampleRootState(us, opp, snap, masterRNG)
	if err != nil {
		return Decision{}, err
	}
	legal := rootState.LegalActions()
	if len(legal) == 0 {
		return Decision{}, ErrNoLegalActions
	}
	root := newNode()
	root.expand(legal, m.priors(rootState, legal))

	if m.simulations > 0 {
		m.iterate(ctx, root, us, opp, snap)
	} else {
		m.countdown(ctx, root, us, opp, snap)
	}

	policy := normalizeVisits(root.visitStats(legal))
	action, err := pickAction(policy, m.temperature, masterRNG)
	if err != nil {
		return Decision{}, err
	}
	metric := m.metrics.Complete()
	log.Debug().
		Stringer("action", action).
		Int("simulations", metric.Simulations).
		Dur("took", metric.Duration).
		Msg("search complete")
	return Decision{
		Action:    action,
		Policy:    policy,
		RootValue: root.meanValue(),
		Metric:    metric,
		root:      root,
		legal:     legal,
		sample:    rootState,
	}, nil
}

// iterate runs a fixed simulation count, fanned out over the configured
// goroutines. One goroutine keeps the run fully deterministic per seed.
func (m *MCTS) iterate(ctx context.Context, root *node, us game.Side, opp game.OpponentPublic, snap *belief.Snapshot) {
	task := make(chan struct{}, m.simulations)
	for i := 0; i < m.simulations; i++ {
		task <- struct{}{}
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			rng := m.workerRNG(worker)
			for range task {
				if ctx.Err() != nil {
					return
				}
				m.simulate(root, us, opp, snap, rng)
				m.metrics.AddSimulation()
			}
		}(i)
	}
	wg.Wait()
}

// countdown runs simulations until the duration or context expires. Partial
// results are valid: backups are commutative, so whatever completed counts.
func (m *MCTS) countdown(ctx context.Context, root *node, us game.Side, opp game.OpponentPublic, snap *belief.Snapshot) {
	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			rng := m.workerRNG(worker)
			for {
				select {
				case <-done:
					return
				case <-ctx.Done():
					return
				default:
					m.simulate(root, us, opp, snap, rng)
					m.metrics.AddSimulation()
				}
			}
		}(i)
	}

	select {
	case <-time.After(m.duration):
	case <-ctx.Done():
	}
	close(done)
	wg.Wait()
}

func (m *MCTS) workerRNG(worker int) *rand.Rand {
	return rand.New(rand.NewSource(m.seed + uint64(worker)*0x9e3779b97f4a7c15))
}

// simulate runs one select/expand/evaluate/backup cycle over a freshly
// sampled determinization (root sampling, resampled every simulation).
func (m *MCTS) simulate(root *node, us game.Side, opp game.OpponentPublic, snap *belief.Snapshot, rng *rand.Rand) {
	det, err := m.determinizer.Sample(snap, rng)
	if err != nil {
		log.Warn().Err(err).Msg("determinization failed, skipping simulation")
		return
	}
	if det.Fallback {
		m.metrics.AddFallback()
	}
	state := buildRoot(m.dex, us, opp, det)

	var path []pathStep
	current := root
	value := 0.0
	for depth := 0; ; depth++ {
		if state.Terminal() {
			value = state.Outcome()
			m.metrics.AddTerminal()
			break
		}
		if depth >= m.maxDepth {
			value = m.leafValue(state)
			break
		}

		legal := state.LegalActions()
		current.Lock()
		if !current.expanded {
			current.expand(legal, m.priors(state, legal))
			current.Unlock()
			value = m.leafValue(state)
			break
		}
		action, e := current.selectEdge(legal, m.cPuct)
		e.applyLoss()
		current.Unlock()

		path = append(path, pathStep{node: current, edge: e})
		state = m.step(state, action, rng)
		current = e.child
	}

	backup(path, value)
}

// backup propagates the leaf value along the traversed path, updating each
// edge under its owning node's lock. The perspective is fixed (every edge is
// one of our actions), so no sign flips occur.
func backup(path []pathStep, value float64) {
	for _, s := range path {
		s.node.Lock()
		s.edge.reverseLoss()
		s.edge.visits++
		s.edge.value += value
		s.node.Unlock()
	}
}

// step resolves one full simultaneous turn: the opponent's action is sampled
// from the opponent policy's priors computed over the mirrored state.
func (m *MCTS) step(state *game.ShadowState, ours game.Action, rng *rand.Rand) *game.ShadowState {
	mirror := state.Mirror()
	oppLegal := mirror.LegalActions()
	if len(oppLegal) == 0 {
		return state.Apply(ours, game.Struggle, rng)
	}
	oppPriors := sanitize(m.oppPolicy.ActionPriors(mirror, oppLegal), len(oppLegal))
	theirs := oppLegal[sampleIndex(oppPriors, rng)]
	return state.Apply(ours, theirs, rng)
}

// priors queries the evaluator and sanitizes the result at the boundary: a
// malformed distribution is replaced with uniform rather than poisoning the
// tree statistics.
func (m *MCTS) priors(state *game.ShadowState, legal []game.Action) []float64 {
	return sanitize(m.evaluate.ActionPriors(state, legal), len(legal))
}

// sanitize normalizes a prior vector of expected length n, replacing any
// malformed distribution with uniform.
func sanitize(priors []float64, n int) []float64 {
	if len(priors) != n {
		return uniform(n)
	}
	total := 0.0
	for _, p := range priors {
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			return uniform(n)
		}
		total += p
	}
	if total <= 0 {
		return uniform(n)
	}
	out := make([]float64, len(priors))
	for i, p := range priors {
		out[i] = p / total
	}
	return out
}

// leafValue queries the evaluator and clamps the result into [-1, 1];
// non-finite values become neutral.
func (m *MCTS) leafValue(state *game.ShadowState) float64 {
	v := m.evaluate.LeafValue(state)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// sampleRootState draws one determinization to build a probe root state for
// legal action enumeration and root priors.
func (m *MCTS) sampleRootState(us game.Side, opp game.OpponentPublic, snap *belief.Snapshot, rng *rand.Rand) (*game.ShadowState, error) {
	det, err := m.determinizer.Sample(snap, rng)
	if err != nil {
		return nil, err
	}
	return buildRoot(m.dex, us, opp, det), nil
}

// buildRoot materializes one simulation's concrete battle state: our known
// side plus the determinized opponent side with its public HP/status/boosts.
func buildRoot(dex *game.Dex, us game.Side, opp game.OpponentPublic, det *belief.Determinization) *game.ShadowState {
	team := make([]game.Pokemon, 0, len(opp.Mons)+len(det.Bench))
	for _, pm := range opp.Mons {
		set := det.Slots[pm.Slot]
		team = append(team, set.Pokemon(pm.HP, pm.Status, pm.Boosts))
	}
	for i := range det.Bench {
		team = append(team, det.Bench[i].Pokemon(1.0, game.NoStatus, game.Boosts{}))
	}
	active := opp.ActiveIndex()
	if active < 0 {
		active = 0
	}
	them := game.Side{Active: active, Team: team}
	return game.NewShadowState(dex, us, them)
}

func uniform(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1.0 / float64(n)
	}
	return out
}

func sampleIndex(dist []float64, rng *rand.Rand) int {
	r := rng.Float64()
	acc := 0.0
	for i, p := range dist {
		acc += p
		if acc >= r {
			return i
		}
	}
	return len(dist) - 1
}
