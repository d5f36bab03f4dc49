package engine

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/EmoruwaTolu/ShowdownBattler/belief"
	"github.com/EmoruwaTolu/ShowdownBattler/experiments/metrics"
	"github.com/EmoruwaTolu/ShowdownBattler/game"
	"github.com/EmoruwaTolu/ShowdownBattler/searcher"
)

// Local plays a full battle in process: the search agent against a scripted
// opponent. The engine owns the ground truth; the agent only ever sees its
// own side, the opponent's public state, and the belief snapshot built from
// the observation feed the engine emits turn by turn.
type Local struct {
	dex      *game.Dex
	state    *game.ShadowState
	agent    *searcher.MCTS
	store    *belief.Store
	opponent game.Evaluator
	rng      *rand.Rand

	seen      map[int]bool
	hook      func(turn int, d searcher.Decision)
	storeOpts []belief.StoreOption
}

type LocalOption func(*Local)

// WithOpponentEvaluator replaces the scripted opponent's policy.
func WithOpponentEvaluator(e game.Evaluator) LocalOption {
	return func(l *Local) {
		if e != nil {
			l.opponent = e
		}
	}
}

func WithEngineSeed(seed uint64) LocalOption {
	return func(l *Local) { l.rng = rand.New(rand.NewSource(seed)) }
}

// WithDecisionHook registers a callback invoked after every agent decision,
// before the turn resolves.
func WithDecisionHook(hook func(turn int, d searcher.Decision)) LocalOption {
	return func(l *Local) { l.hook = hook }
}

// WithStoreOptions forwards options to the engine's belief store.
func WithStoreOptions(opts ...belief.StoreOption) LocalOption {
	return func(l *Local) { l.storeOpts = append(l.storeOpts, opts...) }
}

func NewLocal(dex *game.Dex, us, them game.Side, agent *searcher.MCTS, options ...LocalOption) *Local {
	if len(us.Team) == 0 || len(them.Team) == 0 {
		panic("both sides need at least one Pokemon")
	}
	l := &Local{
		dex:      dex,
		state:    game.NewShadowState(dex, us, them),
		agent:    agent,
		opponent: game.NewHeuristic(),
		rng:      rand.New(rand.NewSource(1)),
		seen:     make(map[int]bool),
	}
	for _, option := range options {
		option(l)
	}
	l.store = belief.NewStore(dex, belief.Roster{TeamSize: len(them.Team)}, l.storeOpts...)
	l.revealActive()
	return l
}

// Run executes the battle loop until a winner is found or MaxTurns passes.
func (l *Local) Run() (Result, error) {
	battle := newBattleMetric()
	var decisions []metrics.DecisionMetric

	log.Info().
		Str("ourLead", l.state.Us.ActiveMon().Species).
		Str("theirLead", l.state.Them.ActiveMon().Species).
		Msg("battle starting")

	turn := 1
	for ; !l.state.Terminal() && turn <= MaxTurns; turn++ {
		decision, err := l.agent.ChooseAction(context.Background(), l.state.Us, l.publicView(), l.store.Snapshot())
		if err != nil {
			return Result{}, err
		}
		if l.hook != nil {
			l.hook(turn, decision)
		}
		decisions = append(decisions, metrics.DecisionMetric{
			Turn:         turn,
			Action:       decision.Action.String(),
			RootValue:    decision.RootValue,
			SearchMetric: decision.Metric,
		})

		theirs := l.opponentAction()
		prev := l.state
		l.state = l.state.Apply(decision.Action, theirs, l.rng)
		l.feedObservations(prev, decision.Action, theirs)

		log.Debug().
			Int("turn", turn).
			Stringer("ours", decision.Action).
			Stringer("theirs", theirs).
			Float64("rootValue", decision.RootValue).
			Msg("turn resolved")
	}

	winner := outcomeWinner(l.state, turn)
	completeBattleMetric(&battle, winner, turn-1)
	log.Info().Str("winner", winner).Int("turns", turn-1).Msg("battle over")

	return Result{Winner: winner, Turns: turn - 1, Battle: battle, Decisions: decisions}, nil
}

// opponentAction samples the scripted opponent's command from its evaluator's
// priors over the mirrored state.
func (l *Local) opponentAction() game.Action {
	mirror := l.state.Mirror()
	legal := mirror.LegalActions()
	if len(legal) == 0 {
		return game.Struggle
	}
	priors := l.opponent.ActionPriors(mirror, legal)
	if len(priors) != len(legal) {
		return legal[l.rng.Intn(len(legal))]
	}
	r := l.rng.Float64()
	acc := 0.0
	for i, p := range priors {
		acc += p
		if acc >= r {
			return legal[i]
		}
	}
	return legal[len(legal)-1]
}

// publicView projects the ground truth down to what our side can see: only
// revealed slots, with their public HP, status, and boosts.
func (l *Local) publicView() game.OpponentPublic {
	pub := game.OpponentPublic{
		ActiveSlot: l.state.Them.Active,
		TeamSize:   len(l.state.Them.Team),
	}
	for slot := range l.state.Them.Team {
		if !l.seen[slot] {
			continue
		}
		mon := &l.state.Them.Team[slot]
		pub.Mons = append(pub.Mons, game.PublicMon{
			Slot:    slot,
			Species: mon.Species,
			HP:      mon.HP,
			Status:  mon.Status,
			Boosts:  mon.Boosts,
		})
	}
	return pub
}

// feedObservations derives the turn's observation events from the resolved
// transition and applies them to the belief store.
func (l *Local) feedObservations(prev *game.ShadowState, ours, theirs game.Action) {
	if theirs.Type == game.MoveAction {
		slot := prev.Them.Active
		l.observe(belief.MoveUsed{Slot: slot, Move: theirs.Move})
		if item := prev.Them.ActiveMon().Item; item == "lifeorb" {
			// Life Orb recoil shows up in the log on the first attack
			if l.dex.MoveByID(theirs.Move).Category != game.StatusMove {
				l.observe(belief.ItemRevealed{Slot: slot, Item: item})
			}
		}
	}

	if ours.Type == game.MoveAction && theirs.Type == game.MoveAction {
		l.observeSpeedOrder(prev, ours, theirs)
	}

	l.revealActive()
}

// observeSpeedOrder emits the turn-order inequality when both sides moved at
// equal priority and their effective speeds actually differed.
func (l *Local) observeSpeedOrder(prev *game.ShadowState, ours, theirs game.Action) {
	if l.dex.MoveByID(ours.Move).Priority != l.dex.MoveByID(theirs.Move).Priority {
		return
	}
	ourMon := prev.Us.ActiveMon()
	oppMon := prev.Them.ActiveMon()
	ourSpeed := ourMon.EffectiveSpeed()
	oppSpeed := oppMon.EffectiveSpeed()
	if ourSpeed == oppSpeed {
		return
	}

	ourRef := belief.SlotRef{Ours: true, Speed: ourSpeed}
	oppRef := belief.SlotRef{Slot: prev.Them.Active}
	mods := belief.SpeedModifiers{Stage: oppMon.Boosts.Spe, Status: oppMon.Status}
	if oppSpeed > ourSpeed {
		l.observe(belief.SpeedOrder{Faster: oppRef, Slower: ourRef, Modifiers: mods})
	} else {
		l.observe(belief.SpeedOrder{Faster: ourRef, Slower: oppRef, Modifiers: mods})
	}
}

// revealActive opens a slot belief the first time an opponent slot appears,
// whether by lead, switch, or faint replacement.
func (l *Local) revealActive() {
	slot := l.state.Them.Active
	if l.seen[slot] {
		return
	}
	l.seen[slot] = true
	l.observe(belief.SpeciesRevealed{Slot: slot, Species: l.state.Them.Team[slot].Species})
}

func (l *Local) observe(obs belief.Observation) {
	if err := l.store.Observe(obs); err != nil {
		log.Warn().Err(err).Msg("belief update failed")
	}
}
