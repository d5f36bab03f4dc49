package game

import "math"

// Heuristic is the default Evaluator: material balance for leaf values and a
// softmax over per-action scores for priors. It carries no search state and
// is safe to share across simulations.
type Heuristic struct {
	// Tau is the softmax temperature for priors. Higher is flatter.
	Tau float64
}

func NewHeuristic() *Heuristic {
	return &Heuristic{Tau: 12.0}
}

// LeafValue tallies each side's remaining material (HP weighted by status and
// boosts) into a relative score between -1 and 1 from our perspective.
func (h *Heuristic) LeafValue(state *ShadowState) float64 {
	if state.Terminal() {
		return state.Outcome()
	}
	diff := sideValue(&state.Us) - sideValue(&state.Them)
	return math.Tanh(diff / 2.0)
}

func sideValue(side *Side) float64 {
	total := 0.0
	for i := range side.Team {
		mon := &side.Team[i]
		if mon.Fainted() {
			continue
		}
		v := mon.HP
		switch mon.Status {
		case Burn, Poison:
			v *= 0.80
		case Paralysis:
			v *= 0.85
		case Sleep:
			v *= 0.70
		}
		v *= boostValue(mon.Boosts, mon.HP)
		total += v
	}
	return total
}

func boostValue(b Boosts, hp float64) float64 {
	max := b.Atk
	for _, s := range []int{b.SpA, b.Spe} {
		if s > max {
			max = s
		}
	}
	if hp < 0.35 && max > 2 {
		max = 2 // a boosted sweeper at low HP rarely cashes in
	}
	switch {
	case max >= 4:
		return 1.18
	case max >= 2:
		return 1.12
	case max >= 1:
		return 1.06
	}
	return 1.0
}

// ActionPriors scores every legal action and softmaxes the scores into a
// prior distribution.
func (h *Heuristic) ActionPriors(state *ShadowState, legal []Action) []float64 {
	scores := make([]float64, len(legal))
	for i, a := range legal {
		scores[i] = h.scoreAction(state, a)
	}
	return Softmax(scores, h.Tau)
}

func (h *Heuristic) scoreAction(state *ShadowState, a Action) float64 {
	if a.Type == SwitchAction {
		return h.scoreSwitch(state, a.Switch)
	}
	return h.scoreMove(state, a.Move)
}

func (h *Heuristic) scoreMove(state *ShadowState, moveID string) float64 {
	attacker := state.Us.ActiveMon()
	defender := state.Them.ActiveMon()
	move := state.Dex().MoveByID(moveID)

	if move.Category == StatusMove {
		score := 0.0
		if move.SelfBoostAtk+move.SelfBoostSpA+move.SelfBoostSpe > 0 {
			// setup is worth more while healthy and unboosted
			existing := attacker.Boosts.Atk + attacker.Boosts.SpA
			score = 35.0 * attacker.HP / float64(1+existing)
		}
		if move.Inflicts != NoStatus && defender.Status == NoStatus {
			score += 30.0 * move.InflictOdds
		}
		return score
	}

	frac := DamageFraction(attacker, defender, move) * move.Accuracy
	score := frac * 100
	if frac >= defender.HP {
		score += 40 // KO threat dominates
	}
	return score
}

func (h *Heuristic) scoreSwitch(state *ShadowState, slot int) float64 {
	if slot < 0 || slot >= len(state.Us.Team) {
		return -100
	}
	candidate := &state.Us.Team[slot]
	threat := state.Them.ActiveMon()

	// How hard does their active hit the incoming slot, and vice versa.
	incoming := 0.0
	for _, mid := range threat.Moves {
		m := state.Dex().MoveByID(mid)
		if f := DamageFraction(threat, candidate, m); f > incoming {
			incoming = f
		}
	}
	outgoing := 0.0
	for _, mid := range candidate.Moves {
		m := state.Dex().MoveByID(mid)
		if f := DamageFraction(candidate, threat, m); f > outgoing {
			outgoing = f
		}
	}
	return (outgoing-incoming)*60 + candidate.HP*10
}

// Softmax converts raw scores into a distribution with temperature tau.
// Degenerate inputs collapse to uniform.
func Softmax(scores []float64, tau float64) []float64 {
	if len(scores) == 0 {
		return nil
	}
	if tau < 1e-9 {
		tau = 1e-9
	}
	max := scores[0]
	for _, s := range scores[1:] {
		if s > max {
			max = s
		}
	}
	out := make([]float64, len(scores))
	total := 0.0
	for i, s := range scores {
		out[i] = math.Exp((s - max) / tau)
		total += out[i]
	}
	if total <= 0 || math.IsInf(total, 0) || math.IsNaN(total) {
		for i := range out {
			out[i] = 1.0 / float64(len(out))
		}
		return out
	}
	for i := range out {
		out[i] /= total
	}
	return out
}
