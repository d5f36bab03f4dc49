package game

import (
	"golang.org/x/exp/rand"
)

const (
	burnChip     = 1.0 / 16.0 // end-of-turn burn damage
	poisonChip   = 1.0 / 8.0
	critChance   = 1.0 / 24.0
	critMult     = 1.5
	fullParaOdds = 0.25
)

// Side is one player's half of a concrete battle state.
type Side struct {
	Active int
	Team   []Pokemon
}

func (s *Side) ActiveMon() *Pokemon { return &s.Team[s.Active] }

func (s *Side) Defeated() bool {
	for i := range s.Team {
		if !s.Team[i].Fainted() {
			return false
		}
	}
	return true
}

func (s *Side) clone() Side {
	team := make([]Pokemon, len(s.Team))
	copy(team, s.Team)
	for i := range team {
		if s.Team[i].Moves != nil {
			team[i].Moves = append([]string(nil), s.Team[i].Moves...)
		}
		if s.Team[i].Types != nil {
			team[i].Types = append([]TypeID(nil), s.Team[i].Types...)
		}
	}
	return Side{Active: s.Active, Team: team}
}

// ShadowState is a fully concrete battle state for one simulation: the
// searching side's known state plus one determinized opponent side. It is
// never mutated in place; Apply returns a new value.
type ShadowState struct {
	Us   Side
	Them Side
	Turn int
	dex  *Dex
}

func NewShadowState(dex *Dex, us, them Side) *ShadowState {
	return &ShadowState{Us: us.clone(), Them: them.clone(), dex: dex}
}

func (s *ShadowState) Dex() *Dex { return s.dex }

// Mirror returns the state from the opponent's point of view, so an Evaluator
// can score opponent actions with the same fixed-perspective contract.
func (s *ShadowState) Mirror() *ShadowState {
	return &ShadowState{Us: s.Them, Them: s.Us, Turn: s.Turn, dex: s.dex}
}

func (s *ShadowState) Terminal() bool {
	return s.Us.Defeated() || s.Them.Defeated()
}

// Outcome is +1 if we won, -1 if we lost, 0 for a draw or non-terminal state.
func (s *ShadowState) Outcome() float64 {
	ours, theirs := s.Us.Defeated(), s.Them.Defeated()
	switch {
	case ours && theirs:
		return 0
	case theirs:
		return 1
	case ours:
		return -1
	}
	return 0
}

// LegalActions enumerates our side's commands: each move of the active
// Pokemon plus a switch to every healthy bench slot.
func (s *ShadowState) LegalActions() []Action {
	if s.Terminal() {
		return nil
	}
	var actions []Action
	active := s.Us.ActiveMon()
	if !active.Fainted() {
		for _, m := range active.Moves {
			actions = append(actions, Action{Type: MoveAction, Move: m})
		}
	}
	for i := range s.Us.Team {
		if i == s.Us.Active || s.Us.Team[i].Fainted() {
			continue
		}
		actions = append(actions, Action{Type: SwitchAction, Switch: i})
	}
	return actions
}

// Apply resolves one simultaneous turn and returns the resulting state.
// Order: switches before moves, then priority, then effective speed with an
// RNG tiebreak.
func (s *ShadowState) Apply(ours, theirs Action, rng *rand.Rand) *ShadowState {
	if s.Terminal() {
		return s
	}
	next := &ShadowState{Us: s.Us.clone(), Them: s.Them.clone(), Turn: s.Turn + 1, dex: s.dex}

	usFirst := next.ordersUsFirst(ours, theirs, rng)
	if usFirst {
		next.applyAction(&next.Us, &next.Them, ours, rng)
		if !next.Terminal() && !next.Them.ActiveMon().Fainted() {
			next.applyAction(&next.Them, &next.Us, theirs, rng)
		}
	} else {
		next.applyAction(&next.Them, &next.Us, theirs, rng)
		if !next.Terminal() && !next.Us.ActiveMon().Fainted() {
			next.applyAction(&next.Us, &next.Them, ours, rng)
		}
	}

	if !next.Terminal() {
		next.endOfTurn()
	}
	next.replaceFainted(rng)
	return next
}

func (s *ShadowState) actionPriority(side *Side, a Action) int {
	if a.Type == SwitchAction {
		return 6 // switches resolve before any move
	}
	return s.dex.MoveByID(a.Move).Priority
}

func (s *ShadowState) ordersUsFirst(ours, theirs Action, rng *rand.Rand) bool {
	op, tp := s.actionPriority(&s.Us, ours), s.actionPriority(&s.Them, theirs)
	if op != tp {
		return op > tp
	}
	ourSpeed := s.Us.ActiveMon().EffectiveSpeed()
	theirSpeed := s.Them.ActiveMon().EffectiveSpeed()
	if ourSpeed != theirSpeed {
		return ourSpeed > theirSpeed
	}
	return rng.Float64() < 0.5
}

func (s *ShadowState) applyAction(actor, target *Side, a Action, rng *rand.Rand) {
	if a.Type == SwitchAction {
		if a.Switch >= 0 && a.Switch < len(actor.Team) && !actor.Team[a.Switch].Fainted() {
			prev := actor.ActiveMon()
			prev.Boosts = Boosts{} // boosts reset on switch-out
			actor.Active = a.Switch
		}
		return
	}
	s.applyMove(actor, target, a.Move, rng)
}

func (s *ShadowState) applyMove(actor, target *Side, moveID string, rng *rand.Rand) {
	attacker := actor.ActiveMon()
	if attacker.Fainted() {
		return
	}
	if attacker.Status == Paralysis && rng.Float64() < fullParaOdds {
		return
	}
	move := s.dex.MoveByID(moveID)
	if rng.Float64() >= move.Accuracy {
		return
	}

	if move.Category == StatusMove {
		attacker.Boosts.Atk = clampStage(attacker.Boosts.Atk + move.SelfBoostAtk)
		attacker.Boosts.SpA = clampStage(attacker.Boosts.SpA + move.SelfBoostSpA)
		attacker.Boosts.Spe = clampStage(attacker.Boosts.Spe + move.SelfBoostSpe)
	} else {
		frac := DamageFraction(attacker, target.ActiveMon(), move)
		if rng.Float64() < critChance {
			frac *= critMult
		}
		defender := target.ActiveMon()
		defender.HP -= frac
		if defender.HP < 0 {
			defender.HP = 0
		}
	}

	if move.Inflicts != NoStatus && move.InflictOdds > 0 {
		defender := target.ActiveMon()
		if !defender.Fainted() && defender.Status == NoStatus && rng.Float64() < move.InflictOdds {
			defender.Status = move.Inflicts
		}
	}
}

func (s *ShadowState) endOfTurn() {
	chip := func(side *Side) {
		mon := side.ActiveMon()
		switch mon.Status {
		case Burn:
			mon.HP -= burnChip
		case Poison:
			mon.HP -= poisonChip
		}
		if mon.HP < 0 {
			mon.HP = 0
		}
	}
	chip(&s.Us)
	chip(&s.Them)
}

// replaceFainted brings in the best-HP bench slot when an active slot faints
// mid-simulation, so the state is always playable for the next ply.
func (s *ShadowState) replaceFainted(rng *rand.Rand) {
	replace := func(side *Side) {
		if !side.ActiveMon().Fainted() || side.Defeated() {
			return
		}
		best, bestHP := -1, 0.0
		for i := range side.Team {
			if side.Team[i].Fainted() {
				continue
			}
			if side.Team[i].HP > bestHP {
				best, bestHP = i, side.Team[i].HP
			}
		}
		if best >= 0 {
			side.Active = best
		}
	}
	replace(&s.Us)
	replace(&s.Them)
}

func clampStage(s int) int {
	if s > 6 {
		return 6
	}
	if s < -6 {
		return -6
	}
	return s
}

// DamageFraction estimates the fraction of the defender's max HP removed by
// one use of move, before the crit roll.
func DamageFraction(attacker, defender *Pokemon, move MoveData) float64 {
	if move.Category == StatusMove || move.Power <= 0 {
		return 0
	}
	var atk, def float64
	if move.Category == Physical {
		atk = float64(attacker.Stats.Atk) * StageMultiplier(attacker.Boosts.Atk)
		def = float64(defender.Stats.Def) * StageMultiplier(defender.Boosts.Def)
		if attacker.Status == Burn {
			atk *= 0.5
		}
	} else {
		atk = float64(attacker.Stats.SpA) * StageMultiplier(attacker.Boosts.SpA)
		def = float64(defender.Stats.SpD) * StageMultiplier(defender.Boosts.SpD)
	}

	base := (float64(2*attacker.Level)/5+2)*float64(move.Power)*atk/def/50 + 2

	mult := TypeEffectiveness(move.Type, defender.Types)
	for _, t := range attacker.Types {
		if t == move.Type {
			mult *= 1.5 // STAB
			break
		}
	}
	switch attacker.Item {
	case "lifeorb":
		mult *= 1.3
	case "choiceband":
		if move.Category == Physical {
			mult *= 1.5
		}
	case "choicespecs":
		if move.Category == Special {
			mult *= 1.5
		}
	}

	return base * mult * 0.925 / float64(defender.Stats.HP)
}
