package game

import "strconv"

// Action is one command a side can issue for a turn: use a move slot or
// switch to a bench slot. Both sides commit an Action simultaneously and the
// transition resolves order from priority and effective speed.
type Action struct {
	Type   ActionType
	Move   string // move id when Type == MoveAction
	Switch int    // team index when Type == SwitchAction
}

type ActionType int

const (
	MoveAction ActionType = iota
	SwitchAction
)

// Struggle is the forced action for a side with nothing else to use.
var Struggle = Action{Type: MoveAction, Move: "struggle"}

func (a Action) String() string {
	if a.Type == SwitchAction {
		return "switch:" + strconv.Itoa(a.Switch)
	}
	return "move:" + a.Move
}

// Evaluator supplies action priors and leaf values for the search. Values are
// in [-1, 1] from the perspective of state.Us; priors are a distribution over
// the given legal actions. A learned model satisfies the same contract.
type Evaluator interface {
	ActionPriors(state *ShadowState, legal []Action) []float64
	LeafValue(state *ShadowState) float64
}
