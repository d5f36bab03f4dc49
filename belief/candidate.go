package belief

import (
	"github.com/EmoruwaTolu/ShowdownBattler/game"
)

// SetCandidate is one hypothesized complete role for an opponent slot: the
// move pool, abilities, items, and stat spread of one dex role. Candidates
// are the unit the belief distribution is maintained over.
type SetCandidate struct {
	ID      string // species:role
	Species string
	Role    string
	Level   int
	Types   []game.TypeID
	Stats   game.Stats

	MovePool  []string
	Abilities []string
	Items     []string

	// Synthetic marks a flagged default candidate substituted after a total
	// elimination; it is built from revealed information only.
	Synthetic bool
}

// CandidatesFor builds the candidate pool for a species from the dex role
// table, with each role's prior weight.
func CandidatesFor(dex *game.Dex, species string) ([]SetCandidate, []float64) {
	entry, ok := dex.SpeciesByName(species)
	if !ok {
		return nil, nil
	}
	cands := make([]SetCandidate, 0, len(entry.Roles))
	weights := make([]float64, 0, len(entry.Roles))
	for _, role := range entry.Roles {
		w := role.Weight
		if w <= 0 {
			w = 1
		}
		cands = append(cands, SetCandidate{
			ID:        species + ":" + role.Name,
			Species:   species,
			Role:      role.Name,
			Level:     entry.Level,
			Types:     entry.Types,
			Stats:     game.CalcStats(entry.BaseStats, entry.Level),
			MovePool:  role.Moves,
			Abilities: role.Abilities,
			Items:     role.Items,
		})
		weights = append(weights, w)
	}
	return cands, weights
}

// syntheticCandidate builds the flagged fallback candidate for a slot whose
// real candidates were all eliminated: it commits only to what was observed.
func syntheticCandidate(dex *game.Dex, species string, revealed *revealedInfo) SetCandidate {
	cand := SetCandidate{
		ID:        species + ":synthetic",
		Species:   species,
		Role:      "synthetic",
		Level:     80,
		Types:     []game.TypeID{"normal"},
		Stats:     game.CalcStats(game.Stats{HP: 100, Atk: 100, Def: 100, SpA: 100, SpD: 100, Spe: 100}, 80),
		MovePool:  append([]string(nil), revealed.moves...),
		Synthetic: true,
	}
	if entry, ok := dex.SpeciesByName(species); ok {
		cand.Types = entry.Types
		cand.Level = entry.Level
		cand.Stats = game.CalcStats(entry.BaseStats, entry.Level)
	}
	if revealed.item != "" {
		cand.Items = []string{revealed.item}
	}
	if revealed.ability != "" {
		cand.Abilities = []string{revealed.ability}
	}
	return cand
}

func (c *SetCandidate) hasMove(id string) bool {
	for _, m := range c.MovePool {
		if m == id {
			return true
		}
	}
	return false
}

func (c *SetCandidate) allowsItem(id string) bool {
	if len(c.Items) == 0 {
		return true // unconstrained pool
	}
	for _, it := range c.Items {
		if it == id {
			return true
		}
	}
	return false
}

func (c *SetCandidate) allowsAbility(id string) bool {
	if len(c.Abilities) == 0 {
		return true
	}
	for _, ab := range c.Abilities {
		if ab == id {
			return true
		}
	}
	return false
}
