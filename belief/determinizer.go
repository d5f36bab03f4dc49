package belief

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/EmoruwaTolu/ShowdownBattler/game"
)

// DeterminizedSet is one fully resolved hidden set: a concrete role with a
// fixed 4-move subset, item, and ability.
type DeterminizedSet struct {
	Candidate SetCandidate
	Moves     []string
	Item      string
	Ability   string

	// Fallback marks a set kept despite violating a recorded constraint,
	// after rejection sampling was exhausted.
	Fallback bool
}

// Pokemon materializes the set as a concrete battle participant with the
// given public state.
func (ds *DeterminizedSet) Pokemon(hp float64, status game.Status, boosts game.Boosts) game.Pokemon {
	return game.Pokemon{
		Species: ds.Candidate.Species,
		Level:   ds.Candidate.Level,
		Types:   ds.Candidate.Types,
		Stats:   ds.Candidate.Stats,
		Moves:   append([]string(nil), ds.Moves...),
		Item:    ds.Item,
		Ability: ds.Ability,
		HP:      hp,
		Status:  status,
		Boosts:  boosts,
	}
}

// Determinization is one concrete hypothesis of all hidden opponent state:
// one set per revealed slot plus one per unrevealed bench slot, consistent
// with every recorded observation (or flagged where consistency had to be
// abandoned).
type Determinization struct {
	Slots map[int]DeterminizedSet
	Bench []DeterminizedSet

	// Fallback is set when any part of the sample was a flagged fallback.
	Fallback bool
}

// Determinizer samples Determinizations from belief snapshots. A fresh sample
// is drawn per simulation (root sampling); the search result is therefore an
// expectation over the belief distribution, never one fixed hypothesis.
type Determinizer struct {
	dex        *game.Dex
	maxRetries int
}

func NewDeterminizer(dex *game.Dex, maxRetries int) *Determinizer {
	if maxRetries <= 0 {
		maxRetries = 20
	}
	return &Determinizer{dex: dex, maxRetries: maxRetries}
}

// Sample draws one Determinization from the snapshot. Draws that contradict a
// recorded speed-order constraint are rejected and resampled up to the retry
// bound, then the nearest feasible set is kept with Fallback set.
func (d *Determinizer) Sample(snap *Snapshot, rng *rand.Rand) (*Determinization, error) {
	if snap == nil {
		return nil, fmt.Errorf("nil belief snapshot")
	}
	det := &Determinization{Slots: make(map[int]DeterminizedSet, len(snap.Slots))}

	for attempt := 0; ; attempt++ {
		det.Slots = make(map[int]DeterminizedSet, len(snap.Slots))
		det.Fallback = false
		for i := range snap.Slots {
			set := d.sampleSlot(&snap.Slots[i], rng)
			det.Fallback = det.Fallback || set.Fallback
			det.Slots[snap.Slots[i].Slot] = set
		}
		if d.pairsSatisfied(snap, det) {
			break
		}
		if attempt >= d.maxRetries {
			det.Fallback = true
			break
		}
	}

	if err := d.sampleBench(snap, det, rng); err != nil {
		return nil, err
	}
	return det, nil
}

// sampleSlot draws a candidate, item, ability, and 4-move subset for one
// revealed slot, honoring the slot's per-slot speed bounds.
func (d *Determinizer) sampleSlot(view *SlotView, rng *rand.Rand) DeterminizedSet {
	for attempt := 0; attempt <= d.maxRetries; attempt++ {
		cand := view.Cands[chooseWeighted(view.Weights, rng)]
		item, ok := d.sampleItem(&cand, view, rng)
		if !ok {
			continue
		}
		return DeterminizedSet{
			Candidate: cand,
			Item:      item,
			Ability:   d.sampleAbility(&cand, view, rng),
			Moves:     d.sampleMoves(&cand, view, rng),
		}
	}
	return d.fallbackSlot(view, rng)
}

// sampleItem picks an item consistent with the pinned item and every speed
// bound; ok is false when no consistent item exists for this candidate.
func (d *Determinizer) sampleItem(cand *SetCandidate, view *SlotView, rng *rand.Rand) (string, bool) {
	pool := cand.Items
	if view.Revealed.item != "" {
		pool = []string{view.Revealed.item}
	}
	if len(pool) == 0 {
		pool = []string{""}
	}
	var feasible []string
	for _, item := range pool {
		if itemSatisfies(cand, item, view.Bounds) {
			feasible = append(feasible, item)
		}
	}
	if len(feasible) == 0 {
		return "", false
	}
	return feasible[rng.Intn(len(feasible))], true
}

func (d *Determinizer) sampleAbility(cand *SetCandidate, view *SlotView, rng *rand.Rand) string {
	if view.Revealed.ability != "" {
		return view.Revealed.ability
	}
	if len(cand.Abilities) == 0 {
		return ""
	}
	return cand.Abilities[rng.Intn(len(cand.Abilities))]
}

// sampleMoves fixes a 4-move subset containing every revealed move, filled
// from the candidate's remaining pool.
func (d *Determinizer) sampleMoves(cand *SetCandidate, view *SlotView, rng *rand.Rand) []string {
	moves := append([]string(nil), view.Revealed.moves...)
	if len(moves) > 4 {
		moves = moves[:4]
	}
	var unrevealed []string
	for _, m := range cand.MovePool {
		revealed := false
		for _, r := range moves {
			if r == m {
				revealed = true
				break
			}
		}
		if !revealed {
			unrevealed = append(unrevealed, m)
		}
	}
	rng.Shuffle(len(unrevealed), func(i, j int) {
		unrevealed[i], unrevealed[j] = unrevealed[j], unrevealed[i]
	})
	for _, m := range unrevealed {
		if len(moves) >= 4 {
			break
		}
		moves = append(moves, m)
	}
	return moves
}

// fallbackSlot builds the nearest feasible set after retry exhaustion: the
// candidate/item pair whose speed comes closest to every bound, flagged.
func (d *Determinizer) fallbackSlot(view *SlotView, rng *rand.Rand) DeterminizedSet {
	best := DeterminizedSet{Fallback: true}
	bestViolation := -1.0
	for ci := range view.Cands {
		cand := view.Cands[ci]
		pool := cand.Items
		if view.Revealed.item != "" {
			pool = []string{view.Revealed.item}
		}
		if len(pool) == 0 {
			pool = []string{""}
		}
		for _, item := range pool {
			violation := 0.0
			for _, b := range view.Bounds {
				speed := candidateSpeed(&cand, item, b.mods)
				if !b.satisfied(speed) {
					diff := speed - b.rival
					if diff < 0 {
						diff = -diff
					}
					violation += diff
				}
			}
			if bestViolation < 0 || violation < bestViolation {
				bestViolation = violation
				best.Candidate = cand
				best.Item = item
			}
		}
	}
	best.Ability = d.sampleAbility(&best.Candidate, view, rng)
	best.Moves = d.sampleMoves(&best.Candidate, view, rng)
	return best
}

// pairsSatisfied checks every recorded opponent-vs-opponent speed constraint
// against the joint sample.
func (d *Determinizer) pairsSatisfied(snap *Snapshot, det *Determinization) bool {
	for _, p := range snap.Pairs {
		fast, okF := det.Slots[p.fastSlot]
		slow, okS := det.Slots[p.slowSlot]
		if !okF || !okS {
			continue
		}
		fastSpeed := candidateSpeed(&fast.Candidate, fast.Item, p.mods)
		slowSpeed := candidateSpeed(&slow.Candidate, slow.Item, p.mods)
		if fastSpeed <= slowSpeed {
			return false
		}
	}
	return true
}

// sampleBench fills the unrevealed bench slots: species drawn from the team
// pool without replacement, then a role for that species.
func (d *Determinizer) sampleBench(snap *Snapshot, det *Determinization, rng *rand.Rand) error {
	det.Bench = det.Bench[:0]
	used := make(map[string]bool, snap.TeamSize)
	for _, set := range det.Slots {
		used[set.Candidate.Species] = true
	}

	keys := snap.Team.SortedSpecies()
	for n := 0; n < snap.UnrevealedCount(); n++ {
		species, ok := pickSpecies(keys, snap.Team.Pool, used, rng)
		if !ok {
			break // pool exhausted, shorter bench is still valid
		}
		used[species] = true

		cands, weights := CandidatesFor(d.dex, species)
		if len(cands) == 0 {
			return fmt.Errorf("species %q in team pool has no dex entry", species)
		}
		cand := cands[chooseWeighted(weights, rng)]
		view := SlotView{Cands: []SetCandidate{cand}, Weights: []float64{1}}
		set := DeterminizedSet{
			Candidate: cand,
			Moves:     d.sampleMoves(&cand, &view, rng),
		}
		if len(cand.Items) > 0 {
			set.Item = cand.Items[rng.Intn(len(cand.Items))]
		}
		if len(cand.Abilities) > 0 {
			set.Ability = cand.Abilities[rng.Intn(len(cand.Abilities))]
		}
		det.Bench = append(det.Bench, set)
	}
	return nil
}

func pickSpecies(keys []string, pool map[string]float64, used map[string]bool, rng *rand.Rand) (string, bool) {
	total := 0.0
	for _, k := range keys {
		if !used[k] {
			total += pool[k]
		}
	}
	if total <= 0 {
		return "", false
	}
	r := rng.Float64() * total
	acc := 0.0
	for _, k := range keys {
		if used[k] {
			continue
		}
		acc += pool[k]
		if acc >= r {
			return k, true
		}
	}
	for i := len(keys) - 1; i >= 0; i-- {
		if !used[keys[i]] {
			return keys[i], true
		}
	}
	return "", false
}

// chooseWeighted draws an index proportional to weights. Weights are assumed
// normalized but any positive total works.
func chooseWeighted(weights []float64, rng *rand.Rand) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return rng.Intn(len(weights))
	}
	r := rng.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if acc >= r {
			return i
		}
	}
	return len(weights) - 1
}
