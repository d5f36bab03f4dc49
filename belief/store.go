package belief

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/EmoruwaTolu/ShowdownBattler/game"
)

// InconsistencyPolicy decides what happens when an observation eliminates
// every remaining candidate for a slot.
type InconsistencyPolicy int

const (
	// SubstituteSynthetic replaces the pool with one flagged synthetic
	// candidate built from revealed information only.
	SubstituteSynthetic InconsistencyPolicy = iota
	// RaiseError surfaces a BeliefInconsistencyError to the caller.
	RaiseError
)

// BeliefInconsistencyError reports a total elimination for one slot.
type BeliefInconsistencyError struct {
	Slot    int
	Species string
	Cause   string
}

func (e *BeliefInconsistencyError) Error() string {
	return fmt.Sprintf("belief inconsistency on slot %d (%s): observation %q eliminated every candidate", e.Slot, e.Species, e.Cause)
}

// revealedInfo accumulates the hard facts observed for one slot.
type revealedInfo struct {
	moves   []string
	item    string
	ability string
}

func (r *revealedInfo) addMove(id string) {
	for _, m := range r.moves {
		if m == id {
			return
		}
	}
	r.moves = append(r.moves, id)
}

// SlotBelief is the posterior over set candidates for one revealed opponent
// slot, plus the accumulated observation constraints.
type SlotBelief struct {
	Slot    int
	Species string

	cands   []SetCandidate
	weights []float64

	revealed revealedInfo
	bounds   []speedBound

	// Synthetic is set when the pool was replaced after total elimination.
	Synthetic bool
}

// Candidates returns the current weighted candidate set. Weights sum to 1.
func (sb *SlotBelief) Candidates() ([]SetCandidate, []float64) {
	cands := append([]SetCandidate(nil), sb.cands...)
	weights := append([]float64(nil), sb.weights...)
	return cands, weights
}

// Certainty is 1 minus the normalized entropy of the candidate weights:
// 1 when a single candidate remains, 0 at uniform maximum uncertainty.
func (sb *SlotBelief) Certainty() float64 {
	n := len(sb.weights)
	if n <= 1 {
		return 1
	}
	h := 0.0
	for _, w := range sb.weights {
		if w > 0 {
			h -= w * math.Log(w)
		}
	}
	return 1 - h/math.Log(float64(n))
}

func (sb *SlotBelief) normalize() {
	total := 0.0
	for _, w := range sb.weights {
		total += w
	}
	if total <= 0 {
		u := 1.0 / float64(len(sb.weights))
		for i := range sb.weights {
			sb.weights[i] = u
		}
		return
	}
	for i := range sb.weights {
		sb.weights[i] /= total
	}
}

// filter keeps candidates where keep returns a positive weight multiplier,
// renormalizing afterwards. Returns false on total elimination.
func (sb *SlotBelief) filter(keep func(*SetCandidate) float64) bool {
	var cands []SetCandidate
	var weights []float64
	for i := range sb.cands {
		mult := keep(&sb.cands[i])
		if mult > 0 && sb.weights[i] > 0 {
			cands = append(cands, sb.cands[i])
			weights = append(weights, sb.weights[i]*mult)
		}
	}
	if len(cands) == 0 {
		return false
	}
	sb.cands, sb.weights = cands, weights
	sb.normalize()
	return true
}

// TeamBelief is the weighted pool of species that may occupy still-unrevealed
// bench slots. Sampling is without replacement.
type TeamBelief struct {
	Pool map[string]float64
}

func newTeamBelief(dex *game.Dex, revealed map[string]bool) TeamBelief {
	pool := make(map[string]float64)
	for _, name := range dex.SpeciesNames() {
		if !revealed[name] {
			pool[name] = 1.0
		}
	}
	return TeamBelief{Pool: pool}
}

func (tb TeamBelief) clone() TeamBelief {
	pool := make(map[string]float64, len(tb.Pool))
	for k, v := range tb.Pool {
		pool[k] = v
	}
	return TeamBelief{Pool: pool}
}

func (tb *TeamBelief) remove(species string) {
	delete(tb.Pool, species)
}

// SortedSpecies returns pool keys in deterministic order for sampling.
func (tb TeamBelief) SortedSpecies() []string {
	keys := make([]string, 0, len(tb.Pool))
	for k := range tb.Pool {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Roster describes what is known about the opponent team at battle start.
type Roster struct {
	TeamSize int
}

// StoreOption configures a Store.
type StoreOption func(*Store)

func WithInconsistencyPolicy(p InconsistencyPolicy) StoreOption {
	return func(s *Store) { s.policy = p }
}

// Store maintains the full opponent belief for one battle: a SlotBelief per
// revealed slot, pairwise speed constraints, and the unseen-species pool.
// It is mutated only by observations between decisions; searches operate on
// an immutable Snapshot.
type Store struct {
	dex      *game.Dex
	policy   InconsistencyPolicy
	teamSize int

	slots    map[int]*SlotBelief
	pairs    []pairBound
	revealed map[string]bool
	team     TeamBelief
}

func NewStore(dex *game.Dex, roster Roster, opts ...StoreOption) *Store {
	size := roster.TeamSize
	if size <= 0 {
		size = 6
	}
	s := &Store{
		dex:      dex,
		teamSize: size,
		slots:    make(map[int]*SlotBelief),
		revealed: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.team = newTeamBelief(dex, s.revealed)
	return s
}

// Observe dispatches one observation event into the store.
func (s *Store) Observe(obs Observation) error {
	switch o := obs.(type) {
	case SpeciesRevealed:
		return s.RevealSpecies(o.Slot, o.Species)
	case MoveUsed:
		return s.ObserveMove(o.Slot, o.Move)
	case ItemRevealed:
		return s.ObserveItem(o.Slot, o.Item)
	case AbilityRevealed:
		return s.ObserveAbility(o.Slot, o.Ability)
	case SpeedOrder:
		return s.ObserveSpeedOrder(o.Faster, o.Slower, o.Modifiers)
	case HazardDamage:
		return s.ObserveHazardDamage(o.Slot, o.TookDamage)
	}
	return fmt.Errorf("unknown observation type %T", obs)
}

// RevealSpecies opens a slot belief the first time a slot is seen and removes
// the species from the unseen pool.
func (s *Store) RevealSpecies(slot int, species string) error {
	if _, ok := s.slots[slot]; ok {
		return nil
	}
	cands, weights := CandidatesFor(s.dex, species)
	sb := &SlotBelief{Slot: slot, Species: species, cands: cands, weights: weights}
	if len(cands) == 0 {
		sb.cands = []SetCandidate{syntheticCandidate(s.dex, species, &sb.revealed)}
		sb.weights = []float64{1}
		sb.Synthetic = true
	}
	sb.normalize()
	s.slots[slot] = sb
	s.revealed[species] = true
	s.team.remove(species)
	return nil
}

// ObserveMove filters the slot's candidates to those whose pool contains the
// move, then renormalizes.
func (s *Store) ObserveMove(slot int, move string) error {
	sb, err := s.slot(slot)
	if err != nil {
		return err
	}
	sb.revealed.addMove(move)
	ok := sb.filter(func(c *SetCandidate) float64 {
		if c.Synthetic || c.hasMove(move) {
			return 1
		}
		return 0
	})
	if !ok {
		return s.handleElimination(sb, "move "+move)
	}
	return nil
}

// ObserveItem pins the slot's held item.
func (s *Store) ObserveItem(slot int, item string) error {
	sb, err := s.slot(slot)
	if err != nil {
		return err
	}
	sb.revealed.item = item
	ok := sb.filter(func(c *SetCandidate) float64 {
		if c.Synthetic || c.allowsItem(item) {
			return 1
		}
		return 0
	})
	if !ok {
		return s.handleElimination(sb, "item "+item)
	}
	return nil
}

// ObserveAbility pins the slot's ability.
func (s *Store) ObserveAbility(slot int, ability string) error {
	sb, err := s.slot(slot)
	if err != nil {
		return err
	}
	sb.revealed.ability = ability
	ok := sb.filter(func(c *SetCandidate) float64 {
		if c.Synthetic || c.allowsAbility(ability) {
			return 1
		}
		return 0
	})
	if !ok {
		return s.handleElimination(sb, "ability "+ability)
	}
	return nil
}

// ObserveSpeedOrder records a turn-order inequality. An inequality against
// our own side becomes a per-slot bound filtered immediately; one between two
// opponent slots becomes a pairwise constraint enforced at sampling time.
func (s *Store) ObserveSpeedOrder(faster, slower SlotRef, mods SpeedModifiers) error {
	if faster.Ours && slower.Ours {
		return nil // nothing hidden involved
	}
	if !faster.Ours && !slower.Ours {
		if _, err := s.slot(faster.Slot); err != nil {
			return err
		}
		if _, err := s.slot(slower.Slot); err != nil {
			return err
		}
		s.pairs = append(s.pairs, pairBound{fastSlot: faster.Slot, slowSlot: slower.Slot, mods: mods})
		return nil
	}

	var sb *SlotBelief
	var bound speedBound
	var err error
	if faster.Ours {
		sb, err = s.slot(slower.Slot)
		bound = speedBound{rival: faster.Speed, faster: false, mods: mods}
	} else {
		sb, err = s.slot(faster.Slot)
		bound = speedBound{rival: slower.Speed, faster: true, mods: mods}
	}
	if err != nil {
		return err
	}
	sb.bounds = append(sb.bounds, bound)
	ok := sb.filter(func(c *SetCandidate) float64 {
		if c.Synthetic || candidateCanSatisfy(c, sb.revealed.item, sb.bounds) {
			return 1
		}
		return 0
	})
	if !ok {
		return s.handleElimination(sb, "speed order")
	}
	return nil
}

// ObserveHazardDamage infers the item from a switch-in over hazards: no
// damage pins protective boots; damage down-weights boots candidates without
// eliminating them.
func (s *Store) ObserveHazardDamage(slot int, tookDamage bool) error {
	const boots = "heavydutyboots"
	if !tookDamage {
		return s.ObserveItem(slot, boots)
	}
	sb, err := s.slot(slot)
	if err != nil {
		return err
	}
	sb.filter(func(c *SetCandidate) float64 {
		if len(c.Items) == 1 && c.Items[0] == boots {
			return 0.1
		}
		return 1
	})
	return nil
}

// Certainty returns the slot's certainty in [0, 1].
func (s *Store) Certainty(slot int) (float64, error) {
	sb, err := s.slot(slot)
	if err != nil {
		return 0, err
	}
	return sb.Certainty(), nil
}

// Candidates returns the slot's current weighted candidate set.
func (s *Store) Candidates(slot int) ([]SetCandidate, []float64, error) {
	sb, err := s.slot(slot)
	if err != nil {
		return nil, nil, err
	}
	cands, weights := sb.Candidates()
	return cands, weights, nil
}

func (s *Store) slot(slot int) (*SlotBelief, error) {
	sb, ok := s.slots[slot]
	if !ok {
		return nil, fmt.Errorf("no belief for opponent slot %d: species not revealed", slot)
	}
	return sb, nil
}

func (s *Store) handleElimination(sb *SlotBelief, cause string) error {
	if s.policy == RaiseError {
		// Leave the last consistent-but-empty state replaced by a synthetic
		// candidate so the store stays usable after the error is reported.
		s.substituteSynthetic(sb, cause)
		return &BeliefInconsistencyError{Slot: sb.Slot, Species: sb.Species, Cause: cause}
	}
	s.substituteSynthetic(sb, cause)
	return nil
}

func (s *Store) substituteSynthetic(sb *SlotBelief, cause string) {
	log.Warn().
		Int("slot", sb.Slot).
		Str("species", sb.Species).
		Str("cause", cause).
		Msg("belief eliminated every candidate, substituting flagged synthetic set")
	sb.cands = []SetCandidate{syntheticCandidate(s.dex, sb.Species, &sb.revealed)}
	sb.weights = []float64{1}
	sb.Synthetic = true
}

// SlotView is the frozen belief for one slot inside a Snapshot.
type SlotView struct {
	Slot      int
	Species   string
	Cands     []SetCandidate
	Weights   []float64
	Revealed  revealedInfo
	Bounds    []speedBound
	Synthetic bool
}

// Snapshot is the immutable copy of the store a whole decision samples from.
// Observation updates never touch an existing snapshot.
type Snapshot struct {
	Slots    []SlotView
	Pairs    []pairBound
	Team     TeamBelief
	TeamSize int
}

// Snapshot freezes the current belief. Slots are ordered by index.
func (s *Store) Snapshot() *Snapshot {
	snap := &Snapshot{
		Pairs:    append([]pairBound(nil), s.pairs...),
		Team:     s.team.clone(),
		TeamSize: s.teamSize,
	}
	indexes := make([]int, 0, len(s.slots))
	for i := range s.slots {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	for _, i := range indexes {
		sb := s.slots[i]
		cands, weights := sb.Candidates()
		view := SlotView{
			Slot:      sb.Slot,
			Species:   sb.Species,
			Cands:     cands,
			Weights:   weights,
			Synthetic: sb.Synthetic,
			Bounds:    append([]speedBound(nil), sb.bounds...),
		}
		view.Revealed.moves = append([]string(nil), sb.revealed.moves...)
		view.Revealed.item = sb.revealed.item
		view.Revealed.ability = sb.revealed.ability
		snap.Slots = append(snap.Slots, view)
	}
	return snap
}

// UnrevealedCount is how many opponent bench slots have never been seen.
func (sn *Snapshot) UnrevealedCount() int {
	n := sn.TeamSize - len(sn.Slots)
	if n < 0 {
		return 0
	}
	return n
}
