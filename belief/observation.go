package belief

import "github.com/EmoruwaTolu/ShowdownBattler/game"

// Observation is one discrete event from the battle feed. Applying an
// observation only ever narrows a belief; an excluded candidate is never
// reinstated within a battle.
type Observation interface {
	observation()
}

// SpeciesRevealed fires the first time an opponent slot is seen. It opens a
// slot belief over the species' role candidates and removes the species from
// the unseen team pool.
type SpeciesRevealed struct {
	Slot    int
	Species string
}

// MoveUsed records the opponent slot using a move.
type MoveUsed struct {
	Slot int
	Move string
}

// ItemRevealed pins a slot's held item.
type ItemRevealed struct {
	Slot int
	Item string
}

// AbilityRevealed pins a slot's ability.
type AbilityRevealed struct {
	Slot    int
	Ability string
}

// SlotRef names one participant of a speed-order observation. Our own side's
// effective speed is known exactly and is carried in Speed; opponent slots
// are referenced by index and constrained by the observation.
type SlotRef struct {
	Ours  bool
	Slot  int
	Speed float64 // effective speed, meaningful only when Ours
}

// SpeedModifiers is the context under which a turn-order inequality was
// observed: modifiers that applied to the opponent slot at that moment and
// must be backed out before constraining the base spread.
type SpeedModifiers struct {
	Stage  int // observed speed boost stage of the opponent slot
	Status game.Status
}

// SpeedOrder records that Faster acted before Slower at equal move priority,
// implying an inequality between their effective speeds.
type SpeedOrder struct {
	Faster    SlotRef
	Slower    SlotRef
	Modifiers SpeedModifiers
}

// HazardDamage is the switch-in item inference: entering over hazards without
// taking damage pins protective boots; taking damage argues against them.
type HazardDamage struct {
	Slot       int
	TookDamage bool
}

func (SpeciesRevealed) observation() {}
func (MoveUsed) observation()        {}
func (ItemRevealed) observation()    {}
func (AbilityRevealed) observation() {}
func (SpeedOrder) observation()      {}
func (HazardDamage) observation()    {}

// speedBound is one recorded one-sided constraint on an opponent slot's
// effective speed against a known value.
type speedBound struct {
	rival  float64 // known effective speed on our side
	faster bool    // true: slot must outspeed rival; false: slot must be slower
	mods   SpeedModifiers
}

// pairBound constrains two opponent slots against each other. It cannot be
// checked per slot and is enforced on the joint sample.
type pairBound struct {
	fastSlot int
	slowSlot int
	mods     SpeedModifiers
}

// satisfied reports whether an effective speed meets the bound.
func (b speedBound) satisfied(speed float64) bool {
	if b.faster {
		return speed > b.rival
	}
	return speed < b.rival
}

// candidateSpeed computes the effective speed a candidate would have had at
// observation time with the given item.
func candidateSpeed(c *SetCandidate, item string, mods SpeedModifiers) float64 {
	return game.EffectiveSpeed(c.Stats.Spe, mods.Stage, item, mods.Status)
}

// candidateCanSatisfy reports whether any item assignment consistent with the
// candidate (or the pinned item, if revealed) meets every recorded bound.
func candidateCanSatisfy(c *SetCandidate, pinnedItem string, bounds []speedBound) bool {
	items := c.Items
	if pinnedItem != "" {
		items = []string{pinnedItem}
	}
	if len(items) == 0 {
		items = []string{""}
	}
	for _, item := range items {
		ok := true
		for _, b := range bounds {
			if !b.satisfied(candidateSpeed(c, item, b.mods)) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// itemSatisfies reports whether one concrete item choice meets every bound.
func itemSatisfies(c *SetCandidate, item string, bounds []speedBound) bool {
	for _, b := range bounds {
		if !b.satisfied(candidateSpeed(c, item, b.mods)) {
			return false
		}
	}
	return true
}
