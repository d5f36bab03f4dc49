package game

// Status is a major status condition. A Pokemon carries at most one.
type Status int

const (
	NoStatus Status = iota
	Burn
	Paralysis
	Poison
	Sleep
)

func (s Status) String() string {
	switch s {
	case Burn:
		return "brn"
	case Paralysis:
		return "par"
	case Poison:
		return "psn"
	case Sleep:
		return "slp"
	}
	return "none"
}

// Stats holds final (level-adjusted) stat values.
type Stats struct {
	HP  int
	Atk int
	Def int
	SpA int
	SpD int
	Spe int
}

// Boosts are stat stages in [-6, 6].
type Boosts struct {
	Atk int
	Def int
	SpA int
	SpD int
	Spe int
}

// StageMultiplier converts a boost stage to its stat multiplier.
func StageMultiplier(stage int) float64 {
	if stage > 6 {
		stage = 6
	} else if stage < -6 {
		stage = -6
	}
	if stage >= 0 {
		return float64(2+stage) / 2.0
	}
	return 2.0 / float64(2-stage)
}

// Pokemon is one fully concrete battle participant. For the searching side
// this is the known half of the state; for the opponent it is produced by a
// Determinization.
type Pokemon struct {
	Species string
	Level   int
	Types   []TypeID
	Stats   Stats
	Moves   []string // move ids, at most 4
	Item    string
	Ability string

	HP     float64 // fraction of max, 0 = fainted
	Status Status
	Boosts Boosts
}

func (p *Pokemon) Fainted() bool { return p.HP <= 0 }

// EffectiveSpeed applies boost stages, paralysis, and the speed items to the
// base Spe stat. This is the quantity speed-order observations constrain.
func (p *Pokemon) EffectiveSpeed() float64 {
	return EffectiveSpeed(p.Stats.Spe, p.Boosts.Spe, p.Item, p.Status)
}

func EffectiveSpeed(spe int, stage int, item string, status Status) float64 {
	s := float64(spe) * StageMultiplier(stage)
	if item == "choicescarf" {
		s *= 1.5
	}
	if status == Paralysis {
		s *= 0.5
	}
	return s
}

// CalcStats computes final stats from base stats at the given level, using
// the flat random-battle spread (85 IV-equivalent, neutral nature).
func CalcStats(base Stats, level int) Stats {
	stat := func(b int) int {
		return (2*b+85)*level/100 + 5
	}
	return Stats{
		HP:  (2*base.HP+85)*level/100 + level + 10,
		Atk: stat(base.Atk),
		Def: stat(base.Def),
		SpA: stat(base.SpA),
		SpD: stat(base.SpD),
		Spe: stat(base.Spe),
	}
}
