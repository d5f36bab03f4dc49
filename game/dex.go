package game

import (
	"encoding/json"
	"fmt"
	"os"
)

// TypeID is a lowercase type name ("fire", "water", ...).
type TypeID string

// MoveCategory splits moves into damage classes.
type MoveCategory int

const (
	Physical MoveCategory = iota
	Special
	StatusMove
)

// MoveData is the static definition of one move.
type MoveData struct {
	ID       string       `json:"id"`
	Type     TypeID       `json:"type"`
	Category MoveCategory `json:"category"`
	Power    int          `json:"power"`
	Accuracy float64      `json:"accuracy"` // in [0, 1]
	Priority int          `json:"priority"`

	// Secondary effects used by the forward model.
	Inflicts     Status  `json:"inflicts,omitempty"`
	InflictOdds  float64 `json:"inflictOdds,omitempty"`
	SelfBoostAtk int     `json:"selfBoostAtk,omitempty"`
	SelfBoostSpA int     `json:"selfBoostSpA,omitempty"`
	SelfBoostSpe int     `json:"selfBoostSpe,omitempty"`
}

// RoleData is one hypothesized complete set for a species: the pool a sampled
// moveset, ability, and item are drawn from. Mirrors one random-battle role.
type RoleData struct {
	Name      string   `json:"name"`
	Moves     []string `json:"moves"`
	Abilities []string `json:"abilities"`
	Items     []string `json:"items"`
	Weight    float64  `json:"weight"`
}

// SpeciesData is the static dex entry for one species.
type SpeciesData struct {
	Name      string     `json:"name"`
	Types     []TypeID   `json:"types"`
	BaseStats Stats      `json:"baseStats"`
	Level     int        `json:"level"`
	Roles     []RoleData `json:"roles"`
}

// Dex is the read-only candidate pool the belief model draws from.
type Dex struct {
	Species map[string]SpeciesData `json:"species"`
	Moves   map[string]MoveData    `json:"moves"`
}

// LoadDex reads a dex from a JSON file.
func LoadDex(path string) (*Dex, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dex file: %w", err)
	}
	var d Dex
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to parse dex file: %w", err)
	}
	return &d, nil
}

// MoveByID looks up a move, returning a harmless placeholder for unknown ids
// so a stale determinization cannot crash a simulation.
func (d *Dex) MoveByID(id string) MoveData {
	if m, ok := d.Moves[id]; ok {
		return m
	}
	return MoveData{ID: id, Type: "normal", Category: Physical, Power: 50, Accuracy: 1.0}
}

func (d *Dex) SpeciesByName(name string) (SpeciesData, bool) {
	s, ok := d.Species[name]
	return s, ok
}

// SpeciesNames returns every species key. Order is unspecified.
func (d *Dex) SpeciesNames() []string {
	names := make([]string, 0, len(d.Species))
	for name := range d.Species {
		names = append(names, name)
	}
	return names
}

// typeChart stores only the non-neutral matchups, attacker -> defender.
var typeChart = map[TypeID]map[TypeID]float64{
	"fire":     {"grass": 2, "ice": 2, "bug": 2, "steel": 2, "fire": 0.5, "water": 0.5, "rock": 0.5, "dragon": 0.5},
	"water":    {"fire": 2, "ground": 2, "rock": 2, "water": 0.5, "grass": 0.5, "dragon": 0.5},
	"grass":    {"water": 2, "ground": 2, "rock": 2, "fire": 0.5, "grass": 0.5, "poison": 0.5, "flying": 0.5, "bug": 0.5, "dragon": 0.5, "steel": 0.5},
	"electric": {"water": 2, "flying": 2, "electric": 0.5, "grass": 0.5, "dragon": 0.5, "ground": 0},
	"ice":      {"grass": 2, "ground": 2, "flying": 2, "dragon": 2, "fire": 0.5, "water": 0.5, "ice": 0.5, "steel": 0.5},
	"fighting": {"normal": 2, "ice": 2, "rock": 2, "dark": 2, "steel": 2, "poison": 0.5, "flying": 0.5, "psychic": 0.5, "bug": 0.5, "fairy": 0.5, "ghost": 0},
	"poison":   {"grass": 2, "fairy": 2, "poison": 0.5, "ground": 0.5, "rock": 0.5, "ghost": 0.5, "steel": 0},
	"ground":   {"fire": 2, "electric": 2, "poison": 2, "rock": 2, "steel": 2, "grass": 0.5, "bug": 0.5, "flying": 0},
	"flying":   {"grass": 2, "fighting": 2, "bug": 2, "electric": 0.5, "rock": 0.5, "steel": 0.5},
	"psychic":  {"fighting": 2, "poison": 2, "psychic": 0.5, "steel": 0.5, "dark": 0},
	"bug":      {"grass": 2, "psychic": 2, "dark": 2, "fire": 0.5, "fighting": 0.5, "poison": 0.5, "flying": 0.5, "ghost": 0.5, "steel": 0.5, "fairy": 0.5},
	"rock":     {"fire": 2, "ice": 2, "flying": 2, "bug": 2, "fighting": 0.5, "ground": 0.5, "steel": 0.5},
	"ghost":    {"psychic": 2, "ghost": 2, "dark": 0.5, "normal": 0},
	"dragon":   {"dragon": 2, "steel": 0.5, "fairy": 0},
	"dark":     {"psychic": 2, "ghost": 2, "fighting": 0.5, "dark": 0.5, "fairy": 0.5},
	"steel":    {"ice": 2, "rock": 2, "fairy": 2, "fire": 0.5, "water": 0.5, "electric": 0.5, "steel": 0.5},
	"fairy":    {"fighting": 2, "dragon": 2, "dark": 2, "fire": 0.5, "poison": 0.5, "steel": 0.5},
	"normal":   {"rock": 0.5, "steel": 0.5, "ghost": 0},
}

// TypeEffectiveness returns the combined multiplier of an attacking type
// against a defender's types.
func TypeEffectiveness(attacking TypeID, defending []TypeID) float64 {
	mult := 1.0
	row := typeChart[attacking]
	for _, dt := range defending {
		if m, ok := row[dt]; ok {
			mult *= m
		}
	}
	return mult
}
