package searcher

import (
	"errors"
	"math"
	"sort"

	"golang.org/x/exp/rand"

	"github.com/EmoruwaTolu/ShowdownBattler/game"
)

// normalizeVisits turns raw root visit counts into a distribution over legal
// actions. Actions never visited carry zero mass; illegal actions are absent
// entirely.
func normalizeVisits(visits map[game.Action]float64) map[game.Action]float64 {
	total := 0.0
	for _, v := range visits {
		total += v
	}
	out := make(map[game.Action]float64, len(visits))
	if total <= 0 {
		u := 1.0 / float64(len(visits))
		for a := range visits {
			out[a] = u
		}
		return out
	}
	for a, v := range visits {
		out[a] = v / total
	}
	return out
}

// pickAction applies the temperature policy to the visit distribution:
// argmax at T=0, otherwise sampling proportional to N^(1/T).
func pickAction(policy map[game.Action]float64, temperature float64, rng *rand.Rand) (game.Action, error) {
	if len(policy) == 0 {
		return game.Action{}, errors.New("empty policy")
	}

	actions := make([]game.Action, 0, len(policy))
	for a := range policy {
		actions = append(actions, a)
	}
	// Deterministic iteration order for reproducible sampling and ties.
	sortActions(actions)

	if temperature <= 1e-9 {
		best := actions[0]
		for _, a := range actions[1:] {
			if policy[a] > policy[best] {
				best = a
			}
		}
		return best, nil
	}

	weights := make([]float64, len(actions))
	total := 0.0
	for i, a := range actions {
		weights[i] = math.Pow(policy[a], 1.0/temperature)
		total += weights[i]
	}
	if total <= 0 {
		return actions[rng.Intn(len(actions))], nil
	}
	r := rng.Float64() * total
	acc := 0.0
	for i, a := range actions {
		acc += weights[i]
		if acc >= r {
			return a, nil
		}
	}
	return actions[len(actions)-1], nil
}

func sortActions(actions []game.Action) {
	sort.Slice(actions, func(i, j int) bool {
		return actionLess(actions[i], actions[j])
	})
}

func actionLess(a, b game.Action) bool {
	if a.Type != b.Type {
		return a.Type < b.Type
	}
	if a.Move != b.Move {
		return a.Move < b.Move
	}
	return a.Switch < b.Switch
}
