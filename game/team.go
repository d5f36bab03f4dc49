package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// BuildTeam materializes one concrete Pokemon per species by sampling a role
// and drawing its moveset, item, and ability, the same pools the belief model
// hypothesizes over.
func BuildTeam(dex *Dex, species []string, rng *rand.Rand) ([]Pokemon, error) {
	team := make([]Pokemon, 0, len(species))
	for _, name := range species {
		data, ok := dex.SpeciesByName(name)
		if !ok {
			return nil, fmt.Errorf("species %q not in dex", name)
		}
		team = append(team, buildMon(data, rng))
	}
	return team, nil
}

func buildMon(data SpeciesData, rng *rand.Rand) Pokemon {
	mon := Pokemon{
		Species: data.Name,
		Level:   data.Level,
		Types:   append([]TypeID(nil), data.Types...),
		Stats:   CalcStats(data.BaseStats, data.Level),
		HP:      1.0,
	}
	if len(data.Roles) == 0 {
		return mon
	}
	role := sampleRole(data.Roles, rng)
	mon.Moves = sampleMoveset(role.Moves, rng)
	if len(role.Items) > 0 {
		mon.Item = role.Items[rng.Intn(len(role.Items))]
	}
	if len(role.Abilities) > 0 {
		mon.Ability = role.Abilities[rng.Intn(len(role.Abilities))]
	}
	return mon
}

func sampleRole(roles []RoleData, rng *rand.Rand) RoleData {
	total := 0.0
	for _, r := range roles {
		total += r.Weight
	}
	if total <= 0 {
		return roles[rng.Intn(len(roles))]
	}
	r := rng.Float64() * total
	acc := 0.0
	for _, role := range roles {
		acc += role.Weight
		if acc >= r {
			return role
		}
	}
	return roles[len(roles)-1]
}

func sampleMoveset(pool []string, rng *rand.Rand) []string {
	if len(pool) <= 4 {
		return append([]string(nil), pool...)
	}
	idx := rng.Perm(len(pool))[:4]
	moves := make([]string, 0, 4)
	for _, i := range idx {
		moves = append(moves, pool[i])
	}
	return moves
}
