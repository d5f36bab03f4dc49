package game

// DefaultDex returns the built-in candidate pool: a random-battle style role
// table for a roster of common species. Deployments with the full data file
// should prefer LoadDex.
func DefaultDex() *Dex {
	return &Dex{Moves: defaultMoves(), Species: defaultSpecies()}
}

func defaultMoves() map[string]MoveData {
	moves := []MoveData{
		{ID: "struggle", Type: "normal", Category: Physical, Power: 50, Accuracy: 1.0},
		{ID: "earthquake", Type: "ground", Category: Physical, Power: 100, Accuracy: 1.0},
		{ID: "dragonclaw", Type: "dragon", Category: Physical, Power: 80, Accuracy: 1.0},
		{ID: "outrage", Type: "dragon", Category: Physical, Power: 120, Accuracy: 1.0},
		{ID: "stoneedge", Type: "rock", Category: Physical, Power: 100, Accuracy: 0.8},
		{ID: "rockslide", Type: "rock", Category: Physical, Power: 75, Accuracy: 0.9},
		{ID: "firefang", Type: "fire", Category: Physical, Power: 65, Accuracy: 0.95, Inflicts: Burn, InflictOdds: 0.1},
		{ID: "swordsdance", Type: "normal", Category: StatusMove, Accuracy: 1.0, SelfBoostAtk: 2},
		{ID: "dragondance", Type: "dragon", Category: StatusMove, Accuracy: 1.0, SelfBoostAtk: 1, SelfBoostSpe: 1},
		{ID: "nastyplot", Type: "dark", Category: StatusMove, Accuracy: 1.0, SelfBoostSpA: 2},
		{ID: "shadowball", Type: "ghost", Category: Special, Power: 80, Accuracy: 1.0},
		{ID: "dracometeor", Type: "dragon", Category: Special, Power: 130, Accuracy: 0.9},
		{ID: "phantomforce", Type: "ghost", Category: Physical, Power: 90, Accuracy: 1.0},
		{ID: "uturn", Type: "bug", Category: Physical, Power: 70, Accuracy: 1.0},
		{ID: "suckerpunch", Type: "dark", Category: Physical, Power: 70, Accuracy: 1.0, Priority: 1},
		{ID: "aquajet", Type: "water", Category: Physical, Power: 40, Accuracy: 1.0, Priority: 1},
		{ID: "liquidation", Type: "water", Category: Physical, Power: 85, Accuracy: 1.0},
		{ID: "crunch", Type: "dark", Category: Physical, Power: 80, Accuracy: 1.0},
		{ID: "icefang", Type: "ice", Category: Physical, Power: 65, Accuracy: 0.95},
		{ID: "shellsmash", Type: "normal", Category: StatusMove, Accuracy: 1.0, SelfBoostAtk: 2, SelfBoostSpe: 2},
		{ID: "sacredfire", Type: "fire", Category: Physical, Power: 100, Accuracy: 0.95, Inflicts: Burn, InflictOdds: 0.5},
		{ID: "flareblitz", Type: "fire", Category: Physical, Power: 120, Accuracy: 1.0, Inflicts: Burn, InflictOdds: 0.1},
		{ID: "extremespeed", Type: "normal", Category: Physical, Power: 80, Accuracy: 1.0, Priority: 2},
		{ID: "playrough", Type: "fairy", Category: Physical, Power: 90, Accuracy: 0.9},
		{ID: "bellydrum", Type: "normal", Category: StatusMove, Accuracy: 1.0, SelfBoostAtk: 6},
		{ID: "knockoff", Type: "dark", Category: Physical, Power: 65, Accuracy: 1.0},
		{ID: "thunderbolt", Type: "electric", Category: Special, Power: 90, Accuracy: 1.0, Inflicts: Paralysis, InflictOdds: 0.1},
		{ID: "voltswitch", Type: "electric", Category: Special, Power: 70, Accuracy: 1.0},
		{ID: "flashcannon", Type: "steel", Category: Special, Power: 80, Accuracy: 1.0},
		{ID: "thunderwave", Type: "electric", Category: StatusMove, Accuracy: 0.9, Inflicts: Paralysis, InflictOdds: 1.0},
		{ID: "bodypress", Type: "fighting", Category: Physical, Power: 80, Accuracy: 1.0},
		{ID: "bravebird", Type: "flying", Category: Physical, Power: 120, Accuracy: 1.0},
		{ID: "ironhead", Type: "steel", Category: Physical, Power: 80, Accuracy: 1.0},
		{ID: "sludgebomb", Type: "poison", Category: Special, Power: 90, Accuracy: 1.0, Inflicts: Poison, InflictOdds: 0.3},
		{ID: "scald", Type: "water", Category: Special, Power: 80, Accuracy: 1.0, Inflicts: Burn, InflictOdds: 0.3},
		{ID: "toxic", Type: "poison", Category: StatusMove, Accuracy: 0.9, Inflicts: Poison, InflictOdds: 1.0},
		{ID: "gigadrain", Type: "grass", Category: Special, Power: 75, Accuracy: 1.0},
		{ID: "dragonpulse", Type: "dragon", Category: Special, Power: 85, Accuracy: 1.0},
		{ID: "leafstorm", Type: "grass", Category: Special, Power: 130, Accuracy: 0.9},
		{ID: "earthpower", Type: "ground", Category: Special, Power: 90, Accuracy: 1.0},
		{ID: "icebeam", Type: "ice", Category: Special, Power: 90, Accuracy: 1.0},
		{ID: "willowisp", Type: "fire", Category: StatusMove, Accuracy: 0.85, Inflicts: Burn, InflictOdds: 1.0},
		{ID: "hex", Type: "ghost", Category: Special, Power: 65, Accuracy: 1.0},
	}
	out := make(map[string]MoveData, len(moves))
	for _, m := range moves {
		out[m.ID] = m
	}
	return out
}

func defaultSpecies() map[string]SpeciesData {
	species := []SpeciesData{
		{
			Name: "garchomp", Types: []TypeID{"dragon", "ground"},
			BaseStats: Stats{HP: 108, Atk: 130, Def: 95, SpA: 80, SpD: 85, Spe: 102}, Level: 76,
			Roles: []RoleData{
				{Name: "setupsweeper", Weight: 1, Moves: []string{"earthquake", "dragonclaw", "swordsdance", "stoneedge", "firefang"},
					Abilities: []string{"roughskin"}, Items: []string{"lifeorb", "leftovers"}},
				{Name: "wallbreaker", Weight: 1, Moves: []string{"earthquake", "outrage", "stoneedge", "firefang"},
					Abilities: []string{"roughskin"}, Items: []string{"choicescarf", "choiceband"}},
			},
		},
		{
			Name: "dragapult", Types: []TypeID{"dragon", "ghost"},
			BaseStats: Stats{HP: 88, Atk: 120, Def: 75, SpA: 100, SpD: 75, Spe: 142}, Level: 78,
			Roles: []RoleData{
				{Name: "fastattacker", Weight: 1, Moves: []string{"dracometeor", "shadowball", "uturn", "thunderbolt"},
					Abilities: []string{"infiltrator", "clearbody"}, Items: []string{"choicespecs", "heavydutyboots"}},
				{Name: "setupsweeper", Weight: 1, Moves: []string{"dragondance", "phantomforce", "dragonclaw", "suckerpunch"},
					Abilities: []string{"clearbody"}, Items: []string{"lifeorb", "leftovers"}},
			},
		},
		{
			Name: "drednaw", Types: []TypeID{"water", "rock"},
			BaseStats: Stats{HP: 90, Atk: 115, Def: 90, SpA: 48, SpD: 68, Spe: 74}, Level: 84,
			Roles: []RoleData{
				{Name: "shellsmash", Weight: 1, Moves: []string{"shellsmash", "liquidation", "stoneedge", "earthquake", "icefang"},
					Abilities: []string{"swiftswim", "shellarmor"}, Items: []string{"lifeorb", "whiteherb"}},
			},
		},
		{
			Name: "tyranitar", Types: []TypeID{"rock", "dark"},
			BaseStats: Stats{HP: 100, Atk: 134, Def: 110, SpA: 95, SpD: 100, Spe: 61}, Level: 80,
			Roles: []RoleData{
				{Name: "bulkyattacker", Weight: 1, Moves: []string{"stoneedge", "crunch", "earthquake", "icefang"},
					Abilities: []string{"sandstream"}, Items: []string{"leftovers", "assaultvest"}},
				{Name: "setupsweeper", Weight: 1, Moves: []string{"dragondance", "stoneedge", "crunch", "earthquake"},
					Abilities: []string{"sandstream"}, Items: []string{"lifeorb"}},
			},
		},
		{
			Name: "entei", Types: []TypeID{"fire"},
			BaseStats: Stats{HP: 115, Atk: 115, Def: 85, SpA: 90, SpD: 75, Spe: 100}, Level: 78,
			Roles: []RoleData{
				{Name: "fastattacker", Weight: 1, Moves: []string{"sacredfire", "extremespeed", "stoneedge", "flareblitz"},
					Abilities: []string{"innerfocus"}, Items: []string{"choiceband", "heavydutyboots"}},
			},
		},
		{
			Name: "hydrapple", Types: []TypeID{"grass", "dragon"},
			BaseStats: Stats{HP: 106, Atk: 80, Def: 110, SpA: 120, SpD: 80, Spe: 44}, Level: 84,
			Roles: []RoleData{
				{Name: "bulkyattacker", Weight: 1, Moves: []string{"dragonpulse", "leafstorm", "gigadrain", "earthpower", "nastyplot"},
					Abilities: []string{"regenerator", "stickyhold"}, Items: []string{"leftovers", "heavydutyboots"}},
			},
		},
		{
			Name: "azumarill", Types: []TypeID{"water", "fairy"},
			BaseStats: Stats{HP: 100, Atk: 50, Def: 80, SpA: 60, SpD: 80, Spe: 50}, Level: 82,
			Roles: []RoleData{
				{Name: "bellydrum", Weight: 1, Moves: []string{"bellydrum", "aquajet", "playrough", "liquidation"},
					Abilities: []string{"hugepower"}, Items: []string{"sitrusberry"}},
				{Name: "bulkyattacker", Weight: 1, Moves: []string{"liquidation", "playrough", "aquajet", "knockoff"},
					Abilities: []string{"hugepower"}, Items: []string{"choiceband", "leftovers"}},
			},
		},
		{
			Name: "magnezone", Types: []TypeID{"electric", "steel"},
			BaseStats: Stats{HP: 70, Atk: 70, Def: 115, SpA: 130, SpD: 90, Spe: 60}, Level: 82,
			Roles: []RoleData{
				{Name: "bulkyattacker", Weight: 1, Moves: []string{"thunderbolt", "flashcannon", "voltswitch", "bodypress", "thunderwave"},
					Abilities: []string{"magnetpull", "sturdy"}, Items: []string{"choicescarf", "leftovers", "assaultvest"}},
			},
		},
		{
			Name: "corviknight", Types: []TypeID{"flying", "steel"},
			BaseStats: Stats{HP: 98, Atk: 87, Def: 105, SpA: 53, SpD: 85, Spe: 67}, Level: 82,
			Roles: []RoleData{
				{Name: "bulkysupport", Weight: 1, Moves: []string{"bravebird", "ironhead", "bodypress", "uturn"},
					Abilities: []string{"pressure", "mirrorarmor"}, Items: []string{"leftovers", "rockyhelmet"}},
			},
		},
		{
			Name: "toxapex", Types: []TypeID{"poison", "water"},
			BaseStats: Stats{HP: 50, Atk: 63, Def: 152, SpA: 53, SpD: 142, Spe: 35}, Level: 84,
			Roles: []RoleData{
				{Name: "bulkysupport", Weight: 1, Moves: []string{"scald", "sludgebomb", "toxic", "hex"},
					Abilities: []string{"regenerator"}, Items: []string{"blacksludge", "rockyhelmet"}},
			},
		},
		{
			Name: "rotomwash", Types: []TypeID{"electric", "water"},
			BaseStats: Stats{HP: 50, Atk: 65, Def: 107, SpA: 105, SpD: 107, Spe: 86}, Level: 84,
			Roles: []RoleData{
				{Name: "bulkysupport", Weight: 1, Moves: []string{"scald", "thunderbolt", "voltswitch", "willowisp", "thunderwave"},
					Abilities: []string{"levitate"}, Items: []string{"leftovers", "choicescarf"}},
			},
		},
		{
			Name: "weavile", Types: []TypeID{"dark", "ice"},
			BaseStats: Stats{HP: 70, Atk: 120, Def: 65, SpA: 45, SpD: 85, Spe: 125}, Level: 78,
			Roles: []RoleData{
				{Name: "fastattacker", Weight: 1, Moves: []string{"knockoff", "icefang", "suckerpunch", "swordsdance"},
					Abilities: []string{"pressure", "pickpocket"}, Items: []string{"heavydutyboots", "lifeorb"}},
			},
		},
	}
	out := make(map[string]SpeciesData, len(species))
	for _, s := range species {
		out[s.Name] = s
	}
	return out
}
