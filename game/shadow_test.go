package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func testMon(t *testing.T, dex *Dex, species string, item string, moves ...string) Pokemon {
	t.Helper()
	data, ok := dex.SpeciesByName(species)
	require.True(t, ok, "species %q should be in the dex", species)
	return Pokemon{
		Species: data.Name,
		Level:   data.Level,
		Types:   data.Types,
		Stats:   CalcStats(data.BaseStats, data.Level),
		Moves:   moves,
		Item:    item,
		HP:      1.0,
	}
}

func TestLegalActions(t *testing.T) {
	dex := DefaultDex()

	t.Run("moves plus healthy bench switches", func(t *testing.T) {
		us := Side{Team: []Pokemon{
			testMon(t, dex, "garchomp", "", "earthquake", "dragonclaw"),
			testMon(t, dex, "azumarill", "", "aquajet"),
			testMon(t, dex, "weavile", "", "knockoff"),
		}}
		them := Side{Team: []Pokemon{testMon(t, dex, "toxapex", "", "scald")}}
		state := NewShadowState(dex, us, them)

		actions := state.LegalActions()

		require.Len(t, actions, 4, "two moves and two switches")
		require.Contains(t, actions, Action{Type: MoveAction, Move: "earthquake"})
		require.Contains(t, actions, Action{Type: SwitchAction, Switch: 1})
		require.Contains(t, actions, Action{Type: SwitchAction, Switch: 2})
	})

	t.Run("fainted bench slots are not switch targets", func(t *testing.T) {
		bench := testMon(t, dex, "azumarill", "", "aquajet")
		bench.HP = 0
		us := Side{Team: []Pokemon{
			testMon(t, dex, "garchomp", "", "earthquake"),
			bench,
		}}
		them := Side{Team: []Pokemon{testMon(t, dex, "toxapex", "", "scald")}}
		state := NewShadowState(dex, us, them)

		actions := state.LegalActions()

		require.Len(t, actions, 1)
		require.Equal(t, Action{Type: MoveAction, Move: "earthquake"}, actions[0])
	})

	t.Run("terminal state has no actions", func(t *testing.T) {
		dead := testMon(t, dex, "garchomp", "", "earthquake")
		dead.HP = 0
		state := NewShadowState(dex,
			Side{Team: []Pokemon{dead}},
			Side{Team: []Pokemon{testMon(t, dex, "toxapex", "", "scald")}})

		require.True(t, state.Terminal())
		require.Empty(t, state.LegalActions())
	})
}

func TestApplyImmutability(t *testing.T) {
	dex := DefaultDex()
	us := Side{Team: []Pokemon{testMon(t, dex, "garchomp", "", "earthquake")}}
	them := Side{Team: []Pokemon{testMon(t, dex, "toxapex", "", "scald")}}
	state := NewShadowState(dex, us, them)
	rng := rand.New(rand.NewSource(1))

	next := state.Apply(
		Action{Type: MoveAction, Move: "earthquake"},
		Action{Type: MoveAction, Move: "scald"},
		rng)

	require.NotSame(t, state, next)
	require.Equal(t, 1.0, state.Us.ActiveMon().HP, "original state should be untouched")
	require.Equal(t, 1.0, state.Them.ActiveMon().HP, "original state should be untouched")
	require.Equal(t, 1, next.Turn)
	require.Less(t, next.Them.ActiveMon().HP, 1.0, "earthquake should damage toxapex")
}

func TestApplyOrdering(t *testing.T) {
	dex := DefaultDex()

	t.Run("switch resolves before the opposing move", func(t *testing.T) {
		us := Side{Team: []Pokemon{
			testMon(t, dex, "garchomp", "", "earthquake"),
			testMon(t, dex, "corviknight", "", "ironhead"),
		}}
		them := Side{Team: []Pokemon{testMon(t, dex, "weavile", "", "icefang")}}
		state := NewShadowState(dex, us, them)
		rng := rand.New(rand.NewSource(1))

		next := state.Apply(
			Action{Type: SwitchAction, Switch: 1},
			Action{Type: MoveAction, Move: "icefang"},
			rng)

		require.Equal(t, 1, next.Us.Active, "switch should have resolved")
		require.Equal(t, 1.0, next.Us.Team[0].HP, "the outgoing garchomp should not take the ice hit")
	})

	t.Run("higher priority move goes first", func(t *testing.T) {
		// Weak azumarill against entei: extremespeed (priority 2) KOs before
		// the slower aquajet (priority 1) can fire.
		azu := testMon(t, dex, "azumarill", "", "aquajet")
		azu.HP = 0.01
		us := Side{Team: []Pokemon{azu}}
		them := Side{Team: []Pokemon{testMon(t, dex, "entei", "", "extremespeed")}}
		state := NewShadowState(dex, us, them)
		rng := rand.New(rand.NewSource(1))

		next := state.Apply(
			Action{Type: MoveAction, Move: "aquajet"},
			Action{Type: MoveAction, Move: "extremespeed"},
			rng)

		require.True(t, next.Us.Team[0].Fainted(), "azumarill should be KOed first")
		require.Equal(t, 1.0, next.Them.ActiveMon().HP, "aquajet should never fire")
	})

	t.Run("faster side moves first at equal priority", func(t *testing.T) {
		// Weavile far outspeeds hydrapple; a KO prevents the counterattack.
		hydra := testMon(t, dex, "hydrapple", "", "dragonpulse")
		hydra.HP = 0.01
		them := Side{Team: []Pokemon{hydra}}
		us := Side{Team: []Pokemon{testMon(t, dex, "weavile", "", "icefang")}}
		state := NewShadowState(dex, us, them)

		// icefang is 95% accurate; find a seed where it lands.
		for seed := uint64(1); seed < 20; seed++ {
			rng := rand.New(rand.NewSource(seed))
			next := state.Apply(
				Action{Type: MoveAction, Move: "icefang"},
				Action{Type: MoveAction, Move: "dragonpulse"},
				rng)
			if next.Them.Team[0].Fainted() {
				require.Equal(t, 1.0, next.Us.ActiveMon().HP, "hydrapple should never get a move off")
				return
			}
		}
		t.Fatal("icefang missed on every seed")
	})
}

func TestApplyFaintReplacement(t *testing.T) {
	dex := DefaultDex()
	frail := testMon(t, dex, "weavile", "", "knockoff")
	frail.HP = 0.01
	us := Side{Team: []Pokemon{
		frail,
		testMon(t, dex, "corviknight", "", "ironhead"),
	}}
	them := Side{Team: []Pokemon{testMon(t, dex, "entei", "", "flareblitz")}}
	state := NewShadowState(dex, us, them)
	rng := rand.New(rand.NewSource(1))

	next := state.Apply(
		Action{Type: MoveAction, Move: "knockoff"},
		Action{Type: MoveAction, Move: "flareblitz"},
		rng)

	require.True(t, next.Us.Team[0].Fainted())
	require.Equal(t, 1, next.Us.Active, "a healthy bench slot should have replaced the fainted active")
}

func TestOutcome(t *testing.T) {
	dex := DefaultDex()
	alive := testMon(t, dex, "garchomp", "", "earthquake")
	dead := testMon(t, dex, "toxapex", "", "scald")
	dead.HP = 0

	t.Run("we win when their side is defeated", func(t *testing.T) {
		state := NewShadowState(dex, Side{Team: []Pokemon{alive}}, Side{Team: []Pokemon{dead}})
		require.True(t, state.Terminal())
		require.Equal(t, 1.0, state.Outcome())
	})

	t.Run("we lose when our side is defeated", func(t *testing.T) {
		state := NewShadowState(dex, Side{Team: []Pokemon{dead}}, Side{Team: []Pokemon{alive}})
		require.Equal(t, -1.0, state.Outcome())
	})

	t.Run("non-terminal states are neutral", func(t *testing.T) {
		state := NewShadowState(dex, Side{Team: []Pokemon{alive}}, Side{Team: []Pokemon{alive}})
		require.False(t, state.Terminal())
		require.Equal(t, 0.0, state.Outcome())
	})
}

func TestMirror(t *testing.T) {
	dex := DefaultDex()
	us := Side{Team: []Pokemon{testMon(t, dex, "garchomp", "", "earthquake")}}
	them := Side{Team: []Pokemon{testMon(t, dex, "toxapex", "", "scald")}}
	state := NewShadowState(dex, us, them)

	mirror := state.Mirror()

	require.Equal(t, "toxapex", mirror.Us.ActiveMon().Species)
	require.Equal(t, "garchomp", mirror.Them.ActiveMon().Species)
}

func TestDamageFraction(t *testing.T) {
	dex := DefaultDex()
	garchomp := testMon(t, dex, "garchomp", "", "earthquake")
	magnezone := testMon(t, dex, "magnezone", "", "thunderbolt")
	toxapex := testMon(t, dex, "toxapex", "", "scald")

	t.Run("type effectiveness scales damage", func(t *testing.T) {
		eq := dex.MoveByID("earthquake")
		vsMagnezone := DamageFraction(&garchomp, &magnezone, eq)
		vsToxapex := DamageFraction(&garchomp, &toxapex, eq)
		require.Greater(t, vsMagnezone, vsToxapex, "ground hits electric/steel 4x and poison/water 2x")
	})

	t.Run("immunity zeroes damage", func(t *testing.T) {
		tb := dex.MoveByID("thunderbolt")
		require.Equal(t, 0.0, DamageFraction(&magnezone, &garchomp, tb), "ground is immune to electric")
	})

	t.Run("burn halves physical damage", func(t *testing.T) {
		eq := dex.MoveByID("earthquake")
		healthy := DamageFraction(&garchomp, &toxapex, eq)
		burned := garchomp
		burned.Status = Burn
		require.InDelta(t, healthy/2, DamageFraction(&burned, &toxapex, eq), 1e-9)
	})

	t.Run("status moves deal no damage", func(t *testing.T) {
		sd := dex.MoveByID("swordsdance")
		require.Equal(t, 0.0, DamageFraction(&garchomp, &toxapex, sd))
	})

	t.Run("choice band boosts physical only", func(t *testing.T) {
		eq := dex.MoveByID("earthquake")
		plain := DamageFraction(&garchomp, &toxapex, eq)
		banded := garchomp
		banded.Item = "choiceband"
		require.InDelta(t, plain*1.5, DamageFraction(&banded, &toxapex, eq), 1e-9)
	})
}

func TestStatusMoves(t *testing.T) {
	dex := DefaultDex()

	t.Run("setup move raises boosts", func(t *testing.T) {
		us := Side{Team: []Pokemon{testMon(t, dex, "garchomp", "", "swordsdance")}}
		them := Side{Team: []Pokemon{testMon(t, dex, "toxapex", "", "toxic")}}
		state := NewShadowState(dex, us, them)

		// toxic is 90% accurate; just assert our own boost applied.
		rng := rand.New(rand.NewSource(3))
		next := state.Apply(
			Action{Type: MoveAction, Move: "swordsdance"},
			Action{Type: MoveAction, Move: "toxic"},
			rng)

		require.Equal(t, 2, next.Us.ActiveMon().Boosts.Atk)
	})

	t.Run("boosts reset on switch out", func(t *testing.T) {
		boosted := testMon(t, dex, "garchomp", "", "earthquake")
		boosted.Boosts.Atk = 4
		us := Side{Team: []Pokemon{
			boosted,
			testMon(t, dex, "corviknight", "", "ironhead"),
		}}
		them := Side{Team: []Pokemon{testMon(t, dex, "toxapex", "", "scald")}}
		state := NewShadowState(dex, us, them)
		rng := rand.New(rand.NewSource(1))

		next := state.Apply(
			Action{Type: SwitchAction, Switch: 1},
			Action{Type: MoveAction, Move: "scald"},
			rng)

		require.Equal(t, 0, next.Us.Team[0].Boosts.Atk)
	})
}

func TestEndOfTurnChip(t *testing.T) {
	dex := DefaultDex()
	burned := testMon(t, dex, "corviknight", "", "ironhead")
	burned.Status = Burn
	us := Side{Team: []Pokemon{burned}}
	them := Side{Team: []Pokemon{testMon(t, dex, "toxapex", "", "toxic")}}
	state := NewShadowState(dex, us, them)
	rng := rand.New(rand.NewSource(1))

	// toxic cannot land on an already burned target
	next := state.Apply(
		Action{Type: MoveAction, Move: "ironhead"},
		Action{Type: MoveAction, Move: "toxic"},
		rng)

	require.LessOrEqual(t, next.Us.ActiveMon().HP, 1.0-1.0/16.0, "burn chip should apply at end of turn")
}
