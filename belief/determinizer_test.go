package belief

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/EmoruwaTolu/ShowdownBattler/game"
)

func TestSampleRespectsObservations(t *testing.T) {
	dex := game.DefaultDex()
	s := NewStore(dex, Roster{TeamSize: 6})
	require.NoError(t, s.RevealSpecies(0, "garchomp"))
	require.NoError(t, s.ObserveMove(0, "swordsdance"))
	require.NoError(t, s.ObserveItem(0, "lifeorb"))

	d := NewDeterminizer(dex, 0)
	snap := s.Snapshot()
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 50; i++ {
		det, err := d.Sample(snap, rng)
		require.NoError(t, err)

		set, ok := det.Slots[0]
		require.True(t, ok)
		require.Equal(t, "setupsweeper", set.Candidate.Role, "only one role carries swordsdance")
		require.Equal(t, "lifeorb", set.Item, "the revealed item is pinned")
		require.Contains(t, set.Moves, "swordsdance", "revealed moves must be in the sampled set")
		require.LessOrEqual(t, len(set.Moves), 4)
		require.False(t, det.Fallback)
	}
}

func TestSampleBench(t *testing.T) {
	dex := game.DefaultDex()
	s := NewStore(dex, Roster{TeamSize: 6})
	require.NoError(t, s.RevealSpecies(0, "garchomp"))
	require.NoError(t, s.RevealSpecies(1, "entei"))

	d := NewDeterminizer(dex, 0)
	snap := s.Snapshot()
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 20; i++ {
		det, err := d.Sample(snap, rng)
		require.NoError(t, err)
		require.Len(t, det.Bench, 4, "six slots minus two revealed")

		seen := map[string]bool{"garchomp": true, "entei": true}
		for _, set := range det.Bench {
			require.False(t, seen[set.Candidate.Species], "species must be sampled without replacement")
			seen[set.Candidate.Species] = true
			require.NotEmpty(t, set.Moves)
		}
	}
}

func TestSampleSpeedBound(t *testing.T) {
	dex := game.DefaultDex()
	s := NewStore(dex, Roster{TeamSize: 6})
	require.NoError(t, s.RevealSpecies(0, "magnezone"))
	// Magnezone outsped our 200 speed; only the scarf set can do that.
	require.NoError(t, s.ObserveSpeedOrder(
		SlotRef{Slot: 0},
		SlotRef{Ours: true, Speed: 200},
		SpeedModifiers{}))

	d := NewDeterminizer(dex, 0)
	snap := s.Snapshot()
	rng := rand.New(rand.NewSource(5))

	for i := 0; i < 30; i++ {
		det, err := d.Sample(snap, rng)
		require.NoError(t, err)
		require.Equal(t, "choicescarf", det.Slots[0].Item)
		require.False(t, det.Fallback)
	}
}

func TestSampleCertainSlotIsStable(t *testing.T) {
	dex := game.DefaultDex()
	s := NewStore(dex, Roster{TeamSize: 6})
	require.NoError(t, s.RevealSpecies(0, "drednaw"))

	certainty, err := s.Certainty(0)
	require.NoError(t, err)
	require.Equal(t, 1.0, certainty, "drednaw has a single role")

	d := NewDeterminizer(dex, 0)
	snap := s.Snapshot()
	rng := rand.New(rand.NewSource(9))

	for i := 0; i < 10; i++ {
		det, errSample := d.Sample(snap, rng)
		require.NoError(t, errSample)
		require.Equal(t, "shellsmash", det.Slots[0].Candidate.Role)
	}
}

func TestSampleInfeasiblePairFallsBack(t *testing.T) {
	dex := game.DefaultDex()
	s := NewStore(dex, Roster{TeamSize: 6})
	require.NoError(t, s.RevealSpecies(0, "toxapex"))
	require.NoError(t, s.RevealSpecies(1, "weavile"))
	// No toxapex set outspeeds any weavile set; the pair constraint can never
	// hold and the sampler must flag the fallback.
	require.NoError(t, s.ObserveSpeedOrder(SlotRef{Slot: 0}, SlotRef{Slot: 1}, SpeedModifiers{}))

	d := NewDeterminizer(dex, 5)
	snap := s.Snapshot()
	rng := rand.New(rand.NewSource(2))

	det, err := d.Sample(snap, rng)
	require.NoError(t, err)
	require.True(t, det.Fallback)
}

func TestSampleNilSnapshot(t *testing.T) {
	d := NewDeterminizer(game.DefaultDex(), 0)
	_, err := d.Sample(nil, rand.New(rand.NewSource(1)))
	require.Error(t, err)
}

func TestDeterminizedSetPokemon(t *testing.T) {
	dex := game.DefaultDex()
	cands, _ := CandidatesFor(dex, "entei")
	require.NotEmpty(t, cands)

	set := DeterminizedSet{
		Candidate: cands[0],
		Moves:     []string{"sacredfire", "extremespeed"},
		Item:      "choiceband",
		Ability:   "innerfocus",
	}
	mon := set.Pokemon(0.6, game.Burn, game.Boosts{Atk: 1})

	require.Equal(t, "entei", mon.Species)
	require.Equal(t, 0.6, mon.HP)
	require.Equal(t, game.Burn, mon.Status)
	require.Equal(t, 1, mon.Boosts.Atk)
	require.Equal(t, "choiceband", mon.Item)
	require.Equal(t, cands[0].Stats, mon.Stats)
}
