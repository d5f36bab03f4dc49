package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStageMultiplier(t *testing.T) {
	require.Equal(t, 1.0, StageMultiplier(0))
	require.Equal(t, 1.5, StageMultiplier(1))
	require.Equal(t, 2.0, StageMultiplier(2))
	require.Equal(t, 4.0, StageMultiplier(6))
	require.InDelta(t, 2.0/3.0, StageMultiplier(-1), 1e-12)
	require.Equal(t, 0.5, StageMultiplier(-2))
	require.Equal(t, 4.0, StageMultiplier(9), "stages should clamp at +6")
	require.Equal(t, 0.25, StageMultiplier(-9), "stages should clamp at -6")
}

func TestEffectiveSpeed(t *testing.T) {
	t.Run("choice scarf multiplies speed", func(t *testing.T) {
		require.Equal(t, 150.0, EffectiveSpeed(100, 0, "choicescarf", NoStatus))
	})

	t.Run("paralysis halves speed", func(t *testing.T) {
		require.Equal(t, 50.0, EffectiveSpeed(100, 0, "", Paralysis))
	})

	t.Run("boost stages apply before items", func(t *testing.T) {
		require.Equal(t, 300.0, EffectiveSpeed(100, 2, "choicescarf", NoStatus))
	})

	t.Run("scarf and paralysis stack", func(t *testing.T) {
		require.Equal(t, 75.0, EffectiveSpeed(100, 0, "choicescarf", Paralysis))
	})
}

func TestCalcStats(t *testing.T) {
	stats := CalcStats(Stats{HP: 100, Atk: 100, Def: 100, SpA: 100, SpD: 100, Spe: 100}, 80)

	require.Equal(t, 318, stats.HP)
	require.Equal(t, 233, stats.Atk)
	require.Equal(t, 233, stats.Spe)
}

func TestFainted(t *testing.T) {
	mon := Pokemon{HP: 0.5}
	require.False(t, mon.Fainted())
	mon.HP = 0
	require.True(t, mon.Fainted())
}
