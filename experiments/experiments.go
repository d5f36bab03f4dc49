package experiments

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/EmoruwaTolu/ShowdownBattler/belief"
	"github.com/EmoruwaTolu/ShowdownBattler/engine"
	"github.com/EmoruwaTolu/ShowdownBattler/experiments/metrics"
	"github.com/EmoruwaTolu/ShowdownBattler/game"
	"github.com/EmoruwaTolu/ShowdownBattler/searcher"
)

const (
	NumBattles = 30 // Per config
	TeamSize   = 6
)

var strengthConfigs = []metrics.AgentConfig{
	{ID: 1, Goroutines: 1, Simulations: 50, MaxDepth: 4, CPuct: 1.6},
	{ID: 2, Goroutines: 1, Simulations: 200, MaxDepth: 4, CPuct: 1.6},
	{ID: 3, Goroutines: 1, Simulations: 800, MaxDepth: 4, CPuct: 1.6},
	{ID: 4, Goroutines: 4, Simulations: 3200, MaxDepth: 4, CPuct: 1.6},
}

// RunStrengthExperiment measures win rate against the scripted heuristic
// opponent as the simulation budget grows.
func RunStrengthExperiment() {
	runExperiment("strength", strengthConfigs)
}

// RunThroughputExperiment measures simulations per decision across goroutine
// counts at a fixed time budget.
func RunThroughputExperiment() {
	duration := 50 * time.Millisecond
	configs := []metrics.AgentConfig{
		{ID: 1, Goroutines: 1, Duration: duration, MaxDepth: 4, CPuct: 1.6},
		{ID: 2, Goroutines: 2, Duration: duration, MaxDepth: 4, CPuct: 1.6},
		{ID: 3, Goroutines: 4, Duration: duration, MaxDepth: 4, CPuct: 1.6},
		{ID: 4, Goroutines: 8, Duration: duration, MaxDepth: 4, CPuct: 1.6},
		{ID: 5, Goroutines: 16, Duration: duration, MaxDepth: 4, CPuct: 1.6},
	}
	runExperiment("throughput", configs)
}

func runExperiment(name string, configs []metrics.AgentConfig) {
	dex := game.DefaultDex()
	battleRecords := []metrics.BattleRecord{}
	decisionRecords := []metrics.DecisionRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for ci, config := range configs {
		log.Info().Msgf("starting config %d of %d: %+v...", ci+1, len(configs), config)

		for i := 0; i < NumBattles; i++ {
			seed := uint64(ci*NumBattles + i + 1)
			result, err := runBattle(dex, config, seed)
			if err != nil {
				log.Error().Err(err).Msgf("battle %d of config %d failed", i+1, config.ID)
				continue
			}

			id := uuid.NewString()
			battleRecords = append(battleRecords, metrics.BattleRecord{
				ID:           id,
				Agent:        config.ID,
				BattleMetric: result.Battle,
			})
			for _, dm := range result.Decisions {
				decisionRecords = append(decisionRecords, metrics.DecisionRecord{
					Battle:         id,
					DecisionMetric: dm,
				})
			}

			log.Info().Msgf("completed config %d of %d battle %d of %d with winner: %s",
				ci+1, len(configs), i+1, NumBattles, result.Winner)
		}
		log.Info().Msgf("completed config %d of %d", ci+1, len(configs))
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(name)
	if err != nil {
		panic(fmt.Sprintf("failed to create experiment writer: %v", err))
	}

	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		panic(fmt.Sprintf("failed to store agent configs: %v", err))
	}
	log.Info().Msg("stored agent configs")

	err = writer.WriteBattleRecords(battleRecords)
	if err != nil {
		panic(fmt.Sprintf("failed to write battle records: %v", err))
	}
	log.Info().Msg("stored battle records")

	err = writer.WriteDecisionRecords(decisionRecords)
	if err != nil {
		panic(fmt.Sprintf("failed to write decision records: %v", err))
	}
	log.Info().Msg("stored decision records")
}

// runBattle draws two disjoint teams from the dex and plays one battle of the
// configured agent against the scripted heuristic opponent.
func runBattle(dex *game.Dex, config metrics.AgentConfig, seed uint64) (engine.Result, error) {
	rng := rand.New(rand.NewSource(seed))
	ourTeam, theirTeam, err := drawTeams(dex, rng)
	if err != nil {
		return engine.Result{}, err
	}

	mcts := createMCTS(dex, config, seed)
	local := engine.NewLocal(dex,
		game.Side{Team: ourTeam},
		game.Side{Team: theirTeam},
		mcts,
		engine.WithEngineSeed(seed),
	)
	return local.Run()
}

// drawTeams splits a shuffled species list into two disjoint teams.
func drawTeams(dex *game.Dex, rng *rand.Rand) ([]game.Pokemon, []game.Pokemon, error) {
	names := dex.SpeciesNames()
	sort.Strings(names)
	if len(names) < 2*TeamSize {
		return nil, nil, fmt.Errorf("dex has %d species, need %d", len(names), 2*TeamSize)
	}
	perm := rng.Perm(len(names))

	ours := make([]string, TeamSize)
	theirs := make([]string, TeamSize)
	for i := 0; i < TeamSize; i++ {
		ours[i] = names[perm[i]]
		theirs[i] = names[perm[TeamSize+i]]
	}

	ourTeam, err := game.BuildTeam(dex, ours, rng)
	if err != nil {
		return nil, nil, err
	}
	theirTeam, err := game.BuildTeam(dex, theirs, rng)
	if err != nil {
		return nil, nil, err
	}
	return ourTeam, theirTeam, nil
}

func createMCTS(dex *game.Dex, config metrics.AgentConfig, seed uint64) *searcher.MCTS {
	options := []searcher.Option{
		searcher.WithGoroutines(config.Goroutines),
		searcher.WithSeed(seed),
		searcher.WithMetrics(),
	}
	if config.Simulations > 0 {
		options = append(options, searcher.WithSimulations(config.Simulations))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.MaxDepth > 0 {
		options = append(options, searcher.WithMaxDepth(config.MaxDepth))
	}
	if config.CPuct > 0 {
		options = append(options, searcher.WithCPuct(config.CPuct))
	}
	if config.Temperature > 0 {
		options = append(options, searcher.WithTemperature(config.Temperature))
	}

	determinizer := belief.NewDeterminizer(dex, 0)
	return searcher.NewMCTS(dex, determinizer, options...)
}
