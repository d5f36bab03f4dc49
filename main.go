package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/EmoruwaTolu/ShowdownBattler/belief"
	"github.com/EmoruwaTolu/ShowdownBattler/config"
	"github.com/EmoruwaTolu/ShowdownBattler/engine"
	"github.com/EmoruwaTolu/ShowdownBattler/experiments"
	"github.com/EmoruwaTolu/ShowdownBattler/game"
	"github.com/EmoruwaTolu/ShowdownBattler/searcher"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	experiment := flag.String("experiment", "", "Run an experiment instead of a demo battle: strength or throughput")
	showTree := flag.Bool("tree", false, "Print the search tree of each decision")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}
	setupLogging(cfg.LogLevel)

	switch *experiment {
	case "":
		runDemoBattle(cfg, *showTree)
	case "strength":
		experiments.RunStrengthExperiment()
	case "throughput":
		experiments.RunThroughputExperiment()
	default:
		log.Fatal().Msgf("unknown experiment %q", *experiment)
	}
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

// runDemoBattle plays one full battle of the search agent against the
// scripted heuristic opponent on two fixed teams.
func runDemoBattle(cfg config.Config, showTree bool) {
	dex, err := loadDex(cfg.DexPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load dex")
	}

	rng := rand.New(rand.NewSource(cfg.Search.Seed))
	ourTeam, err := game.BuildTeam(dex, []string{
		"garchomp", "dragapult", "tyranitar", "azumarill", "corviknight", "rotomwash",
	}, rng)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build our team")
	}
	theirTeam, err := game.BuildTeam(dex, []string{
		"drednaw", "entei", "hydrapple", "magnezone", "toxapex", "weavile",
	}, rng)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build their team")
	}

	determinizer := belief.NewDeterminizer(dex, cfg.Belief.MaxRetries)
	options := append(cfg.Search.SearchOptions(), searcher.WithMetrics())
	mcts := searcher.NewMCTS(dex, determinizer, options...)

	engineOptions := []engine.LocalOption{
		engine.WithEngineSeed(cfg.Search.Seed),
		engine.WithStoreOptions(cfg.Belief.StoreOptions()...),
	}
	if showTree {
		engineOptions = append(engineOptions, engine.WithDecisionHook(func(turn int, d searcher.Decision) {
			fmt.Printf("turn %d:\n%s\n", turn, searcher.FormatTree(d, 2, 5))
		}))
	}

	local := engine.NewLocal(dex, game.Side{Team: ourTeam}, game.Side{Team: theirTeam}, mcts, engineOptions...)
	result, err := local.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("battle failed")
	}

	fmt.Printf("winner: %s after %d turns (%s)\n", result.Winner, result.Turns, result.Battle.Duration)
}

func loadDex(path string) (*game.Dex, error) {
	if path == "" {
		return game.DefaultDex(), nil
	}
	return game.LoadDex(path)
}
