package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/EmoruwaTolu/ShowdownBattler/belief"
	"github.com/EmoruwaTolu/ShowdownBattler/searcher"
)

// Config is the full runtime configuration, loadable from YAML.
type Config struct {
	LogLevel string       `yaml:"log_level"`
	DexPath  string       `yaml:"dex_path"`
	Search   SearchConfig `yaml:"search"`
	Belief   BeliefConfig `yaml:"belief"`
}

// SearchConfig maps onto the searcher options. Exactly one of Simulations and
// Duration should be positive.
type SearchConfig struct {
	Simulations int           `yaml:"simulations"`
	Duration    time.Duration `yaml:"duration"`
	Goroutines  int           `yaml:"goroutines"`
	MaxDepth    int           `yaml:"max_depth"`
	CPuct       float64       `yaml:"c_puct"`
	Temperature float64       `yaml:"temperature"`
	Seed        uint64        `yaml:"seed"`
}

// BeliefConfig configures the belief store and determinizer.
type BeliefConfig struct {
	// MaxRetries bounds rejection sampling in the determinizer.
	MaxRetries int `yaml:"max_retries"`
	// OnInconsistency is "substitute" or "error".
	OnInconsistency string `yaml:"on_inconsistency"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LogLevel: "info",
		Search: SearchConfig{
			Simulations: 1000,
			Goroutines:  1,
			MaxDepth:    4,
			CPuct:       1.6,
			Temperature: 0,
			Seed:        1,
		},
		Belief: BeliefConfig{
			MaxRetries:      20,
			OnInconsistency: "substitute",
		},
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Search.Simulations <= 0 && c.Search.Duration <= 0 {
		return fmt.Errorf("search needs a simulations or duration budget")
	}
	switch c.Belief.OnInconsistency {
	case "", "substitute", "error":
	default:
		return fmt.Errorf("unknown on_inconsistency %q", c.Belief.OnInconsistency)
	}
	return nil
}

// SearchOptions translates the search section into searcher options.
func (c SearchConfig) SearchOptions() []searcher.Option {
	options := []searcher.Option{
		searcher.WithGoroutines(c.Goroutines),
		searcher.WithMaxDepth(c.MaxDepth),
		searcher.WithCPuct(c.CPuct),
		searcher.WithTemperature(c.Temperature),
		searcher.WithSeed(c.Seed),
	}
	if c.Simulations > 0 {
		options = append(options, searcher.WithSimulations(c.Simulations))
	}
	if c.Duration > 0 {
		options = append(options, searcher.WithDuration(c.Duration))
	}
	return options
}

// StoreOptions translates the belief section into store options.
func (c BeliefConfig) StoreOptions() []belief.StoreOption {
	if c.OnInconsistency == "error" {
		return []belief.StoreOption{belief.WithInconsistencyPolicy(belief.RaiseError)}
	}
	return nil
}
