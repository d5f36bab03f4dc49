package searcher

import (
	"sync/atomic"
	"time"
)

// SearchMetric summarizes one ChooseAction run.
type SearchMetric struct {
	Goroutines  int
	Duration    time.Duration
	Simulations int
	// Fallbacks counts flagged determinizations kept after rejection
	// sampling exhausted its retry bound.
	Fallbacks int
	// Terminals counts simulations that reached a real game end instead of
	// a depth-cutoff leaf evaluation.
	Terminals int
}

type Collector interface {
	Start(goroutines int)
	AddSimulation()
	AddFallback()
	AddTerminal()
	Complete() SearchMetric
}

type collector struct {
	goroutines  int
	startTime   time.Time
	simulations atomic.Int64
	fallbacks   atomic.Int64
	terminals   atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(goroutines int) {
	c.goroutines = goroutines
	c.startTime = time.Now()
	c.simulations.Store(0)
	c.fallbacks.Store(0)
	c.terminals.Store(0)
}

func (c *collector) AddSimulation() {
	c.simulations.Add(1)
}

func (c *collector) AddFallback() {
	c.fallbacks.Add(1)
}

func (c *collector) AddTerminal() {
	c.terminals.Add(1)
}

func (c *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:  c.goroutines,
		Duration:    time.Since(c.startTime),
		Simulations: int(c.simulations.Load()),
		Fallbacks:   int(c.fallbacks.Load()),
		Terminals:   int(c.terminals.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (dummyCollector) Start(int)              {}
func (dummyCollector) AddSimulation()         {}
func (dummyCollector) AddFallback()           {}
func (dummyCollector) AddTerminal()           {}
func (dummyCollector) Complete() SearchMetric { return SearchMetric{} }
