package searcher

import "time"

// SearchMetrics summarizes one search run.
type SearchMetrics struct {
	StartTime   time.Time
	Duration    time.Duration
	Expansions  int64
	OracleCalls int64
	Gaps        int64
	MaxFrontier int
}

// Collector accumulates metrics during a run.
type Collector interface {
	Start()
	AddExpansion()
	AddOracleCall()
	AddGap()
	ObserveFrontier(size int)
	Complete() SearchMetrics
}

type collector struct {
	startTime   time.Time
	expansions  int64
	oracleCalls int64
	gaps        int64
	maxFrontier int
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start() {
	c.startTime = time.Now()
}

func (c *collector) AddExpansion() {
	c.expansions++
}

func (c *collector) AddOracleCall() {
	c.oracleCalls++
}

func (c *collector) AddGap() {
	c.gaps++
}

func (c *collector) ObserveFrontier(size int) {
	if size > c.maxFrontier {
		c.maxFrontier = size
	}
}

func (c *collector) Complete() SearchMetrics {
	return SearchMetrics{
		StartTime:   c.startTime,
		Duration:    time.Since(c.startTime),
		Expansions:  c.expansions,
		OracleCalls: c.oracleCalls,
		Gaps:        c.gaps,
		MaxFrontier: c.maxFrontier,
	}
}

type dummyCollector struct{}

// NewDummyCollector returns a no-op Collector.
func NewDummyCollector() Collector {
	return dummyCollector{}
}

func (dummyCollector) Start()                  {}
func (dummyCollector) AddExpansion()           {}
func (dummyCollector) AddOracleCall()          {}
func (dummyCollector) AddGap()                 {}
func (dummyCollector) ObserveFrontier(int)     {}
func (dummyCollector) Complete() SearchMetrics { return SearchMetrics{} }
