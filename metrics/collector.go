package metrics

import (
	"sync/atomic"
	"time"

	"swarm/draft"
)

// SearchMetric summarises the work behind one recommendation.
type SearchMetric struct {
	Mode        string
	Candidates  int
	Duration    time.Duration
	Evaluations int // Oracle calls
	Steps       int // Sequence model forward passes
	ForcedSpans int
}

// MoveMetric records one turn of a simulated draft.
type MoveMetric struct {
	Step     int
	Side     draft.Side
	Picks    []draft.MonsterID
	Fallback bool // The agent's answer was illegal and replaced
	SearchMetric
}

type DraftMetric struct {
	First      draft.Side
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
	Fallbacks  int
}

type Collector interface {
	Start(mode string, candidates int)
	AddEvaluation()
	AddStep()
	AddForcedSpan()
	Complete() SearchMetric
}

type collector struct {
	mode        string
	candidates  int
	startTime   time.Time
	evaluations atomic.Int32
	steps       atomic.Int32
	forcedSpans atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(mode string, candidates int) {
	m.startTime = time.Now()
	m.mode = mode
	m.candidates = candidates
}

func (m *collector) AddEvaluation() {
	m.evaluations.Add(1)
}

func (m *collector) AddStep() {
	m.steps.Add(1)
}

func (m *collector) AddForcedSpan() {
	m.forcedSpans.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Mode:        m.mode,
		Candidates:  m.candidates,
		Duration:    time.Since(m.startTime),
		Evaluations: int(m.evaluations.Load()),
		Steps:       int(m.steps.Load()),
		ForcedSpans: int(m.forcedSpans.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(mode string, candidates int) {}
func (m *dummyCollector) AddEvaluation()                    {}
func (m *dummyCollector) AddStep()                          {}
func (m *dummyCollector) AddForcedSpan()                    {}
func (m *dummyCollector) Complete() SearchMetric            { return SearchMetric{} }
