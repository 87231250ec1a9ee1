// Package generator drives a sequence model to write the acting player's next
// picks. Inside a pick the vocabulary is restricted to the tokens of monsters
// still in the candidate pool, so the model can only spell legal ids.
package generator

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"swarm/draft"
	"swarm/metrics"
)

const (
	ModeConstrained   = "constrained"
	ModeUnconstrained = "unconstrained"
)

type Config struct {
	// Temperature softens the first forced token of each pick.
	Temperature float64
	// Sampling draws the first forced token instead of taking the argmax.
	Sampling bool
	// MaxSteps bounds constrained decoding.
	MaxSteps int
	// FreeSteps bounds plain decoding when there is no candidate pool.
	FreeSteps int
	// PickTokens is how many tokens spell one monster id.
	PickTokens int
	EndToken   int
	// Marker is the text that opens a pick.
	Marker string
}

func DefaultConfig() Config {
	return Config{
		Temperature: 0.1,
		Sampling:    true,
		MaxSteps:    30,
		FreeSteps:   20,
		PickTokens:  2,
		EndToken:    0,
		Marker:      draft.Marker,
	}
}

type Option func(g *Generator)

func WithConfig(cfg Config) Option {
	return func(g *Generator) {
		g.cfg = cfg
	}
}

func WithMetrics() Option {
	return func(g *Generator) {
		g.newCollector = metrics.NewCollector
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// Generator is immutable after construction. Each Generate call owns its token
// buffer, candidate map and random source.
type Generator struct {
	model        LanguageModel
	cfg          Config
	isMarker     func(int) bool
	newCollector func() metrics.Collector
	logger       zerolog.Logger
}

func NewGenerator(model LanguageModel, options ...Option) *Generator {
	g := &Generator{
		model:        model,
		cfg:          DefaultConfig(),
		newCollector: metrics.NewDummyCollector,
		logger:       log.Logger,
	}
	for _, option := range options {
		option(g)
	}
	if g.cfg.PickTokens <= 0 {
		g.cfg.PickTokens = DefaultConfig().PickTokens
	}
	g.isMarker = markerClassifier(model, g.cfg.Marker)
	return g
}

// Result is the raw generation before repair.
type Result struct {
	Prompt       string
	Continuation string
	Picks        []draft.MonsterID
	Constrained  bool
	Metric       metrics.SearchMetric
}

// Generate writes the acting player's next picks. An empty pool switches to
// plain greedy decoding with no forced spans.
func (g *Generator) Generate(own, opponent draft.Roster, pool draft.Pool, rng *rand.Rand) (Result, error) {
	prompt := BuildPrompt(own, opponent)
	tokens := g.model.Encode(prompt)
	collector := g.newCollector()

	constrained := pool.Len() > 0
	if constrained {
		collector.Start(ModeConstrained, pool.Len())
		d := &decoder{
			Generator:  g,
			rng:        rng,
			metrics:    collector,
			tokens:     tokens,
			candidates: g.encodeCandidates(pool),
		}
		tokens = d.run()
	} else {
		collector.Start(ModeUnconstrained, 0)
		tokens = g.greedy(tokens, collector)
	}

	text := g.model.Decode(tokens)
	g.logger.Debug().Str("text", text).Bool("constrained", constrained).Msg("generated draft continuation")

	continuation, err := Continuation(text)
	if err != nil {
		return Result{}, fmt.Errorf("generate: %w", err)
	}
	return Result{
		Prompt:       prompt,
		Continuation: continuation,
		Picks:        Extract(continuation),
		Constrained:  constrained,
		Metric:       collector.Complete(),
	}, nil
}

// greedy is plain argmax decoding for FreeSteps tokens or until the end token.
func (g *Generator) greedy(tokens []int, collector metrics.Collector) []int {
	for step := 0; step < g.cfg.FreeSteps; step++ {
		collector.AddStep()
		next := argmax(g.model.Forward(tokens))
		if next == g.cfg.EndToken {
			break
		}
		tokens = append(tokens, next)
	}
	return tokens
}

type candidate struct {
	id     draft.MonsterID
	tokens []int
}

// encodeCandidates keeps pool ids whose text spells exactly PickTokens tokens;
// forced spans cannot steer the model towards any other id.
func (g *Generator) encodeCandidates(pool draft.Pool) []candidate {
	var out []candidate
	for _, id := range pool.IDs() {
		tokens := g.model.Encode(id.String())
		if len(tokens) != g.cfg.PickTokens {
			g.logger.Debug().Msgf("monster %d encodes to %d tokens, not %d; excluded from forced spans", id, len(tokens), g.cfg.PickTokens)
			continue
		}
		out = append(out, candidate{id: id, tokens: tokens})
	}
	return out
}
