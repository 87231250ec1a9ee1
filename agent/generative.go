package agent

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"swarm/draft"
	"swarm/generator"
	"swarm/random"
	"swarm/repair"
)

type GenerativeOption func(a *GenerativeAgent)

func WithSeed(seed random.SeedFunc) GenerativeOption {
	return func(a *GenerativeAgent) {
		if seed != nil {
			a.seed = seed
		}
	}
}

func WithLogger(logger zerolog.Logger) GenerativeOption {
	return func(a *GenerativeAgent) {
		a.logger = logger
	}
}

type GenerativeAgent struct {
	generator *generator.Generator
	validator *repair.Validator
	seed      random.SeedFunc
	logger    zerolog.Logger
}

// NewGenerativeAgent asks the sequence model for picks and repairs whatever it
// writes. Every request draws its own generator from seed.
func NewGenerativeAgent(gen *generator.Generator, validator *repair.Validator, options ...GenerativeOption) *GenerativeAgent {
	a := &GenerativeAgent{
		generator: gen,
		validator: validator,
		seed:      random.NewSeed,
		logger:    log.Logger,
	}
	for _, option := range options {
		option(a)
	}
	return a
}

// Recommend never fails on a malformed generation: anything unusable is left
// for the repair layer to replace.
func (a *GenerativeAgent) Recommend(state draft.State, required int) (Recommendation, error) {
	if err := draft.ValidatePickCount(required, state.Pool); err != nil {
		return Recommendation{}, fmt.Errorf("recommend: %w", err)
	}
	rng := random.New(a.seed)

	result, err := a.generator.Generate(state.Own, state.Opponent, state.Pool, rng)
	if err != nil {
		a.logger.Warn().Err(err).Msg("discarding generation")
	}

	out, err := a.validator.Repair(repair.Input{
		Extracted: result.Picks,
		Pool:      state.Pool,
		Required:  required,
		Own:       state.Own,
		Opponent:  state.Opponent,
	}, rng)
	if err != nil {
		return Recommendation{}, fmt.Errorf("recommend: %w", err)
	}
	return Recommendation{
		Picks:   out.Picks,
		Backend: GenerativeBackend,
		Outcome: out.Outcome.String(),
		Metric:  result.Metric,
	}, nil
}
