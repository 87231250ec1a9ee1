// Package repair turns whatever the generator wrote into a legal answer: the
// right number of distinct ids, all drawn from the candidate pool.
package repair

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"swarm/draft"
	"swarm/random"
)

type Outcome int

const (
	// Accepted means the generation already held enough legal picks.
	Accepted Outcome = iota
	// PhaseOverride means a single legal pick was accepted because the draft
	// is at an opening or closing single-pick turn.
	PhaseOverride
	// TopUp means legal picks were completed with random ones.
	TopUp
	// Randomized means no legal pick was generated at all.
	Randomized
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case PhaseOverride:
		return "phase-override"
	case TopUp:
		return "top-up"
	default:
		return "randomized"
	}
}

// Chooser draws n distinct ids from ids.
type Chooser func(ids []draft.MonsterID, n int, rng *rand.Rand) []draft.MonsterID

// Uniform draws without replacement, every subset equally likely.
func Uniform(ids []draft.MonsterID, n int, rng *rand.Rand) []draft.MonsterID {
	out := make([]draft.MonsterID, n)
	for i, p := range rng.Perm(len(ids))[:n] {
		out[i] = ids[p]
	}
	return out
}

type Input struct {
	Extracted []draft.MonsterID
	Pool      draft.Pool
	Required  int
	Own       draft.Roster
	Opponent  draft.Roster
}

type Output struct {
	Picks   []draft.MonsterID
	Outcome Outcome
}

type Option func(v *Validator)

func WithLogger(logger zerolog.Logger) Option {
	return func(v *Validator) {
		v.logger = logger
	}
}

func WithChooser(choose Chooser) Option {
	return func(v *Validator) {
		if choose != nil {
			v.choose = choose
		}
	}
}

type Validator struct {
	logger zerolog.Logger
	choose Chooser
}

func NewValidator(options ...Option) *Validator {
	v := &Validator{
		logger: log.Logger,
		choose: Uniform,
	}
	for _, option := range options {
		option(v)
	}
	return v
}

// Repair matches extracted ids against the pool, consuming each match so it
// cannot be accepted twice, then fills any shortfall at random. It only fails
// on a pick count or pool size the caller should never have sent.
func (v *Validator) Repair(in Input, rng *rand.Rand) (Output, error) {
	if err := draft.ValidatePickCount(in.Required, in.Pool); err != nil {
		return Output{}, err
	}
	if rng == nil {
		rng = random.New(random.NewSeed)
	}

	remaining := in.Pool.Clone()
	var matched []draft.MonsterID
	for _, id := range in.Extracted {
		if remaining.Remove(id) {
			matched = append(matched, id)
		}
	}

	switch {
	case len(matched) >= in.Required:
		if len(matched) > in.Required {
			v.logger.Debug().Interface("matched", matched).Msgf("keeping first %d generated picks", in.Required)
		}
		return Output{Picks: matched[:in.Required], Outcome: Accepted}, nil

	case len(matched) == 1 && in.Required == 2 && draft.SinglePickPhase(in.Own, in.Opponent):
		return Output{Picks: matched, Outcome: PhaseOverride}, nil

	case len(matched) > 0:
		fill := v.choose(remaining.IDs(), in.Required-len(matched), rng)
		v.logger.Warn().Interface("matched", matched).Interface("random", fill).Msg("random completion")
		return Output{Picks: append(matched, fill...), Outcome: TopUp}, nil

	default:
		picks := v.choose(remaining.IDs(), in.Required, rng)
		v.logger.Warn().Interface("extracted", in.Extracted).Interface("random", picks).Msg("fully randomized")
		return Output{Picks: picks, Outcome: Randomized}, nil
	}
}
