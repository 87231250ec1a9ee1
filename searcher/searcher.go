// Package searcher turns a win-probability oracle into picks and bans by
// exhaustive enumeration and by worst-case (minimax) enumeration over ban
// responses. Every mode is a pure function of the draft state and the oracle.
package searcher

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"swarm/draft"
	"swarm/metrics"
)

var ErrEmptyPool = errors.New("no candidate to search")

// Oracle scores roster a against roster b; higher is better for a.
type Oracle interface {
	Score(a, b draft.Roster) float64
}

type OracleFunc func(a, b draft.Roster) float64

func (f OracleFunc) Score(a, b draft.Roster) float64 {
	return f(a, b)
}

const (
	ModePick     = "pick"
	ModePair     = "pair"
	ModeSafePick = "safe-pick"
	ModeSafePair = "safe-pair"
	ModeBan      = "ban"
	ModeRank     = "rank"
)

// DefaultSlots is the roster width handed to the oracle.
const DefaultSlots = 4

type Option func(s *Searcher)

func WithSlots(slots int) Option {
	return func(s *Searcher) {
		if slots > 0 {
			s.slots = slots
		}
	}
}

// WithPadding sets the sentinel used to fill empty slots. The sentinel is
// never proposed as a candidate.
func WithPadding(pad draft.MonsterID) Option {
	return func(s *Searcher) {
		s.pad = pad
	}
}

func WithMetrics() Option {
	return func(s *Searcher) {
		s.newCollector = metrics.NewCollector
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Searcher) {
		s.logger = logger
	}
}

// Searcher holds no per-request state and may serve concurrent requests when
// its oracle can.
type Searcher struct {
	oracle       Oracle
	slots        int
	pad          draft.MonsterID
	newCollector func() metrics.Collector
	logger       zerolog.Logger
}

func NewSearcher(oracle Oracle, options ...Option) *Searcher {
	s := &Searcher{ // Default values
		oracle:       oracle,
		slots:        DefaultSlots,
		pad:          draft.NoPick,
		newCollector: metrics.NewDummyCollector,
		logger:       log.Logger,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Pick is a recommended set of ids with the score that selected it.
type Pick struct {
	IDs   []draft.MonsterID
	Score float64
}

// Ban is a recommended opponent slot to ban.
type Ban struct {
	Target draft.MonsterID
	Slot   int
	Score  float64
}

// run carries the per-call collector so concurrent searches never share one.
type run struct {
	*Searcher
	metrics metrics.Collector
}

func (s *Searcher) start(mode string, candidates int) run {
	r := run{Searcher: s, metrics: s.newCollector()}
	r.metrics.Start(mode, candidates)
	return r
}

func (r run) score(a, b draft.Roster) float64 {
	r.metrics.AddEvaluation()
	return r.oracle.Score(a.Padded(r.slots, r.pad), b.Padded(r.slots, r.pad))
}

// expected scores own against opp. A roster longer than the slot count will
// lose a monster to the opponent's ban, so it is scored as the mean over every
// single removal rather than truncated.
func (r run) expected(own, opp draft.Roster) float64 {
	if len(own) <= r.slots {
		return r.score(own, opp)
	}
	removals := own.Removals()
	total := 0.0
	for _, rest := range removals {
		total += r.expected(rest, opp)
	}
	return total / float64(len(removals))
}

// candidates lists the pool in order, skipping the padding sentinel.
func (s *Searcher) candidates(pool draft.Pool, min int) ([]draft.MonsterID, error) {
	ids := pool.IDs()
	out := ids[:0]
	for _, id := range ids {
		if id == s.pad {
			s.logger.Debug().Msgf("skipping padding sentinel %d in candidate pool", id)
			continue
		}
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil, ErrEmptyPool
	}
	if len(out) < min {
		return nil, draft.ErrPoolTooSmall
	}
	return out, nil
}
