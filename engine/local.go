package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"swarm/agent"
	"swarm/draft"
	"swarm/metrics"
	"swarm/searcher"
)

type Option func(e *Local)

func WithFirst(side draft.Side) Option {
	return func(e *Local) {
		e.first = side
	}
}

// WithJudge scores the finished draft.
func WithJudge(judge searcher.Oracle) Option {
	return func(e *Local) {
		e.judge = judge
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Local) {
		e.logger = logger
	}
}

// Local runs both agents in process over one shared pool.
type Local struct {
	pool   draft.Pool
	seats  [2]*Adapter
	first  draft.Side
	judge  searcher.Oracle
	logger zerolog.Logger
}

func LocalEngine(pool draft.Pool, a, b agent.Agent, options ...Option) *Local {
	e := &Local{
		pool:   pool.Clone(),
		first:  draft.SideA,
		logger: log.Logger,
	}
	for _, option := range options {
		option(e)
	}
	e.seats[draft.SideA] = &Adapter{Agent: a, logger: e.logger}
	e.seats[draft.SideB] = &Adapter{Agent: b, logger: e.logger}
	return e
}

func (e *Local) Run() (Result, error) {
	if need := 2 * draft.PicksPerPlayer; e.pool.Len() < need {
		return Result{}, fmt.Errorf("%w: a draft needs %d monsters, have %d", draft.ErrPoolTooSmall, need, e.pool.Len())
	}

	start := time.Now()
	pool := e.pool.Clone()
	var res Result

	e.logger.Info().Msgf("side %s is starting", e.first)
	for i, turn := range draft.Turns(e.first) {
		own, opp := res.Rosters[turn.Side], res.Rosters[turn.Side.Other()]
		state, err := draft.NewState(own, opp, pool, draft.PickingPhase)
		if err != nil {
			return Result{}, fmt.Errorf("turn %d: %w", i+1, err)
		}

		picks, metric, fallback := e.seats[turn.Side].FindPicks(state, turn.Picks)
		for _, id := range picks {
			pool.Remove(id)
		}
		res.Rosters[turn.Side] = own.With(picks...)
		res.Moves = append(res.Moves, metrics.MoveMetric{
			Step:         i + 1,
			Side:         turn.Side,
			Picks:        picks,
			Fallback:     fallback,
			SearchMetric: metric,
		})
		if fallback {
			res.Draft.Fallbacks++
		}
		e.logger.Debug().Int("step", i+1).Str("side", turn.Side.String()).Interface("picks", picks).Msg("applied picks")
	}

	for _, side := range []draft.Side{draft.SideA, draft.SideB} {
		state, err := draft.NewState(res.Rosters[side], res.Rosters[side.Other()], draft.NewPool(), draft.BanningPhase)
		if err != nil {
			return Result{}, fmt.Errorf("ban: %w", err)
		}
		ban, fallback := e.seats[side].FindBan(state)
		res.Bans[side] = ban
		if fallback {
			res.Draft.Fallbacks++
		}
	}

	if e.judge != nil {
		res.Outcome = e.judge.Score(res.Combat(draft.SideA), res.Combat(draft.SideB))
	}

	end := time.Now()
	res.Draft.First = e.first
	res.Draft.StartTime = start
	res.Draft.EndTime = end
	res.Draft.Duration = end.Sub(start)
	res.Draft.TotalMoves = len(res.Moves)
	e.logger.Info().
		Interface("a", res.Rosters[draft.SideA]).
		Interface("b", res.Rosters[draft.SideB]).
		Interface("bans", res.Bans).
		Float64("outcome", res.Outcome).
		Msg("draft completed")
	return res, nil
}

// Adapter keeps a misbehaving agent from breaking the draft: illegal answers
// are replaced by the first legal ids in pool order.
type Adapter struct {
	Agent  agent.Agent
	logger zerolog.Logger
}

func (a *Adapter) FindPicks(state draft.State, required int) ([]draft.MonsterID, metrics.SearchMetric, bool) {
	rec, err := a.Agent.Recommend(state, required)
	if err == nil && legal(rec.Picks, state.Pool, required) {
		return rec.Picks, rec.Metric, false
	}
	a.logger.Warn().Err(err).Interface("picks", rec.Picks).Msg("agent returned illegal picks, falling back to pool order")
	return state.Pool.IDs()[:required], rec.Metric, true
}

// FindBan asks agents that can ban; everyone else bans the opponent's first
// pick.
func (a *Adapter) FindBan(state draft.State) (draft.MonsterID, bool) {
	if banner, ok := a.Agent.(agent.Banner); ok {
		ban, _, err := banner.RecommendBan(state)
		if err == nil && state.Opponent.Contains(ban.Target) {
			return ban.Target, false
		}
		a.logger.Warn().Err(err).Msg("agent returned an illegal ban")
	}
	return state.Opponent[0], true
}

func legal(picks []draft.MonsterID, pool draft.Pool, required int) bool {
	if len(picks) != required {
		return false
	}
	seen := make(map[draft.MonsterID]bool, len(picks))
	for _, id := range picks {
		if seen[id] || !pool.Contains(id) {
			return false
		}
		seen[id] = true
	}
	return true
}
