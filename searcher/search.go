package searcher

import (
	"fmt"
	"math"

	"swarm/draft"
	"swarm/metrics"
)

// BestPick scores every candidate added to the acting roster against the
// opponent's roster and keeps the first maximum in pool order. A completed
// roster that overflows the slot count is averaged over its removals.
func (s *Searcher) BestPick(state draft.State) (Pick, metrics.SearchMetric, error) {
	candidates, err := s.candidates(state.Pool, 1)
	if err != nil {
		return Pick{}, metrics.SearchMetric{}, fmt.Errorf("%s: %w", ModePick, err)
	}
	r := s.start(ModePick, len(candidates))

	best := Pick{Score: math.Inf(-1)}
	for _, c := range candidates {
		if v := r.expected(state.Own.With(c), state.Opponent); v > best.Score {
			best = Pick{IDs: []draft.MonsterID{c}, Score: v}
		}
	}
	return r.done(best)
}

// BestPair scores every ordered pair of distinct candidates. Order matters
// because the oracle reads roster slots positionally.
func (s *Searcher) BestPair(state draft.State) (Pick, metrics.SearchMetric, error) {
	candidates, err := s.candidates(state.Pool, 2)
	if err != nil {
		return Pick{}, metrics.SearchMetric{}, fmt.Errorf("%s: %w", ModePair, err)
	}
	r := s.start(ModePair, len(candidates))

	best := Pick{Score: math.Inf(-1)}
	for i, c1 := range candidates {
		for j, c2 := range candidates {
			if i == j {
				continue
			}
			if v := r.expected(state.Own.With(c1, c2), state.Opponent); v > best.Score {
				best = Pick{IDs: []draft.MonsterID{c1, c2}, Score: v}
			}
		}
	}
	return r.done(best)
}

// SafePick maximises, over candidates, the minimum score over every opponent
// slot removal combined with every removal from the completed own roster.
func (s *Searcher) SafePick(state draft.State) (Pick, metrics.SearchMetric, error) {
	candidates, err := s.candidates(state.Pool, 1)
	if err != nil {
		return Pick{}, metrics.SearchMetric{}, fmt.Errorf("%s: %w", ModeSafePick, err)
	}
	r := s.start(ModeSafePick, len(candidates))

	best := Pick{Score: math.Inf(-1)}
	for _, c := range candidates {
		if v := r.worstCase(state.Own.With(c), state.Opponent.Removals()); v > best.Score {
			best = Pick{IDs: []draft.MonsterID{c}, Score: v}
		}
	}
	return r.done(best)
}

// SafePair is the pair version of SafePick, but only the own roster loses a
// slot; the opponent roster is scored as given.
func (s *Searcher) SafePair(state draft.State) (Pick, metrics.SearchMetric, error) {
	candidates, err := s.candidates(state.Pool, 2)
	if err != nil {
		return Pick{}, metrics.SearchMetric{}, fmt.Errorf("%s: %w", ModeSafePair, err)
	}
	r := s.start(ModeSafePair, len(candidates))

	opponent := []draft.Roster{state.Opponent}
	best := Pick{Score: math.Inf(-1)}
	for i, c1 := range candidates {
		for j, c2 := range candidates {
			if i == j {
				continue
			}
			if v := r.worstCase(state.Own.With(c1, c2), opponent); v > best.Score {
				best = Pick{IDs: []draft.MonsterID{c1, c2}, Score: v}
			}
		}
	}
	return r.done(best)
}

// BanTarget needs two full rosters. For each opponent slot it computes the
// minimum score over removing one of the acting player's own slots, and
// returns the opponent slot whose removal keeps that minimum highest.
func (s *Searcher) BanTarget(state draft.State) (Ban, metrics.SearchMetric, error) {
	if len(state.Own) != draft.PicksPerPlayer || len(state.Opponent) != draft.PicksPerPlayer {
		return Ban{}, metrics.SearchMetric{}, fmt.Errorf("%s: %w: want %d v %d, got %d v %d", ModeBan,
			draft.ErrRosterSize, draft.PicksPerPlayer, draft.PicksPerPlayer, len(state.Own), len(state.Opponent))
	}
	r := s.start(ModeBan, len(state.Opponent))

	own := state.Own.Removals()
	best := Ban{Slot: -1, Score: math.Inf(-1)}
	for i, target := range state.Opponent {
		worst := math.Inf(1)
		for _, mine := range own {
			worst = math.Min(worst, r.score(mine, state.Opponent.Without(i)))
		}
		if worst > best.Score {
			best = Ban{Target: target, Slot: i, Score: worst}
		}
	}

	metric := r.metrics.Complete()
	s.logger.Debug().Str("mode", ModeBan).Int("slot", best.Slot).Msgf("ban %d with worst case %.4f", best.Target, best.Score)
	return best, metric, nil
}

// worstCase is the adversary's best answer: the lowest score over every
// pairing of an own-roster removal with one of the opponent rosters.
func (r run) worstCase(own draft.Roster, opponents []draft.Roster) float64 {
	worst := math.Inf(1)
	for _, opp := range opponents {
		for _, mine := range own.Removals() {
			worst = math.Min(worst, r.score(mine, opp))
		}
	}
	return worst
}

func (r run) done(best Pick) (Pick, metrics.SearchMetric, error) {
	metric := r.metrics.Complete()
	r.logger.Debug().Interface("ids", best.IDs).Msgf("best score %.4f", best.Score)
	return best, metric, nil
}
