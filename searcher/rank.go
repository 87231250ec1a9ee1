package searcher

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"

	"swarm/draft"
	"swarm/metrics"
)

// RankPairs scores unordered candidate pairs and returns them from weakest to
// strongest. With sample > 0 only that many pairs, drawn uniformly with rng,
// are scored.
func (s *Searcher) RankPairs(state draft.State, sample int, rng *rand.Rand) ([]Pick, metrics.SearchMetric, error) {
	candidates, err := s.candidates(state.Pool, 2)
	if err != nil {
		return nil, metrics.SearchMetric{}, fmt.Errorf("%s: %w", ModeRank, err)
	}

	var pairs [][2]draft.MonsterID
	for i := range candidates {
		for j := i + 1; j < len(candidates); j++ {
			pairs = append(pairs, [2]draft.MonsterID{candidates[i], candidates[j]})
		}
	}
	if sample > 0 && sample < len(pairs) {
		if rng == nil {
			return nil, metrics.SearchMetric{}, fmt.Errorf("%s: sampling needs a random source", ModeRank)
		}
		sampled := make([][2]draft.MonsterID, sample)
		for i, p := range rng.Perm(len(pairs))[:sample] {
			sampled[i] = pairs[p]
		}
		pairs = sampled
	}

	r := s.start(ModeRank, len(candidates))
	ranked := make([]Pick, len(pairs))
	for i, p := range pairs {
		ranked[i] = Pick{
			IDs:   []draft.MonsterID{p[0], p[1]},
			Score: r.expected(state.Own.With(p[0], p[1]), state.Opponent),
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score < ranked[j].Score
	})
	return ranked, r.metrics.Complete(), nil
}
