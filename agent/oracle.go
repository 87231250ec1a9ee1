package agent

import (
	"fmt"

	"swarm/draft"
	"swarm/metrics"
	"swarm/searcher"
)

type OracleAgent struct {
	searcher *searcher.Searcher
	safe     bool
}

// NewOracleAgent recommends by exhaustive search. With safe set it plays the
// ban-resistant variants.
func NewOracleAgent(s *searcher.Searcher, safe bool) *OracleAgent {
	return &OracleAgent{searcher: s, safe: safe}
}

func (a *OracleAgent) Recommend(state draft.State, required int) (Recommendation, error) {
	if err := draft.ValidatePickCount(required, state.Pool); err != nil {
		return Recommendation{}, fmt.Errorf("recommend: %w", err)
	}

	var (
		pick   searcher.Pick
		metric metrics.SearchMetric
		err    error
	)
	switch {
	case required == 1 && a.safe:
		pick, metric, err = a.searcher.SafePick(state)
	case required == 1:
		pick, metric, err = a.searcher.BestPick(state)
	case a.safe:
		pick, metric, err = a.searcher.SafePair(state)
	default:
		pick, metric, err = a.searcher.BestPair(state)
	}
	if err != nil {
		return Recommendation{}, fmt.Errorf("recommend: %w", err)
	}
	return Recommendation{
		Picks:   pick.IDs,
		Score:   pick.Score,
		Backend: OracleBackend,
		Metric:  metric,
	}, nil
}

func (a *OracleAgent) RecommendBan(state draft.State) (searcher.Ban, metrics.SearchMetric, error) {
	return a.searcher.BanTarget(state)
}
