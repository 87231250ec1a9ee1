// Package agent turns a draft state into a recommendation, either by searching
// with the scoring oracle or by asking a sequence model and repairing its
// answer.
package agent

import (
	"swarm/draft"
	"swarm/metrics"
	"swarm/searcher"
)

type Backend string

const (
	OracleBackend     Backend = "oracle"
	GenerativeBackend Backend = "generative"
)

type Recommendation struct {
	Picks   []draft.MonsterID
	Score   float64 // Oracle backend only
	Backend Backend
	// Outcome names how the generative backend's answer was repaired.
	Outcome string
	Metric  metrics.SearchMetric
}

type Agent interface {
	// Recommend returns distinct ids drawn from state.Pool for the acting
	// player's turn.
	Recommend(state draft.State, required int) (Recommendation, error)
}

// Banner picks which opponent monster to ban once both rosters are full.
type Banner interface {
	RecommendBan(state draft.State) (searcher.Ban, metrics.SearchMetric, error)
}
