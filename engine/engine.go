package engine

import (
	"swarm/draft"
	"swarm/metrics"
)

type Engine interface {
	// Run plays a draft from the first pick to both bans.
	Run() (Result, error)
}

type Result struct {
	Rosters [2]draft.Roster // Indexed by draft.Side
	// Bans[s] is the monster side s removed from the other side's roster.
	Bans [2]draft.MonsterID
	// Outcome is the judge's score of the post-ban rosters from side A; zero
	// without a judge.
	Outcome float64
	Draft   metrics.DraftMetric
	Moves   []metrics.MoveMetric
}

// Combat is the side's roster once the opponent's ban is applied.
func (r Result) Combat(side draft.Side) draft.Roster {
	banned := r.Bans[side.Other()]
	out := make(draft.Roster, 0, len(r.Rosters[side]))
	for _, id := range r.Rosters[side] {
		if id != banned {
			out = append(out, id)
		}
	}
	return out
}
