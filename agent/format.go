package agent

import (
	"fmt"
	"strings"

	"swarm/draft"
	"swarm/searcher"
)

// Namer resolves an id to a display name.
type Namer interface {
	Name(id draft.MonsterID) string
}

type tokenNamer struct{}

func (tokenNamer) Name(id draft.MonsterID) string {
	return id.Token()
}

// nameOf falls back to the token form when names has nothing for id.
func nameOf(names Namer, id draft.MonsterID) string {
	if name := names.Name(id); name != "" {
		return name
	}
	return id.Token()
}

// FormatRanking renders ranked pairs as the plain-text context handed to a
// language model, one line per pair in the given order.
func FormatRanking(ranked []searcher.Pick, names Namer) string {
	if names == nil {
		names = tokenNamer{}
	}
	var b strings.Builder
	b.WriteString("Oracle ranking of pairs for player A:")
	for _, p := range ranked {
		labels := make([]string, len(p.IDs))
		for i, id := range p.IDs {
			labels[i] = nameOf(names, id)
		}
		fmt.Fprintf(&b, "\nIf player A picks %s, win probability: %.4f", strings.Join(labels, " and "), p.Score)
	}
	return b.String()
}
