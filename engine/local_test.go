package engine

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"swarm/agent"
	"swarm/draft"
	"swarm/searcher"
)

// lastAgent always takes the last ids of the pool.
type lastAgent struct{}

func (lastAgent) Recommend(state draft.State, required int) (agent.Recommendation, error) {
	ids := state.Pool.IDs()
	return agent.Recommendation{Picks: ids[len(ids)-required:]}, nil
}

// cheater answers with monsters that are not on offer.
type cheater struct{}

func (cheater) Recommend(state draft.State, required int) (agent.Recommendation, error) {
	picks := make([]draft.MonsterID, required)
	for i := range picks {
		picks[i] = 999
	}
	return agent.Recommendation{Picks: picks}, nil
}

func sum(a, b draft.Roster) float64 {
	score := 0.0
	for _, id := range a {
		score += float64(id)
	}
	for _, id := range b {
		score -= float64(id)
	}
	return score
}

func pool(n int) draft.Pool {
	ids := make([]draft.MonsterID, n)
	for i := range ids {
		ids[i] = draft.MonsterID(i + 1)
	}
	return draft.NewPool(ids...)
}

func TestLocalEngine(t *testing.T) {
	t.Run("following the pick order", func(t *testing.T) {
		e := LocalEngine(pool(12), lastAgent{}, lastAgent{}, WithLogger(zerolog.Nop()))
		res, err := e.Run()
		require.NoError(t, err)

		require.Len(t, res.Moves, 6)
		for i, turn := range draft.Turns(draft.SideA) {
			require.Equal(t, turn.Side, res.Moves[i].Side, "Move %d should belong to side %s", i+1, turn.Side)
			require.Len(t, res.Moves[i].Picks, turn.Picks)
		}
		require.Equal(t, draft.Roster{12, 8, 9, 4, 5}, res.Rosters[draft.SideA])
		require.Equal(t, draft.Roster{10, 11, 6, 7, 3}, res.Rosters[draft.SideB])
		require.Equal(t, 6, res.Draft.TotalMoves)
	})

	t.Run("mirroring the order when B starts", func(t *testing.T) {
		e := LocalEngine(pool(10), lastAgent{}, lastAgent{}, WithFirst(draft.SideB), WithLogger(zerolog.Nop()))
		res, err := e.Run()
		require.NoError(t, err)
		require.Equal(t, draft.SideB, res.Moves[0].Side)
		require.Equal(t, draft.Roster{10}, res.Rosters[draft.SideB][:1])
		require.Equal(t, draft.SideB, res.Draft.First)
	})

	t.Run("replacing illegal picks", func(t *testing.T) {
		e := LocalEngine(pool(10), cheater{}, lastAgent{}, WithLogger(zerolog.Nop()))
		res, err := e.Run()
		require.NoError(t, err)

		require.Equal(t, draft.Roster{1}, res.Rosters[draft.SideA][:1], "Fallback should take the pool head")
		require.True(t, res.Moves[0].Fallback)
		require.False(t, res.Moves[1].Fallback)
		require.Equal(t, 3+2, res.Draft.Fallbacks, "Three pick fallbacks and two default bans")
		requireDisjoint(t, res)
	})

	t.Run("banning with the oracle", func(t *testing.T) {
		s := searcher.NewSearcher(searcher.OracleFunc(sum))
		a := agent.NewOracleAgent(s, false)
		e := LocalEngine(pool(12), a, a, WithJudge(searcher.OracleFunc(sum)), WithLogger(zerolog.Nop()))
		res, err := e.Run()
		require.NoError(t, err)
		requireDisjoint(t, res)

		for _, side := range []draft.Side{draft.SideA, draft.SideB} {
			require.True(t, res.Rosters[side.Other()].Contains(res.Bans[side]), "Side %s should ban an opposing monster", side)
			require.Len(t, res.Combat(side.Other()), draft.MonstersInCombat)
		}
		require.Equal(t, 0, res.Draft.Fallbacks)
		require.Equal(t, sum(res.Combat(draft.SideA), res.Combat(draft.SideB)), res.Outcome)
	})

	t.Run("defaulting bans for agents that cannot ban", func(t *testing.T) {
		res, err := LocalEngine(pool(10), lastAgent{}, lastAgent{}, WithLogger(zerolog.Nop())).Run()
		require.NoError(t, err)
		require.Equal(t, res.Rosters[draft.SideB][0], res.Bans[draft.SideA])
		require.Equal(t, res.Rosters[draft.SideA][0], res.Bans[draft.SideB])
	})

	t.Run("refusing a pool too small for a draft", func(t *testing.T) {
		_, err := LocalEngine(pool(9), lastAgent{}, lastAgent{}, WithLogger(zerolog.Nop())).Run()
		require.ErrorIs(t, err, draft.ErrPoolTooSmall)
	})
}

func requireDisjoint(t *testing.T, res Result) {
	t.Helper()
	seen := map[draft.MonsterID]bool{}
	for _, roster := range res.Rosters {
		require.Len(t, roster, draft.PicksPerPlayer)
		for _, id := range roster {
			require.False(t, seen[id], "%d was picked twice", id)
			seen[id] = true
		}
	}
}
