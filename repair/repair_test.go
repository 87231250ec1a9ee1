package repair

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"swarm/draft"
)

func newValidator(buf *bytes.Buffer) *Validator {
	return NewValidator(WithLogger(zerolog.New(buf)))
}

func requireLegal(t *testing.T, picks []draft.MonsterID, pool draft.Pool, k int) {
	t.Helper()
	require.Len(t, picks, k)
	seen := map[draft.MonsterID]bool{}
	for _, id := range picks {
		require.True(t, pool.Contains(id), "%d should come from the pool", id)
		require.False(t, seen[id], "%d should not repeat", id)
		seen[id] = true
	}
}

func TestRepair(t *testing.T) {
	pool := draft.NewPool(101, 102, 103, 104)
	mid := Input{Pool: pool, Required: 2, Own: draft.Roster{1}, Opponent: draft.Roster{2, 3}}

	t.Run("accepting enough legal picks", func(t *testing.T) {
		var buf bytes.Buffer
		in := mid
		in.Extracted = []draft.MonsterID{103, 101}
		got, err := newValidator(&buf).Repair(in, rand.New(rand.NewSource(1)))
		require.NoError(t, err)
		require.Equal(t, Output{Picks: []draft.MonsterID{103, 101}, Outcome: Accepted}, got)
		require.Empty(t, buf.String(), "Nothing should be logged")
	})

	t.Run("a duplicate is only accepted once", func(t *testing.T) {
		var buf bytes.Buffer
		in := mid
		in.Extracted = []draft.MonsterID{103, 103}
		got, err := newValidator(&buf).Repair(in, rand.New(rand.NewSource(1)))
		require.NoError(t, err)
		require.Equal(t, TopUp, got.Outcome)
		require.Equal(t, draft.MonsterID(103), got.Picks[0])
		requireLegal(t, got.Picks, pool, 2)
		require.Contains(t, buf.String(), "random completion")
	})

	t.Run("keeping only the required number of picks", func(t *testing.T) {
		in := mid
		in.Required = 1
		in.Extracted = []draft.MonsterID{102, 104}
		got, err := newValidator(&bytes.Buffer{}).Repair(in, nil)
		require.NoError(t, err)
		require.Equal(t, []draft.MonsterID{102}, got.Picks)
	})

	t.Run("ignoring ids outside the pool", func(t *testing.T) {
		var buf bytes.Buffer
		in := mid
		in.Extracted = []draft.MonsterID{999, 1, 104}
		got, err := newValidator(&buf).Repair(in, rand.New(rand.NewSource(2)))
		require.NoError(t, err)
		require.Equal(t, TopUp, got.Outcome)
		require.Equal(t, draft.MonsterID(104), got.Picks[0])
		requireLegal(t, got.Picks, pool, 2)
	})

	t.Run("randomizing when nothing is legal", func(t *testing.T) {
		var buf bytes.Buffer
		in := mid
		in.Extracted = nil
		got, err := newValidator(&buf).Repair(in, rand.New(rand.NewSource(3)))
		require.NoError(t, err)
		require.Equal(t, Randomized, got.Outcome)
		requireLegal(t, got.Picks, pool, 2)
		require.Contains(t, buf.String(), "fully randomized")
	})

	t.Run("accepting a single pick at the start of the draft", func(t *testing.T) {
		var buf bytes.Buffer
		in := Input{Pool: pool, Required: 2, Extracted: []draft.MonsterID{102}}
		got, err := newValidator(&buf).Repair(in, rand.New(rand.NewSource(4)))
		require.NoError(t, err)
		require.Equal(t, Output{Picks: []draft.MonsterID{102}, Outcome: PhaseOverride}, got)
		require.Empty(t, buf.String())
	})

	t.Run("accepting a single pick at the end of the draft", func(t *testing.T) {
		in := Input{
			Pool:      pool,
			Required:  2,
			Own:       draft.Roster{1, 2, 3, 4},
			Opponent:  draft.Roster{5, 6, 7, 8, 9},
			Extracted: []draft.MonsterID{101},
		}
		got, err := newValidator(&bytes.Buffer{}).Repair(in, nil)
		require.NoError(t, err)
		require.Equal(t, PhaseOverride, got.Outcome)
	})

	t.Run("failing on contract violations", func(t *testing.T) {
		v := newValidator(&bytes.Buffer{})
		_, err := v.Repair(Input{Pool: pool, Required: 3}, nil)
		require.ErrorIs(t, err, draft.ErrInvalidPickCount)
		_, err = v.Repair(Input{Pool: draft.NewPool(101), Required: 2}, nil)
		require.ErrorIs(t, err, draft.ErrPoolTooSmall)
	})

	t.Run("output is always legal", func(t *testing.T) {
		rng := rand.New(rand.NewSource(5))
		v := newValidator(&bytes.Buffer{})
		candidates := []draft.MonsterID{101, 102, 103, 104, 999}
		for i := 0; i < 200; i++ {
			k := 1 + rng.Intn(2)
			extracted := make([]draft.MonsterID, rng.Intn(4))
			for j := range extracted {
				extracted[j] = candidates[rng.Intn(len(candidates))]
			}
			got, err := v.Repair(Input{Pool: pool, Required: k, Own: draft.Roster{1}, Extracted: extracted}, rng)
			require.NoError(t, err)
			requireLegal(t, got.Picks, pool, k)
		}
	})

	t.Run("using the configured chooser", func(t *testing.T) {
		first := func(ids []draft.MonsterID, n int, _ *rand.Rand) []draft.MonsterID { return ids[:n] }
		got, err := NewValidator(WithLogger(zerolog.Nop()), WithChooser(first)).Repair(mid, nil)
		require.NoError(t, err)
		require.Equal(t, []draft.MonsterID{101, 102}, got.Picks)
	})

	t.Run("leaving the caller's pool untouched", func(t *testing.T) {
		in := mid
		in.Extracted = []draft.MonsterID{101, 102}
		_, err := newValidator(&bytes.Buffer{}).Repair(in, nil)
		require.NoError(t, err)
		require.Equal(t, 4, pool.Len())
	})
}
