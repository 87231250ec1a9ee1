package random

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeeds(t *testing.T) {
	t.Run("fixed seeds reproduce draws", func(t *testing.T) {
		a := New(Fixed(7))
		b := New(Fixed(7))
		require.Equal(t, a.Perm(10), b.Perm(10), "Equal seeds should give equal permutations")
	})

	t.Run("sequence advances", func(t *testing.T) {
		fn := Sequence(5)
		require.Equal(t, uint64(5), fn())
		require.Equal(t, uint64(6), fn())
	})

	t.Run("nil seed func falls back to crypto seed", func(t *testing.T) {
		require.NotNil(t, New(nil))
	})
}
