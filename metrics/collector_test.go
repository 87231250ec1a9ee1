package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counting concurrent events", func(t *testing.T) {
		c := NewCollector()
		c.Start("pair", 3)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				c.AddEvaluation()
				c.AddStep()
			}()
		}
		wg.Wait()
		c.AddForcedSpan()

		got := c.Complete()
		require.Equal(t, "pair", got.Mode)
		require.Equal(t, 3, got.Candidates)
		require.Equal(t, 8, got.Evaluations)
		require.Equal(t, 8, got.Steps)
		require.Equal(t, 1, got.ForcedSpans)
	})

	t.Run("dummy collector reports nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start("pick", 1)
		c.AddEvaluation()
		require.Equal(t, SearchMetric{}, c.Complete())
	})
}
