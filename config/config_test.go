package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"swarm/generator"
)

func TestLoad(t *testing.T) {
	t.Run("applying defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, generator.DefaultConfig(), cfg.Generation(), "Defaults should match the generator's")
		require.Equal(t, 4, cfg.RosterSlots)
		require.Equal(t, ":8080", cfg.Addr)
		require.Equal(t, zerolog.InfoLevel, cfg.Level())
	})

	t.Run("reading overrides", func(t *testing.T) {
		t.Setenv("SWARM_TEMPERATURE", "0.7")
		t.Setenv("SWARM_SAMPLING", "false")
		t.Setenv("SWARM_MAX_STEPS", "12")
		t.Setenv("SWARM_SEED", "42")
		t.Setenv("SWARM_LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, 0.7, cfg.Temperature)
		require.False(t, cfg.Generation().Sampling)
		require.Equal(t, 12, cfg.Generation().MaxSteps)
		require.Equal(t, uint64(42), cfg.Seed)
		require.Equal(t, zerolog.DebugLevel, cfg.Level())
	})

	t.Run("prefixing parse errors", func(t *testing.T) {
		t.Setenv("SWARM_MAX_STEPS", "many")
		_, err := Load()
		require.ErrorContains(t, err, "parse env:")
	})

	t.Run("rejecting empty budgets", func(t *testing.T) {
		t.Setenv("SWARM_FREE_STEPS", "0")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("falling back to info for unknown levels", func(t *testing.T) {
		require.Equal(t, zerolog.InfoLevel, Config{LogLevel: "loud"}.Level())
	})
}
