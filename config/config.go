// Package config reads process settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"

	"swarm/draft"
	"swarm/generator"
)

type Config struct {
	Temperature  float64         `env:"SWARM_TEMPERATURE"   envDefault:"0.1"`
	Sampling     bool            `env:"SWARM_SAMPLING"      envDefault:"true"`
	MaxSteps     int             `env:"SWARM_MAX_STEPS"     envDefault:"30"`
	FreeSteps    int             `env:"SWARM_FREE_STEPS"    envDefault:"20"`
	PickTokens   int             `env:"SWARM_PICK_TOKENS"   envDefault:"2"`
	EndToken     int             `env:"SWARM_END_TOKEN"     envDefault:"0"`
	Marker       string          `env:"SWARM_MARKER"        envDefault:"M"`
	RosterSlots  int             `env:"SWARM_ROSTER_SLOTS"  envDefault:"4"`
	// Padding overrides the model document's padding id when non-zero.
	Padding      draft.MonsterID `env:"SWARM_PADDING"       envDefault:"0"`
	Seed         uint64          `env:"SWARM_SEED"          envDefault:"0"`
	SafeSearch   bool            `env:"SWARM_SAFE_SEARCH"   envDefault:"false"`
	RankSample   int             `env:"SWARM_RANK_SAMPLE"   envDefault:"0"`
	ModelPath    string          `env:"SWARM_MODEL_PATH"    envDefault:"model.json"`
	MonstersPath string          `env:"SWARM_MONSTERS_PATH" envDefault:"monsters_rta.json"`
	Addr         string          `env:"SWARM_ADDR"          envDefault:":8080"`
	LogLevel     string          `env:"SWARM_LOG_LEVEL"     envDefault:"info"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.MaxSteps <= 0 || cfg.FreeSteps <= 0 || cfg.PickTokens <= 0 {
		return Config{}, fmt.Errorf("step budgets must be positive: max=%d free=%d pick=%d", cfg.MaxSteps, cfg.FreeSteps, cfg.PickTokens)
	}
	if cfg.RosterSlots <= 0 {
		return Config{}, fmt.Errorf("roster slots must be positive: %d", cfg.RosterSlots)
	}
	return cfg, nil
}

func (c Config) Generation() generator.Config {
	return generator.Config{
		Temperature: c.Temperature,
		Sampling:    c.Sampling,
		MaxSteps:    c.MaxSteps,
		FreeSteps:   c.FreeSteps,
		PickTokens:  c.PickTokens,
		EndToken:    c.EndToken,
		Marker:      c.Marker,
	}
}

// Level maps the configured level name, defaulting to info when it is unknown.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
