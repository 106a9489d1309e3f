// Package config loads the engine's tunable constants from a YAML
// file (with environment-variable overrides), the way cmd/server's
// config.Load did for the wider mage server this engine was carved
// out of.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/inkforge/engine/internal/state"
)

// LoggingConfig controls the zap logger cmd/matchrunner builds at
// startup.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RuleConfig mirrors state.Config field for field; it's the on-disk
// shape, decoded separately so state.Config itself never needs struct
// tags for a format it has no business knowing about.
type RuleConfig struct {
	StartingHandSize int `mapstructure:"starting_hand_size"`
	DeckSize         int `mapstructure:"deck_size"`
	MaxCopiesPerCard int `mapstructure:"max_copies_per_card"`
	LoreToWin        int `mapstructure:"lore_to_win"`
}

// Config is the full set of engine-level settings loadable from file,
// environment, or defaults.
type Config struct {
	Rules   RuleConfig    `mapstructure:"rules"`
	Logging LoggingConfig `mapstructure:"logging"`
	Seed    int64         `mapstructure:"seed"`
}

func defaults() RuleConfig {
	d := state.DefaultConfig()
	return RuleConfig{
		StartingHandSize: d.StartingHandSize,
		DeckSize:         d.DeckSize,
		MaxCopiesPerCard: d.MaxCopiesPerCard,
		LoreToWin:        d.LoreToWin,
	}
}

// Load reads configuration from path if it exists, falling back to
// built-in rules defaults, with INKFORGE_-prefixed environment
// variables (e.g. INKFORGE_RULES_LORE_TO_WIN) taking precedence over
// either. path may be empty, in which case only env vars and defaults
// apply.
func Load(path string) (Config, error) {
	v := viper.New()
	d := defaults()
	v.SetDefault("rules.starting_hand_size", d.StartingHandSize)
	v.SetDefault("rules.deck_size", d.DeckSize)
	v.SetDefault("rules.max_copies_per_card", d.MaxCopiesPerCard)
	v.SetDefault("rules.lore_to_win", d.LoreToWin)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("seed", int64(0))

	v.SetEnvPrefix("INKFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decoding: %w", err)
	}
	return cfg, nil
}

// StateConfig converts the loaded rule settings into state.Config.
func (c Config) StateConfig() state.Config {
	return state.Config{
		StartingHandSize: c.Rules.StartingHandSize,
		DeckSize:         c.Rules.DeckSize,
		MaxCopiesPerCard: c.Rules.MaxCopiesPerCard,
		LoreToWin:        c.Rules.LoreToWin,
	}
}
