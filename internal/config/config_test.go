package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithNoPathUsesRulesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Rules.StartingHandSize)
	assert.Equal(t, 60, cfg.Rules.DeckSize)
	assert.Equal(t, 4, cfg.Rules.MaxCopiesPerCard)
	assert.Equal(t, 20, cfg.Rules.LoreToWin)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadWithMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load("/no/such/path/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Rules.LoreToWin)
}

func TestStateConfigConvertsRulesSection(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	sc := cfg.StateConfig()
	assert.Equal(t, cfg.Rules.StartingHandSize, sc.StartingHandSize)
	assert.Equal(t, cfg.Rules.LoreToWin, sc.LoreToWin)
}

func TestLoadHonorsEnvironmentOverride(t *testing.T) {
	t.Setenv("INKFORGE_RULES_LORE_TO_WIN", "25")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Rules.LoreToWin)
}
