package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "holdem.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadParsesTableAndPlayers(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
table {
  small_blind    = 25
  big_blind      = 50
  starting_chips = 5000
  hand_limit     = 100
}

player "hero" {
  human = true
}

player "rock" {
  chips = 2500
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 25, cfg.Table.SmallBlind)
	assert.Equal(t, 50, cfg.Table.BigBlind)
	assert.Equal(t, 100, cfg.Table.HandLimit)

	require.Len(t, cfg.Players, 2)
	assert.Equal(t, "hero", cfg.Players[0].Name)
	assert.True(t, cfg.Players[0].Human)
	assert.Equal(t, 5000, cfg.Players[0].Chips, "unspecified chips default to the starting stack")
	assert.Equal(t, 2500, cfg.Players[1].Chips)
	assert.False(t, cfg.Players[1].Human)
}

func TestLoadRejectsMalformedHCL(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `table { small_blind = `)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		return &Config{
			Table: TableSettings{SmallBlind: 10, BigBlind: 20},
			Players: []PlayerConfig{
				{Name: "a", Chips: 1000},
				{Name: "b", Chips: 1000},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config passes",
			mutate: func(*Config) {},
		},
		{
			name:    "non-positive small blind",
			mutate:  func(c *Config) { c.Table.SmallBlind = 0 },
			wantErr: "small blind",
		},
		{
			name:    "big blind below small blind",
			mutate:  func(c *Config) { c.Table.BigBlind = 5 },
			wantErr: "big blind",
		},
		{
			name:    "negative hand limit",
			mutate:  func(c *Config) { c.Table.HandLimit = -1 },
			wantErr: "hand limit",
		},
		{
			name:    "one player is not a game",
			mutate:  func(c *Config) { c.Players = c.Players[:1] },
			wantErr: "at least two players",
		},
		{
			name:    "duplicate names",
			mutate:  func(c *Config) { c.Players[1].Name = "a" },
			wantErr: "duplicate",
		},
		{
			name:    "unnamed player",
			mutate:  func(c *Config) { c.Players[0].Name = "" },
			wantErr: "needs a name",
		},
		{
			name:    "stack too short for the big blind",
			mutate:  func(c *Config) { c.Players[0].Chips = 10 },
			wantErr: "cannot post the big blind",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
