// Package config loads table configuration from HCL files.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete game configuration.
type Config struct {
	Table   TableSettings  `hcl:"table,block"`
	Players []PlayerConfig `hcl:"player,block"`
}

// TableSettings contains table-level configuration.
type TableSettings struct {
	SmallBlind    int    `hcl:"small_blind,optional"`
	BigBlind      int    `hcl:"big_blind,optional"`
	StartingChips int    `hcl:"starting_chips,optional"`
	HandLimit     int    `hcl:"hand_limit,optional"`
	LogLevel      string `hcl:"log_level,optional"`
	SessionFile   string `hcl:"session_file,optional"`
}

// PlayerConfig defines one seat at the table.
type PlayerConfig struct {
	Name  string `hcl:"name,label"`
	Human bool   `hcl:"human,optional"`
	Chips int    `hcl:"chips,optional"`
}

// Default returns the configuration used when no file is present: one
// human against three bots, deep-stacked at 50 big blinds.
func Default() *Config {
	return &Config{
		Table: TableSettings{
			SmallBlind:    10,
			BigBlind:      20,
			StartingChips: 1000,
			LogLevel:      "info",
			SessionFile:   "holdem-session.json",
		},
		Players: []PlayerConfig{
			{Name: "you", Human: true, Chips: 1000},
			{Name: "tight-tina", Chips: 1000},
			{Name: "loose-larry", Chips: 1000},
			{Name: "steady-sam", Chips: 1000},
		},
	}
}

// Load reads an HCL configuration file. A missing file yields the default
// configuration; a malformed one is an error.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	def := Default()
	if cfg.Table.SmallBlind == 0 {
		cfg.Table.SmallBlind = def.Table.SmallBlind
	}
	if cfg.Table.BigBlind == 0 {
		cfg.Table.BigBlind = def.Table.BigBlind
	}
	if cfg.Table.StartingChips == 0 {
		cfg.Table.StartingChips = def.Table.StartingChips
	}
	if cfg.Table.LogLevel == "" {
		cfg.Table.LogLevel = def.Table.LogLevel
	}
	if cfg.Table.SessionFile == "" {
		cfg.Table.SessionFile = def.Table.SessionFile
	}
	if len(cfg.Players) == 0 {
		cfg.Players = def.Players
	}
	for i := range cfg.Players {
		if cfg.Players[i].Chips == 0 {
			cfg.Players[i].Chips = cfg.Table.StartingChips
		}
	}

	return &cfg, nil
}

// Validate checks the configuration for playability.
func (c *Config) Validate() error {
	if c.Table.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive, got %d", c.Table.SmallBlind)
	}
	if c.Table.BigBlind < c.Table.SmallBlind {
		return fmt.Errorf("big blind %d must be at least the small blind %d", c.Table.BigBlind, c.Table.SmallBlind)
	}
	if c.Table.HandLimit < 0 {
		return fmt.Errorf("hand limit cannot be negative")
	}

	if len(c.Players) < 2 {
		return fmt.Errorf("at least two players must be configured, got %d", len(c.Players))
	}
	if len(c.Players) > 10 {
		return fmt.Errorf("at most ten players fit at a table, got %d", len(c.Players))
	}

	seen := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("every player needs a name")
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate player name %q", p.Name)
		}
		seen[p.Name] = true
		if p.Chips < c.Table.BigBlind {
			return fmt.Errorf("player %q cannot post the big blind with %d chips", p.Name, p.Chips)
		}
	}
	return nil
}
