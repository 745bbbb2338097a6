// Package config loads simulation parameters from a YAML file, with
// defaults matching the standard model constants.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds everything a run needs: population shape, model
// probabilities, the lobby table, and the bill docket.
type Config struct {
	Seed         int64  `yaml:"seed"`          // 0 = derive from crypto/rand
	DatabasePath string `yaml:"database_path"` // "" = no archive
	APIPort      int    `yaml:"api_port"`      // 0 = no HTTP observer

	// RoundIntervalMS paces the round loop; 0 runs rounds back to back.
	RoundIntervalMS int `yaml:"round_interval_ms"`

	// Rounds is the docket length when no bills are configured.
	Rounds int `yaml:"rounds"`

	CaptureProb float64 `yaml:"capture_prob"`
	DealProb    float64 `yaml:"deal_prob"`
	BetrayProb  float64 `yaml:"betray_prob"`

	// Seats maps chamber → party → seat count.
	Seats map[string]map[string]int `yaml:"seats"`

	Lobby LobbyConfig  `yaml:"lobby"`
	Bills []BillConfig `yaml:"bills"`
}

// LobbyConfig configures the lobbying pressure providers.
type LobbyConfig struct {
	// Table is the fixed party → pressure base layer.
	Table map[string]float64 `yaml:"table"`
	// DriftAmplitude bounds the noise-driven drift layer; 0 disables it.
	DriftAmplitude float64 `yaml:"drift_amplitude"`
}

// BillConfig is one docket entry.
type BillConfig struct {
	Title   string             `yaml:"title"`
	Stances map[string]float64 `yaml:"stances"`
}

// Default returns the standard configuration: a 40-member House and
// 20-member Senate split across three parties, standard probabilities,
// a mild drift layer, and a 20-bill generated docket.
func Default() Config {
	return Config{
		Seed:            0,
		DatabasePath:    "data/capitol.db",
		APIPort:         8080,
		RoundIntervalMS: 0,
		Rounds:          20,
		CaptureProb:     0.10,
		DealProb:        0.10,
		BetrayProb:      0.05,
		Seats: map[string]map[string]int{
			"house": {
				"Unity":    16,
				"Progress": 14,
				"Heritage": 10,
			},
			"senate": {
				"Unity":    8,
				"Progress": 7,
				"Heritage": 5,
			},
		},
		Lobby: LobbyConfig{
			Table:          map[string]float64{},
			DriftAmplitude: 0.05,
		},
	}
}

// Load reads a YAML config file over the defaults. A missing path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"capture_prob", c.CaptureProb},
		{"deal_prob", c.DealProb},
		{"betray_prob", c.BetrayProb},
	} {
		if p.value < 0 || p.value > 1 {
			return fmt.Errorf("%s %.3f outside [0, 1]", p.name, p.value)
		}
	}
	if c.Rounds < 0 {
		return fmt.Errorf("rounds must not be negative")
	}
	for chamber := range c.Seats {
		if chamber != "house" && chamber != "senate" {
			return fmt.Errorf("unknown chamber %q in seats", chamber)
		}
	}
	for _, b := range c.Bills {
		for party, stance := range b.Stances {
			if stance < 0 || stance > 1 {
				return fmt.Errorf("bill %q: stance %.3f for %s outside [0, 1]", b.Title, stance, party)
			}
		}
	}
	return nil
}
