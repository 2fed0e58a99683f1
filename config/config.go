package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/hexfleet/core/fleet"
	"github.com/kilianp07/hexfleet/core/grid"
	"github.com/kilianp07/hexfleet/metrics"
)

// Config is the root configuration of a planning run.
type Config struct {
	Farm    FarmConfig     `json:"farm"`
	Grid    grid.Config    `json:"grid"`
	Fleet   fleet.Config   `json:"fleet"`
	Plan    PlanConfig     `json:"plan"`
	Output  OutputConfig   `json:"output"`
	Metrics metrics.Config `json:"metrics"`
}

// Load reads the configuration file at path (yaml or json, by extension),
// applies HF_ environment overrides, defaults and validation.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("HF_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "hf_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Finalize applies defaults and validates every section.
func (cfg *Config) Finalize() error {
	cfg.Farm.SetDefaults()
	cfg.Grid.SetDefaults()
	cfg.Fleet.SetDefaults()
	cfg.Plan.SetDefaults()
	cfg.Output.SetDefaults()
	cfg.Metrics.SetDefaults()
	if err := cfg.Farm.Validate(); err != nil {
		return fmt.Errorf("farm: %w", err)
	}
	if err := cfg.Grid.Validate(); err != nil {
		return fmt.Errorf("grid: %w", err)
	}
	if err := cfg.Fleet.Validate(); err != nil {
		return fmt.Errorf("fleet: %w", err)
	}
	if err := cfg.Plan.Validate(); err != nil {
		return fmt.Errorf("plan: %w", err)
	}
	if err := cfg.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	return nil
}
