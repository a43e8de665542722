// Package config loads analyzer configuration from YAML. Every field is
// optional; zero values fall back to the compiled-in defaults, so an empty
// file and no file at all behave identically.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/clearlabel/clearlabel/pkg/clearlabel/internalerr"
	"github.com/clearlabel/clearlabel/pkg/clearlabel/match"
)

// Driver names for the store section.
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

// Config is the top-level analyzer configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	Match   MatchConfig   `yaml:"match"`
	Analyze AnalyzeConfig `yaml:"analyze"`
}

// StoreConfig selects and locates the hazard-database backing store.
type StoreConfig struct {
	Driver string `yaml:"driver"` // "json" or "sqlite"
	Path   string `yaml:"path"`
}

// MatchConfig tunes the cascade acceptance thresholds.
type MatchConfig struct {
	PatternThreshold float64 `yaml:"pattern_threshold"`
	FamilyThreshold  float64 `yaml:"family_threshold"`
	FuzzyThreshold   float64 `yaml:"fuzzy_threshold"`
}

// AnalyzeConfig tunes the analysis fan-out.
type AnalyzeConfig struct {
	MaxParallel int `yaml:"max_parallel"`
	CacheSize   int `yaml:"cache_size"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	t := match.DefaultThresholds()
	return Config{
		Store: StoreConfig{Driver: DriverJSON, Path: "toxic_ingredients.json"},
		Match: MatchConfig{
			PatternThreshold: t.Pattern,
			FamilyThreshold:  t.Family,
			FuzzyThreshold:   t.Fuzzy,
		},
		Analyze: AnalyzeConfig{MaxParallel: 4, CacheSize: 1024},
	}
}

// Load reads a YAML configuration file and fills unset fields with
// defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Thresholds converts the match section to cascade thresholds.
func (c Config) Thresholds() match.Thresholds {
	return match.Thresholds{
		Pattern: c.Match.PatternThreshold,
		Family:  c.Match.FamilyThreshold,
		Fuzzy:   c.Match.FuzzyThreshold,
	}
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.Store.Driver == "" {
		c.Store.Driver = d.Store.Driver
	}
	if c.Store.Path == "" {
		c.Store.Path = d.Store.Path
	}
	if c.Match.PatternThreshold == 0 {
		c.Match.PatternThreshold = d.Match.PatternThreshold
	}
	if c.Match.FamilyThreshold == 0 {
		c.Match.FamilyThreshold = d.Match.FamilyThreshold
	}
	if c.Match.FuzzyThreshold == 0 {
		c.Match.FuzzyThreshold = d.Match.FuzzyThreshold
	}
	if c.Analyze.MaxParallel == 0 {
		c.Analyze.MaxParallel = d.Analyze.MaxParallel
	}
	if c.Analyze.CacheSize == 0 {
		c.Analyze.CacheSize = d.Analyze.CacheSize
	}
}

func (c Config) validate() error {
	if c.Store.Driver != DriverJSON && c.Store.Driver != DriverSQLite {
		return fmt.Errorf("%w: unknown store driver %q", internalerr.ErrInvalidConfig, c.Store.Driver)
	}
	for name, v := range map[string]float64{
		"pattern_threshold": c.Match.PatternThreshold,
		"family_threshold":  c.Match.FamilyThreshold,
		"fuzzy_threshold":   c.Match.FuzzyThreshold,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s %v outside [0,1]", internalerr.ErrInvalidConfig, name, v)
		}
	}
	if c.Analyze.MaxParallel < 0 {
		return fmt.Errorf("%w: max_parallel must not be negative", internalerr.ErrInvalidConfig)
	}
	return nil
}
