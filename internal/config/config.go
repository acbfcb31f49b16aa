// Package config loads the engine's ambient defaults (gradient factors,
// Navy table data location, comparison model roster) from a YAML
// document, following the strict-decode pattern used elsewhere in the
// ecosystem for this kind of defaults file.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full defaults.yaml structure.
type Config struct {
	GradientFactors GradientFactors `yaml:"gradient_factors"`
	Navy            NavyConfig      `yaml:"navy"`
	CompareModels   []string        `yaml:"compare_models"`
}

// GradientFactors is the default GF pair applied when a caller does not
// supply one explicitly.
type GradientFactors struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

// NavyConfig holds the Navy table data location read from the config
// file. The Navy planner uses its built-in table and does not read
// TableDataPath.
type NavyConfig struct {
	TableDataPath string `yaml:"table_data_path"`
}

// Default returns the built-in defaults used when no config file is
// supplied.
func Default() Config {
	return Config{
		GradientFactors: GradientFactors{Low: 30, High: 85},
		Navy:            NavyConfig{TableDataPath: ""},
		CompareModels:   []string{"buhlmann", "vpmb", "navy"},
	}
}

// Load reads and strictly decodes a defaults.yaml-shaped document from
// path, rejecting unknown fields so a typo in the config surfaces as an
// error rather than being silently ignored.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}
