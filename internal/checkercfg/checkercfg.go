// Package checkercfg loads the optional YAML configuration file accepted
// by cmd/typecheck's --config flag, grounded on the teacher's own
// yaml.v3-backed spec loader (internal/eval_harness/spec.go in
// sunholo-data-ailang).
package checkercfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the driver's optional settings: TagSessions turns on
// §4.12's session tagging and Color toggles colored diagnostic output.
// StrictTypeNames is parsed but nothing reads it, so it does not change
// type-name resolution. Default, not the zero value, gives the
// out-of-the-box settings (Color on).
type Config struct {
	StrictTypeNames bool `yaml:"strict_type_names"`
	TagSessions     bool `yaml:"tag_sessions"`
	Color           bool `yaml:"color"`
}

// Default returns the checker's out-of-the-box configuration.
func Default() *Config {
	return &Config{Color: true}
}

// Load reads and parses a YAML config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
