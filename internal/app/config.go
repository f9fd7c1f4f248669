package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	OpPath    string // operation manifest file or directory
	BagPath   string // optional HCL attribute file seeding the bag
	Operation string // operation to evaluate when the manifest holds several
	Overrides map[string]string
	Explain   bool
	Output    string // result format: text or json
	Calls     int    // evaluation passes to run on the same bag

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.OpPath == "" {
		return nil, errors.New("OpPath is a required configuration field and cannot be empty")
	}
	if cfg.Output != "" && cfg.Output != "text" && cfg.Output != "json" {
		return nil, fmt.Errorf("invalid output format %q: must be 'text' or 'json'", cfg.Output)
	}
	if cfg.Calls < 1 {
		return nil, fmt.Errorf("calls must be at least 1, got %d", cfg.Calls)
	}

	return &cfg, nil
}
