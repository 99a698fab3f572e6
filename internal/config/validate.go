package config

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-hclog"
)

// Validate validates the configuration
func Validate(cfg *Config) error {
	// Version check
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version: %d (only version 1 is supported)", cfg.Version)
	}

	// Validate repository block
	if cfg.Repository != nil && cfg.Repository.URL == "" {
		return fmt.Errorf("repository block requires a non-empty url")
	}

	// Validate output format
	if cfg.Output != nil && cfg.Output.Format != "" {
		switch cfg.Output.Format {
		case "text", "json":
			// valid
		default:
			return fmt.Errorf("invalid output format: %s (must be 'text' or 'json')", cfg.Output.Format)
		}
	}

	// Validate output color
	if cfg.Output != nil && cfg.Output.Color != "" {
		switch cfg.Output.Color {
		case "auto", "always", "never":
			// valid
		default:
			return fmt.Errorf("invalid color mode: %s (must be 'auto', 'always', or 'never')", cfg.Output.Color)
		}
	}

	// Validate log level
	if cfg.Log != nil && cfg.Log.Level != "" {
		if hclog.LevelFromString(cfg.Log.Level) == hclog.NoLevel {
			return fmt.Errorf("invalid log level: %s", cfg.Log.Level)
		}
	}

	// Validate clean exclusion globs
	if cfg.Clean != nil {
		for _, pattern := range cfg.Clean.Exclude {
			if !doublestar.ValidatePattern(pattern) {
				return fmt.Errorf("invalid clean exclude pattern: %q", pattern)
			}
		}
	}

	return nil
}
