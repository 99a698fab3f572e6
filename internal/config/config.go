// Package config handles loading and validating gitprep configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// FileName is the configuration file gitprep searches for.
const FileName = ".gitprep.hcl"

// Config represents the gitprep configuration
type Config struct {
	Version    int               `hcl:"version,attr"`
	Repository *RepositoryConfig `hcl:"repository,block"`
	Clean      *CleanConfig      `hcl:"clean,block"`
	Output     *OutputConfig     `hcl:"output,block"`
	Log        *LogConfig        `hcl:"log,block"`

	// Internal: path to the loaded config file (empty if using defaults)
	configPath string
}

// RepositoryConfig identifies the working copy to prepare
type RepositoryConfig struct {
	URL  string `hcl:"url,attr"`
	Path string `hcl:"path,optional"`
	Ref  string `hcl:"ref,optional"`
}

// CleanConfig controls the optional working-tree clean
type CleanConfig struct {
	Enabled *bool    `hcl:"enabled,attr"`
	Exclude []string `hcl:"exclude,optional"`
}

// OutputConfig defines output settings
type OutputConfig struct {
	Format string `hcl:"format,attr"`
	Color  string `hcl:"color,attr"`
}

// LogConfig defines diagnostic logging settings
type LogConfig struct {
	Level string `hcl:"level,attr"`
}

// ConfigPath returns the path to the loaded config file, or empty if using defaults
func (c *Config) ConfigPath() string {
	return c.configPath
}

// IsCleanEnabled returns whether the working-tree clean is enabled
func (c *Config) IsCleanEnabled() bool {
	if c.Clean == nil || c.Clean.Enabled == nil {
		return true // enabled by default
	}
	return *c.Clean.Enabled
}

// CleanExcludes returns the configured clean exclusion patterns
func (c *Config) CleanExcludes() []string {
	if c.Clean == nil {
		return nil
	}
	return c.Clean.Exclude
}

// Load loads configuration from the specified path or searches for it
// Search order: configPath (if provided), .gitprep.hcl in cwd, .gitprep.hcl in repoDir
func Load(configPath, repoDir string) (*Config, error) {
	var path string

	if configPath != "" {
		// Explicit path provided
		path = configPath
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
	} else {
		// Search for config file
		path = findConfigFile(repoDir)
	}

	if path == "" {
		// No config found, use defaults
		return Default(), nil
	}

	return loadFromFile(path)
}

// findConfigFile searches for .gitprep.hcl in standard locations
func findConfigFile(repoDir string) string {
	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdPath := filepath.Join(cwd, FileName)
		if _, err := os.Stat(cwdPath); err == nil {
			return cwdPath
		}
	}

	// Check the repository directory
	if repoDir != "" {
		repoPath := filepath.Join(repoDir, FileName)
		if _, err := os.Stat(repoPath); err == nil {
			return repoPath
		}
	}

	return ""
}

// loadFromFile loads and parses a configuration file
func loadFromFile(path string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file: %s", formatDiagnostics(diags))
	}

	var config Config
	decodeDiags := gohcl.DecodeBody(file.Body, nil, &config)
	if decodeDiags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config: %s", formatDiagnostics(decodeDiags))
	}

	config.configPath = path

	// Apply defaults for missing optional blocks
	applyDefaults(&config)

	// Validate
	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// formatDiagnostics formats HCL diagnostics into a readable error string
func formatDiagnostics(diags hcl.Diagnostics) string {
	if len(diags) == 0 {
		return ""
	}

	var b strings.Builder
	for i, diag := range diags {
		if i > 0 {
			b.WriteString("; ")
		}
		if diag.Subject != nil {
			fmt.Fprintf(&b, "%s:%d: ", diag.Subject.Filename, diag.Subject.Start.Line)
		}
		b.WriteString(diag.Summary)
		if diag.Detail != "" {
			b.WriteString(": ")
			b.WriteString(diag.Detail)
		}
	}
	return b.String()
}

// applyDefaults fills in default values for missing optional config blocks
func applyDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Clean == nil {
		cfg.Clean = defaults.Clean
	}
	if cfg.Output == nil {
		cfg.Output = defaults.Output
	}
	if cfg.Log == nil {
		cfg.Log = defaults.Log
	}
}
