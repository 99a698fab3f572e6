package config

// Default returns the default configuration
func Default() *Config {
	cleanEnabled := true
	return &Config{
		Version: 1,
		Clean: &CleanConfig{
			Enabled: &cleanEnabled,
			Exclude: []string{},
		},
		Output: &OutputConfig{
			Format: "text",
			Color:  "auto",
		},
		Log: &LogConfig{
			Level: "info",
		},
	}
}
