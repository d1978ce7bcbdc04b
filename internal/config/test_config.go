package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:    ":memory:", // Tests never open a real database
			Timeout: 1 * time.Second,
		},
		Generator: GeneratorConfig{
			ClassPrefix:    "space",
			VariablePrefix: "space",
			UndoWindow:     10 * time.Second,
		},
		Log:  LogConfig{Level: "OFF"},
		UI:   defaultConfig().UI,
		Keys: defaultConfig().Keys,
	}
}
