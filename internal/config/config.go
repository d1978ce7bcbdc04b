package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Generator GeneratorConfig `mapstructure:"generator"`
	UI        UIConfig        `mapstructure:"ui"`
	Keys      KeyConfig       `mapstructure:"keys"`
	Log       LogConfig       `mapstructure:"log"`
}

type DatabaseConfig struct {
	Path    string        `mapstructure:"path"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type GeneratorConfig struct {
	// ClassPrefix and VariablePrefix name generated selectors and
	// custom properties; the utility kind never takes a prefix.
	ClassPrefix    string        `mapstructure:"class_prefix"`
	VariablePrefix string        `mapstructure:"variable_prefix"`
	UndoWindow     time.Duration `mapstructure:"undo_window"`
	PresetsFile    string        `mapstructure:"presets_file"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

type UIConfig struct {
	Colors UIColors `mapstructure:"colors"`
}

type UIColors struct {
	Primary    string `mapstructure:"primary"`
	Secondary  string `mapstructure:"secondary"`
	Accent     string `mapstructure:"accent"`
	Background string `mapstructure:"background"`
	Surface    string `mapstructure:"surface"`
	Text       string `mapstructure:"text"`
	Muted      string `mapstructure:"muted"`
	Error      string `mapstructure:"error"`
	Success    string `mapstructure:"success"`
}

type KeyConfig struct {
	Modifier string      `mapstructure:"modifier"`
	Bindings KeyBindings `mapstructure:"bindings"`
}

type KeyBindings struct {
	Quit            string `mapstructure:"quit"`
	AddEntry        string `mapstructure:"add_entry"`
	RenameEntry     string `mapstructure:"rename_entry"`
	DeleteEntry     string `mapstructure:"delete_entry"`
	ClearAll        string `mapstructure:"clear_all"`
	UndoClear       string `mapstructure:"undo_clear"`
	RestoreDefaults string `mapstructure:"restore_defaults"`
	SetAnchor       string `mapstructure:"set_anchor"`
	MoveUp          string `mapstructure:"move_up"`
	MoveDown        string `mapstructure:"move_down"`
	NextKind        string `mapstructure:"next_kind"`
	Preview         string `mapstructure:"preview"`
	EditParams      string `mapstructure:"edit_params"`
	ToggleUnit      string `mapstructure:"toggle_unit"`
	CopyCSS         string `mapstructure:"copy_css"`
	RowCSS          string `mapstructure:"row_css"`
	Back            string `mapstructure:"back"`
	Help            string `mapstructure:"help"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	dbPath := filepath.Join(homeDir, ".fluidcss.db")

	return &Config{
		Database: DatabaseConfig{
			Path:    dbPath,
			Timeout: 1 * time.Second,
		},
		Generator: GeneratorConfig{
			ClassPrefix:    "space",
			VariablePrefix: "space",
			UndoWindow:     10 * time.Second,
		},
		Log: LogConfig{
			Level: "OFF",
		},
		UI: UIConfig{
			Colors: UIColors{
				Primary:    "#FF6B6B",
				Secondary:  "#4ECDC4",
				Accent:     "#95E1D3",
				Background: "#1A1A2E",
				Surface:    "#16213E",
				Text:       "#EAEAEA",
				Muted:      "#94A3B8",
				Error:      "#F87171",
				Success:    "#4ADE80",
			},
		},
		Keys: KeyConfig{
			Modifier: "ctrl",
			Bindings: KeyBindings{
				Quit:            "q",
				AddEntry:        "n",
				RenameEntry:     "r",
				DeleteEntry:     "x",
				ClearAll:        "d",
				UndoClear:       "z",
				RestoreDefaults: "g",
				SetAnchor:       "a",
				MoveUp:          "shift+up",
				MoveDown:        "shift+down",
				NextKind:        "tab",
				Preview:         "v",
				EditParams:      "p",
				ToggleUnit:      "u",
				CopyCSS:         "y",
				RowCSS:          "o",
				Back:            "esc",
				Help:            "?",
			},
		},
	}
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	cfg := defaultConfig()
	v.SetDefault("database", cfg.Database)
	v.SetDefault("generator", cfg.Generator)
	v.SetDefault("log", cfg.Log)
	v.SetDefault("ui", cfg.UI)
	v.SetDefault("keys", cfg.Keys)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir := filepath.Join(homeDir, ".config", "fluidcss")

		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("FLUIDCSS")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand paths after loading
	expandPaths(&config)

	return &config, nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" {
		return path
	}

	// Expand tilde
	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	// Convert to absolute path if not already absolute
	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

// expandPaths expands all paths in the config
func expandPaths(cfg *Config) {
	cfg.Database.Path = expandPath(cfg.Database.Path)
	if cfg.Generator.PresetsFile != "" {
		cfg.Generator.PresetsFile = expandPath(cfg.Generator.PresetsFile)
	}
	if cfg.Log.Path != "" {
		cfg.Log.Path = expandPath(cfg.Log.Path)
	}
}

func Save(config *Config, path string) error {
	v := viper.New()

	// Convert durations to strings for TOML readability
	dbCfg := map[string]interface{}{
		"path":    config.Database.Path,
		"timeout": config.Database.Timeout.String(),
	}

	genCfg := map[string]interface{}{
		"class_prefix":    config.Generator.ClassPrefix,
		"variable_prefix": config.Generator.VariablePrefix,
		"undo_window":     config.Generator.UndoWindow.String(),
		"presets_file":    config.Generator.PresetsFile,
	}

	v.Set("database", dbCfg)
	v.Set("generator", genCfg)
	v.Set("log", config.Log)
	v.Set("ui", config.UI)
	v.Set("keys", config.Keys)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
