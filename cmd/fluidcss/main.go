package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/pders01/fluidcss/internal/config"
	"github.com/pders01/fluidcss/internal/cssgen"
	"github.com/pders01/fluidcss/internal/debuglog"
	"github.com/pders01/fluidcss/internal/export"
	"github.com/pders01/fluidcss/internal/generate"
	"github.com/pders01/fluidcss/internal/preset"
	"github.com/pders01/fluidcss/internal/scale"
	"github.com/pders01/fluidcss/internal/storage"
	"github.com/pders01/fluidcss/internal/tui"
)

// Version is the version of the application, set at build time
var Version = "dev"

var (
	dbFlag       string
	configFlag   string
	logLevelFlag string
	quietFlag    bool

	kindFlag        string
	unitFlag        string
	prefixFlag      string
	ratioPresetFlag string

	rootCmd = &cobra.Command{
		Use:     "fluidcss",
		Short:   "Interactive fluid CSS spacing scale builder",
		Version: Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !quietFlag {
				showBanner()
			}

			cfg, store, err := setup()
			if err != nil {
				return err
			}
			defer store.Close()
			defer debuglog.Close()

			params, err := store.LoadParameters()
			if err != nil {
				return fmt.Errorf("loading parameters: %w", err)
			}
			tables, err := store.LoadTables()
			if err != nil {
				return fmt.Errorf("loading tables: %w", err)
			}

			presets, err := preset.Load(cfg.Generator.PresetsFile)
			if err != nil {
				debuglog.Warnf("loading ratio presets: %v", err)
				presets, _ = preset.Defaults()
			}

			ctrl := generate.NewController(params, tables, nil)
			app := tui.NewApp(store, ctrl, cfg, presets)
			p := tea.NewProgram(app, tea.WithAltScreen())

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running ui: %w", err)
			}
			return nil
		},
	}

	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Print the generated CSS for one format and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := setup()
			if err != nil {
				return err
			}
			defer store.Close()
			defer debuglog.Close()

			params, err := store.LoadParameters()
			if err != nil {
				return fmt.Errorf("loading parameters: %w", err)
			}
			tables, err := store.LoadTables()
			if err != nil {
				return fmt.Errorf("loading tables: %w", err)
			}

			kind, err := cssgen.ParseKind(kindFlag)
			if err != nil {
				return err
			}
			if unitFlag != "" {
				if params.Unit, err = scale.ParseUnit(unitFlag); err != nil {
					return err
				}
			}
			if ratioPresetFlag != "" {
				presets, perr := preset.Load(cfg.Generator.PresetsFile)
				if perr != nil {
					return fmt.Errorf("loading ratio presets: %w", perr)
				}
				p, ok := preset.Find(presets, ratioPresetFlag)
				if !ok {
					return fmt.Errorf("unknown ratio preset %q", ratioPresetFlag)
				}
				params.MinScaleRatio = p.Ratio
				params.MaxScaleRatio = p.Ratio
			}

			// Configure against a discard target, then replay the
			// finished CSS to stdout exactly once.
			ctrl := generate.NewController(params, tables, nil)
			ctrl.SetPrefix(cssgen.KindClass, cfg.Generator.ClassPrefix)
			ctrl.SetPrefix(cssgen.KindVariable, cfg.Generator.VariablePrefix)
			if prefixFlag != "" {
				ctrl.SetPrefix(kind, prefixFlag)
			}
			ctrl.SetActiveKind(kind)
			ctrl.SetTarget(generate.NewWriterTarget(cmd.OutOrStdout()))
			return nil
		},
	}

	exportCmd = &cobra.Command{
		Use:   "export <file>",
		Short: "Write parameters and entry tables to a TOML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := setup()
			if err != nil {
				return err
			}
			defer store.Close()
			defer debuglog.Close()

			params, err := store.LoadParameters()
			if err != nil {
				return fmt.Errorf("loading parameters: %w", err)
			}
			tables, err := store.LoadTables()
			if err != nil {
				return fmt.Errorf("loading tables: %w", err)
			}

			if err := export.Export(args[0], params, tables); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported configuration to %s\n", args[0])
			return nil
		},
	}

	importCmd = &cobra.Command{
		Use:   "import <file>",
		Short: "Replace parameters and entry tables from a TOML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := setup()
			if err != nil {
				return err
			}
			defer store.Close()
			defer debuglog.Close()

			params, tables, err := export.Import(args[0])
			if err != nil {
				return err
			}
			if err := store.SaveAll(params, tables); err != nil {
				return fmt.Errorf("saving imported state: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported configuration from %s\n", args[0])
			return nil
		},
	}

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Configuration helpers",
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configFlag
			if path == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				path = filepath.Join(home, ".config", "fluidcss", "config.toml")
			}
			if err := config.GenerateDefaultConfig(path); err != nil {
				return fmt.Errorf("generating config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated default configuration at %s\n", path)
			return nil
		},
	}
)

// setup loads config, initializes logging, and opens the store. Flags
// override the config file.
func setup() (*config.Config, *storage.Store, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	if logLevelFlag != "" {
		cfg.Log.Level = logLevelFlag
	}
	if err := debuglog.Setup(debuglog.ParseLogLevel(cfg.Log.Level), cfg.Log.Path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: debug logging disabled: %v\n", err)
	}

	if dbFlag != "" {
		cfg.Database.Path = dbFlag
	}

	store, err := storage.NewStore(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	return cfg, store, nil
}

func showBanner() {
	lines := []string{
		" ▄████ ▄     ▄ ▄ ▄▄▄▄   ▄▄▄▄",
		"██▀    ██    ██ ██   ██ ██",
		"██▀▀▀▀ ██    ██ ██   ██ ██",
		"██     ██    ██ ██   ██ ██",
		"██      ██████  ██▄▄▄█▀  ▀▀▀▀",
		"",
		"    fluid spacing scales · clamp() builder",
	}

	var coloredLines []string
	for i, line := range lines {
		if line == "" {
			coloredLines = append(coloredLines, line)
			continue
		}
		style := lipgloss.NewStyle().
			Foreground(tui.BannerColors[i%len(tui.BannerColors)]).
			Bold(i < 5)
		coloredLines = append(coloredLines, style.Render(line))
	}

	for _, line := range coloredLines {
		fmt.Println(line)
	}
	fmt.Println()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "Path to database file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Debug log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&quietFlag, "quiet", false, "Skip startup banner")

	generateCmd.Flags().StringVar(&kindFlag, "kind", "class", "Output format (class, variable, utility)")
	generateCmd.Flags().StringVar(&unitFlag, "unit", "", "Output unit (px or rem; overrides stored setting)")
	generateCmd.Flags().StringVar(&prefixFlag, "prefix", "", "Selector prefix (overrides config)")
	generateCmd.Flags().StringVar(&ratioPresetFlag, "ratio-preset", "", "Apply a named scale ratio preset to both bounds")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(generateCmd, exportCmd, importCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
