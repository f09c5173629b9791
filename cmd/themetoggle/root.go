// Package main provides the CLI entrypoint for themetoggle.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themetoggle/internal/applicator"
	"github.com/jmylchreest/themetoggle/internal/config"
	"github.com/jmylchreest/themetoggle/internal/document"
	"github.com/jmylchreest/themetoggle/internal/event"
	"github.com/jmylchreest/themetoggle/internal/prefs"
	"github.com/jmylchreest/themetoggle/internal/system"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		origin     string
		dataDir    string
	}
	logger *slog.Logger

	storagePath string
	fileKV      *prefs.FileKV
	prefStore   *prefs.Store
	portal      *system.Portal
	detector    system.Detector
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "themetoggle",
	Short: "Dark/light theme preference manager",
	Long: `themetoggle keeps a dark or light theme preference per origin, applies it
to HTML documents and follows the desktop color scheme when asked to.

Preferences live in $XDG_DATA_HOME/themetoggle/<origin>.json and are shared by
every themetoggle process using the same origin.

Running themetoggle without a subcommand launches the interactive TUI.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if globalOpts.origin != "" {
			cfg.Storage.Origin = globalOpts.origin
		}
		if globalOpts.dataDir != "" {
			cfg.Storage.DataDir = globalOpts.dataDir
		}

		storagePath, err = cfg.StoragePath()
		if err != nil {
			return fmt.Errorf("failed to resolve storage path: %w", err)
		}
		fileKV = prefs.NewFileKV(storagePath)
		prefStore = prefs.NewStore(fileKV, logger)

		detector = newDetector(cfg.System.Detector)
		logger.Debug("initialized", "storage", storagePath, "detector", detectorName())
		return nil
	},
	// Default to TUI when no subcommand is provided
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/themetoggle/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.origin, "origin", "",
		"Preference origin (overrides config and THEMETOGGLE_ORIGIN)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.dataDir, "data-dir", "",
		"Preference directory (default: ~/.local/share/themetoggle)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// newDetector builds the detector chain for the configured name.
func newDetector(name string) system.Detector {
	envDetector := system.Env{Lookup: os.LookupEnv}
	switch name {
	case config.DetectorNone:
		return nil
	case config.DetectorEnv:
		return envDetector
	default:
		portal = system.NewPortal(logger)
		return system.Chain{portal, envDetector}
	}
}

func detectorName() string {
	if detector == nil {
		return config.DetectorNone
	}
	return detector.Name()
}

// newApplicator creates an applicator over doc sharing the global store.
// A nil doc gets an in-memory document.
func newApplicator(doc document.Document) *applicator.Applicator {
	return applicator.New(applicator.Options{
		Store:    prefStore,
		Document: doc,
		Bus:      event.NewBus(),
		Detector: detector,
		Logger:   logger,
	})
}
