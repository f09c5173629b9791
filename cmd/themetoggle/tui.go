package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/themetoggle/internal/tui"
	"github.com/jmylchreest/themetoggle/internal/ui"
)

var tuiOpts struct {
	noPreviews bool
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive theme switcher",
	Long: `Launch the terminal theme switcher.

The TUI provides:
  - A header icon button (🌙 dark, ☀️ light)
  - Theme and follow-system switches
  - Preview cards for every theme
  - Live updates from other processes and the desktop color scheme

Key bindings:
  j/k, ↑/↓      Move focus
  space/enter   Activate the focused control
  T             Toggle theme (ui.shortcut in config)
  ?             Show help
  q             Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().BoolVar(&tuiOpts.noPreviews, "no-previews", false,
		"Hide theme preview cards")
}

func runTUI(cmd *cobra.Command, args []string) error {
	opts := tui.RunOptions{
		App: newApplicator(nil),
		Bindings: ui.Options{
			Shortcut: cfg.Shortcut(),
			Language: cfg.LanguageTag(),
			Logger:   logger,
		},
		ShowPreviews: cfg.UI.ShowPreviews && !tuiOpts.noPreviews,
		Storage:      fileKV,
		Logger:       logger,
	}
	if portal != nil {
		opts.System = portal
	}
	return tui.Run(opts)
}
