package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themetoggle/internal/applicator"
	"github.com/jmylchreest/themetoggle/internal/event"
	"github.com/jmylchreest/themetoggle/internal/prefs"
	"github.com/jmylchreest/themetoggle/internal/theme"
)

var watchOpts struct {
	json bool
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the desktop color scheme and print every theme change",
	Long: `Run in the foreground, applying desktop color-scheme changes while
follow-system is on and reporting changes made by other themetoggle processes.

Color-scheme changes arrive as xdg-desktop-portal SettingChanged signals. When
the portal is unavailable the detector is polled every system.poll_interval
(0 disables polling).

Each change is printed as one line, or as a JSON object with --json.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&watchOpts.json, "json", false,
		"Print changes as JSON lines")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := newApplicator(nil)
	changes := app.Bus().Listen()
	defer app.Bus().Unlisten(changes)

	app.Init()

	w := prefs.NewWatcher(fileKV, func() { app.Reload() }, logger)
	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to watch %s: %w", storagePath, err)
	}
	defer func() { _ = w.Stop() }()

	watchSystem(ctx, app)

	out := cmd.OutOrStdout()
	for {
		select {
		case <-ctx.Done():
			return nil
		case c, ok := <-changes:
			if !ok {
				return nil
			}
			if err := printChange(out, c); err != nil {
				return err
			}
		}
	}
}

// watchSystem subscribes to portal signals, falling back to polling the
// detector when signals are unavailable.
func watchSystem(ctx context.Context, app *applicator.Applicator) {
	if detector == nil {
		return
	}
	if portal != nil {
		err := portal.Watch(ctx, func(id theme.ID) { app.SystemChanged(id) })
		if err == nil {
			return
		}
		logger.Warn("portal unavailable, polling detector", "error", err)
	}

	interval := cfg.System.PollInterval.Duration()
	if interval <= 0 {
		return
	}
	go pollDetector(ctx, app, interval)
}

func pollDetector(ctx context.Context, app *applicator.Applicator, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last, _ := detector.Detect()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			id, ok := detector.Detect()
			if !ok || id == last {
				continue
			}
			last = id
			app.SystemChanged(id)
		}
	}
}

func printChange(w io.Writer, c event.Change) error {
	if watchOpts.json {
		return json.NewEncoder(w).Encode(struct {
			Time time.Time `json:"time"`
			event.Change
		}{time.Now().UTC(), c})
	}
	_, err := fmt.Fprintf(w, "%s theme=%s source=%s\n", time.Now().Format(time.RFC3339), c.Theme, c.Source)
	return err
}
