package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/themetoggle/internal/theme"
)

var statusOpts struct {
	json bool
}

// Status is the machine-readable status output.
type Status struct {
	Theme        theme.ID `json:"theme"`
	Class        string   `json:"class"`
	FollowSystem bool     `json:"follow_system"`
	Detector     string   `json:"detector"`
	SystemTheme  theme.ID `json:"system_theme,omitempty"`
	Storage      string   `json:"storage"`
	Modified     int64    `json:"modified,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the theme, follow-system state and storage details",
	Long: `Show the stored theme, whether it follows the desktop color scheme, what the
configured detector currently reports and where the preference is stored.

Use --json for a machine-readable form, e.g. for status bars.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusOpts.json, "json", false,
		"Output status as JSON")
}

func runStatus(cmd *cobra.Command, args []string) error {
	pref := prefStore.Preference()
	st := Status{
		Theme:        pref.Theme,
		Class:        theme.MarkerClass(pref.Theme),
		FollowSystem: pref.FollowSystem,
		Detector:     detectorName(),
		Storage:      storagePath,
	}
	if detector != nil {
		if id, ok := detector.Detect(); ok {
			st.SystemTheme = id
		}
	}

	var modTime time.Time
	if mt, err := fileKV.ModTime(); err == nil {
		modTime = mt
		st.Modified = mt.Unix()
	}

	out := cmd.OutOrStdout()
	if statusOpts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}

	system := "no preference"
	if st.SystemTheme != "" {
		system = string(st.SystemTheme)
	}
	_, _ = fmt.Fprintf(out, "Theme:         %s (%s)\n", st.Theme, st.Class)
	_, _ = fmt.Fprintf(out, "Follow system: %s\n", onOff(st.FollowSystem))
	_, _ = fmt.Fprintf(out, "System theme:  %s (via %s)\n", system, st.Detector)
	_, _ = fmt.Fprintf(out, "Storage:       %s\n", st.Storage)
	if !modTime.IsZero() {
		_, _ = fmt.Fprintf(out, "Modified:      %s\n", humanize.Time(modTime))
	}
	return nil
}
