package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themetoggle/internal/applicator"
)

var exportOpts struct {
	format string
	output string
}

var importOpts struct {
	format string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the theme preference",
	Long: `Export the theme preference as JSON or YAML.

Examples:
  themetoggle export > theme.json
  themetoggle export --format yaml -o theme.yaml`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Import a theme preference exported earlier",
	Long: `Import a theme preference. Use - to read from stdin.

The format is taken from --format, or from the file extension (.yaml, .yml)
when --format is not given. An unknown theme is ignored; the follow-system flag
is only changed when present.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)

	exportCmd.Flags().StringVarP(&exportOpts.format, "format", "f", "json",
		"Output format (json, yaml)")
	exportCmd.Flags().StringVarP(&exportOpts.output, "output", "o", "",
		"Write to file instead of stdout")
	importCmd.Flags().StringVarP(&importOpts.format, "format", "f", "",
		"Input format (json, yaml; default from extension)")
}

func runExport(cmd *cobra.Command, args []string) error {
	data, err := newApplicator(nil).Export().Marshal(applicator.Format(exportOpts.format))
	if err != nil {
		return err
	}
	if !strings.HasSuffix(string(data), "\n") {
		data = append(data, '\n')
	}

	if exportOpts.output == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(exportOpts.output, data, 0644)
}

func runImport(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	settings, err := applicator.ParseSettings(data, settingsFormat(importOpts.format, args[0]))
	if err != nil {
		return err
	}

	app := newApplicator(nil)
	app.Import(settings)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "theme: %s, follow system: %s\n",
		app.Current(), onOff(app.FollowSystem()))
	return nil
}

// settingsFormat picks the explicit format or guesses one from path.
func settingsFormat(explicit, path string) applicator.Format {
	if explicit != "" {
		return applicator.Format(strings.ToLower(explicit))
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return applicator.FormatYAML
	default:
		return applicator.FormatJSON
	}
}
