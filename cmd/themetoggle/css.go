package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themetoggle/internal/theme"
)

var cssCmd = &cobra.Command{
	Use:   "css",
	Short: "Print the bundled theme stylesheet",
	Long: `Print a stylesheet with one rule per theme. Each rule targets the root marker
class (e.g. :root.dark-theme) and defines the palette custom properties.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		css, err := theme.Stylesheet()
		if err != nil {
			return fmt.Errorf("failed to render stylesheet: %w", err)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), css)
		return err
	},
}

func init() {
	rootCmd.AddCommand(cssCmd)
}
