package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themetoggle/internal/theme"
)

var getOpts struct {
	class bool
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the stored theme",
	Long: `Print the stored theme ID (dark or light).

A missing or invalid stored value resolves to dark and is written back.

Examples:
  # Print the theme
  themetoggle get

  # Print the root marker class, e.g. for shell prompts
  themetoggle get --class`,
	Args: cobra.NoArgs,
	RunE: runGet,
}

var setCmd = &cobra.Command{
	Use:       "set <dark|light>",
	Short:     "Apply and store a theme",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(theme.Dark), string(theme.Light)},
	RunE:      runSet,
}

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Switch between dark and light",
	Args:  cobra.NoArgs,
	RunE:  runToggle,
}

var followCmd = &cobra.Command{
	Use:   "follow [on|off]",
	Short: "Show or change whether the theme follows the desktop color scheme",
	Long: `Without an argument, print whether the theme follows the desktop color scheme.

Turning it on applies the detected system theme immediately. When the system
reports no preference the stored theme is kept.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE:      runFollow,
}

func init() {
	rootCmd.AddCommand(getCmd, setCmd, toggleCmd, followCmd)

	getCmd.Flags().BoolVar(&getOpts.class, "class", false,
		"Print the root marker class instead of the theme ID")
}

func runGet(cmd *cobra.Command, args []string) error {
	id := prefStore.Theme()
	if getOpts.class {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), theme.MarkerClass(id))
		return nil
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}

func runSet(cmd *cobra.Command, args []string) error {
	id, ok := theme.Parse(args[0])
	if !ok {
		return fmt.Errorf("unknown theme %q (valid: %s)", args[0], strings.Join(themeNames(), ", "))
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), newApplicator(nil).Apply(id))
	return nil
}

func runToggle(cmd *cobra.Command, args []string) error {
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), newApplicator(nil).Toggle())
	return nil
}

func runFollow(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), onOff(prefStore.FollowSystem()))
		return nil
	}

	var follow bool
	switch strings.ToLower(args[0]) {
	case "on", "true", "yes":
		follow = true
	case "off", "false", "no":
	default:
		return fmt.Errorf("invalid argument %q: expected on or off", args[0])
	}

	app := newApplicator(nil)
	app.SetFollowSystem(follow)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "follow system: %s, theme: %s\n", onOff(follow), app.Current())
	return nil
}

func themeNames() []string {
	ids := theme.IDs()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	return names
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
