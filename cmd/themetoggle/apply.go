package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themetoggle/internal/document"
	"github.com/jmylchreest/themetoggle/internal/theme"
	"github.com/jmylchreest/themetoggle/internal/ui"
)

var applyOpts struct {
	output   string
	controls bool
	theme    string
	colors   theme.Palette
}

var applyCmd = &cobra.Command{
	Use:   "apply <in.html|->",
	Short: "Mark an HTML document with the active theme",
	Long: `Parse an HTML document, mark it with the active theme and write it out.

The <html> element gets the theme marker class (dark-theme or light-theme) and
<body> gets a data-theme attribute. With --controls the theme controls are
rendered as well: an icon button in .main-header and the theme and
follow-system switches plus preview cards in [data-settings-section="appearance"].

Examples:
  themetoggle apply index.html -o index.themed.html
  curl -s https://example.com | themetoggle apply - --theme light
  themetoggle apply page.html --controls --primary '#ff00aa'`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().StringVarP(&applyOpts.output, "output", "o", "",
		"Write to file instead of stdout")
	applyCmd.Flags().BoolVar(&applyOpts.controls, "controls", false,
		"Render the theme controls into the document")
	applyCmd.Flags().StringVar(&applyOpts.theme, "theme", "",
		"Apply and store this theme instead of the stored one")
	applyCmd.Flags().StringVar(&applyOpts.colors.Primary, "primary", "",
		"Override the primary color")
	applyCmd.Flags().StringVar(&applyOpts.colors.Secondary, "secondary", "",
		"Override the secondary color")
	applyCmd.Flags().StringVar(&applyOpts.colors.Tertiary, "tertiary", "",
		"Override the tertiary color")
}

func runApply(cmd *cobra.Command, args []string) error {
	in, err := openInput(cmd, args[0])
	if err != nil {
		return err
	}
	doc, err := document.ParseHTML(in)
	_ = in.Close()
	if err != nil {
		return err
	}

	app := newApplicator(doc)
	if applyOpts.theme != "" {
		id, ok := theme.Parse(applyOpts.theme)
		if !ok {
			return fmt.Errorf("unknown theme %q", applyOpts.theme)
		}
		app.Apply(id)
	} else {
		app.Init()
	}
	app.UpdateColors(applyOpts.colors)

	if applyOpts.controls {
		renderControls(doc, ui.New(app, ui.Options{
			Shortcut: cfg.Shortcut(),
			Language: cfg.LanguageTag(),
			Logger:   logger,
		}))
	}

	if applyOpts.output == "" {
		return doc.Render(cmd.OutOrStdout())
	}
	f, err := os.Create(applyOpts.output)
	if err != nil {
		return err
	}
	if err := doc.Render(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// renderControls adds the header button, the settings switches and, when
// enabled, a preview card per theme.
func renderControls(doc *document.HTML, b *ui.Bindings) {
	defer b.Close()

	view := ui.NewHTMLView(b, doc)
	defer view.Close()

	if view.AddHeaderButton() == nil {
		logger.Debug("header button not added")
	}
	if _, _, ok := view.RenderSettings(); !ok {
		logger.Debug("no appearance settings section")
		return
	}
	if !cfg.UI.ShowPreviews {
		return
	}

	section := doc.FindByAttr(ui.SettingsSectionAttr, ui.AppearanceSection)
	for _, id := range theme.IDs() {
		_, node := view.RenderPreviewCard(id)
		section.AppendChild(node)
	}
}

func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, nil
}
