package theme

import (
	"bytes"
	"embed"
	"text/template"
)

//go:embed themes/palette.css.tmpl
var embeddedTemplates embed.FS

var stylesheetTemplate = template.Must(
	template.ParseFS(embeddedTemplates, "themes/palette.css.tmpl"),
)

// Stylesheet renders the bundled stylesheet for every catalog theme.
func Stylesheet() (string, error) {
	return RenderStylesheet(All())
}

// RenderStylesheet renders the bundled stylesheet for the given themes.
func RenderStylesheet(themes []Info) (string, error) {
	var buf bytes.Buffer
	if err := stylesheetTemplate.Execute(&buf, themes); err != nil {
		return "", err
	}
	return buf.String(), nil
}
