// Package system detects the operating system's preferred color scheme.
package system

import (
	"os"
	"strings"

	"github.com/jmylchreest/themetoggle/internal/theme"
)

// Detector reports the OS color-scheme preference.
type Detector interface {
	Name() string
	// Detect returns the preferred theme and whether the answer is decisive.
	Detect() (theme.ID, bool)
}

// Static always answers with a fixed theme.
type Static struct {
	Theme theme.ID
	OK    bool
}

func (s Static) Name() string { return "static" }

func (s Static) Detect() (theme.ID, bool) {
	if !s.OK || !s.Theme.Valid() {
		return theme.Default, false
	}
	return s.Theme, true
}

// Env reads the GTK_THEME variant suffix, e.g. "Adwaita:dark".
type Env struct {
	// Lookup defaults to os.LookupEnv.
	Lookup func(string) (string, bool)
}

func (e Env) Name() string { return "env" }

func (e Env) Detect() (theme.ID, bool) {
	lookup := e.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	value, ok := lookup("GTK_THEME")
	if !ok {
		return theme.Default, false
	}
	_, variant, found := strings.Cut(value, ":")
	if !found {
		return theme.Default, false
	}
	return theme.Parse(variant)
}

// Chain asks each detector in order and returns the first decisive answer.
type Chain []Detector

func (c Chain) Name() string {
	names := make([]string, 0, len(c))
	for _, d := range c {
		if d != nil {
			names = append(names, d.Name())
		}
	}
	return strings.Join(names, ",")
}

func (c Chain) Detect() (theme.ID, bool) {
	for _, d := range c {
		if d == nil {
			continue
		}
		if id, ok := d.Detect(); ok {
			return id, true
		}
	}
	return theme.Default, false
}
