// Package applicator applies a theme to a document, persists it and
// announces the change to every listener.
package applicator

import (
	"log/slog"
	"sync"

	"github.com/jmylchreest/themetoggle/internal/document"
	"github.com/jmylchreest/themetoggle/internal/event"
	"github.com/jmylchreest/themetoggle/internal/prefs"
	"github.com/jmylchreest/themetoggle/internal/system"
	"github.com/jmylchreest/themetoggle/internal/theme"
)

// ThemeAttribute is set on the body element to the active theme ID.
const ThemeAttribute = "data-theme"

// Custom properties written by UpdateColors.
const (
	VarPrimary   = "--color-primary"
	VarSecondary = "--color-secondary"
	VarTertiary  = "--color-tertiary"
)

// Options configures an Applicator.
type Options struct {
	Store    *prefs.Store
	Document document.Document
	Bus      *event.Bus
	// Detector answers the OS color scheme. Optional.
	Detector system.Detector
	Logger   *slog.Logger
}

// Applicator owns the active theme.
type Applicator struct {
	mu       sync.Mutex
	store    *prefs.Store
	doc      document.Document
	bus      *event.Bus
	detector system.Detector
	logger   *slog.Logger

	// shown is the preference listeners last heard about.
	shown prefs.Preference
}

// New creates an Applicator. Missing collaborators are replaced with
// in-memory ones.
func New(opts Options) *Applicator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	store := opts.Store
	if store == nil {
		store = prefs.NewStore(nil, logger)
	}
	doc := opts.Document
	if doc == nil {
		doc = document.NewMemory()
	}
	bus := opts.Bus
	if bus == nil {
		bus = event.NewBus()
	}

	return &Applicator{
		store:    store,
		doc:      doc,
		bus:      bus,
		detector: opts.Detector,
		logger:   logger,
	}
}

// Bus returns the bus changes are published on.
func (a *Applicator) Bus() *event.Bus { return a.bus }

// Store returns the preference store.
func (a *Applicator) Store() *prefs.Store { return a.store }

// Document returns the document themes are applied to.
func (a *Applicator) Document() document.Document { return a.doc }

// Apply activates id. Invalid IDs are coerced to the default theme.
func (a *Applicator) Apply(id theme.ID) theme.ID {
	return a.apply(id, event.SourceUser)
}

// ApplyFrom is Apply with an explicit change source.
func (a *Applicator) ApplyFrom(id theme.ID, source string) theme.ID {
	return a.apply(id, source)
}

func (a *Applicator) apply(id theme.ID, source string) theme.ID {
	return a.applyWith(id, source, true)
}

func (a *Applicator) applyWith(id theme.ID, source string, persist bool) theme.ID {
	normalized, ok := theme.Parse(string(id))
	if !ok {
		a.logger.Warn("invalid theme, using default", "theme", string(id), "default", string(theme.Default))
	}

	a.mu.Lock()
	a.mark(normalized)
	if persist {
		a.store.SetTheme(normalized)
	}
	a.mu.Unlock()

	a.logger.Debug("applied theme", "theme", string(normalized), "source", source)
	a.publish(event.Change{Theme: normalized, Source: source})
	return normalized
}

func (a *Applicator) publish(c event.Change) {
	follow := a.store.FollowSystem()
	a.mu.Lock()
	a.shown = prefs.Preference{Theme: c.Theme, FollowSystem: follow}
	a.mu.Unlock()
	a.bus.Publish(c)
}

// mark replaces the document markers for id.
func (a *Applicator) mark(id theme.ID) {
	root := a.doc.Root()
	root.RemoveClass(theme.MarkerClasses()...)
	root.AddClass(theme.MarkerClass(id))

	body := a.doc.Body()
	body.SetAttribute(ThemeAttribute, string(id))
	if id == theme.Light {
		body.AddClass(theme.MarkerClass(theme.Light))
	} else {
		body.RemoveClass(theme.MarkerClass(theme.Light))
	}
}

// Current returns the stored theme.
func (a *Applicator) Current() theme.ID {
	return a.store.Theme()
}

// Toggle flips between dark and light and returns the new theme.
func (a *Applicator) Toggle() theme.ID {
	return a.ToggleFrom(event.SourceUser)
}

// ToggleFrom is Toggle with an explicit change source.
func (a *Applicator) ToggleFrom(source string) theme.ID {
	return a.apply(a.Current().Opposite(), source)
}

// Init applies the stored theme, or the system theme when following it.
func (a *Applicator) Init() theme.ID {
	if a.store.FollowSystem() {
		if id, ok := a.detect(); ok {
			return a.apply(id, event.SourceSystem)
		}
	}
	return a.apply(a.Current(), event.SourceInit)
}

// FollowSystem reports whether the theme tracks the OS color scheme.
func (a *Applicator) FollowSystem() bool {
	return a.store.FollowSystem()
}

// SetFollowSystem persists the flag. Enabling it applies the detected
// system theme right away.
func (a *Applicator) SetFollowSystem(follow bool) {
	a.store.SetFollowSystem(follow)
	if !follow {
		// Listeners still need to re-render the follow-system control.
		a.publish(event.Change{Theme: a.Current(), Source: event.SourceUser})
		return
	}

	if id, ok := a.detect(); ok {
		a.apply(id, event.SourceSystem)
		return
	}
	a.logger.Info("system color scheme unknown, keeping current theme")
	a.publish(event.Change{Theme: a.Current(), Source: event.SourceSystem})
}

// SystemChanged handles an OS color-scheme change. It only applies id while
// follow-system is enabled and reports whether it did.
func (a *Applicator) SystemChanged(id theme.ID) bool {
	if !a.store.FollowSystem() {
		a.logger.Debug("ignoring system color scheme change", "theme", string(id))
		return false
	}
	a.apply(id, event.SourceSystem)
	return true
}

// Reload re-reads the store after another process changed it and marks the
// document with the stored theme. Nothing is written back, and nothing is
// published when the stored preference is what listeners already have.
func (a *Applicator) Reload() theme.ID {
	pref := a.store.Preference()

	a.mu.Lock()
	unchanged := pref == a.shown
	a.mu.Unlock()
	if unchanged {
		a.logger.Debug("stored preference unchanged, skipping reload", "theme", string(pref.Theme))
		return pref.Theme
	}
	return a.applyWith(pref.Theme, event.SourceStorage, false)
}

func (a *Applicator) detect() (theme.ID, bool) {
	if a.detector == nil {
		return theme.Default, false
	}
	return a.detector.Detect()
}

// UpdateColors overrides palette colors with inline custom properties on
// the root element. Empty fields are left alone.
func (a *Applicator) UpdateColors(p theme.Palette) {
	a.mu.Lock()
	defer a.mu.Unlock()

	root := a.doc.Root()
	for _, prop := range []struct{ name, value string }{
		{VarPrimary, p.Primary},
		{VarSecondary, p.Secondary},
		{VarTertiary, p.Tertiary},
	} {
		if prop.value != "" {
			root.SetStyleProperty(prop.name, prop.value)
		}
	}
}

// CSSVariable returns an inline custom property from the root element.
func (a *Applicator) CSSVariable(name string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.doc.Root().StyleProperty(name)
}
