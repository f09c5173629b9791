// Package ui builds theme controls and keeps every rendered instance in
// sync with the active theme, whichever source changed it.
package ui

import (
	"log/slog"
	"sync"

	"github.com/oklog/ulid/v2"
	"golang.org/x/text/language"

	"github.com/jmylchreest/themetoggle/internal/applicator"
	"github.com/jmylchreest/themetoggle/internal/event"
	"github.com/jmylchreest/themetoggle/internal/theme"
)

// Options configures Bindings.
type Options struct {
	// Shortcut toggles the theme from HandleKey. Defaults to DefaultShortcut.
	Shortcut Shortcut
	// Language selects preview card display names. Defaults to English.
	Language language.Tag
	Logger   *slog.Logger
}

// Bindings owns the controls built on top of an Applicator.
type Bindings struct {
	app      *applicator.Applicator
	logger   *slog.Logger
	shortcut Shortcut
	lang     language.Tag

	mu          sync.Mutex
	controls    []Control
	renderers   map[int]func(State)
	nextRender  int
	unsubscribe func()
}

// New creates Bindings and subscribes them to the applicator's bus.
func New(app *applicator.Applicator, opts Options) *Bindings {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	shortcut := opts.Shortcut
	if shortcut.Key == "" {
		shortcut = MustParseShortcut(DefaultShortcut)
	}
	lang := opts.Language
	if lang == language.Und {
		lang = language.English
	}

	b := &Bindings{
		app:       app,
		logger:    logger,
		shortcut:  shortcut,
		lang:      lang,
		renderers: make(map[int]func(State)),
	}
	b.unsubscribe = app.Bus().Subscribe(b.onChange)
	return b
}

// Shortcut returns the toggle shortcut.
func (b *Bindings) Shortcut() Shortcut { return b.shortcut }

// Language returns the display language.
func (b *Bindings) Language() language.Tag { return b.lang }

// State reads the current state from the store.
func (b *Bindings) State() State {
	return State{
		Theme:        b.app.Current(),
		FollowSystem: b.app.FollowSystem(),
	}
}

func (b *Bindings) newBase() base {
	return base{id: ulid.Make(), app: b.app}
}

func (b *Bindings) register(c Control) {
	c.sync(b.State())

	b.mu.Lock()
	b.controls = append(b.controls, c)
	b.mu.Unlock()

	b.logger.Debug("registered theme control", "id", c.ID().String(), "kind", string(c.Kind()))
}

// NewToggleSwitch creates a theme switch reflecting the current theme.
func (b *Bindings) NewToggleSwitch() *ToggleSwitch {
	s := &ToggleSwitch{base: b.newBase()}
	b.register(s)
	return s
}

// NewSystemToggle creates a follow-system switch.
func (b *Bindings) NewSystemToggle() *SystemToggle {
	s := &SystemToggle{base: b.newBase()}
	b.register(s)
	return s
}

// NewIconButton creates a header icon button.
func (b *Bindings) NewIconButton() *IconButton {
	btn := &IconButton{base: b.newBase()}
	b.register(btn)
	return btn
}

// NewPreviewCard creates a preview card for id. Unknown IDs preview the default theme.
func (b *Bindings) NewPreviewCard(id theme.ID) *PreviewCard {
	c := newPreviewCard(b.newBase(), id, b.lang)
	b.register(c)
	return c
}

// Controls returns the registered controls in creation order.
func (b *Bindings) Controls() []Control {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Control, len(b.controls))
	copy(out, b.controls)
	return out
}

// Control looks up a control by ID.
func (b *Bindings) Control(id ulid.ULID) (Control, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range b.controls {
		if c.ID() == id {
			return c, true
		}
	}
	return nil, false
}

// Remove drops a control so it no longer receives updates.
func (b *Bindings) Remove(id ulid.ULID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, c := range b.controls {
		if c.ID() == id {
			b.controls = append(b.controls[:i], b.controls[i+1:]...)
			return true
		}
	}
	return false
}

// OnRender registers fn to run after controls are synced on every change.
func (b *Bindings) OnRender(fn func(State)) (remove func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextRender++
	id := b.nextRender
	b.renderers[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.renderers, id)
	}
}

// HandleKey toggles the theme when ev matches the shortcut.
func (b *Bindings) HandleKey(ev KeyEvent) bool {
	if !b.shortcut.Matches(ev) {
		return false
	}
	b.app.ToggleFrom(event.SourceShortcut)
	return true
}

// Refresh re-syncs every control from the store without a change event.
func (b *Bindings) Refresh() {
	b.syncAll(b.State())
}

func (b *Bindings) onChange(c event.Change) {
	b.syncAll(State{
		Theme:        c.Theme,
		FollowSystem: b.app.FollowSystem(),
	})
}

func (b *Bindings) syncAll(st State) {
	b.mu.Lock()
	controls := make([]Control, len(b.controls))
	copy(controls, b.controls)
	renderers := make([]func(State), 0, len(b.renderers))
	for i := 1; i <= b.nextRender; i++ {
		if fn, ok := b.renderers[i]; ok {
			renderers = append(renderers, fn)
		}
	}
	b.mu.Unlock()

	for _, c := range controls {
		c.sync(st)
	}
	for _, fn := range renderers {
		fn(st)
	}
}

// Close stops listening for changes.
func (b *Bindings) Close() {
	b.mu.Lock()
	unsubscribe := b.unsubscribe
	b.unsubscribe = nil
	b.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}
