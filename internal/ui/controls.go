package ui

import (
	"sync"

	"github.com/oklog/ulid/v2"
	"golang.org/x/text/language"

	"github.com/jmylchreest/themetoggle/internal/applicator"
	"github.com/jmylchreest/themetoggle/internal/theme"
)

// Kind identifies a control type. It doubles as the data-theme-control
// attribute value in rendered markup.
type Kind string

const (
	KindThemeSwitch  Kind = "theme-switch"
	KindSystemSwitch Kind = "system-switch"
	KindIconButton   Kind = "icon-button"
	KindPreviewCard  Kind = "preview-card"
)

// Icons shown by the icon button.
const (
	IconDark  = "🌙"
	IconLight = "☀️"
)

// Labels used by the controls.
const (
	ThemeModeLabel       = "Theme mode"
	ThemeModeDescription = "Switch between dark and light themes"
	FollowSystemLabel    = "Follow system"
	FollowSystemDesc     = "Match the operating system color scheme"
	ToggleThemeTitle     = "Toggle theme"
)

// State is what every control renders from.
type State struct {
	Theme        theme.ID
	FollowSystem bool
}

// Control is a rendered theme control.
type Control interface {
	ID() ulid.ULID
	Kind() Kind
	sync(State)
}

// IconFor returns the icon button face for id.
func IconFor(id theme.ID) string {
	if id == theme.Light {
		return IconLight
	}
	return IconDark
}

type base struct {
	id  ulid.ULID
	app *applicator.Applicator
}

func (b *base) ID() ulid.ULID { return b.id }

// ToggleSwitch is a checkbox that is checked while the light theme is active.
type ToggleSwitch struct {
	base
	mu      sync.RWMutex
	checked bool
}

func (s *ToggleSwitch) Kind() Kind { return KindThemeSwitch }

func (s *ToggleSwitch) Checked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.checked
}

// SetChecked applies light when checked and dark otherwise.
func (s *ToggleSwitch) SetChecked(checked bool) theme.ID {
	if checked {
		return s.app.Apply(theme.Light)
	}
	return s.app.Apply(theme.Dark)
}

func (s *ToggleSwitch) sync(st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checked = st.Theme == theme.Light
}

// SystemToggle is a checkbox bound to the follow-system preference.
type SystemToggle struct {
	base
	mu      sync.RWMutex
	checked bool
}

func (s *SystemToggle) Kind() Kind { return KindSystemSwitch }

func (s *SystemToggle) Checked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.checked
}

// SetChecked persists the follow-system flag.
func (s *SystemToggle) SetChecked(checked bool) {
	s.app.SetFollowSystem(checked)
}

func (s *SystemToggle) sync(st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checked = st.FollowSystem
}

// IconButton shows a moon in dark mode and a sun in light mode.
type IconButton struct {
	base
	mu   sync.RWMutex
	icon string
}

func (b *IconButton) Kind() Kind { return KindIconButton }

func (b *IconButton) Icon() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.icon
}

// Title is the tooltip and accessible label.
func (b *IconButton) Title() string { return ToggleThemeTitle }

// Click toggles the theme and returns the new one.
func (b *IconButton) Click() theme.ID {
	return b.app.Toggle()
}

func (b *IconButton) sync(st State) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.icon = IconFor(st.Theme)
}

// PreviewCard shows one theme's palette.
type PreviewCard struct {
	base
	info theme.Info
	name string

	mu     sync.RWMutex
	active bool
}

func (c *PreviewCard) Kind() Kind { return KindPreviewCard }

// Theme returns the previewed theme.
func (c *PreviewCard) Theme() theme.Info { return c.info }

// Name is the display name in the bindings' language.
func (c *PreviewCard) Name() string { return c.name }

// Active reports whether the previewed theme is the active one.
func (c *PreviewCard) Active() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

// Select applies the previewed theme.
func (c *PreviewCard) Select() theme.ID {
	return c.app.Apply(c.info.ID)
}

func (c *PreviewCard) sync(st State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = st.Theme == c.info.ID
}

func newPreviewCard(b base, id theme.ID, tag language.Tag) *PreviewCard {
	info := theme.ByID(id)
	return &PreviewCard{
		base: b,
		info: info,
		name: info.DisplayName(tag),
	}
}
