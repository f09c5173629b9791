package system

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/themetoggle/internal/theme"
)

// xdg-desktop-portal Settings interface.
const (
	PortalService    = "org.freedesktop.portal.Desktop"
	PortalPath       = "/org/freedesktop/portal/desktop"
	SettingsIface    = "org.freedesktop.portal.Settings"
	AppearanceNS     = "org.freedesktop.appearance"
	ColorSchemeKey   = "color-scheme"
	settingChanged   = SettingsIface + ".SettingChanged"
	colorSchemeNone  = 0
	colorSchemeDark  = 1
	colorSchemeLight = 2
)

// Portal reads the color scheme from xdg-desktop-portal over the session bus.
type Portal struct {
	mu     sync.Mutex
	conn   *dbus.Conn
	logger *slog.Logger
}

// NewPortal creates a portal detector. The bus is connected lazily.
func NewPortal(logger *slog.Logger) *Portal {
	if logger == nil {
		logger = slog.Default()
	}
	return &Portal{logger: logger}
}

// NewPortalWithConn creates a portal detector on an existing connection.
func NewPortalWithConn(conn *dbus.Conn, logger *slog.Logger) *Portal {
	p := NewPortal(logger)
	p.conn = conn
	return p
}

func (p *Portal) Name() string { return "portal" }

func (p *Portal) connect() (*dbus.Conn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn != nil {
		return p.conn, nil
	}
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	p.conn = conn
	return conn, nil
}

// Detect reads org.freedesktop.appearance color-scheme.
func (p *Portal) Detect() (theme.ID, bool) {
	conn, err := p.connect()
	if err != nil {
		p.logger.Debug("color scheme portal unavailable", "error", err)
		return theme.Default, false
	}

	obj := conn.Object(PortalService, PortalPath)

	var value dbus.Variant
	err = obj.Call(SettingsIface+".ReadOne", 0, AppearanceNS, ColorSchemeKey).Store(&value)
	if err != nil {
		// ReadOne arrived in version 2 of the interface; Read nests the value in a second variant.
		p.logger.Debug("ReadOne failed, falling back to Read", "error", err)
		err = obj.Call(SettingsIface+".Read", 0, AppearanceNS, ColorSchemeKey).Store(&value)
	}
	if err != nil {
		p.logger.Debug("failed to read color scheme", "error", err)
		return theme.Default, false
	}

	return ColorScheme(value)
}

// Watch calls fn whenever the portal reports a decisive color-scheme change.
// It returns once the subscription is in place; delivery stops when ctx ends.
func (p *Portal) Watch(ctx context.Context, fn func(theme.ID)) error {
	conn, err := p.connect()
	if err != nil {
		return err
	}

	opts := []dbus.MatchOption{
		dbus.WithMatchObjectPath(PortalPath),
		dbus.WithMatchInterface(SettingsIface),
		dbus.WithMatchMember("SettingChanged"),
	}
	if err := conn.AddMatchSignal(opts...); err != nil {
		return fmt.Errorf("failed to subscribe to portal settings: %w", err)
	}

	ch := make(chan *dbus.Signal, 10)
	conn.Signal(ch)

	go func() {
		defer func() {
			conn.RemoveSignal(ch)
			if err := conn.RemoveMatchSignal(opts...); err != nil {
				p.logger.Debug("failed to remove portal match", "error", err)
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case sig, ok := <-ch:
				if !ok {
					return
				}
				if id, ok := ParseSettingChanged(sig); ok {
					p.logger.Debug("system color scheme changed", "theme", string(id))
					fn(id)
				}
			}
		}
	}()

	p.logger.Info("watching system color scheme", "service", PortalService)
	return nil
}

// ParseSettingChanged extracts the theme from a SettingChanged signal for the
// color-scheme key. Other signals and indecisive values are rejected.
func ParseSettingChanged(sig *dbus.Signal) (theme.ID, bool) {
	if sig == nil || sig.Name != settingChanged || len(sig.Body) != 3 {
		return theme.Default, false
	}
	ns, _ := sig.Body[0].(string)
	key, _ := sig.Body[1].(string)
	if ns != AppearanceNS || key != ColorSchemeKey {
		return theme.Default, false
	}
	value, ok := sig.Body[2].(dbus.Variant)
	if !ok {
		return theme.Default, false
	}
	return ColorScheme(value)
}

// ColorScheme maps a portal color-scheme value, unwrapping nested variants.
func ColorScheme(v dbus.Variant) (theme.ID, bool) {
	for {
		inner, ok := v.Value().(dbus.Variant)
		if !ok {
			break
		}
		v = inner
	}

	switch n := v.Value().(type) {
	case uint32:
		return FromColorScheme(n)
	case int32:
		if n < 0 {
			return theme.Default, false
		}
		return FromColorScheme(uint32(n))
	default:
		return theme.Default, false
	}
}

// FromColorScheme maps 1 to dark, 2 to light; 0 (no preference) is indecisive.
func FromColorScheme(value uint32) (theme.ID, bool) {
	switch value {
	case colorSchemeDark:
		return theme.Dark, true
	case colorSchemeLight:
		return theme.Light, true
	case colorSchemeNone:
		return theme.Default, false
	default:
		return theme.Default, false
	}
}
