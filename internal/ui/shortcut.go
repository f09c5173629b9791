package ui

import (
	"fmt"
	"strings"
)

// DefaultShortcut toggles the theme.
const DefaultShortcut = "Shift+T"

// KeyEvent is a key press from any front end.
type KeyEvent struct {
	Key   string
	Shift bool
	Ctrl  bool
	Meta  bool
	Alt   bool
}

// Shortcut is a key plus required modifiers.
type Shortcut struct {
	Key   string
	Shift bool
	Ctrl  bool
	Meta  bool
	Alt   bool
}

// ParseShortcut parses strings such as "Shift+T" or "ctrl+alt+l".
func ParseShortcut(s string) (Shortcut, error) {
	parts := strings.Split(strings.TrimSpace(s), "+")
	if len(parts) == 0 || strings.TrimSpace(parts[len(parts)-1]) == "" {
		return Shortcut{}, fmt.Errorf("invalid shortcut %q: missing key", s)
	}

	var sc Shortcut
	for _, mod := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(mod)) {
		case "shift":
			sc.Shift = true
		case "ctrl", "control":
			sc.Ctrl = true
		case "meta", "cmd", "super":
			sc.Meta = true
		case "alt", "option":
			sc.Alt = true
		default:
			return Shortcut{}, fmt.Errorf("invalid shortcut %q: unknown modifier %q", s, mod)
		}
	}
	sc.Key = normalizeKey(strings.TrimSpace(parts[len(parts)-1]), sc.Shift)
	return sc, nil
}

// MustParseShortcut is ParseShortcut for constants.
func MustParseShortcut(s string) Shortcut {
	sc, err := ParseShortcut(s)
	if err != nil {
		panic(err)
	}
	return sc
}

// normalizeKey upper-cases single letters typed with shift, the way
// keyboards report them.
func normalizeKey(key string, shift bool) string {
	if len([]rune(key)) != 1 {
		return strings.ToLower(key)
	}
	if shift {
		return strings.ToUpper(key)
	}
	return strings.ToLower(key)
}

// Matches reports whether ev carries the shortcut's key and modifiers.
// Ctrl and Meta may additionally be held, so Ctrl+Shift+T also matches Shift+T.
func (s Shortcut) Matches(ev KeyEvent) bool {
	if s.Key == "" || normalizeKey(ev.Key, ev.Shift) != s.Key {
		return false
	}
	if ev.Shift != s.Shift || ev.Alt != s.Alt {
		return false
	}
	if s.Ctrl && !ev.Ctrl {
		return false
	}
	if s.Meta && !ev.Meta {
		return false
	}
	return true
}

func (s Shortcut) String() string {
	var parts []string
	if s.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if s.Meta {
		parts = append(parts, "Meta")
	}
	if s.Alt {
		parts = append(parts, "Alt")
	}
	if s.Shift {
		parts = append(parts, "Shift")
	}
	return strings.Join(append(parts, s.Key), "+")
}
