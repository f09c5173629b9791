package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/themetoggle/internal/ui"
)

// KeyMap defines the key bindings for the TUI.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Actions
	Activate key.Binding
	Toggle   key.Binding

	// Global
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Activate, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Activate, k.Toggle},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings with sc as the toggle key.
// The toggle help shows sc as a terminal delivers it.
func DefaultKeyMap(sc ui.Shortcut) KeyMap {
	sc = TerminalShortcut(sc)
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "tab"),
			key.WithHelp("↓/j", "down"),
		),
		Activate: key.NewBinding(
			key.WithKeys(" ", "space", "enter"),
			key.WithHelp("space/enter", "activate"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(teaKey(sc)),
			key.WithHelp(sc.String(), "toggle theme"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// TerminalShortcut narrows sc to what a terminal can report. Terminals have
// no Meta key and send Ctrl+Shift+letter as Ctrl+letter, so Meta becomes
// Ctrl and Shift is dropped whenever Ctrl is held.
func TerminalShortcut(sc ui.Shortcut) ui.Shortcut {
	if sc.Meta {
		sc.Meta = false
		sc.Ctrl = true
	}
	if sc.Ctrl && sc.Shift {
		sc.Shift = false
		sc.Key = strings.ToLower(sc.Key)
	}
	return sc
}

// teaKey renders sc the way bubbletea names key presses: shifted letters
// arrive as their upper-case rune, other modifiers as prefixes with alt first.
func teaKey(sc ui.Shortcut) string {
	sc = TerminalShortcut(sc)
	k := sc.Key
	if sc.Shift && len([]rune(k)) != 1 {
		k = "shift+" + k
	}
	if sc.Ctrl {
		k = "ctrl+" + k
	}
	if sc.Alt {
		k = "alt+" + k
	}
	return k
}

// keyEvent converts a bubbletea key press.
func keyEvent(msg tea.KeyMsg) ui.KeyEvent {
	var ev ui.KeyEvent
	parts := strings.Split(msg.String(), "+")
	if msg.String() == "+" || strings.HasSuffix(msg.String(), "++") {
		parts = append(parts[:len(parts)-2], "+")
	}
	for _, mod := range parts[:len(parts)-1] {
		switch mod {
		case "ctrl":
			ev.Ctrl = true
		case "alt":
			ev.Alt = true
		case "shift":
			ev.Shift = true
		}
	}
	ev.Key = parts[len(parts)-1]
	if r := []rune(ev.Key); len(r) == 1 && unicode.IsUpper(r[0]) {
		ev.Shift = true
	}
	return ev
}
