package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShortcut(t *testing.T) {
	tests := []struct {
		in   string
		want Shortcut
	}{
		{"Shift+T", Shortcut{Key: "T", Shift: true}},
		{"shift+t", Shortcut{Key: "T", Shift: true}},
		{"ctrl+alt+L", Shortcut{Key: "l", Ctrl: true, Alt: true}},
		{"Cmd+Shift+D", Shortcut{Key: "D", Meta: true, Shift: true}},
		{"F5", Shortcut{Key: "f5"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseShortcut(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseShortcut_Invalid(t *testing.T) {
	for _, in := range []string{"", "Shift+", "Hyper+T"} {
		_, err := ParseShortcut(in)
		assert.Error(t, err, in)
	}
	assert.Panics(t, func() { MustParseShortcut("Shift+") })
}

func TestShortcut_Matches(t *testing.T) {
	sc := MustParseShortcut(DefaultShortcut)

	tests := []struct {
		name string
		ev   KeyEvent
		want bool
	}{
		{"shift", KeyEvent{Key: "T", Shift: true}, true},
		{"ctrl shift", KeyEvent{Key: "T", Shift: true, Ctrl: true}, true},
		{"meta shift", KeyEvent{Key: "T", Shift: true, Meta: true}, true},
		{"lowercase key with shift", KeyEvent{Key: "t", Shift: true}, true},
		{"no shift", KeyEvent{Key: "t"}, false},
		{"alt shift", KeyEvent{Key: "T", Shift: true, Alt: true}, false},
		{"other key", KeyEvent{Key: "R", Shift: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sc.Matches(tt.ev))
		})
	}
}

func TestShortcut_String(t *testing.T) {
	assert.Equal(t, "Shift+T", MustParseShortcut("shift+t").String())
	assert.Equal(t, "Ctrl+Alt+l", MustParseShortcut("alt+ctrl+L").String())
}
