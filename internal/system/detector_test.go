package system

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/themetoggle/internal/theme"
)

func TestStatic(t *testing.T) {
	id, ok := Static{Theme: theme.Light, OK: true}.Detect()
	assert.True(t, ok)
	assert.Equal(t, theme.Light, id)

	id, ok = Static{Theme: theme.Light}.Detect()
	assert.False(t, ok)
	assert.Equal(t, theme.Dark, id)

	_, ok = Static{Theme: "purple", OK: true}.Detect()
	assert.False(t, ok)
}

func TestEnv(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		set      bool
		expected theme.ID
		ok       bool
	}{
		{"unset", "", false, theme.Dark, false},
		{"no variant", "Adwaita", true, theme.Dark, false},
		{"dark", "Adwaita:dark", true, theme.Dark, true},
		{"light", "Adwaita:light", true, theme.Light, true},
		{"unknown variant", "Adwaita:hc", true, theme.Dark, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Env{Lookup: func(string) (string, bool) { return tt.value, tt.set }}
			id, ok := d.Detect()
			assert.Equal(t, tt.expected, id)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestChain(t *testing.T) {
	c := Chain{
		nil,
		Static{},
		Static{Theme: theme.Light, OK: true},
		Static{Theme: theme.Dark, OK: true},
	}
	id, ok := c.Detect()
	assert.True(t, ok)
	assert.Equal(t, theme.Light, id)
	assert.Equal(t, "static,static,static", Chain{Static{}, Static{}, Static{}}.Name())

	_, ok = Chain{Static{}}.Detect()
	assert.False(t, ok)
}

func TestFromColorScheme(t *testing.T) {
	tests := []struct {
		value    uint32
		expected theme.ID
		ok       bool
	}{
		{0, theme.Dark, false},
		{1, theme.Dark, true},
		{2, theme.Light, true},
		{7, theme.Dark, false},
	}

	for _, tt := range tests {
		id, ok := FromColorScheme(tt.value)
		assert.Equal(t, tt.expected, id, "value %d", tt.value)
		assert.Equal(t, tt.ok, ok, "value %d", tt.value)
	}
}

func TestColorScheme_UnwrapsNestedVariants(t *testing.T) {
	id, ok := ColorScheme(dbus.MakeVariant(uint32(2)))
	assert.True(t, ok)
	assert.Equal(t, theme.Light, id)

	id, ok = ColorScheme(dbus.MakeVariant(dbus.MakeVariant(uint32(1))))
	assert.True(t, ok)
	assert.Equal(t, theme.Dark, id)

	_, ok = ColorScheme(dbus.MakeVariant("dark"))
	assert.False(t, ok)

	_, ok = ColorScheme(dbus.MakeVariant(int32(-1)))
	assert.False(t, ok)
}

func TestParseSettingChanged(t *testing.T) {
	valid := &dbus.Signal{
		Name: settingChanged,
		Body: []interface{}{AppearanceNS, ColorSchemeKey, dbus.MakeVariant(uint32(2))},
	}
	id, ok := ParseSettingChanged(valid)
	assert.True(t, ok)
	assert.Equal(t, theme.Light, id)

	tests := []struct {
		name string
		sig  *dbus.Signal
	}{
		{"nil", nil},
		{"other member", &dbus.Signal{Name: SettingsIface + ".Other", Body: valid.Body}},
		{"short body", &dbus.Signal{Name: settingChanged, Body: []interface{}{AppearanceNS}}},
		{"other namespace", &dbus.Signal{Name: settingChanged, Body: []interface{}{"org.gnome.desktop.interface", ColorSchemeKey, dbus.MakeVariant(uint32(1))}}},
		{"other key", &dbus.Signal{Name: settingChanged, Body: []interface{}{AppearanceNS, "accent-color", dbus.MakeVariant(uint32(1))}}},
		{"not a variant", &dbus.Signal{Name: settingChanged, Body: []interface{}{AppearanceNS, ColorSchemeKey, uint32(1)}}},
		{"no preference", &dbus.Signal{Name: settingChanged, Body: []interface{}{AppearanceNS, ColorSchemeKey, dbus.MakeVariant(uint32(0))}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParseSettingChanged(tt.sig)
			assert.False(t, ok)
		})
	}
}

func TestPortal_Name(t *testing.T) {
	assert.Equal(t, "portal", NewPortal(nil).Name())
}
