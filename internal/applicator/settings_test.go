package applicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/themetoggle/internal/event"
	"github.com/jmylchreest/themetoggle/internal/prefs"
	"github.com/jmylchreest/themetoggle/internal/system"
	"github.com/jmylchreest/themetoggle/internal/theme"
)

func TestExport(t *testing.T) {
	f := newFixture(t, map[string]string{prefs.KeyTheme: "light", prefs.KeyFollowSystem: "true"}, nil)

	s := f.app.Export()
	assert.Equal(t, theme.Light, s.Theme)
	require.NotNil(t, s.UseSystemPreference)
	assert.True(t, *s.UseSystemPreference)
	assert.False(t, s.Timestamp.IsZero())
}

func TestImport(t *testing.T) {
	follow := true
	f := newFixture(t, nil, system.Static{Theme: theme.Dark, OK: true})
	got := f.record()

	f.app.Import(Settings{Theme: theme.Light})
	assert.Equal(t, theme.Light, f.app.Current())
	assert.False(t, f.app.FollowSystem())
	require.Len(t, *got, 1)
	assert.Equal(t, event.SourceImport, (*got)[0].Source)

	f.app.Import(Settings{Theme: "purple", UseSystemPreference: &follow})
	assert.True(t, f.app.FollowSystem())
	assert.Equal(t, theme.Dark, f.app.Current(), "follow-system applies the detected theme")
}

func TestSettings_MarshalRoundTrip(t *testing.T) {
	f := newFixture(t, map[string]string{prefs.KeyTheme: "light"}, nil)
	exported := f.app.Export()

	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := exported.Marshal(format)
			require.NoError(t, err)

			parsed, err := ParseSettings(data, format)
			require.NoError(t, err)
			assert.Equal(t, exported.Theme, parsed.Theme)
			require.NotNil(t, parsed.UseSystemPreference)
			assert.False(t, *parsed.UseSystemPreference)
			assert.True(t, exported.Timestamp.Equal(parsed.Timestamp))
		})
	}
}

func TestSettings_JSONShape(t *testing.T) {
	follow := false
	data, err := Settings{Theme: theme.Dark, UseSystemPreference: &follow}.Marshal(FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"theme": "dark"`)
	assert.Contains(t, string(data), `"useSystemPreference": false`)
}

func TestParseSettings_Errors(t *testing.T) {
	_, err := ParseSettings([]byte("{"), FormatJSON)
	assert.Error(t, err)

	_, err = ParseSettings([]byte("theme: light"), "toml")
	assert.Error(t, err)

	_, err = Settings{}.Marshal("toml")
	assert.Error(t, err)
}
