package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected ID
		ok       bool
	}{
		{"dark", Dark, true},
		{"light", Light, true},
		{"  Light ", Light, true},
		{"DARK", Dark, true},
		{"purple", Dark, false},
		{"", Dark, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			id, ok := Parse(tt.input)
			assert.Equal(t, tt.expected, id)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestNormalize_FallsBackToDark(t *testing.T) {
	assert.Equal(t, Dark, Normalize("purple"))
	assert.Equal(t, Light, Normalize("light"))
}

func TestOpposite(t *testing.T) {
	assert.Equal(t, Light, Dark.Opposite())
	assert.Equal(t, Dark, Light.Opposite())
	assert.Equal(t, Light, ID("purple").Opposite())
	assert.Equal(t, Dark, Dark.Opposite().Opposite())
}

func TestMarkerClass(t *testing.T) {
	assert.Equal(t, "dark-theme", MarkerClass(Dark))
	assert.Equal(t, "light-theme", MarkerClass(Light))
	assert.Equal(t, "dark-theme", MarkerClass("bogus"))
	assert.ElementsMatch(t, []string{"dark-theme", "light-theme"}, MarkerClasses())
}

func TestByID(t *testing.T) {
	light := ByID(Light)
	assert.Equal(t, Light, light.ID)
	assert.Equal(t, "#6d0066", light.Palette.Primary)
	assert.Equal(t, "#fffbfe", light.Palette.Background)

	dark := ByID(Dark)
	assert.Equal(t, "#e0e0ff", dark.Palette.Primary)
	assert.Equal(t, "#1c1b1f", dark.Palette.Background)

	assert.Equal(t, Dark, ByID("missing").ID, "unknown IDs resolve to the default")
}

func TestAll_ReturnsCopy(t *testing.T) {
	all := All()
	assert.Len(t, all, 2)
	all[0].Name = "mutated"
	assert.Equal(t, "Dark", ByID(Dark).Name)
	assert.Equal(t, []ID{Dark, Light}, IDs())
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		tag      language.Tag
		expected string
	}{
		{"english", language.English, "Light"},
		{"british english", language.BritishEnglish, "Light"},
		{"chinese", language.Chinese, "浅色"},
		{"simplified chinese", language.SimplifiedChinese, "浅色"},
		{"unmatched falls back", language.Japanese, "Light"},
	}

	info := ByID(Light)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, info.DisplayName(tt.tag))
		})
	}

	assert.Equal(t, "Plain", Info{Name: "Plain"}.DisplayName(language.Chinese))
}
