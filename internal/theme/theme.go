package theme

import (
	"strings"

	"golang.org/x/text/language"
)

// ID identifies a theme.
type ID string

const (
	Dark  ID = "dark"
	Light ID = "light"
)

// Default is used whenever a stored or requested theme is missing or invalid.
const Default = Dark

// Valid reports whether id is one of the known themes.
func (id ID) Valid() bool {
	return id == Dark || id == Light
}

// Opposite returns the other theme. Invalid IDs flip from the default.
func (id ID) Opposite() ID {
	if Normalize(string(id)) == Dark {
		return Light
	}
	return Dark
}

func (id ID) String() string {
	return string(id)
}

// Parse parses a theme identifier. Surrounding whitespace and case are ignored.
func Parse(s string) (ID, bool) {
	id := ID(strings.ToLower(strings.TrimSpace(s)))
	if !id.Valid() {
		return Default, false
	}
	return id, true
}

// Normalize parses s and falls back to Default when it is not a known theme.
func Normalize(s string) ID {
	id, _ := Parse(s)
	return id
}

// MarkerClass returns the class applied to the root element while id is active.
func MarkerClass(id ID) string {
	return string(Normalize(string(id))) + "-theme"
}

// MarkerClasses returns every marker class, so callers can clear prior markers.
func MarkerClasses() []string {
	return []string{MarkerClass(Dark), MarkerClass(Light)}
}

// Palette holds the colors a theme contributes to stylesheets.
type Palette struct {
	Primary    string `json:"primary,omitempty" yaml:"primary,omitempty"`
	Secondary  string `json:"secondary,omitempty" yaml:"secondary,omitempty"`
	Tertiary   string `json:"tertiary,omitempty" yaml:"tertiary,omitempty"`
	Background string `json:"background,omitempty" yaml:"background,omitempty"`
}

// LocalizedName is a display name for one language.
type LocalizedName struct {
	Tag  language.Tag
	Name string
}

// Info is the extended record for a theme.
type Info struct {
	ID             ID
	Name           string
	LocalizedNames []LocalizedName
	Palette        Palette
}

// Class returns the marker class for the theme.
func (i Info) Class() string {
	return MarkerClass(i.ID)
}

// DisplayName returns the name best matching tag, falling back to Name.
func (i Info) DisplayName(tag language.Tag) string {
	if len(i.LocalizedNames) == 0 {
		return i.Name
	}

	tags := make([]language.Tag, 0, len(i.LocalizedNames))
	for _, ln := range i.LocalizedNames {
		tags = append(tags, ln.Tag)
	}

	_, idx, confidence := language.NewMatcher(tags).Match(tag)
	if confidence == language.No {
		return i.Name
	}
	return i.LocalizedNames[idx].Name
}

var catalog = []Info{
	{
		ID:   Dark,
		Name: "Dark",
		LocalizedNames: []LocalizedName{
			{Tag: language.English, Name: "Dark"},
			{Tag: language.Chinese, Name: "深色"},
		},
		Palette: Palette{
			Primary:    "#e0e0ff",
			Secondary:  "#ccc2db",
			Tertiary:   "#efb8c8",
			Background: "#1c1b1f",
		},
	},
	{
		ID:   Light,
		Name: "Light",
		LocalizedNames: []LocalizedName{
			{Tag: language.English, Name: "Light"},
			{Tag: language.Chinese, Name: "浅色"},
		},
		Palette: Palette{
			Primary:    "#6d0066",
			Secondary:  "#4a4458",
			Tertiary:   "#633b48",
			Background: "#fffbfe",
		},
	},
}

// All returns every known theme, dark first.
func All() []Info {
	out := make([]Info, len(catalog))
	copy(out, catalog)
	return out
}

// IDs returns every known theme identifier.
func IDs() []ID {
	ids := make([]ID, 0, len(catalog))
	for _, info := range catalog {
		ids = append(ids, info.ID)
	}
	return ids
}

// ByID returns the record for id, or the default theme's record.
func ByID(id ID) Info {
	for _, info := range catalog {
		if info.ID == id {
			return info
		}
	}
	return catalog[0]
}
