package applicator

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/themetoggle/internal/event"
	"github.com/jmylchreest/themetoggle/internal/theme"
)

// Settings is the portable form of the preference.
type Settings struct {
	Theme               theme.ID  `json:"theme" yaml:"theme"`
	UseSystemPreference *bool     `json:"useSystemPreference,omitempty" yaml:"use_system_preference,omitempty"`
	Timestamp           time.Time `json:"timestamp" yaml:"timestamp"`
}

// Format is a settings encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Export captures the current preference.
func (a *Applicator) Export() Settings {
	follow := a.store.FollowSystem()
	return Settings{
		Theme:               a.store.Theme(),
		UseSystemPreference: &follow,
		Timestamp:           time.Now().UTC(),
	}
}

// Import applies s. An unknown theme is ignored; the follow flag is only
// applied when present.
func (a *Applicator) Import(s Settings) {
	if id, ok := theme.Parse(string(s.Theme)); ok {
		a.apply(id, event.SourceImport)
	} else if s.Theme != "" {
		a.logger.Warn("ignoring unknown theme in imported settings", "theme", string(s.Theme))
	}

	if s.UseSystemPreference != nil {
		a.SetFollowSystem(*s.UseSystemPreference)
	}
}

// Marshal encodes s in format.
func (s Settings) Marshal(format Format) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return json.MarshalIndent(s, "", "  ")
	case FormatYAML:
		return yaml.Marshal(s)
	default:
		return nil, fmt.Errorf("unsupported settings format %q", format)
	}
}

// ParseSettings decodes settings in format.
func ParseSettings(data []byte, format Format) (Settings, error) {
	var s Settings
	var err error
	switch format {
	case FormatJSON, "":
		err = json.Unmarshal(data, &s)
	case FormatYAML:
		err = yaml.Unmarshal(data, &s)
	default:
		return s, fmt.Errorf("unsupported settings format %q", format)
	}
	if err != nil {
		return s, fmt.Errorf("failed to parse settings: %w", err)
	}
	return s, nil
}
