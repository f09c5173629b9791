package prefs

import (
	"log/slog"
	"strconv"

	"github.com/jmylchreest/themetoggle/internal/theme"
)

// Storage keys.
const (
	KeyTheme        = "theme"
	KeyFollowSystem = "follow_system"
)

// Preference is the full set of theme-related settings.
type Preference struct {
	Theme        theme.ID
	FollowSystem bool
}

// Store reads and writes the theme preference. None of its methods fail:
// storage errors are logged and resolved to the default theme.
type Store struct {
	kv     KV
	logger *slog.Logger
}

// NewStore creates a Store on top of kv.
func NewStore(kv KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if kv == nil {
		kv = NewMemoryKV(nil)
	}
	return &Store{kv: kv, logger: logger}
}

// KV returns the underlying storage.
func (s *Store) KV() KV {
	return s.kv
}

// Theme returns the stored theme. Missing, unreadable or invalid values
// yield theme.Default, which is written back so the next read is clean.
func (s *Store) Theme() theme.ID {
	raw, ok, err := s.kv.Get(KeyTheme)
	switch {
	case err != nil:
		s.logger.Warn("failed to read theme preference, using default", "error", err)
	case !ok:
		s.logger.Debug("no theme preference stored, using default")
	default:
		if id, valid := theme.Parse(raw); valid {
			return id
		}
		s.logger.Warn("invalid theme preference, using default", "value", raw)
	}

	s.write(KeyTheme, string(theme.Default))
	return theme.Default
}

// SetTheme stores id, coercing invalid values to theme.Default.
// It returns the value actually stored.
func (s *Store) SetTheme(id theme.ID) theme.ID {
	normalized, ok := theme.Parse(string(id))
	if !ok {
		s.logger.Warn("invalid theme, using default", "theme", string(id), "default", string(theme.Default))
	}
	s.write(KeyTheme, string(normalized))
	return normalized
}

// FollowSystem reports whether the theme should track the OS color scheme.
func (s *Store) FollowSystem() bool {
	raw, ok, err := s.kv.Get(KeyFollowSystem)
	if err != nil {
		s.logger.Warn("failed to read follow-system preference", "error", err)
		return false
	}
	return ok && raw == "true"
}

// SetFollowSystem stores the follow-system flag.
func (s *Store) SetFollowSystem(follow bool) {
	s.write(KeyFollowSystem, strconv.FormatBool(follow))
}

// Preference returns the current theme and follow-system flag.
func (s *Store) Preference() Preference {
	return Preference{
		Theme:        s.Theme(),
		FollowSystem: s.FollowSystem(),
	}
}

// Reset removes both keys, returning the store to first-run state.
func (s *Store) Reset() {
	for _, key := range []string{KeyTheme, KeyFollowSystem} {
		if err := s.kv.Remove(key); err != nil {
			s.logger.Warn("failed to clear preference", "key", key, "error", err)
		}
	}
}

func (s *Store) write(key, value string) {
	if err := s.kv.Set(key, value); err != nil {
		s.logger.Warn("failed to save preference", "key", key, "error", err)
	}
}
