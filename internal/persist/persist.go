// Package persist seeds the initial snapshot from key-value storage and writes
// theme and preference changes back as they are committed.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"time"

	"github.com/dharsanguruparan/PaperProbe/internal/logger"
	"github.com/dharsanguruparan/PaperProbe/internal/model"
	"github.com/dharsanguruparan/PaperProbe/internal/state"
	"github.com/dharsanguruparan/PaperProbe/internal/storage"
)

// Storage keys.
const (
	ThemeKey       = "theme"
	PreferencesKey = "app-preferences"
)

// Theme values stored under ThemeKey.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

const writeTimeout = 5 * time.Second

// Seed is what startup needs from storage.
type Seed struct {
	DarkMode    bool
	Preferences model.Preferences
}

// ThemeName converts the dark-mode flag into its stored form.
func ThemeName(dark bool) string {
	if dark {
		return ThemeDark
	}
	return ThemeLight
}

// Load reads the persisted theme and preferences. A missing theme falls back
// to systemPrefersDark; stored preferences are merged over the defaults, so
// keys added in newer versions keep their default values. Unreadable entries
// are logged and ignored.
func Load(ctx context.Context, kv storage.KV, systemPrefersDark bool, log *logger.Logger) Seed {
	log = logger.OrNop(log)
	seed := Seed{
		DarkMode:    systemPrefersDark,
		Preferences: model.DefaultPreferences(),
	}

	theme, err := kv.Get(ctx, ThemeKey)
	switch {
	case err == nil:
		seed.DarkMode = theme == ThemeDark
	case !errors.Is(err, storage.ErrNotFound):
		log.Warn("failed to load theme", "error", err)
	}

	raw, err := kv.Get(ctx, PreferencesKey)
	switch {
	case err == nil:
		var patch model.PreferencesPatch
		if err := json.Unmarshal([]byte(raw), &patch); err != nil {
			log.Warn("failed to decode preferences", "error", err)
			break
		}
		seed.Preferences = seed.Preferences.Merge(patch)
	case !errors.Is(err, storage.ErrNotFound):
		log.Warn("failed to load preferences", "error", err)
	}
	return seed
}

// Initial returns the default snapshot with the seed applied.
func Initial(seed Seed) state.Snapshot {
	s := state.Initial()
	s.DarkMode = seed.DarkMode
	s.Preferences = seed.Preferences
	return s
}

// ThemeApplier receives the active theme name whenever it changes.
type ThemeApplier func(theme string)

// Syncer writes theme and preference changes to storage.
type Syncer struct {
	kv    storage.KV
	log   *logger.Logger
	apply ThemeApplier
}

// NewSyncer builds a Syncer. apply may be nil.
func NewSyncer(kv storage.KV, log *logger.Logger, apply ThemeApplier) *Syncer {
	return &Syncer{kv: kv, log: logger.OrNop(log).Named("persist"), apply: apply}
}

// Attach writes the store's current theme and preferences, then keeps
// storage in step with every later change until the returned cancel is
// called.
func (s *Syncer) Attach(store *state.Store) (cancel func()) {
	snap := store.Snapshot()
	s.writeTheme(snap.DarkMode)
	s.writePreferences(snap.Preferences)
	return store.Subscribe(s.OnChange)
}

// OnChange is a state.Listener.
func (s *Syncer) OnChange(prev, next state.Snapshot) {
	if prev.DarkMode != next.DarkMode {
		s.writeTheme(next.DarkMode)
	}
	if !reflect.DeepEqual(prev.Preferences, next.Preferences) {
		s.writePreferences(next.Preferences)
	}
}

func (s *Syncer) writeTheme(dark bool) {
	theme := ThemeName(dark)
	if s.apply != nil {
		s.apply(theme)
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := s.kv.Set(ctx, ThemeKey, theme); err != nil {
		s.log.Warn("failed to save theme", "error", err)
	}
}

func (s *Syncer) writePreferences(p model.Preferences) {
	data, err := json.Marshal(p)
	if err != nil {
		s.log.Warn("failed to encode preferences", "error", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := s.kv.Set(ctx, PreferencesKey, string(data)); err != nil {
		s.log.Warn("failed to save preferences", "error", err)
	}
}
