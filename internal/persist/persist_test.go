package persist

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharsanguruparan/PaperProbe/internal/model"
	"github.com/dharsanguruparan/PaperProbe/internal/state"
	"github.com/dharsanguruparan/PaperProbe/internal/storage"
)

type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, error) { return "", errors.New("disk on fire") }
func (failingKV) Set(context.Context, string, string) error   { return errors.New("disk on fire") }

func TestLoadFallsBackToSystemTheme(t *testing.T) {
	kv := storage.NewMemoryStore()
	seed := Load(context.Background(), kv, true, nil)
	assert.True(t, seed.DarkMode)
	assert.Equal(t, model.DefaultPreferences(), seed.Preferences)
}

func TestLoadPersistedValues(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, ThemeKey, ThemeLight))
	require.NoError(t, kv.Set(ctx, PreferencesKey, `{"saveHistory":false,"maxFileSize":2048}`))

	seed := Load(ctx, kv, true, nil)
	assert.False(t, seed.DarkMode, "persisted theme wins over the system signal")
	assert.False(t, seed.Preferences.SaveHistory)
	assert.Equal(t, int64(2048), seed.Preferences.MaxFileSize)
	assert.True(t, seed.Preferences.AutoAnalyze)
	assert.Equal(t, model.DefaultPreferences().AllowedFormats, seed.Preferences.AllowedFormats)
}

func TestLoadIgnoresBrokenEntries(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, PreferencesKey, "{oops"))
	seed := Load(ctx, kv, false, nil)
	assert.Equal(t, model.DefaultPreferences(), seed.Preferences)

	seed = Load(ctx, failingKV{}, true, nil)
	assert.True(t, seed.DarkMode)
	assert.Equal(t, model.DefaultPreferences(), seed.Preferences)
}

func TestInitial(t *testing.T) {
	prefs := model.DefaultPreferences()
	prefs.AutoAnalyze = false
	s := Initial(Seed{DarkMode: true, Preferences: prefs})
	assert.True(t, s.DarkMode)
	assert.False(t, s.Preferences.AutoAnalyze)
	assert.Equal(t, model.TabGenerator, s.ActiveTab)
}

func TestSyncerWritesChanges(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	store := state.New(state.Initial())

	var applied []string
	cancel := NewSyncer(kv, nil, func(theme string) { applied = append(applied, theme) }).Attach(store)
	defer cancel()

	theme, err := kv.Get(ctx, ThemeKey)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, theme)

	store.Dispatch(state.ToggleDarkMode{})
	theme, err = kv.Get(ctx, ThemeKey)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, theme)
	assert.Equal(t, []string{ThemeLight, ThemeDark}, applied)

	off := false
	store.Dispatch(state.UpdatePreferences{Patch: model.PreferencesPatch{AutoAnalyze: &off}})
	raw, err := kv.Get(ctx, PreferencesKey)
	require.NoError(t, err)
	var saved model.Preferences
	require.NoError(t, json.Unmarshal([]byte(raw), &saved))
	assert.False(t, saved.AutoAnalyze)

	// unrelated changes do not touch the theme applier
	store.Dispatch(state.AddNotification{Message: "hi"})
	assert.Len(t, applied, 2)
}

func TestSyncerSurvivesWriteFailures(t *testing.T) {
	store := state.New(state.Initial())
	cancel := NewSyncer(failingKV{}, nil, nil).Attach(store)
	defer cancel()
	store.Dispatch(state.ToggleDarkMode{})
	assert.True(t, store.Snapshot().DarkMode)
}
