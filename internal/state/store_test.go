package state

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharsanguruparan/PaperProbe/internal/model"
)

func TestStoreDispatchAndSubscribe(t *testing.T) {
	store := New(Initial(), WithClock(func() time.Time { return commitTime }))

	var seen []string
	cancel := store.Subscribe(func(prev, next Snapshot) {
		seen = append(seen, string(next.ActiveTab))
	})

	store.Dispatch(SetActiveTab{Tab: model.TabDetector})
	store.Dispatch(SetActiveTab{Tab: model.TabDetector}) // unchanged, not published
	store.Dispatch(bogusCommand{})
	store.Dispatch(SetActiveTab{Tab: model.TabGenerator})
	cancel()
	store.Dispatch(SetActiveTab{Tab: model.TabDetector})

	assert.Equal(t, []string{"detector", "generator"}, seen)
	assert.Equal(t, model.TabDetector, store.Snapshot().ActiveTab)
}

func TestStoreListenerSeesPrevAndNext(t *testing.T) {
	store := New(Initial())
	var prevDark, nextDark bool
	store.Subscribe(func(prev, next Snapshot) {
		prevDark, nextDark = prev.DarkMode, next.DarkMode
	})
	store.Dispatch(ToggleDarkMode{})
	assert.False(t, prevDark)
	assert.True(t, nextDark)
}

func TestStoreSnapshotIsStable(t *testing.T) {
	store := New(Initial())
	store.Dispatch(AddFiles{Files: []model.FileRecord{{ID: "a-1", Name: "a"}}})
	held := store.Snapshot()

	store.Dispatch(StartFileProcessing{ID: "a-1"})
	store.Dispatch(RemoveFile{ID: "a-1"})

	require.Len(t, held.Files, 1)
	assert.Equal(t, model.StatusUploaded, held.Files[0].Status)
	assert.Empty(t, store.Snapshot().Files)
}

func TestStoreConcurrentDispatch(t *testing.T) {
	store := New(Initial())
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Dispatch(AddNotification{Message: "hi"})
			_ = store.Snapshot()
		}()
	}
	wg.Wait()

	notes := store.Snapshot().Notifications
	require.Len(t, notes, 50)
	ids := make(map[int64]bool)
	for _, n := range notes {
		ids[n.ID] = true
	}
	assert.Len(t, ids, 50)
}
