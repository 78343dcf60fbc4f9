package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharsanguruparan/PaperProbe/internal/state"
)

const ttl = 40 * time.Millisecond

type removals struct {
	mu  sync.Mutex
	ids []int64
}

func (r *removals) watch(store *state.Store) func() {
	return store.Subscribe(func(prev, next state.Snapshot) {
		if len(next.Notifications) >= len(prev.Notifications) {
			return
		}
		live := make(map[int64]bool)
		for _, n := range next.Notifications {
			live[n.ID] = true
		}
		r.mu.Lock()
		defer r.mu.Unlock()
		for _, n := range prev.Notifications {
			if !live[n.ID] {
				r.ids = append(r.ids, n.ID)
			}
		}
	})
}

func (r *removals) get() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.ids...)
}

func add(store *state.Store, title string) int64 {
	store.Dispatch(state.AddNotification{Title: title})
	notes := store.Snapshot().Notifications
	return notes[len(notes)-1].ID
}

func TestNewestOnlyExpiresNewestFirst(t *testing.T) {
	store := state.New(state.Initial())
	var r removals
	defer r.watch(store)()

	e := New(store, WithTTL(ttl))
	defer e.Close()

	a := add(store, "first")
	time.Sleep(ttl / 2)
	b := add(store, "second")

	assert.Eventually(t, func() bool { return len(store.Snapshot().Notifications) == 0 },
		time.Second, 5*time.Millisecond)
	assert.Equal(t, []int64{b, a}, r.get())
}

func TestPerNotificationExpiresInArrivalOrder(t *testing.T) {
	store := state.New(state.Initial())
	var r removals
	defer r.watch(store)()

	e := New(store, WithTTL(ttl), WithMode(PerNotification))
	defer e.Close()

	a := add(store, "first")
	time.Sleep(ttl / 2)
	b := add(store, "second")

	assert.Eventually(t, func() bool { return len(store.Snapshot().Notifications) == 0 },
		time.Second, 5*time.Millisecond)
	assert.Equal(t, []int64{a, b}, r.get())
}

func TestExpirerPicksUpExistingNotifications(t *testing.T) {
	store := state.New(state.Initial())
	add(store, "before start")

	e := New(store, WithTTL(ttl))
	defer e.Close()

	assert.Eventually(t, func() bool { return len(store.Snapshot().Notifications) == 0 },
		time.Second, 5*time.Millisecond)
}

func TestCloseStopsExpiry(t *testing.T) {
	store := state.New(state.Initial())
	e := New(store, WithTTL(ttl))
	add(store, "kept")
	e.Close()
	add(store, "also kept")

	time.Sleep(3 * ttl)
	assert.Len(t, store.Snapshot().Notifications, 2)
}

func TestDismissAll(t *testing.T) {
	store := state.New(state.Initial())
	add(store, "a")
	add(store, "b")
	DismissAll(store)
	require.Empty(t, store.Snapshot().Notifications)
}
