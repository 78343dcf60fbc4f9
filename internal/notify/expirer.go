// Package notify expires transient notifications from the store.
package notify

import (
	"sync"
	"time"

	"github.com/dharsanguruparan/PaperProbe/internal/logger"
	"github.com/dharsanguruparan/PaperProbe/internal/model"
	"github.com/dharsanguruparan/PaperProbe/internal/state"
)

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 5 * time.Second

// Mode selects which notifications carry a timer.
type Mode int

const (
	// NewestOnly keeps a single timer on the newest notification and re-arms
	// it whenever the list changes, so older entries leave one TTL apart.
	NewestOnly Mode = iota
	// PerNotification gives every notification its own timer from the moment
	// it is first seen.
	PerNotification
)

// Expirer watches the store and removes notifications once they time out.
type Expirer struct {
	store *state.Store
	ttl   time.Duration
	mode  Mode
	log   *logger.Logger

	mu          sync.Mutex
	closed      bool
	timers      map[int64]*time.Timer
	unsubscribe func()
}

// Option configures an Expirer.
type Option func(*Expirer)

// WithTTL overrides DefaultTTL.
func WithTTL(d time.Duration) Option {
	return func(e *Expirer) {
		if d > 0 {
			e.ttl = d
		}
	}
}

// WithMode selects the expiry mode.
func WithMode(m Mode) Option {
	return func(e *Expirer) { e.mode = m }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(e *Expirer) { e.log = l }
}

// New starts expiring notifications in store, including any already present.
func New(store *state.Store, opts ...Option) *Expirer {
	e := &Expirer{
		store:  store,
		ttl:    DefaultTTL,
		timers: make(map[int64]*time.Timer),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = logger.OrNop(e.log).Named("notify")

	e.unsubscribe = store.Subscribe(func(prev, next state.Snapshot) {
		if sameIDs(prev.Notifications, next.Notifications) {
			return
		}
		e.sync(next.Notifications)
	})
	e.sync(store.Snapshot().Notifications)
	return e
}

// Close stops watching the store and cancels pending timers.
func (e *Expirer) Close() {
	e.unsubscribe()
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	for id, t := range e.timers {
		t.Stop()
		delete(e.timers, id)
	}
}

// sync runs inside store listeners, so timers dispatch from their own
// goroutine and never while holding e.mu.
func (e *Expirer) sync(notes []model.Notification) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}

	switch e.mode {
	case PerNotification:
		live := make(map[int64]bool, len(notes))
		for _, n := range notes {
			live[n.ID] = true
			if _, ok := e.timers[n.ID]; !ok {
				e.arm(n.ID)
			}
		}
		for id, t := range e.timers {
			if !live[id] {
				t.Stop()
				delete(e.timers, id)
			}
		}
	default:
		for id, t := range e.timers {
			t.Stop()
			delete(e.timers, id)
		}
		if len(notes) > 0 {
			e.arm(notes[len(notes)-1].ID)
		}
	}
}

// arm must be called with e.mu held.
func (e *Expirer) arm(id int64) {
	// time.AfterFunc runs the callback on its own goroutine once the TTL
	// passes; Stop on the returned timer cancels it if it has not fired yet.
	e.timers[id] = time.AfterFunc(e.ttl, func() {
		e.mu.Lock()
		if e.closed {
			e.mu.Unlock()
			return
		}
		delete(e.timers, id)
		e.mu.Unlock()

		e.log.Debug("notification expired", "id", id)
		e.store.Dispatch(state.RemoveNotification{ID: id})
	})
}

func sameIDs(a, b []model.Notification) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}

// DismissAll removes every notification at once.
func DismissAll(store *state.Store) {
	store.Dispatch(state.ClearNotifications{})
}
