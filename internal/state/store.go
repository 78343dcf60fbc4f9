package state

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/dharsanguruparan/PaperProbe/internal/logger"
)

// Listener observes every committed transition. Listeners run while the
// store still serializes dispatches, so they see transitions in commit order;
// they must not call Dispatch synchronously (hand work to a goroutine or a
// timer instead).
type Listener func(prev, next Snapshot)

// Store is the single writer of application state. Dispatch applies one
// command at a time; Snapshot reads never block because the latest snapshot
// is published through an atomic pointer and replaced wholesale.
type Store struct {
	mu        sync.Mutex
	current   atomic.Pointer[Snapshot]
	listeners []subscription
	nextSub   int
	now       func() time.Time
	log       *logger.Logger
}

type subscription struct {
	id int
	fn Listener
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the commit clock.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used for dispatch tracing.
func WithLogger(l *logger.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New creates a Store seeded with initial.
func New(initial Snapshot, opts ...Option) *Store {
	s := &Store{
		now: func() time.Time { return time.Now().UTC() },
		log: logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logger.OrNop(s.log)
	s.current.Store(&initial)
	return s
}

// Snapshot returns the latest committed snapshot.
func (s *Store) Snapshot() Snapshot {
	// atomic.Pointer swaps whole snapshots in one step, so a reader gets
	// either the old value or the new one and never needs the mutex.
	return *s.current.Load()
}

// Dispatch applies cmd. No-op transitions are not published.
func (s *Store) Dispatch(cmd Command) {
	s.mu.Lock()
	// defer schedules the unlock for every return path below, including the
	// early return for ignored commands.
	defer s.mu.Unlock()
	prev := *s.current.Load()
	next, changed := reduce(prev, cmd, s.now())
	if !changed {
		if cmd != nil {
			s.log.Debug("command ignored", "command", cmd.CommandName())
		}
		return
	}
	s.current.Store(&next)
	s.log.Debug("command applied", "command", cmd.CommandName())
	for _, sub := range s.listeners {
		sub.fn(prev, next)
	}
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSub++
	id := s.nextSub
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	// sync.Once makes the returned cancel safe to call more than once.
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			kept := make([]subscription, 0, len(s.listeners))
			for _, sub := range s.listeners {
				if sub.id != id {
					kept = append(kept, sub)
				}
			}
			s.listeners = kept
		})
	}
}
