package dialogue

import (
	"sync"
	"time"
)

// Store keeps conversation states in memory, keyed by user id. Access to a
// single user's state is serialized; different users never block each other
// beyond a map lookup.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*session
	ttl      time.Duration
	now      func() time.Time
}

type session struct {
	mu       sync.Mutex
	state    State
	lastSeen time.Time
	// dead is set under mu when Sweep evicts the session, so a caller that
	// fetched it just before eviction retries with a fresh one.
	dead bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty store. A positive ttl resets a conversation that
// has been idle for longer than ttl.
func NewStore(ttl time.Duration, opts ...StoreOption) *Store {
	s := &Store{
		sessions: make(map[int64]*session),
		ttl:      ttl,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// With runs fn with exclusive access to the state of userID, creating it if
// needed. fn must not call back into the Store for the same user.
func (s *Store) With(userID int64, fn func(*State)) {
	for {
		s.mu.Lock()
		sess, ok := s.sessions[userID]
		if !ok {
			sess = &session{}
			s.sessions[userID] = sess
		}
		s.mu.Unlock()

		sess.mu.Lock()
		if sess.dead {
			sess.mu.Unlock()
			continue
		}
		now := s.now()
		if s.expired(sess, now) {
			sess.state.Reset()
		}
		fn(&sess.state)
		sess.lastSeen = now
		sess.mu.Unlock()
		return
	}
}

// Get returns a copy of the current state of userID.
func (s *Store) Get(userID int64) State {
	var st State
	s.With(userID, func(cur *State) {
		st = *cur
	})
	return st
}

// Reset returns userID to the idle state.
func (s *Store) Reset(userID int64) {
	s.With(userID, func(cur *State) {
		cur.Reset()
	})
}

// Sweep evicts sessions idle for longer than the ttl and returns how many
// were removed. Sessions busy with a turn are skipped.
func (s *Store) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	evicted := 0
	for id, sess := range s.sessions {
		if !sess.mu.TryLock() {
			continue
		}
		if s.expired(sess, now) {
			sess.dead = true
			delete(s.sessions, id)
			evicted++
		}
		sess.mu.Unlock()
	}
	return evicted
}

// Len returns the number of tracked conversations.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) expired(sess *session, now time.Time) bool {
	return s.ttl > 0 && !sess.lastSeen.IsZero() && now.Sub(sess.lastSeen) > s.ttl
}
