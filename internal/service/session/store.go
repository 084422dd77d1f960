package session

import (
	"errors"
	"sync"
	"time"

	"github.com/aokiyuki/cocoro/backend/internal/model/dialogue"
	"github.com/aokiyuki/cocoro/backend/pkg/logx"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionClosed   = errors.New("session closed")
)

// entry is one independently lockable session. Appends to different
// sessions never contend; appends to the same session serialize on this
// mutex in lock-acquisition order.
type entry struct {
	mu      sync.Mutex
	session dialogue.Session
}

// Store keeps per-session ordered turn history in memory with bounded
// retention. Sessions are created lazily on first contact and reaped by a
// background janitor once idle past the TTL.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry

	retention int
	ttl       time.Duration

	stop chan struct{}
	once sync.Once
}

// NewStore builds a store enforcing the given retention cap per session.
// ttl > 0 starts the idle-session janitor.
func NewStore(retention int, ttl time.Duration) *Store {
	s := &Store{
		sessions:  make(map[string]*entry),
		retention: retention,
		ttl:       ttl,
		stop:      make(chan struct{}),
	}
	if ttl > 0 {
		go s.reapLoop()
	}
	return s
}

// Close stops the janitor. Safe to call more than once.
func (s *Store) Close() {
	s.once.Do(func() { close(s.stop) })
}

// GetOrCreate returns a copy of the session, creating an empty one when
// the identifier has not been seen. First-contact sessions are always
// valid.
func (s *Store) GetOrCreate(sessionID, userID string) dialogue.Session {
	e := s.entryFor(sessionID, userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Clone()
}

// Update runs fn on the session under its entry lock, creating the
// session when missing. fn sees the live session value; mutations it
// makes are retained when it returns nil.
func (s *Store) Update(sessionID, userID string, fn func(*dialogue.Session) error) error {
	e := s.entryFor(sessionID, userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.LastActive = time.Now().UTC()
	return fn(&e.session)
}

// Append adds turns to the session history, enforcing the retention cap
// on every append.
func (s *Store) Append(sessionID string, turns ...dialogue.Turn) error {
	return s.Update(sessionID, "", func(sess *dialogue.Session) error {
		if sess.Completed() {
			return ErrSessionClosed
		}
		for _, t := range turns {
			sess.Append(t, s.retention)
		}
		return nil
	})
}

// History returns the visible ordered turn history. Unknown identifiers
// yield a fresh empty session rather than an error.
func (s *Store) History(sessionID string) []dialogue.Turn {
	e := s.entryFor(sessionID, "")
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]dialogue.Turn(nil), e.session.Turns...)
}

// Complete transitions the session to its terminal state and returns a
// snapshot. A second call reports the session as already closed, which
// keeps end-of-session side effects single-shot.
func (s *Store) Complete(sessionID string) (dialogue.Session, error) {
	s.mu.RLock()
	e, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return dialogue.Session{}, ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session.Completed() {
		return dialogue.Session{}, ErrSessionClosed
	}
	e.session.State = dialogue.StateCompleted
	e.session.LastActive = time.Now().UTC()
	return e.session.Clone(), nil
}

// Retention returns the per-session history cap.
func (s *Store) Retention() int {
	return s.retention
}

// Len reports how many sessions are currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) entryFor(sessionID, userID string) *entry {
	s.mu.RLock()
	e, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.sessions[sessionID]; ok {
		return e
	}
	now := time.Now().UTC()
	e = &entry{session: dialogue.Session{
		ID:         sessionID,
		UserID:     userID,
		State:      dialogue.StateInProgress,
		CreatedAt:  now,
		LastActive: now,
	}}
	s.sessions[sessionID] = e
	return e
}

func (s *Store) reapLoop() {
	interval := s.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.reap(time.Now().UTC())
		}
	}
}

// reap evicts sessions idle past the TTL so abandoned conversations do
// not leak memory.
func (s *Store) reap(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.sessions {
		e.mu.Lock()
		idle := now.Sub(e.session.LastActive)
		e.mu.Unlock()
		if idle > s.ttl {
			delete(s.sessions, id)
			logx.Debug().Str("sessionID", id).Dur("idle", idle).Msg("reaped idle session")
		}
	}
}
