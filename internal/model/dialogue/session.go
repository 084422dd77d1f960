package dialogue

import "time"

// State tracks the lifecycle of a support session.
type State string

const (
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
)

// Session captures one bounded conversation stream for a single user.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	State     State     `json:"state"`
	Turns     []Turn    `json:"turns"`
	CreatedAt time.Time `json:"createdAt"`

	// UserTurns counts every user turn ever appended. It is kept apart
	// from len(Turns) so retention eviction never rewinds stage
	// derivation.
	UserTurns int `json:"userTurns"`

	// LastActive drives idle-session reaping.
	LastActive time.Time `json:"lastActive"`
}

// Completed reports whether the session accepts no further turns.
func (s *Session) Completed() bool {
	return s.State == StateCompleted
}

// Append adds a turn to the history, evicting the oldest turns once the
// retention limit is exceeded. limit <= 0 means unbounded.
func (s *Session) Append(t Turn, limit int) {
	if t.Role == RoleUser {
		s.UserTurns++
	}
	s.Turns = append(s.Turns, t)
	if limit > 0 && len(s.Turns) > limit {
		evicted := len(s.Turns) - limit
		s.Turns = append(s.Turns[:0], s.Turns[evicted:]...)
	}
}

// Clone returns a deep copy safe to hand outside the store's locks.
func (s *Session) Clone() Session {
	copied := *s
	copied.Turns = append([]Turn(nil), s.Turns...)
	return copied
}
