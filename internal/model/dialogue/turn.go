package dialogue

import "time"

// Role identifies the author of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single message within a session history. Immutable once
// appended. Emotion mirrors the classified user emotion on assistant
// turns so a transcript reads back the mood each reply answered.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Emotion   string    `json:"emotion,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
