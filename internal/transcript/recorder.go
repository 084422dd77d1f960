package transcript

import (
	"context"

	"github.com/aokiyuki/cocoro/backend/internal/model/dialogue"
)

// Recorder hands a finished (or in-progress) transcript to the
// persistence collaborator. Implementations may block on I/O; callers
// must invoke Save outside any session lock so a slow store never stalls
// conversation turns.
type Recorder interface {
	Save(ctx context.Context, session dialogue.Session) error
}

// Noop discards transcripts. Used when no persistence backend is
// configured.
type Noop struct{}

// Save implements Recorder.
func (Noop) Save(context.Context, dialogue.Session) error {
	return nil
}
