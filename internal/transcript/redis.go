package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aokiyuki/cocoro/backend/internal/core/errx"
	"github.com/aokiyuki/cocoro/backend/internal/model/dialogue"
	"github.com/aokiyuki/cocoro/backend/pkg/logx"
)

// RedisRecorder persists transcripts as a Redis list of JSON-encoded
// turns, keyed by user and session, with a TTL refreshed on every save.
type RedisRecorder struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewRedisRecorder wraps an existing client. ttl <= 0 keeps transcripts
// indefinitely.
func NewRedisRecorder(rdb redis.Cmdable, ttl time.Duration) *RedisRecorder {
	return &RedisRecorder{rdb: rdb, ttl: ttl}
}

func (r *RedisRecorder) transcriptKey(session dialogue.Session) string {
	return fmt.Sprintf("transcript:%s:%s", session.UserID, session.ID)
}

// Save replaces the stored transcript with the session's visible history.
func (r *RedisRecorder) Save(ctx context.Context, session dialogue.Session) error {
	key := r.transcriptKey(session)

	encoded := make([]interface{}, 0, len(session.Turns))
	for i, turn := range session.Turns {
		b, err := json.Marshal(turn)
		if err != nil {
			logx.Error().Err(err).Str("sessionID", session.ID).Int("index", i).Msg("failed to marshal turn")
			return fmt.Errorf("marshal turn at index %d: %w", i, err)
		}
		encoded = append(encoded, b)
	}

	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, key)
	if len(encoded) > 0 {
		pipe.RPush(ctx, key, encoded...)
	}
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to persist transcript")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ Recorder = (*RedisRecorder)(nil)
var _ Recorder = Noop{}
