package redisx

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config carries the Redis connection settings, filled from the
// environment via envconfig (REDIS_URL, REDIS_READ_TIMEOUT, ...).
type Config struct {
	URL          string `split_words:"true"`
	ReadTimeout  int    `split_words:"true" default:"3"`
	WriteTimeout int    `split_words:"true" default:"3"`
	DialTimeout  int    `split_words:"true" default:"5"`
}

// Enabled reports whether a Redis endpoint was configured at all.
func (r *Config) Enabled() bool {
	return r.URL != ""
}

// New builds and pings a client from the configured URL.
func (r *Config) New() (*redis.Client, error) {
	opts, err := redis.ParseURL(r.URL)
	if err != nil {
		return nil, err
	}

	opts.ReadTimeout = time.Duration(r.ReadTimeout) * time.Second
	opts.WriteTimeout = time.Duration(r.WriteTimeout) * time.Second
	opts.DialTimeout = time.Duration(r.DialTimeout) * time.Second

	client := redis.NewClient(opts)

	if cmd := client.Ping(context.Background()); cmd.Err() != nil {
		return nil, cmd.Err()
	}

	return client, nil
}
