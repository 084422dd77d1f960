package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/aokiyuki/cocoro/backend/internal/config"
	"github.com/aokiyuki/cocoro/backend/internal/handler"
	"github.com/aokiyuki/cocoro/backend/internal/lexicon"
	engineservice "github.com/aokiyuki/cocoro/backend/internal/service/engine"
	"github.com/aokiyuki/cocoro/backend/internal/service/session"
	"github.com/aokiyuki/cocoro/backend/internal/transcript"
	"github.com/aokiyuki/cocoro/backend/pkg/logx"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		logx.Warn().Err(err).Msg("failed to load .env file, continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to load configuration")
	}

	logx.Init(cfg.Env)

	// Load dialogue data: built-in seed unless an external file overrides it.
	// An invalid set (empty crisis lexicon, missing stage pool) is fatal.
	lex := lexicon.Seed()
	if cfg.Dialogue.DataPath != "" {
		lex, err = lexicon.Load(cfg.Dialogue.DataPath)
		if err != nil {
			logx.Fatal().Err(err).Msg("failed to load dialogue data")
		}
		logx.Info().Str("path", cfg.Dialogue.DataPath).Msg("dialogue data loaded from file")
	}
	if err := lex.Validate(); err != nil {
		logx.Fatal().Err(err).Msg("dialogue data rejected")
	}

	// Transcript persistence is optional: without Redis the engine runs
	// with a no-op recorder and conversations stay in memory only.
	var recorder transcript.Recorder = transcript.Noop{}
	if cfg.Redis.Enabled() {
		rdb, err := cfg.Redis.New()
		if err != nil {
			logx.Fatal().Err(err).Msg("failed to initialise Redis client")
		}
		defer rdb.Close()
		recorder = transcript.NewRedisRecorder(rdb, cfg.Engine.TranscriptTTL)
		logx.Info().Msg("transcript recorder connected to Redis")
	} else {
		logx.Info().Msg("REDIS_URL not set, transcript persistence disabled")
	}

	sessions := session.NewStore(cfg.Engine.RetentionCap, cfg.Engine.SessionTTL)
	defer sessions.Close()

	eng := engineservice.New(lex, sessions, recorder, nil)
	router := handler.NewRouter(eng)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logx.Info().Str("addr", addr).Msg("cocoro backend listening")
	if err := runServer(ctx, srv); err != nil {
		logx.Fatal().Err(err).Msg("server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
