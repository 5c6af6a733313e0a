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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/memorypairs/apps/go-server/internal/config"
	"github.com/robalobadob/memorypairs/apps/go-server/internal/httpserver"
	"github.com/robalobadob/memorypairs/apps/go-server/internal/kv"
	"github.com/robalobadob/memorypairs/apps/go-server/internal/leaderboard"
	"github.com/robalobadob/memorypairs/apps/go-server/internal/store"
	"github.com/robalobadob/memorypairs/apps/go-server/internal/symbols"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	alphabet, err := symbols.Load(cfg.SymbolsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load card symbols")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kvs, err := openKV(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Backend).Msg("failed to open leaderboard store")
	}
	defer kvs.Close()

	board := leaderboard.New(kvs,
		leaderboard.WithKey(cfg.LeaderboardKey),
		leaderboard.WithLimit(cfg.LeaderboardLen),
		leaderboard.WithLogger(log.Logger),
	)
	srv := httpserver.New(store.NewMemoryStore(), board, httpserver.Options{
		Alphabet:      alphabet,
		JWTSecret:     cfg.JWTSecret,
		TokenTTL:      cfg.TokenTTL,
		ClientOrigin:  cfg.ClientOrigin,
		MismatchDelay: cfg.MismatchDelay,
		WinDelay:      cfg.WinDelay,
		Logger:        log.Logger,
	})
	go srv.RunJanitor(ctx, cfg.SessionTTL)

	hs := &http.Server{Addr: ":" + cfg.Port, Handler: srv.Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = hs.Shutdown(shutdownCtx)
	}()

	log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend).Int("symbols", len(alphabet)).Msg("starting go-server")
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

// openKV opens the key-value backend named by cfg.Backend.
func openKV(ctx context.Context, cfg config.Config) (kv.Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return kv.NewMemory(), nil
	case config.BackendRedis:
		return kv.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	default:
		return kv.OpenSQLite(cfg.DBPath)
	}
}
