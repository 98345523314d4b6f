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
	"github.com/shinyyama/skillswap-backend/internal/auth"
	"github.com/shinyyama/skillswap-backend/internal/config"
	"github.com/shinyyama/skillswap-backend/internal/db"
	"github.com/shinyyama/skillswap-backend/internal/logging"
	"github.com/shinyyama/skillswap-backend/internal/ratelimit"
	"github.com/shinyyama/skillswap-backend/internal/repository"
	"github.com/shinyyama/skillswap-backend/internal/server"
	log "github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	verifier, err := newVerifier(ctx, cfg)
	if err != nil {
		log.Fatalf("auth init error: %v", err)
	}

	srv := server.New(cfg, nil, verifier, newLimiter(ctx, cfg))
	addr := ":" + cfg.Port

	errCh := make(chan error, 1)

	go func() {
		log.Infof("starting server on %s", addr)
		errCh <- srv.Start(addr)
	}()

	// The listener comes up first so the platform health check passes while the database warms up.
	go func() {
		conn, err := db.Connect(cfg)
		if err != nil {
			log.Errorf("db connect error: %v", err)
			return
		}
		if err := db.Migrate(conn); err != nil {
			log.Errorf("auto migrate error: %v", err)
			return
		}
		if cfg.SeedOnStart {
			n, err := repository.NewCategoryRepository(conn).SeedDefaults(ctx, false)
			if err != nil {
				log.Errorf("seed categories error: %v", err)
			} else if n > 0 {
				log.Infof("seeded %d skill categories", n)
			}
		}
		srv.SetDB(conn)
		log.Info("database ready")
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server stopped: %v", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("shutdown error: %v", err)
		}
	}
}

func newVerifier(ctx context.Context, cfg *config.Config) (auth.Verifier, error) {
	if cfg.AuthMode == config.AuthModeJWT {
		log.Warn("AUTH_MODE=jwt: accepting locally signed tokens")
		return auth.NewJWTVerifier(cfg.JWTSecret, cfg.JWTIssuer)
	}
	return auth.NewFirebaseVerifier(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsFile)
}

func newLimiter(ctx context.Context, cfg *config.Config) ratelimit.Limiter {
	if cfg.RedisURL != "" {
		rdb, err := ratelimit.NewRedisClient(ctx, cfg.RedisURL)
		if err == nil {
			return ratelimit.NewRedisLimiter(rdb, cfg.RateLimitPerMinute, time.Minute)
		}
		log.Warnf("redis unavailable, using in-process rate limiter: %v", err)
	}
	return ratelimit.NewMemoryLimiter(cfg.RateLimitPerMinute, time.Minute)
}
