package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/simplepos/pos-api/internal/api"
	"github.com/simplepos/pos-api/internal/cache"
	"github.com/simplepos/pos-api/internal/config"
	"github.com/simplepos/pos-api/internal/db"
	"github.com/simplepos/pos-api/internal/logger"
	"github.com/simplepos/pos-api/internal/pkg/idgen"
)

const shutdownTimeout = 10 * time.Second

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	if err = logger.SetLevel(conf.API.LogLevel); err != nil {
		return fmt.Errorf("failed to set log level -> %w", err)
	}
	config.OnLogLevelChange(func(level string) {
		if err := logger.SetLevel(level); err != nil {
			zap.L().Warn("ignoring log level change", zap.Error(err))
		}
	})

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	sessions, err := openSessionStore(conf.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize session store -> %w", err)
	}

	s, err := api.NewServer(conf, postgresDB, sessions, idgen.LoadGenerator(conf.API.Timezone))
	if err != nil {
		return fmt.Errorf("failed to initialize server -> %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s.Run(ctx)

	srv := &http.Server{
		Addr:              ":" + s.Config.API.Port,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info(fmt.Sprintf("starting server at %v", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start the server -> %w", err)
		}
	case <-ctx.Done():
		zap.L().Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err = srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down the server -> %w", err)
		}
	}

	return nil
}

func openSessionStore(conf *config.RedisConfig) (api.SessionStore, error) {
	if conf == nil || !conf.Enabled {
		zap.L().Warn("redis disabled, revoked sessions are kept in memory")
		return cache.NewMemoryRevocationStore(), nil
	}

	rdb, err := cache.NewRedisClient(conf)
	if err != nil {
		return nil, err
	}

	return cache.NewRedisRevocationStore(rdb), nil
}
