// Command ecodeli-devserver runs the local development backend the client
// applications talk to.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecodeli/ecodeli-go/internal/devserver"
	"github.com/ecodeli/ecodeli-go/internal/infrastructure/config"
	"github.com/ecodeli/ecodeli-go/internal/storage"
	"github.com/ecodeli/ecodeli-go/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})

	mongoClient, db, err := devserver.ConnectMongo(ctx, devserver.MongoConfig{
		URI:      cfg.Devserver.MongoURI,
		Database: cfg.Devserver.MongoDB,
	})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(shutdownCtx)
	}()

	rdb, err := storage.Connect(ctx, storage.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	e := devserver.NewRouter(db, rdb, cfg.Devserver.JWTSecret, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Devserver.Port).Msg("devserver listening")
		errCh <- e.Start(":" + cfg.Devserver.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}
