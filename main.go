package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/stevemurr/biblioteca-api/config"
	"github.com/stevemurr/biblioteca-api/docs"
	"github.com/stevemurr/biblioteca-api/handler"
	"github.com/stevemurr/biblioteca-api/logging"
	"github.com/stevemurr/biblioteca-api/store"
)

// @title        API de Biblioteca Firebase
// @version      1.0.0
// @description  API para gestionar libros en una biblioteca
// @host         localhost:3000
// @BasePath     /
// @schemes      http
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "biblioteca-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := store.New(ctx, cfg.StoreOptions())
	if err != nil {
		return fmt.Errorf("failed to create store (backend=%s): %w", cfg.Store.Backend, err)
	}
	defer s.Close()

	docs.SwaggerInfo.Host = cfg.Server.DocsHost()
	h := handler.New(s, handler.Options{
		Collection:     cfg.Store.Collection,
		Logger:         logger,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RequireFields:  cfg.Validation.RequireFields,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("servidor corriendo",
			zap.String("addr", srv.Addr),
			zap.String("store", cfg.Store.Backend),
			zap.String("collection", cfg.Store.Collection),
			zap.String("docs", "http://"+cfg.Server.DocsHost()+"/api-docs"),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
