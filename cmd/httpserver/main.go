package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"moviecatalog/httpserver"
	"moviecatalog/movie"
	"moviecatalog/pkg/config"
	"moviecatalog/pkg/logger"
	"moviecatalog/pkg/sentry"
	"moviecatalog/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		log.Fatalw("cannot init sentry", zap.Error(err))
	}
	defer sentrygo.Flush(sentry.FlushTime)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalw("cannot open movie store", zap.String("driver", cfg.DB.Driver), zap.Error(err))
	}
	defer func() {
		if err := closeStore(context.Background()); err != nil {
			log.Errorw("cannot close movie store", zap.Error(err))
		}
	}()

	server, err := httpserver.New(cfg,
		httpserver.WithLogger(log),
		httpserver.WithMovieService(movie.NewUsecase(repo)),
	)
	if err != nil {
		log.Fatalw("cannot build http server", zap.Error(err))
	}

	errChan := make(chan error, 1)
	go func() {
		log.Infow("server started", zap.String("addr", server.Addr), zap.String("driver", cfg.DB.Driver))
		errChan <- server.Start()
	}()

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("server stopped with error", zap.Error(err))
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorw("graceful shutdown failed", zap.Error(err))
		}
		log.Info("server stopped")
	}
}
