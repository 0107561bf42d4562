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

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/unisearch/internal/metrics"
	chiTransport "github.com/kailas-cloud/unisearch/internal/transport/chi"
	"github.com/kailas-cloud/unisearch/internal/version"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP search API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), flags, port)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Override http.port")
	return cmd
}

func runServe(ctx context.Context, flags *globalFlags, port int) error {
	cfg, logger, err := flags.load()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	if port > 0 {
		cfg.HTTP.Port = port
	}

	logger.Info("Starting unisearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", flags.env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Bool("classifier", cfg.Classifier.Enabled),
		zap.Bool("intent_cache", cfg.Cache.Enabled),
		zap.String("ranking_version", cfg.Ranking.Version),
	)

	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp(ctx, cfg, logger, appOptions{queryLog: true})
	if err != nil {
		return err
	}

	metrics.RegisterHTTPMetrics()

	// Assign through an interface-typed variable only when set, so a nil
	// emitter stays an untyped nil.
	var ql chiTransport.QueryLogger
	if a.queryLog != nil {
		ql = a.queryLog
	}
	server := chiTransport.NewServer(a.search, a.health, ql, logger)
	handler := chiTransport.NewRouter(server, cfg.Auth.AdminAPIKeys, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	var runErr error
	select {
	case <-quit:
		logger.Info("Received shutdown signal")
	case runErr = <-serveErr:
		logger.Error("HTTP server error", zap.Error(runErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}
	a.close(shutdownCtx)

	logger.Info("Server stopped gracefully")
	if runErr != nil {
		return fmt.Errorf("http server: %w", runErr)
	}
	return nil
}
