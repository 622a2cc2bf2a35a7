package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"userd/internal/config"
	"userd/internal/logging"
	"userd/internal/server"
	"userd/internal/store"
)

func main() {
	// 1. Load configuration from environment variables.
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	log.Info("config loaded", "listen", cfg.ListenAddr, "data_file", cfg.DataFile)

	// 2. Open the flat-file user store.
	st := store.NewFileStore(cfg.DataFile)

	// 3. Set up the chi router with all handlers.
	handler := server.New(cfg, st, log)

	// 4. Start the HTTP server.
	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info("listening", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown", "error", err)
	}

	log.Info("stopped")
}
