package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aliwaqas-commits/QuickScribe-AI/internal/config"
	"github.com/aliwaqas-commits/QuickScribe-AI/internal/ratelimit"
	"github.com/aliwaqas-commits/QuickScribe-AI/internal/server"
	"github.com/aliwaqas-commits/QuickScribe-AI/internal/storage"
	"github.com/aliwaqas-commits/QuickScribe-AI/internal/summarizer"
	"github.com/joho/godotenv"
)

func main() {
	// Load env if it exists
	godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	var postgres *storage.Postgres
	if cfg.DatabaseURL != "" {
		postgres, err = storage.NewPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Error("Failed to connect to Postgres", "error", err)
			os.Exit(1)
		}
		defer postgres.Close()

		if err := postgres.AutoMigrate(); err != nil {
			log.Error("Failed to migrate request log schema", "error", err)
			os.Exit(1)
		}
		log.Info("Request logging to Postgres is enabled")
	}

	store := ratelimit.NewStore(
		cfg.RateLimitMax,
		cfg.RateLimitWindow,
		cfg.RateLimitCapacity,
	)

	srv := server.New(cfg, store, summarizer.NewOpenAIClient(cfg.OpenAIAPIKey), postgres, log)

	go func() {
		addr := ":" + cfg.Port
		if err := srv.Run(addr); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
