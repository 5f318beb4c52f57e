// cmd/api/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/beauty-store/internal/config"
	"github.com/your-org/beauty-store/internal/infrastructure/database"
	"github.com/your-org/beauty-store/internal/infrastructure/database/redis"
	"github.com/your-org/beauty-store/internal/interfaces/http"
	"github.com/your-org/beauty-store/internal/interfaces/http/routes"
	"github.com/your-org/beauty-store/internal/pkg/email"
	"github.com/your-org/beauty-store/internal/pkg/logger"
	"github.com/your-org/beauty-store/internal/pkg/pdf"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.New(config.LoggingConfig{Level: "info", Format: "text"}, os.Stderr).
			WithError(err).Fatal("Failed to load configuration")
	}

	log := logger.New(cfg.Logging, os.Stdout)
	log.WithFields(logrus.Fields{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
		"db_driver":   cfg.Database.Driver,
	}).Infof("Starting %s", cfg.App.Name)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	store, err := database.Open(ctx, cfg, log)
	cancel()
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer store.Close()

	// Redis is optional; without it the API runs without rate limiting.
	var redisClient *goredis.Client
	if cfg.Redis.Enabled {
		conn, err := redis.NewConnection(cfg, log)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to Redis")
		}
		defer conn.Close()
		redisClient = conn.GetClient()
	}

	notifier := email.NewEmailService(cfg, log)
	deps := routes.NewDependencies(cfg, store, notifier, pdf.NewService(cfg), log)

	server, err := http.NewServer(cfg, deps, store, redisClient, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create HTTP server")
	}

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down gracefully")

	// Give server 30 seconds to shutdown gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	// Let queued order confirmations finish before the store closes.
	deps.Orders.Wait()

	log.Info("Server shutdown completed")
}
