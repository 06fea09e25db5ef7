package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/genetic-miniapp/backend/internal/app"
	"github.com/genetic-miniapp/backend/internal/catalog"
	"github.com/genetic-miniapp/backend/internal/config"
	"github.com/genetic-miniapp/backend/internal/controller/httpapi"
	"github.com/genetic-miniapp/backend/internal/notify"
	"github.com/genetic-miniapp/backend/internal/repository"
	"github.com/genetic-miniapp/backend/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting miniapp API",
		zap.String("environment", cfg.Environment),
		zap.String("addr", cfg.HTTPAddr),
		zap.Bool("dev_mode", cfg.DevMode()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsDir, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	if err := migrator.Close(); err != nil {
		logger.Warn("Failed to close migrator", zap.Error(err))
	}

	bookingRepo := repository.NewBookingRepository(pool)

	// Уведомления администратору работают только при заданном токене и чате
	var notifier service.Notifier
	if !cfg.DevMode() && cfg.AdminChatID != 0 {
		b, err := bot.New(cfg.TelegramToken)
		if err != nil {
			logger.Fatal("Failed to create telegram bot", zap.Error(err))
		}
		notifier = notify.NewTelegramNotifier(b, cfg.AdminChatID, logger)
	}

	availabilityService := service.NewAvailabilityService(bookingRepo, logger)
	bookingService := service.NewBookingService(bookingRepo, notifier, logger)

	handlers := httpapi.NewHandlers(
		catalog.New(),
		availabilityService,
		bookingService,
		cfg.TelegramToken,
		logger,
	)
	router := httpapi.NewRouter(handlers, cfg.CORSAllowedOrigins)

	server := app.NewServer(cfg.HTTPAddr, router, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		if err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		logger.Error("Failed to stop server gracefully", zap.Error(err))
	}

	logger.Info("Server stopped")
}
