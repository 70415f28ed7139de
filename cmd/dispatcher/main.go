package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"mealbridge/database"
	"mealbridge/internal/config"
	"mealbridge/internal/dispatch"
	"mealbridge/internal/httpapi/repository"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	repos := repository.NewRepos(db)

	pool := dispatch.NewWorkerPool(cfg.MailWorkerCount, logger)
	pool.Start()

	mailer := dispatch.NewMailClient(cfg.MailAPIURL, cfg.MailAPIKey)
	dispatcher := dispatch.NewDispatcher(repos, mailer, pool, cfg.MailBatchSize, cfg.SweepInterval, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		dispatcher.Run(ctx)
		close(done)
	}()

	logger.Info("dispatcher_started", "sweep_interval", cfg.SweepInterval.String(), "mail_workers", cfg.MailWorkerCount)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan

	logger.Info("shutting_down", "signal", sig.String())
	cancel()
	<-done
	pool.Shutdown()
}
