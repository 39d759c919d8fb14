package main

import (
	"context"
	"ebd_gestao/internal/config"
	"ebd_gestao/internal/infrastructure/bootstrap"
	"ebd_gestao/internal/infrastructure/logger"
	"ebd_gestao/internal/infrastructure/worker"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	if err := run(cfg, zl); err != nil {
		zl.Error("[worker] stopped", zap.Error(err))
		_ = zl.Sync()
		os.Exit(1)
	}
	_ = zl.Sync()
}

func run(cfg config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, zl)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	job, err := worker.NewExpiryJob(app.Proposals, cfg.Proposal.TTL, zl)
	if err != nil {
		return err
	}

	scheduler := worker.NewScheduler(cfg.Location(), zl)
	if _, err := scheduler.AddExpiry(ctx, cfg.Worker.ExpirySchedule, job); err != nil {
		return err
	}

	scheduler.Run(ctx)
	return nil
}
