package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ivanoskov/expenselog_bot/internal/bot"
	"github.com/ivanoskov/expenselog_bot/internal/config"
	"github.com/ivanoskov/expenselog_bot/internal/repository"
	"github.com/ivanoskov/expenselog_bot/internal/service"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	repo, err := repository.NewSupabaseRepository(cfg.SupabaseURL, cfg.SupabaseKey)
	if err != nil {
		logger.Error("failed to create repository", "error", err)
		os.Exit(1)
	}

	tracker := service.NewExpenseTracker(repo, logger)

	b, err := bot.NewBot(cfg.TelegramToken, tracker, logger)
	if err != nil {
		logger.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting long polling")
	if err := b.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("bot stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}
