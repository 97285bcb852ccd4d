// Command migrate applies the embedded schema migrations to the Supabase
// Postgres database. It needs SUPABASE_DB_URL, a direct connection string;
// the bot processes themselves only use the REST API.
package main

import (
	"log/slog"
	"os"

	"github.com/ivanoskov/expenselog_bot/internal/config"
	"github.com/ivanoskov/expenselog_bot/internal/repository"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg := config.Load()
	if cfg.SupabaseDBURL == "" {
		logger.Error("SUPABASE_DB_URL is required")
		os.Exit(1)
	}

	if err := repository.RunMigrations(cfg.SupabaseDBURL); err != nil {
		logger.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	logger.Info("migrations applied")
}
