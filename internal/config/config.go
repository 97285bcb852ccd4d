// Package config reads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	SupabaseURL   string
	SupabaseKey   string

	// SupabaseDBURL is a direct Postgres connection string, needed only by
	// cmd/migrate. The bot itself talks to Supabase over the REST API.
	SupabaseDBURL string
}

// Load reads configuration from the environment. A missing .env file is not
// an error: in production (the serverless entrypoint in particular) the
// variables come from the platform.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		SupabaseURL:   os.Getenv("SUPABASE_URL"),
		SupabaseKey:   os.Getenv("SUPABASE_KEY"),
		SupabaseDBURL: os.Getenv("SUPABASE_DB_URL"),
	}
}

// Validate checks that everything the bot needs is present and reports all
// problems at once.
func (c *Config) Validate() error {
	var problems []string

	if c.TelegramToken == "" {
		problems = append(problems, "TELEGRAM_TOKEN is required")
	}
	if c.SupabaseKey == "" {
		problems = append(problems, "SUPABASE_KEY is required")
	}
	if c.SupabaseURL == "" {
		problems = append(problems, "SUPABASE_URL is required")
	} else if u, err := url.Parse(c.SupabaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("SUPABASE_URL %q is not a valid URL", c.SupabaseURL))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
