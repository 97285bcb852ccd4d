package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ivanoskov/expenselog_bot/internal/bot"
	"github.com/ivanoskov/expenselog_bot/internal/config"
	"github.com/ivanoskov/expenselog_bot/internal/repository"
	"github.com/ivanoskov/expenselog_bot/internal/service"
)

// Request is the API-gateway envelope around a Telegram webhook update.
type Request struct {
	Body string `json:"body"`
}

// Response is the API-gateway reply envelope.
type Response struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers,omitempty"`
}

// Handler processes one webhook update per invocation. Everything is built
// fresh each call; the function runtime gives no lifetime guarantees.
func Handler(ctx context.Context, request Request) (*Response, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return errorResponse(err)
	}

	repo, err := repository.NewSupabaseRepository(cfg.SupabaseURL, cfg.SupabaseKey)
	if err != nil {
		return errorResponse(err)
	}

	tracker := service.NewExpenseTracker(repo, logger)

	b, err := bot.NewBot(cfg.TelegramToken, tracker, logger)
	if err != nil {
		return errorResponse(err)
	}

	if err := b.HandleWebhook([]byte(request.Body)); err != nil {
		logger.Error("failed to handle webhook update", "error", err)
		return errorResponse(err)
	}

	return &Response{
		StatusCode: 200,
		Body:       "",
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func errorResponse(err error) (*Response, error) {
	return &Response{
		StatusCode: 500,
		Body:       err.Error(),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func main() {
	// Entry point for local builds; the function platform calls Handler.
}
