// Package bot is the Telegram transport: it routes updates to the expense
// tracker and renders its results as messages, inline keyboards and
// in-place edits. Handlers keep no per-user state; the flow lives in the
// store as the presence of a pending expense row.
package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"

	"github.com/ivanoskov/expenselog_bot/internal/charts"
	"github.com/ivanoskov/expenselog_bot/internal/service"
)

// Cap on updates handled at once. Handlers only block on store and
// Telegram I/O, so a small pool is plenty.
const maxConcurrentUpdates = 16

type Bot struct {
	api     *tgbotapi.BotAPI
	service *service.ExpenseTracker
	charts  *charts.Renderer
	log     *slog.Logger
}

func NewBot(token string, service *service.ExpenseTracker, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram client: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}

	return &Bot{
		api:     api,
		service: service,
		charts:  charts.NewRenderer(),
		log:     log,
	}, nil
}

// Start runs the long-polling loop until ctx is cancelled. Each update is
// handled in its own goroutine; a failing or panicking handler is logged
// and never takes down the loop or other users' updates.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	g := new(errgroup.Group)
	g.SetLimit(maxConcurrentUpdates)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			_ = g.Wait()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return g.Wait()
			}
			g.Go(func() error {
				defer func() {
					if r := recover(); r != nil {
						b.log.Error("handler panicked", "panic", r)
					}
				}()
				if err := b.handleUpdate(ctx, update); err != nil {
					b.log.Error("failed to handle update",
						"update_id", update.UpdateID, "error", err)
				}
				return nil
			})
		}
	}
}

// HandleWebhook processes a single webhook-delivered update. This is the
// serverless entrypoint's path; errors bubble up to become a 500.
func (b *Bot) HandleWebhook(body []byte) error {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return fmt.Errorf("failed to decode update: %w", err)
	}

	return b.handleUpdate(context.Background(), update)
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	switch {
	case update.CallbackQuery != nil:
		return b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		return b.handleCommand(ctx, update.Message)
	case update.Message != nil && update.Message.Text != "":
		return b.handleText(ctx, update.Message)
	}
	return nil
}

func (b *Bot) send(c tgbotapi.Chattable) error {
	if _, err := b.api.Send(c); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

func (b *Bot) reply(chatID int64, text string) error {
	return b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) sendErrorMessage(chatID int64, text string) {
	if err := b.reply(chatID, "❌ "+text); err != nil {
		b.log.Error("failed to send error message", "chat_id", chatID, "error", err)
	}
}
