package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ivanoskov/expenselog_bot/internal/parser"
	"github.com/ivanoskov/expenselog_bot/internal/service"
)

const (
	usageHint = "Send an expense as \"<amount> <description>\", for example:\n50 lunch"

	welcomeText = "Hi! I log your expenses. 💰\n\n" +
		"Send me an amount and a description, like \"50 lunch\", then pick a " +
		"category.\n\n" +
		"Commands:\n" +
		"/expenses – recent expenses\n" +
		"/day – today's total\n" +
		"/month – this month's report\n" +
		"/categories – your category list\n" +
		"/add <emoji> <name> – add a category\n" +
		"/remove – remove one of your categories"

	genericErrorText = "Something went wrong, please try again."
	sessionExpired   = "⏳ That expense is gone (confirmed elsewhere or expired). Send it again."
)

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	userID := message.From.ID

	// Commands never touch a pending expense: a /day in the middle of a
	// category pick leaves the picker usable.
	switch message.Command() {
	case "start":
		if _, err := b.service.Categories(ctx, userID); err != nil {
			b.sendErrorMessage(chatID, genericErrorText)
			return err
		}
		return b.reply(chatID, welcomeText)
	case "expenses":
		return b.handleExpenses(ctx, chatID, userID)
	case "day":
		return b.handleDay(ctx, chatID, userID)
	case "month":
		return b.handleMonth(ctx, chatID, userID)
	case "categories":
		return b.handleCategories(ctx, chatID, userID)
	case "add":
		return b.handleAddCategory(ctx, chatID, userID, message.CommandArguments())
	case "remove":
		return b.handleRemove(ctx, chatID, userID)
	default:
		return b.reply(chatID, "Unknown command. See /start for what I can do.")
	}
}

// handleText treats any non-command text as a candidate expense.
func (b *Bot) handleText(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID

	pending, categories, err := b.service.StartExpense(ctx, message.From.ID, message.Text)
	if errors.Is(err, parser.ErrInvalidExpense) {
		return b.reply(chatID, usageHint)
	}
	if err != nil {
		b.sendErrorMessage(chatID, genericErrorText)
		return err
	}

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"💾 %.2f %s\nPick a category:", pending.Amount, pending.Description))
	msg.ReplyMarkup = categoryKeyboard(categories)
	return b.send(msg)
}

func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) error {
	// Always answer, otherwise the client keeps its loading spinner.
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.log.Warn("failed to answer callback", "error", err)
	}

	if callback.Message == nil {
		return nil
	}
	chatID := callback.Message.Chat.ID
	messageID := callback.Message.MessageID
	userID := callback.From.ID

	action, index, err := parseCallbackData(callback.Data)
	if err != nil {
		b.log.Warn("unrecognized callback payload", "data", callback.Data)
		return nil
	}

	switch action {
	case actionPickCategory:
		return b.commitExpense(ctx, chatID, messageID, userID, index)
	case actionRemoveCategory:
		return b.removeCategory(ctx, chatID, messageID, userID, index)
	case actionCancelRemove:
		return b.edit(chatID, messageID, "Okay, nothing removed.")
	}
	return nil
}

func (b *Bot) commitExpense(ctx context.Context, chatID int64, messageID int, userID int64, index int) error {
	expense, err := b.service.CommitExpense(ctx, userID, index)
	switch {
	case errors.Is(err, service.ErrNoPending):
		return b.edit(chatID, messageID, sessionExpired)
	case errors.Is(err, service.ErrIndexOutOfRange):
		// The category list changed between render and tap.
		return b.edit(chatID, messageID,
			"That category is no longer there. Send the expense again.")
	case err != nil:
		if editErr := b.edit(chatID, messageID, "❌ "+genericErrorText); editErr != nil {
			b.log.Error("failed to edit message", "chat_id", chatID, "error", editErr)
		}
		return err
	}

	return b.edit(chatID, messageID, fmt.Sprintf(
		"✅ %.2f %s · %s", expense.Amount, expense.Description, expense.Category))
}

func (b *Bot) removeCategory(ctx context.Context, chatID int64, messageID int, userID int64, index int) error {
	removed, err := b.service.RemoveCategory(ctx, userID, index)
	switch {
	case errors.Is(err, service.ErrIndexOutOfRange):
		return b.edit(chatID, messageID, "That category was already removed.")
	case err != nil:
		if editErr := b.edit(chatID, messageID, "❌ "+genericErrorText); editErr != nil {
			b.log.Error("failed to edit message", "chat_id", chatID, "error", editErr)
		}
		return err
	}

	return b.edit(chatID, messageID, fmt.Sprintf("🗑 Removed %s", removed))
}

func (b *Bot) handleExpenses(ctx context.Context, chatID, userID int64) error {
	expenses, err := b.service.RecentExpenses(ctx, userID, 10)
	if err != nil {
		b.sendErrorMessage(chatID, genericErrorText)
		return err
	}
	if len(expenses) == 0 {
		return b.reply(chatID, "No expenses yet. Send one like \"50 lunch\".")
	}

	var sb strings.Builder
	sb.WriteString("🧾 Recent expenses:\n")
	for _, e := range expenses {
		fmt.Fprintf(&sb, "%s  %.2f %s · %s\n",
			e.CreatedAt.Format("02.01"), e.Amount, e.Description, e.Category)
	}
	return b.reply(chatID, sb.String())
}

func (b *Bot) handleDay(ctx context.Context, chatID, userID int64) error {
	report, err := b.service.DayReport(ctx, userID)
	if err != nil {
		b.sendErrorMessage(chatID, genericErrorText)
		return err
	}
	return b.reply(chatID, formatReport("📅 Today", report))
}

func (b *Bot) handleMonth(ctx context.Context, chatID, userID int64) error {
	report, err := b.service.MonthReport(ctx, userID)
	if err != nil {
		b.sendErrorMessage(chatID, genericErrorText)
		return err
	}

	if err := b.reply(chatID, formatReport("🗓 "+report.Period, report)); err != nil {
		return err
	}

	png, err := b.charts.MonthBreakdown(report)
	if err != nil {
		b.log.Warn("failed to render month chart", "user_id", userID, "error", err)
		return nil
	}
	if png == nil {
		return nil
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{
		Name:  "month.png",
		Bytes: png,
	})
	return b.send(photo)
}

func formatReport(header string, report *service.Report) string {
	if report.Count == 0 {
		return header + "\nNo expenses in this period."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\nTotal: %.2f over %d expense(s)\n", header, report.Total, report.Count)
	for _, row := range report.SortedBreakdown() {
		fmt.Fprintf(&sb, "• %s: %.2f\n", row.Label, row.Amount)
	}
	return sb.String()
}

func (b *Bot) handleCategories(ctx context.Context, chatID, userID int64) error {
	categories, err := b.service.Categories(ctx, userID)
	if err != nil {
		b.sendErrorMessage(chatID, genericErrorText)
		return err
	}

	var sb strings.Builder
	sb.WriteString("📋 Your categories:\n")
	for _, c := range categories {
		fmt.Fprintf(&sb, "• %s\n", c)
	}
	sb.WriteString("\n/add <emoji> <name> adds one, /remove deletes one of yours.")
	return b.reply(chatID, sb.String())
}

func (b *Bot) handleAddCategory(ctx context.Context, chatID, userID int64, label string) error {
	err := b.service.AddCategory(ctx, userID, label)
	switch {
	case errors.Is(err, service.ErrEmptyCategory):
		return b.reply(chatID, "Usage: /add <emoji> <name>, for example:\n/add 🎮 Gaming")
	case errors.Is(err, service.ErrDuplicateCategory):
		return b.reply(chatID, "You already have that category.")
	case err != nil:
		b.sendErrorMessage(chatID, genericErrorText)
		return err
	}
	return b.reply(chatID, fmt.Sprintf("✅ Added %s", strings.TrimSpace(label)))
}

func (b *Bot) handleRemove(ctx context.Context, chatID, userID int64) error {
	customs, err := b.service.CustomCategories(ctx, userID)
	if err != nil {
		b.sendErrorMessage(chatID, genericErrorText)
		return err
	}
	if len(customs) == 0 {
		return b.reply(chatID, "You have no custom categories. Defaults cannot be removed.")
	}

	msg := tgbotapi.NewMessage(chatID, "Which category should go?")
	msg.ReplyMarkup = removeKeyboard(customs)
	return b.send(msg)
}

func (b *Bot) edit(chatID int64, messageID int, text string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if _, err := b.api.Send(edit); err != nil {
		return fmt.Errorf("failed to edit message: %w", err)
	}
	return nil
}

const (
	actionPickCategory   = "cat"
	actionRemoveCategory = "remove"
	actionCancelRemove   = "cancel_remove"
)

// parseCallbackData splits a button payload into an action and, where the
// shape carries one, an index. Payload shapes: cat_<i>, remove_<i>,
// cancel_remove.
func parseCallbackData(data string) (string, int, error) {
	if data == actionCancelRemove {
		return actionCancelRemove, 0, nil
	}

	for _, action := range []string{actionPickCategory, actionRemoveCategory} {
		prefix := action + "_"
		if !strings.HasPrefix(data, prefix) {
			continue
		}
		index, err := strconv.Atoi(strings.TrimPrefix(data, prefix))
		if err != nil {
			return "", 0, fmt.Errorf("bad callback index in %q: %w", data, err)
		}
		return action, index, nil
	}

	return "", 0, fmt.Errorf("unknown callback payload %q", data)
}
