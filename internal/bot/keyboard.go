package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// categoryKeyboard lays the effective category list out two buttons per
// row. Payloads carry the absolute index into the list the keyboard was
// rendered from; they are resolved against a fresh list on tap.
func categoryKeyboard(categories []string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(categories); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(categories[i], fmt.Sprintf("cat_%d", i)),
		}
		if i+1 < len(categories) {
			row = append(row,
				tgbotapi.NewInlineKeyboardButtonData(categories[i+1], fmt.Sprintf("cat_%d", i+1)))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// removeKeyboard offers the user's custom categories for removal, indexed
// within the custom list only, plus a cancel button.
func removeKeyboard(customs []string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(customs); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(customs[i], fmt.Sprintf("remove_%d", i)),
		}
		if i+1 < len(customs) {
			row = append(row,
				tgbotapi.NewInlineKeyboardButtonData(customs[i+1], fmt.Sprintf("remove_%d", i+1)))
		}
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✖️ Cancel", "cancel_remove"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
