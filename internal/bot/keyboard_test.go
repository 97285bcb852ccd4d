package bot

import (
	"fmt"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"

	"github.com/ivanoskov/expenselog_bot/internal/category"
)

func TestCategoryKeyboardLayout(t *testing.T) {
	t.Parallel()
	categories := append(append([]string(nil), category.Defaults...), "🎮 Gaming")
	kb := categoryKeyboard(categories)

	// 13 labels, two per row.
	require.Len(t, kb.InlineKeyboard, 7)
	for i, row := range kb.InlineKeyboard {
		if i < 6 {
			require.Len(t, row, 2)
		} else {
			require.Len(t, row, 1)
		}
	}

	// Payloads are absolute indexes into the rendered list.
	flat := flatten(kb)
	require.Len(t, flat, len(categories))
	for i, btn := range flat {
		require.Equal(t, categories[i], btn.Text)
		require.Equal(t, fmt.Sprintf("cat_%d", i), *btn.CallbackData)
	}
}

func TestRemoveKeyboardLayout(t *testing.T) {
	t.Parallel()
	kb := removeKeyboard([]string{"A", "B", "C"})

	// Two category rows plus the cancel row.
	require.Len(t, kb.InlineKeyboard, 3)

	flat := flatten(kb)
	require.Len(t, flat, 4)
	for i, label := range []string{"A", "B", "C"} {
		require.Equal(t, label, flat[i].Text)
		require.Equal(t, fmt.Sprintf("remove_%d", i), *flat[i].CallbackData)
	}
	require.Equal(t, "cancel_remove", *flat[3].CallbackData)
}

func TestParseCallbackData(t *testing.T) {
	t.Parallel()
	tests := []struct {
		data      string
		action    string
		index     int
		wantError bool
	}{
		{data: "cat_0", action: actionPickCategory, index: 0},
		{data: "cat_12", action: actionPickCategory, index: 12},
		{data: "remove_3", action: actionRemoveCategory, index: 3},
		{data: "cancel_remove", action: actionCancelRemove},
		{data: "cat_", wantError: true},
		{data: "cat_x", wantError: true},
		{data: "something_else", wantError: true},
		{data: "", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			action, index, err := parseCallbackData(tt.data)
			if tt.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.action, action)
			require.Equal(t, tt.index, index)
		})
	}
}

func flatten(kb tgbotapi.InlineKeyboardMarkup) []tgbotapi.InlineKeyboardButton {
	var flat []tgbotapi.InlineKeyboardButton
	for _, row := range kb.InlineKeyboard {
		flat = append(flat, row...)
	}
	return flat
}
