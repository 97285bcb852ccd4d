package model

import "time"

// User is a bot user row. Created on first contact, never deleted.
// CustomCategories holds the user's own category labels in append order;
// the fixed defaults are not stored (see internal/category).
type User struct {
	TelegramID       int64     `json:"telegram_id"`
	CustomCategories []string  `json:"custom_categories"`
	CreatedAt        time.Time `json:"created_at,omitempty"`
}
