package model

import "time"

// PendingExpense is an unconfirmed expense waiting for a category pick.
// At most one row exists per user; a new one overwrites the old.
type PendingExpense struct {
	UserID      int64     `json:"user_id"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
