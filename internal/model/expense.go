package model

import (
	"time"

	"github.com/google/uuid"
)

// Expense is a committed ledger row. Immutable once written; Category is a
// snapshot of the label text at commit time, not an index into any list.
type Expense struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"user_id"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

// GenerateID assigns a fresh UUID if the expense has none yet.
func (e *Expense) GenerateID() {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
}

// ExpenseFilter narrows ledger queries for the report views.
type ExpenseFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}
