package repository

import (
	"context"
	"time"

	"github.com/ivanoskov/expenselog_bot/internal/model"
)

// Repository is the store contract the bot core runs on. All mutations are
// single-row upserts or deletes scoped by the user's Telegram id, so
// cross-user contention does not occur.
type Repository interface {
	// Users
	EnsureUser(ctx context.Context, userID int64) (*model.User, error)
	UpdateUserCategories(ctx context.Context, userID int64, categories []string) error

	// Pending expenses (at most one row per user)
	PutPending(ctx context.Context, pending *model.PendingExpense) error
	GetPending(ctx context.Context, userID int64) (*model.PendingExpense, error)
	TakePending(ctx context.Context, userID int64) (*model.PendingExpense, error)
	DeleteStalePending(ctx context.Context, olderThan time.Time) (int, error)

	// Ledger (append-only)
	CreateExpense(ctx context.Context, expense *model.Expense) error
	GetExpenses(ctx context.Context, userID int64, filter model.ExpenseFilter) ([]model.Expense, error)
}
