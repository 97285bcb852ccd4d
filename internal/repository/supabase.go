// Package repository persists users, pending expenses and the ledger in
// Supabase, driven over the PostgREST API.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/supabase-community/supabase-go"

	"github.com/ivanoskov/expenselog_bot/internal/model"
)

const (
	usersTable    = "users"
	pendingTable  = "pending_expenses"
	expensesTable = "expenses"
)

type SupabaseRepository struct {
	client *supabase.Client
}

var _ Repository = (*SupabaseRepository)(nil)

func NewSupabaseRepository(url, key string) (*SupabaseRepository, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &SupabaseRepository{
		client: client,
	}, nil
}

func (r *SupabaseRepository) getUser(ctx context.Context, userID int64) (*model.User, error) {
	data, _, err := r.client.From(usersTable).
		Select("*", "", false).
		Eq("telegram_id", strconv.FormatInt(userID, 10)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var users []model.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to parse user: %w", err)
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

// EnsureUser returns the user row, creating it on first contact. A lost
// insert race (someone else created the row between our select and insert)
// falls back to a re-read so custom categories are never clobbered.
func (r *SupabaseRepository) EnsureUser(ctx context.Context, userID int64) (*model.User, error) {
	user, err := r.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	row := model.User{
		TelegramID:       userID,
		CustomCategories: []string{},
		CreatedAt:        time.Now().UTC(),
	}
	_, _, err = r.client.From(usersTable).Insert(row, false, "", "minimal", "").Execute()
	if err != nil {
		existing, readErr := r.getUser(ctx, userID)
		if readErr == nil && existing != nil {
			return existing, nil
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &row, nil
}

func (r *SupabaseRepository) UpdateUserCategories(ctx context.Context, userID int64, categories []string) error {
	patch := map[string]any{"custom_categories": categories}
	_, _, err := r.client.From(usersTable).
		Update(patch, "minimal", "").
		Eq("telegram_id", strconv.FormatInt(userID, 10)).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update user categories: %w", err)
	}
	return nil
}

// PutPending writes the user's pending expense. The upsert on user_id makes
// this a full-row overwrite: a new pending replaces any prior one.
func (r *SupabaseRepository) PutPending(ctx context.Context, pending *model.PendingExpense) error {
	_, _, err := r.client.From(pendingTable).
		Insert(pending, true, "user_id", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to put pending expense: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) GetPending(ctx context.Context, userID int64) (*model.PendingExpense, error) {
	data, _, err := r.client.From(pendingTable).
		Select("*", "", false).
		Eq("user_id", strconv.FormatInt(userID, 10)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get pending expense: %w", err)
	}

	var rows []model.PendingExpense
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse pending expense: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// TakePending atomically claims the user's pending expense: a single DELETE
// returning the deleted row. Of two concurrent callers exactly one gets the
// row; the other gets nil.
func (r *SupabaseRepository) TakePending(ctx context.Context, userID int64) (*model.PendingExpense, error) {
	data, _, err := r.client.From(pendingTable).
		Delete("representation", "").
		Eq("user_id", strconv.FormatInt(userID, 10)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to take pending expense: %w", err)
	}

	var rows []model.PendingExpense
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse taken pending expense: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// DeleteStalePending drops every pending row created before olderThan, for
// all users, in one ranged delete. Redundant concurrent calls are harmless.
func (r *SupabaseRepository) DeleteStalePending(ctx context.Context, olderThan time.Time) (int, error) {
	data, _, err := r.client.From(pendingTable).
		Delete("representation", "").
		Lt("created_at", olderThan.UTC().Format(time.RFC3339)).
		Execute()
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale pending expenses: %w", err)
	}

	var rows []model.PendingExpense
	if err := json.Unmarshal(data, &rows); err != nil {
		return 0, fmt.Errorf("failed to parse deleted pending expenses: %w", err)
	}
	return len(rows), nil
}

func (r *SupabaseRepository) CreateExpense(ctx context.Context, expense *model.Expense) error {
	expense.GenerateID()
	_, _, err := r.client.From(expensesTable).
		Insert(expense, false, "", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) GetExpenses(ctx context.Context, userID int64, filter model.ExpenseFilter) ([]model.Expense, error) {
	query := r.client.From(expensesTable).
		Select("*", "", false).
		Eq("user_id", strconv.FormatInt(userID, 10))

	if filter.From != nil {
		query = query.Gte("created_at", filter.From.UTC().Format(time.RFC3339))
	}
	if filter.To != nil {
		query = query.Lte("created_at", filter.To.UTC().Format(time.RFC3339))
	}

	// Newest first.
	query = query.Order("created_at.desc", nil)

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit, "")
	}

	data, _, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}

	var expenses []model.Expense
	if err := json.Unmarshal(data, &expenses); err != nil {
		return nil, fmt.Errorf("failed to parse expenses: %w", err)
	}
	return expenses, nil
}
