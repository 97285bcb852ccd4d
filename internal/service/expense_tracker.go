// Package service holds the expense-logging flow: free text becomes a
// pending expense, a category pick turns it into a ledger row. Per-user
// state is never kept in memory; it is derived from the presence of the
// user's pending row, so any number of handlers can run concurrently.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ivanoskov/expenselog_bot/internal/category"
	"github.com/ivanoskov/expenselog_bot/internal/model"
	"github.com/ivanoskov/expenselog_bot/internal/parser"
)

// Pending expenses older than this are swept after every successful commit.
const staleAfter = time.Hour

var (
	// ErrNoPending means the pending expense was already committed, swept,
	// or never existed. The user sees a "session expired" notice.
	ErrNoPending = errors.New("no pending expense")

	// ErrDuplicateCategory means the label already appears in the user's
	// effective category list, byte for byte.
	ErrDuplicateCategory = errors.New("category already exists")

	// ErrIndexOutOfRange means a selection token does not resolve against
	// the freshly computed category list.
	ErrIndexOutOfRange = errors.New("category index out of range")

	// ErrEmptyCategory means an add was attempted with a blank label.
	ErrEmptyCategory = errors.New("category label is empty")
)

// Repository is the slice of the store the tracker needs.
type Repository interface {
	EnsureUser(ctx context.Context, userID int64) (*model.User, error)
	UpdateUserCategories(ctx context.Context, userID int64, categories []string) error
	PutPending(ctx context.Context, pending *model.PendingExpense) error
	GetPending(ctx context.Context, userID int64) (*model.PendingExpense, error)
	TakePending(ctx context.Context, userID int64) (*model.PendingExpense, error)
	DeleteStalePending(ctx context.Context, olderThan time.Time) (int, error)
	CreateExpense(ctx context.Context, expense *model.Expense) error
	GetExpenses(ctx context.Context, userID int64, filter model.ExpenseFilter) ([]model.Expense, error)
}

type ExpenseTracker struct {
	repo Repository
	log  *slog.Logger

	// bg tracks the detached sweep goroutines so tests (and shutdown)
	// can wait for them.
	bg sync.WaitGroup
}

func NewExpenseTracker(repo Repository, log *slog.Logger) *ExpenseTracker {
	if log == nil {
		log = slog.Default()
	}
	return &ExpenseTracker{
		repo: repo,
		log:  log,
	}
}

// FlowState tags where a user is in the logging flow.
type FlowState int

const (
	// FlowIdle: no pending expense, free text starts a new one.
	FlowIdle FlowState = iota
	// FlowAwaitingCategory: a pending expense exists and waits for a pick.
	FlowAwaitingCategory
)

// Flow is the user's current position in the logging flow. Pending is set
// only in FlowAwaitingCategory.
type Flow struct {
	State   FlowState
	Pending *model.PendingExpense
}

// CurrentFlow derives the user's flow state from the store. There is no
// separate state field to drift out of sync: the pending row is the state.
func (s *ExpenseTracker) CurrentFlow(ctx context.Context, userID int64) (Flow, error) {
	pending, err := s.repo.GetPending(ctx, userID)
	if err != nil {
		return Flow{}, fmt.Errorf("failed to read pending expense: %w", err)
	}
	if pending == nil {
		return Flow{State: FlowIdle}, nil
	}
	return Flow{State: FlowAwaitingCategory, Pending: pending}, nil
}

// StartExpense parses free text into a pending expense and stores it,
// replacing any earlier pending for the user. It returns the pending row
// and the effective category list to render the picker from. On a grammar
// failure nothing is written and parser.ErrInvalidExpense comes back.
func (s *ExpenseTracker) StartExpense(ctx context.Context, userID int64, text string) (*model.PendingExpense, []string, error) {
	entry, err := parser.Parse(text)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.repo.EnsureUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to ensure user: %w", err)
	}

	pending := &model.PendingExpense{
		UserID:      userID,
		Amount:      entry.Amount,
		Description: entry.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.PutPending(ctx, pending); err != nil {
		return nil, nil, fmt.Errorf("failed to store pending expense: %w", err)
	}

	return pending, category.Effective(user.CustomCategories), nil
}

// CommitExpense resolves a selection token and turns the user's pending
// expense into a ledger row. The order matters:
//
//  1. the token is bounds-checked against a freshly computed category list,
//     leaving the pending untouched on ErrIndexOutOfRange;
//  2. the pending row is claimed atomically, so of two concurrent commits
//     exactly one wins and the other gets ErrNoPending;
//  3. the ledger append snapshots the label text; if the append fails the
//     claimed row is put back so the expense is not lost;
//  4. a best-effort sweep of stale pending rows runs in the background.
func (s *ExpenseTracker) CommitExpense(ctx context.Context, userID int64, categoryIndex int) (*model.Expense, error) {
	user, err := s.repo.EnsureUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure user: %w", err)
	}

	label, ok := category.At(category.Effective(user.CustomCategories), categoryIndex)
	if !ok {
		return nil, ErrIndexOutOfRange
	}

	pending, err := s.repo.TakePending(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to claim pending expense: %w", err)
	}
	if pending == nil {
		return nil, ErrNoPending
	}

	expense := &model.Expense{
		UserID:      userID,
		Amount:      pending.Amount,
		Description: pending.Description,
		Category:    label,
		CreatedAt:   time.Now().UTC(),
	}
	expense.GenerateID()

	if err := s.repo.CreateExpense(ctx, expense); err != nil {
		// The claim already removed the row; put it back exactly as it was
		// so the user can pick again instead of losing the expense.
		if restoreErr := s.repo.PutPending(ctx, pending); restoreErr != nil {
			s.log.Error("failed to restore pending expense after commit failure",
				"user_id", userID, "error", restoreErr)
		}
		return nil, fmt.Errorf("failed to store expense: %w", err)
	}

	s.sweepInBackground(ctx)

	return expense, nil
}

// sweepInBackground drops stale pending rows without blocking or failing
// the commit that triggered it.
func (s *ExpenseTracker) sweepInBackground(ctx context.Context) {
	sweepCtx := context.WithoutCancel(ctx)
	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		ctx, cancel := context.WithTimeout(sweepCtx, 30*time.Second)
		defer cancel()
		if _, err := s.SweepStale(ctx); err != nil {
			s.log.Warn("stale pending sweep failed", "error", err)
		}
	}()
}

// SweepStale deletes pending expenses older than an hour, for all users.
func (s *ExpenseTracker) SweepStale(ctx context.Context) (int, error) {
	n, err := s.repo.DeleteStalePending(ctx, time.Now().UTC().Add(-staleAfter))
	if err != nil {
		return 0, fmt.Errorf("failed to sweep stale pending expenses: %w", err)
	}
	if n > 0 {
		s.log.Info("swept stale pending expenses", "count", n)
	}
	return n, nil
}

// Categories returns the user's effective category list, recomputed from
// the store on every call. Selection tokens are only valid against the
// list returned by the same call.
func (s *ExpenseTracker) Categories(ctx context.Context, userID int64) ([]string, error) {
	user, err := s.repo.EnsureUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure user: %w", err)
	}
	return category.Effective(user.CustomCategories), nil
}

// CustomCategories returns only the user's own additions, in append order.
// The remove flow indexes into this list; defaults are never removable.
func (s *ExpenseTracker) CustomCategories(ctx context.Context, userID int64) ([]string, error) {
	user, err := s.repo.EnsureUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure user: %w", err)
	}
	return append([]string(nil), user.CustomCategories...), nil
}

// AddCategory appends a custom category. The duplicate check is exact
// string equality after trimming, against the current effective list, so
// an interleaved add cannot sneak a duplicate in past a cached copy.
func (s *ExpenseTracker) AddCategory(ctx context.Context, userID int64, label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return ErrEmptyCategory
	}

	user, err := s.repo.EnsureUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to ensure user: %w", err)
	}

	if category.Contains(category.Effective(user.CustomCategories), label) {
		return ErrDuplicateCategory
	}

	updated := append(append([]string(nil), user.CustomCategories...), label)
	if err := s.repo.UpdateUserCategories(ctx, userID, updated); err != nil {
		return fmt.Errorf("failed to save categories: %w", err)
	}
	return nil
}

// RemoveCategory deletes the custom category at customIndex and returns the
// removed label. Later custom categories shift down by one, which is why
// selection tokens must always be resolved against a fresh list.
func (s *ExpenseTracker) RemoveCategory(ctx context.Context, userID int64, customIndex int) (string, error) {
	user, err := s.repo.EnsureUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to ensure user: %w", err)
	}

	if customIndex < 0 || customIndex >= len(user.CustomCategories) {
		return "", ErrIndexOutOfRange
	}

	removed := user.CustomCategories[customIndex]
	updated := append([]string(nil), user.CustomCategories[:customIndex]...)
	updated = append(updated, user.CustomCategories[customIndex+1:]...)

	if err := s.repo.UpdateUserCategories(ctx, userID, updated); err != nil {
		return "", fmt.Errorf("failed to save categories: %w", err)
	}
	return removed, nil
}
