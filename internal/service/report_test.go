package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ivanoskov/expenselog_bot/internal/model"
)

func seedExpense(t *testing.T, repo *mockRepository, userID int64, amount float64, desc, cat string, at time.Time) {
	t.Helper()
	e := &model.Expense{
		UserID:      userID,
		Amount:      amount,
		Description: desc,
		Category:    cat,
		CreatedAt:   at,
	}
	e.GenerateID()
	require.NoError(t, repo.CreateExpense(context.Background(), e))
}

func TestDayReport(t *testing.T) {
	t.Parallel()
	repo := newMockRepository()
	tracker := newTracker(repo)
	ctx := context.Background()
	now := time.Now().UTC()

	seedExpense(t, repo, 1, 50, "lunch", "🍔 Food", now)
	seedExpense(t, repo, 1, 12.5, "taxi", "🚕 Transport", now)
	seedExpense(t, repo, 1, 30, "stale cinema", "🎬 Entertainment", now.AddDate(0, 0, -2))
	seedExpense(t, repo, 2, 99, "someone else", "🍔 Food", now)

	report, err := tracker.DayReport(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 62.5, report.Total)
	require.Equal(t, 2, report.Count)
	require.Equal(t, 50.0, report.ByCategory["🍔 Food"])
	require.Equal(t, 12.5, report.ByCategory["🚕 Transport"])
	require.NotContains(t, report.ByCategory, "🎬 Entertainment")
}

func TestMonthReportKeepsRemovedCategoryLabels(t *testing.T) {
	t.Parallel()
	repo := newMockRepository()
	tracker := newTracker(repo)
	ctx := context.Background()
	now := time.Now().UTC()

	// Labels are snapshots: the report shows them even though the user
	// never had (or no longer has) a matching category.
	seedExpense(t, repo, 1, 100, "subscription", "🎮 Gaming", now)
	seedExpense(t, repo, 1, 50, "lunch", "🍔 Food", now)

	report, err := tracker.MonthReport(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 150.0, report.Total)
	require.Equal(t, 100.0, report.ByCategory["🎮 Gaming"])
}

func TestSortedBreakdownOrder(t *testing.T) {
	t.Parallel()
	report := &Report{
		ByCategory: map[string]float64{
			"🍔 Food":      50,
			"🚕 Transport": 80,
			"🎁 Gifts":     50,
		},
	}

	rows := report.SortedBreakdown()
	require.Equal(t, "🚕 Transport", rows[0].Label)
	// Equal amounts tie-break on label.
	require.Equal(t, "🍔 Food", rows[1].Label)
	require.Equal(t, "🎁 Gifts", rows[2].Label)
}

func TestRecentExpensesNewestFirstLimited(t *testing.T) {
	t.Parallel()
	repo := newMockRepository()
	tracker := newTracker(repo)
	ctx := context.Background()
	now := time.Now().UTC()

	for i := 0; i < 5; i++ {
		seedExpense(t, repo, 1, float64(i+1), "e", "📦 Other", now.Add(time.Duration(i)*time.Minute))
	}

	expenses, err := tracker.RecentExpenses(ctx, 1, 3)
	require.NoError(t, err)
	require.Len(t, expenses, 3)
	require.Equal(t, 5.0, expenses[0].Amount)
	require.Equal(t, 3.0, expenses[2].Amount)
}
