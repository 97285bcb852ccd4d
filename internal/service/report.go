package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ivanoskov/expenselog_bot/internal/model"
)

// Report is an aggregate over a slice of the ledger. ByCategory keys are
// the snapshotted labels from committed rows, so totals survive later
// category removals.
type Report struct {
	Period     string
	Total      float64
	Count      int
	ByCategory map[string]float64
}

// CategoryTotal is one row of a sorted per-category breakdown.
type CategoryTotal struct {
	Label  string
	Amount float64
}

// SortedBreakdown flattens ByCategory into rows ordered by amount, largest
// first, with ties broken by label so output is stable.
func (r *Report) SortedBreakdown() []CategoryTotal {
	rows := make([]CategoryTotal, 0, len(r.ByCategory))
	for label, amount := range r.ByCategory {
		rows = append(rows, CategoryTotal{Label: label, Amount: amount})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Amount != rows[j].Amount {
			return rows[i].Amount > rows[j].Amount
		}
		return rows[i].Label < rows[j].Label
	})
	return rows
}

// DayReport aggregates today's expenses.
func (s *ExpenseTracker) DayReport(ctx context.Context, userID int64) (*Report, error) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1).Add(-time.Nanosecond)

	report, err := s.buildReport(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	report.Period = from.Format("02.01.2006")
	return report, nil
}

// MonthReport aggregates the current calendar month.
func (s *ExpenseTracker) MonthReport(ctx context.Context, userID int64) (*Report, error) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	report, err := s.buildReport(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	report.Period = from.Format("January 2006")
	return report, nil
}

func (s *ExpenseTracker) buildReport(ctx context.Context, userID int64, from, to time.Time) (*Report, error) {
	expenses, err := s.repo.GetExpenses(ctx, userID, model.ExpenseFilter{
		From: &from,
		To:   &to,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}

	report := &Report{
		ByCategory: make(map[string]float64),
	}
	for _, e := range expenses {
		report.Total += e.Amount
		report.Count++
		report.ByCategory[e.Category] += e.Amount
	}
	return report, nil
}

// RecentExpenses returns the user's latest committed expenses, newest first.
func (s *ExpenseTracker) RecentExpenses(ctx context.Context, userID int64, limit int) ([]model.Expense, error) {
	expenses, err := s.repo.GetExpenses(ctx, userID, model.ExpenseFilter{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}
	return expenses, nil
}
