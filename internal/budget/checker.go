package budget

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/fintrack/internal/model"
	"github.com/Veraticus/fintrack/internal/report"
	"github.com/Veraticus/fintrack/internal/service"
)

// Checker loads a month's expenses and budget from storage, classifies the
// spending, and dispatches alert notifications.
type Checker struct {
	store    service.Storage
	notifier service.Notifier
}

// NewChecker creates a budget checker. The notifier may be nil, in which
// case classification still runs but nothing is dispatched.
func NewChecker(store service.Storage, notifier service.Notifier) *Checker {
	return &Checker{store: store, notifier: notifier}
}

// Result carries the classification together with the inputs it was
// computed from.
type Result struct {
	Budget   *model.Budget
	Expenses float64
	Evaluation
}

// Check evaluates the given month (zero-based) and dispatches a notification
// when the budget is exceeded or being approached. Notification failures are
// logged, never retried, and do not fail the check.
func (c *Checker) Check(ctx context.Context, month, year int) (Result, error) {
	start, end := report.MonthRange(month, year, time.Local)
	transactions, err := c.store.GetTransactionsByDateRange(ctx, start, end)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load transactions: %w", err)
	}

	var expenses float64
	for _, txn := range transactions {
		if txn.IsExpense {
			expenses += txn.Amount
		}
	}

	b, err := c.store.GetBudget(ctx, month, year)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load budget: %w", err)
	}

	result := Result{
		Budget:     b,
		Expenses:   expenses,
		Evaluation: Evaluate(expenses, b),
	}

	if c.notifier != nil && b != nil {
		var notifyErr error
		switch result.Status {
		case StatusExceeded:
			notifyErr = c.notifier.BudgetExceeded(ctx, *b, expenses)
		case StatusApproaching:
			notifyErr = c.notifier.BudgetApproaching(ctx, *b, expenses)
		}
		if notifyErr != nil {
			slog.Error("failed to dispatch budget alert",
				"status", result.Status, "error", notifyErr)
		}
	}

	return result, nil
}
