package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Veraticus/fintrack/internal/model"
)

// SaveBudget inserts or updates the budget for (month, year). The unique
// index on (month, year) guarantees at most one budget per calendar month.
// The budget's ID field is updated to the stored row id.
func (s *SQLiteStorage) SaveBudget(ctx context.Context, budget *model.Budget) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBudget(budget); err != nil {
		return err
	}

	query := `
		INSERT INTO budgets (amount, month, year)
		VALUES (?, ?, ?)
		ON CONFLICT(month, year) DO UPDATE SET
			amount = excluded.amount`

	result, err := s.db.ExecContext(ctx, query, budget.Amount, budget.Month, budget.Year)
	if err != nil {
		return fmt.Errorf("failed to save budget: %w", err)
	}

	// LastInsertId is unreliable for the upsert path; re-read the row id.
	if id, idErr := result.LastInsertId(); idErr == nil && id > 0 {
		budget.ID = id
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT id FROM budgets WHERE month = ? AND year = ?`, budget.Month, budget.Year)
	if err := row.Scan(&budget.ID); err != nil {
		return fmt.Errorf("failed to read budget id: %w", err)
	}

	slog.Debug("saved budget", "month", budget.Month, "year", budget.Year, "amount", budget.Amount)
	s.notify(KindBudgets)
	return nil
}

// DeleteAllBudgets removes every budget.
func (s *SQLiteStorage) DeleteAllBudgets(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM budgets`); err != nil {
		return fmt.Errorf("failed to delete budgets: %w", err)
	}

	s.notify(KindBudgets)
	return nil
}

// GetBudget returns the budget for (month, year), or nil when none is set.
func (s *SQLiteStorage) GetBudget(ctx context.Context, month, year int) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT id, amount, month, year FROM budgets WHERE month = ? AND year = ?`

	var budget model.Budget
	err := s.db.QueryRowContext(ctx, query, month, year).Scan(
		&budget.ID, &budget.Amount, &budget.Month, &budget.Year,
	)
	if err == sql.ErrNoRows {
		return nil, nil // No budget set for this month
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query budget: %w", err)
	}

	return &budget, nil
}

// GetBudgets returns all budgets ordered by year then month.
func (s *SQLiteStorage) GetBudgets(ctx context.Context) ([]model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT id, amount, month, year FROM budgets ORDER BY year, month`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	var budgets []model.Budget
	for rows.Next() {
		var budget model.Budget
		if err := rows.Scan(&budget.ID, &budget.Amount, &budget.Month, &budget.Year); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, budget)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}

	return budgets, nil
}
