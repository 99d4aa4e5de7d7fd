package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Veraticus/fintrack/internal/common"
	"github.com/Veraticus/fintrack/internal/model"
)

// SaveTransaction inserts or updates a transaction keyed by id.
func (s *SQLiteStorage) SaveTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	query := `
		INSERT INTO transactions (id, title, amount, category, date, is_expense)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			amount = excluded.amount,
			category = excluded.category,
			date = excluded.date,
			is_expense = excluded.is_expense`

	if _, err := s.db.ExecContext(ctx, query,
		txn.ID, txn.Title, txn.Amount, txn.Category, txn.Date, txn.IsExpense); err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}

	slog.Debug("saved transaction", "id", txn.ID, "title", txn.Title)
	s.notify(KindTransactions)
	return nil
}

// DeleteTransaction removes a transaction by id.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	affected, err := s.execAffecting(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: transaction %s", common.ErrNotFound, id)
	}

	s.notify(KindTransactions)
	return nil
}

// DeleteAllTransactions removes every transaction.
func (s *SQLiteStorage) DeleteAllTransactions(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("failed to delete transactions: %w", err)
	}

	s.notify(KindTransactions)
	return nil
}

const transactionColumns = `id, title, amount, category, date, is_expense`

// GetTransactions returns all transactions ordered by date descending.
func (s *SQLiteStorage) GetTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY date DESC`
	return s.queryTransactions(ctx, query)
}

// GetTransactionByID returns a single transaction, or ErrNotFound.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = ?`

	var txn model.Transaction
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&txn.ID, &txn.Title, &txn.Amount, &txn.Category, &txn.Date, &txn.IsExpense,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: transaction %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}

	return &txn, nil
}

// GetTransactionsByDateRange returns transactions with date in the closed
// interval [start, end], both epoch milliseconds.
func (s *SQLiteStorage) GetTransactionsByDateRange(ctx context.Context, start, end int64) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if end < start {
		return nil, fmt.Errorf("%w: %d > %d", ErrInvalidDateRange, start, end)
	}

	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE date BETWEEN ? AND ?
		ORDER BY date DESC`
	return s.queryTransactions(ctx, query, start, end)
}

// GetTransactionsByCategory returns transactions for a category name.
func (s *SQLiteStorage) GetTransactionsByCategory(ctx context.Context, category string) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(category, "category"); err != nil {
		return nil, err
	}

	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE category = ?
		ORDER BY date DESC`
	return s.queryTransactions(ctx, query, category)
}

func (s *SQLiteStorage) queryTransactions(ctx context.Context, query string, args ...any) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		if err := rows.Scan(&txn.ID, &txn.Title, &txn.Amount, &txn.Category, &txn.Date, &txn.IsExpense); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}
