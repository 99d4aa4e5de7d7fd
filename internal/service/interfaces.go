// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/fintrack/internal/model"
)

// Storage defines the contract for our persistence layer.
// All inserts are idempotent upserts keyed by entity id (or natural key),
// so migration and restore can safely be re-run.
type Storage interface {
	// Transaction operations
	SaveTransaction(ctx context.Context, txn *model.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
	DeleteAllTransactions(ctx context.Context) error
	GetTransactions(ctx context.Context) ([]model.Transaction, error)
	GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error)
	GetTransactionsByDateRange(ctx context.Context, start, end int64) ([]model.Transaction, error)
	GetTransactionsByCategory(ctx context.Context, category string) ([]model.Transaction, error)

	// Category operations
	SaveCategory(ctx context.Context, cat *model.Category) error
	DeleteCategory(ctx context.Context, id string) error
	DeleteAllCategories(ctx context.Context) error
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	EnsureDefaultCategories(ctx context.Context) error

	// Budget operations. SaveBudget upserts by (month, year); at most one
	// budget exists per calendar month.
	SaveBudget(ctx context.Context, budget *model.Budget) error
	DeleteAllBudgets(ctx context.Context) error
	GetBudget(ctx context.Context, month, year int) (*model.Budget, error)
	GetBudgets(ctx context.Context) ([]model.Budget, error)

	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	DeleteAllUsers(ctx context.Context) error
	GetUsers(ctx context.Context) ([]model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	ValidateUser(ctx context.Context, username, password string) (*model.User, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// Notifier dispatches budget alerts. Implementations are assumed reliable;
// dispatch failures are logged by callers, never retried.
type Notifier interface {
	BudgetExceeded(ctx context.Context, budget model.Budget, expenses float64) error
	BudgetApproaching(ctx context.Context, budget model.Budget, expenses float64) error
}

// CategorySummary is one row of a monthly expense breakdown.
type CategorySummary struct {
	Category   model.Category
	Amount     float64
	Percentage float64
}

// MonthlySummary contains income and expense totals for one month plus the
// per-category expense breakdown, sorted descending by amount.
type MonthlySummary struct {
	Breakdown     []CategorySummary
	TotalIncome   float64
	TotalExpenses float64
}
