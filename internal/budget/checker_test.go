package budget

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/fintrack/internal/model"
	"github.com/Veraticus/fintrack/internal/storage"
)

type recordingNotifier struct {
	exceeded    []float64
	approaching []float64
	err         error
}

func (n *recordingNotifier) BudgetExceeded(_ context.Context, _ model.Budget, expenses float64) error {
	n.exceeded = append(n.exceeded, expenses)
	return n.err
}

func (n *recordingNotifier) BudgetApproaching(_ context.Context, _ model.Budget, expenses float64) error {
	n.approaching = append(n.approaching, expenses)
	return n.err
}

func newCheckerStore(t *testing.T) *storage.SQLiteStorage {
	t.Helper()
	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func saveExpense(t *testing.T, store *storage.SQLiteStorage, amount float64) {
	t.Helper()
	txn := model.NewTransaction("Expense", amount, "Food",
		time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local), true)
	require.NoError(t, store.SaveTransaction(context.Background(), &txn))
}

func TestChecker_NoBudget(t *testing.T) {
	store := newCheckerStore(t)
	notifier := &recordingNotifier{}
	saveExpense(t, store, 500)

	result, err := NewChecker(store, notifier).Check(context.Background(), 5, 2024)
	require.NoError(t, err)

	assert.Equal(t, StatusNoBudget, result.Status)
	assert.Nil(t, result.Budget)
	assert.InDelta(t, 500.0, result.Expenses, 0.001)
	assert.Empty(t, notifier.exceeded)
	assert.Empty(t, notifier.approaching)
}

func TestChecker_UnderBudget(t *testing.T) {
	store := newCheckerStore(t)
	notifier := &recordingNotifier{}
	ctx := context.Background()

	require.NoError(t, store.SaveBudget(ctx, &model.Budget{Amount: 1000, Month: 5, Year: 2024}))
	saveExpense(t, store, 300)

	result, err := NewChecker(store, notifier).Check(ctx, 5, 2024)
	require.NoError(t, err)

	assert.Equal(t, StatusUnderBudget, result.Status)
	assert.Empty(t, notifier.exceeded)
	assert.Empty(t, notifier.approaching)
}

func TestChecker_Approaching(t *testing.T) {
	store := newCheckerStore(t)
	notifier := &recordingNotifier{}
	ctx := context.Background()

	require.NoError(t, store.SaveBudget(ctx, &model.Budget{Amount: 1000, Month: 5, Year: 2024}))
	saveExpense(t, store, 800)

	result, err := NewChecker(store, notifier).Check(ctx, 5, 2024)
	require.NoError(t, err)

	assert.Equal(t, StatusApproaching, result.Status)
	require.Len(t, notifier.approaching, 1)
	assert.InDelta(t, 800.0, notifier.approaching[0], 0.001)
	assert.Empty(t, notifier.exceeded)
}

func TestChecker_Exceeded(t *testing.T) {
	store := newCheckerStore(t)
	notifier := &recordingNotifier{}
	ctx := context.Background()

	require.NoError(t, store.SaveBudget(ctx, &model.Budget{Amount: 1000, Month: 5, Year: 2024}))
	saveExpense(t, store, 700)
	saveExpense(t, store, 400)

	result, err := NewChecker(store, notifier).Check(ctx, 5, 2024)
	require.NoError(t, err)

	assert.Equal(t, StatusExceeded, result.Status)
	assert.Equal(t, 100, result.Progress)
	require.Len(t, notifier.exceeded, 1)
	assert.InDelta(t, 1100.0, notifier.exceeded[0], 0.001)
	assert.Empty(t, notifier.approaching)
}

// Income never counts toward the budget, and transactions from other months
// are ignored.
func TestChecker_OnlyExpensesInMonth(t *testing.T) {
	store := newCheckerStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveBudget(ctx, &model.Budget{Amount: 1000, Month: 5, Year: 2024}))
	saveExpense(t, store, 200)

	income := model.NewTransaction("Salary", 5000, "Salary",
		time.Date(2024, time.June, 1, 9, 0, 0, 0, time.Local), false)
	require.NoError(t, store.SaveTransaction(ctx, &income))

	other := model.NewTransaction("Rent", 900, "Bills",
		time.Date(2024, time.July, 1, 9, 0, 0, 0, time.Local), true)
	require.NoError(t, store.SaveTransaction(ctx, &other))

	result, err := NewChecker(store, nil).Check(ctx, 5, 2024)
	require.NoError(t, err)

	assert.Equal(t, StatusUnderBudget, result.Status)
	assert.InDelta(t, 200.0, result.Expenses, 0.001)
}

// A failing notifier does not fail the check.
func TestChecker_NotifierErrorIgnored(t *testing.T) {
	store := newCheckerStore(t)
	notifier := &recordingNotifier{err: assert.AnError}
	ctx := context.Background()

	require.NoError(t, store.SaveBudget(ctx, &model.Budget{Amount: 100, Month: 5, Year: 2024}))
	saveExpense(t, store, 150)

	result, err := NewChecker(store, notifier).Check(ctx, 5, 2024)
	require.NoError(t, err)
	assert.Equal(t, StatusExceeded, result.Status)
}
