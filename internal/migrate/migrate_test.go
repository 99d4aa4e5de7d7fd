package migrate

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/fintrack/internal/model"
	"github.com/Veraticus/fintrack/internal/prefs"
	"github.com/Veraticus/fintrack/internal/storage"
)

func newTestStore(t *testing.T) *storage.SQLiteStorage {
	t.Helper()
	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedPrefs(t *testing.T, p *prefs.Store) {
	t.Helper()

	// Fixed ids so re-seeding after a simulated crash produces the same rows.
	txn := model.Transaction{
		ID:        "txn-1",
		Title:     "Groceries",
		Amount:    50.0,
		Category:  "Food",
		Date:      time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC).UnixMilli(),
		IsExpense: true,
	}
	require.NoError(t, p.SaveTransactions([]model.Transaction{txn}))

	require.NoError(t, p.SaveCategories([]model.Category{
		{ID: "cat-food", Name: "Food", Color: 0xFF6666},
		{ID: "cat-transport", Name: "Transport", Color: 0x66B2FF},
	}))

	require.NoError(t, p.SetBudget(model.Budget{Amount: 500, Month: 5, Year: 2024}))

	require.NoError(t, p.SaveUsers([]model.User{
		{Email: "a@example.com", Username: "alice", Password: "secret"},
	}))
}

func TestRun_MovesEverything(t *testing.T) {
	store := newTestStore(t)
	prefStore := prefs.NewStore(t.TempDir())
	ctx := context.Background()
	seedPrefs(t, prefStore)

	require.NoError(t, New(store, prefStore, nil).Run(ctx))

	transactions, err := store.GetTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "Groceries", transactions[0].Title)

	categories, err := store.GetCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)

	budget, err := store.GetBudget(ctx, 5, 2024)
	require.NoError(t, err)
	require.NotNil(t, budget)
	assert.InDelta(t, 500.0, budget.Amount, 0.001)

	users, err := store.GetUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "a@example.com", users[0].Email)

	// Both namespaces are cleared once everything has landed.
	empty, err := prefStore.Empty()
	require.NoError(t, err)
	assert.True(t, empty)

	state, err := prefStore.LoginState()
	require.NoError(t, err)
	assert.False(t, state.IsLoggedIn)
}

func TestRun_EmptyStoreIsNoOp(t *testing.T) {
	store := newTestStore(t)
	prefStore := prefs.NewStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, New(store, prefStore, nil).Run(ctx))
	require.NoError(t, New(store, prefStore, nil).Run(ctx))

	transactions, err := store.GetTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

// Running twice against the same data cannot duplicate rows.
func TestRun_Idempotent(t *testing.T) {
	store := newTestStore(t)
	dir := t.TempDir()
	ctx := context.Background()

	prefStore := prefs.NewStore(dir)
	seedPrefs(t, prefStore)

	require.NoError(t, New(store, prefStore, nil).Run(ctx))

	// Simulate a crash after inserts but before the clear: re-seed the same
	// data and run again.
	seedPrefs(t, prefStore)
	require.NoError(t, New(store, prefStore, nil).Run(ctx))

	transactions, err := store.GetTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, transactions, 1)

	budgets, err := store.GetBudgets(ctx)
	require.NoError(t, err)
	assert.Len(t, budgets, 1)
}
