package backup

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/fintrack/internal/common"
	"github.com/Veraticus/fintrack/internal/model"
	"github.com/Veraticus/fintrack/internal/prefs"
	"github.com/Veraticus/fintrack/internal/storage"
)

func newTestManager(t *testing.T) (*Manager, *storage.SQLiteStorage, *prefs.Store) {
	t.Helper()
	dir := t.TempDir()

	store, err := storage.NewSQLiteStorage(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })

	prefStore := prefs.NewStore(dir)
	return NewManager(store, prefStore, filepath.Join(dir, "backups"), nil), store, prefStore
}

func seedStore(t *testing.T, store *storage.SQLiteStorage) {
	t.Helper()
	ctx := context.Background()

	transactions := []model.Transaction{
		{ID: "t1", Title: "Groceries", Amount: 50.0, Category: "Food",
			Date: time.Date(2024, time.June, 5, 12, 0, 0, 0, time.UTC).UnixMilli(), IsExpense: true},
		{ID: "t2", Title: "Bus pass", Amount: 30.0, Category: "Transport",
			Date: time.Date(2024, time.June, 8, 9, 0, 0, 0, time.UTC).UnixMilli(), IsExpense: true},
		{ID: "t3", Title: "Salary", Amount: 1000.0, Category: "Salary",
			Date: time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC).UnixMilli(), IsExpense: false},
	}
	for i := range transactions {
		require.NoError(t, store.SaveTransaction(ctx, &transactions[i]))
	}

	categories := []model.Category{
		{ID: "c1", Name: "Food", Color: 0xFF6666},
		{ID: "c2", Name: "Transport", Color: 0x66B2FF},
	}
	for i := range categories {
		require.NoError(t, store.SaveCategory(ctx, &categories[i]))
	}

	require.NoError(t, store.SaveBudget(ctx, &model.Budget{Amount: 500, Month: 5, Year: 2024}))
	require.NoError(t, store.SaveUser(ctx, &model.User{
		Email: "a@example.com", Username: "alice", Password: "secret",
	}))
}

func TestRoundTrip(t *testing.T) {
	manager, store, prefStore := newTestManager(t)
	ctx := context.Background()

	seedStore(t, store)
	require.NoError(t, prefStore.SetCurrency("$"))
	require.NoError(t, prefStore.SaveLoginState(true, "alice"))

	fileName, err := manager.Export(ctx)
	require.NoError(t, err)
	assert.Contains(t, fileName, "finance_tracker_backup_")
	assert.Contains(t, fileName, ".json")

	// Wipe everything, then restore.
	require.NoError(t, store.DeleteAllTransactions(ctx))
	require.NoError(t, store.DeleteAllCategories(ctx))
	require.NoError(t, store.DeleteAllBudgets(ctx))
	require.NoError(t, store.DeleteAllUsers(ctx))
	require.NoError(t, prefStore.ClearApp())
	require.NoError(t, prefStore.ClearUser())

	require.NoError(t, manager.Restore(ctx, fileName))

	transactions, err := store.GetTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, transactions, 3)

	var total float64
	for _, txn := range transactions {
		if txn.IsExpense {
			total += txn.Amount
		}
	}
	assert.InDelta(t, 80.0, total, 0.001)

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
	assert.Equal(t, "alice", users[0].Username)

	currency, err := prefStore.Currency()
	require.NoError(t, err)
	assert.Equal(t, "$", currency)

	state, err := prefStore.LoginState()
	require.NoError(t, err)
	assert.True(t, state.IsLoggedIn)
	assert.Equal(t, "alice", state.CurrentUsername)
}

// Restore replaces the store wholesale: rows added after the export
// disappear.
func TestRestore_ReplacesExisting(t *testing.T) {
	manager, store, _ := newTestManager(t)
	ctx := context.Background()

	seedStore(t, store)
	fileName, err := manager.Export(ctx)
	require.NoError(t, err)

	extra := model.NewTransaction("Cinema", 20.0, "Entertainment",
		time.Date(2024, time.July, 1, 19, 0, 0, 0, time.UTC), true)
	require.NoError(t, store.SaveTransaction(ctx, &extra))

	require.NoError(t, manager.Restore(ctx, fileName))

	transactions, err := store.GetTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, transactions, 3)
	for _, txn := range transactions {
		assert.NotEqual(t, "Cinema", txn.Title)
	}
}

func TestRestore_EmptySnapshot(t *testing.T) {
	manager, store, _ := newTestManager(t)
	ctx := context.Background()

	fileName, err := manager.Export(ctx)
	require.NoError(t, err)

	seedStore(t, store)
	require.NoError(t, manager.Restore(ctx, fileName))

	transactions, err := store.GetTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestRestore_MissingFile(t *testing.T) {
	manager, _, _ := newTestManager(t)

	err := manager.Restore(context.Background(), "finance_tracker_backup_20240101_000000.json")
	assert.ErrorIs(t, err, common.ErrBackupNotFound)
}

func TestRestore_UnsupportedVersion(t *testing.T) {
	manager, _, _ := newTestManager(t)

	require.NoError(t, os.MkdirAll(manager.dir, 0750))
	fileName := "finance_tracker_backup_20240101_000000.json"
	data := []byte(`{"formatVersion": 2, "transactions": [], "categories": [], "budgets": [], "users": []}`)
	require.NoError(t, os.WriteFile(filepath.Join(manager.dir, fileName), data, 0600))

	err := manager.Restore(context.Background(), fileName)
	assert.ErrorIs(t, err, common.ErrUnsupportedBackup)
}

func TestRestore_MalformedFile(t *testing.T) {
	manager, _, _ := newTestManager(t)

	require.NoError(t, os.MkdirAll(manager.dir, 0750))
	fileName := "finance_tracker_backup_20240101_000000.json"
	require.NoError(t, os.WriteFile(filepath.Join(manager.dir, fileName), []byte("{not json"), 0600))

	err := manager.Restore(context.Background(), fileName)
	assert.Error(t, err)
}

func TestList_NewestFirst(t *testing.T) {
	manager, _, _ := newTestManager(t)

	require.NoError(t, os.MkdirAll(manager.dir, 0750))
	names := []string{
		"finance_tracker_backup_20240101_120000.json",
		"finance_tracker_backup_20240301_090000.json",
		"finance_tracker_backup_20240201_180000.json",
	}
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(manager.dir, name), []byte("{}"), 0600))
	}
	// Unrelated files are skipped.
	require.NoError(t, os.WriteFile(filepath.Join(manager.dir, "notes.txt"), []byte("x"), 0600))

	listed, err := manager.List()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"finance_tracker_backup_20240301_090000.json",
		"finance_tracker_backup_20240201_180000.json",
		"finance_tracker_backup_20240101_120000.json",
	}, listed)
}

func TestList_MissingDirectory(t *testing.T) {
	manager, _, _ := newTestManager(t)

	listed, err := manager.List()
	require.NoError(t, err)
	assert.Empty(t, listed)
}
