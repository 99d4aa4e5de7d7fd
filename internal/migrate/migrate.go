// Package migrate performs the one-shot transfer of entity data from the
// legacy flat preference store into the structured SQLite store.
package migrate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Veraticus/fintrack/internal/prefs"
	"github.com/Veraticus/fintrack/internal/service"
)

// Migrator moves transactions, categories, budgets, and users out of the
// flat preference store. Inserts are idempotent (upsert by entity id), so a
// re-run after a partial failure cannot duplicate rows. A failure leaves
// both stores as they were at the point of failure; inserts already
// committed are not rolled back.
type Migrator struct {
	store service.Storage
	prefs *prefs.Store
	gate  sync.Locker
}

// New creates a Migrator. gate serializes whole-store maintenance
// operations (migration, backup, restore); pass the same locker to the
// backup manager. A nil gate gets a private mutex.
func New(store service.Storage, prefStore *prefs.Store, gate sync.Locker) *Migrator {
	if gate == nil {
		gate = &sync.Mutex{}
	}
	return &Migrator{store: store, prefs: prefStore, gate: gate}
}

// Run transfers all entity data and clears both preference namespaces on
// success. Running against an already-empty preference store is a no-op
// that still succeeds, so the routine is safe to call on every startup.
func (m *Migrator) Run(ctx context.Context) error {
	m.gate.Lock()
	defer m.gate.Unlock()

	transactions, err := m.prefs.Transactions()
	if err != nil {
		return fmt.Errorf("failed to read legacy transactions: %w", err)
	}
	for i := range transactions {
		if err := m.store.SaveTransaction(ctx, &transactions[i]); err != nil {
			return fmt.Errorf("failed to migrate transaction %s: %w", transactions[i].ID, err)
		}
	}

	categories, err := m.prefs.Categories()
	if err != nil {
		return fmt.Errorf("failed to read legacy categories: %w", err)
	}
	for i := range categories {
		if err := m.store.SaveCategory(ctx, &categories[i]); err != nil {
			return fmt.Errorf("failed to migrate category %q: %w", categories[i].Name, err)
		}
	}

	budgets, err := m.prefs.Budgets()
	if err != nil {
		return fmt.Errorf("failed to read legacy budgets: %w", err)
	}
	for key, b := range budgets {
		budget := b
		if err := m.store.SaveBudget(ctx, &budget); err != nil {
			return fmt.Errorf("failed to migrate budget %s: %w", key, err)
		}
	}

	users, err := m.prefs.Users()
	if err != nil {
		return fmt.Errorf("failed to read legacy users: %w", err)
	}
	for i := range users {
		if err := m.store.SaveUser(ctx, &users[i]); err != nil {
			return fmt.Errorf("failed to migrate user %s: %w", users[i].Email, err)
		}
	}

	// Clear both namespaces only after every insert landed.
	if err := m.prefs.ClearApp(); err != nil {
		return fmt.Errorf("failed to clear preference store: %w", err)
	}
	if err := m.prefs.ClearUser(); err != nil {
		return fmt.Errorf("failed to clear user preference store: %w", err)
	}

	if len(transactions)+len(categories)+len(budgets)+len(users) > 0 {
		slog.Info("migrated legacy preference data",
			"transactions", len(transactions),
			"categories", len(categories),
			"budgets", len(budgets),
			"users", len(users))
	}

	return nil
}
