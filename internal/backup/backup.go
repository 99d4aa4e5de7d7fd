// Package backup serializes the full data set to timestamped JSON snapshot
// files and restores from them with replace-all semantics.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/fintrack/internal/common"
	"github.com/Veraticus/fintrack/internal/model"
	"github.com/Veraticus/fintrack/internal/prefs"
	"github.com/Veraticus/fintrack/internal/service"
)

// FormatVersion is the canonical snapshot schema version. Budgets are a
// list; the legacy map-of-budgets shape is not accepted.
const FormatVersion = 1

// Snapshot file naming.
const (
	filePrefix    = "finance_tracker_backup_"
	fileSuffix    = ".json"
	timestampForm = "20060102_150405"
)

// Snapshot is the backup wire format: the full exported data set at a point
// in time.
type Snapshot struct {
	FormatVersion int                 `json:"formatVersion"`
	Transactions  []model.Transaction `json:"transactions"`
	Categories    []model.Category    `json:"categories"`
	Budgets       []model.Budget      `json:"budgets"`
	Users         []model.User        `json:"users"`
	Currency      string              `json:"currency"`
	CurrentUser   string              `json:"currentUser"`
}

// Manager exports and restores snapshots of the persistence store plus the
// currency and session preferences.
type Manager struct {
	store service.Storage
	prefs *prefs.Store
	dir   string
	gate  sync.Locker
}

// NewManager creates a backup manager writing into dir. gate serializes
// whole-store maintenance operations; pass the same locker given to the
// migrator. A nil gate gets a private mutex.
func NewManager(store service.Storage, prefStore *prefs.Store, dir string, gate sync.Locker) *Manager {
	if gate == nil {
		gate = &sync.Mutex{}
	}
	return &Manager{store: store, prefs: prefStore, dir: dir, gate: gate}
}

// Export collects the current snapshot of all four entity collections plus
// the currency setting and current username, and writes it to a timestamped
// file in the backup directory. Returns the file name written.
func (m *Manager) Export(ctx context.Context) (string, error) {
	m.gate.Lock()
	defer m.gate.Unlock()

	snapshot, err := m.collect(ctx)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := os.MkdirAll(m.dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	fileName := filePrefix + time.Now().Format(timestampForm) + fileSuffix
	if err := os.WriteFile(filepath.Join(m.dir, fileName), data, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}

	slog.Info("exported backup",
		"file", fileName,
		"transactions", len(snapshot.Transactions),
		"categories", len(snapshot.Categories),
		"budgets", len(snapshot.Budgets),
		"users", len(snapshot.Users))
	return fileName, nil
}

func (m *Manager) collect(ctx context.Context) (*Snapshot, error) {
	transactions, err := m.store.GetTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect transactions: %w", err)
	}
	categories, err := m.store.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect categories: %w", err)
	}
	budgets, err := m.store.GetBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect budgets: %w", err)
	}
	users, err := m.store.GetUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect users: %w", err)
	}
	currency, err := m.prefs.Currency()
	if err != nil {
		return nil, fmt.Errorf("failed to read currency: %w", err)
	}
	session, err := m.prefs.LoginState()
	if err != nil {
		return nil, fmt.Errorf("failed to read login state: %w", err)
	}

	return &Snapshot{
		FormatVersion: FormatVersion,
		Transactions:  transactions,
		Categories:    categories,
		Budgets:       budgets,
		Users:         users,
		Currency:      currency,
		CurrentUser:   session.CurrentUsername,
	}, nil
}

// Restore replaces the entire store with the contents of the named snapshot
// file. All existing transactions, categories, budgets, and users are
// deleted first; then every snapshot entity is inserted, the currency
// preference restored, and, when the snapshot carries a current user, that
// user marked logged in. Success means parse and apply succeeded; restoring
// an empty snapshot yields an empty store and still succeeds. A failure
// partway leaves whatever state existed at that point.
func (m *Manager) Restore(ctx context.Context, fileName string) error {
	m.gate.Lock()
	defer m.gate.Unlock()

	snapshot, err := m.read(fileName)
	if err != nil {
		return err
	}

	if err := m.store.DeleteAllTransactions(ctx); err != nil {
		return fmt.Errorf("failed to clear transactions: %w", err)
	}
	if err := m.store.DeleteAllCategories(ctx); err != nil {
		return fmt.Errorf("failed to clear categories: %w", err)
	}
	if err := m.store.DeleteAllBudgets(ctx); err != nil {
		return fmt.Errorf("failed to clear budgets: %w", err)
	}
	if err := m.store.DeleteAllUsers(ctx); err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}

	for i := range snapshot.Transactions {
		if err := m.store.SaveTransaction(ctx, &snapshot.Transactions[i]); err != nil {
			return fmt.Errorf("failed to restore transaction %s: %w", snapshot.Transactions[i].ID, err)
		}
	}
	for i := range snapshot.Categories {
		if err := m.store.SaveCategory(ctx, &snapshot.Categories[i]); err != nil {
			return fmt.Errorf("failed to restore category %q: %w", snapshot.Categories[i].Name, err)
		}
	}
	for i := range snapshot.Budgets {
		if err := m.store.SaveBudget(ctx, &snapshot.Budgets[i]); err != nil {
			return fmt.Errorf("failed to restore budget %d/%d: %w",
				snapshot.Budgets[i].Month, snapshot.Budgets[i].Year, err)
		}
	}
	for i := range snapshot.Users {
		if err := m.store.SaveUser(ctx, &snapshot.Users[i]); err != nil {
			return fmt.Errorf("failed to restore user %s: %w", snapshot.Users[i].Email, err)
		}
	}

	if err := m.prefs.SetCurrency(snapshot.Currency); err != nil {
		return fmt.Errorf("failed to restore currency: %w", err)
	}
	if snapshot.CurrentUser != "" {
		if err := m.prefs.SaveLoginState(true, snapshot.CurrentUser); err != nil {
			return fmt.Errorf("failed to restore login state: %w", err)
		}
	}

	slog.Info("restored backup",
		"file", fileName,
		"transactions", len(snapshot.Transactions),
		"categories", len(snapshot.Categories),
		"budgets", len(snapshot.Budgets),
		"users", len(snapshot.Users))
	return nil
}

func (m *Manager) read(fileName string) (*Snapshot, error) {
	data, err := os.ReadFile(filepath.Join(m.dir, fileName))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", common.ErrBackupNotFound, fileName)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup file: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if snapshot.FormatVersion != FormatVersion {
		return nil, fmt.Errorf("%w: %d", common.ErrUnsupportedBackup, snapshot.FormatVersion)
	}
	return &snapshot, nil
}

// List enumerates snapshot files in the backup directory, newest first. The
// fixed-width timestamp makes descending lexicographic order reverse
// chronological. A missing directory yields an empty list.
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list backup directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		names = append(names, name)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// FilePath returns the absolute path of a snapshot file name.
func (m *Manager) FilePath(fileName string) string {
	return filepath.Join(m.dir, fileName)
}
