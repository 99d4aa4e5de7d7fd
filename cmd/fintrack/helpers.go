package main

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/Veraticus/fintrack/internal/backup"
	"github.com/Veraticus/fintrack/internal/common"
	"github.com/Veraticus/fintrack/internal/config"
	"github.com/Veraticus/fintrack/internal/migrate"
	"github.com/Veraticus/fintrack/internal/prefs"
	"github.com/Veraticus/fintrack/internal/report"
	"github.com/Veraticus/fintrack/internal/storage"
)

// storeGate serializes whole-store maintenance operations (legacy
// migration, backup export/restore) within the process.
var storeGate sync.Mutex

// initStorage opens the SQLite store, applies schema migrations, runs the
// one-shot legacy preference migration, and seeds default categories. Every
// command goes through here, so the structured store is authoritative before
// any read.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, *prefs.Store, error) {
	store, err := storage.NewSQLiteStorage(config.DBPath())
	if err != nil {
		return nil, nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	prefStore := prefs.NewStore(config.DataDir())
	if err := migrate.New(store, prefStore, &storeGate).Run(ctx); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("failed to migrate legacy preferences: %w", err)
	}

	if err := store.EnsureDefaultCategories(ctx); err != nil {
		store.Close()
		return nil, nil, err
	}

	return store, prefStore, nil
}

// newBackupManager builds the backup manager sharing the store gate.
func newBackupManager(store *storage.SQLiteStorage, prefStore *prefs.Store) *backup.Manager {
	return backup.NewManager(store, prefStore, config.BackupDir(), &storeGate)
}

// parseAmount parses a positive decimal amount.
func parseAmount(s string) (float64, error) {
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, common.NewUserError(fmt.Sprintf("invalid amount %q", s), common.ErrInvalidInput)
	}
	if amount <= 0 {
		return 0, common.NewUserError(fmt.Sprintf("amount must be positive, got %q", s), common.ErrInvalidAmount)
	}
	return amount, nil
}

// parseDate parses a YYYY-MM-DD date in the local zone. An empty string
// means now.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	date, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, common.NewUserError(fmt.Sprintf("invalid date %q, want YYYY-MM-DD", s), common.ErrInvalidInput)
	}
	return date, nil
}

// monthBounds returns the closed epoch-millisecond interval for a
// zero-based month in the local zone.
func monthBounds(month, year int) (start, end int64) {
	return report.MonthRange(month, year, time.Local)
}

// resolveMonthYear converts the 1-12 month flag and year flag into the
// zero-based month and year used internally, defaulting to the current
// month when unset (flag value 0).
func resolveMonthYear(monthFlag, yearFlag int) (month, year int, err error) {
	now := time.Now()
	month = int(now.Month()) - 1
	year = now.Year()

	if monthFlag != 0 {
		if monthFlag < 1 || monthFlag > 12 {
			return 0, 0, common.NewUserError(fmt.Sprintf("month must be 1-12, got %d", monthFlag), common.ErrInvalidInput)
		}
		month = monthFlag - 1
	}
	if yearFlag != 0 {
		year = yearFlag
	}
	return month, year, nil
}
