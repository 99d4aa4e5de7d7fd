package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Veraticus/fintrack/internal/common"
	"github.com/Veraticus/fintrack/internal/model"
)

// SaveCategory inserts or updates a category keyed by id. Names are unique;
// saving a category whose name belongs to a different id is an error.
func (s *SQLiteStorage) SaveCategory(ctx context.Context, cat *model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCategory(cat); err != nil {
		return err
	}

	query := `
		INSERT INTO categories (id, name, color)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			color = excluded.color`

	if _, err := s.db.ExecContext(ctx, query, cat.ID, cat.Name, cat.Color); err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}

	s.notify(KindCategories)
	return nil
}

// DeleteCategory removes a category by id. Transactions referencing the
// category keep their name; orphaned names are tolerated and simply
// contribute nothing to breakdowns.
func (s *SQLiteStorage) DeleteCategory(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	affected, err := s.execAffecting(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: category %s", common.ErrNotFound, id)
	}

	s.notify(KindCategories)
	return nil
}

// DeleteAllCategories removes every category.
func (s *SQLiteStorage) DeleteAllCategories(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("failed to delete categories: %w", err)
	}

	s.notify(KindCategories)
	return nil
}

// GetCategories returns all categories ordered by name.
func (s *SQLiteStorage) GetCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT id, name, color FROM categories ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Color); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

// GetCategoryByName returns a category by its name, or nil when absent.
func (s *SQLiteStorage) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	query := `SELECT id, name, color FROM categories WHERE name = ?`

	var cat model.Category
	err := s.db.QueryRowContext(ctx, query, name).Scan(&cat.ID, &cat.Name, &cat.Color)
	if err == sql.ErrNoRows {
		return nil, nil // Category not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &cat, nil
}

// EnsureDefaultCategories seeds the eight default categories when the table
// is empty. Called once at startup; a populated table is left untouched.
func (s *SQLiteStorage) EnsureDefaultCategories(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, cat := range model.DefaultCategories() {
		if err := s.SaveCategory(ctx, &cat); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", cat.Name, err)
		}
	}

	slog.Info("seeded default categories")
	return nil
}
