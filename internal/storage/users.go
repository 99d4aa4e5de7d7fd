package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Veraticus/fintrack/internal/common"
	"github.com/Veraticus/fintrack/internal/model"
)

// SaveUser inserts or updates a user keyed by email.
func (s *SQLiteStorage) SaveUser(ctx context.Context, user *model.User) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateUser(user); err != nil {
		return err
	}

	query := `
		INSERT INTO users (email, username, password)
		VALUES (?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
			username = excluded.username,
			password = excluded.password`

	if _, err := s.db.ExecContext(ctx, query, user.Email, user.Username, user.Password); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	s.notify(KindUsers)
	return nil
}

// DeleteAllUsers removes every user.
func (s *SQLiteStorage) DeleteAllUsers(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("failed to delete users: %w", err)
	}

	s.notify(KindUsers)
	return nil
}

// GetUsers returns all users ordered by username.
func (s *SQLiteStorage) GetUsers(ctx context.Context) ([]model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT email, username, password FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.Email, &user.Username, &user.Password); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// GetUserByUsername returns a user by username, or ErrNotFound.
func (s *SQLiteStorage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(username, "username"); err != nil {
		return nil, err
	}

	var user model.User
	err := s.db.QueryRowContext(ctx,
		`SELECT email, username, password FROM users WHERE username = ?`, username).Scan(
		&user.Email, &user.Username, &user.Password,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user %s", common.ErrNotFound, username)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// ValidateUser performs the plaintext credential check and returns the
// matching user, or nil when the credentials do not match.
func (s *SQLiteStorage) ValidateUser(ctx context.Context, username, password string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(username, "username"); err != nil {
		return nil, err
	}

	var user model.User
	err := s.db.QueryRowContext(ctx,
		`SELECT email, username, password FROM users WHERE username = ? AND password = ?`,
		username, password).Scan(
		&user.Email, &user.Username, &user.Password,
	)
	if err == sql.ErrNoRows {
		return nil, nil // Credentials did not match
	}
	if err != nil {
		return nil, fmt.Errorf("failed to validate user: %w", err)
	}

	return &user, nil
}
