// Package postgres implements the user repository on top of sqlx.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"mediabot/bot/domain"
)

// UserRepository persists users in the users table.
type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByUsername returns the user with the given handle, or (nil, nil)
// when no such row exists.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.db.GetContext(ctx, &u,
		`SELECT id, telegram_id, username, password_hash, is_logged_in
		 FROM users WHERE username = $1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find by username: %v", domain.ErrStorageUnavailable, err)
	}
	return &u, nil
}

// FindByTelegramID returns the user owned by the given sender, or
// (nil, nil) when the sender never signed up.
func (r *UserRepository) FindByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	var u domain.User
	err := r.db.GetContext(ctx, &u,
		`SELECT id, telegram_id, username, password_hash, is_logged_in
		 FROM users WHERE telegram_id = $1`, telegramID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find by telegram id: %v", domain.ErrStorageUnavailable, err)
	}
	return &u, nil
}

// Create inserts a new user. A username collision maps to
// domain.ErrUsernameTaken.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (telegram_id, username, password_hash, is_logged_in)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		u.TelegramID, u.Username, u.PasswordHash, u.IsLoggedIn).Scan(&u.ID)
	if err != nil {
		if isUsernameConflict(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("%w: create user: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// SetLoggedIn marks the user row as logged in.
func (r *UserRepository) SetLoggedIn(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_logged_in = TRUE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("%w: set logged in: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}
