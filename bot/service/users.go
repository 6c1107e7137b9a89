// Package service holds the account logic: signup, login and the
// logged-in gate for media commands.
package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"mediabot/bot/domain"
	"mediabot/core/logger"
)

// UserRepository is the storage surface the service needs. Lookups
// return (nil, nil) when no row matches.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	SetLoggedIn(ctx context.Context, id int64) error
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Signup registers a new account and logs it in immediately. Returns
// domain.ErrUsernameTaken when the handle is already claimed.
func (s *UserService) Signup(ctx context.Context, telegramID int64, username, password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	u := &domain.User{
		TelegramID:   telegramID,
		Username:     username,
		PasswordHash: hash,
		IsLoggedIn:   true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			logger.Info(ctx, "users", "signup.duplicate", slog.String("username", username))
		}
		return err
	}
	logger.Info(ctx, "users", "signup.ok",
		slog.Int64("telegram_id", telegramID),
		slog.String("username", username))
	return nil
}

// Login verifies the username/password pair and marks the account as
// logged in. Unknown usernames and wrong passwords both come back as
// domain.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) error {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if u == nil || !checkPassword(u.PasswordHash, password) {
		logger.Info(ctx, "users", "login.rejected", slog.String("username", username))
		return domain.ErrInvalidCredentials
	}
	if err := s.repo.SetLoggedIn(ctx, u.ID); err != nil {
		return err
	}
	logger.Info(ctx, "users", "login.ok", slog.String("username", username))
	return nil
}

// IsLoggedIn reports whether the sender owns a logged-in account.
// Senders without an account are simply not logged in.
func (s *UserService) IsLoggedIn(ctx context.Context, telegramID int64) (bool, error) {
	u, err := s.repo.FindByTelegramID(ctx, telegramID)
	if err != nil {
		return false, err
	}
	return u != nil && u.IsLoggedIn, nil
}

// hashPassword salts and hashes with bcrypt. bcrypt rejects input over
// 72 bytes; such a signup fails and is answered with the generic
// failure notice.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
