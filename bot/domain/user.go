// Package domain defines the user entity and the error taxonomy shared
// by the service and storage layers.
package domain

import "errors"

var (
	// ErrUsernameTaken is returned when a signup collides with an existing handle.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords so replies cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrStorageUnavailable wraps storage-layer failures so handlers can
	// answer with a generic notice instead of crashing the dispatcher.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrNotLoggedIn gates media commands for senders without a session.
	ErrNotLoggedIn = errors.New("not logged in")
)

// User mirrors one row of the users table. Username is immutable after
// signup; IsLoggedIn is set by signup/login and never cleared (there is
// no logout command).
type User struct {
	ID           int64  `db:"id"`
	TelegramID   int64  `db:"telegram_id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	IsLoggedIn   bool   `db:"is_logged_in"`
}
