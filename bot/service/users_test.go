package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediabot/bot/domain"
)

type fakeRepo struct {
	byUsername map[string]*domain.User
	byTelegram map[int64]*domain.User
	nextID     int64

	findErr   error
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byUsername: map[string]*domain.User{},
		byTelegram: map[int64]*domain.User{},
		nextID:     1,
	}
}

func (r *fakeRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.byUsername[username], nil
}

func (r *fakeRepo) FindByTelegramID(_ context.Context, telegramID int64) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.byTelegram[telegramID], nil
}

func (r *fakeRepo) Create(_ context.Context, u *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, exists := r.byUsername[u.Username]; exists {
		return domain.ErrUsernameTaken
	}
	u.ID = r.nextID
	r.nextID++
	r.byUsername[u.Username] = u
	r.byTelegram[u.TelegramID] = u
	return nil
}

func (r *fakeRepo) SetLoggedIn(_ context.Context, id int64) error {
	for _, u := range r.byUsername {
		if u.ID == id {
			u.IsLoggedIn = true
		}
	}
	return nil
}

func TestSignupCreatesLoggedInUser(t *testing.T) {
	repo := newFakeRepo()
	svc := NewUserService(repo)

	require.NoError(t, svc.Signup(context.Background(), 42, "alice", "s3cret"))

	u := repo.byUsername["alice"]
	require.NotNil(t, u)
	assert.Equal(t, int64(42), u.TelegramID)
	assert.True(t, u.IsLoggedIn)
	assert.NotEqual(t, "s3cret", u.PasswordHash, "password must be stored hashed")
	assert.True(t, checkPassword(u.PasswordHash, "s3cret"))
}

func TestSignupDuplicateUsername(t *testing.T) {
	repo := newFakeRepo()
	svc := NewUserService(repo)

	require.NoError(t, svc.Signup(context.Background(), 1, "alice", "one"))
	err := svc.Signup(context.Background(), 2, "alice", "two")
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestLoginSuccess(t *testing.T) {
	repo := newFakeRepo()
	svc := NewUserService(repo)

	require.NoError(t, svc.Signup(context.Background(), 7, "bob", "hunter2"))
	repo.byUsername["bob"].IsLoggedIn = false

	require.NoError(t, svc.Login(context.Background(), "bob", "hunter2"))
	assert.True(t, repo.byUsername["bob"].IsLoggedIn)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := NewUserService(repo)

	require.NoError(t, svc.Signup(context.Background(), 7, "bob", "hunter2"))
	err := svc.Login(context.Background(), "bob", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginUnknownUsername(t *testing.T) {
	svc := NewUserService(newFakeRepo())
	err := svc.Login(context.Background(), "nobody", "whatever")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestIsLoggedIn(t *testing.T) {
	repo := newFakeRepo()
	svc := NewUserService(repo)

	ok, err := svc.IsLoggedIn(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, ok, "unknown sender is not logged in")

	require.NoError(t, svc.Signup(context.Background(), 42, "alice", "pw"))
	ok, err = svc.IsLoggedIn(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, ok)

	repo.byTelegram[42].IsLoggedIn = false
	ok, err = svc.IsLoggedIn(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsLoggedInStorageError(t *testing.T) {
	repo := newFakeRepo()
	repo.findErr = domain.ErrStorageUnavailable
	svc := NewUserService(repo)

	_, err := svc.IsLoggedIn(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestSignupOverlongPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := NewUserService(repo)

	long := strings.Repeat("p", 73)
	err := svc.Signup(context.Background(), 1, "alice", long)
	require.Error(t, err, "bcrypt rejects passwords over 72 bytes")
	assert.Empty(t, repo.byUsername, "no user row is written on hash failure")
}

func TestPasswordHashesAreSalted(t *testing.T) {
	h1, err := hashPassword("same")
	require.NoError(t, err)
	h2, err := hashPassword("same")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
	assert.True(t, checkPassword(h1, "same"))
	assert.True(t, checkPassword(h2, "same"))
	assert.False(t, checkPassword(h1, "other"))
}
