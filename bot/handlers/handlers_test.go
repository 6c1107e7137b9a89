package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"mediabot/bot/domain"
	"mediabot/core/telegram/state"
)

// fakeContext implements just enough of tele.Context for handler flows.
// Unimplemented methods panic via the embedded nil interface.
type fakeContext struct {
	tele.Context

	sender *tele.User
	chat   *tele.Chat
	text   string
	sent   []any
	store  map[string]any
}

func newFakeContext(senderID int64, text string) *fakeContext {
	return &fakeContext{
		sender: &tele.User{ID: senderID},
		chat:   &tele.Chat{ID: senderID},
		text:   text,
		store:  map[string]any{},
	}
}

func (f *fakeContext) Sender() *tele.User  { return f.sender }
func (f *fakeContext) Chat() *tele.Chat    { return f.chat }
func (f *fakeContext) Text() string        { return f.text }
func (f *fakeContext) Update() tele.Update { return tele.Update{ID: 1} }
func (f *fakeContext) Get(key string) any  { return f.store[key] }
func (f *fakeContext) Set(key string, v any) {
	f.store[key] = v
}

func (f *fakeContext) Send(what any, _ ...any) error {
	f.sent = append(f.sent, what)
	return nil
}

func (f *fakeContext) lastText(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.sent)
	s, ok := f.sent[len(f.sent)-1].(string)
	require.True(t, ok, "last sent payload is not text: %T", f.sent[len(f.sent)-1])
	return s
}

type fakeUsers struct {
	signupErr error
	loginErr  error
	loggedIn  bool
	gateErr   error

	signupCalls []string
	loginCalls  []string
}

func (f *fakeUsers) Signup(_ context.Context, _ int64, username, password string) error {
	f.signupCalls = append(f.signupCalls, username+":"+password)
	return f.signupErr
}

func (f *fakeUsers) Login(_ context.Context, username, password string) error {
	f.loginCalls = append(f.loginCalls, username+":"+password)
	return f.loginErr
}

func (f *fakeUsers) IsLoggedIn(_ context.Context, _ int64) (bool, error) {
	return f.loggedIn, f.gateErr
}

func newHandlers(users *fakeUsers) (*Handlers, state.Manager) {
	conv := state.NewMemoryManager()
	h := New(users, conv, "https://example.com/img.jpg", "music.mp3")
	return h, conv
}

// step feeds one text message through the active dialogue.
func step(t *testing.T, conv state.Manager, senderID int64, text string) *fakeContext {
	t.Helper()
	c := newFakeContext(senderID, text)
	require.NoError(t, conv.HandleActive(c))
	return c
}

func TestStartReply(t *testing.T) {
	h, _ := newHandlers(&fakeUsers{})
	c := newFakeContext(1, "/start")
	require.NoError(t, h.Start(c))
	assert.Equal(t, msgWelcome, c.lastText(t))
}

func TestSignupFlowSuccess(t *testing.T) {
	users := &fakeUsers{}
	h, conv := newHandlers(users)

	c := newFakeContext(10, "/signup")
	require.NoError(t, h.Signup(c))
	assert.Equal(t, msgAskUsername, c.lastText(t))

	c = step(t, conv, 10, "alice")
	assert.Equal(t, msgAskPassword, c.lastText(t))

	c = step(t, conv, 10, "s3cret")
	assert.Equal(t, msgSignupOK, c.lastText(t))
	assert.Equal(t, []string{"alice:s3cret"}, users.signupCalls)
	assert.False(t, conv.InProgress(10), "dialogue must terminate after the password step")
}

func TestSignupFlowDuplicateUsername(t *testing.T) {
	users := &fakeUsers{signupErr: domain.ErrUsernameTaken}
	h, conv := newHandlers(users)

	require.NoError(t, h.Signup(newFakeContext(10, "/signup")))
	step(t, conv, 10, "alice")
	c := step(t, conv, 10, "pw")

	assert.Equal(t, msgUsernameTaken, c.lastText(t))
	assert.False(t, conv.InProgress(10), "failed signup still clears the dialogue")
}

func TestLoginFlowSuccess(t *testing.T) {
	users := &fakeUsers{}
	h, conv := newHandlers(users)

	c := newFakeContext(20, "/login")
	require.NoError(t, h.Login(c))
	assert.Equal(t, msgAskLoginUsername, c.lastText(t))

	c = step(t, conv, 20, "bob")
	assert.Equal(t, msgAskLoginPassword, c.lastText(t))

	c = step(t, conv, 20, "hunter2")
	assert.Equal(t, msgLoginOK, c.lastText(t))
	assert.Equal(t, []string{"bob:hunter2"}, users.loginCalls)
	assert.False(t, conv.InProgress(20))
}

func TestLoginFlowInvalidCredentials(t *testing.T) {
	users := &fakeUsers{loginErr: domain.ErrInvalidCredentials}
	h, conv := newHandlers(users)

	require.NoError(t, h.Login(newFakeContext(20, "/login")))
	step(t, conv, 20, "bob")
	c := step(t, conv, 20, "wrong")

	assert.Equal(t, msgBadCredential, c.lastText(t))
	assert.False(t, conv.InProgress(20))
}

func TestCommandLikePasswordIsAccepted(t *testing.T) {
	users := &fakeUsers{}
	h, conv := newHandlers(users)

	require.NoError(t, h.Signup(newFakeContext(30, "/signup")))
	step(t, conv, 30, "carol")
	c := step(t, conv, 30, "/image")

	assert.Equal(t, msgSignupOK, c.lastText(t))
	assert.Equal(t, []string{"carol:/image"}, users.signupCalls)
}

func TestRestartReplacesPendingDialogue(t *testing.T) {
	users := &fakeUsers{}
	h, conv := newHandlers(users)

	require.NoError(t, h.Signup(newFakeContext(40, "/signup")))
	step(t, conv, 40, "alice")

	require.NoError(t, h.Login(newFakeContext(40, "/login")))
	got, ok := conv.Get(40)
	require.True(t, ok)
	assert.Equal(t, state.KindLogin, got.Kind)
	assert.Equal(t, state.StepAwaitingUsername, got.Step)
	assert.Empty(t, got.Username)
}

func TestImageRequiresLogin(t *testing.T) {
	h, _ := newHandlers(&fakeUsers{loggedIn: false})
	c := newFakeContext(50, "/image")
	require.NoError(t, h.Image(c))
	assert.Equal(t, msgNotLoggedIn, c.lastText(t))
}

func TestImageSendsPhotoWhenLoggedIn(t *testing.T) {
	h, _ := newHandlers(&fakeUsers{loggedIn: true})
	c := newFakeContext(50, "/image")
	require.NoError(t, h.Image(c))

	require.Len(t, c.sent, 1)
	photo, ok := c.sent[0].(*tele.Photo)
	require.True(t, ok, "expected a photo payload, got %T", c.sent[0])
	assert.Equal(t, "https://example.com/img.jpg", photo.File.FileURL)
}

func TestMusicRequiresLogin(t *testing.T) {
	h, _ := newHandlers(&fakeUsers{loggedIn: false})
	c := newFakeContext(60, "/music")
	require.NoError(t, h.Music(c))
	assert.Equal(t, msgNotLoggedIn, c.lastText(t))
}

func TestMusicSendsAudioWhenLoggedIn(t *testing.T) {
	h, _ := newHandlers(&fakeUsers{loggedIn: true})
	c := newFakeContext(60, "/music")
	require.NoError(t, h.Music(c))

	require.Len(t, c.sent, 1)
	audio, ok := c.sent[0].(*tele.Audio)
	require.True(t, ok, "expected an audio payload, got %T", c.sent[0])
	assert.Equal(t, "music.mp3", audio.File.FileLocal)
}

func TestGateStorageFailure(t *testing.T) {
	h, _ := newHandlers(&fakeUsers{gateErr: domain.ErrStorageUnavailable})
	c := newFakeContext(70, "/image")
	require.NoError(t, h.Image(c))
	assert.Equal(t, msgServerError, c.lastText(t))
}

func TestAuthErrorMapping(t *testing.T) {
	assert.Equal(t, msgUsernameTaken, replyForAuthError(domain.ErrUsernameTaken))
	assert.Equal(t, msgBadCredential, replyForAuthError(domain.ErrInvalidCredentials))
	assert.Equal(t, msgServerError, replyForAuthError(domain.ErrStorageUnavailable))
}
