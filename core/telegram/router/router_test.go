package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	tg "mediabot/core/telegram"
	"mediabot/core/telegram/commands"
)

type routeContext struct {
	tele.Context

	sender *tele.User
	text   string
	store  map[string]any
}

func newRouteContext(senderID int64, text string) *routeContext {
	return &routeContext{
		sender: &tele.User{ID: senderID},
		text:   text,
		store:  map[string]any{},
	}
}

func (r *routeContext) Sender() *tele.User    { return r.sender }
func (r *routeContext) Chat() *tele.Chat      { return &tele.Chat{ID: r.sender.ID} }
func (r *routeContext) Text() string          { return r.text }
func (r *routeContext) Update() tele.Update   { return tele.Update{ID: 1} }
func (r *routeContext) Get(key string) any    { return r.store[key] }
func (r *routeContext) Set(key string, v any) { r.store[key] = v }

func (r *routeContext) Send(any, ...any) error { return nil }

type fakeFSM struct {
	active  map[int64]bool
	handled []string
}

func (f *fakeFSM) InProgress(userID int64) bool { return f.active[userID] }

func (f *fakeFSM) HandleActive(c tele.Context) error {
	f.handled = append(f.handled, c.Text())
	return nil
}

func commandRegistry(t *testing.T, handled *[]string) *tg.Registry {
	t.Helper()
	reg := tg.NewRegistry()
	reg.RegisterCommand("/image", commands.Command{
		Description: "image",
		Handler: func(c tele.Context) error {
			*handled = append(*handled, "/image")
			return nil
		},
	})
	return reg
}

func TestCommandRouteYieldsToPendingConversation(t *testing.T) {
	var commandHits []string
	reg := commandRegistry(t, &commandHits)
	fsm := &fakeFSM{active: map[int64]bool{7: true}}

	routes := CommandRoutes(reg, fsm)
	require.Len(t, routes, 1)

	require.NoError(t, routes[0].Handler(newRouteContext(7, "/image")))
	assert.Empty(t, commandHits, "pending conversation must consume command-like text")
	assert.Equal(t, []string{"/image"}, fsm.handled)
}

func TestCommandRouteDispatchesWhenIdle(t *testing.T) {
	var commandHits []string
	reg := commandRegistry(t, &commandHits)
	fsm := &fakeFSM{active: map[int64]bool{}}

	routes := CommandRoutes(reg, fsm)
	require.Len(t, routes, 1)

	require.NoError(t, routes[0].Handler(newRouteContext(7, "/image")))
	assert.Equal(t, []string{"/image"}, commandHits)
	assert.Empty(t, fsm.handled)
}

func TestTextRoutePrefersConversation(t *testing.T) {
	var commandHits []string
	reg := commandRegistry(t, &commandHits)
	fsm := &fakeFSM{active: map[int64]bool{7: true}}

	routes := TextRoutes(fsm, reg, TextOptions{})
	require.Len(t, routes, 1)

	require.NoError(t, routes[0].Handler(newRouteContext(7, "hunter2")))
	assert.Equal(t, []string{"hunter2"}, fsm.handled)
	assert.Empty(t, commandHits)
}

func TestTextRouteIgnoresBareCommandWords(t *testing.T) {
	var commandHits []string
	reg := commandRegistry(t, &commandHits)
	fsm := &fakeFSM{active: map[int64]bool{}}

	routes := TextRoutes(fsm, reg, TextOptions{})
	for _, word := range []string{"image", "Image", "start login"} {
		require.NoError(t, routes[0].Handler(newRouteContext(7, word)))
	}
	assert.Empty(t, commandHits, "only slash-prefixed text may dispatch a command")
	assert.Empty(t, fsm.handled)
}

func TestTextRouteIgnoresUnknownText(t *testing.T) {
	var commandHits []string
	reg := commandRegistry(t, &commandHits)
	fsm := &fakeFSM{active: map[int64]bool{}}

	routes := TextRoutes(fsm, reg, TextOptions{})
	require.NoError(t, routes[0].Handler(newRouteContext(7, "hello there")))
	assert.Empty(t, fsm.handled)
	assert.Empty(t, commandHits)
}
