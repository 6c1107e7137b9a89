package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"
)

type countContext struct {
	tele.Context

	store map[string]any
}

func (c *countContext) Get(key string) any    { return c.store[key] }
func (c *countContext) Set(key string, v any) { c.store[key] = v }

func (c *countContext) Send(any, ...any) error { return nil }

func TestMessageMetricsCountsSends(t *testing.T) {
	c := &countContext{store: map[string]any{}}

	mw := MessageMetricsMiddleware(func(inner tele.Context) error {
		require.NoError(t, inner.Send("one"))
		require.NoError(t, inner.Send("two"))
		return nil
	})

	require.NoError(t, mw(c))
	assert.Equal(t, 2, GetCounters(c))
}

func TestGetCountersDefaultsToZero(t *testing.T) {
	c := &countContext{store: map[string]any{}}
	assert.Equal(t, 0, GetCounters(c))
}
