package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeginStartsAtUsernameStep(t *testing.T) {
	m := NewMemoryManager()
	m.Begin(1, KindSignup)

	conv, ok := m.Get(1)
	require.True(t, ok)
	assert.Equal(t, KindSignup, conv.Kind)
	assert.Equal(t, StepAwaitingUsername, conv.Step)
	assert.True(t, m.InProgress(1))
}

func TestLastDialogueCommandWins(t *testing.T) {
	m := NewMemoryManager()
	m.Begin(1, KindSignup)
	m.SetUsername(1, "alice")

	m.Begin(1, KindLogin)

	conv, ok := m.Get(1)
	require.True(t, ok)
	assert.Equal(t, KindLogin, conv.Kind)
	assert.Equal(t, StepAwaitingUsername, conv.Step)
	assert.Empty(t, conv.Username, "restart discards collected fields")
}

func TestSetUsernameAdvancesToPassword(t *testing.T) {
	m := NewMemoryManager()
	m.Begin(1, KindLogin)
	m.SetUsername(1, "bob")

	conv, ok := m.Get(1)
	require.True(t, ok)
	assert.Equal(t, "bob", conv.Username)
	assert.Equal(t, StepAwaitingPassword, conv.Step)
}

func TestSetUsernameWithoutPendingIsNoop(t *testing.T) {
	m := NewMemoryManager()
	m.SetUsername(9, "ghost")
	assert.False(t, m.InProgress(9))
}

func TestClearTerminatesDialogue(t *testing.T) {
	m := NewMemoryManager()
	m.Begin(1, KindSignup)
	m.Clear(1)

	assert.False(t, m.InProgress(1))
	_, ok := m.Get(1)
	assert.False(t, ok)
}

func TestSendersAreIsolated(t *testing.T) {
	m := NewMemoryManager()
	m.Begin(1, KindSignup)
	m.Begin(2, KindLogin)
	m.SetUsername(1, "alice")

	c1, _ := m.Get(1)
	c2, _ := m.Get(2)
	assert.Equal(t, KindSignup, c1.Kind)
	assert.Equal(t, StepAwaitingPassword, c1.Step)
	assert.Equal(t, KindLogin, c2.Kind)
	assert.Equal(t, StepAwaitingUsername, c2.Step)
}

func TestConcurrentAccess(t *testing.T) {
	m := NewMemoryManager()
	var wg sync.WaitGroup
	for i := int64(0); i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			m.Begin(id, KindSignup)
			m.SetUsername(id, "user")
			m.InProgress(id)
			m.Clear(id)
		}(i)
	}
	wg.Wait()
}
