package state

import (
	"sync"

	"mediabot/core/logger"
	tghelpers "mediabot/core/telegram/helpers"

	"log/slog"

	tele "gopkg.in/telebot.v4"
)

type memoryManager struct {
	mu            sync.RWMutex
	conversations map[int64]Conversation
}

// NewMemoryManager constructs an in-memory Manager implementation.
func NewMemoryManager() Manager {
	return &memoryManager{
		conversations: make(map[int64]Conversation),
	}
}

// Begin starts (or restarts) a dialogue for a sender at the username step.
func (m *memoryManager) Begin(userID int64, kind Kind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conversations[userID] = Conversation{Kind: kind, Step: StepAwaitingUsername}
}

// Get returns a copy of the pending conversation for a sender.
func (m *memoryManager) Get(userID int64) (Conversation, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	conv, ok := m.conversations[userID]
	return conv, ok
}

// SetUsername stores the collected username and advances to the password step.
func (m *memoryManager) SetUsername(userID int64, username string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conv, ok := m.conversations[userID]
	if !ok {
		return
	}
	conv.Username = username
	conv.Step = StepAwaitingPassword
	m.conversations[userID] = conv
}

// Clear removes the pending conversation for a sender.
func (m *memoryManager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.conversations, userID)
}

// InProgress reports whether the sender currently has a pending conversation.
func (m *memoryManager) InProgress(userID int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.conversations[userID]
	return ok
}

// HandleActive executes the handler registered for the sender's current
// phase, if any. Unknown phases drop the pending record so the sender is
// never stuck in a state nothing can advance.
func (m *memoryManager) HandleActive(c tele.Context) error {
	userID := c.Sender().ID
	conv, ok := m.Get(userID)
	if !ok {
		return nil
	}

	ctx := tghelpers.BuildContext(c)
	logger.Debug(ctx, "tg", "fsm.step",
		slog.Int64("user_id", userID),
		slog.String("kind", string(conv.Kind)),
		slog.String("step", string(conv.Step)),
	)

	if handler, registered := phaseHandlers[conv.Phase()]; registered {
		return handler(c)
	}

	logger.Warn(ctx, "tg", "fsm.unhandled",
		slog.Int64("user_id", userID),
		slog.String("kind", string(conv.Kind)),
		slog.String("step", string(conv.Step)),
	)
	m.Clear(userID)
	return nil
}
