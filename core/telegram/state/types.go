package state

import tele "gopkg.in/telebot.v4"

// Kind identifies which multi-step dialogue a sender is in.
type Kind string

const (
	// KindSignup collects credentials for a new account.
	KindSignup Kind = "signup"
	// KindLogin collects credentials for an existing account.
	KindLogin Kind = "login"
)

// Step identifies the current position inside a dialogue.
type Step string

const (
	// StepAwaitingUsername waits for the first field of either dialogue.
	StepAwaitingUsername Step = "awaiting_username"
	// StepAwaitingPassword waits for the final field; the next message
	// resolves the dialogue and clears the pending record.
	StepAwaitingPassword Step = "awaiting_password"
)

// Phase keys a step handler: the same step shape exists once per kind.
type Phase struct {
	Kind Kind
	Step Step
}

// Conversation is the pending dialogue record for one sender.
type Conversation struct {
	Kind     Kind
	Step     Step
	Username string
}

// Phase returns the handler key for the conversation's current position.
func (c Conversation) Phase() Phase {
	return Phase{Kind: c.Kind, Step: c.Step}
}

// Manager orchestrates pending conversations and dispatches step handlers.
type Manager interface {
	// Begin starts a dialogue of the given kind at the username step.
	// Any previously pending conversation for the sender is replaced:
	// the last dialogue command wins.
	Begin(userID int64, kind Kind)
	// Get returns the pending conversation, if any.
	Get(userID int64) (Conversation, bool)
	// SetUsername records the collected username and advances to the
	// password step. No-op when nothing is pending.
	SetUsername(userID int64, username string)
	// Clear removes the pending conversation regardless of its step.
	Clear(userID int64)

	InProgress(userID int64) bool
	HandleActive(c tele.Context) error
}
