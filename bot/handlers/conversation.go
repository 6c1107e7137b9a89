package handlers

import (
	tele "gopkg.in/telebot.v4"

	"mediabot/core/telegram/helpers"
	"mediabot/core/telegram/state"
)

// registerSteps installs the four dialogue phases. Any text is accepted
// as a username or password; validation happens in the service.
func (h *Handlers) registerSteps() {
	state.RegisterHandler(state.KindSignup, state.StepAwaitingUsername, h.signupUsername)
	state.RegisterHandler(state.KindSignup, state.StepAwaitingPassword, h.signupPassword)
	state.RegisterHandler(state.KindLogin, state.StepAwaitingUsername, h.loginUsername)
	state.RegisterHandler(state.KindLogin, state.StepAwaitingPassword, h.loginPassword)
}

func (h *Handlers) signupUsername(c tele.Context) error {
	h.conv.SetUsername(c.Sender().ID, c.Text())
	return helpers.SendText(c, msgAskPassword)
}

// signupPassword resolves the signup dialogue. The pending record is
// cleared before the service call so a failed attempt never leaves the
// sender stuck mid-dialogue.
func (h *Handlers) signupPassword(c tele.Context) error {
	senderID := c.Sender().ID
	conv, ok := h.conv.Get(senderID)
	h.conv.Clear(senderID)
	if !ok {
		return nil
	}
	err := h.users.Signup(helpers.BuildContext(c), senderID, conv.Username, c.Text())
	if err != nil {
		return helpers.SendText(c, replyForAuthError(err))
	}
	return helpers.SendText(c, msgSignupOK)
}

func (h *Handlers) loginUsername(c tele.Context) error {
	h.conv.SetUsername(c.Sender().ID, c.Text())
	return helpers.SendText(c, msgAskLoginPassword)
}

func (h *Handlers) loginPassword(c tele.Context) error {
	senderID := c.Sender().ID
	conv, ok := h.conv.Get(senderID)
	h.conv.Clear(senderID)
	if !ok {
		return nil
	}
	err := h.users.Login(helpers.BuildContext(c), conv.Username, c.Text())
	if err != nil {
		return helpers.SendText(c, replyForAuthError(err))
	}
	return helpers.SendText(c, msgLoginOK)
}
