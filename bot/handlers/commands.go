// Package handlers wires the bot commands and dialogue steps to the
// user service and the conversation manager.
package handlers

import (
	"context"
	"errors"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"mediabot/bot/domain"
	"mediabot/core/logger"
	"mediabot/core/telegram"
	"mediabot/core/telegram/commands"
	"mediabot/core/telegram/helpers"
	"mediabot/core/telegram/state"
)

// UserService is the account surface the handlers need.
type UserService interface {
	Signup(ctx context.Context, telegramID int64, username, password string) error
	Login(ctx context.Context, username, password string) error
	IsLoggedIn(ctx context.Context, telegramID int64) (bool, error)
}

// Handlers owns every user-facing flow of the bot.
type Handlers struct {
	users     UserService
	conv      state.Manager
	imageURL  string
	audioPath string
}

func New(users UserService, conv state.Manager, imageURL, audioPath string) *Handlers {
	h := &Handlers{users: users, conv: conv, imageURL: imageURL, audioPath: audioPath}
	h.registerSteps()
	return h
}

// Register installs the command set into the registry.
func (h *Handlers) Register(reg *telegram.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.Start,
		Description: "Show the welcome message",
	})
	reg.RegisterCommand("/signup", commands.Command{
		Handler:     h.Signup,
		Description: "Create a new account",
	})
	reg.RegisterCommand("/login", commands.Command{
		Handler:     h.Login,
		Description: "Log in to your account",
	})
	reg.RegisterCommand("/image", commands.Command{
		Handler:     h.Image,
		Description: "Receive an image (login required)",
	})
	reg.RegisterCommand("/music", commands.Command{
		Handler:     h.Music,
		Description: "Receive a music file (login required)",
	})
}

func (h *Handlers) Start(c tele.Context) error {
	return helpers.SendText(c, msgWelcome)
}

// Signup starts the signup dialogue. A pending dialogue of either kind
// is replaced: the last command wins.
func (h *Handlers) Signup(c tele.Context) error {
	h.conv.Begin(c.Sender().ID, state.KindSignup)
	return helpers.SendText(c, msgAskUsername)
}

// Login starts the login dialogue.
func (h *Handlers) Login(c tele.Context) error {
	h.conv.Begin(c.Sender().ID, state.KindLogin)
	return helpers.SendText(c, msgAskLoginUsername)
}

// Image sends a photo to logged-in senders.
func (h *Handlers) Image(c tele.Context) error {
	if ok, err := h.requireLogin(c); !ok {
		return err
	}
	if err := helpers.SendPhoto(c, h.imageURL); err != nil {
		logger.Error(helpers.BuildContext(c), "handlers", "image.send_failed",
			slog.String("error", err.Error()))
		return helpers.SendText(c, msgSendFailed)
	}
	return nil
}

// Music sends an audio file to logged-in senders.
func (h *Handlers) Music(c tele.Context) error {
	if ok, err := h.requireLogin(c); !ok {
		return err
	}
	if err := helpers.SendAudio(c, h.audioPath); err != nil {
		logger.Error(helpers.BuildContext(c), "handlers", "music.send_failed",
			slog.String("error", err.Error()))
		return helpers.SendText(c, msgSendFailed)
	}
	return nil
}

// requireLogin answers the sender itself when the gate fails; the
// returned error is only the reply delivery error, if any.
func (h *Handlers) requireLogin(c tele.Context) (bool, error) {
	ctx := helpers.BuildContext(c)
	ok, err := h.users.IsLoggedIn(ctx, c.Sender().ID)
	if err != nil {
		return false, helpers.SendText(c, msgServerError)
	}
	if !ok {
		return false, helpers.SendText(c, msgNotLoggedIn)
	}
	return true, nil
}

// replyForAuthError maps service errors to user-facing texts.
func replyForAuthError(err error) string {
	switch {
	case errors.Is(err, domain.ErrUsernameTaken):
		return msgUsernameTaken
	case errors.Is(err, domain.ErrInvalidCredentials):
		return msgBadCredential
	default:
		return msgServerError
	}
}
