package state

import tele "gopkg.in/telebot.v4"

var phaseHandlers = map[Phase]tele.HandlerFunc{}

// RegisterHandler associates a dialogue phase with its step handler.
func RegisterHandler(kind Kind, step Step, h tele.HandlerFunc) {
	if h == nil {
		return
	}
	phaseHandlers[Phase{Kind: kind, Step: step}] = h
}
