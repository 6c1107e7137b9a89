package router

import (
	"context"

	"mediabot/core/logger"
	tg "mediabot/core/telegram"
	"mediabot/core/telegram/middleware"

	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// CommandRoutes prepares command handlers wrapped with shared middleware.
// Command endpoints match before OnText, so each handler first yields to
// a pending conversation: a collected field may itself look like a command.
func CommandRoutes(reg *tg.Registry, fsmMgr FSM) []tg.Route {
	if reg == nil {
		return nil
	}

	routes := make([]tg.Route, 0, len(reg.Commands()))
	for cmd, def := range reg.Commands() {
		h := preferActiveConversation(fsmMgr, def.Handler)
		h = middleware.RecoverMiddleware(h)
		h = middleware.LoggerMiddleware(h)
		routes = append(routes, tg.Route{
			Endpoint: cmd,
			Handler:  h,
		})
	}

	logger.LogEvent(context.Background(), logger.TWire, slog.LevelInfo, "routes.commands",
		slog.Int("commands", len(reg.Commands())),
	)

	return routes
}

func preferActiveConversation(fsmMgr FSM, next tele.HandlerFunc) tele.HandlerFunc {
	if fsmMgr == nil {
		return next
	}
	return func(c tele.Context) error {
		if sender := c.Sender(); sender != nil && fsmMgr.InProgress(sender.ID) {
			return fsmMgr.HandleActive(c)
		}
		return next(c)
	}
}
