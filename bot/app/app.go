// Package app assembles the media bot: storage, user service,
// conversation manager, handlers and the Telegram runtime options.
package app

import (
	"context"

	"github.com/jmoiron/sqlx"

	"mediabot/bot/handlers"
	"mediabot/bot/service"
	"mediabot/bot/storage/postgres"
	"mediabot/core/bootstrap"
	"mediabot/core/health"
	coretelegram "mediabot/core/telegram"
	"mediabot/core/telegram/router"
	"mediabot/core/telegram/state"
)

// App is the running application with its infrastructure handles.
type App struct {
	cfg      *AppConfig
	db       *sqlx.DB
	health   *health.Server
	registry *coretelegram.Registry
	routes   []coretelegram.Route
}

// Bootstrap initializes infrastructure and wires the bot flows.
func Bootstrap(cfg *AppConfig) (*App, error) {
	res, err := bootstrap.Run(bootstrap.Options{
		Config:   &cfg.Core,
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	repo := postgres.NewUserRepository(res.DB)
	users := service.NewUserService(repo)
	conv := state.NewMemoryManager()
	h := handlers.New(users, conv, cfg.Core.Media.ImageURL, cfg.Core.Media.AudioPath)

	reg := coretelegram.NewRegistry()
	h.Register(reg)

	a := &App{
		cfg:      cfg,
		db:       res.DB,
		health:   res.Health,
		registry: reg,
	}
	a.wireRoutes(conv)
	return a, nil
}

func (a *App) wireRoutes(conv router.FSM) {
	a.routes = append(a.routes, router.CommandRoutes(a.registry, conv)...)
	a.routes = append(a.routes, router.TextRoutes(conv, a.registry, router.TextOptions{})...)
}

// TelegramRunOptions satisfies cmd.TelegramApp.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	return coretelegram.RunOptions{
		Config:      &a.cfg.Core,
		Registry:    a.registry,
		Middlewares: coretelegram.DefaultMiddlewares(),
		Routes:      a.routes,
		OnStop: func(ctx context.Context, _ coretelegram.Runtime) error {
			if a.health != nil {
				_ = a.health.Shutdown(ctx)
			}
			return a.db.Close()
		},
	}, nil
}
