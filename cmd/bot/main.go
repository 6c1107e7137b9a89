package main

import (
	"log"

	"mediabot/bot/app"
	"mediabot/core/cmd"
)

func main() {
	err := cmd.Run(cmd.Options{
		DefaultConfigPath: "configs/config.yaml",
		LoadConfig: func(path string) (cmd.ConfigCarrier, error) {
			return app.LoadConfig(path)
		},
		Bootstrap: func(cfg cmd.ConfigCarrier) (cmd.TelegramApp, error) {
			return app.Bootstrap(cfg.(*app.AppConfig))
		},
	})
	if err != nil {
		log.Fatalf("bot exited with error: %v", err)
	}
}
