package main

import (
	"fmt"
	"os"

	"Brandi/config"
	"Brandi/pkg/log"
	"Brandi/pkg/server"
	"Brandi/pkg/snowflake"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	// .env 不存在时忽略
	_ = godotenv.Load()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	path := fmt.Sprintf("configs/config.%s.yaml", env)
	cfg := config.New(path)

	if cfg.App != nil {
		log.Init(cfg.App.LogFile, cfg.App.Debug)
		if err := snowflake.Init(cfg.App.NodeID); err != nil {
			log.L.Fatal("init snowflake", zap.Int64("node_id", cfg.App.NodeID), zap.Error(err))
		}
	}

	cliApp := &cli.App{
		Name: "api-server",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start http server",
				Action: func(ctx *cli.Context) error {
					return server.Run(ctx, InitServer(cfg))
				},
			},
			{
				Name:  "migrate",
				Usage: "create or update tables and seed order statuses",
				Action: func(ctx *cli.Context) error {
					return migrate(cfg)
				},
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("api-server exited", zap.Error(err))
	}
}
