package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/vibecart/internal/client/cli"
	"github.com/dmitrijs2005/vibecart/internal/client/config"
	"github.com/dmitrijs2005/vibecart/internal/logging"
)

func main() {

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	ctx := context.Background()
	app, err := cli.NewApp(ctx, cfg, logger, os.Stdin, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
