package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/reddot/reddot-client/internal/client/cli"
	"github.com/reddot/reddot-client/internal/client/config"
	"github.com/reddot/reddot-client/internal/logging"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	logger, err := logging.NewZap(cfg.Environment)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	app, err := cli.NewApp(ctx, cfg, logger, os.Stdin, os.Stdout)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
