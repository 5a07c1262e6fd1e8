package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/cakeinvoice/internal/buildinfo"
	"github.com/dmitrijs2005/cakeinvoice/internal/client/cli"
	"github.com/dmitrijs2005/cakeinvoice/internal/client/config"
	"github.com/dmitrijs2005/cakeinvoice/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(logging.Options{
		Backend: cfg.LogBackend,
		Format:  cfg.LogFormat,
		Level:   cfg.LogLevel,
		Output:  os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

	if err := app.Close(); err != nil {
		logger.Error(ctx, "shutdown", "err", err)
	}
}
