package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/lightsave/internal/app"
	"github.com/dmitrymomot/lightsave/pkg/config"
	"github.com/dmitrymomot/lightsave/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg app.Config
	if err := config.Load(&cfg); err != nil {
		// The logger depends on config, so this one goes to stderr directly.
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := app.NewLogger(cfg)

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize application", logger.Error(err))
		os.Exit(1)
	}

	if err := a.Run(ctx); err != nil {
		log.Error("application stopped with error", logger.Error(err))
		stop()
		os.Exit(1)
	}
}
