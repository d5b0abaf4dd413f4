package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vytor/flashquiz/internal/cli"
	"github.com/vytor/flashquiz/internal/client"
	"github.com/vytor/flashquiz/internal/config"
	"github.com/vytor/flashquiz/internal/logger"
)

func main() {
	cfg := config.Load()

	// Logs go to stderr so they never interleave with quiz output.
	log := logger.New(
		logger.WithOutput(os.Stderr),
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithJSON(cfg.LogFormat == "json"),
	)
	logger.SetDefault(log)
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.NewContext(ctx, log)

	api := client.New(cfg.APIURL,
		client.WithTimeout(cfg.ClientTimeout),
		client.WithUserID(cfg.DefaultUserID),
	)
	app := &cli.App{
		Decks:   api,
		Cards:   api,
		UserID:  cfg.DefaultUserID,
		In:      os.Stdin,
		Out:     os.Stdout,
		SaveDir: ".",
	}

	if err := app.Run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, cli.ErrUsage) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
