package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/javiermolinar/marathon/internal/config"
	"github.com/javiermolinar/marathon/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Ctrl+C stops a running search.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return ui.NewApp(cfg).ExecuteContext(ctx)
}
