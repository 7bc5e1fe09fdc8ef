package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pranshuparmar/renderwatch/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// cobra has already printed the error.
	if err := app.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
