package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/blockdrop/internal/cli"
)

func main() {
	// Cancel running games on Ctrl-C
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
