// Command patchworkctl drives a Patchwork layout from the terminal.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/piwi3910/patchwork/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli.SetVersion(version, commit, date)
	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
