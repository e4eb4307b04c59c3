// Command fltools is the entrypoint for the fltools file utilities CLI.
// It builds the command tree, runs it under a signal-aware context and
// exits with the status the command reported.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/fltools/internal/cli"
)

// version and commit are set at build time via -ldflags (e.g. Makefile).
var (
	version = "0.1.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp(version, commit)
	return app.Run(ctx, os.Args[1:])
}
