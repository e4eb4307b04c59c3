// Package cli wires the fltools operations into a cobra command tree.
//
// Each invocation builds a fresh tree around an [App], which carries the
// resolved configuration, the logger and the filesystem. Exit status is
// 0 on success, 1 on error and 2 when the run finished but skipped files or
// hit per-file warnings.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/spf13/cobra"

	"github.com/backmassage/fltools/internal/config"
	"github.com/backmassage/fltools/internal/fsys"
	"github.com/backmassage/fltools/internal/logging"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitError    = 1
	ExitWarnings = 2
)

// App holds the state shared by all subcommands of one invocation.
type App struct {
	Version string
	Commit  string

	// FS is the filesystem operations run against. Defaults to the local disk.
	FS billy.Filesystem
	// Out receives results; logs go through the logger.
	Out io.Writer

	cfg    config.Config
	neg    config.NegatedFlags
	log    *logging.Logger
	status int
}

// NewApp returns an App bound to the local filesystem and stdout.
func NewApp(version, commit string) *App {
	return &App{
		Version: version,
		Commit:  commit,
		FS:      fsys.NewLocal(),
		Out:     os.Stdout,
		cfg:     config.DefaultConfig(),
	}
}

// Command builds the root command and its subcommands.
func (a *App) Command() *cobra.Command {
	root := &cobra.Command{
		Use:   "fltools",
		Short: "File management utilities",
		Long: `fltools organizes, searches, hashes, deduplicates and renames files.

Examples:
  fltools organize ~/Downloads ~/Sorted
  fltools search ./docs md txt
  fltools hash --algorithm blake2b image.iso
  fltools dupes --format json ~/Pictures
  fltools rename ./reports 'report_(\d+)\.txt'`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	config.BindGlobalFlags(root.PersistentFlags(), &a.cfg, &a.neg)

	root.AddCommand(
		a.organizeCommand(),
		a.searchCommand(),
		a.hashCommand(),
		a.dupesCommand(),
		a.renameCommand(),
		a.versionCommand(),
	)
	return root
}

// setup finishes configuration once flags are parsed and opens the logger.
func (a *App) setup(cmd *cobra.Command, _ []string) error {
	if err := config.Resolve(cmd.Flags(), &a.cfg, &a.neg); err != nil {
		return err
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	log, err := logging.NewLogger(&a.cfg)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	a.log = log
	if a.cfg.ConfigFile != "" {
		a.log.Debug("Config: %s", a.cfg.ConfigFile)
	}
	return nil
}

// Run executes the command tree with args and returns the exit status.
// SIGINT and SIGTERM cancel ctx for operations that honor it.
func (a *App) Run(ctx context.Context, args []string) int {
	root := a.Command()
	root.SetArgs(args)
	root.SetOut(a.Out)

	err := root.ExecuteContext(ctx)
	if a.log != nil {
		defer a.log.Close()
	}
	if err != nil {
		if a.log != nil {
			a.log.Error("%v", err)
		} else {
			fmt.Fprintf(os.Stderr, "fltools: %v\n", err)
		}
		return ExitError
	}
	return a.status
}

// warn records that the run completed with warnings or skips. An error
// already recorded takes precedence.
func (a *App) warn() {
	if a.status == ExitOK {
		a.status = ExitWarnings
	}
}

// fail records an error that did not stop the run.
func (a *App) fail() {
	a.status = ExitError
}
