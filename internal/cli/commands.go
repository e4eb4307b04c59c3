package cli

import (
	"github.com/spf13/cobra"

	"github.com/backmassage/fltools/internal/config"
	"github.com/backmassage/fltools/internal/display"
	"github.com/backmassage/fltools/internal/dupes"
	"github.com/backmassage/fltools/internal/hasher"
	"github.com/backmassage/fltools/internal/organize"
	"github.com/backmassage/fltools/internal/rename"
	"github.com/backmassage/fltools/internal/search"
)

func (a *App) organizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "organize <source> <destination>",
		Short: "Move files into folders named after their extension",
		Long: `Moves every file directly inside <source> to <destination>/<ext>/.
Subdirectories are left alone. Files without an extension go to the
--noext-dir folder.`,
		Args: cobra.ExactArgs(2),
		RunE: a.runOrganize,
	}
	config.BindMoveFlags(cmd.Flags(), &a.cfg)
	config.BindNoExtFlag(cmd.Flags(), &a.cfg)
	config.BindFormatFlag(cmd.Flags(), &a.cfg)
	return cmd
}

func (a *App) runOrganize(cmd *cobra.Command, args []string) error {
	src, err := dirArg(a.FS, args[0])
	if err != nil {
		return err
	}
	dst, err := dirArg(a.FS, args[1])
	if err != nil {
		return err
	}
	if a.cfg.DryRun {
		a.log.Warn("DRY RUN")
	}

	res, err := organize.Organize(a.FS, src, dst, organize.Options{
		NoExtDir:  a.cfg.NoExtDir,
		Collision: a.cfg.Collision,
		DryRun:    a.cfg.DryRun,
		Logger:    a.log.Zap(),
	})
	if err != nil {
		return err
	}
	for _, s := range res.Skipped {
		if s.Reason != organize.ReasonNoExtension {
			a.warn()
		}
	}
	return display.Organize(a.Out, a.cfg.Format, res, a.cfg.DryRun)
}

func (a *App) searchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <dir> <ext>...",
		Short: "List files whose names end with one of the given extensions",
		Long: `Walks <dir> recursively and prints every file whose name ends with
one of <ext>, ignoring case. "txt" and ".txt" both match notes.txt.`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runSearch,
	}
	config.BindFormatFlag(cmd.Flags(), &a.cfg)
	return cmd
}

func (a *App) runSearch(cmd *cobra.Command, args []string) error {
	root, err := dirArg(a.FS, args[0])
	if err != nil {
		return err
	}
	res, err := search.Search(a.FS, root, args[1:], search.Options{Logger: a.log.Zap()})
	if err != nil {
		return err
	}
	if len(res.Warnings) > 0 {
		a.warn()
	}
	return display.Search(a.Out, a.cfg.Format, res)
}

func (a *App) hashCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash <file>...",
		Short: "Print the digest of each file",
		Args:  cobra.MinimumNArgs(1),
		RunE:  a.runHash,
	}
	config.BindHashFlags(cmd.Flags(), &a.cfg)
	config.BindFormatFlag(cmd.Flags(), &a.cfg)
	return cmd
}

// runHash hashes every argument; a file that fails is logged and the
// remaining files are still hashed.
func (a *App) runHash(cmd *cobra.Command, args []string) error {
	digests := make([]display.Digest, 0, len(args))
	for _, arg := range args {
		path, err := fileArg(a.FS, arg)
		if err == nil {
			var sum string
			sum, err = hasher.HashFile(a.FS, path, a.cfg.BlockSize, a.cfg.Algorithm)
			if err == nil {
				digests = append(digests, display.Digest{Path: arg, Algorithm: a.cfg.Algorithm, Digest: sum})
				continue
			}
		}
		a.log.Error("%v", err)
		a.fail()
	}
	return display.Digests(a.Out, a.cfg.Format, digests)
}

func (a *App) dupesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dupes <dir>",
		Short: "Find files with identical content",
		Long: `Walks <dir> recursively and groups files by content digest. Only
files sharing a size with another file are hashed.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runDupes,
	}
	config.BindHashFlags(cmd.Flags(), &a.cfg)
	config.BindWorkerFlags(cmd.Flags(), &a.cfg)
	config.BindFormatFlag(cmd.Flags(), &a.cfg)
	return cmd
}

func (a *App) runDupes(cmd *cobra.Command, args []string) error {
	root, err := dirArg(a.FS, args[0])
	if err != nil {
		return err
	}
	res, err := dupes.Find(cmd.Context(), a.FS, root, dupes.Options{
		Algorithm: a.cfg.Algorithm,
		BlockSize: a.cfg.BlockSize,
		Workers:   a.cfg.Workers,
		Logger:    a.log.Zap(),
	})
	if err != nil {
		return err
	}
	if len(res.Warnings) > 0 {
		a.warn()
	}
	a.log.Debug("Hashed %d of %d files", res.Hashed, res.Scanned)
	return display.Dupes(a.Out, a.cfg.Format, res)
}

func (a *App) renameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <dir> <pattern>",
		Short: "Rename files to the first capture group of a regular expression",
		Long: `Matches every file directly inside <dir> against <pattern>, anchored
at the start of the name, and renames matches to capture group 1.

Example:
  fltools rename ./reports 'report_(\d+)\.txt'   # report_001.txt -> 001`,
		Args: cobra.ExactArgs(2),
		RunE: a.runRename,
	}
	config.BindMoveFlags(cmd.Flags(), &a.cfg)
	config.BindFormatFlag(cmd.Flags(), &a.cfg)
	return cmd
}

func (a *App) runRename(cmd *cobra.Command, args []string) error {
	dir, err := dirArg(a.FS, args[0])
	if err != nil {
		return err
	}
	if a.cfg.DryRun {
		a.log.Warn("DRY RUN")
	}

	res, err := rename.Rename(a.FS, dir, args[1], rename.Options{
		Collision: a.cfg.Collision,
		DryRun:    a.cfg.DryRun,
		Logger:    a.log.Zap(),
	})
	if err != nil {
		return err
	}
	if len(res.Skipped) > 0 {
		a.warn()
	}
	return display.Rename(a.Out, a.cfg.Format, res, a.cfg.DryRun)
}

func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			display.PrintBanner(a.Out, a.Version, a.Commit)
		},
	}
}
