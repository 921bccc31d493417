package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvwi/stasher/internal/ui"
	"github.com/mvwi/stasher/internal/wip"
)

// Version is set at build time via -ldflags.
var Version = "dev"

const longHelp = `stasher - sync work in progress between machines

Moves uncommitted changes through a disposable <branch>_wip branch on
your git remote. The WIP branch is force-overwritten on every run.

  stasher up      stash local changes, commit them to <branch>_wip,
                  force-push it, switch back to <branch>
  stasher down    fetch <branch>_wip from the remote, uncommit it,
                  switch back to <branch> with the changes unstaged

Configuration:
  ~/.config/stasher/config.toml (top level and [repos.<name>] sections)
  and .stasher.toml in the repository root. Flags override both.`

// flags holds command-line overrides. Zero values mean "not given".
type flags struct {
	dir       string
	remote    string
	suffix    string
	skipCheck bool
	noRestore bool
	dryRun    bool
	quiet     bool
	fetch     bool
}

func newRootCmd(a *app) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:       "stasher <up|down>",
		Short:     "Sync uncommitted work between machines through a git remote",
		Long:      longHelp,
		ValidArgs: wip.Directions(),
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs)(cmd, args); err != nil {
				return &usageError{err: err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := wip.ParseDirection(args[0])
			if err != nil {
				return &usageError{err: err}
			}
			return a.run(cmd, dir, f)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}

	cmd.SetVersionTemplate("stasher version {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	fl := cmd.Flags()
	fl.StringVarP(&f.dir, "dir", "C", "", "run as if started in `path`")
	fl.StringVar(&f.remote, "remote", "", "remote to push to and pull from (default from config, else origin)")
	fl.StringVar(&f.suffix, "suffix", "", "WIP branch suffix (default from config, else _wip)")
	fl.BoolVar(&f.skipCheck, "skip-check", false, "down: do not require a clean, up-to-date branch")
	fl.BoolVar(&f.noRestore, "no-restore", false, "up: leave local changes in the stash instead of re-applying them")
	fl.BoolVar(&f.fetch, "fetch", false, "down: fetch the remote before checking the branch is up to date")
	fl.BoolVar(&f.dryRun, "dry-run", false, "print the git commands without running them")
	fl.BoolVarP(&f.quiet, "quiet", "q", false, "do not echo git commands")

	return cmd
}

// Execute runs the root command and returns the process exit status.
func Execute() int {
	root := newRootCmd(defaultApp())
	err := root.Execute()
	if err == nil {
		return exitOK
	}

	stderr := root.ErrOrStderr()
	ui.Error(stderr, "%v", err)
	if isUsageError(err) {
		fmt.Fprint(stderr, root.UsageString())
	}
	return exitCode(err)
}
