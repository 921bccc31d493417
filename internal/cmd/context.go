package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mvwi/stasher/internal/config"
	"github.com/mvwi/stasher/internal/git"
	"github.com/mvwi/stasher/internal/ui"
	"github.com/mvwi/stasher/internal/wip"
)

// repository is the git collaborator a run drives.
type repository interface {
	wip.Git
	Fetch(remote string) error
}

// repoOptions configures the repository handle for one run.
type repoOptions struct {
	Stdout io.Writer
	Stderr io.Writer
	Echo   func(args []string)
	DryRun bool
}

// app wires the command to a git implementation. Tests swap both funcs.
type app struct {
	// locate returns the repository root containing dir.
	locate func(dir string) (string, error)
	// open returns the handle steps run against.
	open func(dir string, o repoOptions) repository
}

func defaultApp() *app {
	return &app{
		locate: func(dir string) (string, error) {
			return git.Open(dir).TopLevel()
		},
		open: func(dir string, o repoOptions) repository {
			return &git.Repo{
				Dir:    dir,
				Stdout: o.Stdout,
				Stderr: o.Stderr,
				Echo:   o.Echo,
				DryRun: o.DryRun,
			}
		},
	}
}

// runContext holds the resolved repo root and effective settings.
type runContext struct {
	Root    string
	Options wip.Options
	Echo    bool
	Fetch   bool
}

// newContext resolves config for the repository containing dir and applies
// command-line overrides on top.
func (a *app) newContext(cmd *cobra.Command, f flags) (*runContext, error) {
	root, err := a.locate(f.dir)
	if err != nil {
		return nil, fmt.Errorf("not inside a git repository: %w", err)
	}

	cfg, err := config.Load(root, filepath.Base(root))
	if err != nil {
		return nil, err
	}

	opts := cfg.Options()
	changed := cmd.Flags().Changed
	if changed("remote") {
		opts.Remote = f.remote
	}
	if changed("suffix") {
		opts.Suffix = f.suffix
	}
	if f.skipCheck {
		opts.CheckClean = false
	}
	if f.noRestore {
		opts.Restore = false
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &runContext{
		Root:    root,
		Options: opts,
		Echo:    cfg.EchoEnabled() && !f.quiet,
		Fetch:   cfg.FetchEnabled() || f.fetch,
	}, nil
}

func (a *app) run(cmd *cobra.Command, dir wip.Direction, f flags) error {
	ctx, err := a.newContext(cmd, f)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	ro := repoOptions{
		Stdout: out,
		Stderr: cmd.ErrOrStderr(),
		DryRun: f.dryRun,
	}
	if ctx.Echo || f.dryRun {
		ro.Echo = ui.Echo(out)
	}
	repo := a.open(ctx.Root, ro)

	if dir == wip.Down && ctx.Options.CheckClean && ctx.Fetch {
		if err := fetch(out, repo, ctx.Options.Remote); err != nil {
			return err
		}
	}

	if err := wip.New(repo, ctx.Options).Run(dir); err != nil {
		return err
	}

	if f.dryRun {
		ui.Warn(out, "Dry run: no changes were made")
		return nil
	}
	switch dir {
	case wip.Up:
		ui.Success(out, "Work in progress pushed to %s", ctx.Options.Remote)
		ui.Info(out, "Run %s on the other machine to pick it up", ui.Cyan("stasher down"))
	case wip.Down:
		ui.Success(out, "Work in progress restored as uncommitted changes")
	}
	return nil
}

// fetch refreshes remote-tracking refs so the up-to-date check is current.
func fetch(out io.Writer, repo repository, remote string) error {
	if ui.IsTTY() {
		s := ui.NewSpinner(out, "Fetching "+remote+"...")
		defer s.Stop()
	}
	if err := repo.Fetch(remote); err != nil {
		return fmt.Errorf("fetching %s: %w", remote, err)
	}
	return nil
}
