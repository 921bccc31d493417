// Package wip moves uncommitted work between machines through a disposable
// "<branch>_wip" branch on a git remote.
//
// Up stashes the working tree, commits it onto the WIP branch and
// force-pushes it. Down recreates the WIP branch from the remote and
// uncommits its tip onto the original branch. Each operation is a fixed
// sequence of git steps run one after another; the first failure stops the
// sequence and nothing is rolled back.
package wip

import (
	"fmt"
	"time"

	"github.com/mvwi/stasher/internal/git"
)

// Git is the subset of git a Driver needs. *git.Repo implements it.
type Git interface {
	CurrentBranch() (string, error)
	HasChanges() (bool, error)
	Sync() (git.SyncStatus, error)

	StashPush(message string) error
	StashApply() error
	DeleteBranch(name string) error
	SwitchCreate(name string, force bool) error
	Switch(name string) error
	AddAll() error
	CommitNoVerify(message string) error
	PushForce(remote, branch string) error
	Pull(remote, branch string) error
	Uncommit() error
}

// Direction selects which sequence a run performs.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Directions lists every accepted direction, in help order.
func Directions() []string {
	return []string{string(Up), string(Down)}
}

// ParseDirection validates s as a Direction.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Up, Down:
		return Direction(s), nil
	}
	return "", fmt.Errorf("invalid direction %q (choose from up, down)", s)
}

// stashTimeLayout renders like a Python datetime so labels stay sortable.
const stashTimeLayout = "2006-01-02 15:04:05.000000"

// Driver runs the up and down sequences against one repository.
type Driver struct {
	Git     Git
	Options Options

	// Now stamps stash labels. Defaults to time.Now.
	Now func() time.Time
}

// New returns a Driver using opts.
func New(g Git, opts Options) *Driver {
	return &Driver{Git: g, Options: opts, Now: time.Now}
}

// Run performs the sequence for dir.
func (d *Driver) Run(dir Direction) error {
	switch dir {
	case Up:
		return d.Up()
	case Down:
		return d.Down()
	}
	return fmt.Errorf("invalid direction %q", dir)
}

// step is one mutating git call in a sequence.
type step struct {
	name string
	run  func() error
}

func runSteps(steps []step) error {
	for _, s := range steps {
		if err := s.run(); err != nil {
			return &StepError{Step: s.name, Err: err}
		}
	}
	return nil
}

// Up saves local changes to the remote WIP branch.
func (d *Driver) Up() error {
	if err := d.Options.Validate(); err != nil {
		return err
	}

	branch, err := d.currentBranch()
	if err != nil {
		return err
	}

	dirty, err := d.Git.HasChanges()
	if err != nil {
		return fmt.Errorf("checking for local changes: %w", err)
	}
	if !dirty {
		return ErrNothingToStash
	}

	wipBranch := d.Options.WIPBranch(branch)
	label := d.stashLabel()

	steps := []step{
		{"git stash push", func() error { return d.Git.StashPush(label) }},
	}
	steps = append(steps, d.resetSteps(wipBranch)...)
	steps = append(steps,
		step{"git stash apply", d.Git.StashApply},
		step{"git add", d.Git.AddAll},
		step{"git commit", func() error { return d.Git.CommitNoVerify(d.Options.CommitMessage) }},
		step{"git push", func() error { return d.Git.PushForce(d.remote(), wipBranch) }},
		step{"git switch " + branch, func() error { return d.Git.Switch(branch) }},
	)
	if d.Options.Restore {
		steps = append(steps, step{"git stash apply", d.Git.StashApply})
	}

	return runSteps(steps)
}

// Down retrieves the remote WIP branch as uncommitted changes on the
// current branch.
func (d *Driver) Down() error {
	if err := d.Options.Validate(); err != nil {
		return err
	}

	if d.Options.CheckClean {
		if err := d.checkSynced(); err != nil {
			return err
		}
	}

	branch, err := d.currentBranch()
	if err != nil {
		return err
	}

	wipBranch := d.Options.WIPBranch(branch)

	steps := d.resetSteps(wipBranch)
	steps = append(steps,
		step{"git pull", func() error { return d.Git.Pull(d.remote(), wipBranch) }},
		step{"git reset", d.Git.Uncommit},
		step{"git switch " + branch, func() error { return d.Git.Switch(branch) }},
	)

	return runSteps(steps)
}

// resetSteps recreate wipBranch at HEAD and switch to it, discarding any
// previous local WIP branch.
func (d *Driver) resetSteps(wipBranch string) []step {
	if d.Options.Reset == ResetDelete {
		return []step{
			{"git branch -D", func() error { return d.Git.DeleteBranch(wipBranch) }},
			{"git switch -c", func() error { return d.Git.SwitchCreate(wipBranch, false) }},
		}
	}
	return []step{
		{"git switch -C", func() error { return d.Git.SwitchCreate(wipBranch, true) }},
	}
}

func (d *Driver) currentBranch() (string, error) {
	branch, err := d.Git.CurrentBranch()
	if err != nil {
		return "", fmt.Errorf("resolving current branch: %w", err)
	}
	if branch == "" || branch == "HEAD" {
		return "", ErrDetachedHead
	}
	return branch, nil
}

func (d *Driver) checkSynced() error {
	status, err := d.Git.Sync()
	if err != nil {
		return fmt.Errorf("checking working tree: %w", err)
	}
	if !status.UpToDate() {
		return &PreconditionError{Reason: "branch is not up to date with its upstream"}
	}
	if !status.Clean() {
		return &PreconditionError{Reason: "you have unstaged or uncommitted changes"}
	}
	return nil
}

func (d *Driver) remote() string {
	if d.Options.ExplicitRemote {
		return d.Options.Remote
	}
	return ""
}

func (d *Driver) stashLabel() string {
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	return d.Options.StashPrefix + " " + now().Format(stashTimeLayout)
}
