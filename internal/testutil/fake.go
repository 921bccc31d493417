// Package testutil holds test doubles for the git collaborator.
package testutil

import (
	"fmt"
	"strings"

	"github.com/mvwi/stasher/internal/git"
)

// FakeGit records every call as the git command line it stands for and
// can be told to fail at a chosen one.
type FakeGit struct {
	Branch    string
	BranchErr error
	Dirty     bool
	Status    git.SyncStatus
	SyncErr   error

	// FailOn makes the first call whose command line starts with it
	// return FailErr (or a generic error).
	FailOn  string
	FailErr error

	Calls []string
}

// NewFakeGit returns a FakeGit on branch with local changes, whose branch is
// clean and level with origin/<branch>.
func NewFakeGit(branch string) *FakeGit {
	return &FakeGit{
		Branch: branch,
		Dirty:  true,
		Status: git.SyncStatus{Upstream: "origin/" + branch},
	}
}

func (f *FakeGit) call(format string, args ...any) error {
	c := fmt.Sprintf(format, args...)
	f.Calls = append(f.Calls, c)
	if f.FailOn != "" && strings.HasPrefix(c, f.FailOn) {
		f.FailOn = ""
		if f.FailErr != nil {
			return f.FailErr
		}
		return fmt.Errorf("fake failure: %s", c)
	}
	return nil
}

// Mutating returns the calls that change repository state.
func (f *FakeGit) Mutating() []string {
	var out []string
	for _, c := range f.Calls {
		if !isQuery(c) {
			out = append(out, c)
		}
	}
	return out
}

func isQuery(c string) bool {
	return strings.HasPrefix(c, "rev-parse") || strings.HasPrefix(c, "status")
}

func (f *FakeGit) CurrentBranch() (string, error) {
	if err := f.call("rev-parse --abbrev-ref HEAD"); err != nil {
		return "", err
	}
	return f.Branch, f.BranchErr
}

func (f *FakeGit) HasChanges() (bool, error) {
	if err := f.call("status --porcelain"); err != nil {
		return false, err
	}
	return f.Dirty, nil
}

func (f *FakeGit) Sync() (git.SyncStatus, error) {
	if err := f.call("status --sync"); err != nil {
		return git.SyncStatus{}, err
	}
	return f.Status, f.SyncErr
}

func (f *FakeGit) StashPush(message string) error {
	return f.call("stash push -u -m %s", message)
}

func (f *FakeGit) StashApply() error { return f.call("stash apply") }

func (f *FakeGit) DeleteBranch(name string) error { return f.call("branch -D %s", name) }

func (f *FakeGit) SwitchCreate(name string, force bool) error {
	if force {
		return f.call("switch -C %s", name)
	}
	return f.call("switch -c %s", name)
}

func (f *FakeGit) Switch(name string) error { return f.call("switch %s", name) }

func (f *FakeGit) AddAll() error { return f.call("add -A") }

func (f *FakeGit) CommitNoVerify(message string) error {
	return f.call("commit --no-verify -m %s", message)
}

func (f *FakeGit) PushForce(remote, branch string) error {
	if remote == "" {
		return f.call("push -f")
	}
	return f.call("push -f %s %s", remote, branch)
}

func (f *FakeGit) Pull(remote, branch string) error {
	if remote == "" {
		return f.call("pull")
	}
	return f.call("pull %s %s", remote, branch)
}

func (f *FakeGit) Uncommit() error { return f.call("reset HEAD^") }
