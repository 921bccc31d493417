package wip

import "fmt"

// ResetMode selects how the WIP branch is recreated at HEAD.
type ResetMode string

const (
	// ResetSwitch uses `git switch -C`, which creates or resets in one step.
	ResetSwitch ResetMode = "switch"
	// ResetDelete runs `git branch -D` then `git switch -c`. The delete
	// fails when the WIP branch does not exist yet.
	ResetDelete ResetMode = "delete"
)

// Options are the knobs that distinguish otherwise identical runs.
type Options struct {
	// Remote is pushed to and pulled from.
	Remote string

	// Suffix is appended to the current branch to name the WIP branch.
	Suffix string

	Reset ResetMode

	// ExplicitRemote names Remote and the WIP branch on push and pull.
	// When false, bare `git push -f` / `git pull` are issued and git's own
	// upstream configuration decides the target.
	ExplicitRemote bool

	// CheckClean gates down on a clean working tree that is level with
	// its upstream.
	CheckClean bool

	// Restore re-applies the stash after up returns to the original
	// branch, so local changes stay in the working tree.
	Restore bool

	CommitMessage string
	StashPrefix   string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Remote:         "origin",
		Suffix:         "_wip",
		Reset:          ResetSwitch,
		ExplicitRemote: true,
		CheckClean:     true,
		Restore:        true,
		CommitMessage:  "wip",
		StashPrefix:    "stasher auto-stash",
	}
}

// Validate rejects option sets that cannot produce a valid command sequence.
func (o Options) Validate() error {
	if o.Suffix == "" {
		return fmt.Errorf("wip branch suffix must not be empty")
	}
	switch o.Reset {
	case ResetSwitch, ResetDelete:
	default:
		return fmt.Errorf("unknown branch reset mode %q (want %q or %q)", o.Reset, ResetSwitch, ResetDelete)
	}
	if o.ExplicitRemote && o.Remote == "" {
		return fmt.Errorf("remote must be set when explicit_remote is enabled")
	}
	if o.CommitMessage == "" {
		return fmt.Errorf("commit message must not be empty")
	}
	return nil
}

// WIPBranch returns the WIP branch name for branch.
func (o Options) WIPBranch(branch string) string {
	return branch + o.Suffix
}
