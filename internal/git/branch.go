package git

import (
	"fmt"
	"strconv"
	"strings"
)

// CurrentBranch returns the current branch name, or "HEAD" for detached HEAD.
func (r *Repo) CurrentBranch() (string, error) {
	return r.Run("rev-parse", "--abbrev-ref", "HEAD")
}

// DeleteBranch force-deletes a local branch.
func (r *Repo) DeleteBranch(name string) error {
	return r.RunPassthrough("branch", "-D", name)
}

// SwitchCreate creates a branch at HEAD and switches to it.
// With force, an existing branch of that name is reset to HEAD.
func (r *Repo) SwitchCreate(name string, force bool) error {
	flag := "-c"
	if force {
		flag = "-C"
	}
	return r.RunPassthrough("switch", flag, name)
}

// Switch switches to an existing branch.
func (r *Repo) Switch(name string) error {
	return r.RunPassthrough("switch", name)
}

// PushForce force-pushes branch to the same name on remote. With an empty
// remote it runs a bare `git push -f` and relies on the push configuration.
func (r *Repo) PushForce(remote, branch string) error {
	if remote == "" {
		return r.RunPassthrough("push", "-f")
	}
	return r.RunPassthrough("push", "-f", remote, branch)
}

// Pull pulls branch from remote into the current branch. With an empty
// remote it runs a bare `git pull` against the configured upstream.
func (r *Repo) Pull(remote, branch string) error {
	if remote == "" {
		return r.RunPassthrough("pull")
	}
	return r.RunPassthrough("pull", remote, branch)
}

// Upstream returns the upstream tracking branch, or "" if none.
func (r *Repo) Upstream() string {
	out, err := r.Run("rev-parse", "--abbrev-ref", "@{upstream}")
	if err != nil {
		return ""
	}
	return out
}

// AheadBehind is how many commits HEAD is ahead of / behind a ref.
type AheadBehind struct {
	Ahead  int
	Behind int
}

// GetAheadBehind computes ahead/behind between HEAD and a remote ref.
func (r *Repo) GetAheadBehind(remoteRef string) (AheadBehind, error) {
	ab := AheadBehind{}

	out, err := r.Run("rev-list", "--left-right", "--count", "HEAD..."+remoteRef)
	if err != nil {
		return ab, err
	}
	return parseLeftRight(out)
}

// parseLeftRight parses `rev-list --left-right --count` output ("3\t1").
func parseLeftRight(out string) (AheadBehind, error) {
	ab := AheadBehind{}
	fields := strings.Fields(out)
	if len(fields) != 2 {
		return ab, fmt.Errorf("invalid ahead/behind output %q", out)
	}
	var err error
	ab.Ahead, err = strconv.Atoi(fields[0])
	if err != nil {
		return ab, fmt.Errorf("invalid ahead count %q: %w", fields[0], err)
	}
	ab.Behind, err = strconv.Atoi(fields[1])
	if err != nil {
		return ab, fmt.Errorf("invalid behind count %q: %w", fields[1], err)
	}
	return ab, nil
}
