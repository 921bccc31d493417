package git

// StashPush stashes uncommitted changes (including untracked files) with a message.
func (r *Repo) StashPush(message string) error {
	return r.RunPassthrough("stash", "push", "-u", "-m", message)
}

// StashApply re-applies the most recent stash and keeps it in the stash list.
func (r *Repo) StashApply() error {
	return r.RunPassthrough("stash", "apply")
}

// AddAll stages every change in the working tree, wherever in the
// repository the command runs from.
func (r *Repo) AddAll() error {
	return r.RunPassthrough("add", "-A")
}

// CommitNoVerify commits the index, skipping pre-commit and commit-msg hooks.
func (r *Repo) CommitNoVerify(message string) error {
	return r.RunPassthrough("commit", "--no-verify", "-m", message)
}

// Uncommit moves the branch back one commit and leaves that commit's
// changes unstaged in the working tree.
func (r *Repo) Uncommit() error {
	return r.RunPassthrough("reset", "HEAD^")
}
