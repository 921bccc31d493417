package git

// TopLevel returns the absolute path to the repository root.
func (r *Repo) TopLevel() (string, error) {
	return r.Run("rev-parse", "--show-toplevel")
}

// Fetch updates remote-tracking refs for a remote. It never touches the
// working tree or local branches, so it runs even in dry-run mode.
func (r *Repo) Fetch(remote string) error {
	return r.RunSilent("fetch", remote)
}
