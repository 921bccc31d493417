package git

import (
	"strings"
)

// FileChange represents a single file change from git status --porcelain.
type FileChange struct {
	Status string // Two-character status (e.g., "M ", " M", "??", "R ")
	Path   string
	// For renames: original path
	OldPath string
}

// IsUntracked returns true if the file is not tracked by git.
func (f FileChange) IsUntracked() bool {
	return f.Status == "??"
}

// HasChanges reports whether the working tree or index has any
// modification, untracked files included.
func (r *Repo) HasChanges() (bool, error) {
	changes, err := r.StatusPorcelain()
	if err != nil {
		return false, err
	}
	return len(changes) > 0, nil
}

// StatusPorcelain returns parsed file changes.
func (r *Repo) StatusPorcelain() ([]FileChange, error) {
	out, err := r.Output("status", "--porcelain")
	if err != nil {
		return nil, err
	}
	return ParsePorcelainOutput(out), nil
}

// ParsePorcelainOutput parses `git status --porcelain` (v1) output.
func ParsePorcelainOutput(out string) []FileChange {
	if strings.TrimSpace(out) == "" {
		return nil
	}

	var changes []FileChange
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		status := line[:2]
		path := line[3:]

		fc := FileChange{Status: status}

		// Handle renames: "R  old -> new"
		if strings.HasPrefix(status, "R") && strings.Contains(path, " -> ") {
			parts := strings.SplitN(path, " -> ", 2)
			fc.OldPath = parts[0]
			fc.Path = parts[1]
		} else {
			fc.Path = path
		}

		changes = append(changes, fc)
	}

	return changes
}

// SyncStatus summarizes whether the current branch is safe to move
// changes onto: nothing uncommitted, and level with its upstream.
type SyncStatus struct {
	Changes  []FileChange
	Upstream string
	AheadBehind
}

// Clean reports whether there are no uncommitted or untracked changes.
func (s SyncStatus) Clean() bool {
	return len(s.Changes) == 0
}

// UpToDate reports whether the branch tracks an upstream and has neither
// unpushed nor unpulled commits.
func (s SyncStatus) UpToDate() bool {
	return s.Upstream != "" && s.Ahead == 0 && s.Behind == 0
}

// Sync reports working-tree cleanliness and upstream sync state. A branch
// with no upstream comes back with Upstream == "".
func (r *Repo) Sync() (SyncStatus, error) {
	var s SyncStatus

	changes, err := r.StatusPorcelain()
	if err != nil {
		return s, err
	}
	s.Changes = changes

	s.Upstream = r.Upstream()
	if s.Upstream == "" {
		return s, nil
	}

	s.AheadBehind, err = r.GetAheadBehind(s.Upstream)
	if err != nil {
		return s, err
	}
	return s, nil
}
