package testutil

import (
	"fmt"
	"maps"

	"github.com/mvwi/stasher/internal/git"
)

// Commit is a snapshot of file contents with a parent link.
type Commit struct {
	Parent *Commit
	Files  map[string]string
}

// Remote is a branch table shared by several Machines.
type Remote struct {
	Branches map[string]*Commit
}

// NewRemote returns a remote whose branch points at a commit with files.
func NewRemote(branch string, files map[string]string) *Remote {
	return &Remote{Branches: map[string]*Commit{
		branch: {Files: maps.Clone(files)},
	}}
}

// Machine simulates a clone of Remote with just enough git semantics to
// run a full up or down: branches, a working tree, an index-less commit,
// a stash stack, switch carrying local changes.
type Machine struct {
	Remote   *Remote
	Head     string
	Branches map[string]*Commit
	Worktree map[string]string
	Stash    []map[string]string
}

// Clone checks out branch from r.
func Clone(r *Remote, branch string) *Machine {
	c := r.Branches[branch]
	return &Machine{
		Remote:   r,
		Head:     branch,
		Branches: map[string]*Commit{branch: c},
		Worktree: maps.Clone(c.Files),
	}
}

// localChanges returns worktree entries that differ from HEAD.
func (m *Machine) localChanges() map[string]string {
	head := m.Branches[m.Head].Files
	changes := map[string]string{}
	for path, content := range m.Worktree {
		if head[path] != content {
			changes[path] = content
		}
	}
	return changes
}

func (m *Machine) CurrentBranch() (string, error) { return m.Head, nil }

func (m *Machine) HasChanges() (bool, error) {
	return len(m.localChanges()) > 0, nil
}

func (m *Machine) Sync() (git.SyncStatus, error) {
	s := git.SyncStatus{Upstream: "origin/" + m.Head}
	for path := range m.localChanges() {
		s.Changes = append(s.Changes, git.FileChange{Status: " M", Path: path})
	}
	if m.Remote.Branches[m.Head] != m.Branches[m.Head] {
		s.Behind = 1
	}
	return s, nil
}

func (m *Machine) StashPush(string) error {
	if len(m.localChanges()) == 0 {
		return nil
	}
	m.Stash = append(m.Stash, maps.Clone(m.Worktree))
	m.Worktree = maps.Clone(m.Branches[m.Head].Files)
	return nil
}

func (m *Machine) StashApply() error {
	if len(m.Stash) == 0 {
		return fmt.Errorf("no stash entries found")
	}
	maps.Copy(m.Worktree, m.Stash[len(m.Stash)-1])
	return nil
}

func (m *Machine) DeleteBranch(name string) error {
	if _, ok := m.Branches[name]; !ok {
		return fmt.Errorf("branch '%s' not found", name)
	}
	if name == m.Head {
		return fmt.Errorf("cannot delete branch '%s' checked out", name)
	}
	delete(m.Branches, name)
	return nil
}

func (m *Machine) SwitchCreate(name string, force bool) error {
	if _, ok := m.Branches[name]; ok && !force {
		return fmt.Errorf("a branch named '%s' already exists", name)
	}
	m.Branches[name] = m.Branches[m.Head]
	m.Head = name
	return nil
}

func (m *Machine) Switch(name string) error {
	target, ok := m.Branches[name]
	if !ok {
		return fmt.Errorf("invalid reference: %s", name)
	}
	changes := m.localChanges()
	m.Head = name
	m.Worktree = maps.Clone(target.Files)
	maps.Copy(m.Worktree, changes)
	return nil
}

func (m *Machine) AddAll() error { return nil }

func (m *Machine) CommitNoVerify(string) error {
	if len(m.localChanges()) == 0 {
		return fmt.Errorf("nothing to commit, working tree clean")
	}
	m.Branches[m.Head] = &Commit{Parent: m.Branches[m.Head], Files: maps.Clone(m.Worktree)}
	return nil
}

func (m *Machine) PushForce(_, branch string) error {
	if branch == "" {
		branch = m.Head
	}
	m.Remote.Branches[branch] = m.Branches[branch]
	return nil
}

func (m *Machine) Pull(_, branch string) error {
	if branch == "" {
		branch = m.Head
	}
	c, ok := m.Remote.Branches[branch]
	if !ok {
		return fmt.Errorf("couldn't find remote ref %s", branch)
	}
	if len(m.localChanges()) > 0 {
		return fmt.Errorf("local changes would be overwritten by merge")
	}
	m.Branches[m.Head] = c
	m.Worktree = maps.Clone(c.Files)
	return nil
}

func (m *Machine) Uncommit() error {
	c := m.Branches[m.Head]
	if c.Parent == nil {
		return fmt.Errorf("ambiguous argument 'HEAD^'")
	}
	m.Branches[m.Head] = c.Parent
	return nil
}
