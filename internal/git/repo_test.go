package git_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvwi/stasher/internal/git"
	"github.com/mvwi/stasher/internal/testutil"
)

func quietRepo(dir string) *git.Repo {
	return &git.Repo{Dir: dir, Stdout: io.Discard, Stderr: io.Discard}
}

func TestCurrentBranch(t *testing.T) {
	testutil.RequireGit(t)
	dir := testutil.CloneOrigin(t, testutil.NewOrigin(t, map[string]string{"a.txt": "a\n"}))
	r := quietRepo(dir)

	branch, err := r.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "master", branch)

	testutil.Run(t, dir, "git", "checkout", "--quiet", "--detach")
	branch, err = r.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "HEAD", branch)
}

func TestCurrentBranchOutsideRepo(t *testing.T) {
	testutil.RequireGit(t)
	_, err := quietRepo(t.TempDir()).CurrentBranch()

	var ce *git.CommandError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Error(), "not a git repository")
	assert.Positive(t, ce.ExitCode())
}

func TestHasChangesAndSync(t *testing.T) {
	testutil.RequireGit(t)
	dir := testutil.CloneOrigin(t, testutil.NewOrigin(t, map[string]string{"a.txt": "a\n"}))
	r := quietRepo(dir)

	dirty, err := r.HasChanges()
	require.NoError(t, err)
	assert.False(t, dirty)

	s, err := r.Sync()
	require.NoError(t, err)
	assert.True(t, s.Clean())
	assert.True(t, s.UpToDate())
	assert.Equal(t, "origin/master", s.Upstream)

	testutil.WriteFile(t, dir, "new.txt", "untracked\n")
	dirty, err = r.HasChanges()
	require.NoError(t, err)
	assert.True(t, dirty, "untracked files count as changes")

	s, err = r.Sync()
	require.NoError(t, err)
	assert.False(t, s.Clean())
	require.Len(t, s.Changes, 1)
	assert.True(t, s.Changes[0].IsUntracked())

	testutil.Run(t, dir, "git", "add", ".")
	testutil.Run(t, dir, "git", "commit", "--quiet", "-m", "local")
	s, err = r.Sync()
	require.NoError(t, err)
	assert.True(t, s.Clean())
	assert.False(t, s.UpToDate())
	assert.Equal(t, 1, s.Ahead)
}

func TestSyncWithoutUpstream(t *testing.T) {
	testutil.RequireGit(t)
	dir := testutil.CloneOrigin(t, testutil.NewOrigin(t, map[string]string{"a.txt": "a\n"}))
	testutil.Run(t, dir, "git", "switch", "--quiet", "-c", "local-only")

	s, err := quietRepo(dir).Sync()
	require.NoError(t, err)
	assert.Empty(t, s.Upstream)
	assert.False(t, s.UpToDate())
}

func TestPassthroughEchoesAndFails(t *testing.T) {
	testutil.RequireGit(t)
	dir := testutil.CloneOrigin(t, testutil.NewOrigin(t, map[string]string{"a.txt": "a\n"}))

	var echoed [][]string
	var stderr bytes.Buffer
	r := &git.Repo{
		Dir:    dir,
		Stdout: io.Discard,
		Stderr: &stderr,
		Echo:   func(args []string) { echoed = append(echoed, args) },
	}

	err := r.DeleteBranch("does-not-exist")
	var ce *git.CommandError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 1, ce.ExitCode())
	assert.Equal(t, [][]string{{"branch", "-D", "does-not-exist"}}, echoed)
	assert.Contains(t, stderr.String(), "does-not-exist", "git's own diagnostics reach the operator")
}

func TestDryRunSkipsMutations(t *testing.T) {
	testutil.RequireGit(t)
	dir := testutil.CloneOrigin(t, testutil.NewOrigin(t, map[string]string{"a.txt": "a\n"}))

	var echoed [][]string
	r := quietRepo(dir)
	r.DryRun = true
	r.Echo = func(args []string) { echoed = append(echoed, args) }

	require.NoError(t, r.SwitchCreate("master_wip", true))
	require.NoError(t, r.PushForce("origin", "master_wip"))

	assert.Nil(t, testutil.BranchCommit(t, dir, "master_wip"))
	assert.Equal(t, "master", testutil.HeadBranch(t, dir))
	assert.Equal(t, [][]string{
		{"switch", "-C", "master_wip"},
		{"push", "-f", "origin", "master_wip"},
	}, echoed)

	branch, err := r.CurrentBranch()
	require.NoError(t, err, "queries still run in dry-run mode")
	assert.Equal(t, "master", branch)
}
