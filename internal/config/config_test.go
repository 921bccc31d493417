package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mvwi/stasher/internal/wip"
)

// isolateHome points the global config lookup at an empty temp dir.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestMergeConfig(t *testing.T) {
	t.Run("overrides non-zero string fields", func(t *testing.T) {
		dst := Defaults()
		src := &Config{Remote: "backup"}
		mergeConfig(dst, src)

		if dst.Remote != "backup" {
			t.Errorf("Remote = %q, want %q", dst.Remote, "backup")
		}
		if dst.Suffix != "_wip" {
			t.Errorf("Suffix = %q, want %q (should not be overwritten by zero value)", dst.Suffix, "_wip")
		}
	})

	t.Run("explicit false overrides true", func(t *testing.T) {
		dst := Defaults()
		src := &Config{CheckClean: boolPtr(false)}
		mergeConfig(dst, src)

		if isTrue(dst.CheckClean) {
			t.Error("CheckClean should be false after explicit override")
		}
		if !isTrue(dst.Restore) {
			t.Error("Restore was overwritten by unset pointer")
		}
	})

	t.Run("zero values do not override", func(t *testing.T) {
		dst := Defaults()
		mergeConfig(dst, &Config{})

		if dst.Options() != wip.DefaultOptions() {
			t.Errorf("Options() changed after merging empty config: %+v", dst.Options())
		}
		if !dst.EchoEnabled() || dst.FetchEnabled() {
			t.Error("echo/fetch were overwritten by unset pointers")
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("defaults when no config files exist", func(t *testing.T) {
		isolateHome(t)
		cfg, err := Load(t.TempDir(), "myrepo")
		if err != nil {
			t.Fatal(err)
		}

		if got, want := cfg.Options(), wip.DefaultOptions(); got != want {
			t.Errorf("Options() = %+v, want %+v", got, want)
		}
		if !cfg.EchoEnabled() {
			t.Error("echo should default to on")
		}
		if cfg.FetchEnabled() {
			t.Error("fetch should default to off")
		}
	})

	t.Run("repo-local .stasher.toml overrides defaults", func(t *testing.T) {
		isolateHome(t)
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, FileName), `
suffix = "-sync"
branch_reset = "delete"
check_clean = false
`)

		cfg, err := Load(dir, "myrepo")
		if err != nil {
			t.Fatal(err)
		}

		opts := cfg.Options()
		if opts.Suffix != "-sync" {
			t.Errorf("Suffix = %q, want %q", opts.Suffix, "-sync")
		}
		if opts.Reset != wip.ResetDelete {
			t.Errorf("Reset = %q, want %q", opts.Reset, wip.ResetDelete)
		}
		if opts.CheckClean {
			t.Error("CheckClean = true, want false")
		}
		if opts.Remote != "origin" {
			t.Errorf("Remote = %q, want %q (default should survive)", opts.Remote, "origin")
		}
	})

	t.Run("global, per-repo and repo-local layers apply in order", func(t *testing.T) {
		home := isolateHome(t)
		writeFile(t, filepath.Join(home, ".config", "stasher", "config.toml"), `
remote = "global"
commit_message = "sync"
echo = false

[repos.myrepo]
remote = "per-repo"
fetch = true

[repos.other]
remote = "ignored"
`)
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, FileName), `commit_message = "local"`)

		cfg, err := Load(dir, "myrepo")
		if err != nil {
			t.Fatal(err)
		}

		if cfg.Remote != "per-repo" {
			t.Errorf("Remote = %q, want %q", cfg.Remote, "per-repo")
		}
		if cfg.CommitMessage != "local" {
			t.Errorf("CommitMessage = %q, want %q", cfg.CommitMessage, "local")
		}
		if cfg.EchoEnabled() {
			t.Error("echo should be disabled by global config")
		}
		if !cfg.FetchEnabled() {
			t.Error("fetch should be enabled by per-repo config")
		}
	})

	t.Run("malformed toml returns error", func(t *testing.T) {
		isolateHome(t)
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, FileName), `not valid toml ===`)

		if _, err := Load(dir, "myrepo"); err == nil {
			t.Error("expected error for malformed TOML, got nil")
		}
	})

	t.Run("unknown branch_reset is rejected", func(t *testing.T) {
		isolateHome(t)
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, FileName), `branch_reset = "rebase"`)

		if _, err := Load(dir, "myrepo"); err == nil {
			t.Error("expected error for unknown branch_reset, got nil")
		}
	})
}
