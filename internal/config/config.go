package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/mvwi/stasher/internal/wip"
)

// FileName is the repo-local config file, looked up at the repository root.
const FileName = ".stasher.toml"

// Config holds all stasher configuration. Unset fields fall through to the
// next layer and finally to wip.DefaultOptions.
// Resolved via: defaults → global (~/.config/stasher/config.toml) → global per-repo → .stasher.toml
type Config struct {
	// Remote is the git remote the WIP branch is pushed to. Almost always "origin".
	Remote string `toml:"remote"`

	// Suffix is appended to the current branch name: "<branch><suffix>".
	Suffix string `toml:"suffix"`

	// BranchReset is "switch" (git switch -C) or "delete" (git branch -D + git switch -c).
	BranchReset string `toml:"branch_reset"`

	// Booleans are pointers so we can distinguish "not set" (nil) from "explicitly false".

	// ExplicitRemote pushes/pulls "<remote> <branch>_wip" instead of relying on upstream config.
	ExplicitRemote *bool `toml:"explicit_remote"`

	// CheckClean refuses `down` unless the tree is clean and level with its upstream.
	CheckClean *bool `toml:"check_clean"`

	// Restore re-applies the stash after `up` so local changes stay in place.
	Restore *bool `toml:"restore"`

	// Echo prints each git command before running it.
	Echo *bool `toml:"echo"`

	// Fetch runs `git fetch <remote>` before the `down` check so "up to date"
	// is judged against the remote's current state.
	Fetch *bool `toml:"fetch"`

	CommitMessage string `toml:"commit_message"`
	StashPrefix   string `toml:"stash_prefix"`
}

// globalFile is the on-disk shape of ~/.config/stasher/config.toml.
// Top-level fields are defaults; [repos.<name>] sections override per repo.
type globalFile struct {
	Config
	Repos map[string]Config `toml:"repos"`
}

// Load reads config with layered precedence:
//  1. Hardcoded defaults (wip.DefaultOptions, echo on, fetch off)
//  2. Global defaults (~/.config/stasher/config.toml top-level fields)
//  3. Global per-repo ([repos.<repoName>] section)
//  4. Repo-local (.stasher.toml in the repository root)
//
// Each layer only overrides fields it explicitly sets.
func Load(dir, repoName string) (*Config, error) {
	cfg := Defaults()

	if globalPath, err := globalConfigPath(); err == nil {
		if data, err := os.ReadFile(globalPath); err == nil {
			var gf globalFile
			if err := toml.Unmarshal(data, &gf); err != nil {
				return nil, fmt.Errorf("global config (%s): %w", globalPath, err)
			}
			mergeConfig(cfg, &gf.Config)
			if repoName != "" {
				if repoCfg, ok := gf.Repos[repoName]; ok {
					mergeConfig(cfg, &repoCfg)
				}
			}
		}
	}

	if dir != "" {
		repoPath := filepath.Join(dir, FileName)
		if data, err := os.ReadFile(repoPath); err == nil {
			var repoCfg Config
			if err := toml.Unmarshal(data, &repoCfg); err != nil {
				return nil, fmt.Errorf("repo config (%s): %w", repoPath, err)
			}
			mergeConfig(cfg, &repoCfg)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Defaults returns a Config with every field set.
func Defaults() *Config {
	d := wip.DefaultOptions()
	return &Config{
		Remote:         d.Remote,
		Suffix:         d.Suffix,
		BranchReset:    string(d.Reset),
		ExplicitRemote: boolPtr(d.ExplicitRemote),
		CheckClean:     boolPtr(d.CheckClean),
		Restore:        boolPtr(d.Restore),
		Echo:           boolPtr(true),
		Fetch:          boolPtr(false),
		CommitMessage:  d.CommitMessage,
		StashPrefix:    d.StashPrefix,
	}
}

// mergeConfig copies set fields from src into dst.
func mergeConfig(dst, src *Config) {
	if src.Remote != "" {
		dst.Remote = src.Remote
	}
	if src.Suffix != "" {
		dst.Suffix = src.Suffix
	}
	if src.BranchReset != "" {
		dst.BranchReset = src.BranchReset
	}
	if src.ExplicitRemote != nil {
		dst.ExplicitRemote = src.ExplicitRemote
	}
	if src.CheckClean != nil {
		dst.CheckClean = src.CheckClean
	}
	if src.Restore != nil {
		dst.Restore = src.Restore
	}
	if src.Echo != nil {
		dst.Echo = src.Echo
	}
	if src.Fetch != nil {
		dst.Fetch = src.Fetch
	}
	if src.CommitMessage != "" {
		dst.CommitMessage = src.CommitMessage
	}
	if src.StashPrefix != "" {
		dst.StashPrefix = src.StashPrefix
	}
}

// Validate checks that the merged config describes a runnable sequence.
func (c *Config) Validate() error {
	if err := c.Options().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Options converts the config into driver options.
func (c *Config) Options() wip.Options {
	return wip.Options{
		Remote:         c.Remote,
		Suffix:         c.Suffix,
		Reset:          wip.ResetMode(c.BranchReset),
		ExplicitRemote: isTrue(c.ExplicitRemote),
		CheckClean:     isTrue(c.CheckClean),
		Restore:        isTrue(c.Restore),
		CommitMessage:  c.CommitMessage,
		StashPrefix:    c.StashPrefix,
	}
}

// EchoEnabled reports whether commands are echoed before they run.
func (c *Config) EchoEnabled() bool { return isTrue(c.Echo) }

// FetchEnabled reports whether down fetches before checking sync state.
func (c *Config) FetchEnabled() bool { return isTrue(c.Fetch) }

// globalConfigPath returns ~/.config/stasher/config.toml.
func globalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "stasher", "config.toml"), nil
}

func boolPtr(b bool) *bool { return &b }

func isTrue(b *bool) bool { return b != nil && *b }
