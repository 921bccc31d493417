package git

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Repo is a handle on one working copy. All commands run with Dir as their
// working directory ("" means the process's current directory).
type Repo struct {
	Dir string

	// Stdout and Stderr receive passthrough output and the command echo.
	// Nil means os.Stdout / os.Stderr.
	Stdout io.Writer
	Stderr io.Writer

	// Echo, when set, is called with the argument list of every mutating
	// command before it runs.
	Echo func(args []string)

	// DryRun echoes mutating commands without running them.
	// Read-only queries still run.
	DryRun bool
}

// Open returns a Repo rooted at dir.
func Open(dir string) *Repo {
	return &Repo{Dir: dir}
}

// CommandError is returned when git exits unsuccessfully.
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	msg := e.Stderr
	if msg == "" {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("git %s: %s", strings.Join(e.Args, " "), msg)
}

func (e *CommandError) Unwrap() error { return e.Err }

// ExitCode returns git's exit status, or -1 if git did not run to completion.
func (e *CommandError) ExitCode() int {
	var exitErr *exec.ExitError
	if errors.As(e.Err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// gitCmd creates a git command with LC_ALL=C to ensure English output for parsing.
func (r *Repo) gitCmd(args ...string) *exec.Cmd {
	cmd := exec.Command("git", args...)
	cmd.Env = append(os.Environ(), "LC_ALL=C")
	if r.Dir != "" {
		cmd.Dir = r.Dir
	}
	return cmd
}

// Run executes a git command and returns its trimmed stdout.
// If the command fails, the error includes stderr.
func (r *Repo) Run(args ...string) (string, error) {
	out, err := r.Output(args...)
	return strings.TrimSpace(out), err
}

// Output is Run without trimming, for formats where leading spaces matter.
func (r *Repo) Output(args ...string) (string, error) {
	cmd := r.gitCmd(args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &CommandError{Args: args, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}

	return stdout.String(), nil
}

// RunPassthrough executes a mutating git command with its output forwarded
// to the operator, so the run can be audited.
func (r *Repo) RunPassthrough(args ...string) error {
	if r.Echo != nil {
		r.Echo(args)
	}
	if r.DryRun {
		return nil
	}

	cmd := r.gitCmd(args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.stdout()
	cmd.Stderr = r.stderr()
	if err := cmd.Run(); err != nil {
		// stderr already reached the operator
		return &CommandError{Args: args, Err: err}
	}
	return nil
}

// RunSilent executes a git command and discards all output.
// Returns only whether it succeeded.
func (r *Repo) RunSilent(args ...string) error {
	cmd := r.gitCmd(args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Run(); err != nil {
		return &CommandError{Args: args, Err: err}
	}
	return nil
}

func (r *Repo) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *Repo) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}
