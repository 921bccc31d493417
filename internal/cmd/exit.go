package cmd

import (
	"errors"

	"github.com/mvwi/stasher/internal/git"
	"github.com/mvwi/stasher/internal/wip"
)

// Exit statuses. A failed git step exits with git's own status instead.
const (
	exitOK           = 0
	exitFailure      = 1
	exitUsage        = 2
	exitPrecondition = 3
)

// usageError marks a bad command line: wrong arguments or flags.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

func isUsageError(err error) bool {
	var ue *usageError
	return errors.As(err, &ue)
}

// exitCode maps an error returned by the root command to an exit status.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if isUsageError(err) {
		return exitUsage
	}

	var pe *wip.PreconditionError
	if errors.As(err, &pe) || errors.Is(err, wip.ErrNothingToStash) || errors.Is(err, wip.ErrDetachedHead) {
		return exitPrecondition
	}

	var ce *git.CommandError
	if errors.As(err, &ce) {
		if code := ce.ExitCode(); code > 0 {
			return code
		}
	}
	return exitFailure
}
