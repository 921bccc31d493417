package wip

import (
	"errors"
	"fmt"
)

var (
	// ErrNothingToStash is returned by up when the working tree has no changes.
	ErrNothingToStash = errors.New("no local changes to save")

	// ErrDetachedHead is returned when HEAD is not on a branch.
	ErrDetachedHead = errors.New("HEAD is detached; check out a branch first")
)

// PreconditionError is returned when down refuses to start.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return e.Reason
}

// StepError wraps the failure of one step in a sequence. Steps after it
// were not run, and steps before it were not undone.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
