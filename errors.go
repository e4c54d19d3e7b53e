// Package reposync provides sentinel errors for repository synchronization.
// All errors can be checked using errors.Is() for programmatic handling.
package reposync

import (
	"errors"
	"fmt"
)

// Common sentinel errors that can be checked with errors.Is().
// These wrap underlying go-git errors while providing a stable API for consumers.

// ErrRemoteUnreachable is returned when the remote locator cannot be resolved
// or contacted during a clone (unknown host, repository not found, rejected
// credentials before any transfer).
var ErrRemoteUnreachable = errors.New("remote not found or unreachable")

// ErrCloneFailed is returned when a clone started but did not complete
// (partial transfer, permission error, disk full).
var ErrCloneFailed = errors.New("clone failed")

// ErrUpdateBlocked is returned when a local working copy exists but cannot be
// cleanly updated: local modifications are present, HEAD is detached, history
// has diverged, or the path is not a git working copy at all.
var ErrUpdateBlocked = errors.New("update blocked by local state")

// ErrUpdateFailed is returned when an update contacted the remote but failed
// to complete.
var ErrUpdateFailed = errors.New("update failed")

// ErrInvalidTarget is returned when a Target or the Syncer Options are
// malformed and no collaborator call was attempted.
var ErrInvalidTarget = errors.New("invalid sync target")

// Op identifies which branch of the sync decision produced an error.
type Op string

const (
	// OpClone is the branch taken when the local path is absent.
	OpClone Op = "clone"

	// OpUpdate is the branch taken when the local path is present.
	OpUpdate Op = "update"
)

// SyncError describes a failed sync. It records the branch that ran (clone or
// update), the target it ran against, and the underlying cause including the
// collaborator's diagnostic text. It unwraps to the sentinel taxonomy above,
// so errors.Is(err, ErrUpdateBlocked) and friends work through it.
type SyncError struct {
	Op     Op
	Target Target
	Err    error
}

// Error implements the error interface.
func (e *SyncError) Error() string {
	return fmt.Sprintf("reposync %s %s: %v", e.Op, e.Target, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/errors.As chains.
func (e *SyncError) Unwrap() error {
	return e.Err
}

// WrapError wraps an error with additional context while preserving
// the ability to check against sentinel errors using errors.Is().
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// WrapErrorf wraps an error with formatted additional context while preserving
// the ability to check against sentinel errors using errors.Is().
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
