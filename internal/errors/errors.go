// Package errors provides centralized error definitions for the prepdeck
// codebase: sentinel errors for the session state machine and persistence
// layer, a typed transition error, and re-exports of the standard library
// helpers so callers can import a single errors package.
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// State machine sentinel errors
var (
	// ErrInvalidTransition indicates an operation was called while its
	// state machine precondition did not hold.
	ErrInvalidTransition = New("invalid session transition")
	// ErrNoActiveSession indicates an operation that requires a live
	// session found none.
	ErrNoActiveSession = New("no active session")
)

// Persistence sentinel errors
var (
	// ErrSnapshotNotFound indicates the snapshot slot is empty.
	ErrSnapshotNotFound = New("snapshot not found")
	// ErrSnapshotInvalid indicates a snapshot exists but is malformed or
	// was written with an unknown schema version.
	ErrSnapshotInvalid = New("snapshot invalid")
)

// TransitionError reports a rejected state machine transition. It wraps
// ErrInvalidTransition so callers can match with errors.Is.
type TransitionError struct {
	Op   string // the operation that was attempted, e.g. "start"
	From string // the session state the operation observed
}

// NewTransitionError creates a TransitionError for the given operation and
// observed state.
func NewTransitionError(op, from string) *TransitionError {
	return &TransitionError{Op: op, From: from}
}

// Error returns the error message.
func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s session in state %q", e.Op, e.From)
}

// Is reports whether this error matches ErrInvalidTransition.
func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// IsInvalidTransition reports whether err is a state machine violation.
func IsInvalidTransition(err error) bool {
	return Is(err, ErrInvalidTransition)
}

// SessionError annotates an error with the session it concerns, so log
// lines and caller messages carry the id without every call site
// formatting it by hand.
type SessionError struct {
	SessionID string
	Err       error
}

// NewSessionError wraps err with the given session id.
func NewSessionError(sessionID string, err error) *SessionError {
	return &SessionError{SessionID: sessionID, Err: err}
}

// Error returns the error message.
func (e *SessionError) Error() string {
	return fmt.Sprintf("session %s: %v", e.SessionID, e.Err)
}

// Unwrap returns the wrapped error.
func (e *SessionError) Unwrap() error {
	return e.Err
}
