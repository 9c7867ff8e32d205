package services

import (
	"errors"
	"fmt"
)

var (
	ErrReportNotFound       = errors.New("report not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("user is not a participant in this conversation")
	ErrSelfReport           = errors.New("cannot report yourself")
)

// ValidationError rejects malformed input before any state mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InvalidTransitionError rejects a consent or report-status transition
// attempted from an incompatible state. State is left unchanged.
type InvalidTransitionError struct {
	From  string
	Event string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s from state %s", e.Event, e.From)
}

// InvalidActionError rejects applying a non-suspension action as a suspension.
type InvalidActionError struct {
	Action string
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("action %s is not a suspension", e.Action)
}

// StoreUnavailableError wraps a durable-store failure. It is propagated to
// the caller; the engine never retries and leaves no partial state.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable during %s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	return &StoreUnavailableError{Op: op, Err: err}
}
