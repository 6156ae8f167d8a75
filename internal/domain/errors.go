package domain

import (
	"fmt"
	"strings"
)

// ValidationError represents malformed input, e.g. an unknown document type.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	if e.Reason == "" {
		return "validation failed"
	}
	return e.Reason
}

// Is enables errors.Is matching on ValidationError.
func (e ValidationError) Is(target error) bool {
	_, ok := target.(ValidationError)
	if ok {
		return true
	}
	_, ok = target.(*ValidationError)
	return ok
}

// InvalidStateError represents a transition not permitted from the
// document's or submission's current status.
type InvalidStateError struct {
	Current string
	Action  string
}

func (e InvalidStateError) Error() string {
	if e.Current == "" {
		return "invalid state"
	}
	return fmt.Sprintf("%s not allowed while %s", e.Action, e.Current)
}

func (e InvalidStateError) Is(target error) bool {
	_, ok := target.(InvalidStateError)
	if ok {
		return true
	}
	_, ok = target.(*InvalidStateError)
	return ok
}

// PreconditionError represents an unmet guard condition, e.g. resubmitting
// without an open rejection.
type PreconditionError struct {
	Reason string
}

func (e PreconditionError) Error() string {
	if e.Reason == "" {
		return "precondition failed"
	}
	return e.Reason
}

func (e PreconditionError) Is(target error) bool {
	_, ok := target.(PreconditionError)
	if ok {
		return true
	}
	_, ok = target.(*PreconditionError)
	return ok
}

// IncompleteSubmissionError reports exactly which mandatory document
// types are missing, so the caller can render a precise checklist.
type IncompleteSubmissionError struct {
	MissingTypes []DocumentType
}

func (e IncompleteSubmissionError) Error() string {
	if len(e.MissingTypes) == 0 {
		return "submission incomplete"
	}
	names := make([]string, len(e.MissingTypes))
	for i, t := range e.MissingTypes {
		names[i] = string(t)
	}
	return "submission incomplete: missing " + strings.Join(names, ", ")
}

func (e IncompleteSubmissionError) Is(target error) bool {
	_, ok := target.(IncompleteSubmissionError)
	if ok {
		return true
	}
	_, ok = target.(*IncompleteSubmissionError)
	return ok
}

// NotFoundError represents an id unresolvable through any store.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ConcurrentModificationError represents an optimistic-concurrency loss:
// the aggregate changed between load and store.
type ConcurrentModificationError struct {
	Resource string
}

func (e ConcurrentModificationError) Error() string {
	if e.Resource == "" {
		return "concurrent modification"
	}
	return fmt.Sprintf("%s was modified concurrently", e.Resource)
}

func (e ConcurrentModificationError) Is(target error) bool {
	_, ok := target.(ConcurrentModificationError)
	if ok {
		return true
	}
	_, ok = target.(*ConcurrentModificationError)
	return ok
}

// AuthorizationError represents an actor acting on a resource it does
// not own.
type AuthorizationError struct {
	Reason string
}

func (e AuthorizationError) Error() string {
	if e.Reason == "" {
		return "not authorized"
	}
	return e.Reason
}

func (e AuthorizationError) Is(target error) bool {
	_, ok := target.(AuthorizationError)
	if ok {
		return true
	}
	_, ok = target.(*AuthorizationError)
	return ok
}

// Sentinels for errors.Is matching.
var (
	ErrValidation             = ValidationError{}
	ErrInvalidState           = InvalidStateError{}
	ErrPrecondition           = PreconditionError{}
	ErrIncompleteSubmission   = IncompleteSubmissionError{}
	ErrNotFound               = NotFoundError{}
	ErrConcurrentModification = ConcurrentModificationError{}
	ErrAuthorization          = AuthorizationError{}
)
