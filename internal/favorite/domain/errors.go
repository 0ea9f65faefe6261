package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies backend failures the reconciler must tell apart
type ErrorKind int

const (
	// ErrKindConnectivity marks transient faults: the operation may succeed
	// on a later run and its outcome is unknown.
	ErrKindConnectivity ErrorKind = iota
	// ErrKindConstraint marks uniqueness violations: the desired state
	// already holds.
	ErrKindConstraint
	// ErrKindNotFound marks a missing record where one was required.
	ErrKindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case ErrKindConnectivity:
		return "connectivity"
	case ErrKindConstraint:
		return "constraint"
	case ErrKindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// BackendError is a classified failure from the external data service
type BackendError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// NewBackendError wraps err with a kind and the failing operation
func NewBackendError(kind ErrorKind, op string, err error) *BackendError {
	return &BackendError{Kind: kind, Op: op, Err: err}
}

// KindOf extracts the error kind; unclassified errors count as connectivity,
// the conservative choice for "outcome unknown".
func KindOf(err error) ErrorKind {
	var be *BackendError
	if errors.As(err, &be) {
		return be.Kind
	}
	return ErrKindConnectivity
}

// IsConstraint reports whether err is a uniqueness violation
func IsConstraint(err error) bool {
	var be *BackendError
	return errors.As(err, &be) && be.Kind == ErrKindConstraint
}
