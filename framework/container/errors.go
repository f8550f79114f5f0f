package container

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every failure returned by the container wraps exactly one
// of these, so callers branch with errors.Is.
var (
	// ErrUnknownKey: the key has neither a declared nor a dynamic slot.
	ErrUnknownKey = errors.New("container does not contain key")

	// ErrPrivacyViolation: the key maps onto a private slot.
	ErrPrivacyViolation = errors.New("key is private")

	// ErrFrozenBinding: the key holds a resolved singleton.
	ErrFrozenBinding = errors.New("cannot override frozen service")

	// ErrUnsupported: keys can be replaced before they freeze but never removed.
	ErrUnsupported = errors.New("cannot remove a dependency")

	// ErrNotComputable: Extend was called on a key holding a plain value.
	ErrNotComputable = errors.New("key does not contain a service definition")
)

// Error records the failed operation and the key it was applied to.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("container: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ResolveError wraps an error returned by a service computation.
type ResolveError struct {
	Key   string
	Kind  Kind
	Cause error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("container: resolving %s %q: %v", e.Kind, e.Key, e.Cause)
}

func (e *ResolveError) Unwrap() error {
	return e.Cause
}
