package pollwrap

import (
	"errors"
	"fmt"
)

// Standard errors.
var (
	ErrUnsupportedPlatform = errors.New("pollwrap: no reactor for this platform")
	ErrDispatcherConsumed  = errors.New("pollwrap: dispatcher consumed by run")
	ErrDispatcherRunning   = errors.New("pollwrap: dispatcher is running")
	ErrScopeExpired        = errors.New("pollwrap: scope used after its callback returned")
	ErrNilCallback         = errors.New("pollwrap: nil callback")
	ErrTokensExhausted     = errors.New("pollwrap: tokens exhausted")
	ErrAlreadyRegistered   = errors.New("pollwrap: source already registered")
	ErrEventCount          = errors.New("pollwrap: reactor reported an invalid event count")
	ErrReactorClosed       = errors.New("pollwrap: reactor closed")
)

// ReactorError reports a failure of the underlying reactor itself, either
// while creating it (Op "create") or while waiting for events (Op "wait").
type ReactorError struct {
	Cause error
	Op    string
}

// Error implements the error interface.
func (e *ReactorError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("pollwrap: reactor %s failed", e.Op)
	}
	return fmt.Sprintf("pollwrap: reactor %s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for use with [errors.Is] and [errors.As].
func (e *ReactorError) Unwrap() error {
	return e.Cause
}

// RegistrationError reports that a source could not be registered. Token is
// the value that would have been issued; it was not consumed.
type RegistrationError struct {
	Cause error
	Token Token
}

// Error implements the error interface.
func (e *RegistrationError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("pollwrap: register %s failed", e.Token)
	}
	return fmt.Sprintf("pollwrap: register %s: %v", e.Token, e.Cause)
}

// Unwrap returns the underlying cause for use with [errors.Is] and [errors.As].
func (e *RegistrationError) Unwrap() error {
	return e.Cause
}
