package errors

import (
	"errors"
	"fmt"
)

// Common error types for the gateway
var (
	// Session token errors
	ErrInvalidToken   = errors.New("invalid token")
	ErrWrongTokenType = errors.New("wrong token type")

	// Authentication errors
	ErrAuthenticationFailure    = errors.New("authentication failed")
	ErrRefreshRejected          = errors.New("refresh token rejected")
	ErrInvalidIdentityAssertion = errors.New("invalid identity assertion")
	ErrIdentityNotRegistered    = errors.New("identity not registered with the LMS")
	ErrDevLoginDisabled         = errors.New("dev login is disabled")
	ErrCodeExchangeDisabled     = errors.New("authorization code login is not configured")

	// Upstream errors
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrUpstreamApplication = errors.New("upstream application error")

	// General errors
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")
	ErrUnsuccessful   = errors.New("operation unsuccessful")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New is errors.New, re-exported so callers need a single import.
func New(text string) error {
	return errors.New(text)
}
