package moodle

import (
	"fmt"

	"github.com/jrsteele09/lms-mobile-gateway/internal/errors"
)

// Error is an application error reported by the LMS inside an otherwise
// successful response.
type Error struct {
	Function  string `json:"-"`
	Exception string `json:"exception"`
	ErrorCode string `json:"errorcode"`
	Message   string `json:"message"`
	DebugInfo string `json:"debuginfo,omitempty"`
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "Unknown error"
	}
	return fmt.Sprintf("moodle error: %s (%s, %s)", msg, e.Function, e.Exception)
}

func (e *Error) Unwrap() error {
	return errors.ErrUpstreamApplication
}

// StatusError is returned when the LMS answers with a non-2xx status.
type StatusError struct {
	Function   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("moodle %s: unexpected HTTP status %d", e.Function, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return errors.ErrUpstreamUnavailable
}
