package pakasir

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrProtocol      = errors.New("protocol error")
	ErrTransport     = errors.New("transport error")
	ErrParse         = errors.New("parse error")
	ErrValidation    = errors.New("validation error")

	// ErrProjectMismatch is reported alongside ErrValidation when a webhook
	// names a project other than the client's slug.
	ErrProjectMismatch = errors.New("project mismatch")
)

// Error is returned by every operation in this package.
type Error struct {
	Kind    error
	Message string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pakasir: %s: %v", e.Message, e.Err)
	}
	return "pakasir: " + e.Message
}

func (e *Error) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// StatusError is the cause of a transport error raised for a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

func configurationError(msg string) error {
	return &Error{Kind: ErrConfiguration, Message: msg}
}

func protocolError(msg string, cause error) error {
	return &Error{Kind: ErrProtocol, Message: msg, Err: cause}
}

func transportError(msg string, cause error) error {
	return &Error{Kind: ErrTransport, Message: msg, Err: cause}
}

func parseError(msg string, cause error) error {
	return &Error{Kind: ErrParse, Message: msg, Err: cause}
}

func validationError(msg string, cause error) error {
	return &Error{Kind: ErrValidation, Message: msg, Err: cause}
}
