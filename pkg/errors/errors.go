package errors

import (
	"errors"
	"fmt"
)

// Failure modes of the playback subsystem. Every failure resolves to either
// "show nothing" (feed) or "close the viewer" (unit); view tracking loss is
// tolerated outright.
var (
	ErrFeedUnavailable = errors.New("story feed unavailable")
	ErrUnitUnavailable = errors.New("unit stories unavailable")
	ErrViewTracking    = errors.New("view tracking failed")
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
)

// Error represents a custom error type
type Error struct {
	Code    string
	Message string
	Err     error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new error with a message
func New(message string) error {
	return &Error{
		Message: message,
	}
}

// Wrap wraps an error with additional message
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Message: message,
		Err:     err,
	}
}

// WrapWithCode wraps an error with a code and message
func WrapWithCode(err error, code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// GetCode returns the error code if it exists
func GetCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsFeedUnavailable returns true if the error means the feed could not load
func IsFeedUnavailable(err error) bool {
	return errors.Is(err, ErrFeedUnavailable)
}

// IsUnitUnavailable returns true if the error means a unit's stories could not load
func IsUnitUnavailable(err error) bool {
	return errors.Is(err, ErrUnitUnavailable)
}

// IsViewTracking returns true if the error came from the view-tracking path
func IsViewTracking(err error) bool {
	return errors.Is(err, ErrViewTracking)
}
