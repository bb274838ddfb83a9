package errs

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration = errors.New("configuration error")
	ErrAPI           = errors.New("api error")
	ErrCancelled     = errors.New("cancelled by user")
)

// ConfigurationError reports missing or unusable credentials. It is always
// returned before any request is sent.
type ConfigurationError struct{ err error }

func (e *ConfigurationError) Error() string        { return e.err.Error() }
func (e *ConfigurationError) Unwrap() error        { return e.err }
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

func Configuration(err error) error {
	if err == nil {
		return nil
	}
	return &ConfigurationError{err: err}
}

func Configurationf(format string, args ...any) error {
	return &ConfigurationError{err: fmt.Errorf(format, args...)}
}

// APIError wraps a transport failure or a non-2xx response from the build
// service. StatusCode is 0 when no response was received.
type APIError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err.Error())
}
func (e *APIError) Unwrap() error        { return e.Err }
func (e *APIError) Is(target error) bool { return target == ErrAPI }

func API(op string, statusCode int, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{Op: op, StatusCode: statusCode, Err: err}
}

// Cancelled marks err as a user cancellation, e.g. a dismissed picker.
func Cancelled(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrCancelled)
}
