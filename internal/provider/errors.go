package provider

import (
	"errors"
	"fmt"
)

// ErrUnavailable is returned when the active provider does not support the
// requested language or feature.
var ErrUnavailable = errors.New("not supported by the active provider")

// ExternalServiceError reports a transport failure or a non-2xx response
// from a remote collaborator.
type ExternalServiceError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ExternalServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: request failed with status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// StatusError builds an ExternalServiceError for an unexpected HTTP status.
func StatusError(name string, status int) error {
	return &ExternalServiceError{Provider: name, StatusCode: status}
}

// TransportError wraps a failure that happened before a response was read.
func TransportError(name string, err error) error {
	return &ExternalServiceError{Provider: name, Err: err}
}
