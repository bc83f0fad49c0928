// Package google adapts Google Cloud Translation v2, Text-to-Speech v1 and
// Vision v1 to the capability interfaces. Every client authenticates with a
// plain API key.
package google

import (
	"errors"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"sahachari/internal/provider"
)

// clientOptions prepends the API key to caller-supplied options (endpoint and
// HTTP client overrides in tests).
func clientOptions(apiKey string, extra []option.ClientOption) []option.ClientOption {
	return append([]option.ClientOption{option.WithAPIKey(apiKey)}, extra...)
}

// wrapErr converts googleapi errors into ExternalServiceErrors.
func wrapErr(name string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &provider.ExternalServiceError{Provider: name, StatusCode: gerr.Code, Err: err}
	}
	return provider.TransportError(name, err)
}
