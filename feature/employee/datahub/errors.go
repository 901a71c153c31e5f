package datahub

import (
	"errors"
	"fmt"
)

// ErrUnexpectedResponse is returned when a response body is not a record envelope.
var ErrUnexpectedResponse = errors.New("unexpected record source response")

// APIError describes a failed request after retries were exhausted or a
// non-retryable status was returned.
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
	Attempts   int
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("record source error from %s (status %d, %d attempts): %s", e.Endpoint, e.StatusCode, e.Attempts, e.Message)
	}
	return fmt.Sprintf("record source error from %s (%d attempts): %s", e.Endpoint, e.Attempts, e.Message)
}

// Unwrap returns the underlying transport error, if any.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the status is worth another attempt.
func Retryable(status int) bool {
	return status == 429 || status >= 500
}
