package shared

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Local precondition failures. These never reach the network.
	ErrValidation = fmt.Errorf("validation failed")

	// Network failures and non-2xx responses.
	ErrTransport    = fmt.Errorf("catalog request failed")
	ErrUnauthorized = fmt.Errorf("%w: unauthorized", ErrTransport)

	// A response that parses as JSON but lacks a required field.
	ErrDataShape = fmt.Errorf("unexpected response shape")

	// Session errors
	ErrNotAuthenticated = fmt.Errorf("not authenticated")

	// A result that arrived after a newer request was issued.
	ErrSuperseded = fmt.Errorf("result superseded by a newer request")

	// A form submitted again while its previous submission is in flight.
	ErrBusy = fmt.Errorf("submission already in progress")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

// StatusError is a non-2xx response from the catalog.
//
// It unwraps to [ErrUnauthorized] for 401/403 and to [ErrTransport] otherwise.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v: %s %s returned status %d", e.Unwrap(), e.Method, e.Path, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	return ErrTransport
}

// Detail returns the server's error text, if any.
//
// Only meant for logs: auth failures must not echo it to users.
func (e *StatusError) Detail() string {
	return string(e.Body)
}

// Validation wraps a user-facing message in [ErrValidation].
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// IsValidation reports whether err is a local precondition failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
