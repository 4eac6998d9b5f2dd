package flows

import (
	"errors"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/algox/internal/shared"
)

// run drives m through one submission.
//
// A non-nil invalid error rejects the form before call runs. failure maps the
// call's error to the text the user sees.
func run(m *Machine, invalid error, call func() error, success string, failure func(error) string) error {
	if invalid != nil {
		m.Reject(validationMessage(invalid))
		return invalid
	}
	if err := m.Start(); err != nil {
		return err
	}

	if err := call(); err != nil {
		m.Fail(failure(err))
		return err
	}
	m.Succeed(success)
	return nil
}

// validationMessage strips the sentinel prefix from a validation error.
func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), shared.ErrValidation.Error()+": ")
}

// describe maps an error from the catalog to a message safe to show.
func describe(err error, fallback string) string {
	if errors.Is(err, shared.ErrUnauthorized) {
		return "Your session was rejected. Please log in again."
	}
	return fallback
}

// logFailure records the server's detail, which is never shown to the user.
func logFailure(logger *log.Logger, op string, err error) {
	var statusErr *shared.StatusError
	if errors.As(err, &statusErr) {
		logger.Warn(op+" failed", "status", statusErr.StatusCode, "detail", statusErr.Detail())
		return
	}
	logger.Warn(op+" failed", "error", err)
}
