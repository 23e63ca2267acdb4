package client

import (
	"errors"
	"fmt"

	"github.com/chinmaya-kumar-behera/ecommerce-frontend/pkg/domain"
)

// HTTPError represents a non-2xx HTTP response from the API. Message is the
// server's reason, unchanged.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Is maps the response onto the domain taxonomy: every HTTP failure is a
// network/server error, 401 is also unauthenticated and 403 unauthorized.
func (e *HTTPError) Is(target error) bool {
	switch target {
	case domain.ErrNetwork:
		return true
	case domain.ErrUnauthenticated:
		return e.StatusCode == 401
	case domain.ErrUnauthorized:
		return e.StatusCode == 403
	}
	return false
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// Reason returns the server's message when err carries one, else err.Error().
func Reason(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}
	return err.Error()
}
