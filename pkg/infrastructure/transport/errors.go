package transport

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthorized = errors.New("request was not authorized")
	ErrForbidden    = errors.New("access forbidden")
)

// APIError is a non-2xx backend answer. The body is kept verbatim for
// caller-side messaging.
type APIError struct {
	Status int
	Method string
	Path   string
	Body   []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: backend returned %d", e.Method, e.Path, e.Status)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	default:
		return nil
	}
}

// StatusCode extracts the backend status from err, or 0 when err is not
// an APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
