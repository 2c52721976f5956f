package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the user-facing failure of an API call. Message is the service's
// envelope message when one was provided, otherwise the call site's fixed
// fallback; the raw transport error, if any, stays behind Unwrap.
type Error struct {
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("api: %s", e.Message)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// IsUnauthorized reports whether err is an API error with a 401 or 403 status.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
}

// UserMessage extracts the displayable message from an API call error,
// falling back to the error's own text for non-API failures.
func UserMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
