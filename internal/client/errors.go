package client

import (
	"errors"
	"fmt"
)

// ErrAuthExpired is returned for any backend 401. It is never handled at
// the call site; the session middleware is the single place that reacts
// to it by dropping the session and sending the browser to login.
var ErrAuthExpired = errors.New("authentication expired")

// ErrStockChanged is the backend rejecting a cart mutation because stock
// moved between the size-picker read and the submit.
var ErrStockChanged = errors.New("product stock changed")

// APIError carries a backend-reported failure. Message is the backend's
// own message field and is safe to surface to the user verbatim.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend error %d", e.Status)
}

// UserMessage extracts a message suitable for a transient notification.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrStockChanged) {
		return "Product stock changed, please review your cart"
	}
	return "Something went wrong, please try again"
}
