package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Use errors.Is to branch on them.
var (
	// ErrNetwork marks a request that never produced a response
	// (DNS failure, connection refused, cancelled context, ...).
	ErrNetwork = errors.New("network error")

	// ErrInvalidResponse marks a 2xx response whose body is not the JSON we expected.
	ErrInvalidResponse = errors.New("invalid response")
)

// APIError is returned for every non-2xx response.
// Message is the response body text, or "API error: <status>" when the body is empty.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Detail extracts the "detail" field of a FastAPI-style error body.
// It falls back to the raw message when the body is not such an object.
func (e *APIError) Detail() string {
	var body struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal([]byte(e.Message), &body); err != nil || body.Detail == nil {
		return e.Message
	}
	if s, ok := body.Detail.(string); ok {
		return s
	}
	// Validation errors come back as a list of objects
	raw, err := json.Marshal(body.Detail)
	if err != nil {
		return e.Message
	}
	return string(raw)
}

func newAPIError(status int, body []byte) *APIError {
	msg := string(body)
	if strings.TrimSpace(msg) == "" {
		msg = fmt.Sprintf("API error: %d", status)
	}
	return &APIError{StatusCode: status, Message: msg}
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}
