package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnauthorized matches any HTTPError carrying status 401.
	ErrUnauthorized = errors.New("not authenticated")
	// ErrMalformedResponse is returned when a 2xx body lacks the expected fields.
	ErrMalformedResponse = errors.New("malformed response")
)

// NetworkError reports a transport failure before any response was received.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError reports a non-2xx response.
type HTTPError struct {
	Endpoint string
	Status   int
	Detail   string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("%s: HTTP %d %s", e.Endpoint, e.Status, http.StatusText(e.Status))
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *HTTPError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// IsUnauthorized reports whether err came from a 401 response.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsNetwork reports whether err is a transport failure.
func IsNetwork(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

func malformed(endpoint, reason string) error {
	return fmt.Errorf("%s: %w: %s", endpoint, ErrMalformedResponse, reason)
}

// errorDetail extracts the "detail" field FastAPI puts on error bodies.
func errorDetail(body []byte) string {
	var payload struct {
		Detail interface{} `json:"detail"`
		Error  string      `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	switch v := payload.Detail.(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return strings.TrimSpace(payload.Error)
	default:
		return ""
	}
}
