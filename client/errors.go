package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is returned for any non-2xx backend response.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	StatusText string
	Body       string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("api %s %s: %d %s", e.Method, e.Path, e.StatusCode, e.StatusText)
	if body := strings.TrimSpace(e.Body); body != "" {
		msg += ": " + body
	}
	return msg
}

// IsStatus reports whether err wraps an APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

func newAPIError(method, path string, resp *http.Response, body []byte) *APIError {
	statusText := http.StatusText(resp.StatusCode)
	if parts := strings.SplitN(resp.Status, " ", 2); len(parts) == 2 && parts[1] != "" {
		statusText = parts[1]
	}
	return &APIError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		StatusText: statusText,
		Body:       string(body),
	}
}
