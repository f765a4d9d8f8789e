package rally

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid rally configuration")
	// ErrUserNotFound indicates the login user could not be resolved
	ErrUserNotFound = errors.New("rally user not found")
	// ErrInvalidResponse indicates a response body that is not valid JSON
	ErrInvalidResponse = errors.New("invalid response from rally")
	// ErrAPI is matched by every error reported inside a response envelope
	ErrAPI = errors.New("rally API exception")
)

// TransportError is returned when a request never produced an HTTP response
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("rally transport error: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPStatusError represents a non-2xx response from Rally
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("rally API error: status %d: %s", e.StatusCode, e.Body)
}

// IsNotFound checks if the error indicates a not found response
func (e *HTTPStatusError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *HTTPStatusError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// APIError carries the Errors list of a response envelope
type APIError struct {
	Messages []string
}

func (e *APIError) Error() string {
	return "rally API error: " + strings.Join(e.Messages, "\n")
}

// Is reports whether target is ErrAPI
func (e *APIError) Is(target error) bool {
	return target == ErrAPI
}

// APIWarning carries the Warnings list of a response envelope.
// Warnings are treated as failures.
type APIWarning struct {
	Messages []string
}

func (e *APIWarning) Error() string {
	return "rally API warning: " + strings.Join(e.Messages, "\n")
}

// Is reports whether target is ErrAPI
func (e *APIWarning) Is(target error) bool {
	return target == ErrAPI
}
