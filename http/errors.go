package http

import "fmt"

// HTTPError indicates an HTTP error response from the platform.
type HTTPError struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Body is the response body, when it was read.
	Body []byte
}

// Error returns a string representation of the HTTP error.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: status %d", e.StatusCode)
}
