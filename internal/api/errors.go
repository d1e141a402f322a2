package api

import "fmt"

// RequestError is a non-2xx response from the API. Message carries the
// server-supplied explanation when one was present.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api: request failed (status %d)", e.Status)
}

// IsAuthError reports whether the error is a 401/403 response, meaning the
// held token is missing or no longer valid.
func IsAuthError(err error) bool {
	re, ok := err.(*RequestError)
	return ok && (re.Status == 401 || re.Status == 403)
}
