package fabric

import "fmt"

// APIError is a non-success reply from the fabric controller.
type APIError struct {
	StatusCode int
	URL        string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("fabric controller returned %d for %s: %s", e.StatusCode, e.URL, e.Message)
	}
	return fmt.Sprintf("fabric controller returned %d for %s", e.StatusCode, e.URL)
}
