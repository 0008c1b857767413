package backend

import "fmt"

// NetworkError wraps a transport failure or a non-success response from
// the backend. Status is zero when the request never got a response.
type NetworkError struct {
	Op     string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: backend returned status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ValidationError carries the backend's message for a rejected payload.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConfigurationError signals that the backend base address is still the
// deployment placeholder. It is raised before any network traffic.
type ConfigurationError struct{}

func (e *ConfigurationError) Error() string {
	return "prediction backend address is not configured"
}
