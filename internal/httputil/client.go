package httputil

import "net/http"

// NewClient returns the HTTP client used for backend calls. No request
// timeout is set: a hung backend leaves the call pending until the
// caller's context is done.
func NewClient() *http.Client {
	return &http.Client{}
}
