package adapter

import (
	"net/http"
	"time"
)

// NewHTTPClient returns the client shared by all adapters. A zero timeout leaves
// the transport default in place; requests are never retried.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
