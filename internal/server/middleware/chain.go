package middleware

import (
	"net/http"
	"slices"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Stack is an ordered middleware list; the first entry sees the request first.
type Stack []Middleware

// Then wraps h with every middleware in s.
func (s Stack) Then(h http.Handler) http.Handler {
	for _, mw := range slices.Backward(s) {
		h = mw(h)
	}
	return h
}
