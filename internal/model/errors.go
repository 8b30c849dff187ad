package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a dispatch failure.
type ErrorKind string

const (
	KindValidation      ErrorKind = "validation"
	KindUnknownProvider ErrorKind = "unknown_provider"
	KindProviderCall    ErrorKind = "provider_call"
	KindParse           ErrorKind = "parse"
	KindInternal        ErrorKind = "internal"
)

// ValidationError reports a missing required request field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UnknownProviderError reports a provider identifier outside the registered set.
type UnknownProviderError struct {
	Provider string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("Unknown provider: %s", e.Provider)
}

// ProviderCallError wraps an upstream HTTP failure or an unreadable success envelope.
// StatusCode is zero when the request never got a response.
type ProviderCallError struct {
	Provider   ProviderKind
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderCallError) Error() string {
	return e.Message
}

func (e *ProviderCallError) Unwrap() error {
	return e.Err
}

// ParseError reports that no structured result could be recovered from the raw text.
type ParseError struct {
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// KindOf returns the ErrorKind for err, or KindInternal for anything unclassified.
func KindOf(err error) ErrorKind {
	var (
		validationErr *ValidationError
		unknownErr    *UnknownProviderError
		callErr       *ProviderCallError
		parseErr      *ParseError
	)
	switch {
	case errors.As(err, &validationErr):
		return KindValidation
	case errors.As(err, &unknownErr):
		return KindUnknownProvider
	case errors.As(err, &callErr):
		return KindProviderCall
	case errors.As(err, &parseErr):
		return KindParse
	default:
		return KindInternal
	}
}

// IsClientError reports whether err was caused by the caller's input.
func IsClientError(err error) bool {
	switch KindOf(err) {
	case KindValidation, KindUnknownProvider:
		return true
	default:
		return false
	}
}
