package coreapi

import (
	"errors"
	"fmt"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrTransport        = errors.New("transport failure")
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrDecode           = errors.New("decode failure")
)

// TokenError is returned when a bearer token could not be obtained.
type TokenError struct {
	Kind       error
	StatusCode int
	Err        error
}

func (e *TokenError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("token request: %v: status %d: %v", e.Kind, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("token request: %v: status %d", e.Kind, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("token request: %v: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("token request: %v", e.Kind)
	}
}

func (e *TokenError) Unwrap() []error {
	return joinCauses(e.Kind, e.Err)
}

// RequestError is returned when an operation exchange failed before a usable
// response was decoded.
type RequestError struct {
	Kind error
	URL  string
	Err  error
}

func (e *RequestError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("request %s: %v", e.URL, e.Kind)
	}
	return fmt.Sprintf("request %s: %v: %v", e.URL, e.Kind, e.Err)
}

func (e *RequestError) Unwrap() []error {
	return joinCauses(e.Kind, e.Err)
}

func joinCauses(kind, cause error) []error {
	out := make([]error, 0, 2)
	if kind != nil {
		out = append(out, kind)
	}
	if cause != nil {
		out = append(out, cause)
	}
	return out
}
