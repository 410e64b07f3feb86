package motor

import (
	"errors"
	"fmt"
)

// ErrSuperseded is returned when a newer load or search was issued while this one was in flight.
var ErrSuperseded = errors.New("superseded by a newer request")

// TransportError captures network failures and non-2xx HTTP responses from the catalog API.
type TransportError struct {
	Operation  string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s request failed: %v", e.Operation, e.Err)
	}
	if e.Body == "" {
		return fmt.Sprintf("%s request failed: status %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("%s request failed: status %d: %s", e.Operation, e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError captures a catalog payload that could not be decoded.
type ParseError struct {
	Operation string
	URL       string
	Err       error
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s response could not be parsed: %v", e.Operation, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ImageFetchError describes a failed thumbnail download. It never leaves the image loader.
type ImageFetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *ImageFetchError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("image %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("image %s: status %d", e.URL, e.StatusCode)
}

func (e *ImageFetchError) Unwrap() error {
	return e.Err
}
