package model

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports a missing or empty required input field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// HTTPStatus returns the HTTP-equivalent status for this failure.
func (e *ValidationError) HTTPStatus() int { return http.StatusBadRequest }

// NotFoundError reports an unknown record ID or file.
type NotFoundError struct {
	Kind string // "job application", "resume file", ...
	ID   int64  // zero when Path identifies the resource
	Path string
}

func (e *NotFoundError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s not found: %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%s with ID %d not found", e.Kind, e.ID)
}

func (e *NotFoundError) HTTPStatus() int { return http.StatusNotFound }

// ProviderUnavailableError means the availability probe failed or the
// provider endpoint was unreachable. No generation was attempted (or the
// attempt failed in a way indistinguishable from the provider being down).
type ProviderUnavailableError struct {
	Provider string
	Detail   string
}

func (e *ProviderUnavailableError) Error() string {
	return fmt.Sprintf("%s is not available: %s", e.Provider, e.Detail)
}

func (e *ProviderUnavailableError) HTTPStatus() int { return http.StatusServiceUnavailable }

// GenerationError wraps a provider call that failed after the availability
// probe passed.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("error generating text with %s: %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func (e *GenerationError) HTTPStatus() int { return http.StatusInternalServerError }

// ReadError means a source document could not be read or parsed.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("error reading document %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

func (e *ReadError) HTTPStatus() int { return http.StatusInternalServerError }

// FileSystemError means a generated artifact could not be written.
type FileSystemError struct {
	Path string
	Err  error
}

func (e *FileSystemError) Error() string {
	return fmt.Sprintf("error writing %s: %v", e.Path, e.Err)
}

func (e *FileSystemError) Unwrap() error { return e.Err }

func (e *FileSystemError) HTTPStatus() int { return http.StatusInternalServerError }

// HTTPError wraps a non-2xx response from a provider endpoint so the
// generation service can inspect the status code.
type HTTPError struct {
	StatusCode int
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps any error to its HTTP-equivalent status code. Errors
// outside the taxonomy map to 500.
func HTTPStatus(err error) int {
	var sc interface{ HTTPStatus() int }
	if errors.As(err, &sc) {
		return sc.HTTPStatus()
	}
	return http.StatusInternalServerError
}
