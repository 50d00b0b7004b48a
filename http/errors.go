// Package http provides a retrying HTTP client for outbound
// notification delivery.
package http

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for delivery failures.
var (
	// ErrBadRequest indicates the endpoint rejected the payload.
	ErrBadRequest = errors.New("bad request")

	// ErrUnauthorized indicates invalid or missing authentication.
	ErrUnauthorized = errors.New("authentication failed")

	// ErrForbidden indicates the endpoint refused the delivery.
	ErrForbidden = errors.New("permission denied")

	// ErrNotFound indicates the endpoint does not exist.
	ErrNotFound = errors.New("endpoint not found")

	// ErrRateLimited indicates the endpoint rate limit was exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrServerError indicates a server-side error occurred.
	ErrServerError = errors.New("server error")
)

// DeliveryError represents a failed delivery to an external endpoint.
type DeliveryError struct {
	// Service is the name of the destination (e.g., "slack", "webhook").
	Service string

	// StatusCode is the HTTP status code returned.
	StatusCode int

	// Message is the error message from the endpoint.
	Message string

	// Endpoint is the URL that was called.
	Endpoint string

	// RequestID is the request ID for debugging (if available).
	RequestID string
}

// Error implements the error interface.
func (e *DeliveryError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("%s delivery error (%d) at %s [%s]: %s",
			e.Service, e.StatusCode, e.Endpoint, e.RequestID, e.Message)
	}
	return fmt.Sprintf("%s delivery error (%d) at %s: %s",
		e.Service, e.StatusCode, e.Endpoint, e.Message)
}

// Unwrap returns the underlying sentinel error based on status code.
func (e *DeliveryError) Unwrap() error {
	switch e.StatusCode {
	case 400:
		return ErrBadRequest
	case 401:
		return ErrUnauthorized
	case 403:
		return ErrForbidden
	case 404:
		return ErrNotFound
	case 429:
		return ErrRateLimited
	default:
		if e.StatusCode >= 500 {
			return ErrServerError
		}
		return nil
	}
}
