package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Upstream fetch errors. The loader and enrichment code wrap these with %w
// and only ever inspect them with errors.Is; none of them reach a client.
var (
	ErrTransport          = errors.New("transport failure")
	ErrMalformedBody      = errors.New("malformed response body")
	ErrRateLimitExceeded  = errors.New("rate limit exceeded")
	ErrRepositoryNotFound = errors.New("repository not found or private")
	ErrUpstreamStatus     = errors.New("unexpected upstream status")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// NewUpstreamStatusError classifies a non-success HTTP status from an upstream API.
func NewUpstreamStatusError(service string, statusCode int) error {
	switch statusCode {
	case http.StatusForbidden, http.StatusTooManyRequests:
		return fmt.Errorf("%s responded %d: %w", service, statusCode, ErrRateLimitExceeded)
	case http.StatusNotFound:
		return fmt.Errorf("%s responded %d: %w", service, statusCode, ErrRepositoryNotFound)
	default:
		return fmt.Errorf("%s responded %d: %w", service, statusCode, ErrUpstreamStatus)
	}
}

func NewTransportError(service string, cause error) error {
	return fmt.Errorf("%s: %w: %w", service, ErrTransport, cause)
}

func NewMalformedBodyError(service string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", service, ErrMalformedBody)
	}
	return fmt.Errorf("%s: %w: %w", service, ErrMalformedBody, cause)
}

func NewStorageError(operation string, cause error) error {
	return fmt.Errorf("%s: %w: %w", operation, ErrStorageUnavailable, cause)
}

func IsRateLimitError(err error) bool {
	return errors.Is(err, ErrRateLimitExceeded)
}

func IsRepositoryNotFoundError(err error) bool {
	return errors.Is(err, ErrRepositoryNotFound)
}

func IsTransportError(err error) bool {
	return errors.Is(err, ErrTransport)
}

func IsMalformedBodyError(err error) bool {
	return errors.Is(err, ErrMalformedBody)
}

func IsStorageError(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}
