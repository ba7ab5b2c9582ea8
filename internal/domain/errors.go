package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every stage of a harvest run.
var (
	// ErrUpstreamUnavailable is returned when the site answers with a non-200 status.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrProtocolDrift is returned when a structural marker is missing from an otherwise
	// successful response.
	ErrProtocolDrift = errors.New("protocol drift")
	// ErrInvalidCategory is returned when a category slug is not part of the fixed set.
	ErrInvalidCategory = errors.New("invalid category")
	// ErrMalformedDocument is returned when an article page has no content container or title.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrPartialFailure is returned when at least one article of a batch could not be saved.
	ErrPartialFailure = errors.New("partial failure")
)

// UpstreamError carries the request URL and the status code of a rejected response.
type UpstreamError struct {
	URL        string
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s returned status %d", ErrUpstreamUnavailable, e.URL, e.StatusCode)
}

func (e *UpstreamError) Unwrap() error {
	return ErrUpstreamUnavailable
}

// DriftError names the marker that could not be located.
type DriftError struct {
	What string
	URL  string
}

func (e *DriftError) Error() string {
	return fmt.Sprintf("%s: %s not found in %s", ErrProtocolDrift, e.What, e.URL)
}

func (e *DriftError) Unwrap() error {
	return ErrProtocolDrift
}
