package scraper

import (
	"errors"
	"fmt"
)

// UpstreamError is returned for transport failures, non-2xx responses and
// bodies that cannot be decoded. StatusCode is 0 when no response arrived.
type UpstreamError struct {
	Address    string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("upstream %s (status=%d): %s", e.Address, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("upstream %s: %s", e.Address, e.Err)
	default:
		return fmt.Sprintf("upstream %s: unexpected status %d", e.Address, e.StatusCode)
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// AsUpstreamError attempts to unwrap an error into an UpstreamError.
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return upstreamErr, true
	}
	return nil, false
}

// ExtensionError is returned by Download when the destination does not
// carry the expected file extension. It is raised before any request.
type ExtensionError struct {
	Path     string
	Expected string
}

func (e *ExtensionError) Error() string {
	return fmt.Sprintf("destination %s must have extension %s", e.Path, e.Expected)
}
