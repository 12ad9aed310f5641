package catalog

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrMissingAPIKey is returned by every operation when no credential is configured.
// No request is sent in that case.
var ErrMissingAPIKey = errors.New("TMDB API key is missing: set TMDB_API_KEY or tmdb.api_key in the config file")

// UpstreamError is returned for non-2xx responses
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("TMDB API error (status %d): %s", e.Status, e.Body)
}

// NotFound reports a 404 from the catalog
func (e *UpstreamError) NotFound() bool {
	return e.Status == 404
}

// EmptyResponseError is returned when a 2xx response has a blank or unparsable body
type EmptyResponseError struct {
	Path string
	Err  error
}

func (e *EmptyResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unparsable response received from TMDB (%s): %v", e.Path, e.Err)
	}
	return fmt.Sprintf("empty response received from TMDB (%s)", e.Path)
}

func (e *EmptyResponseError) Unwrap() error {
	return e.Err
}

// TransportError wraps network failures (DNS, refused connections, timeouts, resets).
// These are surfaced once and never retried.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("TMDB request failed (%s): %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout returns true if the failure was a timeout or an expired deadline
func (e *TransportError) Timeout() bool {
	var netErr net.Error
	if errors.As(e.Err, &netErr) && netErr.Timeout() {
		return true
	}
	return strings.Contains(e.Err.Error(), "i/o timeout")
}

// Unreachable returns true if the host could not be resolved or refused the connection
func (e *TransportError) Unreachable() bool {
	var dnsErr *net.DNSError
	if errors.As(e.Err, &dnsErr) {
		return true
	}
	errStr := e.Err.Error()
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host")
}
