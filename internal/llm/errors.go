package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"time"
)

// The error taxonomy is closed: every failure crossing the provider boundary
// is one of the types below. Providers classify their SDK errors into this
// set at a single point (their mapXxxError function); callers only ever
// inspect these types with errors.As.

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrNetwork indicates the request never reached the provider: DNS failure,
// connection refused, timeout, or a connection dropped mid-transfer.
type ErrNetwork struct {
	Err error
}

func (e *ErrNetwork) Error() string {
	return fmt.Sprintf("network failure: %v", e.Err)
}

func (e *ErrNetwork) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the model returned content that does not
// parse or does not conform to the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid model response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider rejected or failed the
// request for any reason not covered by the other kinds.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider unavailable: %v", e.Err)
	}
	return "provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// classifyTransport buckets errors that never produced an API response.
// Network-shaped failures become ErrNetwork; everything else becomes
// ErrProviderUnavailable. Called by each provider's error mapper as the
// fallthrough case.
func classifyTransport(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &ErrNetwork{Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &ErrNetwork{Err: err}
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return &ErrNetwork{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}
