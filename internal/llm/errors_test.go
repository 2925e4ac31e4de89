package llm

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"testing"
	"time"
)

type fakeNetError struct{}

func (fakeNetError) Error() string   { return "dial tcp: i/o timeout" }
func (fakeNetError) Timeout() bool   { return true }
func (fakeNetError) Temporary() bool { return true }

var _ net.Error = fakeNetError{}

func TestClassifyTransport(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantNetwork bool
	}{
		{
			name:        "url error",
			err:         &url.Error{Op: "Post", URL: "https://example.com", Err: errors.New("connection refused")},
			wantNetwork: true,
		},
		{
			name:        "net error",
			err:         fakeNetError{},
			wantNetwork: true,
		},
		{
			name:        "wrapped net error",
			err:         fmt.Errorf("sending request: %w", fakeNetError{}),
			wantNetwork: true,
		},
		{
			name:        "unexpected EOF",
			err:         io.ErrUnexpectedEOF,
			wantNetwork: true,
		},
		{
			name:        "other error",
			err:         errors.New("boom"),
			wantNetwork: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyTransport(tt.err)
			var netErr *ErrNetwork
			var unavail *ErrProviderUnavailable
			if tt.wantNetwork {
				if !errors.As(got, &netErr) {
					t.Fatalf("expected ErrNetwork, got %T", got)
				}
			} else {
				if !errors.As(got, &unavail) {
					t.Fatalf("expected ErrProviderUnavailable, got %T", got)
				}
			}
			if !errors.Is(got, tt.err) {
				t.Fatal("expected classified error to wrap the original")
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("status 429")
	var err error = &ErrRateLimit{RetryAfter: 30 * time.Second, Err: inner}
	if !errors.Is(err, inner) {
		t.Fatal("ErrRateLimit should unwrap to inner error")
	}

	err = &ErrNetwork{Err: inner}
	if !errors.Is(err, inner) {
		t.Fatal("ErrNetwork should unwrap to inner error")
	}

	err = &ErrInvalidResponse{Err: inner}
	if !errors.Is(err, inner) {
		t.Fatal("ErrInvalidResponse should unwrap to inner error")
	}
}

func TestErrProviderUnavailable_NilInner(t *testing.T) {
	err := &ErrProviderUnavailable{}
	if err.Error() != "provider unavailable" {
		t.Fatalf("message = %q", err.Error())
	}
}
