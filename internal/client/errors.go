package client

import (
	"errors"
	"fmt"
)

// Kind classifies a request failure so callers can branch without
// string matching or downcasting.
type Kind int

const (
	// KindTransport covers connection, DNS and timeout failures where the
	// request never produced an HTTP response.
	KindTransport Kind = iota + 1

	// KindRequest means the server responded with a non-2xx status.
	KindRequest

	// KindDecode means the response body did not match the expected shape.
	KindDecode
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindRequest:
		return "request"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by Client operations.
// Status and Body are populated only for KindRequest, so callers can
// distinguish e.g. invalid credentials (401) from server failures.
type Error struct {
	Kind   Kind
	Status int
	Body   []byte
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindRequest:
		if len(e.Body) > 0 {
			return fmt.Sprintf("request failed (HTTP %d): %s", e.Status, e.Body)
		}
		return fmt.Sprintf("request failed (HTTP %d)", e.Status)
	case KindDecode:
		return fmt.Sprintf("failed to decode response: %v", e.Err)
	case KindTransport:
		return fmt.Sprintf("transport error: %v", e.Err)
	default:
		return "request failed"
	}
}

func (e *Error) Unwrap() error { return e.Err }

// IsTransport reports whether err is a transport-kind client error.
func IsTransport(err error) bool { return hasKind(err, KindTransport) }

// IsRequestFailure reports whether err is a non-2xx response error.
func IsRequestFailure(err error) bool { return hasKind(err, KindRequest) }

// IsDecode reports whether err is a response decoding error.
func IsDecode(err error) bool { return hasKind(err, KindDecode) }

// StatusCode returns the HTTP status carried by err, or 0 if err is not
// a request-kind failure.
func StatusCode(err error) int {
	var ce *Error
	if errors.As(err, &ce) && ce.Kind == KindRequest {
		return ce.Status
	}
	return 0
}

func hasKind(err error, k Kind) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == k
}
