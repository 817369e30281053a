package protocol

import (
	"errors"
	"fmt"
)

// Kind categorizes a protocol-layer failure so callers (chiefly the
// transport client's retry loop) can distinguish a malformed, non-retryable
// message from a transient connection/timeout/io failure without
// string-matching error text.
//
// Grounded on the teacher's enumerated DNS rcode/error-kind split in
// dns/errors.go, generalized from a fixed RCODE set to the four error
// families spec.md §7 names.
type Kind int

const (
	// KindInvalidMessage marks malformed framing: bad start line, headers
	// that never terminate, a declared content-length that doesn't fit.
	KindInvalidMessage Kind = iota
	// KindLimitExceeded marks a message that exceeded MaxMessageSize.
	KindLimitExceeded
	// KindConnection marks a dial/handshake/TLS failure.
	KindConnection
	// KindTimeout marks a deadline exceeded on any stage.
	KindTimeout
	// KindIO marks a read/write failure not otherwise classified.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindInvalidMessage:
		return "invalid_message"
	case KindLimitExceeded:
		return "limit_exceeded"
	case KindConnection:
		return "connection"
	case KindTimeout:
		return "timeout"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error wraps an underlying error with a Kind so retry policy can branch
// on it at the type level rather than inspecting message text.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Retryable reports whether the transport client's retry loop should
// attempt this fetch again. Protocol-validity errors are never retried;
// connection, timeout, and I/O errors are.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindConnection, KindTimeout, KindIO:
		return true
	default:
		return false
	}
}

// New wraps err with the given Kind. Returns nil if err is nil.
func New(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// Retryable reports whether err (if it is, or wraps, a *Error) indicates
// a retryable failure. A plain error (not produced by this package) is
// treated as non-retryable.
func Retryable(err error) bool {
	var pe *Error
	if !errors.As(err, &pe) {
		return false
	}
	return pe.Retryable()
}
