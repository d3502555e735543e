// ABOUTME: Error classification for connection failures
// ABOUTME: Distinguishes failed handshakes, unexpected closures, and auth rejections
package conn

import (
	"errors"
	"fmt"
)

// FailureKind classifies how a connection attempt ended.
type FailureKind int

const (
	// ConnectionFailed means the handshake never completed.
	ConnectionFailed FailureKind = iota

	// UnexpectedlyClosed means the stream terminated while open.
	UnexpectedlyClosed

	// AuthenticationFailed means the server rejected the connection
	// during the handshake. Handled like ConnectionFailed by the state
	// machine; distinguished only for diagnostics.
	AuthenticationFailed
)

// String returns the string representation of a FailureKind.
func (k FailureKind) String() string {
	switch k {
	case ConnectionFailed:
		return "connection failed"
	case UnexpectedlyClosed:
		return "unexpectedly closed"
	case AuthenticationFailed:
		return "authentication failed"
	default:
		return "unknown failure"
	}
}

// Failure is the classified form of a transport-level error. It is
// reported through the OnError callback and never propagated further.
type Failure struct {
	Kind  FailureKind
	Cause error
}

func (f *Failure) Error() string {
	if f.Cause == nil {
		return f.Kind.String()
	}
	return fmt.Sprintf("%s: %v", f.Kind, f.Cause)
}

func (f *Failure) Unwrap() error {
	return f.Cause
}

// AuthError marks a handshake rejection the transport classified as an
// authentication failure. Transports return it from Open.
type AuthError struct {
	Cause error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication rejected: %v", e.Cause)
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}

// classifyDial maps a failed Open into a Failure.
func classifyDial(err error) *Failure {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return &Failure{Kind: AuthenticationFailed, Cause: err}
	}
	return &Failure{Kind: ConnectionFailed, Cause: err}
}
