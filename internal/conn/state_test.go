// ABOUTME: Tests for connection state and failure kind string forms
// ABOUTME: Ensures observers see stable names for every value
package conn

import (
	"testing"
)

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Closed, "closed"},
		{Connecting, "connecting"},
		{Open, "open"},
		{Closing, "closing"},
		{State(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestFailureKindString(t *testing.T) {
	tests := []struct {
		kind FailureKind
		want string
	}{
		{ConnectionFailed, "connection failed"},
		{UnexpectedlyClosed, "unexpectedly closed"},
		{AuthenticationFailed, "authentication failed"},
		{FailureKind(42), "unknown failure"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("FailureKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestInitialStateIsClosed(t *testing.T) {
	sup, err := New(Config{
		Endpoint:   "ws://localhost:9400/relay",
		Transport:  &fakeTransport{},
		Serializer: jsonSerializer{},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if got := sup.State(); got != Closed {
		t.Errorf("expected fresh supervisor to be Closed, got %v", got)
	}
	if got := sup.RetryCount(); got != 0 {
		t.Errorf("expected fresh retry count 0, got %d", got)
	}
}
