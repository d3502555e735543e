// ABOUTME: Tests for TUI model and state management
// ABOUTME: Tests status updates, key handling, and rendering guards
package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNewModel(t *testing.T) {
	model := NewModel(nil) // Control is optional for testing

	if model.state != "closed" {
		t.Errorf("expected initial state 'closed', got %q", model.state)
	}
	if model.alerting {
		t.Error("expected alerting to be false initially")
	}
	if model.muted {
		t.Error("expected muted to be false initially")
	}
}

func TestStatusMsgConnection(t *testing.T) {
	model := NewModel(nil)

	model.applyStatus(StatusMsg{
		State:    "open",
		Endpoint: "ws://relay.local:9400/relay",
	})

	if model.state != "open" {
		t.Errorf("expected state 'open', got %q", model.state)
	}
	if model.endpoint != "ws://relay.local:9400/relay" {
		t.Errorf("unexpected endpoint: %q", model.endpoint)
	}
}

func TestStatusMsgRetryAndAlert(t *testing.T) {
	model := NewModel(nil)

	retries := 3
	alerting := true
	model.applyStatus(StatusMsg{
		State:      "closed",
		RetryCount: &retries,
		Alerting:   &alerting,
	})

	if model.retryCount != 3 {
		t.Errorf("expected retry count 3, got %d", model.retryCount)
	}
	if !model.alerting {
		t.Error("expected alerting to be true")
	}

	// Clearing the alert requires an explicit pointer, zero values are skipped.
	off := false
	model.applyStatus(StatusMsg{Alerting: &off})
	if model.alerting {
		t.Error("expected alerting to be false after clear")
	}
}

func TestStatusMsgMessages(t *testing.T) {
	model := NewModel(nil)

	model.applyStatus(StatusMsg{
		LastMessage: `{"type":"job/assigned"}`,
		Received:    7,
	})

	if model.received != 7 {
		t.Errorf("expected received 7, got %d", model.received)
	}
	if model.lastMessage != `{"type":"job/assigned"}` {
		t.Errorf("unexpected last message: %q", model.lastMessage)
	}
}

func TestKeyReconnect(t *testing.T) {
	ctrl := NewControl()
	model := NewModel(ctrl)

	model.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

	select {
	case <-ctrl.Reconnect:
	default:
		t.Error("expected reconnect command from 'r' key")
	}
}

func TestKeyMuteToggles(t *testing.T) {
	ctrl := NewControl()
	model := NewModel(ctrl)

	next, _ := model.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	m := next.(Model)
	if !m.muted {
		t.Error("expected muted after first 'm'")
	}

	select {
	case got := <-ctrl.Mute:
		if !got {
			t.Error("expected mute command true")
		}
	default:
		t.Error("expected mute command from 'm' key")
	}
}

func TestKeyQuit(t *testing.T) {
	ctrl := NewControl()
	model := NewModel(ctrl)

	_, cmd := model.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}

	select {
	case <-ctrl.Quit:
	default:
		t.Error("expected quit signal on channel")
	}
}

func TestViewBeforeSizing(t *testing.T) {
	model := NewModel(nil)
	if got := model.View(); got != "Loading..." {
		t.Errorf("expected loading placeholder before sizing, got %q", got)
	}
}

func TestViewShowsState(t *testing.T) {
	model := NewModel(nil)
	model.width = 80
	model.height = 24
	model.applyStatus(StatusMsg{State: "open", Endpoint: "ws://relay.local:9400/relay"})

	view := model.View()
	if !strings.Contains(view, "Connected to ws://relay.local:9400/relay") {
		t.Errorf("expected connected status in view, got:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 45); got != "short" {
		t.Errorf("expected unchanged string, got %q", got)
	}
	long := strings.Repeat("x", 60)
	got := truncate(long, 45)
	if len(got) != 45 || !strings.HasSuffix(got, "...") {
		t.Errorf("expected 45-char ellipsized string, got %q (len %d)", got, len(got))
	}
}
