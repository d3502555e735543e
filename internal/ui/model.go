// ABOUTME: Bubbletea model for the listener TUI
// ABOUTME: Shows connection state, retry progress, and alert status
package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Model represents the TUI state
type Model struct {
	// Connection
	state      string
	endpoint   string
	retryCount int

	// Alerting
	alerting bool
	muted    bool

	// Messages
	lastMessage string
	received    int64

	// Dimensions
	width  int
	height int

	ctrl *Control
}

// StatusMsg updates TUI state
type StatusMsg struct {
	State       string
	Endpoint    string
	RetryCount  *int
	Alerting    *bool
	LastMessage string
	Received    int64
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := ""
	s += m.renderHeader()
	s += m.renderAlert()
	s += m.renderMessages()
	s += m.renderHelp()

	return s
}

// renderHeader renders connection status
func (m Model) renderHeader() string {
	status := m.state
	switch m.state {
	case "open":
		status = fmt.Sprintf("Connected to %s", m.endpoint)
	case "closed":
		if m.retryCount > 0 {
			status = fmt.Sprintf("Disconnected (retry %d pending)", m.retryCount)
		} else {
			status = "Disconnected"
		}
	case "connecting":
		status = fmt.Sprintf("Connecting to %s...", m.endpoint)
	case "closing":
		status = "Shutting down connection..."
	}

	return fmt.Sprintf(`┌─ Relay Listener ─────────────────────────────────────┐
│ Status: %-45s │
├──────────────────────────────────────────────────────┤
`, truncate(status, 45))
}

// renderAlert renders the audible alert state
func (m Model) renderAlert() string {
	alert := "quiet"
	if m.alerting {
		alert = "SOUNDING"
		if m.muted {
			alert = "SOUNDING (muted)"
		}
	}
	return fmt.Sprintf("│ Alert:  %-45s │\n", alert)
}

// renderMessages renders the inbound message summary
func (m Model) renderMessages() string {
	last := m.lastMessage
	if last == "" {
		last = "(none)"
	}
	return fmt.Sprintf("│ Received: %-43d │\n│ Last:   %-45s │\n",
		m.received, truncate(last, 45))
}

// renderHelp renders keyboard shortcuts
func (m Model) renderHelp() string {
	return `├──────────────────────────────────────────────────────┤
│ r:Reconnect  m:Mute  q:Quit                          │
└──────────────────────────────────────────────────────┘
`
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.ctrl != nil {
			select {
			case m.ctrl.Quit <- struct{}{}:
			default:
			}
		}
		return m, tea.Quit
	case "r":
		if m.ctrl != nil {
			select {
			case m.ctrl.Reconnect <- struct{}{}:
			default:
			}
		}
	case "m":
		m.muted = !m.muted
		if m.ctrl != nil {
			select {
			case m.ctrl.Mute <- m.muted:
			default:
			}
		}
	}

	return m, nil
}

// applyStatus updates model from status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.State != "" {
		m.state = msg.State
	}
	if msg.Endpoint != "" {
		m.endpoint = msg.Endpoint
	}
	if msg.RetryCount != nil {
		m.retryCount = *msg.RetryCount
	}
	if msg.Alerting != nil {
		m.alerting = *msg.Alerting
	}
	if msg.LastMessage != "" {
		m.lastMessage = msg.LastMessage
	}
	if msg.Received != 0 {
		m.received = msg.Received
	}
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}
