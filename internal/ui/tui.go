// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program for the listener status display
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Control holds channels for commands issued from the TUI
type Control struct {
	Reconnect chan struct{}
	Mute      chan bool
	Quit      chan struct{}
}

// NewControl creates a new control handler
func NewControl() *Control {
	return &Control{
		Reconnect: make(chan struct{}, 1),
		Mute:      make(chan bool, 10),
		Quit:      make(chan struct{}, 1),
	}
}

// NewModel creates a new TUI model
func NewModel(ctrl *Control) Model {
	return Model{
		state: "closed",
		ctrl:  ctrl,
	}
}

// Run starts the TUI
func Run(ctrl *Control) (*tea.Program, error) {
	p := tea.NewProgram(NewModel(ctrl), tea.WithAltScreen())
	return p, nil
}
