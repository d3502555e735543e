// ABOUTME: Main listener application orchestration
// ABOUTME: Wires the supervisor, transport, alerter, discovery, and TUI together
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/relaywire/relay-go/internal/audio"
	"github.com/relaywire/relay-go/internal/conn"
	"github.com/relaywire/relay-go/internal/discovery"
	"github.com/relaywire/relay-go/internal/protocol"
	"github.com/relaywire/relay-go/internal/transport"
	"github.com/relaywire/relay-go/internal/ui"
	"github.com/relaywire/relay-go/internal/version"
)

const (
	protocolVersion  = 1
	discoveryTimeout = 10 * time.Second
	stateInterval    = 30 * time.Second
)

// Config holds listener configuration
type Config struct {
	Endpoint           string
	Name               string
	AuthToken          string
	RetryBase          float64
	RetryUnit          time.Duration
	BackgroundSentinel string
	ForegroundSentinel string
	AlertSound         string
	Volume             int
	Port               int
	UseTUI             bool
}

// Listener represents the main listener application
type Listener struct {
	config     Config
	listenerID string
	endpoint   string

	sup       *conn.Supervisor
	alerter   *audio.Alerter
	discovery *discovery.Manager
	tuiProg   *tea.Program
	ctrl      *ui.Control

	received atomic.Int64
	ctx      context.Context
	cancel   context.CancelFunc
}

// New creates a new listener
func New(config Config) *Listener {
	ctx, cancel := context.WithCancel(context.Background())

	return &Listener{
		config:     config,
		listenerID: uuid.New().String(),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Control returns the TUI control channels, nil when the TUI is off.
func (l *Listener) Control() *ui.Control {
	return l.ctrl
}

// Start resolves the endpoint, builds the supervisor, and connects.
func (l *Listener) Start() error {
	if l.config.UseTUI {
		l.ctrl = ui.NewControl()
		prog, err := ui.Run(l.ctrl)
		if err != nil {
			return fmt.Errorf("failed to start TUI: %w", err)
		}
		l.tuiProg = prog
		go l.tuiProg.Run()
	}

	if l.config.AlertSound != "" {
		alerter, err := audio.NewAlerter(l.config.AlertSound)
		if err != nil {
			// Audio is a side effect, not a reason to refuse to run.
			log.Printf("Alert sound unavailable: %v", err)
		} else {
			alerter.SetVolume(l.config.Volume)
			l.alerter = alerter
		}
	}

	endpoint := l.config.Endpoint
	if endpoint == "" {
		resolved, err := l.resolveEndpoint()
		if err != nil {
			return err
		}
		endpoint = resolved
	}
	l.endpoint = endpoint
	l.updateTUI(ui.StatusMsg{Endpoint: endpoint})

	var header http.Header
	if l.config.AuthToken != "" {
		header = http.Header{}
		header.Set("Authorization", "Bearer "+l.config.AuthToken)
	}

	sup, err := conn.New(conn.Config{
		Endpoint:           endpoint,
		Transport:          transport.NewWebSocket(header),
		Serializer:         protocol.JSONSerializer{},
		Handler:            conn.HandlerFunc(l.handleMessage),
		RetryBase:          l.config.RetryBase,
		RetryUnit:          l.config.RetryUnit,
		BackgroundSentinel: l.config.BackgroundSentinel,
		ForegroundSentinel: l.config.ForegroundSentinel,
		OnBackground:       l.handleBackground,
		OnForeground:       l.handleForeground,
		OnStateChange:      l.handleStateChange,
		OnError:            l.handleError,
	})
	if err != nil {
		return fmt.Errorf("failed to create supervisor: %w", err)
	}
	l.sup = sup

	if l.ctrl != nil {
		go l.handleControls()
	}
	go l.stateLoop()

	l.sup.ConnectAndSubscribe()
	return nil
}

// resolveEndpoint browses mDNS for a relay server when no endpoint is
// configured.
func (l *Listener) resolveEndpoint() (string, error) {
	log.Printf("No endpoint configured, starting discovery...")

	l.discovery = discovery.NewManager(discovery.Config{
		ListenerName: l.config.Name,
		Port:         l.config.Port,
	})
	if err := l.discovery.Advertise(); err != nil {
		log.Printf("mDNS advertise failed: %v", err)
	}
	l.discovery.Browse()

	select {
	case server := <-l.discovery.Servers():
		log.Printf("Discovered relay server at %s", server.Endpoint())
		return server.Endpoint(), nil
	case <-time.After(discoveryTimeout):
		return "", fmt.Errorf("no relay server found after %v", discoveryTimeout)
	case <-l.ctx.Done():
		return "", l.ctx.Err()
	}
}

// handleMessage processes one inbound application message.
func (l *Listener) handleMessage(payload []byte) {
	n := l.received.Add(1)
	log.Printf("Message received: %s", payload)

	l.updateTUI(ui.StatusMsg{
		LastMessage: string(payload),
		Received:    n,
	})

	// Messages carrying an id are acknowledged; everything else is
	// display-only. Malformed payloads are logged and dropped.
	var envelope struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		log.Printf("Unparseable message payload: %v", err)
		return
	}
	if envelope.ID != "" {
		l.sup.Send(protocol.NewAck(envelope.ID))
	}
}

// handleBackground starts the looping alert.
func (l *Listener) handleBackground() {
	log.Printf("Background signal received")
	if l.alerter != nil {
		if err := l.alerter.Start(); err != nil {
			log.Printf("Failed to start alert: %v", err)
			return
		}
	}
	alerting := true
	l.updateTUI(ui.StatusMsg{Alerting: &alerting})
}

// handleForeground stops the looping alert.
func (l *Listener) handleForeground() {
	log.Printf("Foreground signal received")
	if l.alerter != nil {
		l.alerter.Stop()
	}
	alerting := false
	l.updateTUI(ui.StatusMsg{Alerting: &alerting})
}

// handleStateChange reacts to supervisor transitions.
func (l *Listener) handleStateChange(state conn.State) {
	log.Printf("Connection state: %v", state)

	retries := l.sup.RetryCount()
	l.updateTUI(ui.StatusMsg{
		State:      state.String(),
		RetryCount: &retries,
	})

	if state == conn.Open {
		l.sup.Send(protocol.NewHello(l.listenerID, l.config.Name, protocolVersion, version.Version))
	}
}

// handleError logs classified connection failures.
func (l *Listener) handleError(err error) {
	log.Printf("Connection error: %v", err)
}

// handleControls processes commands from the TUI
func (l *Listener) handleControls() {
	for {
		select {
		case <-l.ctrl.Reconnect:
			log.Printf("Manual reconnect requested")
			l.sup.ConnectAndSubscribe()
		case muted := <-l.ctrl.Mute:
			log.Printf("Alert mute: %v", muted)
			if l.alerter != nil {
				l.alerter.SetMuted(muted)
			}
		case <-l.ctx.Done():
			return
		}
	}
}

// stateLoop periodically reports listener state while connected.
func (l *Listener) stateLoop() {
	ticker := time.NewTicker(stateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			alerting := l.alerter != nil && l.alerter.Looping()
			state := l.sup.State()
			l.sup.Send(protocol.NewState(state.String(), l.sup.RetryCount(), alerting))
		case <-l.ctx.Done():
			return
		}
	}
}

// updateTUI forwards a status message when the TUI is running.
func (l *Listener) updateTUI(msg ui.StatusMsg) {
	if l.tuiProg != nil {
		l.tuiProg.Send(msg)
	}
}

// Stop tears the listener down.
func (l *Listener) Stop() {
	l.cancel()

	if l.sup != nil {
		l.sup.Dispose()
	}
	if l.alerter != nil {
		l.alerter.Close()
	}
	if l.discovery != nil {
		l.discovery.Stop()
	}
	if l.tuiProg != nil {
		l.tuiProg.Quit()
	}

	log.Printf("Listener stopped")
}
