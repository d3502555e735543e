// ABOUTME: Self-healing WebSocket connection supervisor
// ABOUTME: Owns the socket lifecycle, state machine, and exponential retry scheduling
package conn

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"
)

// Transport opens a socket to an endpoint. Implementations live outside
// this package; the supervisor only consumes the contract.
type Transport interface {
	Open(endpoint string) (Conn, error)
}

// Conn is an open socket. Receive blocks for the next inbound payload
// and returns an error when the stream terminates. Close initiates a
// close handshake that eventually terminates the stream.
type Conn interface {
	Receive() ([]byte, error)
	Send(data []byte) error
	Close() error
}

// MessageHandler receives each inbound application message. It runs
// inline in the event-processing path and must not block for long.
type MessageHandler interface {
	Handle(payload []byte)
}

// HandlerFunc adapts a function to the MessageHandler interface.
type HandlerFunc func(payload []byte)

// Handle calls f(payload).
func (f HandlerFunc) Handle(payload []byte) {
	f(payload)
}

// Serializer encodes outbound messages before they reach the transport.
type Serializer interface {
	Marshal(v any) ([]byte, error)
}

// Config holds supervisor configuration
type Config struct {
	// Endpoint is the single fixed WebSocket endpoint.
	Endpoint string

	// Transport opens connections. Required.
	Transport Transport

	// Serializer encodes outbound messages. Required.
	Serializer Serializer

	// Handler receives inbound application messages. Optional; when nil,
	// non-sentinel payloads are ignored.
	Handler MessageHandler

	// Clock schedules retry timers. Defaults to SystemClock.
	Clock Clock

	// RetryBase is the exponent base for backoff delays. Must be >= 1.
	// Defaults to 2.
	RetryBase float64

	// RetryUnit is the time unit backoff delays are measured in.
	// Defaults to one second.
	RetryUnit time.Duration

	// BackgroundSentinel and ForegroundSentinel are the exact inbound
	// payloads treated as control signals rather than application data.
	BackgroundSentinel string
	ForegroundSentinel string

	// OnBackground fires when the background sentinel arrives.
	OnBackground func()

	// OnForeground fires when the foreground sentinel arrives.
	OnForeground func()

	// OnStateChange is called after every state transition.
	OnStateChange func(State)

	// OnError receives classified connection failures for diagnostics.
	OnError func(error)
}

// Supervisor keeps one WebSocket connection alive, reconnecting with
// exponential backoff when the stream drops. It is the sole mutator of
// the connection state; all transitions are serialized under a mutex so
// handlers run to completion before the next event is processed.
type Supervisor struct {
	cfg Config

	mu         sync.Mutex
	state      State
	conn       Conn
	retryCount int
	retryTimer Timer
	attempt    uint64
	disposed   bool
}

// New creates a supervisor. The connection is not opened until
// ConnectAndSubscribe is called.
func New(cfg Config) (*Supervisor, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	if cfg.Transport == nil {
		return nil, fmt.Errorf("transport is required")
	}
	if cfg.Serializer == nil {
		return nil, fmt.Errorf("serializer is required")
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.RetryBase == 0 {
		cfg.RetryBase = 2
	}
	if cfg.RetryBase < 1 {
		return nil, fmt.Errorf("retry base must be >= 1, got %v", cfg.RetryBase)
	}
	if cfg.RetryUnit == 0 {
		cfg.RetryUnit = time.Second
	}

	return &Supervisor{cfg: cfg, state: Closed}, nil
}

// ConnectAndSubscribe starts a connection attempt. It is the sole entry
// point for starting or resuming the connection and is safe to call
// repeatedly: only the first call while Closed has effect, which guards
// against duplicate concurrent subscriptions.
func (s *Supervisor) ConnectAndSubscribe() {
	s.mu.Lock()
	if s.disposed || s.state != Closed {
		s.mu.Unlock()
		return
	}
	if s.retryTimer != nil {
		// a manual connect supersedes the pending retry
		s.retryTimer.Stop()
		s.retryTimer = nil
	}
	s.state = Connecting
	s.attempt++
	gen := s.attempt
	s.mu.Unlock()

	s.notifyState(Connecting)
	go s.dial(gen)
}

// dial opens the transport for one attempt and settles the outcome.
func (s *Supervisor) dial(gen uint64) {
	c, err := s.cfg.Transport.Open(s.cfg.Endpoint)

	s.mu.Lock()
	if gen != s.attempt || s.disposed {
		s.mu.Unlock()
		if c != nil {
			c.Close()
		}
		return
	}

	if err != nil {
		wasClosing := s.state == Closing
		s.state = Closed
		if !wasClosing {
			// a failed handshake after Close was requested needs no retry
			s.scheduleRetryLocked()
		}
		s.mu.Unlock()
		s.notifyState(Closed)
		s.reportError(classifyDial(err))
		return
	}

	if s.state == Closing {
		// Close was requested while the handshake was in flight
		s.state = Closed
		s.mu.Unlock()
		c.Close()
		s.notifyState(Closed)
		return
	}

	s.conn = c
	s.state = Open
	s.retryCount = 0
	s.mu.Unlock()

	s.notifyState(Open)
	go s.listen(gen, c)
}

// listen consumes the inbound stream for one attempt until it terminates.
func (s *Supervisor) listen(gen uint64, c Conn) {
	for {
		payload, err := c.Receive()
		if err != nil {
			s.streamEnded(gen, err)
			return
		}
		if !s.currentAttempt(gen) {
			// late event from a superseded attempt
			return
		}
		s.dispatch(payload)
	}
}

// dispatch decodes one inbound payload: sentinel control signals invoke
// their hooks, everything else goes to the generic handler. Unrecognized
// payloads never tear down the listener loop.
func (s *Supervisor) dispatch(payload []byte) {
	switch text := string(payload); {
	case s.cfg.BackgroundSentinel != "" && text == s.cfg.BackgroundSentinel:
		if s.cfg.OnBackground != nil {
			s.cfg.OnBackground()
		}
	case s.cfg.ForegroundSentinel != "" && text == s.cfg.ForegroundSentinel:
		if s.cfg.OnForeground != nil {
			s.cfg.OnForeground()
		}
	default:
		if s.cfg.Handler != nil {
			s.cfg.Handler.Handle(payload)
		}
	}
}

// streamEnded handles stream termination for one attempt. An unexpected
// termination schedules a retry; an expected one (after Close) does not.
func (s *Supervisor) streamEnded(gen uint64, cause error) {
	s.mu.Lock()
	if gen != s.attempt || s.disposed || s.state == Closed {
		s.mu.Unlock()
		return
	}
	s.conn = nil
	prev := s.state
	s.state = Closed
	if prev != Closing {
		s.scheduleRetryLocked()
	}
	s.mu.Unlock()

	s.notifyState(Closed)
	if prev == Open {
		s.reportError(&Failure{Kind: UnexpectedlyClosed, Cause: cause})
	}
}

// scheduleRetryLocked computes the backoff delay, bumps the retry count,
// and arms the one-shot retry timer. At most one timer is pending: the
// state machine only schedules from the transition into Closed, and any
// previous timer is stopped first.
func (s *Supervisor) scheduleRetryLocked() {
	if s.retryTimer != nil {
		s.retryTimer.Stop()
	}
	delay := retryDelay(s.cfg.RetryBase, s.cfg.RetryUnit, s.retryCount)
	s.retryCount++
	log.Printf("Scheduling reconnect attempt %d in %v", s.retryCount, delay)
	s.retryTimer = s.cfg.Clock.Schedule(delay, s.retryFired)
}

// retryFired re-enters ConnectAndSubscribe when the backoff elapses. A
// callback that lost the race with Dispose becomes a no-op.
func (s *Supervisor) retryFired() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.retryTimer = nil
	s.mu.Unlock()
	s.ConnectAndSubscribe()
}

// retryDelay is unit * base^n.
func retryDelay(base float64, unit time.Duration, n int) time.Duration {
	return time.Duration(math.Pow(base, float64(n)) * float64(unit))
}

// Send serializes and forwards a message, best-effort: it is silently
// dropped unless the connection is Open. Callers that need delivery
// guarantees must check State first.
func (s *Supervisor) Send(v any) {
	s.mu.Lock()
	if s.state != Open || s.conn == nil {
		s.mu.Unlock()
		return
	}
	c := s.conn
	s.mu.Unlock()

	data, err := s.cfg.Serializer.Marshal(v)
	if err != nil {
		log.Printf("Dropping outbound message: %v", err)
		return
	}
	if err := c.Send(data); err != nil {
		log.Printf("Send failed: %v", err)
	}
}

// Close requests a graceful shutdown. The state becomes Closing until
// the stream terminates, and no retry is scheduled for that termination.
func (s *Supervisor) Close() {
	s.mu.Lock()
	if s.disposed || s.state == Closed || s.state == Closing {
		s.mu.Unlock()
		return
	}
	s.state = Closing
	c := s.conn
	s.mu.Unlock()

	s.notifyState(Closing)
	if c != nil {
		c.Close()
	}
}

// Dispose tears the supervisor down: the pending retry timer is
// canceled, the socket is forced closed, and the state is left Closed.
// Safe to call multiple times.
func (s *Supervisor) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	s.attempt++
	if s.retryTimer != nil {
		s.retryTimer.Stop()
		s.retryTimer = nil
	}
	c := s.conn
	s.conn = nil
	changed := s.state != Closed
	s.state = Closed
	s.mu.Unlock()

	if c != nil {
		c.Close()
	}
	if changed {
		s.notifyState(Closed)
	}
}

// State returns the current connection state.
func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// RetryCount returns the number of consecutive failed attempts since
// the last successful open.
func (s *Supervisor) RetryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.retryCount
}

// currentAttempt reports whether gen identifies the live attempt.
func (s *Supervisor) currentAttempt(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen == s.attempt && !s.disposed
}

// notifyState calls the OnStateChange callback if set
func (s *Supervisor) notifyState(st State) {
	if s.cfg.OnStateChange != nil {
		s.cfg.OnStateChange(st)
	}
}

// reportError calls the OnError callback if set
func (s *Supervisor) reportError(err error) {
	if s.cfg.OnError != nil {
		s.cfg.OnError(err)
	} else {
		log.Printf("Connection error: %v", err)
	}
}
