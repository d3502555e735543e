// ABOUTME: Connection state enumeration for the supervisor
// ABOUTME: Exactly one state is active at any time
package conn

// State describes the lifecycle phase of the supervised connection.
type State int

const (
	// Closed means no active socket; a new attempt may be started.
	Closed State = iota

	// Connecting means the handshake is in flight with no prior open confirmed.
	Connecting

	// Open means the handshake completed and sends are permitted.
	Open

	// Closing means a local shutdown was initiated; awaiting stream termination.
	Closing
)

// String returns the string representation of a State.
func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Connecting:
		return "connecting"
	case Open:
		return "open"
	case Closing:
		return "closing"
	default:
		return "unknown"
	}
}
