// ABOUTME: Relay protocol message type definitions
// ABOUTME: Defines the outbound JSON envelope and listener payloads
package protocol

// Message is the top-level wrapper for all outbound messages
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// ListenerHello announces this listener after the connection opens
type ListenerHello struct {
	ListenerID      string `json:"listener_id"`
	Name            string `json:"name"`
	Version         int    `json:"version"`
	SoftwareVersion string `json:"software_version,omitempty"`
}

// ListenerState reports the listener's current condition
type ListenerState struct {
	State      string `json:"state"` // connection state name
	RetryCount int    `json:"retry_count"`
	Alerting   bool   `json:"alerting"`
}

// ListenerAck acknowledges receipt of an application message
type ListenerAck struct {
	MessageID string `json:"message_id"`
}

// NewHello builds a listener/hello message.
func NewHello(listenerID, name string, version int, softwareVersion string) Message {
	return Message{
		Type: "listener/hello",
		Payload: ListenerHello{
			ListenerID:      listenerID,
			Name:            name,
			Version:         version,
			SoftwareVersion: softwareVersion,
		},
	}
}

// NewState builds a listener/state message.
func NewState(state string, retryCount int, alerting bool) Message {
	return Message{
		Type: "listener/state",
		Payload: ListenerState{
			State:      state,
			RetryCount: retryCount,
			Alerting:   alerting,
		},
	}
}

// NewAck builds a listener/ack message.
func NewAck(messageID string) Message {
	return Message{
		Type:    "listener/ack",
		Payload: ListenerAck{MessageID: messageID},
	}
}
