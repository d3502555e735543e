// ABOUTME: WebSocket transport for the connection supervisor
// ABOUTME: Wraps gorilla/websocket dialing and classifies auth rejections
package transport

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/relaywire/relay-go/internal/conn"
)

const closeWriteTimeout = 2 * time.Second

// WebSocket dials endpoints with gorilla/websocket.
type WebSocket struct {
	dialer *websocket.Dialer
	header http.Header
}

// NewWebSocket creates a transport. header may be nil; it is sent with
// the handshake request (e.g. for bearer tokens).
func NewWebSocket(header http.Header) *WebSocket {
	return &WebSocket{
		dialer: websocket.DefaultDialer,
		header: header,
	}
}

// Open dials the endpoint. An HTTP 401/403 handshake response is
// surfaced as a conn.AuthError so the supervisor can classify it.
func (t *WebSocket) Open(endpoint string) (conn.Conn, error) {
	ws, resp, err := t.dialer.Dial(endpoint, t.header)
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			return nil, &conn.AuthError{Cause: fmt.Errorf("dial %s: %w (status %d)", endpoint, err, resp.StatusCode)}
		}
		return nil, fmt.Errorf("dial %s: %w", endpoint, err)
	}
	return &wsConn{ws: ws}, nil
}

// wsConn adapts a gorilla connection to the supervisor's Conn contract.
type wsConn struct {
	ws *websocket.Conn
}

// Receive blocks for the next message. Text and binary frames are both
// returned as raw payload bytes; the error terminates the stream.
func (c *wsConn) Receive() ([]byte, error) {
	_, data, err := c.ws.ReadMessage()
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Send writes one text message.
func (c *wsConn) Send(data []byte) error {
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// Close sends a close frame and closes the socket, which terminates the
// read loop on the other side of the stream.
func (c *wsConn) Close() error {
	deadline := time.Now().Add(closeWriteTimeout)
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	// best effort; the peer may already be gone
	_ = c.ws.WriteControl(websocket.CloseMessage, msg, deadline)
	return c.ws.Close()
}
