// ABOUTME: JSON serializer for outbound messages
// ABOUTME: Satisfies the supervisor's pluggable Serializer contract
package protocol

import "encoding/json"

// JSONSerializer encodes outbound messages as JSON.
type JSONSerializer struct{}

// Marshal encodes v as JSON.
func (JSONSerializer) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}
