// Package hub fans websocket messages out to every connected client
// through a single goroutine that owns the client set.
package hub

import "encoding/json"

// MessageType selects the websocket frame type a Message is written as.
type MessageType int

// Frame types.
const (
	JSONMessage   MessageType = iota // text frame carrying JSON
	BinaryMessage                    // binary frame, e.g. a JPEG thumbnail
)

// Message is one payload written unchanged to every client.
type Message struct {
	Type MessageType
	Data []byte
}

// NewJSONMessage wraps already-encoded JSON.
func NewJSONMessage(data []byte) Message {
	return Message{Type: JSONMessage, Data: data}
}

// NewBinaryMessage wraps raw bytes.
func NewBinaryMessage(data []byte) Message {
	return Message{Type: BinaryMessage, Data: data}
}

// EncodeJSON marshals v into a text message.
func EncodeJSON(v interface{}) (Message, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Message{}, err
	}
	return NewJSONMessage(data), nil
}
