package eventbus

import (
	"encoding/json"
	"fmt"
	"strings"
)

// envelope is the wire form of an event on a stream.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// dlqStreamName returns the dead-letter stream paired with stream.
func dlqStreamName(stream string) string {
	return stream + "-DLQ"
}

// consumerNameFor builds a consumer name unique to one bus instance.
func consumerNameFor(eventType string, seq int64) string {
	return fmt.Sprintf("consumer:%s:%d", strings.ToLower(eventType), seq)
}
