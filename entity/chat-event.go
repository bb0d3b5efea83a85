package entity

import "time"

// ChatEvent represents one inbound or outbound chat message, as streamed
// to connected admin WebSocket clients.
type ChatEvent struct {
	Sender    string    `json:"sender"`
	Direction string    `json:"direction"` // "incoming" | "outgoing"
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
