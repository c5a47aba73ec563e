package types

import "time"

// Library message types
const (
	MessageSnapshot = "snapshot"
	MessageRefresh  = "refresh"
	MessageError    = "error"
)

// LibraryMessage is pushed to websocket clients whenever the library is listed
type LibraryMessage struct {
	Type      string    `json:"type"` // "snapshot", "error"
	Tracks    []Track   `json:"tracks,omitempty"`
	Count     int       `json:"count"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ClientMessage is what a websocket client may send
type ClientMessage struct {
	Type string `json:"type"`
}
