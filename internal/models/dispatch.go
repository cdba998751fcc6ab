package models

import "time"

// Dispatch outcomes.
const (
	OutcomeSent       = "sent"
	OutcomeSuppressed = "suppressed"
	OutcomeFailed     = "failed"
)

// DispatchRecord is one journaled command attempt. It is informational only
// and never feeds back into displayed state.
type DispatchRecord struct {
	ID      string    `json:"id"`
	Command Command   `json:"command"`
	Path    string    `json:"path"`
	Outcome string    `json:"outcome"`
	Error   string    `json:"error,omitempty"`
	At      time.Time `json:"at"`
}
