package models

import "time"

// Severity classifies a transient notification for display.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Notification is a client-only toast message. It is never persisted and is
// dropped once its TTL elapses.
type Notification struct {
	// ID uniquely identifies the toast so that delayed expiry removes the
	// right entry even when newer toasts were pushed in between.
	ID string

	Message  string
	Severity Severity

	// TTL is how long the toast stays visible.
	TTL time.Duration
}
