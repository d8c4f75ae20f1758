// Package queue defines message payloads exchanged over the message broker.
package queue

// EmailRequestedEvent is published whenever the API wants an email sent
// (OTP codes, inquiry follow-ups). The background consumer delivers it
// through the SMTP relay; the publishing request never waits on delivery.
type EmailRequestedEvent struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	Kind     string `json:"kind"` // "otp" | "followup"
	QueuedAt string `json:"queued_at"`
}
