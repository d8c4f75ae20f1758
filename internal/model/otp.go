package model

import (
	"time"

	"github.com/google/uuid"
)

// OTP is a one-time passcode row keyed by lowercased email. At most one
// live (unverified, unexpired) code exists per email; verification deletes
// the row so a code can never be redeemed twice.
type OTP struct {
	ID        uuid.UUID
	Email     string
	Code      string
	Verified  bool
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the code is past its expiry at the given instant.
func (o OTP) Expired(now time.Time) bool { return now.After(o.ExpiresAt) }
