package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a derived, write-only fan-out record produced as a side
// effect of other mutations. Either RecipientRole or RecipientID is set:
// role-addressed rows reach every staff member with that role, id-addressed
// rows reach one user.
type Notification struct {
	ID            uuid.UUID  `json:"notification_id"`
	RecipientRole Role       `json:"recipient_role,omitempty"`
	RecipientID   *uuid.UUID `json:"recipient_id,omitempty"`
	Message       string     `json:"message"`
	Icon          string     `json:"icon,omitempty"`
	Priority      string     `json:"priority,omitempty"`
	Link          string     `json:"link,omitempty"`
	Read          bool       `json:"read"`
	CreatedAt     time.Time  `json:"created_at"`
}
