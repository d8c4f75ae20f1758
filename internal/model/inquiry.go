package model

import (
	"time"

	"github.com/google/uuid"
)

// InquiryStatuses is the closed set of statuses an inquiry may hold. Status
// updates outside this list are rejected with a 400 naming the valid values.
var InquiryStatuses = []string{"pending", "approved", "declined", "in_progress", "responded", "closed"}

// ValidInquiryStatus reports whether s is one of the six allowed statuses.
func ValidInquiryStatus(s string) bool {
	for _, v := range InquiryStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Inquiry is a client question or request routed to staff.
type Inquiry struct {
	ID          uuid.UUID `json:"inquiry_id"`
	ClientName  string    `json:"client_name"`
	ClientEmail string    `json:"client_email"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
