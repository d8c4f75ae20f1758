package model

import (
	"time"

	"github.com/google/uuid"
)

// Reservation statuses.
const (
	ReservationPending  = "pending"
	ReservationApproved = "approved"
	ReservationRejected = "rejected"
)

// Transaction payment statuses.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
)

// Reservation records a client's hold on a property unit. Approval spawns a
// reservation-fee Transaction; reverting back to pending deletes any
// dependent transaction that is still unpaid.
type Reservation struct {
	ID             uuid.UUID  `json:"reservation_id"`
	PropertyID     uuid.UUID  `json:"property_id"`
	ClientID       uuid.UUID  `json:"client_id"`
	ClientEmail    string     `json:"client_email"`
	AmountCents    int64      `json:"amount_cents"`
	Status         string     `json:"status"`
	ApprovedBy     *uuid.UUID `json:"approved_by,omitempty"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`
	RejectedReason *string    `json:"rejected_reason,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Transaction is a billable record attached to a reservation or contract.
// ReceiptNumber follows RCT-<year>-<8 chars of the parent reservation id>.
type Transaction struct {
	ID            uuid.UUID `json:"transaction_id"`
	ReservationID uuid.UUID `json:"reservation_id"`
	ReceiptNumber string    `json:"receipt_number"`
	AmountCents   int64     `json:"amount_cents"`
	PaymentStatus string    `json:"payment_status"`
	DueDate       time.Time `json:"due_date"`
	CreatedAt     time.Time `json:"created_at"`
}
