package model

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses. A tour booking moves pending -> cs_approved ->
// sales_approved, or to rejected from either of the first two states.
const (
	AppointmentPending       = "pending"
	AppointmentCSApproved    = "cs_approved"
	AppointmentSalesApproved = "sales_approved"
	AppointmentRejected      = "rejected"
)

// Appointment records a property tour booking submitted by a client.
// Approval metadata columns are nullable and filled in as the row moves
// through the workflow; each transition stores the acting user and the time
// it happened.
type Appointment struct {
	ID              uuid.UUID  `json:"appointment_id"`
	PropertyID      uuid.UUID  `json:"property_id"`
	ClientName      string     `json:"client_name"`
	ClientEmail     string     `json:"client_email"`
	ClientPhone     string     `json:"client_phone"`
	PreferredDate   time.Time  `json:"preferred_date"`
	Notes           string     `json:"notes,omitempty"`
	Status          string     `json:"status"`
	CSApprovedBy    *uuid.UUID `json:"cs_approved_by,omitempty"`
	CSApprovedAt    *time.Time `json:"cs_approved_at,omitempty"`
	SalesApprovedBy *uuid.UUID `json:"sales_approved_by,omitempty"`
	SalesApprovedAt *time.Time `json:"sales_approved_at,omitempty"`
	RejectedBy      *uuid.UUID `json:"rejected_by,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectedReason  *string    `json:"rejected_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
