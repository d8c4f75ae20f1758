package model

import (
	"time"

	"github.com/google/uuid"
)

// Contract ties a client to a property unit with an agreed price and an
// installment plan. BalanceCents is a derived aggregate recomputed whenever
// a payment is recorded.
type Contract struct {
	ID           uuid.UUID `json:"contract_id"`
	PropertyID   uuid.UUID `json:"property_id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	OwnerName    string    `json:"owner_name"`
	OwnerEmail   string    `json:"owner_email"`
	OwnerPhone   string    `json:"owner_phone"`
	PriceCents   int64     `json:"price_cents"`
	BalanceCents int64     `json:"balance_cents"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PaymentSchedule is one installment of a contract's plan. Installments are
// ordered by InstallmentNumber ascending.
type PaymentSchedule struct {
	ID                uuid.UUID  `json:"schedule_id"`
	ContractID        uuid.UUID  `json:"contract_id"`
	InstallmentNumber int        `json:"installment_number"`
	AmountCents       int64      `json:"amount_cents"`
	DueDate           time.Time  `json:"due_date"`
	PaidCents         int64      `json:"paid_cents"`
	PaidAt            *time.Time `json:"paid_at,omitempty"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
}

// PaymentTransaction logs a payment recorded against a contract installment.
type PaymentTransaction struct {
	ID            uuid.UUID `json:"payment_id"`
	ContractID    uuid.UUID `json:"contract_id"`
	ScheduleID    uuid.UUID `json:"schedule_id"`
	ReceiptNumber string    `json:"receipt_number"`
	AmountCents   int64     `json:"amount_cents"`
	Method        string    `json:"method"`
	RecordedBy    uuid.UUID `json:"recorded_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// TransferHistory snapshots a contract's previous owner fields so an
// ownership change can be reverted by copying them back.
type TransferHistory struct {
	ID             uuid.UUID `json:"transfer_id"`
	ContractID     uuid.UUID `json:"contract_id"`
	PrevOwnerID    uuid.UUID `json:"prev_owner_id"`
	PrevOwnerName  string    `json:"prev_owner_name"`
	PrevOwnerEmail string    `json:"prev_owner_email"`
	PrevOwnerPhone string    `json:"prev_owner_phone"`
	TransferredBy  uuid.UUID `json:"transferred_by"`
	CreatedAt      time.Time `json:"created_at"`
}
