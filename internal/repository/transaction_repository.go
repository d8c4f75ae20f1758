package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/rangerisrael/futura-home-sub004/internal/model"
)

// TransactionRepo reads reservation-fee transactions. Rows are created by
// ReservationRepo.Approve inside its transition transaction; this repo only
// lists and settles them.
type TransactionRepo struct {
	db *sql.DB
}

func NewTransactionRepo(db *sql.DB) *TransactionRepo { return &TransactionRepo{db: db} }

// ListByReservation returns all fee transactions for a reservation, newest
// first.
func (r *TransactionRepo) ListByReservation(ctx context.Context, reservationID uuid.UUID) ([]model.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, reservation_id, receipt_number, amount_cents, payment_status, due_date, created_at
		 FROM transactions WHERE reservation_id=$1 ORDER BY created_at DESC`, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Transaction{}
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.ReservationID, &t.ReceiptNumber, &t.AmountCents, &t.PaymentStatus, &t.DueDate, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// MarkCompleted settles a pending fee transaction. CAS on payment_status so
// a transaction cannot be settled twice.
func (r *TransactionRepo) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE transactions SET payment_status=$2 WHERE id=$1 AND payment_status=$3",
		id, model.PaymentCompleted, model.PaymentPending)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStateConflict
	}
	return nil
}
