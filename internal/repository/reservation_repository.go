package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/rangerisrael/futura-home-sub004/internal/model"
	"github.com/rangerisrael/futura-home-sub004/internal/utils"
)

// ReservationRepo provides CRUD and approval transitions for property
// reservations. Approval creates the dependent reservation-fee transaction
// inside the same database transaction; revert deletes only fee rows that
// are still unpaid.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationCols = `id, property_id, client_id, client_email, amount_cents, status,
approved_by, approved_at, rejected_reason, created_at, updated_at`

// Create inserts a reservation with status pending and returns its id.
func (r *ReservationRepo) Create(ctx context.Context, v *model.Reservation) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reservations (id, property_id, client_id, client_email, amount_cents, status)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		id, v.PropertyID, v.ClientID, v.ClientEmail, v.AmountCents, model.ReservationPending)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// GetByID loads a single reservation.
func (r *ReservationRepo) GetByID(ctx context.Context, id uuid.UUID) (model.Reservation, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+reservationCols+" FROM reservations WHERE id=$1 LIMIT 1", id)
	return scanReservation(row)
}

// List returns reservations, optionally filtered by client id and/or
// status. Empty filters are ignored.
func (r *ReservationRepo) List(ctx context.Context, clientID uuid.UUID, status string) ([]model.Reservation, error) {
	query := "SELECT " + reservationCols + ` FROM reservations
WHERE ($1 = '00000000-0000-0000-0000-000000000000'::uuid OR client_id = $1)
  AND ($2 = '' OR status = $2)
ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, clientID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Reservation{}
	for rows.Next() {
		v, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Update replaces the staff-editable fields while the reservation is still
// pending. Rows that already left pending cannot be edited, so the update is
// guarded on status like the transitions are.
func (r *ReservationRepo) Update(ctx context.Context, id uuid.UUID, v *model.Reservation) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET client_email=$3, amount_cents=$4, updated_at=now()
		 WHERE id=$1 AND status=$2`,
		id, model.ReservationPending, v.ClientEmail, v.AmountCents)
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

// Delete removes a reservation.
func (r *ReservationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM reservations WHERE id=$1", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Approve transitions pending -> approved as a compare-and-swap and creates
// the reservation-fee transaction in the same database transaction. The fee
// receipt derives from the reservation id and the due date is seven days
// after approval. Returns the created transaction on success.
func (r *ReservationRepo) Approve(ctx context.Context, id uuid.UUID, actor uuid.UUID, feeCents int64, at time.Time) (model.Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Transaction{}, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE reservations SET status=$3, approved_by=$4, approved_at=$5, updated_at=now()
		 WHERE id=$1 AND status=$2`,
		id, model.ReservationPending, model.ReservationApproved, actor, at)
	if err != nil {
		return model.Transaction{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Transaction{}, err
	}
	if n == 0 {
		return model.Transaction{}, ErrStateConflict
	}

	t := model.Transaction{
		ID:            uuid.New(),
		ReservationID: id,
		ReceiptNumber: utils.ReceiptNumber(id, at),
		AmountCents:   feeCents,
		PaymentStatus: model.PaymentPending,
		DueDate:       at.Add(7 * 24 * time.Hour),
		CreatedAt:     at,
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO transactions (id, reservation_id, receipt_number, amount_cents, payment_status, due_date)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		t.ID, t.ReservationID, t.ReceiptNumber, t.AmountCents, t.PaymentStatus, t.DueDate)
	if err != nil {
		return model.Transaction{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Transaction{}, err
	}
	return t, nil
}

// Reject transitions pending -> rejected (CAS) with a reason.
func (r *ReservationRepo) Reject(ctx context.Context, id uuid.UUID, reason string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET status=$3, rejected_reason=$4, updated_at=now()
		 WHERE id=$1 AND status=$2`,
		id, model.ReservationPending, model.ReservationRejected, reason)
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

// Revert moves an approved or rejected reservation back to pending and
// deletes dependent fee transactions that are still unpaid. Completed
// transactions are left untouched.
func (r *ReservationRepo) Revert(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE reservations SET status=$2, approved_by=NULL, approved_at=NULL, rejected_reason=NULL, updated_at=now()
		 WHERE id=$1 AND status IN ($3,$4)`,
		id, model.ReservationPending, model.ReservationApproved, model.ReservationRejected)
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

	_, err = tx.ExecContext(ctx,
		"DELETE FROM transactions WHERE reservation_id=$1 AND payment_status=$2",
		id, model.PaymentPending)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func scanReservation(row rowScanner) (model.Reservation, error) {
	var (
		v      model.Reservation
		by     sql.NullString
		at     sql.NullTime
		reason sql.NullString
	)
	err := row.Scan(&v.ID, &v.PropertyID, &v.ClientID, &v.ClientEmail, &v.AmountCents, &v.Status,
		&by, &at, &reason, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return model.Reservation{}, err
	}
	v.ApprovedBy = parseNullUUID(by)
	v.ApprovedAt = nullTimePtr(at)
	if reason.Valid {
		v.RejectedReason = &reason.String
	}
	return v, nil
}
