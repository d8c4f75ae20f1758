package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/rangerisrael/futura-home-sub004/internal/model"
)

// AppointmentRepo provides CRUD and workflow transitions for tour bookings.
// All timestamp fields are stored in UTC. Status transitions are guarded by
// a conditional update on the expected prior status so that two concurrent
// requests cannot both apply the same transition.
type AppointmentRepo struct {
	db *sql.DB
}

// NewAppointmentRepo returns an AppointmentRepo bound to the given database.
func NewAppointmentRepo(db *sql.DB) *AppointmentRepo { return &AppointmentRepo{db: db} }

const appointmentCols = `id, property_id, client_name, client_email, client_phone, preferred_date, notes, status,
cs_approved_by, cs_approved_at, sales_approved_by, sales_approved_at,
rejected_by, rejected_at, rejected_reason, created_at, updated_at`

// Create inserts a new appointment with status pending and returns its id.
func (r *AppointmentRepo) Create(ctx context.Context, a *model.Appointment) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO appointments (id, property_id, client_name, client_email, client_phone, preferred_date, notes, status)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		id, a.PropertyID, a.ClientName, a.ClientEmail, a.ClientPhone, a.PreferredDate, a.Notes, model.AppointmentPending)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// GetByID loads a single appointment.
func (r *AppointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (model.Appointment, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+appointmentCols+" FROM appointments WHERE id=$1 LIMIT 1", id)
	return scanAppointment(row)
}

// List returns appointments, optionally filtered by client email and/or
// status. Empty filter values are ignored. Results are newest first.
func (r *AppointmentRepo) List(ctx context.Context, clientEmail, status string) ([]model.Appointment, error) {
	query := "SELECT " + appointmentCols + ` FROM appointments
WHERE ($1 = '' OR client_email = $1) AND ($2 = '' OR status = $2)
ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, clientEmail, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Appointment{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Update replaces the client-editable fields of a pending appointment.
func (r *AppointmentRepo) Update(ctx context.Context, id uuid.UUID, a *model.Appointment) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE appointments SET client_name=$2, client_email=$3, client_phone=$4, preferred_date=$5, notes=$6, updated_at=now()
		 WHERE id=$1`,
		id, a.ClientName, a.ClientEmail, a.ClientPhone, a.PreferredDate, a.Notes)
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

// Delete removes an appointment.
func (r *AppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM appointments WHERE id=$1", id)
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

// Approve applies one approval step as a compare-and-swap: the update only
// matches when the row still holds the expected prior status. Zero affected
// rows means the appointment is missing or was already processed, reported
// as ErrStateConflict so the handler can answer 400 rather than
// double-applying the transition.
func (r *AppointmentRepo) Approve(ctx context.Context, id uuid.UUID, from, to string, actor uuid.UUID, at time.Time) error {
	var col string
	switch to {
	case model.AppointmentCSApproved:
		col = "cs_approved"
	case model.AppointmentSalesApproved:
		col = "sales_approved"
	default:
		return ErrStateConflict
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE appointments SET status=$3, `+col+`_by=$4, `+col+`_at=$5, updated_at=now()
		 WHERE id=$1 AND status=$2`,
		id, from, to, actor, at)
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

// Reject moves an appointment to rejected from either pre-terminal state,
// recording actor, reason and time. Same CAS contract as Approve.
func (r *AppointmentRepo) Reject(ctx context.Context, id uuid.UUID, actor uuid.UUID, reason string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE appointments SET status=$2, rejected_by=$3, rejected_at=$4, rejected_reason=$5, updated_at=now()
		 WHERE id=$1 AND status IN ($6,$7)`,
		id, model.AppointmentRejected, actor, at, reason,
		model.AppointmentPending, model.AppointmentCSApproved)
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

type rowScanner interface{ Scan(dest ...any) error }

func scanAppointment(row rowScanner) (model.Appointment, error) {
	var (
		a                    model.Appointment
		notes                sql.NullString
		reason               sql.NullString
		csBy, salesBy, rejBy sql.NullString
		csAt, salesAt, rejAt sql.NullTime
	)
	err := row.Scan(&a.ID, &a.PropertyID, &a.ClientName, &a.ClientEmail, &a.ClientPhone,
		&a.PreferredDate, &notes, &a.Status,
		&csBy, &csAt, &salesBy, &salesAt,
		&rejBy, &rejAt, &reason, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return model.Appointment{}, err
	}
	a.Notes = notes.String
	if reason.Valid {
		a.RejectedReason = &reason.String
	}
	a.CSApprovedBy = parseNullUUID(csBy)
	a.SalesApprovedBy = parseNullUUID(salesBy)
	a.RejectedBy = parseNullUUID(rejBy)
	a.CSApprovedAt = nullTimePtr(csAt)
	a.SalesApprovedAt = nullTimePtr(salesAt)
	a.RejectedAt = nullTimePtr(rejAt)
	return a, nil
}

func parseNullUUID(s sql.NullString) *uuid.UUID {
	if !s.Valid {
		return nil
	}
	id, err := uuid.Parse(s.String)
	if err != nil {
		return nil
	}
	return &id
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
