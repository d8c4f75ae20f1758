package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/rangerisrael/futura-home-sub004/internal/model"
)

// InquiryRepo provides CRUD for client inquiries.
type InquiryRepo struct {
	db *sql.DB
}

func NewInquiryRepo(db *sql.DB) *InquiryRepo { return &InquiryRepo{db: db} }

const inquiryCols = "id, client_name, client_email, subject, message, status, created_at, updated_at"

// Create inserts an inquiry with status pending.
func (r *InquiryRepo) Create(ctx context.Context, q *model.Inquiry) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO inquiries (id, client_name, client_email, subject, message, status)
		 VALUES ($1,$2,$3,$4,$5,'pending')`,
		id, q.ClientName, q.ClientEmail, q.Subject, q.Message)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *InquiryRepo) GetByID(ctx context.Context, id uuid.UUID) (model.Inquiry, error) {
	var q model.Inquiry
	err := r.db.QueryRowContext(ctx,
		"SELECT "+inquiryCols+" FROM inquiries WHERE id=$1 LIMIT 1", id).
		Scan(&q.ID, &q.ClientName, &q.ClientEmail, &q.Subject, &q.Message, &q.Status, &q.CreatedAt, &q.UpdatedAt)
	return q, err
}

// List returns inquiries filtered by status when status is non-empty.
func (r *InquiryRepo) List(ctx context.Context, status string) ([]model.Inquiry, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+inquiryCols+" FROM inquiries WHERE ($1 = '' OR status = $1) ORDER BY created_at DESC",
		status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Inquiry{}
	for rows.Next() {
		var q model.Inquiry
		if err := rows.Scan(&q.ID, &q.ClientName, &q.ClientEmail, &q.Subject, &q.Message, &q.Status, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// UpdateStatus sets the inquiry status. The handler validates the value
// against the closed status list before calling.
func (r *InquiryRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE inquiries SET status=$2, updated_at=now() WHERE id=$1", id, status)
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

// Delete removes an inquiry.
func (r *InquiryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM inquiries WHERE id=$1", id)
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
