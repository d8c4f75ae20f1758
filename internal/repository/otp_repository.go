package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rangerisrael/futura-home-sub004/internal/model"
)

// OTPRepo manages one-time passcode rows. Emails are lowercased at this
// boundary so every caller sees the same key. At most one live code exists
// per email: Replace deletes any prior unconsumed code before inserting.
type OTPRepo struct {
	db *sql.DB
}

func NewOTPRepo(db *sql.DB) *OTPRepo { return &OTPRepo{db: db} }

// Replace removes any unconsumed code for the email and inserts a fresh one
// in a single database transaction.
func (r *OTPRepo) Replace(ctx context.Context, email, code string, expiresAt time.Time) error {
	email = strings.ToLower(strings.TrimSpace(email))
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM otp_codes WHERE email=$1 AND verified=false", email); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO otp_codes (id, email, code, verified, expires_at) VALUES ($1,$2,$3,false,$4)",
		uuid.New(), email, code, expiresAt); err != nil {
		return err
	}
	return tx.Commit()
}

// GetByEmail returns the current code row for an email regardless of state,
// so the caller can distinguish used/expired/wrong-code failures.
func (r *OTPRepo) GetByEmail(ctx context.Context, email string) (model.OTP, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var o model.OTP
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, code, verified, expires_at, created_at
		 FROM otp_codes WHERE email=$1 ORDER BY created_at DESC LIMIT 1`, email).
		Scan(&o.ID, &o.Email, &o.Code, &o.Verified, &o.ExpiresAt, &o.CreatedAt)
	return o, err
}

// Consume deletes a code row after successful verification so the code can
// never be redeemed twice. Zero rows deleted means a concurrent verify beat
// this one; that is surfaced as sql.ErrNoRows.
func (r *OTPRepo) Consume(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM otp_codes WHERE id=$1", id)
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
