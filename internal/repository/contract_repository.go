package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/rangerisrael/futura-home-sub004/internal/model"
	"github.com/rangerisrael/futura-home-sub004/internal/utils"
)

// ContractRepo manages contracts, their installment schedules, payment logs
// and ownership transfers. Multi-statement mutations (payments, transfers)
// run inside one database transaction so the derived balance and the
// history snapshot cannot drift from the rows they describe.
type ContractRepo struct {
	db *sql.DB
}

func NewContractRepo(db *sql.DB) *ContractRepo { return &ContractRepo{db: db} }

const contractCols = `id, property_id, owner_id, owner_name, owner_email, owner_phone,
price_cents, balance_cents, status, created_at, updated_at`

// Create inserts a contract with its installment plan. Installments are
// numbered from 1 in the order given.
func (r *ContractRepo) Create(ctx context.Context, c *model.Contract, installments []model.PaymentSchedule) (uuid.UUID, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}
	defer func() { _ = tx.Rollback() }()

	id := uuid.New()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO contracts (id, property_id, owner_id, owner_name, owner_email, owner_phone, price_cents, balance_cents, status)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$7,'active')`,
		id, c.PropertyID, c.OwnerID, c.OwnerName, c.OwnerEmail, c.OwnerPhone, c.PriceCents)
	if err != nil {
		return uuid.Nil, err
	}
	for i, ins := range installments {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO payment_schedules (id, contract_id, installment_number, amount_cents, due_date, paid_cents, status)
			 VALUES ($1,$2,$3,$4,$5,0,'pending')`,
			uuid.New(), id, i+1, ins.AmountCents, ins.DueDate)
		if err != nil {
			return uuid.Nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *ContractRepo) GetByID(ctx context.Context, id uuid.UUID) (model.Contract, error) {
	var c model.Contract
	err := r.db.QueryRowContext(ctx,
		"SELECT "+contractCols+" FROM contracts WHERE id=$1 LIMIT 1", id).
		Scan(&c.ID, &c.PropertyID, &c.OwnerID, &c.OwnerName, &c.OwnerEmail, &c.OwnerPhone,
			&c.PriceCents, &c.BalanceCents, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// List returns contracts, optionally filtered by owner.
func (r *ContractRepo) List(ctx context.Context, ownerID uuid.UUID) ([]model.Contract, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+contractCols+` FROM contracts
WHERE ($1 = '00000000-0000-0000-0000-000000000000'::uuid OR owner_id = $1)
ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Contract{}
	for rows.Next() {
		var c model.Contract
		if err := rows.Scan(&c.ID, &c.PropertyID, &c.OwnerID, &c.OwnerName, &c.OwnerEmail, &c.OwnerPhone,
			&c.PriceCents, &c.BalanceCents, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Schedule returns the contract's installments ordered by installment
// number ascending.
func (r *ContractRepo) Schedule(ctx context.Context, contractID uuid.UUID) ([]model.PaymentSchedule, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, contract_id, installment_number, amount_cents, due_date, paid_cents, paid_at, status, created_at
		 FROM payment_schedules WHERE contract_id=$1 ORDER BY installment_number ASC`, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.PaymentSchedule{}
	for rows.Next() {
		var (
			s      model.PaymentSchedule
			paidAt sql.NullTime
		)
		if err := rows.Scan(&s.ID, &s.ContractID, &s.InstallmentNumber, &s.AmountCents, &s.DueDate,
			&s.PaidCents, &paidAt, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.PaidAt = nullTimePtr(paidAt)
		out = append(out, s)
	}
	return out, rows.Err()
}

// RecordPayment logs a payment against one installment: inserts the payment
// transaction, marks the installment, and recomputes the contract balance —
// all in one database transaction. Returns the created payment row.
func (r *ContractRepo) RecordPayment(ctx context.Context, contractID, scheduleID, recordedBy uuid.UUID, amountCents int64, method string, at time.Time) (model.PaymentTransaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.PaymentTransaction{}, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE payment_schedules SET paid_cents=paid_cents+$3, paid_at=$4,
		 status=CASE WHEN paid_cents+$3 >= amount_cents THEN 'paid' ELSE 'partial' END
		 WHERE id=$1 AND contract_id=$2`,
		scheduleID, contractID, amountCents, at)
	if err != nil {
		return model.PaymentTransaction{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.PaymentTransaction{}, err
	}
	if n == 0 {
		return model.PaymentTransaction{}, sql.ErrNoRows
	}

	p := model.PaymentTransaction{
		ID:          uuid.New(),
		ContractID:  contractID,
		ScheduleID:  scheduleID,
		AmountCents: amountCents,
		Method:      method,
		RecordedBy:  recordedBy,
		CreatedAt:   at,
	}
	p.ReceiptNumber = utils.ReceiptNumber(p.ID, at)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO payment_transactions (id, contract_id, schedule_id, receipt_number, amount_cents, method, recorded_by)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		p.ID, p.ContractID, p.ScheduleID, p.ReceiptNumber, p.AmountCents, p.Method, p.RecordedBy)
	if err != nil {
		return model.PaymentTransaction{}, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE contracts SET balance_cents = price_cents -
		 (SELECT COALESCE(SUM(paid_cents),0) FROM payment_schedules WHERE contract_id=$1),
		 updated_at=now() WHERE id=$1`,
		contractID)
	if err != nil {
		return model.PaymentTransaction{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.PaymentTransaction{}, err
	}
	return p, nil
}

// Payments returns the contract's payment log, newest first.
func (r *ContractRepo) Payments(ctx context.Context, contractID uuid.UUID) ([]model.PaymentTransaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, contract_id, schedule_id, receipt_number, amount_cents, method, recorded_by, created_at
		 FROM payment_transactions WHERE contract_id=$1 ORDER BY created_at DESC`, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.PaymentTransaction{}
	for rows.Next() {
		var p model.PaymentTransaction
		if err := rows.Scan(&p.ID, &p.ContractID, &p.ScheduleID, &p.ReceiptNumber, &p.AmountCents, &p.Method, &p.RecordedBy, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Transfer snapshots the current owner fields into transfer_history and
// applies the new owner, in one database transaction.
func (r *ContractRepo) Transfer(ctx context.Context, contractID, actor uuid.UUID, newOwnerID uuid.UUID, name, email, phone string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var (
		prevID                        uuid.UUID
		prevName, prevMail, prevPhone string
	)
	err = tx.QueryRowContext(ctx,
		"SELECT owner_id, owner_name, owner_email, owner_phone FROM contracts WHERE id=$1 FOR UPDATE",
		contractID).Scan(&prevID, &prevName, &prevMail, &prevPhone)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO transfer_history (id, contract_id, prev_owner_id, prev_owner_name, prev_owner_email, prev_owner_phone, transferred_by)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		uuid.New(), contractID, prevID, prevName, prevMail, prevPhone, actor)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE contracts SET owner_id=$2, owner_name=$3, owner_email=$4, owner_phone=$5, updated_at=now()
		 WHERE id=$1`,
		contractID, newOwnerID, name, email, phone)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// RevertTransfer copies the latest transfer_history snapshot back onto the
// contract. The snapshot row is deleted afterwards as a best-effort step by
// the handler, not here, so a cleanup failure cannot undo the revert.
func (r *ContractRepo) RevertTransfer(ctx context.Context, contractID uuid.UUID) (model.TransferHistory, error) {
	var h model.TransferHistory
	err := r.db.QueryRowContext(ctx,
		`SELECT id, contract_id, prev_owner_id, prev_owner_name, prev_owner_email, prev_owner_phone, transferred_by, created_at
		 FROM transfer_history WHERE contract_id=$1 ORDER BY created_at DESC LIMIT 1`, contractID).
		Scan(&h.ID, &h.ContractID, &h.PrevOwnerID, &h.PrevOwnerName, &h.PrevOwnerEmail, &h.PrevOwnerPhone, &h.TransferredBy, &h.CreatedAt)
	if err != nil {
		return model.TransferHistory{}, err
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE contracts SET owner_id=$2, owner_name=$3, owner_email=$4, owner_phone=$5, updated_at=now()
		 WHERE id=$1`,
		contractID, h.PrevOwnerID, h.PrevOwnerName, h.PrevOwnerEmail, h.PrevOwnerPhone)
	if err != nil {
		return model.TransferHistory{}, err
	}
	return h, nil
}

// DeleteTransferSnapshot removes a consumed history row. Best-effort from
// the caller's point of view.
func (r *ContractRepo) DeleteTransferSnapshot(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM transfer_history WHERE id=$1", id)
	return err
}

// Delete removes a contract and, via FK cascade, its schedule and payments.
func (r *ContractRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM contracts WHERE id=$1", id)
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
