package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rangerisrael/futura-home-sub004/internal/model"
)

func TestContractCreateInsertsInstallmentsInOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewContractRepo(db)
	due1 := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	due2 := due1.AddDate(0, 1, 0)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO contracts").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO payment_schedules").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), 1, int64(500000), due1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO payment_schedules").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), 2, int64(500000), due2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	id, err := repo.Create(context.Background(), &model.Contract{
		PropertyID: uuid.New(),
		OwnerID:    uuid.New(),
		OwnerName:  "Dana Cruz",
		OwnerEmail: "dana@example.com",
		OwnerPhone: "555-0101",
		PriceCents: 1000000,
	}, []model.PaymentSchedule{
		{AmountCents: 500000, DueDate: due1},
		{AmountCents: 500000, DueDate: due2},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContractRecordPaymentRecomputesBalance(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewContractRepo(db)
	contractID := uuid.New()
	scheduleID := uuid.New()
	actor := uuid.New()
	at := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE payment_schedules SET paid_cents=").
		WithArgs(scheduleID, contractID, int64(500000), at).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO payment_transactions").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE contracts SET balance_cents").
		WithArgs(contractID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	p, err := repo.RecordPayment(context.Background(), contractID, scheduleID, actor, 500000, "bank_transfer", at)
	require.NoError(t, err)
	assert.Equal(t, contractID, p.ContractID)
	assert.Equal(t, int64(500000), p.AmountCents)
	assert.NotEmpty(t, p.ReceiptNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContractRecordPaymentUnknownInstallment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewContractRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE payment_schedules SET paid_cents=").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err = repo.RecordPayment(context.Background(), uuid.New(), uuid.New(), uuid.New(), 100, "cash", time.Now().UTC())
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContractTransferSnapshotsPreviousOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewContractRepo(db)
	contractID := uuid.New()
	prevOwner := uuid.New()
	newOwner := uuid.New()
	actor := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT owner_id, owner_name, owner_email, owner_phone FROM contracts").
		WithArgs(contractID).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id", "owner_name", "owner_email", "owner_phone"}).
			AddRow(prevOwner.String(), "Old Owner", "old@example.com", "555-0100"))
	mock.ExpectExec("INSERT INTO transfer_history").
		WithArgs(sqlmock.AnyArg(), contractID, prevOwner, "Old Owner", "old@example.com", "555-0100", actor).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE contracts SET owner_id=").
		WithArgs(contractID, newOwner, "New Owner", "new@example.com", "555-0199").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.Transfer(context.Background(), contractID, actor, newOwner, "New Owner", "new@example.com", "555-0199")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContractRevertTransferRestoresSnapshot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewContractRepo(db)
	contractID := uuid.New()
	prevOwner := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM transfer_history").
		WithArgs(contractID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "contract_id", "prev_owner_id", "prev_owner_name", "prev_owner_email", "prev_owner_phone", "transferred_by", "created_at",
		}).AddRow(uuid.NewString(), contractID.String(), prevOwner.String(), "Old Owner", "old@example.com", "555-0100", uuid.NewString(), now))
	mock.ExpectExec("UPDATE contracts SET owner_id=").
		WithArgs(contractID, prevOwner, "Old Owner", "old@example.com", "555-0100").
		WillReturnResult(sqlmock.NewResult(0, 1))

	h, err := repo.RevertTransfer(context.Background(), contractID)
	require.NoError(t, err)
	assert.Equal(t, prevOwner, h.PrevOwnerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
