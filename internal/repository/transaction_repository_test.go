package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rangerisrael/futura-home-sub004/internal/model"
)

func TestTransactionMarkCompleted(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTransactionRepo(db)
	id := uuid.New()

	mock.ExpectExec("UPDATE transactions SET payment_status=").
		WithArgs(id, model.PaymentCompleted, model.PaymentPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkCompleted(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionMarkCompletedTwice(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTransactionRepo(db)

	// Second settle finds no pending row.
	mock.ExpectExec("UPDATE transactions SET payment_status=").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.MarkCompleted(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrStateConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
