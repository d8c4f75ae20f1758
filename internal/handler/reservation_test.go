package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rangerisrael/futura-home-sub004/internal/model"
	"github.com/rangerisrael/futura-home-sub004/internal/repository"
)

func newReservationHandler(t *testing.T) (*ReservationHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewReservationHandler(
		repository.NewReservationRepo(db),
		repository.NewTransactionRepo(db),
		repository.NewNotificationRepo(db),
	), mock
}

func reservationRow(id, clientID uuid.UUID, status string, amountCents int64) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "property_id", "client_id", "client_email", "amount_cents", "status",
		"approved_by", "approved_at", "rejected_reason", "created_at", "updated_at",
	}).AddRow(id.String(), uuid.NewString(), clientID.String(), "dana@example.com", amountCents, status,
		nil, nil, nil, now, now)
}

func TestReservationApproveForbiddenForCS(t *testing.T) {
	h, _ := newReservationHandler(t)
	id := uuid.New()

	c, rec := newTestCtx(http.MethodPost, "/v1/reservations/"+id.String()+"/approve", "")
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	authenticate(c, model.RoleCS, uuid.New())

	require.NoError(t, h.Approve(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Error, `role "customer service"`)
}

func TestReservationApproveSpawnsFeeTransaction(t *testing.T) {
	h, mock := newReservationHandler(t)
	id := uuid.New()
	clientID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM reservations").
		WillReturnRows(reservationRow(id, clientID, model.ReservationPending, 250000))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE reservations SET status=").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO transactions").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectExec("INSERT INTO notifications").
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := newTestCtx(http.MethodPost, "/v1/reservations/"+id.String()+"/approve", "")
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	authenticate(c, model.RoleSales, uuid.New())

	require.NoError(t, h.Approve(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)
	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, model.ReservationApproved, data["status"])

	fee, ok := data["transaction"].(map[string]any)
	require.True(t, ok)
	assert.Regexp(t, `^RCT-\d{4}-[A-Z0-9]{8}$`, fee["receipt_number"])
	assert.Equal(t, float64(250000), fee["amount_cents"])
	assert.Equal(t, model.PaymentPending, fee["payment_status"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationApproveAlreadyProcessed(t *testing.T) {
	h, mock := newReservationHandler(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM reservations").
		WillReturnRows(reservationRow(id, uuid.New(), model.ReservationApproved, 250000))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE reservations SET status=").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	c, rec := newTestCtx(http.MethodPost, "/v1/reservations/"+id.String()+"/approve", "")
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	authenticate(c, model.RoleAdmin, uuid.New())

	require.NoError(t, h.Approve(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "reservation not found or already processed", decodeEnvelope(t, rec).Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRevertClearsUnpaidFees(t *testing.T) {
	h, mock := newReservationHandler(t)
	id := uuid.New()
	clientID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM reservations").
		WillReturnRows(reservationRow(id, clientID, model.ReservationApproved, 250000))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE reservations SET status=").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM transactions WHERE reservation_id=(.+) AND payment_status=").
		WithArgs(id, model.PaymentPending).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()
	mock.ExpectExec("INSERT INTO notifications").
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := newTestCtx(http.MethodPost, "/v1/reservations/"+id.String()+"/revert", "")
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	authenticate(c, model.RoleAdmin, uuid.New())

	require.NoError(t, h.Revert(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, model.ReservationPending, data["status"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationGetHidesOtherClientsRows(t *testing.T) {
	h, mock := newReservationHandler(t)
	id := uuid.New()
	owner := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM reservations").
		WillReturnRows(reservationRow(id, owner, model.ReservationPending, 100000))

	c, rec := newTestCtx(http.MethodGet, "/v1/reservations/"+id.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	authenticate(c, model.RoleClient, uuid.New()) // not the owner

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", decodeEnvelope(t, rec).Error)
}
