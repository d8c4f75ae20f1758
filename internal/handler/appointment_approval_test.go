package handler

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rangerisrael/futura-home-sub004/internal/model"
	"github.com/rangerisrael/futura-home-sub004/internal/repository"
)

func newAppointmentHandler(t *testing.T) (*AppointmentHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAppointmentHandler(
		repository.NewAppointmentRepo(db),
		repository.NewNotificationRepo(db),
		nil,
	), mock
}

func TestCSApproveForbiddenForClient(t *testing.T) {
	h, _ := newAppointmentHandler(t)

	c, rec := newTestCtx(http.MethodPost, "/v1/appointments/"+uuid.NewString()+"/cs-approve", "")
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())
	authenticate(c, model.RoleClient, uuid.New())

	require.NoError(t, h.CSApprove(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, `role "client"`)
}

func TestCSApproveMovesPendingForward(t *testing.T) {
	h, mock := newAppointmentHandler(t)
	id := uuid.New()

	mock.ExpectExec("UPDATE appointments SET status=").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO notifications").
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := newTestCtx(http.MethodPost, "/v1/appointments/"+id.String()+"/cs-approve", "")
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	authenticate(c, model.RoleCS, uuid.New())

	require.NoError(t, h.CSApprove(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "appointment cs_approved", env.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSalesApproveWhileStillPending(t *testing.T) {
	h, mock := newAppointmentHandler(t)
	id := uuid.New()

	// Row holds "pending", not the "cs_approved" the guarded update expects,
	// so zero rows match. The caller's role does not change the outcome.
	mock.ExpectExec("UPDATE appointments SET status=").
		WillReturnResult(sqlmock.NewResult(0, 0))

	c, rec := newTestCtx(http.MethodPost, "/v1/appointments/"+id.String()+"/sales-approve", "")
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	authenticate(c, model.RoleAdmin, uuid.New())

	require.NoError(t, h.SalesApprove(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "appointment not found or already processed", env.Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectRequiresReason(t *testing.T) {
	h, _ := newAppointmentHandler(t)
	id := uuid.New()

	c, rec := newTestCtx(http.MethodPost, "/v1/appointments/"+id.String()+"/reject", `{"reason":"   "}`)
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	authenticate(c, model.RoleSales, uuid.New())

	require.NoError(t, h.Reject(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "a non-empty reason is required", decodeEnvelope(t, rec).Error)
}

func TestBookAppointmentCreatesPendingAndNotifiesCS(t *testing.T) {
	h, mock := newAppointmentHandler(t)
	propID := uuid.New()

	mock.ExpectExec("INSERT INTO appointments").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO notifications").
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := `{"property_id":"` + propID.String() + `","client_name":"Dana Cruz","client_email":"Dana@Example.com","client_phone":"555-0101","preferred_date":"2026-09-15T10:00:00Z"}`
	c, rec := newTestCtx(http.MethodPost, "/v1/book-appointment", body)

	require.NoError(t, h.Book(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, model.AppointmentPending, data["status"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookAppointmentRejectsBadPropertyID(t *testing.T) {
	h, _ := newAppointmentHandler(t)

	body := `{"property_id":"not-a-uuid","client_name":"Dana","client_email":"dana@example.com","client_phone":"555-0101","preferred_date":"2026-09-15T10:00:00Z"}`
	c, rec := newTestCtx(http.MethodPost, "/v1/book-appointment", body)

	require.NoError(t, h.Book(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid property_id", decodeEnvelope(t, rec).Error)
}
