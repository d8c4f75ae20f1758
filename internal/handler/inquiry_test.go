package handler

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rangerisrael/futura-home-sub004/internal/repository"
)

func newInquiryHandler(t *testing.T) (*InquiryHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewInquiryHandler(repository.NewInquiryRepo(db)), mock
}

func TestInquiryListRejectsUnknownStatus(t *testing.T) {
	h, _ := newInquiryHandler(t)

	c, rec := newTestCtx(http.MethodGet, "/v1/inquiries?status=archived", "")
	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t,
		"invalid status; valid values: pending, approved, declined, in_progress, responded, closed",
		decodeEnvelope(t, rec).Error)
}

func TestInquiryUpdateStatusRejectsUnknown(t *testing.T) {
	h, _ := newInquiryHandler(t)
	id := uuid.New()

	c, rec := newTestCtx(http.MethodPatch, "/v1/inquiries/"+id.String()+"/status", `{"status":"escalated"}`)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	require.NoError(t, h.UpdateStatus(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Error, "valid values:")
}

func TestInquiryCreateRequiresFields(t *testing.T) {
	h, _ := newInquiryHandler(t)

	c, rec := newTestCtx(http.MethodPost, "/v1/inquiries", `{"client_name":"Dana"}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "client_name, client_email and message are required", decodeEnvelope(t, rec).Error)
}

func TestInquiryCreateLowercasesEmail(t *testing.T) {
	h, mock := newInquiryHandler(t)

	mock.ExpectExec("INSERT INTO inquiries").
		WithArgs(sqlmock.AnyArg(), "Dana Cruz", "dana@example.com", "Unit pricing", "How much is unit 4B?").
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := `{"client_name":"Dana Cruz","client_email":"Dana@Example.COM","subject":"Unit pricing","message":"How much is unit 4B?"}`
	c, rec := newTestCtx(http.MethodPost, "/v1/inquiries", body)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.NoError(t, mock.ExpectationsWereMet())
}
