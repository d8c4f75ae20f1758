package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rangerisrael/futura-home-sub004/internal/config"
	"github.com/rangerisrael/futura-home-sub004/internal/repository"
)

func newOTPHandler(t *testing.T) (*OTPHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewOTPHandler(config.Config{OTPTTLMin: 5}, repository.NewOTPRepo(db)), mock
}

func otpRow(code string, verified bool, expiresAt time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "code", "verified", "expires_at", "created_at"}).
		AddRow(uuid.NewString(), "dana@example.com", code, verified, expiresAt, time.Now().UTC())
}

func TestOTPVerifyNoCodeIssued(t *testing.T) {
	h, mock := newOTPHandler(t)

	mock.ExpectQuery("SELECT (.+) FROM otp_codes").
		WithArgs("dana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "code", "verified", "expires_at", "created_at"}))

	c, rec := newTestCtx(http.MethodPost, "/v1/otp/verify", `{"email":"dana@example.com","code":"123456"}`)
	require.NoError(t, h.Verify(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "no code issued for this email", decodeEnvelope(t, rec).Error)
}

func TestOTPVerifyAlreadyUsed(t *testing.T) {
	h, mock := newOTPHandler(t)

	mock.ExpectQuery("SELECT (.+) FROM otp_codes").
		WillReturnRows(otpRow("123456", true, time.Now().UTC().Add(time.Minute)))

	c, rec := newTestCtx(http.MethodPost, "/v1/otp/verify", `{"email":"dana@example.com","code":"123456"}`)
	require.NoError(t, h.Verify(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "code already used", decodeEnvelope(t, rec).Error)
}

func TestOTPVerifyExpired(t *testing.T) {
	h, mock := newOTPHandler(t)

	mock.ExpectQuery("SELECT (.+) FROM otp_codes").
		WillReturnRows(otpRow("123456", false, time.Now().UTC().Add(-time.Minute)))

	c, rec := newTestCtx(http.MethodPost, "/v1/otp/verify", `{"email":"dana@example.com","code":"123456"}`)
	require.NoError(t, h.Verify(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "code expired", decodeEnvelope(t, rec).Error)
}

func TestOTPVerifyWrongDigits(t *testing.T) {
	h, mock := newOTPHandler(t)

	mock.ExpectQuery("SELECT (.+) FROM otp_codes").
		WillReturnRows(otpRow("654321", false, time.Now().UTC().Add(time.Minute)))

	c, rec := newTestCtx(http.MethodPost, "/v1/otp/verify", `{"email":"dana@example.com","code":"123456"}`)
	require.NoError(t, h.Verify(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid code", decodeEnvelope(t, rec).Error)
}

func TestOTPVerifyConsumesTheRow(t *testing.T) {
	h, mock := newOTPHandler(t)

	mock.ExpectQuery("SELECT (.+) FROM otp_codes").
		WillReturnRows(otpRow("123456", false, time.Now().UTC().Add(time.Minute)))
	mock.ExpectExec("DELETE FROM otp_codes WHERE id=").
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := newTestCtx(http.MethodPost, "/v1/otp/verify", `{"email":"Dana@Example.com","code":"123456"}`)
	require.NoError(t, h.Verify(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "code verified", env.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOTPRequestRejectsBadEmail(t *testing.T) {
	h, _ := newOTPHandler(t)

	c, rec := newTestCtx(http.MethodPost, "/v1/otp/request", `{"email":"not-an-email"}`)
	require.NoError(t, h.Request(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "valid email required", decodeEnvelope(t, rec).Error)
}
