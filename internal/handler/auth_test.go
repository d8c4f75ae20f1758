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
	"github.com/rangerisrael/futura-home-sub004/internal/model"
	"github.com/rangerisrael/futura-home-sub004/internal/repository"
	"github.com/rangerisrael/futura-home-sub004/internal/utils"
)

func newAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	cfg := config.Config{
		JWTSecret:      "unit-test-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
		BcryptCost:     4, // MinCost keeps the test fast
	}
	return NewAuthHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db)), mock
}

func TestRegisterStaffWithoutAdminTokenForbidden(t *testing.T) {
	h, _ := newAuthHandler(t)

	body := `{"email":"new-cs@example.com","password":"secret123","role":"customer service"}`
	c, rec := newTestCtx(http.MethodPost, "/v1/auth/register", body)

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "staff accounts can only be created by an admin", decodeEnvelope(t, rec).Error)
}

func TestRegisterStaffWithAdminTokenSucceeds(t *testing.T) {
	h, mock := newAuthHandler(t)

	adminTok, err := utils.NewAccessToken(h.Cfg.JWTSecret, uuid.New(), model.RoleAdmin, 5)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), "new-cs@example.com", sqlmock.AnyArg(), model.RoleCS.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := `{"email":"New-CS@Example.com","password":"secret123","role":"customer service"}`
	c, rec := newTestCtx(http.MethodPost, "/v1/auth/register", body)
	c.Request().Header.Set("Authorization", "Bearer "+adminTok.Token)

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterUnknownRoleDefaultsToClient(t *testing.T) {
	h, mock := newAuthHandler(t)

	mock.ExpectExec("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), "dana@example.com", sqlmock.AnyArg(), model.RoleClient.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := `{"email":"dana@example.com","password":"secret123","role":"superuser"}`
	c, rec := newTestCtx(http.MethodPost, "/v1/auth/register", body)

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	h, mock := newAuthHandler(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errDuplicateEmail{})

	body := `{"email":"dana@example.com","password":"secret123"}`
	c, rec := newTestCtx(http.MethodPost, "/v1/auth/register", body)

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "email already exists", decodeEnvelope(t, rec).Error)
}

// errDuplicateEmail mimics the driver error text for a unique violation.
type errDuplicateEmail struct{}

func (errDuplicateEmail) Error() string {
	return `ERROR: duplicate key value violates unique constraint "users_email_key" (SQLSTATE 23505)`
}

func TestLoginWrongPassword(t *testing.T) {
	h, mock := newAuthHandler(t)

	hash, err := utils.HashPassword("right-password", 4)
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "role", "is_active", "created_at", "updated_at"}).
		AddRow(uuid.NewString(), "dana@example.com", hash, "client", true, time.Now().UTC(), time.Now().UTC())
	mock.ExpectQuery("SELECT (.+) FROM users WHERE email=").
		WithArgs("dana@example.com").
		WillReturnRows(rows)

	c, rec := newTestCtx(http.MethodPost, "/v1/auth/login", `{"email":"dana@example.com","password":"wrong"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid credentials", decodeEnvelope(t, rec).Error)
}

func TestLoginUnknownEmail(t *testing.T) {
	h, mock := newAuthHandler(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email=").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "role", "is_active", "created_at", "updated_at"}))

	c, rec := newTestCtx(http.MethodPost, "/v1/auth/login", `{"email":"ghost@example.com","password":"x"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid credentials", decodeEnvelope(t, rec).Error)
}
