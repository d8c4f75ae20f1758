package handler

import (
	"errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rangerisrael/futura-home-sub004/internal/model"
)

// Envelope is the uniform response body: {success, data?, message?, error?}.
// HTTP status mirrors the outcome (400 validation/state conflict, 401 auth,
// 403 role, 404 missing row, 500 unexpected).
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respondOK(c echo.Context, status int, data any, message string) error {
	return c.JSON(status, Envelope{Success: true, Data: data, Message: message})
}

func respondErr(c echo.Context, status int, msg string) error {
	return c.JSON(status, Envelope{Success: false, Error: msg})
}

// getUserID extracts the caller's uuid stored by the JWT middleware.
func getUserID(c echo.Context) (uuid.UUID, error) {
	s, ok := c.Get("user_id").(string)
	if !ok || s == "" {
		return uuid.Nil, errors.New("missing user_id in context")
	}
	return uuid.Parse(s)
}

// getRole extracts the caller's role stored by the JWT middleware.
func getRole(c echo.Context) model.Role {
	if r, ok := c.Get("role").(model.Role); ok {
		return r
	}
	return model.RoleUnknown
}

// parseIDParam reads and validates a uuid path parameter.
func parseIDParam(c echo.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}
