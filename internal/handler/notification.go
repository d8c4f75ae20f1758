package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rangerisrael/futura-home-sub004/internal/repository"
)

// NotificationHandler lets users read and manage their notification feed.
// Rows are only ever created as side effects of other operations.
type NotificationHandler struct {
	Notifications *repository.NotificationRepo
}

func NewNotificationHandler(n *repository.NotificationRepo) *NotificationHandler {
	if n == nil {
		panic("nil repository passed to NewNotificationHandler")
	}
	return &NotificationHandler{Notifications: n}
}

// List handles GET /v1/notifications for the caller's role and id.
func (h *NotificationHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return respondErr(c, http.StatusUnauthorized, "unauthorized")
	}
	items, err := h.Notifications.ListForRecipient(c.Request().Context(), getRole(c), uid)
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "failed to load notifications")
	}
	return respondOK(c, http.StatusOK, echo.Map{"items": items, "count": len(items)}, "")
}

// MarkRead handles PATCH /v1/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid notification id")
	}
	if err := h.Notifications.MarkRead(c.Request().Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return respondErr(c, http.StatusNotFound, "notification not found")
		}
		return respondErr(c, http.StatusInternalServerError, "update failed")
	}
	return respondOK(c, http.StatusOK, nil, "notification marked read")
}

// Delete handles DELETE /v1/notifications/:id.
func (h *NotificationHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid notification id")
	}
	if err := h.Notifications.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return respondErr(c, http.StatusNotFound, "notification not found")
		}
		return respondErr(c, http.StatusInternalServerError, "delete failed")
	}
	return c.NoContent(http.StatusNoContent)
}
