package handler

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rangerisrael/futura-home-sub004/internal/model"
	"github.com/rangerisrael/futura-home-sub004/internal/repository"
	queue_publisher "github.com/rangerisrael/futura-home-sub004/internal/service"

	"github.com/google/uuid"
)

// AppointmentHandler serves tour-booking endpoints. Booking itself is a
// public form guarded by the bot-score check; everything else is staff
// only. Notification fan-out is best-effort and never fails the primary
// operation.
type AppointmentHandler struct {
	Appointments  *repository.AppointmentRepo
	Notifications *repository.NotificationRepo
	Captcha       *queue_publisher.CaptchaVerifier
}

func NewAppointmentHandler(a *repository.AppointmentRepo, n *repository.NotificationRepo, v *queue_publisher.CaptchaVerifier) *AppointmentHandler {
	if a == nil || n == nil {
		panic("nil repository passed to NewAppointmentHandler")
	}
	return &AppointmentHandler{Appointments: a, Notifications: n, Captcha: v}
}

type bookAppointmentReq struct {
	PropertyID    string `json:"property_id"`
	ClientName    string `json:"client_name"`
	ClientEmail   string `json:"client_email"`
	ClientPhone   string `json:"client_phone"`
	PreferredDate string `json:"preferred_date"` // RFC 3339
	Notes         string `json:"notes"`
	CaptchaToken  string `json:"captcha_token"`
}

// Book handles POST /v1/book-appointment (public). The row is inserted
// with status pending and customer service is notified.
func (h *AppointmentHandler) Book(c echo.Context) error {
	var req bookAppointmentReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid body")
	}
	req.ClientEmail = strings.ToLower(strings.TrimSpace(req.ClientEmail))
	if req.ClientName == "" || req.ClientEmail == "" || req.ClientPhone == "" {
		return respondErr(c, http.StatusBadRequest, "client_name, client_email and client_phone are required")
	}
	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid property_id")
	}
	when, err := time.Parse(time.RFC3339, req.PreferredDate)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "preferred_date must be RFC 3339")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if h.Captcha != nil {
		passed, err := h.Captcha.Verify(ctx, req.CaptchaToken, c.RealIP())
		if err != nil {
			return respondErr(c, http.StatusInternalServerError, "bot verification unavailable")
		}
		if !passed {
			return respondErr(c, http.StatusBadRequest, "bot verification failed")
		}
	}

	appt := &model.Appointment{
		PropertyID:    propertyID,
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		ClientPhone:   req.ClientPhone,
		PreferredDate: when.UTC(),
		Notes:         req.Notes,
	}
	id, err := h.Appointments.Create(ctx, appt)
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "create appointment failed")
	}

	h.notify(ctx, &model.Notification{
		RecipientRole: model.RoleCS,
		Message:       "New tour booking from " + req.ClientName,
		Icon:          "calendar",
		Priority:      "normal",
		Link:          "/v1/appointments/" + id.String(),
	})

	return respondOK(c, http.StatusCreated, echo.Map{"appointment_id": id, "status": model.AppointmentPending}, "appointment booked")
}

// List handles GET /v1/appointments with optional client_email and status
// query filters.
func (h *AppointmentHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	items, err := h.Appointments.List(ctx,
		strings.ToLower(strings.TrimSpace(c.QueryParam("client_email"))),
		strings.TrimSpace(c.QueryParam("status")))
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "failed to load appointments")
	}
	return respondOK(c, http.StatusOK, echo.Map{"items": items, "count": len(items)}, "")
}

// Get handles GET /v1/appointments/:id.
func (h *AppointmentHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid appointment id")
	}
	a, err := h.Appointments.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return respondErr(c, http.StatusNotFound, "appointment not found")
		}
		return respondErr(c, http.StatusInternalServerError, "failed to fetch appointment")
	}
	return respondOK(c, http.StatusOK, a, "")
}

// Update handles PUT /v1/appointments/:id (staff edits to client fields).
func (h *AppointmentHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid appointment id")
	}
	var req bookAppointmentReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid body")
	}
	when, err := time.Parse(time.RFC3339, req.PreferredDate)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "preferred_date must be RFC 3339")
	}
	a := &model.Appointment{
		ClientName:    req.ClientName,
		ClientEmail:   strings.ToLower(strings.TrimSpace(req.ClientEmail)),
		ClientPhone:   req.ClientPhone,
		PreferredDate: when.UTC(),
		Notes:         req.Notes,
	}
	if err := h.Appointments.Update(c.Request().Context(), id, a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return respondErr(c, http.StatusNotFound, "appointment not found")
		}
		return respondErr(c, http.StatusInternalServerError, "update failed")
	}
	return respondOK(c, http.StatusOK, nil, "appointment updated")
}

// Delete handles DELETE /v1/appointments/:id.
func (h *AppointmentHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid appointment id")
	}
	if err := h.Appointments.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return respondErr(c, http.StatusNotFound, "appointment not found")
		}
		return respondErr(c, http.StatusInternalServerError, "delete failed")
	}
	return c.NoContent(http.StatusNoContent)
}

// notify writes a notification row, logging and swallowing any error. The
// primary operation must never fail because fan-out did.
func (h *AppointmentHandler) notify(ctx context.Context, n *model.Notification) {
	if err := h.Notifications.Create(ctx, n); err != nil {
		log.Printf("appointment: notification create failed: %v", err)
	}
}
