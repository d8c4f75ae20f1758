package handler

// Approval transitions for tour bookings. Each step is a compare-and-swap
// update filtered by the appointment id AND the expected prior status, so
// two near-simultaneous requests for the same step end with exactly one
// success and one "not found or already processed" outcome.

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rangerisrael/futura-home-sub004/internal/model"
	"github.com/rangerisrael/futura-home-sub004/internal/repository"
)

type rejectReq struct {
	Reason string `json:"reason"`
}

// CSApprove handles POST /v1/appointments/:id/cs-approve. Permitted for
// admin and customer service; moves pending -> cs_approved.
func (h *AppointmentHandler) CSApprove(c echo.Context) error {
	return h.transition(c, model.AppointmentPending, model.AppointmentCSApproved,
		model.RoleAdmin, model.RoleCS)
}

// SalesApprove handles POST /v1/appointments/:id/sales-approve. Permitted
// for admin and sales representative; moves cs_approved -> sales_approved.
// Attempting it while the row is still pending fails the CAS regardless of
// the caller's role.
func (h *AppointmentHandler) SalesApprove(c echo.Context) error {
	return h.transition(c, model.AppointmentCSApproved, model.AppointmentSalesApproved,
		model.RoleAdmin, model.RoleSales)
}

func (h *AppointmentHandler) transition(c echo.Context, from, to string, allowed ...model.Role) error {
	role := getRole(c)
	if !roleIn(role, allowed) {
		return respondErr(c, http.StatusForbidden,
			fmt.Sprintf("role %q is not permitted to perform this approval step", role.String()))
	}
	actor, err := getUserID(c)
	if err != nil {
		return respondErr(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid appointment id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Appointments.Approve(ctx, id, from, to, actor, time.Now().UTC()); err != nil {
		if err == repository.ErrStateConflict {
			return respondErr(c, http.StatusBadRequest, "appointment not found or already processed")
		}
		return respondErr(c, http.StatusInternalServerError, "approval failed")
	}

	h.notify(ctx, &model.Notification{
		RecipientRole: model.RoleClient,
		Message:       "Your tour appointment is now " + to,
		Icon:          "check",
		Priority:      "normal",
		Link:          "/v1/appointments/" + id.String(),
	})
	return respondOK(c, http.StatusOK, echo.Map{"appointment_id": id, "status": to}, "appointment "+to)
}

// Reject handles POST /v1/appointments/:id/reject. Permitted for admin,
// customer service and sales representative, from pending or cs_approved.
// A non-empty reason is required.
func (h *AppointmentHandler) Reject(c echo.Context) error {
	role := getRole(c)
	if !roleIn(role, []model.Role{model.RoleAdmin, model.RoleCS, model.RoleSales}) {
		return respondErr(c, http.StatusForbidden,
			fmt.Sprintf("role %q is not permitted to reject appointments", role.String()))
	}
	actor, err := getUserID(c)
	if err != nil {
		return respondErr(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid appointment id")
	}
	var req rejectReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Reason) == "" {
		return respondErr(c, http.StatusBadRequest, "a non-empty reason is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Appointments.Reject(ctx, id, actor, strings.TrimSpace(req.Reason), time.Now().UTC()); err != nil {
		if err == repository.ErrStateConflict {
			return respondErr(c, http.StatusBadRequest, "appointment not found or already processed")
		}
		return respondErr(c, http.StatusInternalServerError, "reject failed")
	}

	h.notify(ctx, &model.Notification{
		RecipientRole: model.RoleClient,
		Message:       "Your tour appointment was rejected: " + req.Reason,
		Icon:          "x",
		Priority:      "high",
		Link:          "/v1/appointments/" + id.String(),
	})
	return respondOK(c, http.StatusOK, echo.Map{"appointment_id": id, "status": model.AppointmentRejected}, "appointment rejected")
}

func roleIn(r model.Role, set []model.Role) bool {
	for _, v := range set {
		if v == r {
			return true
		}
	}
	return false
}
