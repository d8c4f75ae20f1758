package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rangerisrael/futura-home-sub004/internal/model"
	"github.com/rangerisrael/futura-home-sub004/internal/repository"
)

// ReservationHandler serves property-reservation endpoints. Approval spawns
// the reservation-fee transaction; revert returns a terminal reservation to
// pending and clears unpaid fees. Clients only see their own rows.
type ReservationHandler struct {
	Reservations  *repository.ReservationRepo
	Transactions  *repository.TransactionRepo
	Notifications *repository.NotificationRepo
}

func NewReservationHandler(r *repository.ReservationRepo, t *repository.TransactionRepo, n *repository.NotificationRepo) *ReservationHandler {
	if r == nil || t == nil || n == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{Reservations: r, Transactions: t, Notifications: n}
}

type createReservationReq struct {
	PropertyID  string `json:"property_id"`
	ClientID    string `json:"client_id"`
	ClientEmail string `json:"client_email"`
	AmountCents int64  `json:"amount_cents"`
}

// Create handles POST /v1/reservations (staff).
func (h *ReservationHandler) Create(c echo.Context) error {
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid body")
	}
	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid property_id")
	}
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid client_id")
	}
	email := strings.ToLower(strings.TrimSpace(req.ClientEmail))
	if email == "" || req.AmountCents <= 0 {
		return respondErr(c, http.StatusBadRequest, "client_email and a positive amount_cents are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Reservations.Create(ctx, &model.Reservation{
		PropertyID:  propertyID,
		ClientID:    clientID,
		ClientEmail: email,
		AmountCents: req.AmountCents,
	})
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "create reservation failed")
	}
	return respondOK(c, http.StatusCreated, echo.Map{"reservation_id": id, "status": model.ReservationPending}, "reservation created")
}

type updateReservationReq struct {
	ClientEmail string `json:"client_email"`
	AmountCents int64  `json:"amount_cents"`
}

// Update handles PUT /v1/reservations/:id (staff). Only pending rows are
// editable; anything past pending answers the usual state-conflict 400.
func (h *ReservationHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid reservation id")
	}
	var req updateReservationReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid body")
	}
	email := strings.ToLower(strings.TrimSpace(req.ClientEmail))
	if email == "" || req.AmountCents <= 0 {
		return respondErr(c, http.StatusBadRequest, "client_email and a positive amount_cents are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Reservations.Update(ctx, id, &model.Reservation{ClientEmail: email, AmountCents: req.AmountCents}); err != nil {
		if err == repository.ErrStateConflict {
			return respondErr(c, http.StatusBadRequest, "reservation not found or already processed")
		}
		return respondErr(c, http.StatusInternalServerError, "update failed")
	}
	return respondOK(c, http.StatusOK, nil, "reservation updated")
}

// List handles GET /v1/reservations. Staff see everything (optionally
// filtered); clients are pinned to their own rows.
func (h *ReservationHandler) List(c echo.Context) error {
	clientID := uuid.Nil
	if getRole(c) == model.RoleClient {
		uid, err := getUserID(c)
		if err != nil {
			return respondErr(c, http.StatusUnauthorized, "unauthorized")
		}
		clientID = uid
	} else if q := c.QueryParam("client_id"); q != "" {
		id, err := uuid.Parse(q)
		if err != nil {
			return respondErr(c, http.StatusBadRequest, "invalid client_id filter")
		}
		clientID = id
	}

	items, err := h.Reservations.List(c.Request().Context(), clientID, strings.TrimSpace(c.QueryParam("status")))
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "failed to load reservations")
	}
	return respondOK(c, http.StatusOK, echo.Map{"items": items, "count": len(items)}, "")
}

// Get handles GET /v1/reservations/:id, including the fee transactions.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid reservation id")
	}
	ctx := c.Request().Context()
	v, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return respondErr(c, http.StatusNotFound, "reservation not found")
		}
		return respondErr(c, http.StatusInternalServerError, "failed to fetch reservation")
	}
	if getRole(c) == model.RoleClient {
		uid, err := getUserID(c)
		if err != nil || uid != v.ClientID {
			return respondErr(c, http.StatusForbidden, "forbidden")
		}
	}
	txs, err := h.Transactions.ListByReservation(ctx, id)
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "failed to load transactions")
	}
	return respondOK(c, http.StatusOK, echo.Map{"reservation": v, "transactions": txs}, "")
}

// Approve handles POST /v1/reservations/:id/approve. Staff only. The CAS
// update and the fee insert share one database transaction; the receipt
// derives from the reservation id and the fee is due 7 days out.
func (h *ReservationHandler) Approve(c echo.Context) error {
	role := getRole(c)
	if !roleIn(role, []model.Role{model.RoleAdmin, model.RoleSales}) {
		return respondErr(c, http.StatusForbidden,
			fmt.Sprintf("role %q is not permitted to approve reservations", role.String()))
	}
	actor, err := getUserID(c)
	if err != nil {
		return respondErr(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid reservation id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	v, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return respondErr(c, http.StatusNotFound, "reservation not found")
		}
		return respondErr(c, http.StatusInternalServerError, "failed to fetch reservation")
	}

	fee, err := h.Reservations.Approve(ctx, id, actor, v.AmountCents, time.Now().UTC())
	if err != nil {
		if err == repository.ErrStateConflict {
			return respondErr(c, http.StatusBadRequest, "reservation not found or already processed")
		}
		return respondErr(c, http.StatusInternalServerError, "approve failed")
	}

	h.notify(ctx, &model.Notification{
		RecipientID: &v.ClientID,
		Message:     "Your reservation was approved. Fee " + fee.ReceiptNumber + " is due in 7 days.",
		Icon:        "check",
		Priority:    "high",
		Link:        "/v1/reservations/" + id.String(),
	})
	return respondOK(c, http.StatusOK, echo.Map{"reservation_id": id, "status": model.ReservationApproved, "transaction": fee}, "reservation approved")
}

// Reject handles POST /v1/reservations/:id/reject with a reason.
func (h *ReservationHandler) Reject(c echo.Context) error {
	role := getRole(c)
	if !roleIn(role, []model.Role{model.RoleAdmin, model.RoleSales}) {
		return respondErr(c, http.StatusForbidden,
			fmt.Sprintf("role %q is not permitted to reject reservations", role.String()))
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid reservation id")
	}
	var req rejectReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Reason) == "" {
		return respondErr(c, http.StatusBadRequest, "a non-empty reason is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Reservations.Reject(ctx, id, strings.TrimSpace(req.Reason)); err != nil {
		if err == repository.ErrStateConflict {
			return respondErr(c, http.StatusBadRequest, "reservation not found or already processed")
		}
		return respondErr(c, http.StatusInternalServerError, "reject failed")
	}
	return respondOK(c, http.StatusOK, echo.Map{"reservation_id": id, "status": model.ReservationRejected}, "reservation rejected")
}

// Revert handles POST /v1/reservations/:id/revert: approved|rejected back
// to pending. Unpaid fee transactions are deleted; completed ones stay.
func (h *ReservationHandler) Revert(c echo.Context) error {
	role := getRole(c)
	if !roleIn(role, []model.Role{model.RoleAdmin, model.RoleSales}) {
		return respondErr(c, http.StatusForbidden,
			fmt.Sprintf("role %q is not permitted to revert reservations", role.String()))
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid reservation id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	v, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return respondErr(c, http.StatusNotFound, "reservation not found")
		}
		return respondErr(c, http.StatusInternalServerError, "failed to fetch reservation")
	}

	if err := h.Reservations.Revert(ctx, id); err != nil {
		if err == repository.ErrStateConflict {
			return respondErr(c, http.StatusBadRequest, "reservation not found or already processed")
		}
		return respondErr(c, http.StatusInternalServerError, "revert failed")
	}

	h.notify(ctx, &model.Notification{
		RecipientID: &v.ClientID,
		Message:     "Your reservation was returned to pending review.",
		Icon:        "undo",
		Priority:    "normal",
		Link:        "/v1/reservations/" + id.String(),
	})
	return respondOK(c, http.StatusOK, echo.Map{"reservation_id": id, "status": model.ReservationPending}, "reservation reverted")
}

// CompleteTransaction handles POST /v1/transactions/:id/complete: a staff
// member confirms the reservation fee was paid. The update is guarded on
// payment_status=pending so a fee cannot be settled twice.
func (h *ReservationHandler) CompleteTransaction(c echo.Context) error {
	role := getRole(c)
	if !roleIn(role, []model.Role{model.RoleAdmin, model.RoleSales}) {
		return respondErr(c, http.StatusForbidden,
			fmt.Sprintf("role %q is not permitted to settle transactions", role.String()))
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid transaction id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Transactions.MarkCompleted(ctx, id); err != nil {
		if err == repository.ErrStateConflict {
			return respondErr(c, http.StatusBadRequest, "transaction not found or already settled")
		}
		return respondErr(c, http.StatusInternalServerError, "settle failed")
	}
	return respondOK(c, http.StatusOK, echo.Map{"transaction_id": id, "payment_status": model.PaymentCompleted}, "transaction settled")
}

// Delete handles DELETE /v1/reservations/:id (staff).
func (h *ReservationHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid reservation id")
	}
	if err := h.Reservations.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return respondErr(c, http.StatusNotFound, "reservation not found")
		}
		return respondErr(c, http.StatusInternalServerError, "delete failed")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ReservationHandler) notify(ctx context.Context, n *model.Notification) {
	if err := h.Notifications.Create(ctx, n); err != nil {
		log.Printf("reservation: notification create failed: %v", err)
	}
}
