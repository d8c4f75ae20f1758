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

// ContractHandler serves contract endpoints: CRUD, the installment
// schedule, the payment log, and ownership transfers with revert support.
type ContractHandler struct {
	Contracts     *repository.ContractRepo
	Notifications *repository.NotificationRepo
}

func NewContractHandler(cr *repository.ContractRepo, n *repository.NotificationRepo) *ContractHandler {
	if cr == nil || n == nil {
		panic("nil repository passed to NewContractHandler")
	}
	return &ContractHandler{Contracts: cr, Notifications: n}
}

type installmentReq struct {
	AmountCents int64  `json:"amount_cents"`
	DueDate     string `json:"due_date"` // RFC 3339
}

type createContractReq struct {
	PropertyID   string           `json:"property_id"`
	OwnerID      string           `json:"owner_id"`
	OwnerName    string           `json:"owner_name"`
	OwnerEmail   string           `json:"owner_email"`
	OwnerPhone   string           `json:"owner_phone"`
	PriceCents   int64            `json:"price_cents"`
	Installments []installmentReq `json:"installments"`
}

// Create handles POST /v1/contracts. Installments are numbered 1..n in the
// order supplied.
func (h *ContractHandler) Create(c echo.Context) error {
	var req createContractReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid body")
	}
	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid property_id")
	}
	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid owner_id")
	}
	if req.OwnerName == "" || req.OwnerEmail == "" || req.PriceCents <= 0 {
		return respondErr(c, http.StatusBadRequest, "owner_name, owner_email and a positive price_cents are required")
	}

	installments := make([]model.PaymentSchedule, 0, len(req.Installments))
	for i, ins := range req.Installments {
		due, err := time.Parse(time.RFC3339, ins.DueDate)
		if err != nil || ins.AmountCents <= 0 {
			return respondErr(c, http.StatusBadRequest,
				fmt.Sprintf("installment %d needs a positive amount_cents and an RFC 3339 due_date", i+1))
		}
		installments = append(installments, model.PaymentSchedule{AmountCents: ins.AmountCents, DueDate: due.UTC()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Contracts.Create(ctx, &model.Contract{
		PropertyID: propertyID,
		OwnerID:    ownerID,
		OwnerName:  req.OwnerName,
		OwnerEmail: strings.ToLower(strings.TrimSpace(req.OwnerEmail)),
		OwnerPhone: req.OwnerPhone,
		PriceCents: req.PriceCents,
	}, installments)
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "create contract failed")
	}
	return respondOK(c, http.StatusCreated, echo.Map{"contract_id": id}, "contract created")
}

// List handles GET /v1/contracts. Clients are pinned to contracts they own.
func (h *ContractHandler) List(c echo.Context) error {
	ownerID := uuid.Nil
	if getRole(c) == model.RoleClient {
		uid, err := getUserID(c)
		if err != nil {
			return respondErr(c, http.StatusUnauthorized, "unauthorized")
		}
		ownerID = uid
	} else if q := c.QueryParam("owner_id"); q != "" {
		id, err := uuid.Parse(q)
		if err != nil {
			return respondErr(c, http.StatusBadRequest, "invalid owner_id filter")
		}
		ownerID = id
	}
	items, err := h.Contracts.List(c.Request().Context(), ownerID)
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "failed to load contracts")
	}
	return respondOK(c, http.StatusOK, echo.Map{"items": items, "count": len(items)}, "")
}

// Get handles GET /v1/contracts/:id.
func (h *ContractHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid contract id")
	}
	v, err := h.Contracts.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return respondErr(c, http.StatusNotFound, "contract not found")
		}
		return respondErr(c, http.StatusInternalServerError, "failed to fetch contract")
	}
	if getRole(c) == model.RoleClient {
		uid, err := getUserID(c)
		if err != nil || uid != v.OwnerID {
			return respondErr(c, http.StatusForbidden, "forbidden")
		}
	}
	return respondOK(c, http.StatusOK, v, "")
}

// Schedule handles GET /v1/contracts/:id/schedule.
func (h *ContractHandler) Schedule(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid contract id")
	}
	items, err := h.Contracts.Schedule(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "failed to load schedule")
	}
	return respondOK(c, http.StatusOK, echo.Map{"items": items, "count": len(items)}, "")
}

type recordPaymentReq struct {
	ScheduleID  string `json:"schedule_id"`
	AmountCents int64  `json:"amount_cents"`
	Method      string `json:"method"`
}

// RecordPayment handles POST /v1/contracts/:id/payments. The installment
// update and the contract balance recompute run in one database
// transaction, so the aggregate can never go stale against the rows.
func (h *ContractHandler) RecordPayment(c echo.Context) error {
	contractID, err := parseIDParam(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid contract id")
	}
	actor, err := getUserID(c)
	if err != nil {
		return respondErr(c, http.StatusUnauthorized, "unauthorized")
	}
	var req recordPaymentReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid body")
	}
	scheduleID, err := uuid.Parse(req.ScheduleID)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid schedule_id")
	}
	if req.AmountCents <= 0 {
		return respondErr(c, http.StatusBadRequest, "a positive amount_cents is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Contracts.RecordPayment(ctx, contractID, scheduleID, actor, req.AmountCents, req.Method, time.Now().UTC())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return respondErr(c, http.StatusNotFound, "installment not found for contract")
		}
		return respondErr(c, http.StatusInternalServerError, "record payment failed")
	}
	return respondOK(c, http.StatusCreated, p, "payment recorded")
}

// Payments handles GET /v1/contracts/:id/payments.
func (h *ContractHandler) Payments(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid contract id")
	}
	items, err := h.Contracts.Payments(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "failed to load payments")
	}
	return respondOK(c, http.StatusOK, echo.Map{"items": items, "count": len(items)}, "")
}

type transferReq struct {
	OwnerID    string `json:"owner_id"`
	OwnerName  string `json:"owner_name"`
	OwnerEmail string `json:"owner_email"`
	OwnerPhone string `json:"owner_phone"`
}

// Transfer handles POST /v1/contracts/:id/transfer. The prior owner fields
// are snapshotted into transfer history before the new owner is applied.
func (h *ContractHandler) Transfer(c echo.Context) error {
	contractID, err := parseIDParam(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid contract id")
	}
	actor, err := getUserID(c)
	if err != nil {
		return respondErr(c, http.StatusUnauthorized, "unauthorized")
	}
	var req transferReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid body")
	}
	newOwner, err := uuid.Parse(req.OwnerID)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid owner_id")
	}
	if req.OwnerName == "" || req.OwnerEmail == "" {
		return respondErr(c, http.StatusBadRequest, "owner_name and owner_email are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err = h.Contracts.Transfer(ctx, contractID, actor, newOwner,
		req.OwnerName, strings.ToLower(strings.TrimSpace(req.OwnerEmail)), req.OwnerPhone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return respondErr(c, http.StatusNotFound, "contract not found")
		}
		return respondErr(c, http.StatusInternalServerError, "transfer failed")
	}
	return respondOK(c, http.StatusOK, echo.Map{"contract_id": contractID}, "ownership transferred")
}

// RevertTransfer handles POST /v1/contracts/:id/transfer/revert. The
// latest snapshot is copied back onto the contract; deleting the consumed
// snapshot afterwards is best-effort and never fails the revert.
func (h *ContractHandler) RevertTransfer(c echo.Context) error {
	contractID, err := parseIDParam(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid contract id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hist, err := h.Contracts.RevertTransfer(ctx, contractID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return respondErr(c, http.StatusNotFound, "no transfer history for contract")
		}
		return respondErr(c, http.StatusInternalServerError, "revert failed")
	}
	if err := h.Contracts.DeleteTransferSnapshot(ctx, hist.ID); err != nil {
		log.Printf("contract: transfer-history cleanup failed for %s: %v", hist.ID, err)
	}
	return respondOK(c, http.StatusOK, echo.Map{"contract_id": contractID, "owner_id": hist.PrevOwnerID}, "ownership reverted")
}

// Delete handles DELETE /v1/contracts/:id.
func (h *ContractHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid contract id")
	}
	if err := h.Contracts.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return respondErr(c, http.StatusNotFound, "contract not found")
		}
		return respondErr(c, http.StatusInternalServerError, "delete failed")
	}
	return c.NoContent(http.StatusNoContent)
}
