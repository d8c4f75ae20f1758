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
	"github.com/rangerisrael/futura-home-sub004/internal/queue"
	"github.com/rangerisrael/futura-home-sub004/internal/repository"
	queue_publisher "github.com/rangerisrael/futura-home-sub004/internal/service"
)

// InquiryHandler serves client-inquiry endpoints. Status is a closed
// six-value set; anything else is rejected naming the valid values.
type InquiryHandler struct {
	Inquiries *repository.InquiryRepo
}

func NewInquiryHandler(q *repository.InquiryRepo) *InquiryHandler {
	if q == nil {
		panic("nil repository passed to NewInquiryHandler")
	}
	return &InquiryHandler{Inquiries: q}
}

type createInquiryReq struct {
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
}

// Create handles POST /v1/inquiries (public form).
func (h *InquiryHandler) Create(c echo.Context) error {
	var req createInquiryReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid body")
	}
	email := strings.ToLower(strings.TrimSpace(req.ClientEmail))
	if req.ClientName == "" || email == "" || req.Message == "" {
		return respondErr(c, http.StatusBadRequest, "client_name, client_email and message are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Inquiries.Create(ctx, &model.Inquiry{
		ClientName:  req.ClientName,
		ClientEmail: email,
		Subject:     req.Subject,
		Message:     req.Message,
	})
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "create inquiry failed")
	}
	return respondOK(c, http.StatusCreated, echo.Map{"inquiry_id": id, "status": "pending"}, "inquiry submitted")
}

// List handles GET /v1/inquiries with an optional status filter.
func (h *InquiryHandler) List(c echo.Context) error {
	status := strings.TrimSpace(c.QueryParam("status"))
	if status != "" && !model.ValidInquiryStatus(status) {
		return respondErr(c, http.StatusBadRequest,
			"invalid status; valid values: "+strings.Join(model.InquiryStatuses, ", "))
	}
	items, err := h.Inquiries.List(c.Request().Context(), status)
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "failed to load inquiries")
	}
	return respondOK(c, http.StatusOK, echo.Map{"items": items, "count": len(items)}, "")
}

// Get handles GET /v1/inquiries/:id.
func (h *InquiryHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid inquiry id")
	}
	q, err := h.Inquiries.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return respondErr(c, http.StatusNotFound, "inquiry not found")
		}
		return respondErr(c, http.StatusInternalServerError, "failed to fetch inquiry")
	}
	return respondOK(c, http.StatusOK, q, "")
}

type inquiryStatusReq struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /v1/inquiries/:id/status. Moving to
// "responded" enqueues a follow-up email to the client, best-effort.
func (h *InquiryHandler) UpdateStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid inquiry id")
	}
	var req inquiryStatusReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid body")
	}
	status := strings.TrimSpace(req.Status)
	if !model.ValidInquiryStatus(status) {
		return respondErr(c, http.StatusBadRequest,
			"invalid status; valid values: "+strings.Join(model.InquiryStatuses, ", "))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	q, err := h.Inquiries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return respondErr(c, http.StatusNotFound, "inquiry not found")
		}
		return respondErr(c, http.StatusInternalServerError, "failed to fetch inquiry")
	}

	if err := h.Inquiries.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return respondErr(c, http.StatusNotFound, "inquiry not found")
		}
		return respondErr(c, http.StatusInternalServerError, "update failed")
	}

	if status == "responded" {
		ev := queue.EmailRequestedEvent{
			To:       q.ClientEmail,
			Subject:  "Re: " + q.Subject,
			Body:     "Our team has responded to your inquiry. Please log in to view the reply.",
			Kind:     "followup",
			QueuedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := queue_publisher.PublishEmail(ctx, ev); err != nil {
			log.Printf("inquiry: follow-up email publish failed for %s: %v", q.ClientEmail, err)
		}
	}
	return respondOK(c, http.StatusOK, echo.Map{"inquiry_id": id, "status": status}, "inquiry status updated")
}

// Delete handles DELETE /v1/inquiries/:id.
func (h *InquiryHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid inquiry id")
	}
	if err := h.Inquiries.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return respondErr(c, http.StatusNotFound, "inquiry not found")
		}
		return respondErr(c, http.StatusInternalServerError, "delete failed")
	}
	return c.NoContent(http.StatusNoContent)
}
