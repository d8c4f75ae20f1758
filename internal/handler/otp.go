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

	"github.com/labstack/echo/v4"

	"github.com/rangerisrael/futura-home-sub004/internal/config"
	"github.com/rangerisrael/futura-home-sub004/internal/queue"
	"github.com/rangerisrael/futura-home-sub004/internal/repository"
	queue_publisher "github.com/rangerisrael/futura-home-sub004/internal/service"
	"github.com/rangerisrael/futura-home-sub004/internal/utils"
)

// OTPHandler issues and verifies one-time passcodes. Codes are 6 digits,
// live for Cfg.OTPTTLMin minutes, and at most one unconsumed code exists
// per (lowercased) email. Verification consumes the row so a code can only
// be redeemed once.
type OTPHandler struct {
	Cfg  config.Config
	OTPs *repository.OTPRepo
}

func NewOTPHandler(cfg config.Config, otps *repository.OTPRepo) *OTPHandler {
	return &OTPHandler{Cfg: cfg, OTPs: otps}
}

type otpRequestReq struct {
	Email string `json:"email"`
}
type otpVerifyReq struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// Request handles POST /v1/otp/request. Any prior unconsumed code for the
// email is invalidated before the new one is stored. The code is delivered
// by email through the outbound queue; a publish failure is logged but the
// stored code remains valid, so the client may retry the email without a
// new code being minted prematurely.
func (h *OTPHandler) Request(c echo.Context) error {
	var req otpRequestReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid body")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return respondErr(c, http.StatusBadRequest, "valid email required")
	}

	code, err := utils.NewOTPCode()
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "code generation failed")
	}
	expires := time.Now().UTC().Add(time.Duration(h.Cfg.OTPTTLMin) * time.Minute)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.OTPs.Replace(ctx, email, code, expires); err != nil {
		return respondErr(c, http.StatusInternalServerError, "store code failed")
	}

	ev := queue.EmailRequestedEvent{
		To:       email,
		Subject:  "Your verification code",
		Body:     fmt.Sprintf("Your one-time passcode is %s. It expires in %d minutes.", code, h.Cfg.OTPTTLMin),
		Kind:     "otp",
		QueuedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := queue_publisher.PublishEmail(ctx, ev); err != nil {
		log.Printf("otp: email publish failed for %s: %v", email, err)
	}

	return respondOK(c, http.StatusOK, echo.Map{"expires_at": expires}, "verification code sent")
}

// Verify handles POST /v1/otp/verify. Success deletes the code row. When a
// candidate code exists but is invalid, the response distinguishes already
// used, expired, and wrong digits so the UI can guide the user.
func (h *OTPHandler) Verify(c echo.Context) error {
	var req otpVerifyReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid body")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	code := strings.TrimSpace(req.Code)
	if email == "" || code == "" {
		return respondErr(c, http.StatusBadRequest, "email and code required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	o, err := h.OTPs.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return respondErr(c, http.StatusBadRequest, "no code issued for this email")
		}
		return respondErr(c, http.StatusInternalServerError, "lookup failed")
	}

	switch {
	case o.Verified:
		return respondErr(c, http.StatusBadRequest, "code already used")
	case o.Expired(time.Now().UTC()):
		return respondErr(c, http.StatusBadRequest, "code expired")
	case o.Code != code:
		return respondErr(c, http.StatusBadRequest, "invalid code")
	}

	if err := h.OTPs.Consume(ctx, o.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// A concurrent verify consumed the row first.
			return respondErr(c, http.StatusBadRequest, "invalid code")
		}
		return respondErr(c, http.StatusInternalServerError, "consume failed")
	}
	return respondOK(c, http.StatusOK, nil, "code verified")
}
