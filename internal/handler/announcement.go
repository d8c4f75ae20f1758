package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rangerisrael/futura-home-sub004/internal/model"
	"github.com/rangerisrael/futura-home-sub004/internal/repository"
)

// AnnouncementHandler serves staff announcements. Clients only see
// published rows; images live in the external object store and are carried
// here as URLs.
type AnnouncementHandler struct {
	Announcements *repository.AnnouncementRepo
}

func NewAnnouncementHandler(a *repository.AnnouncementRepo) *AnnouncementHandler {
	if a == nil {
		panic("nil repository passed to NewAnnouncementHandler")
	}
	return &AnnouncementHandler{Announcements: a}
}

type announcementReq struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	ImageURL  string `json:"image_url"`
	Published bool   `json:"published"`
}

// Create handles POST /v1/announcements (staff).
func (h *AnnouncementHandler) Create(c echo.Context) error {
	author, err := getUserID(c)
	if err != nil {
		return respondErr(c, http.StatusUnauthorized, "unauthorized")
	}
	var req announcementReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid body")
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Body) == "" {
		return respondErr(c, http.StatusBadRequest, "title and body are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Announcements.Create(ctx, &model.Announcement{
		Title:     req.Title,
		Body:      req.Body,
		ImageURL:  req.ImageURL,
		AuthorID:  author,
		Published: req.Published,
	})
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "create announcement failed")
	}
	return respondOK(c, http.StatusCreated, echo.Map{"announcement_id": id}, "announcement created")
}

// List handles GET /v1/announcements. Clients only get published rows.
func (h *AnnouncementHandler) List(c echo.Context) error {
	publishedOnly := getRole(c) == model.RoleClient
	items, err := h.Announcements.List(c.Request().Context(), publishedOnly)
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "failed to load announcements")
	}
	return respondOK(c, http.StatusOK, echo.Map{"items": items, "count": len(items)}, "")
}

// Get handles GET /v1/announcements/:id.
func (h *AnnouncementHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid announcement id")
	}
	a, err := h.Announcements.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return respondErr(c, http.StatusNotFound, "announcement not found")
		}
		return respondErr(c, http.StatusInternalServerError, "failed to fetch announcement")
	}
	if getRole(c) == model.RoleClient && !a.Published {
		return respondErr(c, http.StatusNotFound, "announcement not found")
	}
	return respondOK(c, http.StatusOK, a, "")
}

// Update handles PUT /v1/announcements/:id (staff).
func (h *AnnouncementHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid announcement id")
	}
	var req announcementReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid body")
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Body) == "" {
		return respondErr(c, http.StatusBadRequest, "title and body are required")
	}
	a := &model.Announcement{Title: req.Title, Body: req.Body, ImageURL: req.ImageURL, Published: req.Published}
	if err := h.Announcements.Update(c.Request().Context(), id, a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return respondErr(c, http.StatusNotFound, "announcement not found")
		}
		return respondErr(c, http.StatusInternalServerError, "update failed")
	}
	return respondOK(c, http.StatusOK, nil, "announcement updated")
}

// Delete handles DELETE /v1/announcements/:id (staff).
func (h *AnnouncementHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid announcement id")
	}
	if err := h.Announcements.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return respondErr(c, http.StatusNotFound, "announcement not found")
		}
		return respondErr(c, http.StatusInternalServerError, "delete failed")
	}
	return c.NoContent(http.StatusNoContent)
}
