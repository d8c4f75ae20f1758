package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rangerisrael/futura-home-sub004/internal/repository"
)

// RoleHandler manages the {role_id, rolename} lookup table. Admin only.
type RoleHandler struct {
	Roles *repository.RoleRepo
}

func NewRoleHandler(r *repository.RoleRepo) *RoleHandler {
	if r == nil {
		panic("nil repository passed to NewRoleHandler")
	}
	return &RoleHandler{Roles: r}
}

type roleReq struct {
	RoleName string `json:"rolename"`
}

func (h *RoleHandler) List(c echo.Context) error {
	items, err := h.Roles.List(c.Request().Context())
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "failed to load roles")
	}
	return respondOK(c, http.StatusOK, echo.Map{"items": items, "count": len(items)}, "")
}

func (h *RoleHandler) Create(c echo.Context) error {
	var req roleReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RoleName) == "" {
		return respondErr(c, http.StatusBadRequest, "rolename required")
	}
	id, err := h.Roles.Create(c.Request().Context(), strings.TrimSpace(req.RoleName))
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "create role failed")
	}
	return respondOK(c, http.StatusCreated, echo.Map{"role_id": id}, "role created")
}

func (h *RoleHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid role id")
	}
	var req roleReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RoleName) == "" {
		return respondErr(c, http.StatusBadRequest, "rolename required")
	}
	if err := h.Roles.Update(c.Request().Context(), id, strings.TrimSpace(req.RoleName)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return respondErr(c, http.StatusNotFound, "role not found")
		}
		return respondErr(c, http.StatusInternalServerError, "update failed")
	}
	return respondOK(c, http.StatusOK, nil, "role updated")
}

func (h *RoleHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid role id")
	}
	if err := h.Roles.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return respondErr(c, http.StatusNotFound, "role not found")
		}
		return respondErr(c, http.StatusInternalServerError, "delete failed")
	}
	return c.NoContent(http.StatusNoContent)
}
