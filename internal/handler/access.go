package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rangerisrael/futura-home-sub004/internal/access"
)

// Routes handles GET /v1/access/routes. The UI uses this to decide which
// links to show; it is the same table the RouteGate middleware enforces, so
// the two can never disagree.
func Routes(c echo.Context) error {
	return respondOK(c, http.StatusOK, echo.Map{"rules": access.Rules}, "")
}
