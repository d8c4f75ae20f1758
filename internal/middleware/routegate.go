package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rangerisrael/futura-home-sub004/internal/access"
	"github.com/rangerisrael/futura-home-sub004/internal/model"
)

// RouteGate checks the shared access table for every request that already
// carries an authenticated role. Paths absent from the table pass through;
// a matching prefix whose role list excludes the caller is denied with 403.
// The same table backs the client link-visibility endpoint, so server and
// UI can never disagree about who may visit a path.
func RouteGate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(model.Role)
			if !ok {
				role = model.RoleUnknown
			}
			if !access.HasRouteAccess(c.Request().URL.Path, role) {
				return c.JSON(http.StatusForbidden, echo.Map{
					"success": false,
					"error":   "access to this route is not permitted for role " + role.String(),
				})
			}
			return next(c)
		}
	}
}
