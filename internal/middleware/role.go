package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rangerisrael/futura-home-sub004/internal/model"
)

// RequireRole returns a middleware that enforces that the authenticated
// user holds one of the given roles. It assumes JWTAuth already stored the
// caller's role in the context. Denials name the caller's role in the
// message so the UI can explain why the action was blocked.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(model.Role)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{
					"success": false,
					"error":   fmt.Sprintf("role %q is not permitted to perform this action", role.String()),
				})
			}
			return next(c)
		}
	}
}
