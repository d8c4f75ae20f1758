package router

// Shared routes are visible to every authenticated role; handlers narrow
// what clients can see (own reservations and contracts, published
// announcements, own notification feed).

import (
	"github.com/labstack/echo/v4"

	"github.com/rangerisrael/futura-home-sub004/internal/handler"
	"github.com/rangerisrael/futura-home-sub004/internal/middleware"
	"github.com/rangerisrael/futura-home-sub004/internal/model"
)

// RegisterShared registers endpoints reachable by all authenticated roles.
func RegisterShared(e *echo.Echo, jwtSecret string,
	res *handler.ReservationHandler,
	con *handler.ContractHandler,
	ann *handler.AnnouncementHandler,
	not *handler.NotificationHandler,
) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RouteGate(),
	)

	g.GET("/reservations", res.List)
	g.GET("/reservations/:id", res.Get)

	g.GET("/contracts", con.List)
	g.GET("/contracts/:id", con.Get)
	g.GET("/contracts/:id/schedule", con.Schedule)
	g.GET("/contracts/:id/payments", con.Payments)

	g.GET("/announcements", ann.List)
	g.GET("/announcements/:id", ann.Get)
	staffAnn := g.Group("", middleware.RequireRole(model.RoleAdmin, model.RoleCS, model.RoleSales))
	staffAnn.POST("/announcements", ann.Create)
	staffAnn.PUT("/announcements/:id", ann.Update)
	staffAnn.DELETE("/announcements/:id", ann.Delete)

	g.GET("/notifications", not.List)
	g.PATCH("/notifications/:id/read", not.MarkRead)
	g.DELETE("/notifications/:id", not.Delete)
}
