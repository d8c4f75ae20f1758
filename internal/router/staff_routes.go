package router

// Staff routes cover the back-office surface: appointment management and
// the approval workflow, reservation decisions, contract administration,
// inquiry triage and the admin-only role table. Every group carries
// JWTAuth plus the shared RouteGate; per-transition role checks live in
// the handlers because they differ per step.

import (
	"github.com/labstack/echo/v4"

	"github.com/rangerisrael/futura-home-sub004/internal/handler"
	"github.com/rangerisrael/futura-home-sub004/internal/middleware"
	"github.com/rangerisrael/futura-home-sub004/internal/model"
)

// RegisterStaff registers staff-scoped endpoints under /v1.
func RegisterStaff(e *echo.Echo, jwtSecret string,
	appt *handler.AppointmentHandler,
	res *handler.ReservationHandler,
	con *handler.ContractHandler,
	inq *handler.InquiryHandler,
	roles *handler.RoleHandler,
) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RouteGate(),
	)

	// ---- Appointments ----
	g.GET("/appointments", appt.List)
	g.GET("/appointments/:id", appt.Get)
	g.PUT("/appointments/:id", appt.Update)
	g.DELETE("/appointments/:id", appt.Delete)
	g.POST("/appointments/:id/cs-approve", appt.CSApprove)
	g.POST("/appointments/:id/sales-approve", appt.SalesApprove)
	g.POST("/appointments/:id/reject", appt.Reject)

	// ---- Reservations (decisions are staff actions) ----
	staffRes := g.Group("", middleware.RequireRole(model.RoleAdmin, model.RoleCS, model.RoleSales))
	staffRes.POST("/reservations", res.Create)
	staffRes.PUT("/reservations/:id", res.Update)
	staffRes.DELETE("/reservations/:id", res.Delete)
	g.POST("/reservations/:id/approve", res.Approve)
	g.POST("/reservations/:id/reject", res.Reject)
	g.POST("/reservations/:id/revert", res.Revert)
	g.POST("/transactions/:id/complete", res.CompleteTransaction)

	// ---- Contracts ----
	staffCon := g.Group("", middleware.RequireRole(model.RoleAdmin, model.RoleSales))
	staffCon.POST("/contracts", con.Create)
	staffCon.POST("/contracts/:id/payments", con.RecordPayment)
	staffCon.POST("/contracts/:id/transfer", con.Transfer)
	staffCon.POST("/contracts/:id/transfer/revert", con.RevertTransfer)
	staffCon.DELETE("/contracts/:id", con.Delete)

	// ---- Inquiries ----
	g.GET("/inquiries", inq.List)
	g.GET("/inquiries/:id", inq.Get)
	g.PATCH("/inquiries/:id/status", inq.UpdateStatus)
	g.DELETE("/inquiries/:id", inq.Delete)

	// ---- Roles (RouteGate already restricts /v1/roles to admin) ----
	g.GET("/roles", roles.List)
	g.POST("/roles", roles.Create)
	g.PUT("/roles/:id", roles.Update)
	g.DELETE("/roles/:id", roles.Delete)
}
