package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/rangerisrael/futura-home-sub004/internal/handler"
	"github.com/rangerisrael/futura-home-sub004/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication. The
// health check serves load balancers; the booking and inquiry forms are the
// public entry points of the site (the booking form is additionally behind
// the bot-score check inside its handler); the OTP endpoints carry the
// Redis rate limiter so codes cannot be farmed.
func RegisterRoutes(e *echo.Echo, appt *handler.AppointmentHandler, inq *handler.InquiryHandler, otp *handler.OTPHandler, limiter echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	e.POST("/v1/book-appointment", appt.Book)
	e.POST("/v1/inquiries", inq.Create)

	g := e.Group("/v1/otp", limiter)
	g.POST("/request", otp.Request)
	g.POST("/verify", otp.Verify)
}

// RegisterAuth registers authentication routes. Unauthenticated operations
// live under /v1/auth; /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/auth", limiter)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.POST("/auth/logout-all", a.LogoutAll)
	auth.GET("/access/routes", handler.Routes)
}
