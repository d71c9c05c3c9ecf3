package router

import (
	"github.com/labstack/echo/v4"

	"github.com/domsolaire/solar-crm/internal/handler"
	"github.com/domsolaire/solar-crm/internal/middleware"
)

// RegisterUsers registers account endpoints under /api/users. Login is the
// only unauthenticated route and carries the rate limiter; registration and
// the user list are admin-only.
func RegisterUsers(e *echo.Echo, u *handler.UserHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	e.POST("/api/users/login", u.Login, limiter)

	g := e.Group("/api/users", middleware.JWTAuth(jwtSecret))
	g.GET("/me", u.Me)
	g.POST("/register", u.Register, middleware.RequireRole("admin"))
	g.GET("", u.List, middleware.RequireRole("admin"))
}
