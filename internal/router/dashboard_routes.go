package router

import (
	"github.com/labstack/echo/v4"

	"github.com/domsolaire/solar-crm/internal/handler"
	"github.com/domsolaire/solar-crm/internal/middleware"
)

// RegisterDashboard registers the home-screen activity feed.
func RegisterDashboard(e *echo.Echo, d *handler.DashboardHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group("/api/activity", middleware.JWTAuth(jwtSecret))
	g.GET("/recent", d.RecentActivity, cache)
}
