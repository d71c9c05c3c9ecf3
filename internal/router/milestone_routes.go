package router

import (
	"github.com/labstack/echo/v4"

	"github.com/domsolaire/solar-crm/internal/handler"
	"github.com/domsolaire/solar-crm/internal/middleware"
)

// RegisterMilestones registers the cross-project milestone feeds and the
// flat, id-only update and delete routes. The flat routes predate the scoped
// ones and stay registered for old clients; they skip the pair ownership
// check. The cache middleware wraps the two feeds.
func RegisterMilestones(e *echo.Echo, m *handler.MilestoneHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group("/api/milestones", middleware.JWTAuth(jwtSecret))

	g.GET("/upcoming", m.Upcoming, cache)
	g.GET("/overdue", m.Overdue, cache)

	g.PUT("/:id", m.UpdateFlat)
	g.PATCH("/:id", m.UpdateFlat)
	g.DELETE("/:id", m.DeleteFlat)
}
