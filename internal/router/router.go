package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/domsolaire/solar-crm/internal/handler"
)

// RegisterRoutes registers routes that require no authentication: the root
// banner, the liveness probe and the share-link view. The emailed links point
// at the frontend's /public/suivi/<token> page, which in turn reads this API
// route. The cache middleware only applies to the share-link route; pass a
// passthrough when Redis is absent.
func RegisterRoutes(e *echo.Echo, pub *handler.PublicHandler, cache echo.MiddlewareFunc) {
	e.GET("/", handler.Root)
	e.GET("/api/ping", handler.Ping)
	e.GET("/api/public/projects/:token", pub.Project, cache)
}
