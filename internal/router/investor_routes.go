package router

import (
	"github.com/labstack/echo/v4"

	"github.com/domsolaire/solar-crm/internal/handler"
	"github.com/domsolaire/solar-crm/internal/middleware"
)

// RegisterInvestors registers the investor master list, the project links
// and the scoped milestone routes. Everything requires a JWT; any
// authenticated role may manage investors.
func RegisterInvestors(e *echo.Echo, i *handler.InvestorHandler, m *handler.MilestoneHandler, jwtSecret string) {
	g := e.Group("/api", middleware.JWTAuth(jwtSecret))

	// Master list.
	g.GET("/investors", i.List)
	g.POST("/investors", i.Create)
	g.GET("/investors/:id", i.Get)
	g.PUT("/investors/:id", i.Update)
	g.DELETE("/investors/:id", i.Delete)

	// Project links. Detaching keeps the pair's milestones.
	g.GET("/projects/:project_id/investors", i.ListByProject)
	g.POST("/projects/:project_id/investors", i.Attach)
	g.DELETE("/projects/:project_id/investors/:investor_id", i.Detach)

	// Milestones scoped to a (project, investor) pair.
	pair := "/projects/:project_id/investors/:investor_id/milestones"
	g.GET(pair, m.List)
	g.POST(pair, m.Create)
	g.PUT(pair+"/:id", m.UpdateScoped)
	g.PATCH(pair+"/:id", m.UpdateScoped)
	g.DELETE(pair+"/:id", m.DeleteScoped)
}
