package router

import (
	"github.com/labstack/echo/v4"

	"github.com/domsolaire/solar-crm/internal/handler"
	"github.com/domsolaire/solar-crm/internal/middleware"
)

// RegisterProjects registers the project endpoints and everything nested
// under a project: the step timeline, custom fields and share invitations.
// Every route requires a JWT; writes to the project itself are admin-only,
// nested resources are open to any authenticated user.
func RegisterProjects(e *echo.Echo, p *handler.ProjectHandler, s *handler.StepHandler, f *handler.CustomFieldHandler, inv *handler.InviteHandler, jwtSecret string) {
	g := e.Group("/api/projects", middleware.JWTAuth(jwtSecret))

	admin := middleware.RequireRole("admin")

	g.GET("", p.List)
	g.POST("", p.Create, admin)
	g.GET("/:id", p.Get)
	g.PUT("/:id", p.Update, admin)
	g.DELETE("/:id", p.Delete, admin)

	// Step timeline.
	g.POST("/:project_id/steps", s.Add)
	g.GET("/:project_id/steps", s.List)
	g.DELETE("/:project_id/steps/:step_id", s.Delete)

	// Custom fields. Update and delete address the field by its global id,
	// flat under the projects prefix.
	g.POST("/:id/custom_fields", f.Add)
	g.GET("/:id/custom_fields", f.List)
	g.PUT("/custom_fields/:field_id", f.Update)
	g.DELETE("/custom_fields/:field_id", f.Delete)

	// Share links.
	g.POST("/:project_id/invite", inv.Create)
}
