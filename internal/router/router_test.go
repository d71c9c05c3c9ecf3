package router

import (
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/domsolaire/solar-crm/internal/config"
	"github.com/domsolaire/solar-crm/internal/handler"
)

func registerAll(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	passthrough := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error { return next(c) }
	}

	RegisterRoutes(e, handler.NewPublicHandler(nil, nil, nil), passthrough)
	RegisterUsers(e, handler.NewUserHandler(config.Config{}, nil), "secret", passthrough)
	RegisterProjects(e,
		handler.NewProjectHandler(nil, nil),
		handler.NewStepHandler(nil),
		handler.NewCustomFieldHandler(nil),
		handler.NewInviteHandler(nil, nil, ""),
		"secret")
	mh := handler.NewMilestoneHandler(nil)
	RegisterInvestors(e, handler.NewInvestorHandler(nil), mh, "secret")
	RegisterMilestones(e, mh, "secret", passthrough)
	RegisterDashboard(e, handler.NewDashboardHandler(nil), "secret", passthrough)
	return e
}

func routeSet(e *echo.Echo) map[string]bool {
	set := make(map[string]bool)
	for _, r := range e.Routes() {
		set[r.Method+" "+r.Path] = true
	}
	return set
}

func TestRegisteredPaths(t *testing.T) {
	routes := routeSet(registerAll(t))

	want := []string{
		"GET /",
		"GET /api/ping",
		"GET /api/public/projects/:token",
		"POST /api/users/login",
		"GET /api/users/me",
		"POST /api/users/register",
		"GET /api/users",
		"GET /api/projects",
		"POST /api/projects",
		"GET /api/projects/:id",
		"PUT /api/projects/:id",
		"DELETE /api/projects/:id",
		"POST /api/projects/:project_id/steps",
		"GET /api/projects/:project_id/steps",
		"DELETE /api/projects/:project_id/steps/:step_id",
		"POST /api/projects/:id/custom_fields",
		"GET /api/projects/:id/custom_fields",
		"PUT /api/projects/custom_fields/:field_id",
		"DELETE /api/projects/custom_fields/:field_id",
		"POST /api/projects/:project_id/invite",
		"GET /api/investors",
		"POST /api/investors",
		"GET /api/investors/:id",
		"PUT /api/investors/:id",
		"DELETE /api/investors/:id",
		"GET /api/projects/:project_id/investors",
		"POST /api/projects/:project_id/investors",
		"DELETE /api/projects/:project_id/investors/:investor_id",
		"GET /api/projects/:project_id/investors/:investor_id/milestones",
		"POST /api/projects/:project_id/investors/:investor_id/milestones",
		"PUT /api/projects/:project_id/investors/:investor_id/milestones/:id",
		"PATCH /api/projects/:project_id/investors/:investor_id/milestones/:id",
		"DELETE /api/projects/:project_id/investors/:investor_id/milestones/:id",
		"GET /api/milestones/upcoming",
		"GET /api/milestones/overdue",
		"PUT /api/milestones/:id",
		"PATCH /api/milestones/:id",
		"DELETE /api/milestones/:id",
		"GET /api/activity/recent",
	}
	for _, w := range want {
		assert.True(t, routes[w], "missing route %s", w)
	}
}

func TestNoStrayPathVariants(t *testing.T) {
	routes := routeSet(registerAll(t))

	// Earlier iterations of the frontend used these shapes; the API must not.
	for _, stale := range []string{
		"GET /public/suivi/:token",
		"GET /api/dashboard/recent-activity",
		"POST /api/projects/:id/custom-fields",
		"PUT /api/projects/:id/custom-fields/:field_id",
	} {
		assert.False(t, routes[stale], "unexpected route %s", stale)
	}
}
