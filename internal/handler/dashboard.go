package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/domsolaire/solar-crm/internal/repository"
)

// DashboardHandler serves the cross-project feeds shown on the home screen.
type DashboardHandler struct {
	Projects *repository.ProjectRepo
}

func NewDashboardHandler(projects *repository.ProjectRepo) *DashboardHandler {
	return &DashboardHandler{Projects: projects}
}

type activityEntry struct {
	ProjectID uint64    `json:"project_id"`
	Message   string    `json:"message"`
	Date      time.Time `json:"date"`
}

// RecentActivity returns the five most recently updated projects as a feed of
// French one-liners, newest first.
func (h *DashboardHandler) RecentActivity(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	projects, err := h.Projects.ListRecentlyUpdated(ctx, 5)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}

	feed := make([]activityEntry, 0, len(projects))
	for _, p := range projects {
		feed = append(feed, activityEntry{
			ProjectID: p.ID,
			Message:   fmt.Sprintf("Mise à jour du projet %q", p.Name),
			Date:      p.UpdatedAt,
		})
	}
	return c.JSON(http.StatusOK, feed)
}
