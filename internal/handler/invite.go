package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/domsolaire/solar-crm/internal/queue"
	"github.com/domsolaire/solar-crm/internal/repository"
	queue_publisher "github.com/domsolaire/solar-crm/internal/service"
)

// InviteHandler creates share links. The HTTP response only depends on the
// database write; the email goes out asynchronously through the broker, so a
// broker outage never fails the request.
type InviteHandler struct {
	Projects    *repository.ProjectRepo
	Invitations *repository.InvitationRepo
	BaseURL     string
}

func NewInviteHandler(projects *repository.ProjectRepo, invitations *repository.InvitationRepo, baseURL string) *InviteHandler {
	return &InviteHandler{Projects: projects, Invitations: invitations, BaseURL: strings.TrimRight(baseURL, "/")}
}

type inviteReq struct {
	Email string `json:"email"`
}

// Create issues a 7-day share token for a project and queues the invitation
// email.
func (h *InviteHandler) Create(c echo.Context) error {
	projectID, ok := paramID(c, "project_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Project id invalide"})
	}
	var req inviteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Requête invalide"})
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email requis"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	project, err := h.Projects.GetByID(ctx, projectID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Projet non trouvé"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}

	inv, err := h.Invitations.Create(ctx, projectID, email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}

	url := h.BaseURL + "/public/suivi/" + inv.Token
	event := queue.InvitationCreatedEvent{
		InvitationID: inv.ID,
		ProjectID:    project.ID,
		ProjectName:  project.Name,
		Email:        inv.Email,
		URL:          url,
		ExpiresAt:    inv.ExpiresAt.Format(time.RFC3339),
		CreatedAt:    inv.CreatedAt.Format(time.RFC3339),
	}
	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pubCancel()
		_ = queue_publisher.PublishInvitationCreated(pubCtx, event)
	}()

	return c.JSON(http.StatusOK, echo.Map{"message": "Invitation envoyée", "url": url})
}
