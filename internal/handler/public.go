package handler

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/domsolaire/solar-crm/internal/repository"
)

// PublicHandler serves the unauthenticated share-link view. The token in the
// path is the only credential; expired and unknown tokens are answered
// identically.
type PublicHandler struct {
	Invitations *repository.InvitationRepo
	Steps       *repository.StepRepo
	Fields      *repository.CustomFieldRepo
}

func NewPublicHandler(invitations *repository.InvitationRepo, steps *repository.StepRepo, fields *repository.CustomFieldRepo) *PublicHandler {
	return &PublicHandler{Invitations: invitations, Steps: steps, Fields: fields}
}

// publicProject flattens the project fields into the response root, with the
// timeline and custom fields alongside.
type publicProject struct {
	repository.Project
	Steps        []repository.Step        `json:"steps"`
	CustomFields []repository.CustomField `json:"custom_fields"`
}

// Project resolves a share token to the full read-only project view.
func (h *PublicHandler) Project(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Lien expiré ou invalide"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	project, err := h.Invitations.ProjectByToken(ctx, token)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Lien expiré ou invalide"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}

	steps, err := h.Steps.ListByProject(ctx, project.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}
	fields, err := h.Fields.ListByProject(ctx, project.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}

	return c.JSON(http.StatusOK, publicProject{Project: project, Steps: steps, CustomFields: fields})
}
