package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/domsolaire/solar-crm/internal/repository"
)

// StepHandler serves a project's progress timeline.
type StepHandler struct {
	Steps *repository.StepRepo
}

func NewStepHandler(steps *repository.StepRepo) *StepHandler {
	return &StepHandler{Steps: steps}
}

type stepReq struct {
	Label       string  `json:"label"`
	StepDate    *string `json:"step_date"`
	StepComment string  `json:"step_comment"`
	Status      string  `json:"status"`
}

// Add appends a step. The status string is free text by design.
func (h *StepHandler) Add(c echo.Context) error {
	projectID, ok := paramID(c, "project_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Project id invalide"})
	}
	var req stepReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Requête invalide"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	step, err := h.Steps.Add(ctx, projectID, req.Label, req.StepDate, req.StepComment, req.Status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}
	return c.JSON(http.StatusOK, step)
}

// List returns a project's steps, newest-dated first.
func (h *StepHandler) List(c echo.Context) error {
	projectID, ok := paramID(c, "project_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Project id invalide"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	steps, err := h.Steps.ListByProject(ctx, projectID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}
	return c.JSON(http.StatusOK, steps)
}

// Delete removes one step.
func (h *StepHandler) Delete(c echo.Context) error {
	stepID, ok := paramID(c, "step_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Step id invalide"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Steps.Delete(ctx, stepID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur lors de la suppression de l'étape"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Étape supprimée avec succès"})
}
