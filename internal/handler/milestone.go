package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/domsolaire/solar-crm/internal/repository"
	"github.com/domsolaire/solar-crm/internal/status"
)

// MilestoneHandler serves investor milestones. Updates are exposed under two
// addressing schemes: the scoped routes verify that the milestone belongs to
// the (project, investor) pair in the path, the flat routes apply by id
// only. The flat form exists for backward compatibility; new clients should
// use the scoped one.
type MilestoneHandler struct {
	Milestones *repository.MilestoneRepo
}

func NewMilestoneHandler(milestones *repository.MilestoneRepo) *MilestoneHandler {
	return &MilestoneHandler{Milestones: milestones}
}

type milestoneCreateReq struct {
	Label   string  `json:"label"`
	DueDate *string `json:"due_date"`
	Status  *string `json:"status"`
	Comment *string `json:"comment"`
}

type milestonePatchReq struct {
	Label   *string `json:"label"`
	DueDate *string `json:"due_date"`
	Status  *string `json:"status"`
	Comment *string `json:"comment"`
}

// normalizeStatus resolves internal short codes ("payee") to the canonical
// French labels before anything reaches the store. Unknown values pass
// through and are rejected there.
func normalizeStatus(s *string) *string {
	if s == nil || *s == "" {
		return s
	}
	label := status.ToLabel(*s)
	return &label
}

func pairParams(c echo.Context) (projectID, investorID uint64, ok bool) {
	projectID, ok = paramID(c, "project_id")
	if !ok {
		return 0, 0, false
	}
	investorID, ok = paramID(c, "investor_id")
	return projectID, investorID, ok
}

// List returns the milestones of one (project, investor) pair.
func (h *MilestoneHandler) List(c echo.Context) error {
	projectID, investorID, ok := pairParams(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Identifiants invalides"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	milestones, err := h.Milestones.ListByPair(ctx, projectID, investorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}
	return c.JSON(http.StatusOK, milestones)
}

// Create adds a milestone to a pair. The status must resolve to one of the
// four canonical labels.
func (h *MilestoneHandler) Create(c echo.Context) error {
	projectID, investorID, ok := pairParams(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Identifiants invalides"})
	}
	var req milestoneCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Requête invalide"})
	}
	if strings.TrimSpace(req.Label) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Libellé requis"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	m, err := h.Milestones.Add(ctx, projectID, investorID, strings.TrimSpace(req.Label),
		req.DueDate, normalizeStatus(req.Status), req.Comment)
	if err != nil {
		if err == repository.ErrInvalidStatus {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Statut de jalon invalide"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}
	return c.JSON(http.StatusCreated, m)
}

func patchFromReq(req milestonePatchReq) repository.MilestonePatch {
	return repository.MilestonePatch{
		Label:   req.Label,
		DueDate: req.DueDate,
		Status:  normalizeStatus(req.Status),
		Comment: req.Comment,
	}
}

// UpdateScoped applies a partial update after verifying the milestone
// belongs to the pair in the path. Registered for both PUT and PATCH.
func (h *MilestoneHandler) UpdateScoped(c echo.Context) error {
	projectID, investorID, ok := pairParams(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Identifiants invalides"})
	}
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Identifiants invalides"})
	}
	var req milestonePatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Requête invalide"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	m, err := h.Milestones.UpdateScoped(ctx, projectID, investorID, id, patchFromReq(req))
	if err != nil {
		switch err {
		case repository.ErrInvalidStatus:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Statut de jalon invalide"})
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Jalon introuvable"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}
	return c.JSON(http.StatusOK, m)
}

// UpdateFlat is the compatibility variant addressed by milestone id only.
func (h *MilestoneHandler) UpdateFlat(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Identifiants invalides"})
	}
	var req milestonePatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Requête invalide"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	m, err := h.Milestones.UpdateByID(ctx, id, patchFromReq(req))
	if err != nil {
		switch err {
		case repository.ErrInvalidStatus:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Statut de jalon invalide"})
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Jalon introuvable"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}
	return c.JSON(http.StatusOK, m)
}

// DeleteScoped removes a milestone after checking it belongs to the pair in
// the path.
func (h *MilestoneHandler) DeleteScoped(c echo.Context) error {
	projectID, investorID, ok := pairParams(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Identifiants invalides"})
	}
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Identifiants invalides"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Milestones.UpdateScoped(ctx, projectID, investorID, id, repository.MilestonePatch{}); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Jalon introuvable"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}
	if err := h.Milestones.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// DeleteFlat removes a milestone by id only.
func (h *MilestoneHandler) DeleteFlat(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Identifiants invalides"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Milestones.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Upcoming lists dated milestones due today or later that still expect a
// payment.
func (h *MilestoneHandler) Upcoming(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	milestones, err := h.Milestones.Upcoming(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}
	return c.JSON(http.StatusOK, milestones)
}

// Overdue lists dated milestones strictly past due that are neither paid nor
// cancelled.
func (h *MilestoneHandler) Overdue(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	milestones, err := h.Milestones.Overdue(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}
	return c.JSON(http.StatusOK, milestones)
}
