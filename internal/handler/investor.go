package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/domsolaire/solar-crm/internal/repository"
)

// InvestorHandler serves the investor master list and the project↔investor
// links.
type InvestorHandler struct {
	Investors *repository.InvestorRepo
}

func NewInvestorHandler(investors *repository.InvestorRepo) *InvestorHandler {
	return &InvestorHandler{Investors: investors}
}

type investorReq struct {
	Name    string  `json:"name"`
	Company *string `json:"company"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Notes   *string `json:"notes"`
}

// List returns the master list, alphabetical by name.
func (h *InvestorHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	investors, err := h.Investors.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}
	return c.JSON(http.StatusOK, investors)
}

// Create inserts an investor; only the name is required.
func (h *InvestorHandler) Create(c echo.Context) error {
	var req investorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Requête invalide"})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Nom de l'investisseur requis"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	investor, err := h.Investors.Create(ctx, name, req.Company, req.Email, req.Phone, req.Notes)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}
	return c.JSON(http.StatusCreated, investor)
}

// Get returns one investor.
func (h *InvestorHandler) Get(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Investor id invalide"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	investor, err := h.Investors.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Investisseur non trouvé"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}
	return c.JSON(http.StatusOK, investor)
}

// Update rewrites every investor field.
func (h *InvestorHandler) Update(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Investor id invalide"})
	}
	var req investorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Requête invalide"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	investor, err := h.Investors.Update(ctx, id, strings.TrimSpace(req.Name), req.Company, req.Email, req.Phone, req.Notes)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Investisseur non trouvé"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}
	return c.JSON(http.StatusOK, investor)
}

// Delete removes an investor from the master list.
func (h *InvestorHandler) Delete(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Investor id invalide"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Investors.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

type attachReq struct {
	InvestorID uint64  `json:"investor_id"`
	Role       *string `json:"role"`
}

// Attach links an investor to a project; re-attaching the same pair only
// updates the role.
func (h *InvestorHandler) Attach(c echo.Context) error {
	projectID, ok := paramID(c, "project_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Project id invalide"})
	}
	var req attachReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Requête invalide"})
	}
	if req.InvestorID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Investor id invalide"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Investors.Attach(ctx, projectID, req.InvestorID, req.Role); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true})
}

// Detach removes the link row only; milestones for the pair keep existing.
func (h *InvestorHandler) Detach(c echo.Context) error {
	projectID, ok := paramID(c, "project_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Project id invalide"})
	}
	investorID, ok := paramID(c, "investor_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Investor id invalide"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Investors.Detach(ctx, projectID, investorID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// ListByProject returns the investors linked to a project with their role.
func (h *InvestorHandler) ListByProject(c echo.Context) error {
	projectID, ok := paramID(c, "project_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Project id invalide"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	investors, err := h.Investors.ListByProject(ctx, projectID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}
	return c.JSON(http.StatusOK, investors)
}
