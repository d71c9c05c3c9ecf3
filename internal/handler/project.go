package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/domsolaire/solar-crm/internal/geocode"
	"github.com/domsolaire/solar-crm/internal/repository"
)

// ProjectHandler serves the /api/projects CRUD surface.
type ProjectHandler struct {
	Projects *repository.ProjectRepo
	Geocoder *geocode.Client
}

func NewProjectHandler(projects *repository.ProjectRepo, geocoder *geocode.Client) *ProjectHandler {
	return &ProjectHandler{Projects: projects, Geocoder: geocoder}
}

type projectReq struct {
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Type      string   `json:"type"`
	Power     string   `json:"power"`
	Phone     string   `json:"phone"`
	Email     string   `json:"email"`
	Comments  string   `json:"comments"`
	OwnerID   flexID   `json:"owner_id"`
	Status    string   `json:"status"`
}

func (r projectReq) toInput() repository.ProjectInput {
	return repository.ProjectInput{
		Name:      strings.TrimSpace(r.Name),
		Address:   strings.TrimSpace(r.Address),
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Type:      r.Type,
		Power:     r.Power,
		Phone:     r.Phone,
		Email:     r.Email,
		Comments:  r.Comments,
		OwnerID:   r.OwnerID.Value,
		Status:    r.Status,
	}
}

// fillCoordinates geocodes the address when the client supplied one without
// coordinates. Lookup failures are ignored: the map pin is nice to have, the
// write must go through regardless.
func (h *ProjectHandler) fillCoordinates(ctx context.Context, in *repository.ProjectInput) {
	if h.Geocoder == nil || in.Address == "" || in.Latitude != nil || in.Longitude != nil {
		return
	}
	if res, err := h.Geocoder.Lookup(ctx, in.Address); err == nil && res != nil {
		in.Latitude = &res.Latitude
		in.Longitude = &res.Longitude
	}
}

// List returns all projects for admins and only owned projects for everyone
// else.
func (h *ProjectHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if isAdmin(c) {
		projects, err := h.Projects.ListAll(ctx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
		}
		return c.JSON(http.StatusOK, projects)
	}

	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token invalide"})
	}
	projects, err := h.Projects.ListByOwner(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}
	return c.JSON(http.StatusOK, projects)
}

// Create inserts a project. Admin-only (route middleware). Status defaults
// to "En cours"; an empty owner_id becomes NULL.
func (h *ProjectHandler) Create(c echo.Context) error {
	var req projectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Requête invalide"})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Nom du projet requis"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	in := req.toInput()
	h.fillCoordinates(ctx, &in)

	project, err := h.Projects.Create(ctx, in)
	if err != nil {
		if err == repository.ErrInvalidStatus {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Statut de projet invalide"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}
	return c.JSON(http.StatusOK, project)
}

// Update overwrites every listed field (full-replace, last write wins).
// Admin-only (route middleware).
func (h *ProjectHandler) Update(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Project id invalide"})
	}
	var req projectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Requête invalide"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Projects.GetByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Projet non trouvé"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}

	in := req.toInput()
	h.fillCoordinates(ctx, &in)

	project, err := h.Projects.Update(ctx, id, in)
	if err != nil {
		if err == repository.ErrInvalidStatus {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Statut de projet invalide"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}
	return c.JSON(http.StatusOK, project)
}

// Delete removes the project; the schema cascades dependent rows away.
// Admin-only (route middleware).
func (h *ProjectHandler) Delete(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Project id invalide"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Projects.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Get returns one project. Admins can read anything; other users only a
// project they own (403 otherwise, 404 when it does not exist).
func (h *ProjectHandler) Get(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Project id invalide"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	project, err := h.Projects.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Projet non trouvé"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}

	if !isAdmin(c) {
		uid, err := currentUserID(c)
		if err != nil || project.OwnerID == nil || *project.OwnerID != uid {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "Accès interdit"})
		}
	}
	return c.JSON(http.StatusOK, project)
}
