package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/domsolaire/solar-crm/internal/repository"
)

// CustomFieldHandler serves the free-form key/value annotations attached to
// projects. Add/list are scoped by project id; update/delete address the
// field by its global id, matching the historical API shape.
type CustomFieldHandler struct {
	Fields *repository.CustomFieldRepo
}

func NewCustomFieldHandler(fields *repository.CustomFieldRepo) *CustomFieldHandler {
	return &CustomFieldHandler{Fields: fields}
}

type customFieldReq struct {
	FieldName  string `json:"field_name"`
	FieldValue string `json:"field_value"`
}

// Add creates a field on a project, attributed to the authenticated user.
func (h *CustomFieldHandler) Add(c echo.Context) error {
	projectID, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Project id invalide"})
	}
	var req customFieldReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Requête invalide"})
	}

	var addedBy *uint64
	if uid, err := currentUserID(c); err == nil {
		addedBy = &uid
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	field, err := h.Fields.Add(ctx, projectID, req.FieldName, req.FieldValue, addedBy)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}
	return c.JSON(http.StatusCreated, field)
}

// List returns all fields of a project.
func (h *CustomFieldHandler) List(c echo.Context) error {
	projectID, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Project id invalide"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	fields, err := h.Fields.ListByProject(ctx, projectID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}
	return c.JSON(http.StatusOK, fields)
}

// Update rewrites a field's name and value, addressed by global field id.
func (h *CustomFieldHandler) Update(c echo.Context) error {
	fieldID, ok := paramID(c, "field_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Field id invalide"})
	}
	var req customFieldReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Requête invalide"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	field, err := h.Fields.Update(ctx, fieldID, req.FieldName, req.FieldValue)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}
	return c.JSON(http.StatusOK, field)
}

// Delete removes a field, addressed by global field id.
func (h *CustomFieldHandler) Delete(c echo.Context) error {
	fieldID, ok := paramID(c, "field_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Field id invalide"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Fields.Delete(ctx, fieldID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
