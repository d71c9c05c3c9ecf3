package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The bad-parameter paths return before the store is touched, so a handler
// with a nil repository exercises them safely.

func TestMilestoneListRejectsBadPair(t *testing.T) {
	h := NewMilestoneHandler(nil)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("project_id", "investor_id")
	c.SetParamValues("abc", "7")

	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Identifiants invalides")
}

func TestMilestoneCreateRequiresLabel(t *testing.T) {
	h := NewMilestoneHandler(nil)
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"label":"  "}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("project_id", "investor_id")
	c.SetParamValues("3", "7")

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Libellé requis")
}

func TestMilestoneUpdateFlatRejectsBadID(t *testing.T) {
	h := NewMilestoneHandler(nil)
	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("zero")

	require.NoError(t, h.UpdateFlat(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
