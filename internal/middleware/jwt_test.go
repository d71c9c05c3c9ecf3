package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domsolaire/solar-crm/internal/utils"
)

const testSecret = "test-secret"

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func runWithAuth(t *testing.T, mw echo.MiddlewareFunc, authorization string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, mw(okHandler)(c))
	return rec, c
}

func TestJWTAuthMissingToken(t *testing.T) {
	rec, _ := runWithAuth(t, JWTAuth(testSecret), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token manquant")
}

func TestJWTAuthMalformedToken(t *testing.T) {
	rec, _ := runWithAuth(t, JWTAuth(testSecret), "Bearer not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token invalide")
}

func TestJWTAuthWrongSecret(t *testing.T) {
	lt, err := utils.NewLoginToken("another-secret", 1, "user", "u@solar.fr", 7)
	require.NoError(t, err)

	rec, _ := runWithAuth(t, JWTAuth(testSecret), "Bearer "+lt.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthValidTokenInjectsClaims(t *testing.T) {
	lt, err := utils.NewLoginToken(testSecret, 7, "admin", "a@solar.fr", 7)
	require.NoError(t, err)

	rec, c := runWithAuth(t, JWTAuth(testSecret), "Bearer "+lt.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(7), c.Get("user_id"))
	assert.Equal(t, "admin", c.Get("role"))
	assert.Equal(t, "a@solar.fr", c.Get("email"))
}

func TestRequireRoleAllows(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", "admin")

	require.NoError(t, RequireRole("admin")(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleRejects(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", "user")

	require.NoError(t, RequireRole("admin")(okHandler)(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Accès interdit")
}

func TestRequireRoleMissingRole(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, RequireRole("admin", "user")(okHandler)(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
