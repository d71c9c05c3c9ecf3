package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/domsolaire/solar-crm/internal/config"
	"github.com/domsolaire/solar-crm/internal/repository"
	"github.com/domsolaire/solar-crm/internal/utils"
)

// UserHandler bundles dependencies for the authentication endpoints.
type UserHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewUserHandler(cfg config.Config, users *repository.UserRepo) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: users}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPart struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Login verifies credentials and returns {token, user}. The token is a
// 7-day HS256 JWT carrying {id, role, email}. Unknown email and wrong
// password answer identically so the endpoint does not leak which one it was.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Requête invalide"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email et mot de passe requis"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Identifiants invalides"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Identifiants invalides"})
	}

	tok, err := utils.NewLoginToken(h.Cfg.JWTSecret, u.ID, u.Role, u.Email, h.Cfg.TokenTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token": tok.Token,
		"user":  userPart{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role},
	})
}

// Register creates a user with role "user". Admin-only; the public cannot
// self-register, accounts are provisioned by an administrator.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Requête invalide"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email et mot de passe requis"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Name, req.Email, hash, "user")
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email déjà utilisé"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}

	return c.JSON(http.StatusOK, userPart{ID: uid, Name: req.Name, Email: req.Email, Role: "user"})
}

// Me echoes the identity decoded from the token, without a database read.
func (h *UserHandler) Me(c echo.Context) error {
	id, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token invalide"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":    id,
		"role":  c.Get("role"),
		"email": c.Get("email"),
	})
}

// List returns every user. Admin-only, enforced at route registration.
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	users, err := h.Users.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erreur serveur"})
	}
	return c.JSON(http.StatusOK, users)
}
