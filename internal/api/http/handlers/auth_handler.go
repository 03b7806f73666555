package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-portal/internal/api/dto"
	"github.com/spec-kit/clinic-portal/internal/auth"
	"github.com/spec-kit/clinic-portal/internal/domain"
	"github.com/spec-kit/clinic-portal/internal/service"
	"github.com/spec-kit/clinic-portal/pkg/util"
)

// AuthHandler owns the session lifecycle endpoints.
type AuthHandler struct {
	sessions *service.SessionService
	authMW   *auth.Middleware
}

// NewAuthHandler constructs handler.
func NewAuthHandler(sessions *service.SessionService, authMW *auth.Middleware) *AuthHandler {
	return &AuthHandler{sessions: sessions, authMW: authMW}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("payload inválido", nil)
	}
	role, ok := domain.ParseRole(req.Rol)
	if !ok {
		return util.NewValidationError("rol desconocido", map[string]any{"rol": req.Rol})
	}

	result, err := h.sessions.Login(c.UserContext(), role, req.Usuario, req.Contrasena)
	if err != nil {
		// Bad credentials stay on the form; no session to expire yet.
		return err
	}

	h.authMW.SetCookie(c, result.SessionID)
	return c.JSON(sessionResponse(result.Claims, c.Query("next")))
}

// Register POST /auth/register. A successful registration signs the patient
// straight in.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("payload inválido", nil)
	}

	result, err := h.sessions.Register(c.UserContext(), req.NuevoCliente())
	if err != nil {
		return err
	}

	h.authMW.SetCookie(c, result.SessionID)
	return c.Status(fiber.StatusCreated).JSON(sessionResponse(result.Claims, ""))
}

// Logout POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if principal, ok := auth.PrincipalFromContext(c); ok {
		if err := h.sessions.Logout(c.UserContext(), principal); err != nil {
			return err
		}
	}
	h.authMW.ClearCookie(c)
	return c.JSON(fiber.Map{"redirect_to": auth.LoginPath})
}

// Me GET /auth/me reports the signed-in identity, 401 when anonymous.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	return c.JSON(sessionResponse(principal.Claims, ""))
}

// Perfil GET /perfil.
func (h *AuthHandler) Perfil(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	cliente, err := h.sessions.Perfil(c.UserContext(), principal)
	if err != nil {
		return expireOn401(c, h.authMW, err)
	}
	return c.JSON(fiber.Map{"data": cliente})
}

// UpdatePerfil PUT /perfil.
func (h *AuthHandler) UpdatePerfil(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.UpdatePerfilRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("payload inválido", nil)
	}
	cliente, err := h.sessions.UpdatePerfil(c.UserContext(), principal, req.NuevoCliente())
	if err != nil {
		return expireOn401(c, h.authMW, err)
	}
	return c.JSON(fiber.Map{"data": cliente})
}

func sessionResponse(claims auth.Claims, next string) dto.SessionResponse {
	redirect := claims.Role.DashboardPath()
	if target := safeNext(next); target != "" {
		redirect = target
	}
	return dto.SessionResponse{
		Rol:        claims.Role,
		Nombre:     claims.DisplayName,
		SubjectID:  claims.SubjectID,
		RedirectTo: redirect,
	}
}
