package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-portal/internal/auth"
	"github.com/spec-kit/clinic-portal/pkg/util"
)

// requirePrincipal fetches the authenticated caller installed by the auth
// middleware.
func requirePrincipal(c *fiber.Ctx) (*auth.Principal, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, util.NewUnauthorized("sesión requerida")
	}
	return principal, nil
}

// expireOn401 turns a backend authentication failure into the session-clearing
// login redirect; every other error flows to the error envelope unchanged.
func expireOn401(c *fiber.Ctx, authMW *auth.Middleware, err error) error {
	if util.IsUnauthorized(err) {
		return authMW.Expire(c)
	}
	return err
}

func paramInt(c *fiber.Ctx, name string) (int, error) {
	val, err := strconv.Atoi(c.Params(name))
	if err != nil || val <= 0 {
		return 0, util.NewValidationError("parámetro inválido", map[string]any{name: c.Params(name)})
	}
	return val, nil
}

// safeNext only honors same-site relative targets from the ?next= parameter.
func safeNext(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return ""
	}
	return raw
}
