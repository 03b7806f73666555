package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-portal/internal/auth"
	"github.com/spec-kit/clinic-portal/internal/service"
)

// DashboardHandler serves the role landing views.
type DashboardHandler struct {
	reportes *service.ReporteService
	authMW   *auth.Middleware
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(reportes *service.ReporteService, authMW *auth.Middleware) *DashboardHandler {
	return &DashboardHandler{reportes: reportes, authMW: authMW}
}

// Cliente GET /dashboard: profile, next appointment, recent history.
func (h *DashboardHandler) Cliente(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	view, err := h.reportes.ForCliente(c.UserContext(), principal)
	if err != nil {
		return expireOn401(c, h.authMW, err)
	}
	return c.JSON(fiber.Map{"data": view})
}

// Medico GET /medico/dashboard: counters plus the physician's turno list.
func (h *DashboardHandler) Medico(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	view, err := h.reportes.ForMedico(c.UserContext(), principal)
	if err != nil {
		return expireOn401(c, h.authMW, err)
	}
	return c.JSON(fiber.Map{"data": view})
}

// Reportes GET /medico/reportes reuses the dashboard aggregate; the report
// view is the same data with the full turno list.
func (h *DashboardHandler) Reportes(c *fiber.Ctx) error {
	return h.Medico(c)
}
