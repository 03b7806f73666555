package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-portal/internal/api/dto"
	"github.com/spec-kit/clinic-portal/internal/auth"
	"github.com/spec-kit/clinic-portal/internal/service"
	"github.com/spec-kit/clinic-portal/pkg/util"
)

// TurnosHandler serves the patient's appointment endpoints plus the public
// slot browser.
type TurnosHandler struct {
	turnos *service.TurnoService
	authMW *auth.Middleware
}

// NewTurnosHandler constructs handler.
func NewTurnosHandler(turnos *service.TurnoService, authMW *auth.Middleware) *TurnosHandler {
	return &TurnosHandler{turnos: turnos, authMW: authMW}
}

// Disponibles GET /turnos/disponibles. Public; browsing requires no session.
func (h *TurnosHandler) Disponibles(c *fiber.Ctx) error {
	slots, err := h.turnos.AvailableSlots(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": slots})
}

// List GET /mis-turnos.
func (h *TurnosHandler) List(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	turnos, err := h.turnos.TurnosCliente(c.UserContext(), principal)
	if err != nil {
		return expireOn401(c, h.authMW, err)
	}
	return c.JSON(fiber.Map{"data": turnos})
}

// Book POST /turnos.
func (h *TurnosHandler) Book(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.BookTurnoRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("payload inválido", nil)
	}
	if req.HorariosMedicosID <= 0 || req.FechaHora.IsZero() {
		return util.NewValidationError("horario y fecha son obligatorios", nil)
	}

	turno, err := h.turnos.Book(c.UserContext(), principal, req.HorariosMedicosID, req.FechaHora, req.Motivo)
	if err != nil {
		return expireOn401(c, h.authMW, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": turno})
}

// Cancelar PUT /turnos/:id/cancelar.
func (h *TurnosHandler) Cancelar(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	turnoID, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	turno, err := h.turnos.Cancelar(c.UserContext(), principal, turnoID)
	if err != nil {
		return expireOn401(c, h.authMW, err)
	}
	return c.JSON(fiber.Map{"data": turno})
}

// Eliminar DELETE /turnos/:id. Only cancelled appointments leave the history.
func (h *TurnosHandler) Eliminar(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	turnoID, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	if err := h.turnos.Eliminar(c.UserContext(), principal, turnoID); err != nil {
		return expireOn401(c, h.authMW, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
