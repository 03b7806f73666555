package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-portal/internal/api/dto"
	"github.com/spec-kit/clinic-portal/internal/auth"
	"github.com/spec-kit/clinic-portal/internal/domain"
	"github.com/spec-kit/clinic-portal/internal/service"
	"github.com/spec-kit/clinic-portal/pkg/util"
)

// MedicoHandler serves the physician's appointment, schedule and roster
// endpoints.
type MedicoHandler struct {
	turnos    *service.TurnoService
	horarios  *service.HorarioService
	pacientes *service.PacienteService
	authMW    *auth.Middleware
}

// NewMedicoHandler constructs handler.
func NewMedicoHandler(turnos *service.TurnoService, horarios *service.HorarioService, pacientes *service.PacienteService, authMW *auth.Middleware) *MedicoHandler {
	return &MedicoHandler{turnos: turnos, horarios: horarios, pacientes: pacientes, authMW: authMW}
}

// Turnos GET /medico/turnos.
func (h *MedicoHandler) Turnos(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	turnos, err := h.turnos.TurnosMedico(c.UserContext(), principal)
	if err != nil {
		return expireOn401(c, h.authMW, err)
	}
	return c.JSON(fiber.Map{"data": turnos})
}

// Confirmar PUT /medico/turnos/:id/confirmar.
func (h *MedicoHandler) Confirmar(c *fiber.Ctx) error {
	return h.changeEstado(c, h.turnos.Confirmar)
}

// Cancelar PUT /medico/turnos/:id/cancelar.
func (h *MedicoHandler) Cancelar(c *fiber.Ctx) error {
	return h.changeEstado(c, h.turnos.Cancelar)
}

func (h *MedicoHandler) changeEstado(c *fiber.Ctx, op func(context.Context, *auth.Principal, int) (domain.TurnoCompleto, error)) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	turnoID, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	turno, err := op(c.UserContext(), principal, turnoID)
	if err != nil {
		return expireOn401(c, h.authMW, err)
	}
	return c.JSON(fiber.Map{"data": turno})
}

// Horarios GET /medico/horarios returns the weekly grid plus the room list.
func (h *MedicoHandler) Horarios(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	grid, err := h.horarios.Grid(c.UserContext(), principal)
	if err != nil {
		return expireOn401(c, h.authMW, err)
	}
	return c.JSON(fiber.Map{"data": grid})
}

// ToggleHorario POST /medico/horarios/toggle flips one weekly slot.
func (h *MedicoHandler) ToggleHorario(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.ToggleHorarioRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("payload inválido", nil)
	}
	result, err := h.horarios.Toggle(c.UserContext(), principal, req.DiaSemana, req.HoraInicio, req.ConsultoriosID)
	if err != nil {
		return expireOn401(c, h.authMW, err)
	}
	return c.JSON(fiber.Map{"data": result})
}

// Pacientes GET /medico/pacientes lists the physician's patient roster.
func (h *MedicoHandler) Pacientes(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	pacientes, err := h.pacientes.Roster(c.UserContext(), principal)
	if err != nil {
		return expireOn401(c, h.authMW, err)
	}
	return c.JSON(fiber.Map{"data": pacientes})
}

// Paciente GET /medico/pacientes/:id.
func (h *MedicoHandler) Paciente(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	clienteID, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	paciente, err := h.pacientes.Paciente(c.UserContext(), principal, clienteID)
	if err != nil {
		return expireOn401(c, h.authMW, err)
	}
	return c.JSON(fiber.Map{"data": paciente})
}
