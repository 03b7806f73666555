package handlers

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-portal/internal/auth"
	"github.com/spec-kit/clinic-portal/internal/pdf"
	"github.com/spec-kit/clinic-portal/internal/service"
	"github.com/spec-kit/clinic-portal/pkg/util"
)

// DocumentsHandler renders the printable PDFs.
type DocumentsHandler struct {
	turnos    *service.TurnoService
	pacientes *service.PacienteService
	authMW    *auth.Middleware
}

// NewDocumentsHandler constructs handler.
func NewDocumentsHandler(turnos *service.TurnoService, pacientes *service.PacienteService, authMW *auth.Middleware) *DocumentsHandler {
	return &DocumentsHandler{turnos: turnos, pacientes: pacientes, authMW: authMW}
}

// Comprobante GET /turnos/:id/comprobante.pdf renders the patient's booking
// receipt.
func (h *DocumentsHandler) Comprobante(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	turnoID, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	turno, err := h.turnos.Turno(c.UserContext(), principal, turnoID)
	if err != nil {
		return expireOn401(c, h.authMW, err)
	}

	var buf bytes.Buffer
	if err := pdf.Comprobante(&buf, turno); err != nil {
		return util.NewInternalError(err)
	}
	return sendPDF(c, fmt.Sprintf("comprobante-turno-%d.pdf", turnoID), buf.Bytes())
}

// Historial GET /medico/turnos/:id/historial.pdf renders the clinical record
// for one attended appointment.
func (h *DocumentsHandler) Historial(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	turnoID, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	turno, err := h.turnos.Turno(c.UserContext(), principal, turnoID)
	if err != nil {
		return expireOn401(c, h.authMW, err)
	}
	paciente, err := h.pacientes.Paciente(c.UserContext(), principal, turno.ClientesID)
	if err != nil {
		return expireOn401(c, h.authMW, err)
	}

	var buf bytes.Buffer
	if err := pdf.Historial(&buf, turno, paciente); err != nil {
		return util.NewInternalError(err)
	}
	return sendPDF(c, fmt.Sprintf("historial-turno-%d.pdf", turnoID), buf.Bytes())
}

func sendPDF(c *fiber.Ctx, filename string, body []byte) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(body)
}
