package pdf

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/spec-kit/clinic-portal/internal/domain"
)

// Historial renders the clinical-visit history record a physician prints for
// a patient's attended appointment.
func Historial(w io.Writer, turno domain.TurnoCompleto, paciente domain.Cliente) error {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(20, 20, 20)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.SetTextColor(17, 24, 39)
	doc.CellFormat(0, 8, clinicName, "", 1, "R", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(107, 114, 128)
	doc.CellFormat(0, 5, "Reporte de Historial Médico", "", 1, "R", false, 0, "")
	doc.CellFormat(0, 5, "Generado: "+time.Now().Format("02/01/2006 15:04"), "", 1, "R", false, 0, "")
	doc.Ln(8)

	doc.SetFont("Helvetica", "BU", 14)
	doc.SetTextColor(17, 24, 39)
	doc.CellFormat(0, 8, fmt.Sprintf("Detalle de Atención (Turno ID: %d)", turno.ID), "", 1, "C", false, 0, "")
	doc.Ln(6)

	drawBox(doc, "Información del Paciente", [][2]string{
		{"Paciente:", orNA(paciente.NombreCompleto())},
		{"DNI:", fmt.Sprintf("%d", paciente.DNI)},
		{"Email:", orNA(paciente.Email)},
		{"Fecha Nac.:", formatFechaISO(paciente.FechaNacimiento)},
	})

	drawBox(doc, "Detalles de la Cita", [][2]string{
		{"Fecha:", formatFecha(turno.FechaHora)},
		{"Hora:", formatHora(turno.FechaHora)},
		{"Estado:", strings.ToUpper(string(turno.Estado))},
		{"Especialidad:", orNA(turno.Medico.Especialidad)},
		{"Profesional:", orNA(turno.Medico.NombreCompleto())},
		{"Consultorio:", consultorioLabel(turno.Consultorio)},
	})

	doc.Ln(4)
	doc.SetFont("Helvetica", "B", 12)
	doc.SetTextColor(51, 51, 51)
	doc.CellFormat(0, 7, "Motivo de Consulta (registrado por paciente):", "T", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "I", 10)
	doc.SetTextColor(75, 85, 99)
	motivo := turno.Motivo
	if motivo == "" {
		motivo = "No especificado."
	}
	doc.MultiCell(0, 6, motivo, "", "L", false)

	doc.Ln(8)
	doc.SetFont("Helvetica", "I", 10)
	doc.CellFormat(0, 6, ".............................................", "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, "Firma del Profesional", "", 1, "L", false, 0, "")

	doc.SetY(-30)
	doc.SetFont("Helvetica", "", 8)
	doc.SetTextColor(107, 114, 128)
	doc.CellFormat(0, 5, "Este documento es confidencial y contiene información de salud sensible.", "T", 1, "C", false, 0, "")

	return doc.Output(w)
}

// formatFechaISO converts the backend's plain "2006-01-02" dates.
func formatFechaISO(date string) string {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return orNA(date)
	}
	return parsed.Format("02/01/2006")
}

func consultorioLabel(c domain.Consultorio) string {
	if c.Numero == "" {
		return "N/A"
	}
	if c.Ubicacion == "" {
		return c.Numero
	}
	return fmt.Sprintf("%s (%s)", c.Numero, c.Ubicacion)
}
