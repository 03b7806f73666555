// Package pdf renders the portal's printable documents from already-fetched
// data; nothing here talks to the backend.
package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/spec-kit/clinic-portal/internal/domain"
)

const clinicName = "Centro de Salud JAVA"

// Comprobante renders the appointment receipt handed to patients after
// booking.
func Comprobante(w io.Writer, turno domain.TurnoCompleto) error {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(20, 20, 20)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.SetTextColor(17, 24, 39)
	doc.CellFormat(0, 10, "Comprobante de Turno Médico", "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(107, 114, 128)
	doc.CellFormat(0, 6, clinicName, "", 1, "C", false, 0, "")
	doc.Ln(8)

	drawBox(doc, "Información del Paciente", [][2]string{
		{"Paciente:", orNA(turno.ClienteNombreCompleto)},
	})

	drawBox(doc, fmt.Sprintf("Detalles de la Cita (Turno ID: %d)", turno.ID), citaRows(turno))

	doc.Ln(6)
	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(75, 85, 99)
	doc.CellFormat(0, 5, "Recuerde presentarse 10 minutos antes del horario indicado.", "", 1, "C", false, 0, "")
	doc.CellFormat(0, 5, "Si necesita cancelar el turno, por favor hágalo con la mayor anticipación posible.", "", 1, "C", false, 0, "")

	doc.Ln(10)
	doc.SetFont("Helvetica", "", 8)
	doc.SetTextColor(107, 114, 128)
	footer := fmt.Sprintf("Comprobante generado el: %s | Turno solicitado el: %s",
		time.Now().Format("02/01/2006 15:04"),
		formatFechaHora(turno.FechaCreacion))
	doc.CellFormat(0, 5, footer, "T", 1, "C", false, 0, "")

	return doc.Output(w)
}

func citaRows(turno domain.TurnoCompleto) [][2]string {
	rows := [][2]string{
		{"Especialidad:", orNA(turno.Medico.Especialidad)},
		{"Profesional:", orNA(turno.Medico.NombreCompleto())},
		{"Fecha:", formatFecha(turno.FechaHora)},
		{"Hora:", formatHora(turno.FechaHora)},
		{"Consultorio:", orNA(turno.Consultorio.Numero)},
	}
	if turno.Motivo != "" {
		rows = append(rows, [2]string{"Motivo:", turno.Motivo})
	}
	return rows
}

// drawBox renders one bordered label/value section.
func drawBox(doc *gofpdf.Fpdf, title string, rows [][2]string) {
	doc.SetDrawColor(209, 213, 219)

	x, y := doc.GetX(), doc.GetY()
	doc.SetFont("Helvetica", "B", 11)
	doc.SetTextColor(30, 64, 175)
	doc.SetXY(x+4, y+4)
	doc.CellFormat(0, 6, title, "", 1, "L", false, 0, "")

	doc.SetTextColor(51, 51, 51)
	for _, row := range rows {
		doc.SetX(x + 4)
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(45, 6, row[0], "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		doc.MultiCell(110, 6, row[1], "", "L", false)
	}

	height := doc.GetY() - y + 4
	doc.Rect(x, y, 170, height, "D")
	doc.SetY(y + height + 6)
}

func formatFecha(t domain.ISOTime) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("02/01/2006")
}

func formatHora(t domain.ISOTime) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("15:04")
}

func formatFechaHora(t domain.ISOTime) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("02/01/2006 15:04")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
