package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/clinic-portal/internal/domain"
)

func sampleTurno() domain.TurnoCompleto {
	return domain.TurnoCompleto{
		Turno: domain.Turno{
			ID:            15,
			FechaHora:     domain.ISOTime{Time: time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC)},
			Estado:        domain.EstadoConfirmado,
			Motivo:        "Control anual",
			FechaCreacion: domain.ISOTime{Time: time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)},
			ClientesID:    7,
		},
		Medico: domain.Medico{
			Nombre: "Carlos", Apellido: "Ruiz", Especialidad: "Cardiología",
		},
		Consultorio:           domain.Consultorio{Numero: "101", Ubicacion: "Planta baja"},
		ClienteNombreCompleto: "Ana García",
	}
}

func TestComprobanteProducesPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Comprobante(&buf, sampleTurno()))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 1000)
}

func TestComprobanteHandlesSparseData(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Comprobante(&buf, domain.TurnoCompleto{Turno: domain.Turno{ID: 1}}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestHistorialProducesPDF(t *testing.T) {
	paciente := domain.Cliente{
		ID: 7, Nombre: "Ana", Apellido: "García", DNI: 30123456,
		Email: "ana@example.com", FechaNacimiento: "1990-04-12",
	}

	var buf bytes.Buffer
	require.NoError(t, Historial(&buf, sampleTurno(), paciente))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 1000)
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "N/A", formatFecha(domain.ISOTime{}))
	assert.Equal(t, "N/A", orNA(""))
	assert.Equal(t, "12/04/1990", formatFechaISO("1990-04-12"))
	assert.Equal(t, "N/A", formatFechaISO(""))
	assert.Equal(t, "101 (Planta baja)", consultorioLabel(domain.Consultorio{Numero: "101", Ubicacion: "Planta baja"}))
	assert.Equal(t, "N/A", consultorioLabel(domain.Consultorio{}))
}
