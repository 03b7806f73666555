package domain

import (
	"fmt"
	"strings"
	"time"
)

// EstadoTurno represents appointment lifecycle states as issued by the clinic
// backend.
type EstadoTurno string

const (
	EstadoPendiente  EstadoTurno = "pendiente"
	EstadoConfirmado EstadoTurno = "confirmado"
	EstadoCancelado  EstadoTurno = "cancelado"
	EstadoCompletado EstadoTurno = "completado"
)

// Cancelable reports whether a turno in this estado may still be cancelled.
func (e EstadoTurno) Cancelable() bool {
	return e == EstadoPendiente || e == EstadoConfirmado
}

// ISOTime unmarshals the backend's datetime strings, which may arrive without
// a timezone suffix.
type ISOTime struct {
	time.Time
}

const isoNoZone = "2006-01-02T15:04:05"

// UnmarshalJSON accepts RFC3339 as well as zone-less ISO timestamps.
func (t *ISOTime) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		t.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.Parse(isoNoZone, raw)
	if err != nil {
		return fmt.Errorf("parse timestamp %q: %w", raw, err)
	}
	t.Time = parsed
	return nil
}

// MarshalJSON renders the zone-less ISO layout the backend uses.
func (t ISOTime) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + t.Time.Format(isoNoZone) + `"`), nil
}

// Turno is an appointment as stored by the backend.
type Turno struct {
	ID                int         `json:"id"`
	FechaHora         ISOTime     `json:"fecha_hora"`
	Estado            EstadoTurno `json:"estado"`
	Motivo            string      `json:"motivo"`
	FechaCreacion     ISOTime     `json:"fecha_creacion"`
	ClientesID        int         `json:"clientes_id"`
	HorariosMedicosID int         `json:"horarios_medicos_id"`
}

// TurnoCompleto embeds the related physician and room the backend joins in
// for list endpoints.
type TurnoCompleto struct {
	Turno
	Medico                Medico      `json:"medico"`
	Consultorio           Consultorio `json:"consultorio"`
	ClienteNombreCompleto string      `json:"cliente_nombre_completo"`
}

// NuevoTurno is the booking payload; estado always starts as pendiente and
// the backend derives id and fecha_creacion.
type NuevoTurno struct {
	FechaHora         ISOTime     `json:"fecha_hora"`
	Estado            EstadoTurno `json:"estado"`
	Motivo            string      `json:"motivo"`
	ClientesID        int         `json:"clientes_id"`
	HorariosMedicosID int         `json:"horarios_medicos_id"`
}
