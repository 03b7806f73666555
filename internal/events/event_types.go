package events

import (
	"time"

	"github.com/spec-kit/clinic-portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	// Session lifecycle; the same-process "auth changed" broadcast that
	// navigation chrome and the audit trail listen for.
	EventSessionCreated EventType = "session_created"
	EventSessionCleared EventType = "session_cleared"

	EventTurnoBooked        EventType = "turno_booked"
	EventTurnoEstadoChanged EventType = "turno_estado_changed"
	EventTurnoDeleted       EventType = "turno_deleted"
	EventHorarioToggled     EventType = "horario_toggled"
	EventPerfilUpdated      EventType = "perfil_updated"
)

// Actor identifies who triggered an event, derived from session claims.
type Actor struct {
	Role      domain.Role `json:"role"`
	SubjectID int         `json:"subject_id"`
	Nombre    string      `json:"nombre,omitempty"`
}

// Event represents a portal event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SessionID string      `json:"session_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SessionPayload accompanies session lifecycle events.
type SessionPayload struct {
	Reason string `json:"reason,omitempty"`
}

// TurnoBookedPayload payload.
type TurnoBookedPayload struct {
	TurnoID           int    `json:"turno_id"`
	HorariosMedicosID int    `json:"horarios_medicos_id"`
	FechaHora         string `json:"fecha_hora"`
}

// TurnoEstadoChangedPayload payload.
type TurnoEstadoChangedPayload struct {
	TurnoID   int                `json:"turno_id"`
	OldEstado domain.EstadoTurno `json:"old_estado,omitempty"`
	NewEstado domain.EstadoTurno `json:"new_estado"`
}

// TurnoDeletedPayload payload.
type TurnoDeletedPayload struct {
	TurnoID int `json:"turno_id"`
}

// HorarioToggledPayload payload.
type HorarioToggledPayload struct {
	HorarioID  int    `json:"horario_id"`
	DiaSemana  int    `json:"dia_semana"`
	Enabled    bool   `json:"enabled"`
	HoraInicio string `json:"hora_inicio"`
}
