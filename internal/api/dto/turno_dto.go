package dto

import (
	"github.com/spec-kit/clinic-portal/internal/domain"
)

// BookTurnoRequest payload.
type BookTurnoRequest struct {
	HorariosMedicosID int            `json:"horarios_medicos_id"`
	FechaHora         domain.ISOTime `json:"fecha_hora"`
	Motivo            string         `json:"motivo"`
}
