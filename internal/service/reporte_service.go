package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/clinic-portal/internal/auth"
	"github.com/spec-kit/clinic-portal/internal/backend"
	"github.com/spec-kit/clinic-portal/internal/domain"
)

// recentTurnos caps the "recent appointments" card on the patient dashboard.
const recentTurnos = 3

// ReporteService aggregates the dashboard views, the portal's one piece of
// backend fan-out.
type ReporteService struct {
	backend *backend.Client
	logger  *zap.Logger
}

// NewReporteService builds the service.
func NewReporteService(client *backend.Client, logger *zap.Logger) *ReporteService {
	return &ReporteService{backend: client, logger: logger}
}

// ClienteDashboard is the patient landing view.
type ClienteDashboard struct {
	Perfil       domain.Cliente         `json:"perfil"`
	ProximoTurno *domain.TurnoCompleto  `json:"proximo_turno,omitempty"`
	Recientes    []domain.TurnoCompleto `json:"recientes"`
}

// MedicoDashboard is the physician landing view.
type MedicoDashboard struct {
	Stats  domain.MedicoStats     `json:"stats"`
	Turnos []domain.TurnoCompleto `json:"turnos"`
}

// ForCliente aggregates profile, next appointment and recent history.
func (s *ReporteService) ForCliente(ctx context.Context, principal *auth.Principal) (ClienteDashboard, error) {
	token := principal.BearerToken()
	clienteID := principal.Claims.SubjectID

	perfil, err := s.backend.GetCliente(ctx, token, clienteID)
	if err != nil {
		return ClienteDashboard{}, err
	}

	proximo, err := s.backend.ProximoTurnoCliente(ctx, token, clienteID)
	if err != nil {
		return ClienteDashboard{}, err
	}

	turnos, err := s.backend.TurnosCliente(ctx, token, clienteID)
	if err != nil {
		return ClienteDashboard{}, err
	}
	if len(turnos) > recentTurnos {
		turnos = turnos[:recentTurnos]
	}

	return ClienteDashboard{Perfil: perfil, ProximoTurno: proximo, Recientes: turnos}, nil
}

// ForMedico aggregates the counters and the physician's turno list.
func (s *ReporteService) ForMedico(ctx context.Context, principal *auth.Principal) (MedicoDashboard, error) {
	token := principal.BearerToken()
	medicoID := principal.Claims.SubjectID

	stats, err := s.backend.MedicoEstadisticas(ctx, token, medicoID)
	if err != nil {
		return MedicoDashboard{}, err
	}
	turnos, err := s.backend.TurnosMedico(ctx, token, medicoID)
	if err != nil {
		return MedicoDashboard{}, err
	}
	return MedicoDashboard{Stats: stats, Turnos: turnos}, nil
}
