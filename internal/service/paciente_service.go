package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/spec-kit/clinic-portal/internal/auth"
	"github.com/spec-kit/clinic-portal/internal/backend"
	"github.com/spec-kit/clinic-portal/internal/domain"
)

// PacienteService assembles the physician's patient roster, which the backend
// does not expose directly: it is the set of unique patients across the
// physician's turnos.
type PacienteService struct {
	backend *backend.Client
	logger  *zap.Logger
}

// NewPacienteService builds the service.
func NewPacienteService(client *backend.Client, logger *zap.Logger) *PacienteService {
	return &PacienteService{backend: client, logger: logger}
}

// Roster lists the physician's patients, ordered by apellido.
func (s *PacienteService) Roster(ctx context.Context, principal *auth.Principal) ([]domain.Cliente, error) {
	turnos, err := s.backend.TurnosMedico(ctx, principal.BearerToken(), principal.Claims.SubjectID)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]struct{}, len(turnos))
	ids := make([]int, 0, len(turnos))
	for _, t := range turnos {
		if _, dup := seen[t.ClientesID]; dup {
			continue
		}
		seen[t.ClientesID] = struct{}{}
		ids = append(ids, t.ClientesID)
	}

	pacientes := make([]domain.Cliente, 0, len(ids))
	for _, id := range ids {
		cliente, err := s.backend.GetCliente(ctx, principal.BearerToken(), id)
		if err != nil {
			// A single missing record should not blank the roster.
			s.logger.Warn("paciente lookup failed", zap.Int("cliente_id", id), zap.Error(err))
			continue
		}
		pacientes = append(pacientes, cliente)
	}

	sort.Slice(pacientes, func(i, j int) bool {
		if pacientes[i].Apellido == pacientes[j].Apellido {
			return pacientes[i].Nombre < pacientes[j].Nombre
		}
		return pacientes[i].Apellido < pacientes[j].Apellido
	})
	return pacientes, nil
}

// Paciente fetches one patient's record for the physician detail view.
func (s *PacienteService) Paciente(ctx context.Context, principal *auth.Principal, clienteID int) (domain.Cliente, error) {
	return s.backend.GetCliente(ctx, principal.BearerToken(), clienteID)
}
