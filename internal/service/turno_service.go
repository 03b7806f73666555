package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/clinic-portal/internal/auth"
	"github.com/spec-kit/clinic-portal/internal/backend"
	"github.com/spec-kit/clinic-portal/internal/domain"
	"github.com/spec-kit/clinic-portal/internal/events"
	"github.com/spec-kit/clinic-portal/pkg/util"
)

// TurnoService drives appointment views for both roles: listing, booking and
// the estado mutations, with optimistic patching of the cached list.
type TurnoService struct {
	backend    *backend.Client
	cache      ViewCache
	dispatcher events.Dispatcher
	guard      *inflightGuard
	logger     *zap.Logger
}

// NewTurnoService builds the service.
func NewTurnoService(client *backend.Client, cache ViewCache, dispatcher events.Dispatcher, logger *zap.Logger) *TurnoService {
	return &TurnoService{
		backend:    client,
		cache:      cache,
		dispatcher: dispatcher,
		guard:      newInflightGuard(),
		logger:     logger,
	}
}

// AvailableSlots lists bookable slots for the public browsing view.
func (s *TurnoService) AvailableSlots(ctx context.Context) ([]domain.HorarioDisponible, error) {
	return s.backend.AvailableSlots(ctx)
}

// TurnosCliente lists the patient's appointments, serving the cached copy
// when present.
func (s *TurnoService) TurnosCliente(ctx context.Context, principal *auth.Principal) ([]domain.TurnoCompleto, error) {
	return s.listTurnos(ctx, principal, domain.RoleCliente)
}

// TurnosMedico lists the physician's appointments, serving the cached copy
// when present.
func (s *TurnoService) TurnosMedico(ctx context.Context, principal *auth.Principal) ([]domain.TurnoCompleto, error) {
	return s.listTurnos(ctx, principal, domain.RoleMedico)
}

func (s *TurnoService) listTurnos(ctx context.Context, principal *auth.Principal, role domain.Role) ([]domain.TurnoCompleto, error) {
	key := TurnosKey(role, principal.Claims.SubjectID)
	if turnos, ok := s.cache.GetTurnos(ctx, key); ok {
		return turnos, nil
	}

	var (
		turnos []domain.TurnoCompleto
		err    error
	)
	if role == domain.RoleMedico {
		turnos, err = s.backend.TurnosMedico(ctx, principal.BearerToken(), principal.Claims.SubjectID)
	} else {
		turnos, err = s.backend.TurnosCliente(ctx, principal.BearerToken(), principal.Claims.SubjectID)
	}
	if err != nil {
		return nil, err
	}
	s.cache.SetTurnos(ctx, key, turnos)
	return turnos, nil
}

// Book creates a pending appointment on a generated slot. The backend derives
// the turno id and creation timestamp, so the cached list is invalidated and
// the next listing re-fetches instead of patching.
func (s *TurnoService) Book(ctx context.Context, principal *auth.Principal, horariosMedicosID int, fechaHora domain.ISOTime, motivo string) (domain.Turno, error) {
	guardKey := fmt.Sprintf("book:%d:%s", horariosMedicosID, fechaHora.Format("2006-01-02T15:04"))
	if !s.guard.begin(guardKey) {
		return domain.Turno{}, util.NewConflict("la reserva ya está en curso", nil)
	}
	defer s.guard.end(guardKey)

	nuevo := domain.NuevoTurno{
		FechaHora:         fechaHora,
		Estado:            domain.EstadoPendiente,
		Motivo:            motivo,
		ClientesID:        principal.Claims.SubjectID,
		HorariosMedicosID: horariosMedicosID,
	}
	turno, err := s.backend.CreateTurno(ctx, principal.BearerToken(), nuevo)
	if err != nil {
		return domain.Turno{}, err
	}

	s.cache.Invalidate(ctx, TurnosKey(domain.RoleCliente, principal.Claims.SubjectID))
	publishEvent(ctx, s.dispatcher, events.EventTurnoBooked, principal, events.TurnoBookedPayload{
		TurnoID:           turno.ID,
		HorariosMedicosID: horariosMedicosID,
		FechaHora:         fechaHora.Format("2006-01-02T15:04:05"),
	})
	return turno, nil
}

// Cancelar cancels an appointment and patches the caller's cached list to
// estado cancelado without a re-fetch.
func (s *TurnoService) Cancelar(ctx context.Context, principal *auth.Principal, turnoID int) (domain.TurnoCompleto, error) {
	return s.changeEstado(ctx, principal, turnoID, domain.EstadoCancelado)
}

// Confirmar accepts a pending appointment; physician action.
func (s *TurnoService) Confirmar(ctx context.Context, principal *auth.Principal, turnoID int) (domain.TurnoCompleto, error) {
	return s.changeEstado(ctx, principal, turnoID, domain.EstadoConfirmado)
}

func (s *TurnoService) changeEstado(ctx context.Context, principal *auth.Principal, turnoID int, estado domain.EstadoTurno) (domain.TurnoCompleto, error) {
	guardKey := fmt.Sprintf("turno:%d", turnoID)
	if !s.guard.begin(guardKey) {
		return domain.TurnoCompleto{}, util.NewConflict("el turno ya tiene una operación en curso", nil)
	}
	defer s.guard.end(guardKey)

	var (
		turno domain.TurnoCompleto
		err   error
	)
	if estado == domain.EstadoConfirmado {
		turno, err = s.backend.ConfirmarTurno(ctx, principal.BearerToken(), turnoID)
	} else {
		turno, err = s.backend.CancelarTurno(ctx, principal.BearerToken(), turnoID)
	}
	if err != nil {
		return domain.TurnoCompleto{}, err
	}

	key := TurnosKey(principal.Claims.Role, principal.Claims.SubjectID)
	if cached, ok := s.cache.GetTurnos(ctx, key); ok {
		s.cache.SetTurnos(ctx, key, domain.PatchTurnoEstado(cached, turnoID, estado))
	}
	publishEvent(ctx, s.dispatcher, events.EventTurnoEstadoChanged, principal, events.TurnoEstadoChangedPayload{
		TurnoID:   turnoID,
		NewEstado: estado,
	})
	return turno, nil
}

// Eliminar removes a cancelled appointment from the patient's history and
// drops it from the cached list.
func (s *TurnoService) Eliminar(ctx context.Context, principal *auth.Principal, turnoID int) error {
	guardKey := fmt.Sprintf("turno:%d", turnoID)
	if !s.guard.begin(guardKey) {
		return util.NewConflict("el turno ya tiene una operación en curso", nil)
	}
	defer s.guard.end(guardKey)

	key := TurnosKey(principal.Claims.Role, principal.Claims.SubjectID)
	if cached, ok := s.cache.GetTurnos(ctx, key); ok {
		for _, t := range cached {
			if t.ID == turnoID && t.Estado != domain.EstadoCancelado {
				return util.NewValidationError("solo se pueden eliminar turnos cancelados", nil)
			}
		}
	}

	if err := s.backend.DeleteTurno(ctx, principal.BearerToken(), turnoID); err != nil {
		return err
	}

	if cached, ok := s.cache.GetTurnos(ctx, key); ok {
		s.cache.SetTurnos(ctx, key, domain.RemoveTurno(cached, turnoID))
	}
	publishEvent(ctx, s.dispatcher, events.EventTurnoDeleted, principal, events.TurnoDeletedPayload{TurnoID: turnoID})
	return nil
}

// Turno finds one appointment in the caller's listing; documents render from
// already-fetched data rather than a dedicated backend lookup.
func (s *TurnoService) Turno(ctx context.Context, principal *auth.Principal, turnoID int) (domain.TurnoCompleto, error) {
	role := principal.Claims.Role
	turnos, err := s.listTurnos(ctx, principal, role)
	if err != nil {
		return domain.TurnoCompleto{}, err
	}
	for _, t := range turnos {
		if t.ID == turnoID {
			return t, nil
		}
	}
	return domain.TurnoCompleto{}, util.NewNotFound("turno", map[string]any{"id": turnoID})
}
