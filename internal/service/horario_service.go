package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/clinic-portal/internal/auth"
	"github.com/spec-kit/clinic-portal/internal/backend"
	"github.com/spec-kit/clinic-portal/internal/domain"
	"github.com/spec-kit/clinic-portal/internal/events"
	"github.com/spec-kit/clinic-portal/pkg/util"
)

// slotMinutes is the length of one weekly availability slot.
const slotMinutes = 30

// HorarioService manages the physician's weekly availability grid.
type HorarioService struct {
	backend    *backend.Client
	dispatcher events.Dispatcher
	guard      *inflightGuard
	logger     *zap.Logger
}

// NewHorarioService builds the service.
func NewHorarioService(client *backend.Client, dispatcher events.Dispatcher, logger *zap.Logger) *HorarioService {
	return &HorarioService{backend: client, dispatcher: dispatcher, guard: newInflightGuard(), logger: logger}
}

// Grid is the availability view: the physician's slots plus the rooms they
// can be assigned to.
type Grid struct {
	Horarios     []domain.HorarioMedico `json:"horarios"`
	Consultorios []domain.Consultorio   `json:"consultorios"`
}

// Grid fetches the physician's weekly slots and the room list.
func (s *HorarioService) Grid(ctx context.Context, principal *auth.Principal) (Grid, error) {
	horarios, err := s.backend.HorariosPorMedico(ctx, principal.BearerToken(), principal.Claims.SubjectID)
	if err != nil {
		return Grid{}, err
	}
	consultorios, err := s.backend.Consultorios(ctx, principal.BearerToken())
	if err != nil {
		return Grid{}, err
	}
	return Grid{Horarios: horarios, Consultorios: consultorios}, nil
}

// ToggleResult reports what the toggle did so the caller can patch its grid
// state locally.
type ToggleResult struct {
	Enabled bool                  `json:"enabled"`
	Horario *domain.HorarioMedico `json:"horario,omitempty"`
}

// Toggle enables or disables one weekly slot: deletes the slot when it
// exists, creates a 30-minute slot in the chosen room when it does not.
func (s *HorarioService) Toggle(ctx context.Context, principal *auth.Principal, diaSemana int, horaInicio string, consultorioID int) (ToggleResult, error) {
	if diaSemana < 0 || diaSemana > 6 {
		return ToggleResult{}, util.NewValidationError("día de semana inválido", map[string]any{"dia_semana": diaSemana})
	}
	if _, _, err := parseHoraMinuto(horaInicio); err != nil {
		return ToggleResult{}, util.NewValidationError("hora de inicio inválida", map[string]any{"hora_inicio": horaInicio})
	}

	guardKey := fmt.Sprintf("horario:%d:%d:%s", principal.Claims.SubjectID, diaSemana, horaInicio)
	if !s.guard.begin(guardKey) {
		return ToggleResult{}, util.NewConflict("el horario ya tiene una operación en curso", nil)
	}
	defer s.guard.end(guardKey)

	horarios, err := s.backend.HorariosPorMedico(ctx, principal.BearerToken(), principal.Claims.SubjectID)
	if err != nil {
		return ToggleResult{}, err
	}

	if existing := findHorario(horarios, diaSemana, horaInicio); existing != nil {
		if err := s.backend.DeleteHorario(ctx, principal.BearerToken(), existing.ID); err != nil {
			return ToggleResult{}, err
		}
		s.publishToggle(ctx, principal, existing.ID, diaSemana, horaInicio, false)
		return ToggleResult{Enabled: false}, nil
	}

	if consultorioID <= 0 {
		return ToggleResult{}, util.NewValidationError("seleccioná un consultorio primero", nil)
	}
	nuevo := domain.NuevoHorario{
		DiaSemana:      diaSemana,
		HoraInicio:     normalizeHora(horaInicio),
		HoraFin:        horaFin(horaInicio),
		MedicosID:      principal.Claims.SubjectID,
		ConsultoriosID: consultorioID,
	}
	created, err := s.backend.CreateHorario(ctx, principal.BearerToken(), nuevo)
	if err != nil {
		return ToggleResult{}, err
	}
	s.publishToggle(ctx, principal, created.ID, diaSemana, horaInicio, true)
	return ToggleResult{Enabled: true, Horario: &created}, nil
}

func (s *HorarioService) publishToggle(ctx context.Context, principal *auth.Principal, horarioID, diaSemana int, horaInicio string, enabled bool) {
	publishEvent(ctx, s.dispatcher, events.EventHorarioToggled, principal, events.HorarioToggledPayload{
		HorarioID:  horarioID,
		DiaSemana:  diaSemana,
		Enabled:    enabled,
		HoraInicio: horaInicio,
	})
}

// findHorario matches "09:00" against stored "09:00:00" values.
func findHorario(horarios []domain.HorarioMedico, diaSemana int, horaInicio string) *domain.HorarioMedico {
	for i := range horarios {
		if horarios[i].DiaSemana == diaSemana && strings.HasPrefix(horarios[i].HoraInicio, horaInicio) {
			return &horarios[i]
		}
	}
	return nil
}

func parseHoraMinuto(hora string) (int, int, error) {
	var h, m int
	if _, err := fmt.Sscanf(hora, "%d:%d", &h, &m); err != nil {
		return 0, 0, err
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("out of range: %s", hora)
	}
	return h, m, nil
}

func normalizeHora(hora string) string {
	h, m, _ := parseHoraMinuto(hora)
	return fmt.Sprintf("%02d:%02d:00", h, m)
}

// horaFin computes the slot end time.
func horaFin(horaInicio string) string {
	h, m, _ := parseHoraMinuto(horaInicio)
	m += slotMinutes
	h = (h + m/60) % 24
	m %= 60
	return fmt.Sprintf("%02d:%02d:00", h, m)
}
