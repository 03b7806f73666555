package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spec-kit/clinic-portal/internal/domain"
)

// AvailableSlots lists the bookable slots the backend generates from weekly
// schedules. Public: browsing needs no session.
func (c *Client) AvailableSlots(ctx context.Context) ([]domain.HorarioDisponible, error) {
	var out []domain.HorarioDisponible
	if err := c.doJSON(ctx, "available_slots", http.MethodGet, "/horarios_medicos/disponibles/", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// HorariosPorMedico lists a physician's weekly availability template.
func (c *Client) HorariosPorMedico(ctx context.Context, token string, medicoID int) ([]domain.HorarioMedico, error) {
	var out []domain.HorarioMedico
	path := fmt.Sprintf("/horarios_medicos/por-medico/%d", medicoID)
	if err := c.doJSON(ctx, "horarios_por_medico", http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateHorario enables one weekly slot.
func (c *Client) CreateHorario(ctx context.Context, token string, nuevo domain.NuevoHorario) (domain.HorarioMedico, error) {
	var out domain.HorarioMedico
	if err := c.doJSON(ctx, "create_horario", http.MethodPost, "/horarios_medicos/", token, nuevo, &out); err != nil {
		return domain.HorarioMedico{}, err
	}
	return out, nil
}

// DeleteHorario disables one weekly slot.
func (c *Client) DeleteHorario(ctx context.Context, token string, horarioID int) error {
	path := fmt.Sprintf("/horarios_medicos/%d", horarioID)
	return c.doJSON(ctx, "delete_horario", http.MethodDelete, path, token, nil, nil)
}

// Consultorios lists the examination rooms a slot can be assigned to.
func (c *Client) Consultorios(ctx context.Context, token string) ([]domain.Consultorio, error) {
	var out []domain.Consultorio
	if err := c.doJSON(ctx, "consultorios", http.MethodGet, "/consultorios/", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
