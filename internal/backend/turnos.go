package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spec-kit/clinic-portal/internal/domain"
	"github.com/spec-kit/clinic-portal/pkg/util"
)

// CreateTurno books a new appointment; the backend derives the id and
// creation timestamp.
func (c *Client) CreateTurno(ctx context.Context, token string, nuevo domain.NuevoTurno) (domain.Turno, error) {
	var out domain.Turno
	if err := c.doJSON(ctx, "create_turno", http.MethodPost, "/turnos/", token, nuevo, &out); err != nil {
		return domain.Turno{}, err
	}
	return out, nil
}

// TurnosCliente lists a patient's appointments with physician and room
// embedded.
func (c *Client) TurnosCliente(ctx context.Context, token string, clienteID int) ([]domain.TurnoCompleto, error) {
	var out []domain.TurnoCompleto
	path := fmt.Sprintf("/turnos/cliente/%d", clienteID)
	if err := c.doJSON(ctx, "turnos_cliente", http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProximoTurnoCliente returns the patient's next upcoming appointment, nil
// when there is none.
func (c *Client) ProximoTurnoCliente(ctx context.Context, token string, clienteID int) (*domain.TurnoCompleto, error) {
	var out domain.TurnoCompleto
	path := fmt.Sprintf("/turnos/cliente/%d/proximo", clienteID)
	err := c.doJSON(ctx, "proximo_turno", http.MethodGet, path, token, nil, &out)
	if err != nil {
		var de *util.DomainError
		if errors.As(err, &de) && de.HTTPStatus == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

// TurnosMedico lists the appointments booked against a physician's slots.
func (c *Client) TurnosMedico(ctx context.Context, token string, medicoID int) ([]domain.TurnoCompleto, error) {
	var out []domain.TurnoCompleto
	path := fmt.Sprintf("/turnos/medico/%d", medicoID)
	if err := c.doJSON(ctx, "turnos_medico", http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ConfirmarTurno moves a pending appointment to confirmado.
func (c *Client) ConfirmarTurno(ctx context.Context, token string, turnoID int) (domain.TurnoCompleto, error) {
	var out domain.TurnoCompleto
	path := fmt.Sprintf("/turnos/%d/confirmar", turnoID)
	if err := c.doJSON(ctx, "confirmar_turno", http.MethodPut, path, token, nil, &out); err != nil {
		return domain.TurnoCompleto{}, err
	}
	return out, nil
}

// CancelarTurno cancels an appointment on behalf of either role.
func (c *Client) CancelarTurno(ctx context.Context, token string, turnoID int) (domain.TurnoCompleto, error) {
	var out domain.TurnoCompleto
	path := fmt.Sprintf("/turnos/%d/cancelar", turnoID)
	if err := c.doJSON(ctx, "cancelar_turno", http.MethodPut, path, token, nil, &out); err != nil {
		return domain.TurnoCompleto{}, err
	}
	return out, nil
}

// DeleteTurno removes a cancelled appointment.
func (c *Client) DeleteTurno(ctx context.Context, token string, turnoID int) error {
	path := fmt.Sprintf("/turnos/%d", turnoID)
	return c.doJSON(ctx, "delete_turno", http.MethodDelete, path, token, nil, nil)
}
