package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spec-kit/clinic-portal/internal/domain"
)

// RegisterCliente creates a patient account. Public: it precedes any session.
func (c *Client) RegisterCliente(ctx context.Context, nuevo domain.NuevoCliente) (domain.Cliente, error) {
	var out domain.Cliente
	if err := c.doJSON(ctx, "register_cliente", http.MethodPost, "/clientes/", "", nuevo, &out); err != nil {
		return domain.Cliente{}, err
	}
	return out, nil
}

// GetCliente fetches one patient record.
func (c *Client) GetCliente(ctx context.Context, token string, clienteID int) (domain.Cliente, error) {
	var out domain.Cliente
	path := fmt.Sprintf("/clientes/%d", clienteID)
	if err := c.doJSON(ctx, "get_cliente", http.MethodGet, path, token, nil, &out); err != nil {
		return domain.Cliente{}, err
	}
	return out, nil
}

// UpdateCliente updates a patient's profile.
func (c *Client) UpdateCliente(ctx context.Context, token string, clienteID int, update domain.NuevoCliente) (domain.Cliente, error) {
	var out domain.Cliente
	path := fmt.Sprintf("/clientes/%d", clienteID)
	if err := c.doJSON(ctx, "update_cliente", http.MethodPut, path, token, update, &out); err != nil {
		return domain.Cliente{}, err
	}
	return out, nil
}

// MedicoEstadisticas fetches the physician dashboard counters.
func (c *Client) MedicoEstadisticas(ctx context.Context, token string, medicoID int) (domain.MedicoStats, error) {
	var out domain.MedicoStats
	path := fmt.Sprintf("/medicos/%d/estadisticas", medicoID)
	if err := c.doJSON(ctx, "medico_estadisticas", http.MethodGet, path, token, nil, &out); err != nil {
		return domain.MedicoStats{}, err
	}
	return out, nil
}
