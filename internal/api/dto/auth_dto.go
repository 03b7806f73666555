package dto

import (
	"github.com/spec-kit/clinic-portal/internal/domain"
)

// LoginRequest payload. Rol picks the backend token endpoint.
type LoginRequest struct {
	Usuario    string `json:"usuario"`
	Contrasena string `json:"contraseña"`
	Rol        string `json:"rol"`
}

// RegisterRequest payload for patient self-registration.
type RegisterRequest struct {
	Nombre          string `json:"nombre"`
	Apellido        string `json:"apellido"`
	DNI             int    `json:"dni"`
	Email           string `json:"email"`
	Telefono        string `json:"telefono"`
	FechaNacimiento string `json:"fecha_nacimiento"`
	Contrasena      string `json:"contraseña"`
}

// NuevoCliente converts the request into the backend registration payload.
func (r RegisterRequest) NuevoCliente() domain.NuevoCliente {
	return domain.NuevoCliente{
		Nombre:          r.Nombre,
		Apellido:        r.Apellido,
		DNI:             r.DNI,
		Email:           r.Email,
		Telefono:        r.Telefono,
		FechaNacimiento: r.FechaNacimiento,
		Contrasena:      r.Contrasena,
	}
}

// SessionResponse reports who is signed in and where the client should land.
type SessionResponse struct {
	Rol        domain.Role `json:"rol"`
	Nombre     string      `json:"nombre"`
	SubjectID  int         `json:"subject_id"`
	RedirectTo string      `json:"redirect_to,omitempty"`
}

// UpdatePerfilRequest carries editable profile fields; a blank password keeps
// the current one.
type UpdatePerfilRequest struct {
	Nombre          string `json:"nombre"`
	Apellido        string `json:"apellido"`
	DNI             int    `json:"dni"`
	Email           string `json:"email"`
	Telefono        string `json:"telefono"`
	FechaNacimiento string `json:"fecha_nacimiento"`
	Contrasena      string `json:"contraseña"`
}

// NuevoCliente converts the update into the backend payload.
func (r UpdatePerfilRequest) NuevoCliente() domain.NuevoCliente {
	return domain.NuevoCliente{
		Nombre:          r.Nombre,
		Apellido:        r.Apellido,
		DNI:             r.DNI,
		Email:           r.Email,
		Telefono:        r.Telefono,
		FechaNacimiento: r.FechaNacimiento,
		Contrasena:      r.Contrasena,
	}
}
