package domain

// Cliente is the patient-facing account as returned by the backend.
type Cliente struct {
	ID              int    `json:"id"`
	Nombre          string `json:"nombre"`
	Apellido        string `json:"apellido"`
	DNI             int    `json:"dni"`
	Email           string `json:"email"`
	Telefono        string `json:"telefono"`
	FechaNacimiento string `json:"fecha_nacimiento"`
}

// NombreCompleto joins first and last name for display and documents.
func (c Cliente) NombreCompleto() string {
	if c.Nombre == "" && c.Apellido == "" {
		return ""
	}
	if c.Apellido == "" {
		return c.Nombre
	}
	return c.Nombre + " " + c.Apellido
}

// NuevoCliente is the registration payload; the backend hashes the password.
type NuevoCliente struct {
	Nombre          string `json:"nombre"`
	Apellido        string `json:"apellido"`
	DNI             int    `json:"dni"`
	Email           string `json:"email"`
	Telefono        string `json:"telefono"`
	FechaNacimiento string `json:"fecha_nacimiento"`
	Contrasena      string `json:"contraseña"`
}
