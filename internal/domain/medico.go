package domain

// Medico is the public physician view embedded in turno listings.
type Medico struct {
	ID           int    `json:"id"`
	Nombre       string `json:"nombre"`
	Apellido     string `json:"apellido"`
	Especialidad string `json:"especialidad"`
	Matricula    string `json:"matricula"`
}

// NombreCompleto joins first and last name for display and documents.
func (m Medico) NombreCompleto() string {
	if m.Nombre == "" && m.Apellido == "" {
		return ""
	}
	if m.Apellido == "" {
		return m.Nombre
	}
	return m.Nombre + " " + m.Apellido
}

// MedicoStats backs the physician dashboard header cards.
type MedicoStats struct {
	TurnosHoy        int `json:"turnos_hoy"`
	PacientesTotales int `json:"pacientes_totales"`
}
