package domain

// HorarioMedico is a physician's recurring weekly availability slot, the
// template the backend expands into bookable turnos.
type HorarioMedico struct {
	ID             int    `json:"id"`
	DiaSemana      int    `json:"dia_semana"`
	HoraInicio     string `json:"hora_inicio"`
	HoraFin        string `json:"hora_fin"`
	MedicosID      int    `json:"medicos_id"`
	ConsultoriosID int    `json:"consultorios_id"`
}

// HorarioDisponible is a backend-generated bookable slot with its physician
// and room denormalized in.
type HorarioDisponible struct {
	ID                        string  `json:"id"`
	HorariosMedicoID          int     `json:"horarios_medico_id"`
	FechaHora                 ISOTime `json:"fecha_hora"`
	FechaTurno                string  `json:"fecha_turno"`
	HoraTurno                 string  `json:"hora_turno"`
	MedicoNombre              string  `json:"medico_nombre"`
	MedicoApellido            string  `json:"medico_apellido"`
	Especialidad              string  `json:"especialidad"`
	ProfesionalNombreCompleto string  `json:"profesional_nombre_completo"`
	ConsultorioNumero         string  `json:"consultorio_numero"`
}

// NuevoHorario creates a weekly slot when a physician enables it in the grid.
type NuevoHorario struct {
	DiaSemana      int    `json:"dia_semana"`
	HoraInicio     string `json:"hora_inicio"`
	HoraFin        string `json:"hora_fin"`
	MedicosID      int    `json:"medicos_id"`
	ConsultoriosID int    `json:"consultorios_id"`
}
