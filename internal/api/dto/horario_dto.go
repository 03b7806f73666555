package dto

// ToggleHorarioRequest payload: one weekly grid cell plus the room a freshly
// enabled slot should use.
type ToggleHorarioRequest struct {
	DiaSemana      int    `json:"dia_semana"`
	HoraInicio     string `json:"hora_inicio"`
	ConsultoriosID int    `json:"consultorios_id"`
}
