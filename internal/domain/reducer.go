package domain

// Pure reducers over cached view state. Mutating actions patch the last
// fetched list through these instead of forcing a full re-fetch, so the
// patching logic stays testable apart from transport and rendering.

// PatchTurnoEstado returns a copy of the list with the matching turno's
// estado replaced. Unknown ids leave the list unchanged.
func PatchTurnoEstado(turnos []TurnoCompleto, id int, estado EstadoTurno) []TurnoCompleto {
	out := make([]TurnoCompleto, len(turnos))
	copy(out, turnos)
	for i := range out {
		if out[i].ID == id {
			out[i].Estado = estado
		}
	}
	return out
}

// RemoveTurno returns a copy of the list without the matching turno.
func RemoveTurno(turnos []TurnoCompleto, id int) []TurnoCompleto {
	out := make([]TurnoCompleto, 0, len(turnos))
	for _, t := range turnos {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// RemoveSlot drops a booked slot from the available listing.
func RemoveSlot(slots []HorarioDisponible, slotID string) []HorarioDisponible {
	out := make([]HorarioDisponible, 0, len(slots))
	for _, s := range slots {
		if s.ID != slotID {
			out = append(out, s)
		}
	}
	return out
}

// AppendHorario adds a newly enabled weekly slot to the grid state.
func AppendHorario(horarios []HorarioMedico, h HorarioMedico) []HorarioMedico {
	out := make([]HorarioMedico, len(horarios), len(horarios)+1)
	copy(out, horarios)
	return append(out, h)
}

// RemoveHorario drops a disabled weekly slot from the grid state.
func RemoveHorario(horarios []HorarioMedico, id int) []HorarioMedico {
	out := make([]HorarioMedico, 0, len(horarios))
	for _, h := range horarios {
		if h.ID != id {
			out = append(out, h)
		}
	}
	return out
}
