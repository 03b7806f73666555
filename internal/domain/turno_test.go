package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestISOTimeUnmarshalZoneless(t *testing.T) {
	var turno Turno
	raw := `{"id":1,"fecha_hora":"2026-09-15T10:30:00","estado":"pendiente"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &turno))

	assert.Equal(t, time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC), turno.FechaHora.Time)
}

func TestISOTimeUnmarshalRFC3339(t *testing.T) {
	var ts ISOTime
	require.NoError(t, json.Unmarshal([]byte(`"2026-09-15T10:30:00Z"`), &ts))
	assert.False(t, ts.IsZero())
}

func TestISOTimeUnmarshalNull(t *testing.T) {
	var ts ISOTime
	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())
}

func TestISOTimeMarshalRoundTrip(t *testing.T) {
	ts := ISOTime{Time: time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC)}
	raw, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2026-09-15T10:30:00"`, string(raw))
}

func TestCancelable(t *testing.T) {
	assert.True(t, EstadoPendiente.Cancelable())
	assert.True(t, EstadoConfirmado.Cancelable())
	assert.False(t, EstadoCancelado.Cancelable())
	assert.False(t, EstadoCompletado.Cancelable())
}
