package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/clinic-portal/internal/auth"
	"github.com/spec-kit/clinic-portal/internal/backend"
	"github.com/spec-kit/clinic-portal/internal/config"
	"github.com/spec-kit/clinic-portal/internal/domain"
	"github.com/spec-kit/clinic-portal/internal/events"
	"github.com/spec-kit/clinic-portal/internal/observability"
	"github.com/spec-kit/clinic-portal/pkg/util"
)

func medicoPrincipal() *auth.Principal {
	return &auth.Principal{
		SessionID: "sid",
		Session:   domain.Session{Token: "tok", TokenType: "bearer"},
		Claims:    auth.Claims{SubjectID: 3, Role: domain.RoleMedico, DisplayName: "Dr. Ruiz"},
	}
}

func newHorarioService(t *testing.T, handler http.Handler) *HorarioService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := backend.NewClient(config.BackendConfig{BaseURL: srv.URL, TimeoutSeconds: 5}, zap.NewNop(), observability.NewMetrics())
	return NewHorarioService(client, events.NewInMemoryDispatcher(zap.NewNop()), zap.NewNop())
}

func TestToggleValidatesInput(t *testing.T) {
	svc := newHorarioService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("invalid input must not reach the backend: %s %s", r.Method, r.URL.Path)
	}))
	ctx := context.Background()

	_, err := svc.Toggle(ctx, medicoPrincipal(), 7, "09:00", 1)
	assert.Equal(t, http.StatusBadRequest, util.ToDomainError(err).HTTPStatus)

	_, err = svc.Toggle(ctx, medicoPrincipal(), 1, "25:00", 1)
	assert.Equal(t, http.StatusBadRequest, util.ToDomainError(err).HTTPStatus)

	_, err = svc.Toggle(ctx, medicoPrincipal(), 1, "nueve", 1)
	assert.Equal(t, http.StatusBadRequest, util.ToDomainError(err).HTTPStatus)
}

func TestToggleDisablesExistingSlot(t *testing.T) {
	var deleted bool
	svc := newHorarioService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/horarios_medicos/por-medico/3":
			_, _ = w.Write([]byte(`[{"id":11,"dia_semana":2,"hora_inicio":"09:00:00","hora_fin":"09:30:00","medicos_id":3,"consultorios_id":1}]`))
		case r.Method == http.MethodDelete && r.URL.Path == "/horarios_medicos/11":
			deleted = true
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Fatalf("unexpected call %s %s", r.Method, r.URL.Path)
		}
	}))

	result, err := svc.Toggle(context.Background(), medicoPrincipal(), 2, "09:00", 0)
	require.NoError(t, err)
	assert.False(t, result.Enabled)
	assert.Nil(t, result.Horario)
	assert.True(t, deleted)
}

func TestToggleCreatesThirtyMinuteSlot(t *testing.T) {
	svc := newHorarioService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			_, _ = w.Write([]byte(`[]`))
		case r.Method == http.MethodPost && r.URL.Path == "/horarios_medicos/":
			var nuevo domain.NuevoHorario
			require.NoError(t, json.NewDecoder(r.Body).Decode(&nuevo))
			assert.Equal(t, "10:30:00", nuevo.HoraInicio)
			assert.Equal(t, "11:00:00", nuevo.HoraFin)
			assert.Equal(t, 3, nuevo.MedicosID)
			assert.Equal(t, 5, nuevo.ConsultoriosID)

			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(domain.HorarioMedico{
				ID: 20, DiaSemana: nuevo.DiaSemana, HoraInicio: nuevo.HoraInicio,
				HoraFin: nuevo.HoraFin, MedicosID: nuevo.MedicosID, ConsultoriosID: nuevo.ConsultoriosID,
			})
		default:
			t.Fatalf("unexpected call %s %s", r.Method, r.URL.Path)
		}
	}))

	result, err := svc.Toggle(context.Background(), medicoPrincipal(), 4, "10:30", 5)
	require.NoError(t, err)
	assert.True(t, result.Enabled)
	require.NotNil(t, result.Horario)
	assert.Equal(t, 20, result.Horario.ID)
}

func TestToggleEnableNeedsRoom(t *testing.T) {
	svc := newHorarioService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := svc.Toggle(context.Background(), medicoPrincipal(), 4, "10:30", 0)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, util.ToDomainError(err).HTTPStatus)
}

func TestHoraFinWrapsMidnight(t *testing.T) {
	assert.Equal(t, "10:00:00", horaFin("09:30"))
	assert.Equal(t, "00:15:00", horaFin("23:45"))
}

func TestNormalizeHora(t *testing.T) {
	assert.Equal(t, "09:00:00", normalizeHora("9:00"))
	assert.Equal(t, "14:30:00", normalizeHora("14:30"))
}

func TestGridAggregatesSlotsAndRooms(t *testing.T) {
	svc := newHorarioService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/horarios_medicos/por-medico/3":
			_, _ = w.Write([]byte(`[{"id":11,"dia_semana":2,"hora_inicio":"09:00:00"}]`))
		case "/consultorios/":
			_, _ = w.Write([]byte(`[{"id":1,"numero":"101","ubicacion":"Planta baja"}]`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	grid, err := svc.Grid(context.Background(), medicoPrincipal())
	require.NoError(t, err)
	assert.Len(t, grid.Horarios, 1)
	assert.Len(t, grid.Consultorios, 1)
}
