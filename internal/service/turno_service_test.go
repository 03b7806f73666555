package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

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

func clientePrincipal() *auth.Principal {
	return &auth.Principal{
		SessionID: "sid",
		Session:   domain.Session{Token: "tok", TokenType: "bearer"},
		Claims:    auth.Claims{SubjectID: 7, Role: domain.RoleCliente, DisplayName: "Ana"},
	}
}

func newTurnoService(t *testing.T, handler http.Handler) (*TurnoService, events.Dispatcher) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := backend.NewClient(config.BackendConfig{BaseURL: srv.URL, TimeoutSeconds: 5}, zap.NewNop(), observability.NewMetrics())
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	return NewTurnoService(client, NewMemoryViewCache(time.Minute), dispatcher, zap.NewNop()), dispatcher
}

func TestTurnosClienteUsesCachedList(t *testing.T) {
	var listCalls atomic.Int32
	svc, _ := newTurnoService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/turnos/cliente/7", r.URL.Path)
		listCalls.Add(1)
		_, _ = w.Write([]byte(`[{"id":1,"estado":"pendiente"},{"id":2,"estado":"confirmado"}]`))
	}))

	ctx := context.Background()
	principal := clientePrincipal()

	first, err := svc.TurnosCliente(ctx, principal)
	require.NoError(t, err)
	assert.Len(t, first, 2)

	second, err := svc.TurnosCliente(ctx, principal)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), listCalls.Load())
}

func TestCancelarPatchesCacheWithoutRefetch(t *testing.T) {
	var listCalls atomic.Int32
	svc, dispatcher := newTurnoService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			listCalls.Add(1)
			_, _ = w.Write([]byte(`[{"id":1,"estado":"pendiente"},{"id":2,"estado":"confirmado"}]`))
		case r.Method == http.MethodPut && r.URL.Path == "/turnos/2/cancelar":
			_, _ = w.Write([]byte(`{"id":2,"estado":"cancelado"}`))
		default:
			t.Fatalf("unexpected call %s %s", r.Method, r.URL.Path)
		}
	}))

	var estadoEvents []events.Event
	dispatcher.Subscribe(events.EventTurnoEstadoChanged, func(_ context.Context, e events.Event) error {
		estadoEvents = append(estadoEvents, e)
		return nil
	})

	ctx := context.Background()
	principal := clientePrincipal()

	_, err := svc.TurnosCliente(ctx, principal)
	require.NoError(t, err)

	turno, err := svc.Cancelar(ctx, principal, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.EstadoCancelado, turno.Estado)
	require.Len(t, estadoEvents, 1)

	// The cached list reflects the cancellation with no second GET.
	turnos, err := svc.TurnosCliente(ctx, principal)
	require.NoError(t, err)
	assert.Equal(t, domain.EstadoCancelado, turnos[1].Estado)
	assert.Equal(t, int32(1), listCalls.Load())
}

func TestBookInvalidatesClienteCache(t *testing.T) {
	var listCalls atomic.Int32
	svc, _ := newTurnoService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			listCalls.Add(1)
			_, _ = w.Write([]byte(`[{"id":1,"estado":"pendiente"}]`))
		case r.Method == http.MethodPost && r.URL.Path == "/turnos/":
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":9,"estado":"pendiente","clientes_id":7,"horarios_medicos_id":4}`))
		default:
			t.Fatalf("unexpected call %s %s", r.Method, r.URL.Path)
		}
	}))

	ctx := context.Background()
	principal := clientePrincipal()

	_, err := svc.TurnosCliente(ctx, principal)
	require.NoError(t, err)

	fechaHora := domain.ISOTime{Time: time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC)}
	turno, err := svc.Book(ctx, principal, 4, fechaHora, "control anual")
	require.NoError(t, err)
	assert.Equal(t, 9, turno.ID)

	// The backend derives id and creation time; the next listing re-fetches.
	_, err = svc.TurnosCliente(ctx, principal)
	require.NoError(t, err)
	assert.Equal(t, int32(2), listCalls.Load())
}

func TestEliminarRejectsNonCancelled(t *testing.T) {
	svc, _ := newTurnoService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`[{"id":1,"estado":"pendiente"}]`))
			return
		}
		t.Fatalf("delete must not reach the backend: %s %s", r.Method, r.URL.Path)
	}))

	ctx := context.Background()
	principal := clientePrincipal()

	_, err := svc.TurnosCliente(ctx, principal)
	require.NoError(t, err)

	err = svc.Eliminar(ctx, principal, 1)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, util.ToDomainError(err).HTTPStatus)
}

func TestEliminarDropsCancelledFromCache(t *testing.T) {
	svc, _ := newTurnoService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			_, _ = w.Write([]byte(`[{"id":1,"estado":"cancelado"},{"id":2,"estado":"pendiente"}]`))
		case r.Method == http.MethodDelete && r.URL.Path == "/turnos/1":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Fatalf("unexpected call %s %s", r.Method, r.URL.Path)
		}
	}))

	ctx := context.Background()
	principal := clientePrincipal()

	_, err := svc.TurnosCliente(ctx, principal)
	require.NoError(t, err)

	require.NoError(t, svc.Eliminar(ctx, principal, 1))

	turnos, err := svc.TurnosCliente(ctx, principal)
	require.NoError(t, err)
	require.Len(t, turnos, 1)
	assert.Equal(t, 2, turnos[0].ID)
}

func TestTurnoLookup(t *testing.T) {
	svc, _ := newTurnoService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"estado":"pendiente"}]`))
	}))

	ctx := context.Background()
	principal := clientePrincipal()

	turno, err := svc.Turno(ctx, principal, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, turno.ID)

	_, err = svc.Turno(ctx, principal, 99)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, util.ToDomainError(err).HTTPStatus)
}
