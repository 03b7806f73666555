package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/clinic-portal/internal/config"
	"github.com/spec-kit/clinic-portal/internal/observability"
	"github.com/spec-kit/clinic-portal/pkg/util"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := config.BackendConfig{BaseURL: srv.URL, TimeoutSeconds: 5}
	return NewClient(cfg, zap.NewNop(), observability.NewMetrics())
}

func TestLoginPacienteSendsForm(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/token/paciente", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "ana@example.com", r.PostFormValue("username"))
		assert.Equal(t, "secret", r.PostFormValue("password"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"bearer"}`))
	}))

	tokens, err := client.LoginPaciente(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok", tokens.AccessToken)
	assert.Equal(t, "bearer", tokens.Session().TokenType)
}

func TestSendAttachesBearerToken(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := client.TurnosCliente(context.Background(), "tok", 7)
	require.NoError(t, err)
}

func TestUnauthorizedMapsToAuthFailure(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	}))

	_, err := client.TurnosCliente(context.Background(), "stale", 7)
	require.Error(t, err)
	assert.True(t, util.IsUnauthorized(err))
	assert.Contains(t, err.Error(), "Could not validate credentials")
}

func TestClientErrorPassesStatusThrough(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"detail":"turno ya reservado"}`))
	}))

	_, err := client.ConfirmarTurno(context.Background(), "tok", 5)
	require.Error(t, err)
	de := util.ToDomainError(err)
	assert.Equal(t, http.StatusConflict, de.HTTPStatus)
	assert.Equal(t, "turno ya reservado", de.Message)
}

func TestServerErrorCollapsesToBadGateway(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.TurnosMedico(context.Background(), "tok", 3)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, util.ToDomainError(err).HTTPStatus)
}

func TestProximoTurno404IsNotAnError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"no hay turnos próximos"}`))
	}))

	turno, err := client.ProximoTurnoCliente(context.Background(), "tok", 7)
	require.NoError(t, err)
	assert.Nil(t, turno)
}

func TestDecodeDetailString(t *testing.T) {
	detail := DecodeDetail(strings.NewReader(`{"detail":"Email ya registrado"}`))
	assert.Equal(t, "Email ya registrado", detail)
}

func TestDecodeDetailValidationList(t *testing.T) {
	body := `{"detail":[
		{"loc":["body","email"],"msg":"value is not a valid email address","type":"value_error.email"},
		{"loc":["body","dni"],"msg":"field required","type":"value_error.missing"}
	]}`
	detail := DecodeDetail(strings.NewReader(body))
	assert.Equal(t, "email: value is not a valid email address; dni: field required", detail)
}

func TestDecodeDetailEmptyOrUnstructured(t *testing.T) {
	assert.Equal(t, "", DecodeDetail(strings.NewReader("")))
	assert.Equal(t, "", DecodeDetail(strings.NewReader("<html>bad gateway</html>")))
	assert.Equal(t, "", DecodeDetail(strings.NewReader(`{"message":"no detail field"}`)))
}
