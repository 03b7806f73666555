package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/clinic-portal/internal/domain"
)

func clienteSession(t *testing.T) domain.Session {
	t.Helper()
	return domain.Session{
		Token:     mintToken(t, map[string]any{"id": 7, "rol": "cliente", "nombre": "Ana"}),
		TokenType: "bearer",
	}
}

func medicoSession(t *testing.T) domain.Session {
	t.Helper()
	return domain.Session{
		Token:     mintToken(t, map[string]any{"id": 3, "rol": "medico", "nombre": "Dr. Ruiz"}),
		TokenType: "bearer",
	}
}

func TestAuthorizeWithoutToken(t *testing.T) {
	decision := Authorize(domain.Session{}, []domain.Role{domain.RoleCliente}, "/mis-turnos")

	assert.Equal(t, StateUnauthenticated, decision.State)
	assert.Equal(t, DecisionRedirect, decision.Kind)
	assert.Equal(t, "/login?next=%2Fmis-turnos", decision.Target)
	assert.False(t, decision.ClearSession)
}

func TestAuthorizeAllowsMatchingRole(t *testing.T) {
	decision := Authorize(clienteSession(t), []domain.Role{domain.RoleCliente}, "/mis-turnos")

	assert.Equal(t, StateAuthorized, decision.State)
	assert.Equal(t, DecisionAllow, decision.Kind)
	assert.Equal(t, 7, decision.Claims.SubjectID)
}

func TestAuthorizeClienteOnMedicoRoute(t *testing.T) {
	decision := Authorize(clienteSession(t), []domain.Role{domain.RoleMedico}, "/medico/turnos")

	assert.Equal(t, StateUnauthorizedRole, decision.State)
	assert.Equal(t, DecisionRedirect, decision.Kind)
	assert.Equal(t, "/dashboard", decision.Target)
	// A wrong but known role keeps its session; the user just lands on
	// their own dashboard.
	assert.False(t, decision.ClearSession)
}

func TestAuthorizeMedicoOnClienteRoute(t *testing.T) {
	decision := Authorize(medicoSession(t), []domain.Role{domain.RoleCliente}, "/mis-turnos")

	assert.Equal(t, DecisionRedirect, decision.Kind)
	assert.Equal(t, "/medico/dashboard", decision.Target)
}

func TestAuthorizeUnknownRole(t *testing.T) {
	sess := domain.Session{
		Token: mintToken(t, map[string]any{"id": 1, "rol": "admin"}),
	}
	decision := Authorize(sess, []domain.Role{domain.RoleCliente}, "/dashboard")

	assert.Equal(t, DecisionRedirect, decision.Kind)
	assert.Equal(t, LoginPath, decision.Target)
	assert.True(t, decision.ClearSession)
}

func TestAuthorizeUndecodableToken(t *testing.T) {
	sess := domain.Session{Token: "garbage"}
	decision := Authorize(sess, []domain.Role{domain.RoleCliente}, "/dashboard")

	assert.Equal(t, StateUnauthenticated, decision.State)
	assert.Equal(t, DecisionRedirect, decision.Kind)
	assert.True(t, decision.ClearSession)
}

func TestAuthorizeEmptyRoleSetOnlyNeedsSession(t *testing.T) {
	decision := Authorize(clienteSession(t), nil, "/auth/me")
	assert.Equal(t, DecisionAllow, decision.Kind)

	decision = Authorize(domain.Session{}, nil, "/auth/me")
	assert.Equal(t, DecisionRedirect, decision.Kind)
}

func TestAuthorizeIsPure(t *testing.T) {
	sess := clienteSession(t)
	first := Authorize(sess, []domain.Role{domain.RoleMedico}, "/medico/turnos")
	second := Authorize(sess, []domain.Role{domain.RoleMedico}, "/medico/turnos")
	assert.Equal(t, first, second)
}

func TestLoginTargetSkipsLoopAndEmptyPath(t *testing.T) {
	decision := Authorize(domain.Session{}, nil, "")
	assert.Equal(t, LoginPath, decision.Target)

	decision = Authorize(domain.Session{}, nil, LoginPath)
	assert.Equal(t, LoginPath, decision.Target)
}
