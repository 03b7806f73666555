package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("cliente")
	assert.True(t, ok)
	assert.Equal(t, RoleCliente, role)

	role, ok = ParseRole("medico")
	assert.True(t, ok)
	assert.Equal(t, RoleMedico, role)

	_, ok = ParseRole("admin")
	assert.False(t, ok)
	_, ok = ParseRole("")
	assert.False(t, ok)
}

func TestDashboardPath(t *testing.T) {
	assert.Equal(t, "/dashboard", RoleCliente.DashboardPath())
	assert.Equal(t, "/medico/dashboard", RoleMedico.DashboardPath())
	assert.Equal(t, "/login", Role("admin").DashboardPath())
}
