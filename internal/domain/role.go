package domain

// Role enumerates the portal-facing roles carried in backend tokens.
type Role string

const (
	RoleCliente Role = "cliente"
	RoleMedico  Role = "medico"
)

// ParseRole maps a raw token role onto the closed enumeration.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleCliente:
		return RoleCliente, true
	case RoleMedico:
		return RoleMedico, true
	}
	return "", false
}

// DashboardPath is the single exhaustive role -> default dashboard mapping.
// Unknown roles fall back to the login page.
func (r Role) DashboardPath() string {
	switch r {
	case RoleMedico:
		return "/medico/dashboard"
	case RoleCliente:
		return "/dashboard"
	}
	return "/login"
}

// Valid reports whether the role belongs to the enumeration.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}
