package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-portal/internal/api/http/handlers"
	"github.com/spec-kit/clinic-portal/internal/auth"
	"github.com/spec-kit/clinic-portal/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Turnos         *handlers.TurnosHandler
	Medico         *handlers.MedicoHandler
	Dashboard      *handlers.DashboardHandler
	Documents      *handlers.DocumentsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Gated groups re-run the authorization gate
// on every request; a wrong role never reaches a handler.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth", cfg.AuthMiddleware.Optional())
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/me", cfg.Auth.Me)

	// Anyone may browse open slots.
	app.Get("/turnos/disponibles", cfg.AuthMiddleware.Optional(), cfg.Turnos.Disponibles)

	cliente := app.Group("", cfg.AuthMiddleware.Require(domain.RoleCliente))
	cliente.Get("/dashboard", cfg.Dashboard.Cliente)
	cliente.Get("/mis-turnos", cfg.Turnos.List)
	cliente.Post("/turnos", cfg.Turnos.Book)
	cliente.Put("/turnos/:id/cancelar", cfg.Turnos.Cancelar)
	cliente.Delete("/turnos/:id", cfg.Turnos.Eliminar)
	cliente.Get("/turnos/:id/comprobante.pdf", cfg.Documents.Comprobante)
	cliente.Get("/perfil", cfg.Auth.Perfil)
	cliente.Put("/perfil", cfg.Auth.UpdatePerfil)

	medico := app.Group("/medico", cfg.AuthMiddleware.Require(domain.RoleMedico))
	medico.Get("/dashboard", cfg.Dashboard.Medico)
	medico.Get("/reportes", cfg.Dashboard.Reportes)
	medico.Get("/turnos", cfg.Medico.Turnos)
	medico.Put("/turnos/:id/confirmar", cfg.Medico.Confirmar)
	medico.Put("/turnos/:id/cancelar", cfg.Medico.Cancelar)
	medico.Get("/turnos/:id/historial.pdf", cfg.Documents.Historial)
	medico.Get("/horarios", cfg.Medico.Horarios)
	medico.Post("/horarios/toggle", cfg.Medico.ToggleHorario)
	medico.Get("/pacientes", cfg.Medico.Pacientes)
	medico.Get("/pacientes/:id", cfg.Medico.Paciente)
}
