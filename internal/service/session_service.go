package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/clinic-portal/internal/auth"
	"github.com/spec-kit/clinic-portal/internal/backend"
	"github.com/spec-kit/clinic-portal/internal/domain"
	"github.com/spec-kit/clinic-portal/internal/events"
	"github.com/spec-kit/clinic-portal/internal/session"
	"github.com/spec-kit/clinic-portal/pkg/util"
)

// SessionService coordinates login, registration, logout and profile flows.
type SessionService struct {
	backend    *backend.Client
	sessions   *session.Manager
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewSessionService builds the service.
func NewSessionService(client *backend.Client, sessions *session.Manager, dispatcher events.Dispatcher, logger *zap.Logger) *SessionService {
	return &SessionService{backend: client, sessions: sessions, dispatcher: dispatcher, logger: logger}
}

// LoginResult carries everything the handler needs to bind the new session.
type LoginResult struct {
	SessionID string
	Claims    auth.Claims
	Session   domain.Session
}

// Login authenticates against the role-specific backend endpoint and creates
// the portal session. Credentials pass through; the backend owns verification.
func (s *SessionService) Login(ctx context.Context, role domain.Role, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, util.NewValidationError("usuario y contraseña son obligatorios", nil)
	}

	var (
		tokens backend.TokenResponse
		err    error
	)
	switch role {
	case domain.RoleCliente:
		tokens, err = s.backend.LoginPaciente(ctx, username, password)
	case domain.RoleMedico:
		tokens, err = s.backend.LoginProfesional(ctx, username, password)
	default:
		return nil, util.NewValidationError("rol desconocido", map[string]any{"rol": string(role)})
	}
	if err != nil {
		return nil, err
	}

	claims, err := auth.DecodeClaims(tokens.AccessToken)
	if err != nil {
		// The backend handed us a token the portal cannot read; never
		// store it.
		s.logger.Warn("undecodable token from backend", zap.Error(err))
		return nil, util.NewUnauthorized("el token recibido es inválido")
	}

	sessionID := session.NewSessionID()
	actor := actorFromClaims(claims)
	if err := s.sessions.SetSession(ctx, sessionID, tokens.Session(), actor); err != nil {
		return nil, util.NewInternalError(err)
	}

	return &LoginResult{SessionID: sessionID, Claims: claims, Session: tokens.Session()}, nil
}

// Register creates a patient account and logs it straight in, mirroring the
// registration flow's auto-login.
func (s *SessionService) Register(ctx context.Context, nuevo domain.NuevoCliente) (*LoginResult, error) {
	if nuevo.Email == "" || nuevo.Contrasena == "" || nuevo.Nombre == "" {
		return nil, util.NewValidationError("nombre, email y contraseña son obligatorios", nil)
	}
	if _, err := s.backend.RegisterCliente(ctx, nuevo); err != nil {
		return nil, err
	}
	return s.Login(ctx, domain.RoleCliente, nuevo.Email, nuevo.Contrasena)
}

// Logout clears the session; a later HasSession is false and every gated
// route redirects to login.
func (s *SessionService) Logout(ctx context.Context, principal *auth.Principal) error {
	if principal == nil || principal.SessionID == "" {
		return nil
	}
	return s.sessions.ClearSession(ctx, principal.SessionID, actorFromClaims(principal.Claims), "logout")
}

// Perfil loads the signed-in patient's profile.
func (s *SessionService) Perfil(ctx context.Context, principal *auth.Principal) (domain.Cliente, error) {
	return s.backend.GetCliente(ctx, principal.BearerToken(), principal.Claims.SubjectID)
}

// UpdatePerfil saves profile changes and reports the fresh record.
func (s *SessionService) UpdatePerfil(ctx context.Context, principal *auth.Principal, update domain.NuevoCliente) (domain.Cliente, error) {
	cliente, err := s.backend.UpdateCliente(ctx, principal.BearerToken(), principal.Claims.SubjectID, update)
	if err != nil {
		return domain.Cliente{}, err
	}
	s.publish(ctx, events.EventPerfilUpdated, principal, nil)
	return cliente, nil
}

func (s *SessionService) publish(ctx context.Context, t events.EventType, principal *auth.Principal, payload any) {
	publishEvent(ctx, s.dispatcher, t, principal, payload)
}

func actorFromClaims(claims auth.Claims) events.Actor {
	return events.Actor{Role: claims.Role, SubjectID: claims.SubjectID, Nombre: claims.DisplayName}
}

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, t events.EventType, principal *auth.Principal, payload any) {
	if dispatcher == nil || principal == nil {
		return
	}
	_ = dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      t,
		SessionID: principal.SessionID,
		Actor:     actorFromClaims(principal.Claims),
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}
