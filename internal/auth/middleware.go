package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/clinic-portal/internal/config"
	"github.com/spec-kit/clinic-portal/internal/domain"
	"github.com/spec-kit/clinic-portal/internal/events"
	"github.com/spec-kit/clinic-portal/internal/session"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller for the rest of the request.
type Principal struct {
	SessionID string
	Session   domain.Session
	Claims    Claims
}

// BearerToken renders the Authorization credential for backend calls.
func (p *Principal) BearerToken() string {
	return p.Session.Token
}

// Middleware loads the cookie-bound session, runs the gate and either stores
// the principal in ctx locals or redirects per the Decision.
type Middleware struct {
	sessions *session.Manager
	cfg      config.SessionConfig
	logger   *zap.Logger
}

// NewMiddleware constructs middleware.
func NewMiddleware(sessions *session.Manager, cfg config.SessionConfig, logger *zap.Logger) *Middleware {
	return &Middleware{sessions: sessions, cfg: cfg, logger: logger}
}

// Require gates a route group on the given role set. An empty set only
// demands a decodable session.
func (m *Middleware) Require(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies(m.cfg.CookieName)
		sess := m.loadSession(c, sessionID)

		decision := Authorize(sess, roles, c.OriginalURL())
		if decision.ClearSession && sessionID != "" {
			m.drop(c, sessionID, decision.Claims, "unusable token")
		}
		if decision.Kind == DecisionRedirect {
			if decision.State == StateUnauthorizedRole {
				m.logger.Warn("role denied",
					zap.String("role", string(decision.Claims.Role)),
					zap.String("path", c.Path()),
				)
			}
			return c.Redirect(decision.Target, fiber.StatusSeeOther)
		}

		c.Locals(principalKey, &Principal{
			SessionID: sessionID,
			Session:   sess,
			Claims:    decision.Claims,
		})
		return c.Next()
	}
}

// Optional resolves the principal when a valid session exists but never
// redirects; public views use it to light up session-aware chrome.
func (m *Middleware) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies(m.cfg.CookieName)
		sess := m.loadSession(c, sessionID)
		if decision := Authorize(sess, nil, ""); decision.Kind == DecisionAllow {
			c.Locals(principalKey, &Principal{
				SessionID: sessionID,
				Session:   sess,
				Claims:    decision.Claims,
			})
		}
		return c.Next()
	}
}

// Expire clears the caller's session after a backend authentication failure
// and sends them to the login page.
func (m *Middleware) Expire(c *fiber.Ctx) error {
	if principal, ok := PrincipalFromContext(c); ok {
		m.drop(c, principal.SessionID, principal.Claims, "backend rejected token")
	}
	return c.Redirect(LoginPath, fiber.StatusSeeOther)
}

// SetCookie binds a freshly created session to the browser.
func (m *Middleware) SetCookie(c *fiber.Ctx, sessionID string) {
	c.Cookie(&fiber.Cookie{
		Name:     m.cfg.CookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(m.cfg.TTL() / time.Second),
		HTTPOnly: true,
		Secure:   m.cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearCookie removes the session cookie.
func (m *Middleware) ClearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   m.cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (m *Middleware) loadSession(c *fiber.Ctx, sessionID string) domain.Session {
	if sessionID == "" {
		return domain.Session{}
	}
	sess, err := m.sessions.GetSession(c.UserContext(), sessionID)
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			m.logger.Warn("session lookup failed", zap.Error(err))
		}
		return domain.Session{}
	}
	return sess
}

func (m *Middleware) drop(c *fiber.Ctx, sessionID string, claims Claims, reason string) {
	actor := events.Actor{Role: claims.Role, SubjectID: claims.SubjectID, Nombre: claims.DisplayName}
	if err := m.sessions.ClearSession(c.UserContext(), sessionID, actor, reason); err != nil {
		m.logger.Warn("session clear failed", zap.Error(err))
	}
	m.ClearCookie(c)
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
