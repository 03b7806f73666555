package auth

import (
	"net/url"

	"github.com/spec-kit/clinic-portal/internal/domain"
)

// LoginPath is where unauthenticated traffic is sent.
const LoginPath = "/login"

// State is the authorization state the gate resolves to.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthorized
	StateUnauthorizedRole
)

// DecisionKind says what the caller must do with the request.
type DecisionKind int

const (
	DecisionAllow DecisionKind = iota
	DecisionRedirect
)

// Decision is the gate's verdict for one navigation.
type Decision struct {
	State  State
	Kind   DecisionKind
	Target string
	// ClearSession is set when the stored token is unusable or suspect; the
	// caller drops the session as a side effect so decode failures cannot
	// loop.
	ClearSession bool
	Claims       Claims
}

// Authorize decides {allow, redirect-to-login, redirect-to-own-dashboard} for
// a session against a required role set. It is a pure function of its inputs;
// every navigation re-evaluates from scratch and any ambiguity fails closed
// toward the login page. requestedPath is preserved on the login redirect so
// the caller can return after logging in.
func Authorize(sess domain.Session, requiredRoles []domain.Role, requestedPath string) Decision {
	if !sess.HasToken() {
		return Decision{
			State:  StateUnauthenticated,
			Kind:   DecisionRedirect,
			Target: loginTarget(requestedPath),
		}
	}

	claims, err := DecodeClaims(sess.Token)
	if err != nil {
		return Decision{
			State:        StateUnauthenticated,
			Kind:         DecisionRedirect,
			Target:       loginTarget(requestedPath),
			ClearSession: true,
		}
	}

	if len(requiredRoles) == 0 {
		return Decision{State: StateAuthorized, Kind: DecisionAllow, Claims: claims}
	}
	for _, role := range requiredRoles {
		if claims.Role == role {
			return Decision{State: StateAuthorized, Kind: DecisionAllow, Claims: claims}
		}
	}

	// Authenticated with the wrong role: send the user to their own
	// dashboard. A role outside the enumeration lands on /login and the
	// session is treated as suspect.
	target := claims.Role.DashboardPath()
	return Decision{
		State:        StateUnauthorizedRole,
		Kind:         DecisionRedirect,
		Target:       target,
		ClearSession: !claims.Role.Valid(),
		Claims:       claims,
	}
}

func loginTarget(requestedPath string) string {
	if requestedPath == "" || requestedPath == LoginPath {
		return LoginPath
	}
	return LoginPath + "?next=" + url.QueryEscape(requestedPath)
}
