package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/clinic-portal/internal/domain"
)

var (
	// ErrMalformedToken means the bearer token does not have the expected
	// structure.
	ErrMalformedToken = errors.New("malformed token")
	// ErrTokenExpired means the token's exp claim lies in the past.
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the locally decoded view of a backend-issued token. It is never
// persisted; it goes stale the instant the session token is cleared.
type Claims struct {
	SubjectID   int
	Role        domain.Role
	DisplayName string
}

// tokenClaims mirrors the backend token payload: {sub, id, rol, nombre, exp}.
type tokenClaims struct {
	ID     int    `json:"id"`
	Rol    string `json:"rol"`
	Nombre string `json:"nombre"`
	jwt.RegisteredClaims
}

// DecodeClaims parses the token's payload segment without verifying the
// signature; verification is the backend's job. Callers must treat any error
// as "unauthenticated" and clear the session to avoid decode-failure loops.
func DecodeClaims(token string) (Claims, error) {
	parser := jwt.NewParser()
	var tc tokenClaims
	if _, _, err := parser.ParseUnverified(token, &tc); err != nil {
		return Claims{}, ErrMalformedToken
	}
	if tc.ID == 0 || tc.Rol == "" {
		return Claims{}, ErrMalformedToken
	}
	if tc.ExpiresAt != nil && tc.ExpiresAt.Before(time.Now()) {
		return Claims{}, ErrTokenExpired
	}
	return Claims{
		SubjectID:   tc.ID,
		Role:        domain.Role(tc.Rol),
		DisplayName: tc.Nombre,
	}, nil
}
