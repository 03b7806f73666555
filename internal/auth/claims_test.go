package auth

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/clinic-portal/internal/domain"
)

// mintToken assembles an unsigned JWT; the portal never verifies signatures.
func mintToken(t *testing.T, payload map[string]any) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return header + "." + base64.RawURLEncoding.EncodeToString(body) + ".sig"
}

func TestDecodeClaims(t *testing.T) {
	token := mintToken(t, map[string]any{
		"id":     42,
		"rol":    "cliente",
		"nombre": "Ana García",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})

	claims, err := DecodeClaims(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.SubjectID)
	assert.Equal(t, domain.RoleCliente, claims.Role)
	assert.Equal(t, "Ana García", claims.DisplayName)
}

func TestDecodeClaimsWithoutExp(t *testing.T) {
	token := mintToken(t, map[string]any{"id": 9, "rol": "medico"})

	claims, err := DecodeClaims(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMedico, claims.Role)
}

func TestDecodeClaimsExpired(t *testing.T) {
	token := mintToken(t, map[string]any{
		"id":  42,
		"rol": "cliente",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})

	_, err := DecodeClaims(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestDecodeClaimsMalformed(t *testing.T) {
	cases := map[string]string{
		"garbage":      "not-a-token",
		"two segments": "abc.def",
		"bad payload":  "eyJhbGciOiJIUzI1NiJ9.%%%.sig",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeClaims(token)
			assert.ErrorIs(t, err, ErrMalformedToken)
		})
	}
}

func TestDecodeClaimsMissingFields(t *testing.T) {
	noID := mintToken(t, map[string]any{"rol": "cliente"})
	_, err := DecodeClaims(noID)
	assert.ErrorIs(t, err, ErrMalformedToken)

	noRol := mintToken(t, map[string]any{"id": 5})
	_, err = DecodeClaims(noRol)
	assert.ErrorIs(t, err, ErrMalformedToken)
}
