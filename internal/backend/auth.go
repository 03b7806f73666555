package backend

import (
	"context"
	"net/url"

	"github.com/spec-kit/clinic-portal/internal/domain"
)

// TokenResponse is the backend's login result.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// LoginPaciente exchanges patient credentials for a bearer token.
func (c *Client) LoginPaciente(ctx context.Context, username, password string) (TokenResponse, error) {
	return c.login(ctx, "login_paciente", "/auth/token/paciente", username, password)
}

// LoginProfesional exchanges physician credentials for a bearer token.
func (c *Client) LoginProfesional(ctx context.Context, username, password string) (TokenResponse, error) {
	return c.login(ctx, "login_profesional", "/auth/token/profesional", username, password)
}

func (c *Client) login(ctx context.Context, op, path, username, password string) (TokenResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var out TokenResponse
	if err := c.doForm(ctx, op, path, form, &out); err != nil {
		return TokenResponse{}, err
	}
	return out, nil
}

// Session converts the token response into the portal session record.
func (t TokenResponse) Session() domain.Session {
	return domain.Session{Token: t.AccessToken, TokenType: t.TokenType}
}
