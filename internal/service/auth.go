package service

import (
	"context"

	"github.com/federico588/biblioteca-tui/internal/adapter"
	"github.com/federico588/biblioteca-tui/internal/session"
	"github.com/federico588/biblioteca-tui/models"
)

// Auth handles login and logout. It is the only facade that writes to the
// session store and the gateway token.
type Auth struct {
	gateway adapter.Gateway
	store   *session.Store
}

// Login exchanges credentials for a bearer token and, on success, persists
// the session and arms the gateway with the token. Failures are returned to
// the caller for inline rendering; the gateway suppresses the global error
// hook for this call.
func (a *Auth) Login(ctx context.Context, nombreUsuario, contrasena string) (*models.LoginResponse, error) {
	req := models.LoginRequest{
		NombreUsuario: nombreUsuario,
		Contrasena:    contrasena,
	}

	var resp models.LoginResponse
	if err := a.gateway.Post(ctx, "/auth/login", req, &resp); err != nil {
		return nil, err
	}

	if err := a.store.SetSession(resp.AccessToken, resp.User); err != nil {
		return nil, err
	}
	a.gateway.SetToken(resp.AccessToken)

	return &resp, nil
}

// Logout drops the session and the gateway token. It is purely client-side;
// the backend keeps no session state to invalidate.
func (a *Auth) Logout() {
	a.store.Logout()
	a.gateway.SetToken("")
}

// RestoreToken re-arms the gateway with a token recovered from the session
// cache at startup. A no-op when the store is anonymous.
func (a *Auth) RestoreToken() {
	if token := a.store.Token(); token != "" {
		a.gateway.SetToken(token)
	}
}
