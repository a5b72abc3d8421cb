package client

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/federico588/biblioteca-tui/internal/adapter"
	"github.com/federico588/biblioteca-tui/internal/logger"
	"github.com/federico588/biblioteca-tui/internal/notify"
	"github.com/federico588/biblioteca-tui/internal/service"
	"github.com/federico588/biblioteca-tui/internal/session"
	"github.com/federico588/biblioteca-tui/internal/tui"
)

type App struct {
	services *service.Services
	store    *session.Store
	center   *notify.Center
	ui       *tui.TUI
	log      *logger.Logger
}

// NewApp wires the runtime together and installs the gateway failure hooks:
// every failed non-login call raises an error toast, and a 401 outside the
// login call drops the session so the UI falls back to the login flow.
func NewApp(gateway adapter.Gateway, services *service.Services, store *session.Store, center *notify.Center, ui *tui.TUI, log *logger.Logger) (*App, error) {
	gateway.SetHooks(
		func(message string) { center.Error(message) },
		func() { store.Logout() },
	)

	return &App{
		services: services,
		store:    store,
		center:   center,
		ui:       ui,
		log:      log,
	}, nil
}

// Run blocks until the user quits. A persisted session skips the login
// screen; logging out, from the menu or forced by a 401, loops back to it.
func (a *App) Run() error {
	ctx := context.Background()

	for {
		if a.store.IsAuthenticated() {
			a.services.Auth.RestoreToken()
		} else {
			if err := a.ui.LoginFlow(ctx); err != nil {
				if errors.Is(err, tui.ErrUserQuit) {
					return nil
				}
				return err
			}
		}

		// Session-scoped child logger carrying the acting user.
		l := a.log.GetChildLogger()
		if user := a.store.CurrentUser(); user != nil {
			username := user.NombreUsuario
			l.UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("user", username)
			})
			a.center.Info("Signed in as " + user.Nombre)
		}
		l.Info().Msg("session started")

		logout, err := a.ui.MainLoop(ctx)
		if err != nil {
			return err
		}
		if !logout {
			return nil
		}
		l.Info().Msg("session ended by logout")
	}
}
