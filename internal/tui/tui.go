package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/federico588/biblioteca-tui/internal/logger"
	"github.com/federico588/biblioteca-tui/internal/notify"
	"github.com/federico588/biblioteca-tui/internal/service"
	"github.com/federico588/biblioteca-tui/internal/session"
)

var ErrUserQuit = errors.New("user quit")

type TUI struct {
	services *service.Services
	store    *session.Store
	center   *notify.Center
}

func New(services *service.Services, store *session.Store, center *notify.Center, _ *logger.Logger) (*TUI, error) {
	return &TUI{services: services, store: store, center: center}, nil
}

// LoginFlow runs the login screen until a session is established or the user
// quits. On success the session store is already populated.
func (t *TUI) LoginFlow(ctx context.Context) error {
	pages := map[string]tea.Model{
		"login": NewLoginModel(ctx, t.services.Auth),
	}

	root := NewRootModel(pages, "login", t.store, t.center, false)
	finalModel, runErr := tea.NewProgram(root, tea.WithAltScreen()).Run()
	if runErr != nil {
		return runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}

	return nil
}

// MainLoop runs the authenticated part of the client. It returns logout=true
// when the user logged out (or a 401 forced it), meaning the caller should
// restart the login flow.
func (t *TUI) MainLoop(ctx context.Context) (logout bool, err error) {
	pages := map[string]tea.Model{
		"menu":        NewMenuModel(t.store),
		"dashboard":   NewDashboardModel(ctx, t.services, t.store),
		"usuarios":    NewUsuariosModel(ctx, t.services.Usuarios, t.center),
		"autores":     NewAutoresModel(ctx, t.services.Autores, t.center),
		"editoriales": NewEditorialesModel(ctx, t.services.Editoriales, t.center),
		"categorias":  NewCategoriasModel(ctx, t.services.Categorias, t.center),
		"libros":      NewLibrosModel(ctx, t.services, t.center),
		"revistas":    NewRevistasModel(ctx, t.services, t.center),
		"periodicos":  NewPeriodicosModel(ctx, t.services, t.center),
		"items":       NewItemsModel(ctx, t.services, t.center),
		"prestamos":   NewPrestamosModel(ctx, t.services, t.center),
		"multas":      NewMultasModel(ctx, t.services, t.center),
	}

	root := NewRootModel(pages, "menu", t.store, t.center, true)
	finalModel, runErr := tea.NewProgram(root, tea.WithAltScreen()).Run()
	if runErr != nil {
		return false, runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	if result.logout {
		t.services.Auth.Logout()
		return true, nil
	}

	return false, nil
}
