package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/federico588/biblioteca-tui/internal/notify"
	"github.com/federico588/biblioteca-tui/internal/session"
)

// RootModel is the TUI router:
// 1) keeps the active page
// 2) handles global Ctrl+C quit
// 3) handles NavigateTo messages, enforcing the role route allow-list
// 4) appends the toast footer to every page
// 5) delegates all other messages to the active page
type RootModel struct {
	pages   map[string]tea.Model
	current tea.Model
	store   *session.Store
	center  *notify.Center

	// mainMode distinguishes the authenticated main loop from the login
	// flow: only the main loop watches for a forced logout.
	mainMode bool

	quitByUser bool
	logout     bool
}

// NewRootModel registers all pages and opens startPage.
func NewRootModel(pages map[string]tea.Model, startPage string, store *session.Store, center *notify.Center, mainMode bool) RootModel {
	return RootModel{
		pages:    pages,
		current:  pages[startPage],
		store:    store,
		center:   center,
		mainMode: mainMode,
	}
}

func (r RootModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	if r.current != nil {
		cmds = append(cmds, r.current.Init())
	}
	if r.mainMode {
		cmds = append(cmds, cmdToastTick())
	}
	return tea.Batch(cmds...)
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Global hotkey for every page.
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(keyMsg, keys.quit) {
			r.quitByUser = true
			return r, tea.Quit
		}
	}

	switch msg := msg.(type) {
	case toastTickMsg:
		if !r.mainMode {
			return r, nil
		}
		return r, cmdToastTick()

	case logoutRequestedMsg:
		r.logout = true
		return r, tea.Quit

	// Cross-page navigation.
	case NavigateTo:
		next, exists := r.pages[msg.Page]
		if !exists {
			return r, nil
		}
		if msg.Page != "menu" && !r.store.CanAccess(msg.Page) {
			r.center.Warning("You do not have access to this section")
			return r, nil
		}

		r.current = next
		if msg.Payload != nil {
			payload := msg.Payload
			return r, tea.Batch(r.current.Init(), func() tea.Msg { return payload })
		}
		return r, r.current.Init()

	// Finalize the login flow on success.
	case LoginResult:
		if msg.Err == nil {
			return r, tea.Quit
		}
	}

	if r.current == nil {
		return r, nil
	}

	updated, cmd := r.current.Update(msg)
	r.current = updated

	// A 401 outside the login call clears the session via the gateway hook;
	// detect it here and fall back to the login flow.
	if r.mainMode && !r.store.IsAuthenticated() {
		r.logout = true
		return r, tea.Quit
	}

	return r, cmd
}

func (r RootModel) View() string {
	body := ""
	if r.current != nil {
		body = r.current.View()
	}
	body += renderToasts(r.center.Active())
	return appStyle.Render(body)
}

func cmdToastTick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(time.Time) tea.Msg {
		return toastTickMsg{}
	})
}
