package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/federico588/biblioteca-tui/internal/notify"
)

// stubPage is a minimal page model recording what reaches it.
type stubPage struct {
	name     string
	received []tea.Msg
}

func (p *stubPage) Init() tea.Cmd { return nil }

func (p *stubPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	p.received = append(p.received, msg)
	return p, nil
}

func (p *stubPage) View() string { return p.name }

func TestRootModel_NavigateSwitchesPage(t *testing.T) {
	store := newTestStore(t, true)
	center := notify.NewCenter()
	menu := &stubPage{name: "menu page"}
	usuarios := &stubPage{name: "usuarios page"}

	root := NewRootModel(map[string]tea.Model{"menu": menu, "usuarios": usuarios}, "menu", store, center, true)

	updated, _ := root.Update(NavigateTo{Page: "usuarios"})
	assert.Contains(t, updated.View(), "usuarios page")
}

func TestRootModel_NavigateBlockedForConsumidor(t *testing.T) {
	store := newTestStore(t, false)
	center := notify.NewCenter()
	menu := &stubPage{name: "menu page"}
	usuarios := &stubPage{name: "usuarios page"}

	root := NewRootModel(map[string]tea.Model{"menu": menu, "usuarios": usuarios}, "menu", store, center, true)

	updated, _ := root.Update(NavigateTo{Page: "usuarios"})

	// Still on the menu, with a warning toast in the footer.
	view := updated.View()
	assert.Contains(t, view, "menu page")
	assert.NotContains(t, view, "usuarios page")
	assert.Contains(t, view, "You do not have access to this section")
}

func TestRootModel_NavigateUnknownPageIgnored(t *testing.T) {
	store := newTestStore(t, true)
	menu := &stubPage{name: "menu page"}

	root := NewRootModel(map[string]tea.Model{"menu": menu}, "menu", store, notify.NewCenter(), true)

	updated, cmd := root.Update(NavigateTo{Page: "nope"})
	assert.Nil(t, cmd)
	assert.Contains(t, updated.View(), "menu page")
}

func TestRootModel_NavigatePayloadDelivered(t *testing.T) {
	store := newTestStore(t, true)
	menu := &stubPage{name: "menu page"}
	items := &stubPage{name: "items page"}

	root := NewRootModel(map[string]tea.Model{"menu": menu, "items": items}, "menu", store, notify.NewCenter(), true)

	payload := itemsFilterMsg{label: "Rayuela"}
	_, cmd := root.Update(NavigateTo{Page: "items", Payload: payload})
	require.NotNil(t, cmd)

	// The batched command re-emits the payload so the target page can
	// pre-filter itself after its Init.
	found := false
	collectMsgs(cmd, func(msg tea.Msg) {
		if got, ok := msg.(itemsFilterMsg); ok {
			assert.Equal(t, "Rayuela", got.label)
			found = true
		}
	})
	assert.True(t, found, "payload message must be re-emitted after navigation")
}

// collectMsgs runs a command tree and feeds every produced message to fn.
func collectMsgs(cmd tea.Cmd, fn func(tea.Msg)) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, sub := range batch {
			collectMsgs(sub, fn)
		}
		return
	}
	fn(msg)
}

func TestRootModel_CtrlCQuits(t *testing.T) {
	store := newTestStore(t, true)
	menu := &stubPage{name: "menu page"}

	root := NewRootModel(map[string]tea.Model{"menu": menu}, "menu", store, notify.NewCenter(), true)

	updated, cmd := root.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, updated.(RootModel).quitByUser)
	assert.Empty(t, menu.received, "quit must not reach the page")
}

func TestRootModel_LogoutRequestQuits(t *testing.T) {
	store := newTestStore(t, true)
	menu := &stubPage{name: "menu page"}

	root := NewRootModel(map[string]tea.Model{"menu": menu}, "menu", store, notify.NewCenter(), true)

	updated, cmd := root.Update(logoutRequestedMsg{})
	require.NotNil(t, cmd)
	assert.True(t, updated.(RootModel).logout)
}

func TestRootModel_SessionLossForcesLogout(t *testing.T) {
	store := newTestStore(t, true)
	menu := &stubPage{name: "menu page"}

	root := NewRootModel(map[string]tea.Model{"menu": menu}, "menu", store, notify.NewCenter(), true)

	// Simulate the gateway's 401 hook clearing the session mid-loop.
	store.Logout()

	updated, cmd := root.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.NotNil(t, cmd)
	assert.True(t, updated.(RootModel).logout)
}
