package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/federico588/biblioteca-tui/internal/session"
	"github.com/federico588/biblioteca-tui/models"
)

type menuEntry struct {
	title     string
	page      string
	adminOnly bool
}

// The full menu. Entries marked adminOnly are hidden from the consumidor
// role; the router additionally enforces the route allow-list on navigation.
var menuEntries = []menuEntry{
	{title: "Dashboard", page: "dashboard"},
	{title: "Users", page: "usuarios", adminOnly: true},
	{title: "Authors", page: "autores", adminOnly: true},
	{title: "Publishers", page: "editoriales", adminOnly: true},
	{title: "Categories", page: "categorias", adminOnly: true},
	{title: "Books", page: "libros", adminOnly: true},
	{title: "Magazines", page: "revistas", adminOnly: true},
	{title: "Newspapers", page: "periodicos", adminOnly: true},
	{title: "Items", page: "items"},
	{title: "Loans", page: "prestamos"},
	// Hidden from the consumidor menu; the route guard itself still allows
	// "multas" for that role.
	{title: "Fines", page: "multas", adminOnly: true},
}

// MenuModel is the authenticated landing page. The visible entries depend on
// the current role and are recomputed every render, so a relogin under a
// different role needs no page rebuild.
type MenuModel struct {
	store *session.Store
	idx   int
}

func NewMenuModel(store *session.Store) *MenuModel {
	return &MenuModel{store: store}
}

func (m *MenuModel) visible() []menuEntry {
	var out []menuEntry
	// No resolvable role hides everything but the logout entry.
	if m.store.Role() != "" {
		admin := m.store.HasRole(models.RoleAdmin)
		for _, e := range menuEntries {
			if e.adminOnly && !admin {
				continue
			}
			out = append(out, e)
		}
	}
	out = append(out, menuEntry{title: "Log out", page: "logout"})
	return out
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	entries := m.visible()
	if m.idx >= len(entries) {
		m.idx = len(entries) - 1
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.idx < len(entries)-1 {
			m.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		entry := entries[m.idx]
		if entry.page == "logout" {
			return m, func() tea.Msg { return logoutRequestedMsg{} }
		}
		return m, func() tea.Msg { return NavigateTo{Page: entry.page} }
	}

	return m, nil
}

func (m *MenuModel) View() string {
	var b strings.Builder

	if user := m.store.CurrentUser(); user != nil {
		b.WriteString(fmt.Sprintf("Signed in as %s (%s)\n\n", user.NombreUsuario, m.store.Role()))
	}

	for i, entry := range m.visible() {
		cursor := "  "
		if i == m.idx {
			cursor = "> "
		}
		b.WriteString(cursor)
		b.WriteString(entry.title)
		b.WriteString("\n")
	}

	return renderPage("LIBRARY ADMIN", strings.TrimRight(b.String(), "\n"), "enter: open │ ↑/↓: move")
}
