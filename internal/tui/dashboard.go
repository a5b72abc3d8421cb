package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/federico588/biblioteca-tui/internal/service"
	"github.com/federico588/biblioteca-tui/internal/session"
	"github.com/federico588/biblioteca-tui/models"
)

type dashboardStats struct {
	usuarios         int
	libros           int
	revistas         int
	periodicos       int
	items            int
	itemsDisponibles int
	prestamosActivos int
	multasPendientes int

	// withCatalog marks the admin-only blocks as populated.
	withCatalog bool
}

type dashboardLoadedMsg struct {
	stats dashboardStats
	err   error
}

// DashboardModel shows aggregate counts. Admins see the full catalog
// breakdown; consumidores only the sections their role can reach.
type DashboardModel struct {
	ctx      context.Context
	services *service.Services
	store    *session.Store

	stats   dashboardStats
	loading bool
	errMsg  string
}

func NewDashboardModel(ctx context.Context, services *service.Services, store *session.Store) *DashboardModel {
	return &DashboardModel{ctx: ctx, services: services, store: store}
}

func (m *DashboardModel) Init() tea.Cmd {
	m.loading = true
	m.errMsg = ""
	return m.cmdLoad()
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.stats = msg.stats
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return NavigateTo{Page: "menu"} }
		case "r":
			m.loading = true
			return m, m.cmdLoad()
		}
	}
	return m, nil
}

func (m *DashboardModel) View() string {
	var b strings.Builder

	switch {
	case m.loading:
		b.WriteString("Loading...\n")
	case m.errMsg != "":
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	default:
		if m.stats.withCatalog {
			b.WriteString(fmt.Sprintf("Users        %d\n", m.stats.usuarios))
			b.WriteString(fmt.Sprintf("Books        %d\n", m.stats.libros))
			b.WriteString(fmt.Sprintf("Magazines    %d\n", m.stats.revistas))
			b.WriteString(fmt.Sprintf("Newspapers   %d\n", m.stats.periodicos))
		}
		b.WriteString(fmt.Sprintf("Items        %d (%d available)\n", m.stats.items, m.stats.itemsDisponibles))
		b.WriteString(fmt.Sprintf("Active loans %d\n", m.stats.prestamosActivos))
		b.WriteString(fmt.Sprintf("Open fines   %d\n", m.stats.multasPendientes))
	}

	return renderPage("DASHBOARD", strings.TrimRight(b.String(), "\n"), "r: reload │ esc: menu")
}

func (m *DashboardModel) cmdLoad() tea.Cmd {
	ctx := m.ctx
	services := m.services
	admin := m.store.HasRole(models.RoleAdmin)

	return func() tea.Msg {
		var stats dashboardStats

		items, err := services.Items.List(ctx, 0, 0, service.ItemFilter{})
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		stats.items = len(items)
		for _, item := range items {
			if item.Disponible {
				stats.itemsDisponibles++
			}
		}

		prestamos, err := services.Prestamos.List(ctx, 0, 0, service.PrestamoFilter{Estado: models.PrestamoActivo})
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		stats.prestamosActivos = len(prestamos)

		multas, err := services.Multas.List(ctx, 0, 0, service.MultaFilter{Estado: models.MultaPendiente})
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		stats.multasPendientes = len(multas)

		if !admin {
			return dashboardLoadedMsg{stats: stats}
		}

		stats.withCatalog = true
		usuarios, err := services.Usuarios.List(ctx, 0, 0, false)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		stats.usuarios = len(usuarios)

		libros, err := services.Libros.List(ctx, 0, 0)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		stats.libros = len(libros)

		revistas, err := services.Revistas.List(ctx, 0, 0)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		stats.revistas = len(revistas)

		periodicos, err := services.Periodicos.List(ctx, 0, 0)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		stats.periodicos = len(periodicos)

		return dashboardLoadedMsg{stats: stats}
	}
}
