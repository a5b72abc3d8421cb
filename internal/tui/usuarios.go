package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/federico588/biblioteca-tui/internal/notify"
	"github.com/federico588/biblioteca-tui/internal/service"
	"github.com/federico588/biblioteca-tui/internal/validate"
	"github.com/federico588/biblioteca-tui/models"
)

type usuariosMode int

const (
	usuariosModeList usuariosMode = iota
	usuariosModeForm
	usuariosModeConfirm
)

type usuariosLoadedMsg struct {
	items []models.Usuario
	err   error
}

type usuarioSavedMsg struct {
	err error
}

type usuarioDeletedMsg struct {
	err error
}

// UsuariosModel is the user administration page: a searchable list with a
// create/edit form and a delete confirmation. Admin only.
type UsuariosModel struct {
	ctx    context.Context
	svc    *service.Usuarios
	center *notify.Center

	mode            usuariosMode
	items           []models.Usuario
	idx             int
	loading         bool
	includeInactive bool
	search          textinput.Model
	searching       bool
	status          string

	// form state; inputs: nombre, nombre_usuario, email, contraseña, telefono
	inputs      []textinput.Model
	focus       int
	editingID   string
	formEsAdmin bool
	formActivo  bool
	formErr     string
	submitting  bool

	pendingDelete string
}

func NewUsuariosModel(ctx context.Context, svc *service.Usuarios, center *notify.Center) *UsuariosModel {
	search := textinput.New()
	search.Width = 30
	search.Prompt = "/"

	return &UsuariosModel{ctx: ctx, svc: svc, center: center, search: search}
}

func (m *UsuariosModel) Init() tea.Cmd {
	m.mode = usuariosModeList
	m.loading = true
	return m.cmdLoad()
}

func (m *UsuariosModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case usuariosLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.center.Error("Failed to load users")
			return m, nil
		}
		m.items = msg.items
		m.clampIdx()
		return m, nil
	case usuarioSavedMsg:
		m.submitting = false
		if msg.err != nil {
			return m, nil
		}
		m.center.Success("User saved")
		m.mode = usuariosModeList
		m.loading = true
		return m, m.cmdLoad()
	case usuarioDeletedMsg:
		if msg.err != nil {
			return m, nil
		}
		m.center.Success("User deleted")
		m.pendingDelete = ""
		m.loading = true
		return m, m.cmdLoad()
	case copiedMsg:
		if msg.err == nil {
			m.status = "Copied!"
		}
		return m, cmdClearStatus()
	case statusClearMsg:
		m.status = ""
		return m, nil
	}

	switch m.mode {
	case usuariosModeForm:
		return m.updateForm(msg)
	case usuariosModeConfirm:
		return m.updateConfirm(msg)
	}
	return m.updateList(msg)
}

func (m *UsuariosModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.searching {
		switch keyMsg.String() {
		case "esc":
			m.searching = false
			m.search.SetValue("")
			m.search.Blur()
		case "enter":
			m.searching = false
			m.search.Blur()
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			m.clampIdx()
			return m, cmd
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, func() tea.Msg { return NavigateTo{Page: "menu"} }
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
	case "down", "j":
		if m.idx < len(m.filtered())-1 {
			m.idx++
		}
	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case "i":
		m.includeInactive = !m.includeInactive
		m.loading = true
		return m, m.cmdLoad()
	case "r":
		m.loading = true
		return m, m.cmdLoad()
	case "n":
		m.openForm(nil)
		return m, textinput.Blink
	case "e":
		if item, ok := m.current(); ok {
			m.openForm(&item)
			return m, textinput.Blink
		}
	case "d":
		if item, ok := m.current(); ok {
			m.pendingDelete = item.ID
			m.mode = usuariosModeConfirm
		}
	case "c":
		if item, ok := m.current(); ok {
			return m, cmdCopyToClipboard(item.ID)
		}
	}
	return m, nil
}

func (m *UsuariosModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		m.mode = usuariosModeList
		if m.pendingDelete == "" {
			return m, nil
		}
		return m, m.cmdDelete(m.pendingDelete)
	case "n", "esc":
		m.mode = usuariosModeList
		m.pendingDelete = ""
	}
	return m, nil
}

func (m *UsuariosModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.mode = usuariosModeList
			return m, nil
		case "tab":
			m.focusNext()
			return m, nil
		case "shift+tab":
			m.focusPrev()
			return m, nil
		case "ctrl+a":
			m.formEsAdmin = !m.formEsAdmin
			return m, nil
		case "ctrl+v":
			m.formActivo = !m.formActivo
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}
			return m.submitForm()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *UsuariosModel) submitForm() (tea.Model, tea.Cmd) {
	nombre := strings.TrimSpace(m.inputs[0].Value())
	nombreUsuario := strings.TrimSpace(m.inputs[1].Value())
	email := strings.TrimSpace(m.inputs[2].Value())
	pass := m.inputs[3].Value()
	telefono := strings.TrimSpace(m.inputs[4].Value())

	checks := []validate.Result{
		validate.Required("name", nombre),
		validate.Required("username", nombreUsuario),
		validate.Required("email", email),
		validate.Email("email", email),
		validate.MinLength("password", pass, 6),
	}
	if m.editingID == "" {
		checks = append(checks, validate.Required("password", pass))
	}
	if errMsg := validate.FirstError(checks...); errMsg != "" {
		m.formErr = errMsg
		return m, nil
	}

	m.formErr = ""
	m.submitting = true

	if m.editingID == "" {
		payload := models.UsuarioCreate{
			Nombre:        nombre,
			NombreUsuario: nombreUsuario,
			Email:         email,
			Contrasena:    pass,
			Telefono:      optional(telefono),
			EsAdmin:       m.formEsAdmin,
		}
		return m, m.cmdCreate(payload)
	}

	payload := models.UsuarioUpdate{
		Nombre:        &nombre,
		NombreUsuario: &nombreUsuario,
		Email:         &email,
		Telefono:      optional(telefono),
		EsAdmin:       &m.formEsAdmin,
		Activo:        &m.formActivo,
	}
	if pass != "" {
		payload.Contrasena = &pass
	}
	return m, m.cmdUpdate(m.editingID, payload)
}

func (m *UsuariosModel) openForm(item *models.Usuario) {
	inputs := make([]textinput.Model, 5)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
	}
	inputs[3].EchoMode = textinput.EchoPassword
	inputs[3].EchoCharacter = '*'
	inputs[0].Focus()

	m.inputs = inputs
	m.focus = 0
	m.formErr = ""
	m.submitting = false
	m.editingID = ""
	m.formEsAdmin = false
	m.formActivo = true
	m.mode = usuariosModeForm

	if item == nil {
		return
	}

	m.editingID = item.ID
	m.inputs[0].SetValue(item.Nombre)
	m.inputs[1].SetValue(item.NombreUsuario)
	m.inputs[2].SetValue(item.Email)
	if item.Telefono != nil {
		m.inputs[4].SetValue(*item.Telefono)
	}
	m.formEsAdmin = item.EsAdmin
	m.formActivo = item.Activo
}

func (m *UsuariosModel) filtered() []models.Usuario {
	needle := strings.ToLower(strings.TrimSpace(m.search.Value()))
	if needle == "" {
		return m.items
	}

	var out []models.Usuario
	for _, item := range m.items {
		haystack := strings.ToLower(item.Nombre + " " + item.NombreUsuario + " " + item.Email)
		if strings.Contains(haystack, needle) {
			out = append(out, item)
		}
	}
	return out
}

func (m *UsuariosModel) current() (models.Usuario, bool) {
	items := m.filtered()
	if len(items) == 0 || m.idx < 0 || m.idx >= len(items) {
		return models.Usuario{}, false
	}
	return items[m.idx], true
}

func (m *UsuariosModel) clampIdx() {
	if n := len(m.filtered()); m.idx >= n {
		m.idx = n - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m *UsuariosModel) View() string {
	switch m.mode {
	case usuariosModeForm:
		return m.viewForm()
	case usuariosModeConfirm:
		return m.viewConfirm()
	}
	return m.viewList()
}

func (m *UsuariosModel) viewList() string {
	var b strings.Builder

	if m.searching || m.search.Value() != "" {
		b.WriteString("Search: ")
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	}

	if m.loading {
		b.WriteString("Loading...\n")
	} else {
		items := m.filtered()
		if len(items) == 0 {
			b.WriteString("No users\n")
		}
		for i, item := range items {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			b.WriteString(fmt.Sprintf("%s%s  %-20s %-20s %-25s admin %s  active %s\n",
				cursor, shortID(item.ID),
				fitText(item.NombreUsuario, 20), fitText(item.Nombre, 20), fitText(item.Email, 25),
				checkbox(item.EsAdmin), checkbox(item.Activo)))
		}
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	title := "USERS"
	if m.includeInactive {
		title = "USERS (incl. inactive)"
	}
	return renderPage(title, strings.TrimRight(b.String(), "\n"),
		"n: new │ e: edit │ d: delete │ c: copy id │ i: inactive │ /: search │ r: reload │ esc: menu")
}

func (m *UsuariosModel) viewForm() string {
	title := "New user"
	if m.editingID != "" {
		title = "Edit user"
	}

	var b strings.Builder
	b.WriteString("Name     │ [" + m.inputs[0].View() + "]\n")
	b.WriteString("Username │ [" + m.inputs[1].View() + "]\n")
	b.WriteString("Email    │ [" + m.inputs[2].View() + "]\n")
	b.WriteString("Password │ [" + m.inputs[3].View() + "]\n")
	b.WriteString("Phone    │ [" + m.inputs[4].View() + "]\n")
	b.WriteString("Admin    │ " + checkbox(m.formEsAdmin) + " (ctrl+a)\n")
	if m.editingID != "" {
		b.WriteString("Active   │ " + checkbox(m.formActivo) + " (ctrl+v)\n")
	}

	if m.submitting {
		b.WriteString("\n[Saving...]\n")
	} else {
		b.WriteString("\n[Save]\n")
	}
	if m.formErr != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.formErr) + "\n")
	}

	return renderPage(title, strings.TrimRight(b.String(), "\n"), "tab: next field │ enter: save │ esc: cancel")
}

func (m *UsuariosModel) viewConfirm() string {
	name := m.pendingDelete
	if item, ok := m.current(); ok {
		name = item.NombreUsuario
	}
	content := "Delete \"" + name + "\"?\n\n"
	content += "y yes    n no"
	return appStyle.Render(overlayBoxStyle.Render(content))
}

func (m *UsuariosModel) cmdLoad() tea.Cmd {
	ctx := m.ctx
	svc := m.svc
	includeInactive := m.includeInactive
	return func() tea.Msg {
		items, err := svc.List(ctx, 0, 0, includeInactive)
		return usuariosLoadedMsg{items: items, err: err}
	}
}

func (m *UsuariosModel) cmdCreate(payload models.UsuarioCreate) tea.Cmd {
	ctx := m.ctx
	svc := m.svc
	return func() tea.Msg {
		_, err := svc.Create(ctx, payload)
		return usuarioSavedMsg{err: err}
	}
}

func (m *UsuariosModel) cmdUpdate(id string, payload models.UsuarioUpdate) tea.Cmd {
	ctx := m.ctx
	svc := m.svc
	return func() tea.Msg {
		_, err := svc.Update(ctx, id, payload)
		return usuarioSavedMsg{err: err}
	}
}

func (m *UsuariosModel) cmdDelete(id string) tea.Cmd {
	ctx := m.ctx
	svc := m.svc
	return func() tea.Msg {
		return usuarioDeletedMsg{err: svc.Delete(ctx, id)}
	}
}

func (m *UsuariosModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *UsuariosModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

// optional converts a trimmed form value into the pointer shape the wire
// format wants: nil for blank, so the field serializes as an explicit null.
func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
