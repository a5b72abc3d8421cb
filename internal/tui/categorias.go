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

type categoriasMode int

const (
	categoriasModeList categoriasMode = iota
	categoriasModeForm
	categoriasModeConfirm
)

type categoriasLoadedMsg struct {
	items []models.Categoria
	err   error
}

type categoriaSavedMsg struct {
	err error
}

type categoriaDeletedMsg struct {
	err error
}

// CategoriasModel is the category reference-data page.
type CategoriasModel struct {
	ctx    context.Context
	svc    *service.Categorias
	center *notify.Center

	mode      categoriasMode
	items     []models.Categoria
	idx       int
	loading   bool
	search    textinput.Model
	searching bool
	status    string

	// inputs: nombre, descripcion
	inputs     []textinput.Model
	focus      int
	editingID  string
	formErr    string
	submitting bool

	pendingDelete string
}

func NewCategoriasModel(ctx context.Context, svc *service.Categorias, center *notify.Center) *CategoriasModel {
	search := textinput.New()
	search.Width = 30
	search.Prompt = "/"

	return &CategoriasModel{ctx: ctx, svc: svc, center: center, search: search}
}

func (m *CategoriasModel) Init() tea.Cmd {
	m.mode = categoriasModeList
	m.loading = true
	return m.cmdLoad()
}

func (m *CategoriasModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case categoriasLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.center.Error("Failed to load categories")
			return m, nil
		}
		m.items = msg.items
		m.clampIdx()
		return m, nil
	case categoriaSavedMsg:
		m.submitting = false
		if msg.err != nil {
			return m, nil
		}
		m.center.Success("Category saved")
		m.mode = categoriasModeList
		m.loading = true
		return m, m.cmdLoad()
	case categoriaDeletedMsg:
		if msg.err != nil {
			return m, nil
		}
		m.center.Success("Category deleted")
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
	case categoriasModeForm:
		return m.updateForm(msg)
	case categoriasModeConfirm:
		return m.updateConfirm(msg)
	}
	return m.updateList(msg)
}

func (m *CategoriasModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			m.mode = categoriasModeConfirm
		}
	case "c":
		if item, ok := m.current(); ok {
			return m, cmdCopyToClipboard(item.ID)
		}
	}
	return m, nil
}

func (m *CategoriasModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		m.mode = categoriasModeList
		if m.pendingDelete == "" {
			return m, nil
		}
		return m, m.cmdDelete(m.pendingDelete)
	case "n", "esc":
		m.mode = categoriasModeList
		m.pendingDelete = ""
	}
	return m, nil
}

func (m *CategoriasModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.mode = categoriasModeList
			return m, nil
		case "tab":
			m.focusNext()
			return m, nil
		case "shift+tab":
			m.focusPrev()
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

func (m *CategoriasModel) submitForm() (tea.Model, tea.Cmd) {
	nombre := strings.TrimSpace(m.inputs[0].Value())
	descripcion := strings.TrimSpace(m.inputs[1].Value())

	if errMsg := validate.FirstError(validate.Required("name", nombre)); errMsg != "" {
		m.formErr = errMsg
		return m, nil
	}

	m.formErr = ""
	m.submitting = true

	if m.editingID == "" {
		payload := models.CategoriaCreate{
			Nombre:      nombre,
			Descripcion: optional(descripcion),
		}
		return m, m.cmdCreate(payload)
	}

	payload := models.CategoriaUpdate{
		Nombre:      &nombre,
		Descripcion: optional(descripcion),
	}
	return m, m.cmdUpdate(m.editingID, payload)
}

func (m *CategoriasModel) openForm(item *models.Categoria) {
	inputs := make([]textinput.Model, 2)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
	}
	inputs[0].Focus()

	m.inputs = inputs
	m.focus = 0
	m.formErr = ""
	m.submitting = false
	m.editingID = ""
	m.mode = categoriasModeForm

	if item == nil {
		return
	}

	m.editingID = item.ID
	m.inputs[0].SetValue(item.Nombre)
	if item.Descripcion != nil {
		m.inputs[1].SetValue(*item.Descripcion)
	}
}

func (m *CategoriasModel) filtered() []models.Categoria {
	needle := strings.ToLower(strings.TrimSpace(m.search.Value()))
	if needle == "" {
		return m.items
	}

	var out []models.Categoria
	for _, item := range m.items {
		if strings.Contains(strings.ToLower(item.Nombre), needle) {
			out = append(out, item)
		}
	}
	return out
}

func (m *CategoriasModel) current() (models.Categoria, bool) {
	items := m.filtered()
	if len(items) == 0 || m.idx < 0 || m.idx >= len(items) {
		return models.Categoria{}, false
	}
	return items[m.idx], true
}

func (m *CategoriasModel) clampIdx() {
	if n := len(m.filtered()); m.idx >= n {
		m.idx = n - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m *CategoriasModel) View() string {
	switch m.mode {
	case categoriasModeForm:
		return m.viewForm()
	case categoriasModeConfirm:
		return m.viewConfirm()
	}
	return m.viewList()
}

func (m *CategoriasModel) viewList() string {
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
			b.WriteString("No categories\n")
		}
		for i, item := range items {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			b.WriteString(fmt.Sprintf("%s%s  %-30s %s\n",
				cursor, shortID(item.ID), fitText(item.Nombre, 30),
				fitText(valueOrDash(item.Descripcion), 40)))
		}
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	return renderPage("CATEGORIES", strings.TrimRight(b.String(), "\n"),
		"n: new │ e: edit │ d: delete │ c: copy id │ /: search │ r: reload │ esc: menu")
}

func (m *CategoriasModel) viewForm() string {
	title := "New category"
	if m.editingID != "" {
		title = "Edit category"
	}

	var b strings.Builder
	b.WriteString("Name        │ [" + m.inputs[0].View() + "]\n")
	b.WriteString("Description │ [" + m.inputs[1].View() + "]\n")

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

func (m *CategoriasModel) viewConfirm() string {
	name := m.pendingDelete
	if item, ok := m.current(); ok {
		name = item.Nombre
	}
	content := "Delete \"" + name + "\"?\n\n"
	content += "y yes    n no"
	return appStyle.Render(overlayBoxStyle.Render(content))
}

func (m *CategoriasModel) cmdLoad() tea.Cmd {
	ctx := m.ctx
	svc := m.svc
	return func() tea.Msg {
		items, err := svc.List(ctx, 0, 0)
		return categoriasLoadedMsg{items: items, err: err}
	}
}

func (m *CategoriasModel) cmdCreate(payload models.CategoriaCreate) tea.Cmd {
	ctx := m.ctx
	svc := m.svc
	return func() tea.Msg {
		_, err := svc.Create(ctx, payload)
		return categoriaSavedMsg{err: err}
	}
}

func (m *CategoriasModel) cmdUpdate(id string, payload models.CategoriaUpdate) tea.Cmd {
	ctx := m.ctx
	svc := m.svc
	return func() tea.Msg {
		_, err := svc.Update(ctx, id, payload)
		return categoriaSavedMsg{err: err}
	}
}

func (m *CategoriasModel) cmdDelete(id string) tea.Cmd {
	ctx := m.ctx
	svc := m.svc
	return func() tea.Msg {
		return categoriaDeletedMsg{err: svc.Delete(ctx, id)}
	}
}

func (m *CategoriasModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *CategoriasModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}
