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

type editorialesMode int

const (
	editorialesModeList editorialesMode = iota
	editorialesModeForm
	editorialesModeConfirm
)

type editorialesLoadedMsg struct {
	items []models.Editorial
	err   error
}

type editorialSavedMsg struct {
	err error
}

type editorialDeletedMsg struct {
	err error
}

// EditorialesModel is the publisher reference-data page.
type EditorialesModel struct {
	ctx    context.Context
	svc    *service.Editoriales
	center *notify.Center

	mode      editorialesMode
	items     []models.Editorial
	idx       int
	loading   bool
	search    textinput.Model
	searching bool
	status    string

	// inputs: nombre, direccion, telefono
	inputs     []textinput.Model
	focus      int
	editingID  string
	formErr    string
	submitting bool

	pendingDelete string
}

func NewEditorialesModel(ctx context.Context, svc *service.Editoriales, center *notify.Center) *EditorialesModel {
	search := textinput.New()
	search.Width = 30
	search.Prompt = "/"

	return &EditorialesModel{ctx: ctx, svc: svc, center: center, search: search}
}

func (m *EditorialesModel) Init() tea.Cmd {
	m.mode = editorialesModeList
	m.loading = true
	return m.cmdLoad()
}

func (m *EditorialesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case editorialesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.center.Error("Failed to load publishers")
			return m, nil
		}
		m.items = msg.items
		m.clampIdx()
		return m, nil
	case editorialSavedMsg:
		m.submitting = false
		if msg.err != nil {
			return m, nil
		}
		m.center.Success("Publisher saved")
		m.mode = editorialesModeList
		m.loading = true
		return m, m.cmdLoad()
	case editorialDeletedMsg:
		if msg.err != nil {
			return m, nil
		}
		m.center.Success("Publisher deleted")
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
	case editorialesModeForm:
		return m.updateForm(msg)
	case editorialesModeConfirm:
		return m.updateConfirm(msg)
	}
	return m.updateList(msg)
}

func (m *EditorialesModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			m.mode = editorialesModeConfirm
		}
	case "c":
		if item, ok := m.current(); ok {
			return m, cmdCopyToClipboard(item.ID)
		}
	}
	return m, nil
}

func (m *EditorialesModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		m.mode = editorialesModeList
		if m.pendingDelete == "" {
			return m, nil
		}
		return m, m.cmdDelete(m.pendingDelete)
	case "n", "esc":
		m.mode = editorialesModeList
		m.pendingDelete = ""
	}
	return m, nil
}

func (m *EditorialesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.mode = editorialesModeList
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

func (m *EditorialesModel) submitForm() (tea.Model, tea.Cmd) {
	nombre := strings.TrimSpace(m.inputs[0].Value())
	direccion := strings.TrimSpace(m.inputs[1].Value())
	telefono := strings.TrimSpace(m.inputs[2].Value())

	if errMsg := validate.FirstError(validate.Required("name", nombre)); errMsg != "" {
		m.formErr = errMsg
		return m, nil
	}

	m.formErr = ""
	m.submitting = true

	if m.editingID == "" {
		payload := models.EditorialCreate{
			Nombre:    nombre,
			Direccion: optional(direccion),
			Telefono:  optional(telefono),
		}
		return m, m.cmdCreate(payload)
	}

	payload := models.EditorialUpdate{
		Nombre:    &nombre,
		Direccion: optional(direccion),
		Telefono:  optional(telefono),
	}
	return m, m.cmdUpdate(m.editingID, payload)
}

func (m *EditorialesModel) openForm(item *models.Editorial) {
	inputs := make([]textinput.Model, 3)
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
	m.mode = editorialesModeForm

	if item == nil {
		return
	}

	m.editingID = item.ID
	m.inputs[0].SetValue(item.Nombre)
	if item.Direccion != nil {
		m.inputs[1].SetValue(*item.Direccion)
	}
	if item.Telefono != nil {
		m.inputs[2].SetValue(*item.Telefono)
	}
}

func (m *EditorialesModel) filtered() []models.Editorial {
	needle := strings.ToLower(strings.TrimSpace(m.search.Value()))
	if needle == "" {
		return m.items
	}

	var out []models.Editorial
	for _, item := range m.items {
		if strings.Contains(strings.ToLower(item.Nombre), needle) {
			out = append(out, item)
		}
	}
	return out
}

func (m *EditorialesModel) current() (models.Editorial, bool) {
	items := m.filtered()
	if len(items) == 0 || m.idx < 0 || m.idx >= len(items) {
		return models.Editorial{}, false
	}
	return items[m.idx], true
}

func (m *EditorialesModel) clampIdx() {
	if n := len(m.filtered()); m.idx >= n {
		m.idx = n - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m *EditorialesModel) View() string {
	switch m.mode {
	case editorialesModeForm:
		return m.viewForm()
	case editorialesModeConfirm:
		return m.viewConfirm()
	}
	return m.viewList()
}

func (m *EditorialesModel) viewList() string {
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
			b.WriteString("No publishers\n")
		}
		for i, item := range items {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			b.WriteString(fmt.Sprintf("%s%s  %-30s %-25s %s\n",
				cursor, shortID(item.ID), fitText(item.Nombre, 30),
				fitText(valueOrDash(item.Direccion), 25), valueOrDash(item.Telefono)))
		}
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	return renderPage("PUBLISHERS", strings.TrimRight(b.String(), "\n"),
		"n: new │ e: edit │ d: delete │ c: copy id │ /: search │ r: reload │ esc: menu")
}

func (m *EditorialesModel) viewForm() string {
	title := "New publisher"
	if m.editingID != "" {
		title = "Edit publisher"
	}

	var b strings.Builder
	b.WriteString("Name    │ [" + m.inputs[0].View() + "]\n")
	b.WriteString("Address │ [" + m.inputs[1].View() + "]\n")
	b.WriteString("Phone   │ [" + m.inputs[2].View() + "]\n")

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

func (m *EditorialesModel) viewConfirm() string {
	name := m.pendingDelete
	if item, ok := m.current(); ok {
		name = item.Nombre
	}
	content := "Delete \"" + name + "\"?\n\n"
	content += "y yes    n no"
	return appStyle.Render(overlayBoxStyle.Render(content))
}

func (m *EditorialesModel) cmdLoad() tea.Cmd {
	ctx := m.ctx
	svc := m.svc
	return func() tea.Msg {
		items, err := svc.List(ctx, 0, 0)
		return editorialesLoadedMsg{items: items, err: err}
	}
}

func (m *EditorialesModel) cmdCreate(payload models.EditorialCreate) tea.Cmd {
	ctx := m.ctx
	svc := m.svc
	return func() tea.Msg {
		_, err := svc.Create(ctx, payload)
		return editorialSavedMsg{err: err}
	}
}

func (m *EditorialesModel) cmdUpdate(id string, payload models.EditorialUpdate) tea.Cmd {
	ctx := m.ctx
	svc := m.svc
	return func() tea.Msg {
		_, err := svc.Update(ctx, id, payload)
		return editorialSavedMsg{err: err}
	}
}

func (m *EditorialesModel) cmdDelete(id string) tea.Cmd {
	ctx := m.ctx
	svc := m.svc
	return func() tea.Msg {
		return editorialDeletedMsg{err: svc.Delete(ctx, id)}
	}
}

func (m *EditorialesModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *EditorialesModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}
