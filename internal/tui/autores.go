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

type autoresMode int

const (
	autoresModeList autoresMode = iota
	autoresModeForm
	autoresModeConfirm
)

type autoresLoadedMsg struct {
	items []models.Autor
	err   error
}

type autorSavedMsg struct {
	err error
}

type autorDeletedMsg struct {
	err error
}

// AutoresModel is the author reference-data page.
type AutoresModel struct {
	ctx    context.Context
	svc    *service.Autores
	center *notify.Center

	mode      autoresMode
	items     []models.Autor
	idx       int
	loading   bool
	search    textinput.Model
	searching bool
	status    string

	// inputs: nombre, nacionalidad, bibliografia
	inputs     []textinput.Model
	focus      int
	editingID  string
	formErr    string
	submitting bool

	pendingDelete string
}

func NewAutoresModel(ctx context.Context, svc *service.Autores, center *notify.Center) *AutoresModel {
	search := textinput.New()
	search.Width = 30
	search.Prompt = "/"

	return &AutoresModel{ctx: ctx, svc: svc, center: center, search: search}
}

func (m *AutoresModel) Init() tea.Cmd {
	m.mode = autoresModeList
	m.loading = true
	return m.cmdLoad()
}

func (m *AutoresModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case autoresLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.center.Error("Failed to load authors")
			return m, nil
		}
		m.items = msg.items
		m.clampIdx()
		return m, nil
	case autorSavedMsg:
		m.submitting = false
		if msg.err != nil {
			return m, nil
		}
		m.center.Success("Author saved")
		m.mode = autoresModeList
		m.loading = true
		return m, m.cmdLoad()
	case autorDeletedMsg:
		if msg.err != nil {
			return m, nil
		}
		m.center.Success("Author deleted")
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
	case autoresModeForm:
		return m.updateForm(msg)
	case autoresModeConfirm:
		return m.updateConfirm(msg)
	}
	return m.updateList(msg)
}

func (m *AutoresModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			m.mode = autoresModeConfirm
		}
	case "c":
		if item, ok := m.current(); ok {
			return m, cmdCopyToClipboard(item.ID)
		}
	}
	return m, nil
}

func (m *AutoresModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		m.mode = autoresModeList
		if m.pendingDelete == "" {
			return m, nil
		}
		return m, m.cmdDelete(m.pendingDelete)
	case "n", "esc":
		m.mode = autoresModeList
		m.pendingDelete = ""
	}
	return m, nil
}

func (m *AutoresModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.mode = autoresModeList
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

func (m *AutoresModel) submitForm() (tea.Model, tea.Cmd) {
	nombre := strings.TrimSpace(m.inputs[0].Value())
	nacionalidad := strings.TrimSpace(m.inputs[1].Value())
	bibliografia := strings.TrimSpace(m.inputs[2].Value())

	if errMsg := validate.FirstError(
		validate.Required("name", nombre),
		validate.Required("nationality", nacionalidad),
	); errMsg != "" {
		m.formErr = errMsg
		return m, nil
	}

	m.formErr = ""
	m.submitting = true

	if m.editingID == "" {
		payload := models.AutorCreate{
			Nombre:       nombre,
			Nacionalidad: nacionalidad,
			Bibliografia: optional(bibliografia),
		}
		return m, m.cmdCreate(payload)
	}

	payload := models.AutorUpdate{
		Nombre:       &nombre,
		Nacionalidad: &nacionalidad,
		Bibliografia: optional(bibliografia),
	}
	return m, m.cmdUpdate(m.editingID, payload)
}

func (m *AutoresModel) openForm(item *models.Autor) {
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
	m.mode = autoresModeForm

	if item == nil {
		return
	}

	m.editingID = item.ID
	m.inputs[0].SetValue(item.Nombre)
	m.inputs[1].SetValue(item.Nacionalidad)
	if item.Bibliografia != nil {
		m.inputs[2].SetValue(*item.Bibliografia)
	}
}

func (m *AutoresModel) filtered() []models.Autor {
	needle := strings.ToLower(strings.TrimSpace(m.search.Value()))
	if needle == "" {
		return m.items
	}

	var out []models.Autor
	for _, item := range m.items {
		haystack := strings.ToLower(item.Nombre + " " + item.Nacionalidad)
		if strings.Contains(haystack, needle) {
			out = append(out, item)
		}
	}
	return out
}

func (m *AutoresModel) current() (models.Autor, bool) {
	items := m.filtered()
	if len(items) == 0 || m.idx < 0 || m.idx >= len(items) {
		return models.Autor{}, false
	}
	return items[m.idx], true
}

func (m *AutoresModel) clampIdx() {
	if n := len(m.filtered()); m.idx >= n {
		m.idx = n - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m *AutoresModel) View() string {
	switch m.mode {
	case autoresModeForm:
		return m.viewForm()
	case autoresModeConfirm:
		return m.viewConfirm()
	}
	return m.viewList()
}

func (m *AutoresModel) viewList() string {
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
			b.WriteString("No authors\n")
		}
		for i, item := range items {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			b.WriteString(fmt.Sprintf("%s%s  %-30s %s\n",
				cursor, shortID(item.ID), fitText(item.Nombre, 30), fitText(item.Nacionalidad, 20)))
		}
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	return renderPage("AUTHORS", strings.TrimRight(b.String(), "\n"),
		"n: new │ e: edit │ d: delete │ c: copy id │ /: search │ r: reload │ esc: menu")
}

func (m *AutoresModel) viewForm() string {
	title := "New author"
	if m.editingID != "" {
		title = "Edit author"
	}

	var b strings.Builder
	b.WriteString("Name        │ [" + m.inputs[0].View() + "]\n")
	b.WriteString("Nationality │ [" + m.inputs[1].View() + "]\n")
	b.WriteString("Biography   │ [" + m.inputs[2].View() + "]\n")

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

func (m *AutoresModel) viewConfirm() string {
	name := m.pendingDelete
	if item, ok := m.current(); ok {
		name = item.Nombre
	}
	content := "Delete \"" + name + "\"?\n\n"
	content += "y yes    n no"
	return appStyle.Render(overlayBoxStyle.Render(content))
}

func (m *AutoresModel) cmdLoad() tea.Cmd {
	ctx := m.ctx
	svc := m.svc
	return func() tea.Msg {
		items, err := svc.List(ctx, 0, 0)
		return autoresLoadedMsg{items: items, err: err}
	}
}

func (m *AutoresModel) cmdCreate(payload models.AutorCreate) tea.Cmd {
	ctx := m.ctx
	svc := m.svc
	return func() tea.Msg {
		_, err := svc.Create(ctx, payload)
		return autorSavedMsg{err: err}
	}
}

func (m *AutoresModel) cmdUpdate(id string, payload models.AutorUpdate) tea.Cmd {
	ctx := m.ctx
	svc := m.svc
	return func() tea.Msg {
		_, err := svc.Update(ctx, id, payload)
		return autorSavedMsg{err: err}
	}
}

func (m *AutoresModel) cmdDelete(id string) tea.Cmd {
	ctx := m.ctx
	svc := m.svc
	return func() tea.Msg {
		return autorDeletedMsg{err: svc.Delete(ctx, id)}
	}
}

func (m *AutoresModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *AutoresModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}
