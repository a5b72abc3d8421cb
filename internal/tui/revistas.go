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

type revistasMode int

const (
	revistasModeList revistasMode = iota
	revistasModeForm
	revistasModeConfirm
)

const (
	revistaFieldTitulo = iota
	revistaFieldNumero
	revistaFieldEditorial
	revistaFieldAutor
	revistaFieldCategoria
	revistaFieldCount
)

type revistasLoadedMsg struct {
	items []models.Revista
	err   error
}

type revistasRefsLoadedMsg struct {
	editoriales []refOption
	autores     []refOption
	categorias  []refOption
	err         error
}

type revistaSavedMsg struct {
	err error
}

type revistaDeletedMsg struct {
	err error
}

// RevistasModel is the magazine catalog page.
type RevistasModel struct {
	ctx      context.Context
	services *service.Services
	center   *notify.Center

	mode      revistasMode
	items     []models.Revista
	idx       int
	loading   bool
	search    textinput.Model
	searching bool
	status    string

	// form state
	inputs      []textinput.Model // titulo, numero_publicacion
	focus       int
	editingID   string
	formErr     string
	submitting  bool
	loadingRefs bool
	editoriales []refOption
	autores     []refOption
	categorias  []refOption

	editorialIdx int
	autorIdx     int
	categoriaIdx int

	pendingEditorial string
	pendingAutor     string
	pendingCategoria string

	pendingDelete string
}

func NewRevistasModel(ctx context.Context, services *service.Services, center *notify.Center) *RevistasModel {
	search := textinput.New()
	search.Width = 30
	search.Prompt = "/"

	return &RevistasModel{ctx: ctx, services: services, center: center, search: search}
}

func (m *RevistasModel) Init() tea.Cmd {
	m.mode = revistasModeList
	m.loading = true
	return m.cmdLoad()
}

func (m *RevistasModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case revistasLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.center.Error("Failed to load magazines")
			return m, nil
		}
		m.items = msg.items
		m.clampIdx()
		return m, nil
	case revistasRefsLoadedMsg:
		m.loadingRefs = false
		if msg.err != nil {
			return m, nil
		}
		m.editoriales = msg.editoriales
		m.autores = msg.autores
		m.categorias = withNone(msg.categorias)
		m.editorialIdx = findRef(m.editoriales, m.pendingEditorial)
		m.autorIdx = findRef(m.autores, m.pendingAutor)
		m.categoriaIdx = findRef(m.categorias, m.pendingCategoria)
		return m, nil
	case revistaSavedMsg:
		m.submitting = false
		if msg.err != nil {
			return m, nil
		}
		m.center.Success("Magazine saved")
		m.mode = revistasModeList
		m.loading = true
		return m, m.cmdLoad()
	case revistaDeletedMsg:
		if msg.err != nil {
			return m, nil
		}
		m.center.Success("Magazine deleted")
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
	case revistasModeForm:
		return m.updateForm(msg)
	case revistasModeConfirm:
		return m.updateConfirm(msg)
	}
	return m.updateList(msg)
}

func (m *RevistasModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		return m, m.openForm(nil)
	case "e":
		if item, ok := m.current(); ok {
			return m, m.openForm(&item)
		}
	case "d":
		if item, ok := m.current(); ok {
			m.pendingDelete = item.ID
			m.mode = revistasModeConfirm
		}
	case "c":
		if item, ok := m.current(); ok {
			return m, cmdCopyToClipboard(item.ID)
		}
	case "v":
		if item, ok := m.current(); ok {
			id := item.ID
			titulo := item.Titulo
			return m, func() tea.Msg {
				return NavigateTo{Page: "items", Payload: itemsFilterMsg{
					filter: service.ItemFilter{IDRevista: id},
					label:  titulo,
				}}
			}
		}
	}
	return m, nil
}

func (m *RevistasModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		m.mode = revistasModeList
		if m.pendingDelete == "" {
			return m, nil
		}
		return m, m.cmdDelete(m.pendingDelete)
	case "n", "esc":
		m.mode = revistasModeList
		m.pendingDelete = ""
	}
	return m, nil
}

func (m *RevistasModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.mode = revistasModeList
			return m, nil
		case "tab":
			m.focusNext()
			return m, nil
		case "shift+tab":
			m.focusPrev()
			return m, nil
		case "left", "right":
			if m.focusedInput() == nil {
				m.cycleSelector(keyMsg.String() == "right")
				return m, nil
			}
		case "enter":
			if m.submitting {
				return m, nil
			}
			return m.submitForm()
		}
	}

	if input := m.focusedInput(); input != nil {
		var cmd tea.Cmd
		*input, cmd = input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *RevistasModel) cycleSelector(forward bool) {
	switch m.focus {
	case revistaFieldEditorial:
		m.editorialIdx = cycleIdx(m.editorialIdx, len(m.editoriales), forward)
	case revistaFieldAutor:
		m.autorIdx = cycleIdx(m.autorIdx, len(m.autores), forward)
	case revistaFieldCategoria:
		m.categoriaIdx = cycleIdx(m.categoriaIdx, len(m.categorias), forward)
	}
}

func (m *RevistasModel) submitForm() (tea.Model, tea.Cmd) {
	titulo := strings.TrimSpace(m.inputs[0].Value())
	numero := strings.TrimSpace(m.inputs[1].Value())

	if errMsg := validate.FirstError(
		validate.Required("title", titulo),
	); errMsg != "" {
		m.formErr = errMsg
		return m, nil
	}
	if len(m.editoriales) == 0 {
		m.formErr = "publisher is required"
		return m, nil
	}
	if len(m.autores) == 0 {
		m.formErr = "author is required"
		return m, nil
	}

	idEditorial := m.editoriales[m.editorialIdx].id
	idAutor := m.autores[m.autorIdx].id
	idCategoria := m.categorias[m.categoriaIdx].id

	m.formErr = ""
	m.submitting = true

	if m.editingID == "" {
		payload := models.RevistaCreate{
			Titulo:            titulo,
			NumeroPublicacion: optional(numero),
			IDEditorial:       idEditorial,
			IDAutor:           idAutor,
			IDCategoria:       optional(idCategoria),
		}
		return m, m.cmdCreate(payload)
	}

	payload := models.RevistaUpdate{
		Titulo:            &titulo,
		NumeroPublicacion: optional(numero),
		IDEditorial:       &idEditorial,
		IDAutor:           &idAutor,
		IDCategoria:       optional(idCategoria),
	}
	return m, m.cmdUpdate(m.editingID, payload)
}

func (m *RevistasModel) openForm(item *models.Revista) tea.Cmd {
	inputs := make([]textinput.Model, 2)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
	}
	inputs[0].Focus()

	m.inputs = inputs
	m.focus = revistaFieldTitulo
	m.formErr = ""
	m.submitting = false
	m.editingID = ""
	m.editoriales = nil
	m.autores = nil
	m.categorias = nil
	m.editorialIdx, m.autorIdx, m.categoriaIdx = 0, 0, 0
	m.pendingEditorial, m.pendingAutor, m.pendingCategoria = "", "", ""
	m.loadingRefs = true
	m.mode = revistasModeForm

	if item != nil {
		m.editingID = item.ID
		m.inputs[0].SetValue(item.Titulo)
		if item.NumeroPublicacion != nil {
			m.inputs[1].SetValue(*item.NumeroPublicacion)
		}
		m.pendingEditorial = item.IDEditorial
		m.pendingAutor = item.IDAutor
		if item.IDCategoria != nil {
			m.pendingCategoria = *item.IDCategoria
		}
	}

	return tea.Batch(textinput.Blink, m.cmdLoadRefs())
}

func (m *RevistasModel) focusedInput() *textinput.Model {
	if m.focus > revistaFieldNumero {
		return nil
	}
	return &m.inputs[m.focus]
}

func (m *RevistasModel) focusNext() {
	if input := m.focusedInput(); input != nil {
		input.Blur()
	}
	m.focus = (m.focus + 1) % revistaFieldCount
	if input := m.focusedInput(); input != nil {
		input.Focus()
	}
}

func (m *RevistasModel) focusPrev() {
	if input := m.focusedInput(); input != nil {
		input.Blur()
	}
	m.focus = (m.focus - 1 + revistaFieldCount) % revistaFieldCount
	if input := m.focusedInput(); input != nil {
		input.Focus()
	}
}

func (m *RevistasModel) filtered() []models.Revista {
	needle := strings.ToLower(strings.TrimSpace(m.search.Value()))
	if needle == "" {
		return m.items
	}

	var out []models.Revista
	for _, item := range m.items {
		if strings.Contains(strings.ToLower(item.Titulo), needle) {
			out = append(out, item)
		}
	}
	return out
}

func (m *RevistasModel) current() (models.Revista, bool) {
	items := m.filtered()
	if len(items) == 0 || m.idx < 0 || m.idx >= len(items) {
		return models.Revista{}, false
	}
	return items[m.idx], true
}

func (m *RevistasModel) clampIdx() {
	if n := len(m.filtered()); m.idx >= n {
		m.idx = n - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m *RevistasModel) View() string {
	switch m.mode {
	case revistasModeForm:
		return m.viewForm()
	case revistasModeConfirm:
		return m.viewConfirm()
	}
	return m.viewList()
}

func (m *RevistasModel) viewList() string {
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
			b.WriteString("No magazines\n")
		}
		for i, item := range items {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			b.WriteString(fmt.Sprintf("%s%s  %-35s issue %s\n",
				cursor, shortID(item.ID), fitText(item.Titulo, 35),
				valueOrDash(item.NumeroPublicacion)))
		}
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	return renderPage("MAGAZINES", strings.TrimRight(b.String(), "\n"),
		"n: new │ e: edit │ d: delete │ v: copies │ c: copy id │ /: search │ r: reload │ esc: menu")
}

func (m *RevistasModel) viewForm() string {
	title := "New magazine"
	if m.editingID != "" {
		title = "Edit magazine"
	}

	var b strings.Builder
	b.WriteString("Title     │ [" + m.inputs[0].View() + "]\n")
	b.WriteString("Issue     │ [" + m.inputs[1].View() + "]\n")
	b.WriteString(fmt.Sprintf("Publisher │ %s %s\n",
		selMark(m.focus == revistaFieldEditorial), refSelectorLabel(m.editoriales, m.editorialIdx, m.loadingRefs)))
	b.WriteString(fmt.Sprintf("Author    │ %s %s\n",
		selMark(m.focus == revistaFieldAutor), refSelectorLabel(m.autores, m.autorIdx, m.loadingRefs)))
	b.WriteString(fmt.Sprintf("Category  │ %s %s\n",
		selMark(m.focus == revistaFieldCategoria), refSelectorLabel(m.categorias, m.categoriaIdx, m.loadingRefs)))

	if m.submitting {
		b.WriteString("\n[Saving...]\n")
	} else {
		b.WriteString("\n[Save]\n")
	}
	if m.formErr != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.formErr) + "\n")
	}

	return renderPage(title, strings.TrimRight(b.String(), "\n"),
		"tab: next field │ ←/→: change selection │ enter: save │ esc: cancel")
}

func (m *RevistasModel) viewConfirm() string {
	name := m.pendingDelete
	if item, ok := m.current(); ok {
		name = item.Titulo
	}
	content := "Delete \"" + name + "\"?\n\n"
	content += "y yes    n no"
	return appStyle.Render(overlayBoxStyle.Render(content))
}

func (m *RevistasModel) cmdLoad() tea.Cmd {
	ctx := m.ctx
	svc := m.services.Revistas
	return func() tea.Msg {
		items, err := svc.List(ctx, 0, 0)
		return revistasLoadedMsg{items: items, err: err}
	}
}

func (m *RevistasModel) cmdLoadRefs() tea.Cmd {
	ctx := m.ctx
	services := m.services
	return func() tea.Msg {
		editoriales, err := services.Editoriales.List(ctx, 0, 0)
		if err != nil {
			return revistasRefsLoadedMsg{err: err}
		}
		autores, err := services.Autores.List(ctx, 0, 0)
		if err != nil {
			return revistasRefsLoadedMsg{err: err}
		}
		categorias, err := services.Categorias.List(ctx, 0, 0)
		if err != nil {
			return revistasRefsLoadedMsg{err: err}
		}

		msg := revistasRefsLoadedMsg{}
		for _, e := range editoriales {
			msg.editoriales = append(msg.editoriales, refOption{id: e.ID, label: e.Nombre})
		}
		for _, a := range autores {
			msg.autores = append(msg.autores, refOption{id: a.ID, label: a.Nombre})
		}
		for _, c := range categorias {
			msg.categorias = append(msg.categorias, refOption{id: c.ID, label: c.Nombre})
		}
		return msg
	}
}

func (m *RevistasModel) cmdCreate(payload models.RevistaCreate) tea.Cmd {
	ctx := m.ctx
	svc := m.services.Revistas
	return func() tea.Msg {
		_, err := svc.Create(ctx, payload)
		return revistaSavedMsg{err: err}
	}
}

func (m *RevistasModel) cmdUpdate(id string, payload models.RevistaUpdate) tea.Cmd {
	ctx := m.ctx
	svc := m.services.Revistas
	return func() tea.Msg {
		_, err := svc.Update(ctx, id, payload)
		return revistaSavedMsg{err: err}
	}
}

func (m *RevistasModel) cmdDelete(id string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.Revistas
	return func() tea.Msg {
		return revistaDeletedMsg{err: svc.Delete(ctx, id)}
	}
}
