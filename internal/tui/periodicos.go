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

type periodicosMode int

const (
	periodicosModeList periodicosMode = iota
	periodicosModeForm
	periodicosModeConfirm
)

const (
	periodicoFieldTitulo = iota
	periodicoFieldFecha
	periodicoFieldEditorial
	periodicoFieldAutor
	periodicoFieldCategoria
	periodicoFieldCount
)

type periodicosLoadedMsg struct {
	items []models.Periodico
	err   error
}

type periodicosRefsLoadedMsg struct {
	editoriales []refOption
	autores     []refOption
	categorias  []refOption
	err         error
}

type periodicoSavedMsg struct {
	err error
}

type periodicoDeletedMsg struct {
	err error
}

// PeriodicosModel is the newspaper catalog page.
type PeriodicosModel struct {
	ctx      context.Context
	services *service.Services
	center   *notify.Center

	mode      periodicosMode
	items     []models.Periodico
	idx       int
	loading   bool
	search    textinput.Model
	searching bool
	status    string

	// form state
	inputs      []textinput.Model // titulo, fecha_publicacion
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

func NewPeriodicosModel(ctx context.Context, services *service.Services, center *notify.Center) *PeriodicosModel {
	search := textinput.New()
	search.Width = 30
	search.Prompt = "/"

	return &PeriodicosModel{ctx: ctx, services: services, center: center, search: search}
}

func (m *PeriodicosModel) Init() tea.Cmd {
	m.mode = periodicosModeList
	m.loading = true
	return m.cmdLoad()
}

func (m *PeriodicosModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case periodicosLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.center.Error("Failed to load newspapers")
			return m, nil
		}
		m.items = msg.items
		m.clampIdx()
		return m, nil
	case periodicosRefsLoadedMsg:
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
	case periodicoSavedMsg:
		m.submitting = false
		if msg.err != nil {
			return m, nil
		}
		m.center.Success("Newspaper saved")
		m.mode = periodicosModeList
		m.loading = true
		return m, m.cmdLoad()
	case periodicoDeletedMsg:
		if msg.err != nil {
			return m, nil
		}
		m.center.Success("Newspaper deleted")
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
	case periodicosModeForm:
		return m.updateForm(msg)
	case periodicosModeConfirm:
		return m.updateConfirm(msg)
	}
	return m.updateList(msg)
}

func (m *PeriodicosModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			m.mode = periodicosModeConfirm
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
					filter: service.ItemFilter{IDPeriodico: id},
					label:  titulo,
				}}
			}
		}
	}
	return m, nil
}

func (m *PeriodicosModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		m.mode = periodicosModeList
		if m.pendingDelete == "" {
			return m, nil
		}
		return m, m.cmdDelete(m.pendingDelete)
	case "n", "esc":
		m.mode = periodicosModeList
		m.pendingDelete = ""
	}
	return m, nil
}

func (m *PeriodicosModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.mode = periodicosModeList
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

func (m *PeriodicosModel) cycleSelector(forward bool) {
	switch m.focus {
	case periodicoFieldEditorial:
		m.editorialIdx = cycleIdx(m.editorialIdx, len(m.editoriales), forward)
	case periodicoFieldAutor:
		m.autorIdx = cycleIdx(m.autorIdx, len(m.autores), forward)
	case periodicoFieldCategoria:
		m.categoriaIdx = cycleIdx(m.categoriaIdx, len(m.categorias), forward)
	}
}

func (m *PeriodicosModel) submitForm() (tea.Model, tea.Cmd) {
	titulo := strings.TrimSpace(m.inputs[0].Value())
	fecha := strings.TrimSpace(m.inputs[1].Value())

	if errMsg := validate.FirstError(
		validate.Required("title", titulo),
		validate.Required("publication date", fecha),
		validate.Date("publication date", fecha),
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
		payload := models.PeriodicoCreate{
			Titulo:           titulo,
			FechaPublicacion: fecha,
			IDEditorial:      idEditorial,
			IDAutor:          idAutor,
			IDCategoria:      optional(idCategoria),
		}
		return m, m.cmdCreate(payload)
	}

	payload := models.PeriodicoUpdate{
		Titulo:           &titulo,
		FechaPublicacion: &fecha,
		IDEditorial:      &idEditorial,
		IDAutor:          &idAutor,
		IDCategoria:      optional(idCategoria),
	}
	return m, m.cmdUpdate(m.editingID, payload)
}

func (m *PeriodicosModel) openForm(item *models.Periodico) tea.Cmd {
	inputs := make([]textinput.Model, 2)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
	}
	inputs[1].Placeholder = "YYYY-MM-DD"
	inputs[0].Focus()

	m.inputs = inputs
	m.focus = periodicoFieldTitulo
	m.formErr = ""
	m.submitting = false
	m.editingID = ""
	m.editoriales = nil
	m.autores = nil
	m.categorias = nil
	m.editorialIdx, m.autorIdx, m.categoriaIdx = 0, 0, 0
	m.pendingEditorial, m.pendingAutor, m.pendingCategoria = "", "", ""
	m.loadingRefs = true
	m.mode = periodicosModeForm

	if item != nil {
		m.editingID = item.ID
		m.inputs[0].SetValue(item.Titulo)
		m.inputs[1].SetValue(item.FechaPublicacion)
		m.pendingEditorial = item.IDEditorial
		m.pendingAutor = item.IDAutor
		if item.IDCategoria != nil {
			m.pendingCategoria = *item.IDCategoria
		}
	}

	return tea.Batch(textinput.Blink, m.cmdLoadRefs())
}

func (m *PeriodicosModel) focusedInput() *textinput.Model {
	if m.focus > periodicoFieldFecha {
		return nil
	}
	return &m.inputs[m.focus]
}

func (m *PeriodicosModel) focusNext() {
	if input := m.focusedInput(); input != nil {
		input.Blur()
	}
	m.focus = (m.focus + 1) % periodicoFieldCount
	if input := m.focusedInput(); input != nil {
		input.Focus()
	}
}

func (m *PeriodicosModel) focusPrev() {
	if input := m.focusedInput(); input != nil {
		input.Blur()
	}
	m.focus = (m.focus - 1 + periodicoFieldCount) % periodicoFieldCount
	if input := m.focusedInput(); input != nil {
		input.Focus()
	}
}

func (m *PeriodicosModel) filtered() []models.Periodico {
	needle := strings.ToLower(strings.TrimSpace(m.search.Value()))
	if needle == "" {
		return m.items
	}

	var out []models.Periodico
	for _, item := range m.items {
		if strings.Contains(strings.ToLower(item.Titulo), needle) {
			out = append(out, item)
		}
	}
	return out
}

func (m *PeriodicosModel) current() (models.Periodico, bool) {
	items := m.filtered()
	if len(items) == 0 || m.idx < 0 || m.idx >= len(items) {
		return models.Periodico{}, false
	}
	return items[m.idx], true
}

func (m *PeriodicosModel) clampIdx() {
	if n := len(m.filtered()); m.idx >= n {
		m.idx = n - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m *PeriodicosModel) View() string {
	switch m.mode {
	case periodicosModeForm:
		return m.viewForm()
	case periodicosModeConfirm:
		return m.viewConfirm()
	}
	return m.viewList()
}

func (m *PeriodicosModel) viewList() string {
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
			b.WriteString("No newspapers\n")
		}
		for i, item := range items {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			b.WriteString(fmt.Sprintf("%s%s  %-35s %s\n",
				cursor, shortID(item.ID), fitText(item.Titulo, 35), item.FechaPublicacion))
		}
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	return renderPage("NEWSPAPERS", strings.TrimRight(b.String(), "\n"),
		"n: new │ e: edit │ d: delete │ v: copies │ c: copy id │ /: search │ r: reload │ esc: menu")
}

func (m *PeriodicosModel) viewForm() string {
	title := "New newspaper"
	if m.editingID != "" {
		title = "Edit newspaper"
	}

	var b strings.Builder
	b.WriteString("Title     │ [" + m.inputs[0].View() + "]\n")
	b.WriteString("Published │ [" + m.inputs[1].View() + "]\n")
	b.WriteString(fmt.Sprintf("Publisher │ %s %s\n",
		selMark(m.focus == periodicoFieldEditorial), refSelectorLabel(m.editoriales, m.editorialIdx, m.loadingRefs)))
	b.WriteString(fmt.Sprintf("Author    │ %s %s\n",
		selMark(m.focus == periodicoFieldAutor), refSelectorLabel(m.autores, m.autorIdx, m.loadingRefs)))
	b.WriteString(fmt.Sprintf("Category  │ %s %s\n",
		selMark(m.focus == periodicoFieldCategoria), refSelectorLabel(m.categorias, m.categoriaIdx, m.loadingRefs)))

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

func (m *PeriodicosModel) viewConfirm() string {
	name := m.pendingDelete
	if item, ok := m.current(); ok {
		name = item.Titulo
	}
	content := "Delete \"" + name + "\"?\n\n"
	content += "y yes    n no"
	return appStyle.Render(overlayBoxStyle.Render(content))
}

func (m *PeriodicosModel) cmdLoad() tea.Cmd {
	ctx := m.ctx
	svc := m.services.Periodicos
	return func() tea.Msg {
		items, err := svc.List(ctx, 0, 0)
		return periodicosLoadedMsg{items: items, err: err}
	}
}

func (m *PeriodicosModel) cmdLoadRefs() tea.Cmd {
	ctx := m.ctx
	services := m.services
	return func() tea.Msg {
		editoriales, err := services.Editoriales.List(ctx, 0, 0)
		if err != nil {
			return periodicosRefsLoadedMsg{err: err}
		}
		autores, err := services.Autores.List(ctx, 0, 0)
		if err != nil {
			return periodicosRefsLoadedMsg{err: err}
		}
		categorias, err := services.Categorias.List(ctx, 0, 0)
		if err != nil {
			return periodicosRefsLoadedMsg{err: err}
		}

		msg := periodicosRefsLoadedMsg{}
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

func (m *PeriodicosModel) cmdCreate(payload models.PeriodicoCreate) tea.Cmd {
	ctx := m.ctx
	svc := m.services.Periodicos
	return func() tea.Msg {
		_, err := svc.Create(ctx, payload)
		return periodicoSavedMsg{err: err}
	}
}

func (m *PeriodicosModel) cmdUpdate(id string, payload models.PeriodicoUpdate) tea.Cmd {
	ctx := m.ctx
	svc := m.services.Periodicos
	return func() tea.Msg {
		_, err := svc.Update(ctx, id, payload)
		return periodicoSavedMsg{err: err}
	}
}

func (m *PeriodicosModel) cmdDelete(id string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.Periodicos
	return func() tea.Msg {
		return periodicoDeletedMsg{err: svc.Delete(ctx, id)}
	}
}
