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

type librosMode int

const (
	librosModeList librosMode = iota
	librosModeForm
	librosModeConfirm
)

// Form field order: three text inputs followed by three reference selectors.
const (
	libroFieldTitulo = iota
	libroFieldISBN
	libroFieldPaginas
	libroFieldEditorial
	libroFieldAutor
	libroFieldCategoria
	libroFieldCount
)

type librosLoadedMsg struct {
	items []models.Libro
	err   error
}

// librosRefsLoadedMsg carries the publisher/author/category candidates that
// populate the form selectors.
type librosRefsLoadedMsg struct {
	editoriales []refOption
	autores     []refOption
	categorias  []refOption
	err         error
}

type libroSavedMsg struct {
	err error
}

type libroDeletedMsg struct {
	err error
}

// LibrosModel is the book catalog page. Besides CRUD it can jump to the
// items page pre-filtered to the selected book's physical copies.
type LibrosModel struct {
	ctx      context.Context
	services *service.Services
	center   *notify.Center

	mode      librosMode
	items     []models.Libro
	idx       int
	loading   bool
	search    textinput.Model
	searching bool
	status    string

	// form state
	inputs      []textinput.Model // titulo, isbn, numero_paginas
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

	// reference ids of the item being edited, applied once the candidate
	// lists arrive
	pendingEditorial string
	pendingAutor     string
	pendingCategoria string

	pendingDelete string
}

func NewLibrosModel(ctx context.Context, services *service.Services, center *notify.Center) *LibrosModel {
	search := textinput.New()
	search.Width = 30
	search.Prompt = "/"

	return &LibrosModel{ctx: ctx, services: services, center: center, search: search}
}

func (m *LibrosModel) Init() tea.Cmd {
	m.mode = librosModeList
	m.loading = true
	return m.cmdLoad()
}

func (m *LibrosModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case librosLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.center.Error("Failed to load books")
			return m, nil
		}
		m.items = msg.items
		m.clampIdx()
		return m, nil
	case librosRefsLoadedMsg:
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
	case libroSavedMsg:
		m.submitting = false
		if msg.err != nil {
			return m, nil
		}
		m.center.Success("Book saved")
		m.mode = librosModeList
		m.loading = true
		return m, m.cmdLoad()
	case libroDeletedMsg:
		if msg.err != nil {
			return m, nil
		}
		m.center.Success("Book deleted")
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
	case librosModeForm:
		return m.updateForm(msg)
	case librosModeConfirm:
		return m.updateConfirm(msg)
	}
	return m.updateList(msg)
}

func (m *LibrosModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			m.mode = librosModeConfirm
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
					filter: service.ItemFilter{IDLibro: id},
					label:  titulo,
				}}
			}
		}
	}
	return m, nil
}

func (m *LibrosModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		m.mode = librosModeList
		if m.pendingDelete == "" {
			return m, nil
		}
		return m, m.cmdDelete(m.pendingDelete)
	case "n", "esc":
		m.mode = librosModeList
		m.pendingDelete = ""
	}
	return m, nil
}

func (m *LibrosModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.mode = librosModeList
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

func (m *LibrosModel) cycleSelector(forward bool) {
	switch m.focus {
	case libroFieldEditorial:
		m.editorialIdx = cycleIdx(m.editorialIdx, len(m.editoriales), forward)
	case libroFieldAutor:
		m.autorIdx = cycleIdx(m.autorIdx, len(m.autores), forward)
	case libroFieldCategoria:
		m.categoriaIdx = cycleIdx(m.categoriaIdx, len(m.categorias), forward)
	}
}

func (m *LibrosModel) submitForm() (tea.Model, tea.Cmd) {
	titulo := strings.TrimSpace(m.inputs[0].Value())
	isbn := strings.TrimSpace(m.inputs[1].Value())
	paginas := strings.TrimSpace(m.inputs[2].Value())

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
		payload := models.LibroCreate{
			Titulo:        titulo,
			ISBN:          optional(isbn),
			NumeroPaginas: optional(paginas),
			IDEditorial:   idEditorial,
			IDAutor:       idAutor,
			IDCategoria:   optional(idCategoria),
		}
		return m, m.cmdCreate(payload)
	}

	payload := models.LibroUpdate{
		Titulo:        &titulo,
		ISBN:          optional(isbn),
		NumeroPaginas: optional(paginas),
		IDEditorial:   &idEditorial,
		IDAutor:       &idAutor,
		IDCategoria:   optional(idCategoria),
	}
	return m, m.cmdUpdate(m.editingID, payload)
}

// openForm resets the form and kicks off the reference-list load. The
// selectors show "loading..." until the candidates arrive.
func (m *LibrosModel) openForm(item *models.Libro) tea.Cmd {
	inputs := make([]textinput.Model, 3)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
	}
	inputs[0].Focus()

	m.inputs = inputs
	m.focus = libroFieldTitulo
	m.formErr = ""
	m.submitting = false
	m.editingID = ""
	m.editoriales = nil
	m.autores = nil
	m.categorias = nil
	m.editorialIdx, m.autorIdx, m.categoriaIdx = 0, 0, 0
	m.pendingEditorial, m.pendingAutor, m.pendingCategoria = "", "", ""
	m.loadingRefs = true
	m.mode = librosModeForm

	if item != nil {
		m.editingID = item.ID
		m.inputs[0].SetValue(item.Titulo)
		if item.ISBN != nil {
			m.inputs[1].SetValue(*item.ISBN)
		}
		if item.NumeroPaginas != nil {
			m.inputs[2].SetValue(*item.NumeroPaginas)
		}
		m.pendingEditorial = item.IDEditorial
		m.pendingAutor = item.IDAutor
		if item.IDCategoria != nil {
			m.pendingCategoria = *item.IDCategoria
		}
	}

	return tea.Batch(textinput.Blink, m.cmdLoadRefs())
}

func (m *LibrosModel) focusedInput() *textinput.Model {
	if m.focus > libroFieldPaginas {
		return nil
	}
	return &m.inputs[m.focus]
}

func (m *LibrosModel) focusNext() {
	if input := m.focusedInput(); input != nil {
		input.Blur()
	}
	m.focus = (m.focus + 1) % libroFieldCount
	if input := m.focusedInput(); input != nil {
		input.Focus()
	}
}

func (m *LibrosModel) focusPrev() {
	if input := m.focusedInput(); input != nil {
		input.Blur()
	}
	m.focus = (m.focus - 1 + libroFieldCount) % libroFieldCount
	if input := m.focusedInput(); input != nil {
		input.Focus()
	}
}

func (m *LibrosModel) filtered() []models.Libro {
	needle := strings.ToLower(strings.TrimSpace(m.search.Value()))
	if needle == "" {
		return m.items
	}

	var out []models.Libro
	for _, item := range m.items {
		haystack := strings.ToLower(item.Titulo)
		if item.ISBN != nil {
			haystack += " " + strings.ToLower(*item.ISBN)
		}
		if strings.Contains(haystack, needle) {
			out = append(out, item)
		}
	}
	return out
}

func (m *LibrosModel) current() (models.Libro, bool) {
	items := m.filtered()
	if len(items) == 0 || m.idx < 0 || m.idx >= len(items) {
		return models.Libro{}, false
	}
	return items[m.idx], true
}

func (m *LibrosModel) clampIdx() {
	if n := len(m.filtered()); m.idx >= n {
		m.idx = n - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m *LibrosModel) View() string {
	switch m.mode {
	case librosModeForm:
		return m.viewForm()
	case librosModeConfirm:
		return m.viewConfirm()
	}
	return m.viewList()
}

func (m *LibrosModel) viewList() string {
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
			b.WriteString("No books\n")
		}
		for i, item := range items {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			b.WriteString(fmt.Sprintf("%s%s  %-35s isbn %-15s pages %s\n",
				cursor, shortID(item.ID), fitText(item.Titulo, 35),
				valueOrDash(item.ISBN), valueOrDash(item.NumeroPaginas)))
		}
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	return renderPage("BOOKS", strings.TrimRight(b.String(), "\n"),
		"n: new │ e: edit │ d: delete │ v: copies │ c: copy id │ /: search │ r: reload │ esc: menu")
}

func (m *LibrosModel) viewForm() string {
	title := "New book"
	if m.editingID != "" {
		title = "Edit book"
	}

	var b strings.Builder
	b.WriteString("Title     │ [" + m.inputs[0].View() + "]\n")
	b.WriteString("ISBN      │ [" + m.inputs[1].View() + "]\n")
	b.WriteString("Pages     │ [" + m.inputs[2].View() + "]\n")
	b.WriteString(fmt.Sprintf("Publisher │ %s %s\n",
		selMark(m.focus == libroFieldEditorial), refSelectorLabel(m.editoriales, m.editorialIdx, m.loadingRefs)))
	b.WriteString(fmt.Sprintf("Author    │ %s %s\n",
		selMark(m.focus == libroFieldAutor), refSelectorLabel(m.autores, m.autorIdx, m.loadingRefs)))
	b.WriteString(fmt.Sprintf("Category  │ %s %s\n",
		selMark(m.focus == libroFieldCategoria), refSelectorLabel(m.categorias, m.categoriaIdx, m.loadingRefs)))

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

func (m *LibrosModel) viewConfirm() string {
	name := m.pendingDelete
	if item, ok := m.current(); ok {
		name = item.Titulo
	}
	content := "Delete \"" + name + "\"?\n\n"
	content += "y yes    n no"
	return appStyle.Render(overlayBoxStyle.Render(content))
}

func (m *LibrosModel) cmdLoad() tea.Cmd {
	ctx := m.ctx
	svc := m.services.Libros
	return func() tea.Msg {
		items, err := svc.List(ctx, 0, 0)
		return librosLoadedMsg{items: items, err: err}
	}
}

func (m *LibrosModel) cmdLoadRefs() tea.Cmd {
	ctx := m.ctx
	services := m.services
	return func() tea.Msg {
		editoriales, err := services.Editoriales.List(ctx, 0, 0)
		if err != nil {
			return librosRefsLoadedMsg{err: err}
		}
		autores, err := services.Autores.List(ctx, 0, 0)
		if err != nil {
			return librosRefsLoadedMsg{err: err}
		}
		categorias, err := services.Categorias.List(ctx, 0, 0)
		if err != nil {
			return librosRefsLoadedMsg{err: err}
		}

		msg := librosRefsLoadedMsg{}
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

func (m *LibrosModel) cmdCreate(payload models.LibroCreate) tea.Cmd {
	ctx := m.ctx
	svc := m.services.Libros
	return func() tea.Msg {
		_, err := svc.Create(ctx, payload)
		return libroSavedMsg{err: err}
	}
}

func (m *LibrosModel) cmdUpdate(id string, payload models.LibroUpdate) tea.Cmd {
	ctx := m.ctx
	svc := m.services.Libros
	return func() tea.Msg {
		_, err := svc.Update(ctx, id, payload)
		return libroSavedMsg{err: err}
	}
}

func (m *LibrosModel) cmdDelete(id string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.Libros
	return func() tea.Msg {
		return libroDeletedMsg{err: svc.Delete(ctx, id)}
	}
}
