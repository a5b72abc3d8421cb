package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/federico588/biblioteca-tui/internal/notify"
	"github.com/federico588/biblioteca-tui/internal/service"
	"github.com/federico588/biblioteca-tui/internal/validate"
	"github.com/federico588/biblioteca-tui/models"
)

type prestamosMode int

const (
	prestamosModeList prestamosMode = iota
	prestamosModeForm
	prestamosModeConfirmDelete
	prestamosModeConfirmReturn
)

// Create form field order. Editing a loan cannot change its item or user, so
// the edit form has only the three date/state inputs.
const (
	prestamoFieldItem = iota
	prestamoFieldUsuario
	prestamoFieldFecha
	prestamoFieldCount
)

type prestamosLoadedMsg struct {
	items []models.Prestamo
	err   error
}

// prestamosRefsLoadedMsg carries the available-item and user candidates for
// the create form selectors.
type prestamosRefsLoadedMsg struct {
	items    []refOption
	usuarios []refOption
	err      error
}

type prestamoSavedMsg struct {
	err error
}

type prestamoDeletedMsg struct {
	err error
}

type prestamoReturnedMsg struct {
	err error
}

// PrestamosModel is the loans page. Besides CRUD it can return an active
// loan, which flips the item back to available on the backend.
type PrestamosModel struct {
	ctx      context.Context
	services *service.Services
	center   *notify.Center

	mode      prestamosMode
	items     []models.Prestamo
	idx       int
	loading   bool
	estado    string // "", activo, devuelto
	search    textinput.Model
	searching bool
	status    string

	// create inputs: fecha_devolucion_estimada
	// edit inputs:   fecha_devolucion_estimada, fecha_devolucion_real, estado
	inputs      []textinput.Model
	focus       int
	editingID   string
	formErr     string
	submitting  bool
	loadingRefs bool
	itemOpts    []refOption
	usuarioOpts []refOption
	itemIdx     int
	usuarioIdx  int

	pendingDelete string
	pendingReturn string
}

func NewPrestamosModel(ctx context.Context, services *service.Services, center *notify.Center) *PrestamosModel {
	search := textinput.New()
	search.Width = 36
	search.Prompt = "/"

	return &PrestamosModel{ctx: ctx, services: services, center: center, search: search}
}

func (m *PrestamosModel) Init() tea.Cmd {
	m.mode = prestamosModeList
	m.loading = true
	return m.cmdLoad()
}

func (m *PrestamosModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case prestamosLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.center.Error("Failed to load loans")
			return m, nil
		}
		m.items = msg.items
		m.clampIdx()
		return m, nil
	case prestamosRefsLoadedMsg:
		m.loadingRefs = false
		if msg.err != nil {
			return m, nil
		}
		m.itemOpts = msg.items
		m.usuarioOpts = msg.usuarios
		m.itemIdx = 0
		m.usuarioIdx = 0
		return m, nil
	case prestamoSavedMsg:
		m.submitting = false
		if msg.err != nil {
			return m, nil
		}
		m.center.Success("Loan saved")
		m.mode = prestamosModeList
		m.loading = true
		return m, m.cmdLoad()
	case prestamoDeletedMsg:
		if msg.err != nil {
			return m, nil
		}
		m.center.Success("Loan deleted")
		m.pendingDelete = ""
		m.loading = true
		return m, m.cmdLoad()
	case prestamoReturnedMsg:
		m.pendingReturn = ""
		if msg.err != nil {
			if errors.Is(msg.err, service.ErrNoActor) {
				m.center.Error("Cannot return the loan: no valid acting user in the session")
			}
			return m, nil
		}
		m.center.Success("Loan returned")
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
	case prestamosModeForm:
		return m.updateForm(msg)
	case prestamosModeConfirmDelete, prestamosModeConfirmReturn:
		return m.updateConfirm(msg)
	}
	return m.updateList(msg)
}

func (m *PrestamosModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
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
	case "t":
		switch m.estado {
		case "":
			m.estado = models.PrestamoActivo
		case models.PrestamoActivo:
			m.estado = models.PrestamoDevuelto
		default:
			m.estado = ""
		}
		m.loading = true
		return m, m.cmdLoad()
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
			m.mode = prestamosModeConfirmDelete
		}
	case "p":
		if item, ok := m.current(); ok && item.Estado == models.PrestamoActivo {
			m.pendingReturn = item.ID
			m.mode = prestamosModeConfirmReturn
		}
	case "c":
		if item, ok := m.current(); ok {
			return m, cmdCopyToClipboard(item.ID)
		}
	}
	return m, nil
}

func (m *PrestamosModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	returning := m.mode == prestamosModeConfirmReturn

	switch keyMsg.String() {
	case "y":
		m.mode = prestamosModeList
		if returning {
			if m.pendingReturn == "" {
				return m, nil
			}
			return m, m.cmdDevolver(m.pendingReturn)
		}
		if m.pendingDelete == "" {
			return m, nil
		}
		return m, m.cmdDelete(m.pendingDelete)
	case "n", "esc":
		m.mode = prestamosModeList
		m.pendingDelete = ""
		m.pendingReturn = ""
	}
	return m, nil
}

func (m *PrestamosModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.mode = prestamosModeList
			return m, nil
		case "tab":
			m.focusNextField()
			return m, nil
		case "shift+tab":
			m.focusPrevField()
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

func (m *PrestamosModel) cycleSelector(forward bool) {
	if m.editingID != "" {
		return
	}
	switch m.focus {
	case prestamoFieldItem:
		m.itemIdx = cycleIdx(m.itemIdx, len(m.itemOpts), forward)
	case prestamoFieldUsuario:
		m.usuarioIdx = cycleIdx(m.usuarioIdx, len(m.usuarioOpts), forward)
	}
}

func (m *PrestamosModel) submitForm() (tea.Model, tea.Cmd) {
	if m.editingID == "" {
		fechaEst := strings.TrimSpace(m.inputs[0].Value())

		if errMsg := validate.FirstError(
			validate.Date("due date", fechaEst),
		); errMsg != "" {
			m.formErr = errMsg
			return m, nil
		}
		if len(m.itemOpts) == 0 {
			m.formErr = "no available items to lend"
			return m, nil
		}
		if len(m.usuarioOpts) == 0 {
			m.formErr = "user is required"
			return m, nil
		}

		m.formErr = ""
		m.submitting = true
		payload := models.PrestamoCreate{
			IDItem:                  m.itemOpts[m.itemIdx].id,
			IDUsuario:               m.usuarioOpts[m.usuarioIdx].id,
			FechaDevolucionEstimada: optional(fechaEst),
		}
		return m, m.cmdCreate(payload)
	}

	fechaEst := strings.TrimSpace(m.inputs[0].Value())
	fechaReal := strings.TrimSpace(m.inputs[1].Value())
	estado := strings.TrimSpace(m.inputs[2].Value())

	if errMsg := validate.FirstError(
		validate.Date("due date", fechaEst),
		validate.Date("return date", fechaReal),
	); errMsg != "" {
		m.formErr = errMsg
		return m, nil
	}
	if estado != "" && estado != models.PrestamoActivo && estado != models.PrestamoDevuelto {
		m.formErr = "state must be activo or devuelto"
		return m, nil
	}

	m.formErr = ""
	m.submitting = true
	payload := models.PrestamoUpdate{
		FechaDevolucionEstimada: optional(fechaEst),
		FechaDevolucionReal:     optional(fechaReal),
		Estado:                  optional(estado),
	}
	return m, m.cmdUpdate(m.editingID, payload)
}

func (m *PrestamosModel) openForm(item *models.Prestamo) tea.Cmd {
	m.formErr = ""
	m.submitting = false
	m.editingID = ""
	m.mode = prestamosModeForm

	if item == nil {
		inputs := make([]textinput.Model, 1)
		inputs[0] = textinput.New()
		inputs[0].Width = 40
		inputs[0].Placeholder = "YYYY-MM-DD"

		m.inputs = inputs
		m.focus = prestamoFieldItem
		m.itemOpts = nil
		m.usuarioOpts = nil
		m.itemIdx, m.usuarioIdx = 0, 0
		m.loadingRefs = true
		return m.cmdLoadRefs()
	}

	inputs := make([]textinput.Model, 3)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
	}
	inputs[0].Focus()

	m.inputs = inputs
	m.focus = 0
	m.editingID = item.ID
	m.inputs[0].SetValue(item.FechaDevolucionEstimada)
	m.inputs[0].Placeholder = "YYYY-MM-DD"
	if item.FechaDevolucionReal != nil {
		m.inputs[1].SetValue(*item.FechaDevolucionReal)
	}
	m.inputs[1].Placeholder = "YYYY-MM-DD"
	m.inputs[2].SetValue(item.Estado)
	return textinput.Blink
}

// focusedInput maps the focus index onto the mode-dependent input slice: the
// create form has selectors in the first two slots, the edit form is all
// text inputs.
func (m *PrestamosModel) focusedInput() *textinput.Model {
	if m.editingID != "" {
		return &m.inputs[m.focus]
	}
	if m.focus < prestamoFieldFecha {
		return nil
	}
	return &m.inputs[0]
}

func (m *PrestamosModel) fieldCount() int {
	if m.editingID != "" {
		return len(m.inputs)
	}
	return prestamoFieldCount
}

func (m *PrestamosModel) focusNextField() {
	if input := m.focusedInput(); input != nil {
		input.Blur()
	}
	m.focus = (m.focus + 1) % m.fieldCount()
	if input := m.focusedInput(); input != nil {
		input.Focus()
	}
}

func (m *PrestamosModel) focusPrevField() {
	if input := m.focusedInput(); input != nil {
		input.Blur()
	}
	m.focus = (m.focus - 1 + m.fieldCount()) % m.fieldCount()
	if input := m.focusedInput(); input != nil {
		input.Focus()
	}
}

func (m *PrestamosModel) filtered() []models.Prestamo {
	needle := strings.ToLower(strings.TrimSpace(m.search.Value()))
	if needle == "" {
		return m.items
	}

	var out []models.Prestamo
	for _, item := range m.items {
		haystack := strings.ToLower(item.ID + " " + item.IDItem + " " + item.IDUsuario)
		if strings.Contains(haystack, needle) {
			out = append(out, item)
		}
	}
	return out
}

func (m *PrestamosModel) current() (models.Prestamo, bool) {
	items := m.filtered()
	if len(items) == 0 || m.idx < 0 || m.idx >= len(items) {
		return models.Prestamo{}, false
	}
	return items[m.idx], true
}

func (m *PrestamosModel) clampIdx() {
	if n := len(m.filtered()); m.idx >= n {
		m.idx = n - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m *PrestamosModel) View() string {
	switch m.mode {
	case prestamosModeForm:
		return m.viewForm()
	case prestamosModeConfirmDelete:
		return m.viewConfirm("Delete loan " + shortID(m.pendingDelete) + "?")
	case prestamosModeConfirmReturn:
		return m.viewConfirm("Return loan " + shortID(m.pendingReturn) + "?")
	}
	return m.viewList()
}

func (m *PrestamosModel) viewList() string {
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
			b.WriteString("No loans\n")
		}
		for i, item := range items {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			b.WriteString(fmt.Sprintf("%s%s  item %s  user %s  out %-10s due %-10s %s\n",
				cursor, shortID(item.ID), shortID(item.IDItem), shortID(item.IDUsuario),
				fitText(item.FechaPrestamo, 10), fitText(item.FechaDevolucionEstimada, 10), item.Estado))
		}
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	title := "LOANS"
	if m.estado != "" {
		title = "LOANS · " + m.estado
	}
	return renderPage(title, strings.TrimRight(b.String(), "\n"),
		"n: new │ e: edit │ p: return │ d: delete │ t: state │ c: copy id │ /: search │ r: reload │ esc: menu")
}

func (m *PrestamosModel) viewForm() string {
	var b strings.Builder
	title := "New loan"
	if m.editingID == "" {
		b.WriteString(fmt.Sprintf("Item     │ %s %s\n",
			selMark(m.focus == prestamoFieldItem), refSelectorLabel(m.itemOpts, m.itemIdx, m.loadingRefs)))
		b.WriteString(fmt.Sprintf("User     │ %s %s\n",
			selMark(m.focus == prestamoFieldUsuario), refSelectorLabel(m.usuarioOpts, m.usuarioIdx, m.loadingRefs)))
		b.WriteString("Due date │ [" + m.inputs[0].View() + "]\n")
	} else {
		title = "Edit loan"
		b.WriteString("Due date    │ [" + m.inputs[0].View() + "]\n")
		b.WriteString("Returned on │ [" + m.inputs[1].View() + "]\n")
		b.WriteString("State       │ [" + m.inputs[2].View() + "]\n")
	}

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

func (m *PrestamosModel) viewConfirm(question string) string {
	content := question + "\n\n"
	content += "y yes    n no"
	return appStyle.Render(overlayBoxStyle.Render(content))
}

func (m *PrestamosModel) cmdLoad() tea.Cmd {
	ctx := m.ctx
	svc := m.services.Prestamos
	estado := m.estado
	return func() tea.Msg {
		items, err := svc.List(ctx, 0, 0, service.PrestamoFilter{Estado: estado})
		return prestamosLoadedMsg{items: items, err: err}
	}
}

func (m *PrestamosModel) cmdLoadRefs() tea.Cmd {
	ctx := m.ctx
	services := m.services
	return func() tea.Msg {
		items, err := services.Items.List(ctx, 0, 0, service.ItemFilter{SoloDisponibles: true})
		if err != nil {
			return prestamosRefsLoadedMsg{err: err}
		}
		usuarios, err := services.Usuarios.List(ctx, 0, 0, false)
		if err != nil {
			return prestamosRefsLoadedMsg{err: err}
		}

		msg := prestamosRefsLoadedMsg{}
		for _, it := range items {
			label := itemMaterialLabel(it)
			if it.CodigoBarras != nil && *it.CodigoBarras != "" {
				label += " · " + *it.CodigoBarras
			}
			msg.items = append(msg.items, refOption{id: it.ID, label: label})
		}
		for _, u := range usuarios {
			msg.usuarios = append(msg.usuarios, refOption{id: u.ID, label: u.Nombre})
		}
		return msg
	}
}

func (m *PrestamosModel) cmdCreate(payload models.PrestamoCreate) tea.Cmd {
	ctx := m.ctx
	svc := m.services.Prestamos
	return func() tea.Msg {
		_, err := svc.Create(ctx, payload)
		return prestamoSavedMsg{err: err}
	}
}

func (m *PrestamosModel) cmdUpdate(id string, payload models.PrestamoUpdate) tea.Cmd {
	ctx := m.ctx
	svc := m.services.Prestamos
	return func() tea.Msg {
		_, err := svc.Update(ctx, id, payload)
		return prestamoSavedMsg{err: err}
	}
}

func (m *PrestamosModel) cmdDelete(id string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.Prestamos
	return func() tea.Msg {
		return prestamoDeletedMsg{err: svc.Delete(ctx, id)}
	}
}

func (m *PrestamosModel) cmdDevolver(id string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.Prestamos
	return func() tea.Msg {
		_, err := svc.Devolver(ctx, id)
		return prestamoReturnedMsg{err: err}
	}
}
