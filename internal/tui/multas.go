package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/federico588/biblioteca-tui/internal/notify"
	"github.com/federico588/biblioteca-tui/internal/service"
	"github.com/federico588/biblioteca-tui/models"
)

type multasMode int

const (
	multasModeList multasMode = iota
	multasModeForm
	multasModeConfirmDelete
	multasModeConfirmPay
)

// Create form field order. Editing a fine cannot change its loan or user, so
// the edit form has only the amount and reason inputs.
const (
	multaFieldPrestamo = iota
	multaFieldUsuario
	multaFieldMonto
	multaFieldMotivo
	multaFieldCount
)

type multasLoadedMsg struct {
	items []models.Multa
	err   error
}

// multasRefsLoadedMsg carries the loan and user candidates for the create
// form selectors.
type multasRefsLoadedMsg struct {
	prestamos []refOption
	usuarios  []refOption
	err       error
}

type multaSavedMsg struct {
	err error
}

type multaDeletedMsg struct {
	err error
}

type multaPaidMsg struct {
	err error
}

// MultasModel is the fines page. Paying a fine records the payment date and
// closes it on the backend.
type MultasModel struct {
	ctx      context.Context
	services *service.Services
	center   *notify.Center

	mode      multasMode
	items     []models.Multa
	idx       int
	loading   bool
	estado    string // "", pendiente, pagada
	search    textinput.Model
	searching bool
	status    string

	// create inputs: monto, motivo
	// edit inputs:   monto, motivo
	inputs      []textinput.Model
	focus       int
	editingID   string
	formErr     string
	submitting  bool
	loadingRefs bool

	prestamoOpts []refOption
	usuarioOpts  []refOption
	prestamoIdx  int
	usuarioIdx   int

	pendingDelete string
	pendingPay    string
}

func NewMultasModel(ctx context.Context, services *service.Services, center *notify.Center) *MultasModel {
	search := textinput.New()
	search.Width = 36
	search.Prompt = "/"

	return &MultasModel{ctx: ctx, services: services, center: center, search: search}
}

func (m *MultasModel) Init() tea.Cmd {
	m.mode = multasModeList
	m.loading = true
	return m.cmdLoad()
}

func (m *MultasModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case multasLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.center.Error("Failed to load fines")
			return m, nil
		}
		m.items = msg.items
		m.clampIdx()
		return m, nil
	case multasRefsLoadedMsg:
		m.loadingRefs = false
		if msg.err != nil {
			return m, nil
		}
		m.prestamoOpts = msg.prestamos
		m.usuarioOpts = msg.usuarios
		m.prestamoIdx = 0
		m.usuarioIdx = 0
		return m, nil
	case multaSavedMsg:
		m.submitting = false
		if msg.err != nil {
			return m, nil
		}
		m.center.Success("Fine saved")
		m.mode = multasModeList
		m.loading = true
		return m, m.cmdLoad()
	case multaDeletedMsg:
		if msg.err != nil {
			return m, nil
		}
		m.center.Success("Fine deleted")
		m.pendingDelete = ""
		m.loading = true
		return m, m.cmdLoad()
	case multaPaidMsg:
		m.pendingPay = ""
		if msg.err != nil {
			if errors.Is(msg.err, service.ErrNoActor) {
				m.center.Error("Cannot pay the fine: no valid acting user in the session")
			}
			return m, nil
		}
		m.center.Success("Fine paid")
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
	case multasModeForm:
		return m.updateForm(msg)
	case multasModeConfirmDelete, multasModeConfirmPay:
		return m.updateConfirm(msg)
	}
	return m.updateList(msg)
}

func (m *MultasModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			m.estado = models.MultaPendiente
		case models.MultaPendiente:
			m.estado = models.MultaPagada
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
			m.mode = multasModeConfirmDelete
		}
	case "p":
		if item, ok := m.current(); ok && item.Estado == models.MultaPendiente {
			m.pendingPay = item.ID
			m.mode = multasModeConfirmPay
		}
	case "c":
		if item, ok := m.current(); ok {
			return m, cmdCopyToClipboard(item.ID)
		}
	}
	return m, nil
}

func (m *MultasModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	paying := m.mode == multasModeConfirmPay

	switch keyMsg.String() {
	case "y":
		m.mode = multasModeList
		if paying {
			if m.pendingPay == "" {
				return m, nil
			}
			return m, m.cmdPagar(m.pendingPay)
		}
		if m.pendingDelete == "" {
			return m, nil
		}
		return m, m.cmdDelete(m.pendingDelete)
	case "n", "esc":
		m.mode = multasModeList
		m.pendingDelete = ""
		m.pendingPay = ""
	}
	return m, nil
}

func (m *MultasModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.mode = multasModeList
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

func (m *MultasModel) cycleSelector(forward bool) {
	if m.editingID != "" {
		return
	}
	switch m.focus {
	case multaFieldPrestamo:
		m.prestamoIdx = cycleIdx(m.prestamoIdx, len(m.prestamoOpts), forward)
	case multaFieldUsuario:
		m.usuarioIdx = cycleIdx(m.usuarioIdx, len(m.usuarioOpts), forward)
	}
}

func (m *MultasModel) submitForm() (tea.Model, tea.Cmd) {
	montoRaw := strings.TrimSpace(m.inputs[0].Value())
	motivo := strings.TrimSpace(m.inputs[1].Value())

	if m.editingID == "" {
		if len(m.prestamoOpts) == 0 {
			m.formErr = "loan is required"
			return m, nil
		}
		if len(m.usuarioOpts) == 0 {
			m.formErr = "user is required"
			return m, nil
		}
		if montoRaw == "" {
			m.formErr = "amount is required"
			return m, nil
		}
		monto, err := strconv.ParseFloat(montoRaw, 64)
		if err != nil || monto <= 0 {
			m.formErr = "amount must be a positive number"
			return m, nil
		}

		m.formErr = ""
		m.submitting = true
		payload := models.MultaCreate{
			IDPrestamo: m.prestamoOpts[m.prestamoIdx].id,
			IDUsuario:  m.usuarioOpts[m.usuarioIdx].id,
			Monto:      monto,
			Motivo:     optional(motivo),
		}
		return m, m.cmdCreate(payload)
	}

	payload := models.MultaUpdate{
		Motivo: optional(motivo),
	}
	if montoRaw != "" {
		monto, err := strconv.ParseFloat(montoRaw, 64)
		if err != nil || monto <= 0 {
			m.formErr = "amount must be a positive number"
			return m, nil
		}
		payload.Monto = &monto
	}

	m.formErr = ""
	m.submitting = true
	return m, m.cmdUpdate(m.editingID, payload)
}

func (m *MultasModel) openForm(item *models.Multa) tea.Cmd {
	inputs := make([]textinput.Model, 2)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
	}

	m.inputs = inputs
	m.formErr = ""
	m.submitting = false
	m.editingID = ""
	m.mode = multasModeForm

	if item == nil {
		m.focus = multaFieldPrestamo
		m.prestamoOpts = nil
		m.usuarioOpts = nil
		m.prestamoIdx, m.usuarioIdx = 0, 0
		m.loadingRefs = true
		return m.cmdLoadRefs()
	}

	m.editingID = item.ID
	m.focus = 0
	m.inputs[0].Focus()
	m.inputs[0].SetValue(strconv.FormatFloat(item.Monto, 'f', 2, 64))
	if item.Motivo != nil {
		m.inputs[1].SetValue(*item.Motivo)
	}
	return textinput.Blink
}

func (m *MultasModel) focusedInput() *textinput.Model {
	if m.editingID != "" {
		return &m.inputs[m.focus]
	}
	if m.focus < multaFieldMonto {
		return nil
	}
	return &m.inputs[m.focus-multaFieldMonto]
}

func (m *MultasModel) fieldCount() int {
	if m.editingID != "" {
		return len(m.inputs)
	}
	return multaFieldCount
}

func (m *MultasModel) focusNextField() {
	if input := m.focusedInput(); input != nil {
		input.Blur()
	}
	m.focus = (m.focus + 1) % m.fieldCount()
	if input := m.focusedInput(); input != nil {
		input.Focus()
	}
}

func (m *MultasModel) focusPrevField() {
	if input := m.focusedInput(); input != nil {
		input.Blur()
	}
	m.focus = (m.focus - 1 + m.fieldCount()) % m.fieldCount()
	if input := m.focusedInput(); input != nil {
		input.Focus()
	}
}

func (m *MultasModel) filtered() []models.Multa {
	needle := strings.ToLower(strings.TrimSpace(m.search.Value()))
	if needle == "" {
		return m.items
	}

	var out []models.Multa
	for _, item := range m.items {
		haystack := strings.ToLower(item.ID + " " + item.IDPrestamo + " " + item.IDUsuario)
		if item.Motivo != nil {
			haystack += " " + strings.ToLower(*item.Motivo)
		}
		if strings.Contains(haystack, needle) {
			out = append(out, item)
		}
	}
	return out
}

func (m *MultasModel) current() (models.Multa, bool) {
	items := m.filtered()
	if len(items) == 0 || m.idx < 0 || m.idx >= len(items) {
		return models.Multa{}, false
	}
	return items[m.idx], true
}

func (m *MultasModel) clampIdx() {
	if n := len(m.filtered()); m.idx >= n {
		m.idx = n - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m *MultasModel) View() string {
	switch m.mode {
	case multasModeForm:
		return m.viewForm()
	case multasModeConfirmDelete:
		return m.viewConfirm("Delete fine " + shortID(m.pendingDelete) + "?")
	case multasModeConfirmPay:
		return m.viewConfirm("Mark fine " + shortID(m.pendingPay) + " as paid?")
	}
	return m.viewList()
}

func (m *MultasModel) viewList() string {
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
			b.WriteString("No fines\n")
		}
		for i, item := range items {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			b.WriteString(fmt.Sprintf("%s%s  loan %s  user %s  %8.2f  %-20s %s\n",
				cursor, shortID(item.ID), shortID(item.IDPrestamo), shortID(item.IDUsuario),
				item.Monto, fitText(valueOrDash(item.Motivo), 20), item.Estado))
		}
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	title := "FINES"
	if m.estado != "" {
		title = "FINES · " + m.estado
	}
	return renderPage(title, strings.TrimRight(b.String(), "\n"),
		"n: new │ e: edit │ p: pay │ d: delete │ t: state │ c: copy id │ /: search │ r: reload │ esc: menu")
}

func (m *MultasModel) viewForm() string {
	var b strings.Builder
	title := "New fine"
	if m.editingID == "" {
		b.WriteString(fmt.Sprintf("Loan   │ %s %s\n",
			selMark(m.focus == multaFieldPrestamo), refSelectorLabel(m.prestamoOpts, m.prestamoIdx, m.loadingRefs)))
		b.WriteString(fmt.Sprintf("User   │ %s %s\n",
			selMark(m.focus == multaFieldUsuario), refSelectorLabel(m.usuarioOpts, m.usuarioIdx, m.loadingRefs)))
		b.WriteString("Amount │ [" + m.inputs[0].View() + "]\n")
		b.WriteString("Reason │ [" + m.inputs[1].View() + "]\n")
	} else {
		title = "Edit fine"
		b.WriteString("Amount │ [" + m.inputs[0].View() + "]\n")
		b.WriteString("Reason │ [" + m.inputs[1].View() + "]\n")
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

func (m *MultasModel) viewConfirm(question string) string {
	content := question + "\n\n"
	content += "y yes    n no"
	return appStyle.Render(overlayBoxStyle.Render(content))
}

func (m *MultasModel) cmdLoad() tea.Cmd {
	ctx := m.ctx
	svc := m.services.Multas
	estado := m.estado
	return func() tea.Msg {
		items, err := svc.List(ctx, 0, 0, service.MultaFilter{Estado: estado})
		return multasLoadedMsg{items: items, err: err}
	}
}

func (m *MultasModel) cmdLoadRefs() tea.Cmd {
	ctx := m.ctx
	services := m.services
	return func() tea.Msg {
		prestamos, err := services.Prestamos.List(ctx, 0, 0, service.PrestamoFilter{})
		if err != nil {
			return multasRefsLoadedMsg{err: err}
		}
		usuarios, err := services.Usuarios.List(ctx, 0, 0, false)
		if err != nil {
			return multasRefsLoadedMsg{err: err}
		}

		msg := multasRefsLoadedMsg{}
		for _, p := range prestamos {
			msg.prestamos = append(msg.prestamos, refOption{
				id:    p.ID,
				label: shortID(p.ID) + " · " + p.Estado,
			})
		}
		for _, u := range usuarios {
			msg.usuarios = append(msg.usuarios, refOption{id: u.ID, label: u.Nombre})
		}
		return msg
	}
}

func (m *MultasModel) cmdCreate(payload models.MultaCreate) tea.Cmd {
	ctx := m.ctx
	svc := m.services.Multas
	return func() tea.Msg {
		_, err := svc.Create(ctx, payload)
		return multaSavedMsg{err: err}
	}
}

func (m *MultasModel) cmdUpdate(id string, payload models.MultaUpdate) tea.Cmd {
	ctx := m.ctx
	svc := m.services.Multas
	return func() tea.Msg {
		_, err := svc.Update(ctx, id, payload)
		return multaSavedMsg{err: err}
	}
}

func (m *MultasModel) cmdDelete(id string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.Multas
	return func() tea.Msg {
		return multaDeletedMsg{err: svc.Delete(ctx, id)}
	}
}

func (m *MultasModel) cmdPagar(id string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.Multas
	return func() tea.Msg {
		_, err := svc.Pagar(ctx, id)
		return multaPaidMsg{err: err}
	}
}
