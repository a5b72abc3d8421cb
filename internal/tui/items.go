package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/federico588/biblioteca-tui/internal/notify"
	"github.com/federico588/biblioteca-tui/internal/service"
	"github.com/federico588/biblioteca-tui/models"
)

type itemsMode int

const (
	itemsModeList itemsMode = iota
	itemsModeForm
	itemsModeConfirm
)

// Form field order. The two selector rows exist only when creating; editing
// an item cannot change its material.
const (
	itemFieldTipo = iota
	itemFieldMaterial
	itemFieldBarcode
	itemFieldLocation
	itemFieldCondition
	itemFieldNotes
	itemFieldCount
)

// itemsFilterMsg arrives as a NavigateTo payload from the material pages and
// pre-filters the list to one material's copies.
type itemsFilterMsg struct {
	filter service.ItemFilter
	label  string
}

// itemsLoadedMsg carries the load generation that issued it. Navigating in
// with a filter payload fires a second load right after Init's unfiltered
// one; the generation lets Update drop whichever reply is stale.
type itemsLoadedMsg struct {
	gen   int
	items []models.Item
	err   error
}

type itemSavedMsg struct {
	err error
}

type itemDeletedMsg struct {
	err error
}

type materialOption struct {
	id    string
	label string
}

type materialsLoadedMsg struct {
	tipo    models.MaterialType
	options []materialOption
	err     error
}

// ItemsModel is the physical-copies page. The create form picks a material
// type first and reloads the material candidates whenever the type changes.
type ItemsModel struct {
	ctx      context.Context
	services *service.Services
	center   *notify.Center

	mode            itemsMode
	items           []models.Item
	idx             int
	gen             int
	loading         bool
	soloDisponibles bool
	filter          service.ItemFilter
	filterLabel     string
	status          string

	// form state
	focus            int
	formTipo         models.MaterialType
	materials        []materialOption
	materialIdx      int
	loadingMaterials bool
	inputs           []textinput.Model // barcode, location, condition, notes
	editingID        string
	formDisponible   bool
	formErr          string
	submitting       bool

	pendingDelete string
}

func NewItemsModel(ctx context.Context, services *service.Services, center *notify.Center) *ItemsModel {
	return &ItemsModel{ctx: ctx, services: services, center: center}
}

func (m *ItemsModel) Init() tea.Cmd {
	m.mode = itemsModeList
	m.loading = true
	return m.cmdLoad()
}

func (m *ItemsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case itemsFilterMsg:
		m.filter = msg.filter
		m.filterLabel = msg.label
		m.loading = true
		return m, m.cmdLoad()
	case itemsLoadedMsg:
		// Ignore replies from loads that have since been superseded.
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.center.Error("Failed to load items")
			return m, nil
		}
		m.items = msg.items
		m.clampIdx()
		return m, nil
	case materialsLoadedMsg:
		// Ignore a late reply for a type the user already moved past.
		if msg.tipo != m.formTipo {
			return m, nil
		}
		m.loadingMaterials = false
		if msg.err != nil {
			return m, nil
		}
		m.materials = msg.options
		m.materialIdx = 0
		return m, nil
	case itemSavedMsg:
		m.submitting = false
		if msg.err != nil {
			return m, nil
		}
		m.center.Success("Item saved")
		m.mode = itemsModeList
		m.loading = true
		return m, m.cmdLoad()
	case itemDeletedMsg:
		if msg.err != nil {
			return m, nil
		}
		m.center.Success("Item deleted")
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
	case itemsModeForm:
		return m.updateForm(msg)
	case itemsModeConfirm:
		return m.updateConfirm(msg)
	}
	return m.updateList(msg)
}

func (m *ItemsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
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
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case "t":
		m.soloDisponibles = !m.soloDisponibles
		m.loading = true
		return m, m.cmdLoad()
	case "x":
		if m.filterLabel != "" {
			m.filter = service.ItemFilter{}
			m.filterLabel = ""
			m.loading = true
			return m, m.cmdLoad()
		}
	case "r":
		m.loading = true
		return m, m.cmdLoad()
	case "n":
		return m.openCreateForm()
	case "e":
		if item, ok := m.current(); ok {
			m.openEditForm(item)
			return m, textinput.Blink
		}
	case "d":
		if item, ok := m.current(); ok {
			m.pendingDelete = item.ID
			m.mode = itemsModeConfirm
		}
	case "c":
		if item, ok := m.current(); ok {
			return m, cmdCopyToClipboard(item.ID)
		}
	case "b":
		if item, ok := m.current(); ok && item.CodigoBarras != nil && *item.CodigoBarras != "" {
			return m, cmdCopyToClipboard(*item.CodigoBarras)
		}
	}
	return m, nil
}

func (m *ItemsModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		m.mode = itemsModeList
		if m.pendingDelete == "" {
			return m, nil
		}
		return m, m.cmdDelete(m.pendingDelete)
	case "n", "esc":
		m.mode = itemsModeList
		m.pendingDelete = ""
	}
	return m, nil
}

func (m *ItemsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.mode = itemsModeList
			return m, nil
		case "tab":
			m.focusNextField()
			return m, nil
		case "shift+tab":
			m.focusPrevField()
			return m, nil
		case "ctrl+v":
			m.formDisponible = !m.formDisponible
			return m, nil
		case "left", "right":
			if m.focusedInput() == nil {
				return m.cycleSelector(keyMsg.String() == "right")
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

// cycleSelector handles left/right on the two selector rows: the material
// type cycle triggers a reload of the material candidates.
func (m *ItemsModel) cycleSelector(forward bool) (tea.Model, tea.Cmd) {
	switch m.focus {
	case itemFieldTipo:
		order := []models.MaterialType{models.MaterialLibro, models.MaterialRevista, models.MaterialPeriodico}
		idx := 0
		for i, t := range order {
			if t == m.formTipo {
				idx = i
			}
		}
		if forward {
			idx = (idx + 1) % len(order)
		} else {
			idx = (idx - 1 + len(order)) % len(order)
		}
		m.formTipo = order[idx]
		m.materials = nil
		m.materialIdx = 0
		m.loadingMaterials = true
		return m, m.cmdLoadMaterials(m.formTipo)
	case itemFieldMaterial:
		if len(m.materials) == 0 {
			return m, nil
		}
		if forward {
			m.materialIdx = (m.materialIdx + 1) % len(m.materials)
		} else {
			m.materialIdx = (m.materialIdx - 1 + len(m.materials)) % len(m.materials)
		}
	}
	return m, nil
}

func (m *ItemsModel) submitForm() (tea.Model, tea.Cmd) {
	barcode := strings.TrimSpace(m.inputs[0].Value())
	location := strings.TrimSpace(m.inputs[1].Value())
	condition := strings.TrimSpace(m.inputs[2].Value())
	notes := strings.TrimSpace(m.inputs[3].Value())

	if condition == "" {
		condition = "bueno"
	}

	m.formErr = ""
	m.submitting = true

	if m.editingID == "" {
		if m.materialIdx >= len(m.materials) {
			m.submitting = false
			m.formErr = "material is required"
			return m, nil
		}
		materialID := m.materials[m.materialIdx].id

		payload := models.ItemCreate{
			CodigoBarras:  optional(barcode),
			Ubicacion:     optional(location),
			EstadoFisico:  condition,
			Disponible:    m.formDisponible,
			Observaciones: optional(notes),
		}
		switch m.formTipo {
		case models.MaterialLibro:
			payload.IDLibro = &materialID
		case models.MaterialRevista:
			payload.IDRevista = &materialID
		case models.MaterialPeriodico:
			payload.IDPeriodico = &materialID
		}
		return m, m.cmdCreate(payload)
	}

	payload := models.ItemUpdate{
		CodigoBarras:  optional(barcode),
		Ubicacion:     optional(location),
		EstadoFisico:  &condition,
		Disponible:    &m.formDisponible,
		Observaciones: optional(notes),
	}
	return m, m.cmdUpdate(m.editingID, payload)
}

func (m *ItemsModel) openCreateForm() (tea.Model, tea.Cmd) {
	m.newFormInputs()
	m.editingID = ""
	m.formTipo = models.MaterialLibro
	m.materials = nil
	m.materialIdx = 0
	m.loadingMaterials = true
	m.formDisponible = true
	m.focus = itemFieldTipo
	m.mode = itemsModeForm
	return m, m.cmdLoadMaterials(m.formTipo)
}

func (m *ItemsModel) openEditForm(item models.Item) {
	m.newFormInputs()
	m.editingID = item.ID
	m.formTipo = item.TipoItem
	m.formDisponible = item.Disponible
	m.focus = itemFieldBarcode
	m.inputs[0].Focus()
	m.mode = itemsModeForm

	if item.CodigoBarras != nil {
		m.inputs[0].SetValue(*item.CodigoBarras)
	}
	if item.Ubicacion != nil {
		m.inputs[1].SetValue(*item.Ubicacion)
	}
	m.inputs[2].SetValue(item.EstadoFisico)
	if item.Observaciones != nil {
		m.inputs[3].SetValue(*item.Observaciones)
	}
}

func (m *ItemsModel) newFormInputs() {
	inputs := make([]textinput.Model, 4)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
	}
	inputs[2].Placeholder = "bueno"

	m.inputs = inputs
	m.formErr = ""
	m.submitting = false
}

// firstField is the first focusable form field: the type selector when
// creating, the barcode input when editing.
func (m *ItemsModel) firstField() int {
	if m.editingID == "" {
		return itemFieldTipo
	}
	return itemFieldBarcode
}

func (m *ItemsModel) focusNextField() {
	m.blurFocused()
	m.focus++
	if m.focus >= itemFieldCount {
		m.focus = m.firstField()
	}
	m.focusCurrent()
}

func (m *ItemsModel) focusPrevField() {
	m.blurFocused()
	m.focus--
	if m.focus < m.firstField() {
		m.focus = itemFieldCount - 1
	}
	m.focusCurrent()
}

func (m *ItemsModel) focusedInput() *textinput.Model {
	if m.focus < itemFieldBarcode {
		return nil
	}
	return &m.inputs[m.focus-itemFieldBarcode]
}

func (m *ItemsModel) blurFocused() {
	if input := m.focusedInput(); input != nil {
		input.Blur()
	}
}

func (m *ItemsModel) focusCurrent() {
	if input := m.focusedInput(); input != nil {
		input.Focus()
	}
}

func (m *ItemsModel) current() (models.Item, bool) {
	if len(m.items) == 0 || m.idx < 0 || m.idx >= len(m.items) {
		return models.Item{}, false
	}
	return m.items[m.idx], true
}

func (m *ItemsModel) clampIdx() {
	if m.idx >= len(m.items) {
		m.idx = len(m.items) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m *ItemsModel) View() string {
	switch m.mode {
	case itemsModeForm:
		return m.viewForm()
	case itemsModeConfirm:
		return m.viewConfirm()
	}
	return m.viewList()
}

func itemMaterialLabel(item models.Item) string {
	if item.Material != nil && item.Material.Titulo != "" {
		return item.Material.Titulo
	}
	return shortID(item.MaterialID())
}

func (m *ItemsModel) viewList() string {
	var b strings.Builder

	if m.loading {
		b.WriteString("Loading...\n")
	} else {
		if len(m.items) == 0 {
			b.WriteString("No items\n")
		}
		for i, item := range m.items {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			b.WriteString(fmt.Sprintf("%s%s  %-9s %-25s barcode %-15s %-12s available %s\n",
				cursor, shortID(item.ID), item.TipoItem, fitText(itemMaterialLabel(item), 25),
				valueOrDash(item.CodigoBarras), item.EstadoFisico, checkbox(item.Disponible)))
		}
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	title := "ITEMS"
	if m.filterLabel != "" {
		title = "ITEMS · " + fitText(m.filterLabel, 30)
	}
	if m.soloDisponibles {
		title += " (available only)"
	}
	return renderPage(title, strings.TrimRight(b.String(), "\n"),
		"n: new │ e: edit │ d: delete │ t: available │ x: clear filter │ c: copy id │ b: copy barcode │ r: reload │ esc: menu")
}

func (m *ItemsModel) selectorMarker(field int) string {
	if m.focus == field {
		return "‹›"
	}
	return "  "
}

func (m *ItemsModel) viewForm() string {
	title := "New item"
	if m.editingID != "" {
		title = "Edit item"
	}

	var b strings.Builder

	if m.editingID == "" {
		b.WriteString(fmt.Sprintf("Type      │ %s %s\n", m.selectorMarker(itemFieldTipo), m.formTipo))
		materialLabel := "-"
		switch {
		case m.loadingMaterials:
			materialLabel = "loading..."
		case len(m.materials) == 0:
			materialLabel = "no materials of this type"
		case m.materialIdx < len(m.materials):
			materialLabel = fmt.Sprintf("%s (%d/%d)",
				fitText(m.materials[m.materialIdx].label, 30), m.materialIdx+1, len(m.materials))
		}
		b.WriteString(fmt.Sprintf("Material  │ %s %s\n", m.selectorMarker(itemFieldMaterial), materialLabel))
	} else {
		b.WriteString(fmt.Sprintf("Type      │ %s (fixed)\n", m.formTipo))
	}

	b.WriteString("Barcode   │ [" + m.inputs[0].View() + "]\n")
	b.WriteString("Location  │ [" + m.inputs[1].View() + "]\n")
	b.WriteString("Condition │ [" + m.inputs[2].View() + "]\n")
	b.WriteString("Notes     │ [" + m.inputs[3].View() + "]\n")
	b.WriteString("Available │ " + checkbox(m.formDisponible) + " (ctrl+v)\n")

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

func (m *ItemsModel) viewConfirm() string {
	name := m.pendingDelete
	if item, ok := m.current(); ok {
		name = itemMaterialLabel(item)
	}
	content := "Delete item for \"" + name + "\"?\n\n"
	content += "y yes    n no"
	return appStyle.Render(overlayBoxStyle.Render(content))
}

func (m *ItemsModel) cmdLoad() tea.Cmd {
	m.gen++
	gen := m.gen
	ctx := m.ctx
	svc := m.services.Items
	filter := m.filter
	filter.SoloDisponibles = m.soloDisponibles
	return func() tea.Msg {
		items, err := svc.List(ctx, 0, 0, filter)
		return itemsLoadedMsg{gen: gen, items: items, err: err}
	}
}

func (m *ItemsModel) cmdLoadMaterials(tipo models.MaterialType) tea.Cmd {
	ctx := m.ctx
	services := m.services
	return func() tea.Msg {
		var options []materialOption
		switch tipo {
		case models.MaterialLibro:
			libros, err := services.Libros.List(ctx, 0, 0)
			if err != nil {
				return materialsLoadedMsg{tipo: tipo, err: err}
			}
			for _, l := range libros {
				options = append(options, materialOption{id: l.ID, label: l.Titulo})
			}
		case models.MaterialRevista:
			revistas, err := services.Revistas.List(ctx, 0, 0)
			if err != nil {
				return materialsLoadedMsg{tipo: tipo, err: err}
			}
			for _, r := range revistas {
				options = append(options, materialOption{id: r.ID, label: r.Titulo})
			}
		case models.MaterialPeriodico:
			periodicos, err := services.Periodicos.List(ctx, 0, 0)
			if err != nil {
				return materialsLoadedMsg{tipo: tipo, err: err}
			}
			for _, p := range periodicos {
				options = append(options, materialOption{id: p.ID, label: p.Titulo})
			}
		}
		return materialsLoadedMsg{tipo: tipo, options: options}
	}
}

func (m *ItemsModel) cmdCreate(payload models.ItemCreate) tea.Cmd {
	ctx := m.ctx
	svc := m.services.Items
	return func() tea.Msg {
		_, err := svc.Create(ctx, payload)
		return itemSavedMsg{err: err}
	}
}

func (m *ItemsModel) cmdUpdate(id string, payload models.ItemUpdate) tea.Cmd {
	ctx := m.ctx
	svc := m.services.Items
	return func() tea.Msg {
		_, err := svc.Update(ctx, id, payload)
		return itemSavedMsg{err: err}
	}
}

func (m *ItemsModel) cmdDelete(id string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.Items
	return func() tea.Msg {
		return itemDeletedMsg{err: svc.Delete(ctx, id)}
	}
}
