package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"

	"palchi-cli/internal/form"
	"palchi-cli/internal/model"
	"palchi-cli/internal/state"
	"palchi-cli/internal/store"
)

type formField struct {
	label string
	input textinput.Model
}

type assignStage int

const (
	assignPickAssociation assignStage = iota
	assignDetails
)

type appModel struct {
	ctrl  *state.Controller
	store store.Store

	width  int
	height int
	// The very first WindowSizeMsg is initial sizing, not a user resize.
	seenWindowSize bool

	view view
	pane pane

	eventsList       list.Model
	associationsList list.Model

	// detail is the fetched event detail for the events right pane; nil
	// until the selection is opened.
	detail        *model.Event
	assignmentIdx int
	rosterIdx     int

	modal        modalKind
	confirmFor   confirmTarget
	confirmID    int
	confirmAux   int // owning association for volunteer deletes
	confirmBody  string
	confirmFocus confirmModalFocus

	// Generic labeled inputs for the form modals. Which form they belong to
	// is tracked by the modal kind.
	fields    []formField
	focusIdx  int
	eventForm form.EventForm
	assocForm form.AssociationForm
	volForm   form.VolunteerForm
	statusIdx int
	certified bool

	assignForm    form.AssignmentForm
	assignList    list.Model
	assignStage   assignStage
	assignRoster  []model.Volunteer
	assignChecked map[int]bool
	assignCursor  int
	countInput    textinput.Model

	statusList list.Model

	loginUser  textinput.Model
	loginPass  textinput.Model
	loginFocus int

	toastText string
	toastErr  bool
	toastSeq  int
}

func newAppModel(ctrl *state.Controller, st store.Store) appModel {
	m := appModel{
		ctrl:  ctrl,
		store: st,
		view:  viewLogin,
		pane:  paneList,
	}

	m.eventsList = newList("Eventi", "evento", nil)
	m.associationsList = newList("Associazioni", "associazione", nil)
	m.assignList = newPickList("Associazione", nil)
	m.statusList = newPickList("Filtra per stato", nil)

	m.loginUser = textinput.New()
	m.loginUser.Placeholder = "nome utente"
	m.loginUser.CharLimit = 100
	m.loginUser.Width = 32
	m.loginPass = textinput.New()
	m.loginPass.Placeholder = "password"
	m.loginPass.EchoMode = textinput.EchoPassword
	m.loginPass.CharLimit = 200
	m.loginPass.Width = 32

	m.countInput = textinput.New()
	m.countInput.Placeholder = "1"
	m.countInput.CharLimit = 3
	m.countInput.Width = 6

	if ctrl.SignedIn() {
		m.view = viewDashboard
		m.restoreTUIState()
	} else {
		m.loginUser.Focus()
	}

	m.refreshEvents()
	m.refreshAssociations()
	return m
}

func (m *appModel) restoreTUIState() {
	st, err := m.store.LoadTUIState()
	if err != nil {
		return
	}
	if st.StatusFilter != "" {
		if s, ok := model.ParseEventStatus(st.StatusFilter); ok {
			m.ctrl.SetStatusFilter(&s)
		}
	}
	if d, ok := model.ParseDestination(st.Destination); ok && m.ctrl.Allowed(d) {
		m.view = viewFor(d)
	}
}

func (m appModel) persistTUIState() {
	if !m.ctrl.SignedIn() {
		return
	}
	st := &store.TUIState{Version: 1, Destination: string(destFor(m.view))}
	if f := m.ctrl.StatusFilter(); f != nil {
		st.StatusFilter = string(*f)
	}
	if it, ok := m.eventsList.SelectedItem().(eventItem); ok {
		st.SelectedEventID = it.event.ID
	}
	if it, ok := m.associationsList.SelectedItem().(associationItem); ok {
		st.SelectedAssociationID = it.association.ID
	}
	_ = m.store.SaveTUIState(st)
}

func (m *appModel) refreshEvents() {
	curID := 0
	if it, ok := m.eventsList.SelectedItem().(eventItem); ok {
		curID = it.event.ID
	}
	var items []list.Item
	for _, ev := range m.ctrl.Events() {
		items = append(items, eventItem{event: ev})
	}
	m.eventsList.SetItems(items)
	if curID != 0 {
		selectEvent(&m.eventsList, curID)
	}
}

func (m *appModel) refreshAssociations() {
	curID := 0
	if it, ok := m.associationsList.SelectedItem().(associationItem); ok {
		curID = it.association.ID
	}
	var items []list.Item
	for _, a := range m.ctrl.Associations() {
		items = append(items, associationItem{association: a})
	}
	m.associationsList.SetItems(items)
	if curID != 0 {
		selectAssociation(&m.associationsList, curID)
	}
}

func selectEvent(l *list.Model, id int) {
	for i, it := range l.Items() {
		if ev, ok := it.(eventItem); ok && ev.event.ID == id {
			l.Select(i)
			return
		}
	}
}

func selectAssociation(l *list.Model, id int) {
	for i, it := range l.Items() {
		if a, ok := it.(associationItem); ok && a.association.ID == id {
			l.Select(i)
			return
		}
	}
}

func (m *appModel) closeAllModals() {
	m.modal = modalNone
	m.confirmFor = confirmNone
	m.confirmID = 0
	m.confirmAux = 0
	m.confirmBody = ""
	m.confirmFocus = confirmFocusCancel
	m.fields = nil
	m.focusIdx = 0
	m.statusIdx = 0
	m.certified = false
	m.assignStage = assignPickAssociation
	m.assignRoster = nil
	m.assignChecked = nil
	m.assignCursor = 0
	m.countInput.SetValue("")
	m.countInput.Blur()
}

func newField(label, placeholder, value string) formField {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 200
	in.Width = 40
	in.SetValue(value)
	return formField{label: label, input: in}
}

func (m *appModel) setFields(fs ...formField) {
	m.fields = fs
	m.focusIdx = 0
	if len(m.fields) > 0 {
		m.fields[0].input.Focus()
	}
}

func (m *appModel) focusField(idx int) {
	if len(m.fields) == 0 {
		return
	}
	if idx < 0 {
		idx = len(m.fields) - 1
	}
	if idx >= len(m.fields) {
		idx = 0
	}
	for i := range m.fields {
		if i == idx {
			m.fields[i].input.Focus()
		} else {
			m.fields[i].input.Blur()
		}
	}
	m.focusIdx = idx
}

func (m appModel) fieldValue(idx int) string {
	if idx < 0 || idx >= len(m.fields) {
		return ""
	}
	return strings.TrimSpace(m.fields[idx].input.Value())
}
