package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"palchi-cli/internal/form"
	"palchi-cli/internal/model"
)

func (m appModel) Init() tea.Cmd {
	cmds := []tea.Cmd{tickBusy()}
	if m.ctrl.SignedIn() {
		cmds = append(cmds, m.initialLoadCmd())
	}
	return tea.Batch(cmds...)
}

func tickBusy() tea.Cmd {
	return tea.Tick(400*time.Millisecond, func(time.Time) tea.Msg { return busyTickMsg{} })
}

// Commands. The HTTP client owns per-call timeouts, so these use a plain
// background context.

func (m appModel) initialLoadCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return primaryLoadedMsg{err: ctrl.LoadPrimary(context.Background())}
	}
}

// secondaryLoadCmd runs after the primary lists landed, so the dashboard
// paints immediately and the totals refresh once the reports arrive.
func (m appModel) secondaryLoadCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctrl.LoadSecondary(context.Background())
		return secondaryLoadedMsg{}
	}
}

func (m appModel) reloadEventsCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return eventsReloadedMsg{err: ctrl.ReloadEvents(context.Background())}
	}
}

func (m appModel) loginCmd(f form.LoginForm) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return loginDoneMsg{err: ctrl.Login(context.Background(), f)}
	}
}

func (m appModel) eventDetailCmd(id int) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ev, err := ctrl.EventDetail(context.Background(), id)
		return eventDetailMsg{event: ev, err: err}
	}
}

func (m *appModel) toast(text string, isErr bool) tea.Cmd {
	m.toastText = text
	m.toastErr = isErr
	m.toastSeq++
	seq := m.toastSeq
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg { return toastExpireMsg{seq: seq} })
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.seenWindowSize = true
		m.resizeLists()
		return m, nil

	case busyTickMsg:
		return m, tickBusy()

	case toastExpireMsg:
		if msg.seq == m.toastSeq {
			m.toastText = ""
		}
		return m, nil

	case loginDoneMsg:
		if msg.err != nil {
			return m, m.toast(msg.err.Error(), true)
		}
		m.loginPass.SetValue("")
		m.view = viewDashboard
		m.restoreTUIState()
		return m, m.initialLoadCmd()

	case primaryLoadedMsg:
		m.refreshEvents()
		m.refreshAssociations()
		if msg.err != nil {
			return m, m.toast(msg.err.Error(), true)
		}
		if !m.ctrl.SignedIn() {
			// 401 teardown happened mid-load.
			m.view = viewLogin
			m.loginUser.Focus()
			return m, nil
		}
		return m, m.secondaryLoadCmd()

	case secondaryLoadedMsg:
		// The controller already holds the fresh reports; the repaint is all
		// that is left to do.
		return m, nil

	case eventsReloadedMsg:
		m.refreshEvents()
		if msg.err != nil {
			return m, m.toast(msg.err.Error(), true)
		}
		return m, nil

	case associationsReloadedMsg:
		m.refreshAssociations()
		if msg.err != nil {
			return m, m.toast(msg.err.Error(), true)
		}
		return m, nil

	case eventDetailMsg:
		if msg.err != nil {
			return m, m.toast(msg.err.Error(), true)
		}
		ev := msg.event
		m.detail = &ev
		m.assignmentIdx = 0
		return m, nil

	case opDoneMsg:
		m.refreshEvents()
		m.refreshAssociations()
		if msg.detail != nil {
			m.detail = msg.detail
			m.assignmentIdx = 0
		}
		if !m.ctrl.SignedIn() {
			m.closeAllModals()
			m.view = viewLogin
			m.loginUser.Focus()
		}
		if msg.err != nil {
			return m, m.toast(msg.err.Error(), true)
		}
		return m, m.toast(msg.note, false)

	case exportDoneMsg:
		if msg.err != nil {
			return m, m.toast(msg.err.Error(), true)
		}
		return m, m.toast("Esportato in "+msg.path, false)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.forwardToActive(msg)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != modalNone {
		return m.updateModal(msg)
	}
	if m.view == viewLogin {
		return m.updateLogin(msg)
	}

	// While the list filter prompt is open, every key belongs to the list.
	if m.activeListFiltering() {
		return m.forwardToActive(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.persistTUIState()
		return m, tea.Quit

	case "?":
		m.modal = modalHelp
		return m, nil

	case "1", "2", "3", "4":
		idx := int(msg.String()[0] - '1')
		dests := m.ctrl.Destinations()
		if idx < len(dests) {
			m.view = viewFor(dests[idx])
			m.pane = paneList
		}
		return m, nil

	case "r":
		return m, m.initialLoadCmd()

	case "ctrl+l":
		m.persistTUIState()
		m.ctrl.Logout()
		m.closeAllModals()
		m.view = viewLogin
		m.loginUser.Focus()
		return m, nil

	case "p":
		m.openProfileForm()
		return m, nil
	}

	switch m.view {
	case viewEvents:
		return m.updateEventsView(msg)
	case viewAssociations:
		return m.updateAssociationsView(msg)
	}
	return m.forwardToActive(msg)
}

func (m appModel) activeListFiltering() bool {
	switch m.view {
	case viewEvents:
		return m.eventsList.SettingFilter()
	case viewAssociations:
		return m.associationsList.SettingFilter()
	}
	return false
}

func (m appModel) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "shift+tab", "up", "down":
		m.loginFocus = 1 - m.loginFocus
		if m.loginFocus == 0 {
			m.loginUser.Focus()
			m.loginPass.Blur()
		} else {
			m.loginUser.Blur()
			m.loginPass.Focus()
		}
		return m, nil
	case "enter":
		f := form.LoginForm{Username: m.loginUser.Value(), Password: m.loginPass.Value()}
		// Validation failures never reach the network.
		if err := f.Validate(); err != nil {
			return m, m.toast(err.Error(), true)
		}
		return m, m.loginCmd(f)
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.loginUser, cmd = m.loginUser.Update(msg)
	} else {
		m.loginPass, cmd = m.loginPass.Update(msg)
	}
	return m, cmd
}

func (m appModel) updateEventsView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	canManage := m.ctrl.Role().CanManage()

	switch msg.String() {
	case "enter":
		if it, ok := m.eventsList.SelectedItem().(eventItem); ok {
			return m, m.eventDetailCmd(it.event.ID)
		}
		return m, nil

	case "tab":
		if m.pane == paneList {
			m.pane = paneDetail
		} else {
			m.pane = paneList
		}
		return m, nil

	case "f":
		m.openStatusFilter()
		return m, nil

	case "c":
		ctrl := m.ctrl
		return m, func() tea.Msg {
			path, err := ctrl.ExportEvents(context.Background(), "")
			return exportDoneMsg{path: path, err: err}
		}

	case "n":
		if canManage {
			m.openEventForm(form.NewEventForm())
		}
		return m, nil

	case "e":
		if canManage {
			if it, ok := m.eventsList.SelectedItem().(eventItem); ok {
				m.openEventForm(form.EventFormFrom(it.event))
			}
		}
		return m, nil

	case "d":
		if canManage {
			if it, ok := m.eventsList.SelectedItem().(eventItem); ok {
				m.openConfirmDelete(confirmDeleteEvent, it.event.ID, 0,
					fmt.Sprintf("Eliminare l'evento «%s»?", it.event.Title))
			}
		}
		return m, nil

	case "a":
		if canManage {
			if it, ok := m.eventsList.SelectedItem().(eventItem); ok {
				m.openAssignment(it.event.ID)
			}
		}
		return m, nil

	case "x":
		if canManage && m.detail != nil && len(m.detail.Associations) > 0 {
			m.modal = modalRemoveAssignment
			m.assignmentIdx = 0
		}
		return m, nil
	}

	if m.pane == paneDetail {
		// Detail pane is read-only; j/k move the assignment cursor.
		switch msg.String() {
		case "j", "down":
			if m.detail != nil && m.assignmentIdx < len(m.detail.Associations)-1 {
				m.assignmentIdx++
			}
			return m, nil
		case "k", "up":
			if m.assignmentIdx > 0 {
				m.assignmentIdx--
			}
			return m, nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.eventsList, cmd = m.eventsList.Update(msg)
	return m, cmd
}

func (m appModel) updateAssociationsView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	canManage := m.ctrl.Role().CanManage()
	selected, hasSelected := m.associationsList.SelectedItem().(associationItem)

	switch msg.String() {
	case "tab":
		if m.pane == paneList {
			m.pane = paneDetail
			m.rosterIdx = 0
		} else {
			m.pane = paneList
		}
		return m, nil
	}

	if m.pane == paneDetail && hasSelected {
		roster := selected.association.Volunteers
		switch msg.String() {
		case "j", "down":
			if m.rosterIdx < len(roster)-1 {
				m.rosterIdx++
			}
			return m, nil
		case "k", "up":
			if m.rosterIdx > 0 {
				m.rosterIdx--
			}
			return m, nil
		case "n":
			if canManage {
				m.openVolunteerForm(form.NewVolunteerForm(selected.association.ID))
			}
			return m, nil
		case "e":
			if canManage && m.rosterIdx < len(roster) {
				m.openVolunteerForm(form.VolunteerFormFrom(roster[m.rosterIdx]))
			}
			return m, nil
		case "d":
			if canManage && m.rosterIdx < len(roster) {
				v := roster[m.rosterIdx]
				m.openConfirmDelete(confirmDeleteVolunteer, v.ID, selected.association.ID,
					fmt.Sprintf("Eliminare il volontario «%s»?", v.FullName()))
			}
			return m, nil
		}
		return m, nil
	}

	switch msg.String() {
	case "n":
		if canManage {
			m.openAssociationForm(form.NewAssociationForm())
		}
		return m, nil
	case "e":
		if canManage && hasSelected {
			m.openAssociationForm(form.AssociationFormFrom(selected.association))
		}
		return m, nil
	case "d":
		if canManage && hasSelected {
			m.openConfirmDelete(confirmDeleteAssociation, selected.association.ID, 0,
				fmt.Sprintf("Eliminare l'associazione «%s»?", selected.association.Name))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.associationsList, cmd = m.associationsList.Update(msg)
	return m, cmd
}

func (m appModel) forwardToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case viewEvents:
		m.eventsList, cmd = m.eventsList.Update(msg)
	case viewAssociations:
		m.associationsList, cmd = m.associationsList.Update(msg)
	}
	return m, cmd
}

func (m *appModel) resizeLists() {
	h := m.height - 7
	if h < 8 {
		h = 8
	}
	w := m.width
	if w < 40 {
		w = 40
	}
	m.eventsList.SetSize(w/2, h)
	m.associationsList.SetSize(w/2, h)
	m.assignList.SetSize(modalBodyWidth(m.width), 10)
	m.statusList.SetSize(modalBodyWidth(m.width), 8)
}

// Modal openers.

func (m *appModel) openConfirmDelete(target confirmTarget, id, aux int, body string) {
	m.modal = modalConfirmDelete
	m.confirmFor = target
	m.confirmID = id
	m.confirmAux = aux
	m.confirmBody = body
	// Default to the safe choice.
	m.confirmFocus = confirmFocusCancel
}

func (m *appModel) openEventForm(f form.EventForm) {
	m.modal = modalEventForm
	m.eventForm = f
	m.statusIdx = 0
	for i, s := range model.EventStatuses() {
		if s == f.Status {
			m.statusIdx = i
		}
	}
	m.setFields(
		newField("Titolo", "Sagra di San Giovanni", f.Title),
		newField("Inizio", "AAAA-MM-GG HH:MM", f.StartDatetime),
		newField("Fine", "AAAA-MM-GG HH:MM", f.EndDatetime),
		newField("Luogo", "Piazza del Comune", f.Location),
		newField("Palco (m²)", "50", f.StageSize),
		newField("Richiedente", "", f.Requester),
		newField("Ricevuta il", "AAAA-MM-GG", f.RequestReceivedDate),
		newField("Montaggio", "AAAA-MM-GG HH:MM (facoltativo)", f.AssemblyDatetime),
		newField("Smontaggio", "AAAA-MM-GG HH:MM (facoltativo)", f.DisassemblyDatetime),
	)
}

func (m *appModel) eventFormResult() form.EventForm {
	f := m.eventForm
	f.Title = m.fieldValue(0)
	f.StartDatetime = m.fieldValue(1)
	f.EndDatetime = m.fieldValue(2)
	f.Location = m.fieldValue(3)
	f.StageSize = m.fieldValue(4)
	f.Requester = m.fieldValue(5)
	f.RequestReceivedDate = m.fieldValue(6)
	f.AssemblyDatetime = m.fieldValue(7)
	f.DisassemblyDatetime = m.fieldValue(8)
	f.Status = model.EventStatuses()[m.statusIdx]
	return f
}

func (m *appModel) openAssociationForm(f form.AssociationForm) {
	m.modal = modalAssociationForm
	m.assocForm = f
	m.setFields(
		newField("Nome", "Pro Loco", f.Name),
		newField("Referente", "", f.ContactPerson),
		newField("Codice fiscale", "", f.TaxCode),
		newField("IBAN", "", f.IBAN),
		newField("Sede", "", f.Headquarters),
	)
}

func (m *appModel) associationFormResult() form.AssociationForm {
	f := m.assocForm
	f.Name = m.fieldValue(0)
	f.ContactPerson = m.fieldValue(1)
	f.TaxCode = m.fieldValue(2)
	f.IBAN = m.fieldValue(3)
	f.Headquarters = m.fieldValue(4)
	return f
}

func (m *appModel) openVolunteerForm(f form.VolunteerForm) {
	m.modal = modalVolunteerForm
	m.volForm = f
	m.certified = f.IsCertified
	m.setFields(
		newField("Nome", "", f.FirstName),
		newField("Cognome", "", f.LastName),
		newField("Nato il", "AAAA-MM-GG (facoltativo)", f.DateOfBirth),
	)
}

func (m *appModel) volunteerFormResult() form.VolunteerForm {
	f := m.volForm
	f.FirstName = m.fieldValue(0)
	f.LastName = m.fieldValue(1)
	f.DateOfBirth = m.fieldValue(2)
	f.IsCertified = m.certified
	return f
}

func (m *appModel) openProfileForm() {
	u := m.ctrl.User()
	if u == nil {
		return
	}
	m.modal = modalProfile
	m.setFields(
		newField("Nome utente", "", u.Username),
		newField("Email", "", u.Email),
		newField("Nuova password", "(vuota = invariata)", ""),
	)
	m.fields[2].input.EchoMode = m.loginPass.EchoMode
}

func (m *appModel) openAssignment(eventID int) {
	m.modal = modalAssignment
	m.assignForm = form.NewAssignmentForm(eventID)
	m.assignStage = assignPickAssociation
	m.assignChecked = map[int]bool{}
	m.assignCursor = 0
	m.countInput.SetValue("1")
	m.countInput.Blur()

	var items []list.Item
	for _, a := range m.ctrl.Associations() {
		items = append(items, associationPickItem{association: a})
	}
	m.assignList.SetItems(items)
	m.assignList.Select(0)
}

func (m *appModel) openStatusFilter() {
	m.modal = modalStatusFilter
	items := []list.Item{statusFilterItem{label: "Tutti"}}
	for _, s := range model.EventStatuses() {
		st := s
		items = append(items, statusFilterItem{label: string(s), status: &st})
	}
	m.statusList.SetItems(items)
	idx := 0
	if f := m.ctrl.StatusFilter(); f != nil {
		for i, it := range items {
			if sf, ok := it.(statusFilterItem); ok && sf.status != nil && *sf.status == *f {
				idx = i
			}
		}
	}
	m.statusList.Select(idx)
}

// Modal key handling.

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalHelp:
		switch msg.String() {
		case "esc", "q", "?", "enter":
			m.closeAllModals()
		}
		return m, nil

	case modalConfirmDelete:
		return m.updateConfirmModal(msg)

	case modalStatusFilter:
		switch msg.String() {
		case "esc":
			m.closeAllModals()
			return m, nil
		case "enter":
			if it, ok := m.statusList.SelectedItem().(statusFilterItem); ok {
				m.ctrl.SetStatusFilter(it.status)
				m.closeAllModals()
				return m, m.reloadEventsCmd()
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.statusList, cmd = m.statusList.Update(msg)
		return m, cmd

	case modalAssignment:
		return m.updateAssignmentModal(msg)

	case modalRemoveAssignment:
		return m.updateRemoveAssignmentModal(msg)

	case modalEventForm, modalAssociationForm, modalVolunteerForm, modalProfile:
		return m.updateFormModal(msg)
	}
	return m, nil
}

func (m appModel) updateConfirmModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.closeAllModals()
		return m, nil
	case "tab", "left", "right":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "enter":
		if m.confirmFocus != confirmFocusConfirm {
			// Declining leaves the record untouched.
			m.closeAllModals()
			return m, nil
		}
		target, id, aux := m.confirmFor, m.confirmID, m.confirmAux
		m.closeAllModals()
		ctrl := m.ctrl
		switch target {
		case confirmDeleteEvent:
			m.detail = nil
			return m, func() tea.Msg {
				return opDoneMsg{note: "Evento eliminato", err: ctrl.DeleteEvent(context.Background(), id)}
			}
		case confirmDeleteAssociation:
			return m, func() tea.Msg {
				return opDoneMsg{note: "Associazione eliminata", err: ctrl.DeleteAssociation(context.Background(), id)}
			}
		case confirmDeleteVolunteer:
			return m, func() tea.Msg {
				return opDoneMsg{note: "Volontario eliminato", err: ctrl.DeleteVolunteer(context.Background(), aux, id)}
			}
		case confirmRemoveAssignment:
			return m, func() tea.Msg {
				detail, err := ctrl.RemoveAssignment(context.Background(), aux, id)
				if err != nil {
					return opDoneMsg{err: err}
				}
				return opDoneMsg{note: "Assegnazione rimossa", detail: &detail}
			}
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) updateFormModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Extra focus slots after the inputs: the event form has a status
	// selector row, the volunteer form a certification checkbox.
	extra := 0
	if m.modal == modalEventForm || m.modal == modalVolunteerForm {
		extra = 1
	}
	last := len(m.fields) + extra - 1
	onExtra := extra == 1 && m.focusIdx == len(m.fields)

	switch msg.String() {
	case "esc", "ctrl+g":
		m.closeAllModals()
		return m, nil

	case "tab", "down":
		m.focusFormSlot(m.focusIdx+1, last)
		return m, nil

	case "shift+tab", "up":
		m.focusFormSlot(m.focusIdx-1, last)
		return m, nil

	case "left", "right":
		if onExtra && m.modal == modalEventForm {
			statuses := model.EventStatuses()
			if msg.String() == "right" {
				m.statusIdx = (m.statusIdx + 1) % len(statuses)
			} else {
				m.statusIdx = (m.statusIdx + len(statuses) - 1) % len(statuses)
			}
			return m, nil
		}

	case " ":
		if onExtra && m.modal == modalVolunteerForm {
			m.certified = !m.certified
			return m, nil
		}

	case "enter", "ctrl+s":
		if msg.String() == "enter" && m.focusIdx < last {
			m.focusFormSlot(m.focusIdx+1, last)
			return m, nil
		}
		return m.saveFormModal()
	}

	if m.focusIdx < len(m.fields) {
		var cmd tea.Cmd
		m.fields[m.focusIdx].input, cmd = m.fields[m.focusIdx].input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *appModel) focusFormSlot(idx, last int) {
	if idx < 0 {
		idx = last
	}
	if idx > last {
		idx = 0
	}
	if idx < len(m.fields) {
		m.focusField(idx)
		return
	}
	for i := range m.fields {
		m.fields[i].input.Blur()
	}
	m.focusIdx = idx
}

func (m appModel) saveFormModal() (tea.Model, tea.Cmd) {
	ctrl := m.ctrl
	switch m.modal {
	case modalEventForm:
		f := m.eventFormResult()
		if err := f.Validate(); err != nil {
			return m, m.toast(err.Error(), true)
		}
		m.closeAllModals()
		return m, func() tea.Msg {
			_, err := ctrl.SaveEvent(context.Background(), f)
			return opDoneMsg{note: "Evento salvato", err: err}
		}

	case modalAssociationForm:
		f := m.associationFormResult()
		if err := f.Validate(); err != nil {
			return m, m.toast(err.Error(), true)
		}
		m.closeAllModals()
		return m, func() tea.Msg {
			_, err := ctrl.SaveAssociation(context.Background(), f)
			return opDoneMsg{note: "Associazione salvata", err: err}
		}

	case modalVolunteerForm:
		f := m.volunteerFormResult()
		if err := f.Validate(); err != nil {
			return m, m.toast(err.Error(), true)
		}
		m.closeAllModals()
		return m, func() tea.Msg {
			_, err := ctrl.SaveVolunteer(context.Background(), f)
			return opDoneMsg{note: "Volontario salvato", err: err}
		}

	case modalProfile:
		f := form.ProfileForm{Username: m.fieldValue(0), Email: m.fieldValue(1), Password: m.fieldValue(2)}
		if err := f.Validate(); err != nil {
			return m, m.toast(err.Error(), true)
		}
		m.closeAllModals()
		return m, func() tea.Msg {
			_, err := ctrl.SaveProfile(context.Background(), f)
			return opDoneMsg{note: "Profilo aggiornato", err: err}
		}
	}
	return m, nil
}

func (m appModel) updateAssignmentModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" || msg.String() == "ctrl+g" {
		m.closeAllModals()
		return m, nil
	}

	if m.assignStage == assignPickAssociation {
		if msg.String() == "enter" {
			if it, ok := m.assignList.SelectedItem().(associationPickItem); ok {
				m.assignForm.AssociationID = it.association.ID
				m.assignRoster = it.association.Volunteers
				m.assignStage = assignDetails
				m.countInput.Focus()
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.assignList, cmd = m.assignList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "tab":
		if m.countInput.Focused() {
			m.countInput.Blur()
		} else {
			m.countInput.Focus()
		}
		return m, nil

	case "j", "down":
		if !m.countInput.Focused() && m.assignCursor < len(m.assignRoster)-1 {
			m.assignCursor++
			return m, nil
		}

	case "k", "up":
		if !m.countInput.Focused() && m.assignCursor > 0 {
			m.assignCursor--
			return m, nil
		}

	case " ":
		if !m.countInput.Focused() && m.assignCursor < len(m.assignRoster) {
			id := m.assignRoster[m.assignCursor].ID
			m.assignChecked[id] = !m.assignChecked[id]
			return m, nil
		}

	case "enter":
		f := m.assignForm
		f.VolunteerCount = m.countInput.Value()
		f.VolunteerIDs = nil
		for _, v := range m.assignRoster {
			if m.assignChecked[v.ID] {
				f.VolunteerIDs = append(f.VolunteerIDs, v.ID)
			}
		}
		if err := f.Validate(); err != nil {
			return m, m.toast(err.Error(), true)
		}
		m.closeAllModals()
		ctrl := m.ctrl
		return m, func() tea.Msg {
			detail, err := ctrl.Assign(context.Background(), f)
			if err != nil {
				return opDoneMsg{err: err}
			}
			return opDoneMsg{note: "Associazione assegnata", detail: &detail}
		}
	}

	if m.countInput.Focused() {
		var cmd tea.Cmd
		m.countInput, cmd = m.countInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateRemoveAssignmentModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.detail == nil {
		m.closeAllModals()
		return m, nil
	}
	assignments := m.detail.Associations

	switch msg.String() {
	case "esc", "ctrl+g":
		m.closeAllModals()
		return m, nil
	case "j", "down":
		if m.assignmentIdx < len(assignments)-1 {
			m.assignmentIdx++
		}
		return m, nil
	case "k", "up":
		if m.assignmentIdx > 0 {
			m.assignmentIdx--
		}
		return m, nil
	case "enter":
		if m.assignmentIdx >= len(assignments) {
			return m, nil
		}
		a := assignments[m.assignmentIdx]
		m.openConfirmDelete(confirmRemoveAssignment, a.AssociationID, m.detail.ID,
			fmt.Sprintf("Rimuovere l'assegnazione di «%s»?", a.AssociationName))
		return m, nil
	}
	return m, nil
}
