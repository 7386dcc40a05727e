package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"palchi-cli/internal/format"
	"palchi-cli/internal/model"
)

func (m appModel) View() string {
	if m.view == viewLogin {
		return m.viewLogin()
	}

	header := m.renderHeader()
	menu := m.renderMenu()

	var body string
	switch m.view {
	case viewDashboard:
		body = m.viewDashboard()
	case viewEvents:
		body = m.viewEvents()
	case viewAssociations:
		body = m.viewAssociations()
	case viewReports:
		body = m.viewReports()
	}

	footer := m.renderFooter()
	base := strings.Join([]string{header, menu, body, footer}, "\n")

	if m.modal != modalNone {
		return placeCentered(m.width, m.height, m.renderModal())
	}
	return base
}

func (m appModel) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Render("Gestione Palchi")

	who := ""
	if u := m.ctrl.User(); u != nil {
		who = fmt.Sprintf("%s (%s)", u.Username, u.Role)
	}

	status := ""
	if m.ctrl.Busy() {
		status = lipgloss.NewStyle().Foreground(colorAccent).Render("caricamento…")
	} else if m.ctrl.FromCache() {
		status = styleMuted().Render("dati locali")
	}

	line := title + "  " + styleMuted().Render(who)
	if status != "" {
		line += "  " + status
	}
	return line
}

func (m appModel) renderMenu() string {
	active := destFor(m.view)
	var parts []string
	for i, d := range m.ctrl.Destinations() {
		label := fmt.Sprintf("%d %s", i+1, d.MenuLabel())
		st := styleMuted()
		if d == active {
			st = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
		}
		parts = append(parts, st.Render(label))
	}
	if f := m.ctrl.StatusFilter(); f != nil && m.view == viewEvents {
		parts = append(parts, styleMuted().Render("‹filtro: "+string(*f)+"›"))
	}
	return strings.Join(parts, "   ")
}

func (m appModel) renderFooter() string {
	var keys string
	switch m.view {
	case viewEvents:
		keys = "invio: dettagli  n: nuovo  e: modifica  d: elimina  a: assegna  x: rimuovi  f: filtro  c: csv  p: profilo  r: ricarica  ?: aiuto  q: esci"
	case viewAssociations:
		keys = "tab: pannello  n: nuova  e: modifica  d: elimina  p: profilo  r: ricarica  ?: aiuto  q: esci"
	case viewReports:
		keys = "p: profilo  r: ricarica  ?: aiuto  q: esci"
	default:
		keys = "1-4: sezioni  p: profilo  ctrl+l: disconnetti  ?: aiuto  q: esci"
	}

	footer := styleMuted().Render(keys)
	if m.toastText != "" {
		st := lipgloss.NewStyle().Foreground(colorOK)
		if m.toastErr {
			st = lipgloss.NewStyle().Foreground(colorError).Bold(true)
		}
		footer = st.Render(m.toastText) + "\n" + footer
	}
	return footer
}

func (m appModel) viewLogin() string {
	bodyW := modalBodyWidth(m.width)
	var b strings.Builder
	b.WriteString("Accedi per continuare\n\n")
	b.WriteString("Nome utente\n")
	b.WriteString(renderInputLine(bodyW, m.loginUser.View()))
	b.WriteString("\n\nPassword\n")
	b.WriteString(renderInputLine(bodyW, m.loginPass.View()))
	b.WriteString("\n\n")
	b.WriteString(styleMuted().Render("invio: accedi  tab: campo  ctrl+c: esci"))
	if m.toastText != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(colorError).Render(m.toastText))
	}
	return placeCentered(m.width, m.height, renderModalBox(m.width, "Gestione Palchi", b.String()))
}

func (m appModel) viewDashboard() string {
	t := m.ctrl.Totals()

	card := func(label, value string) string {
		return lipgloss.NewStyle().
			Padding(0, 2).
			Background(colorControlBg).
			Foreground(colorSurfaceFg).
			Render(fmt.Sprintf("%s\n%s", styleMuted().Render(label), value))
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Eventi", fmt.Sprintf("%d", t.TotalEvents)), " ",
		card("Associazioni", fmt.Sprintf("%d", t.TotalAssociations)), " ",
		card("Volontari", fmt.Sprintf("%d", t.TotalVolunteers)), " ",
		card("Ricavi totali", format.Euro(t.TotalRevenue)),
	)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(cards)
	b.WriteString("\n\n")
	if t.RevenueFromReports {
		b.WriteString(fmt.Sprintf("Quota Pro Loco: %s   Quota associazioni: %s   Costi certificazione: %s\n",
			format.Euro(t.ProLocoEarnings), format.Euro(t.AssociationEarnings), format.Euro(t.CertificationCosts)))
	} else {
		b.WriteString(styleMuted().Render("Dati di riepilogo non disponibili.") + "\n")
	}

	b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("Prossimi eventi") + "\n")
	events := m.ctrl.Events()
	sort.Slice(events, func(i, j int) bool {
		return events[i].StartDatetime.Before(events[j].StartDatetime.Time)
	})
	n := 0
	for _, ev := range events {
		if n >= 6 {
			break
		}
		b.WriteString(fmt.Sprintf("  %s  %s  %s\n", format.Date(&ev.StartDatetime), ev.Title, styleMuted().Render(string(ev.Status))))
		n++
	}
	if n == 0 {
		b.WriteString(styleMuted().Render("  Nessun evento.") + "\n")
	}

	return m.padBody(b.String())
}

func (m appModel) viewEvents() string {
	bodyH := m.bodyHeight()
	leftW := m.width / 2
	if leftW < 40 {
		leftW = 40
	}
	rightW := m.width - leftW - 2
	if rightW < 30 {
		rightW = 30
	}

	left := m.eventsList.View()

	var right string
	sel, ok := m.eventsList.SelectedItem().(eventItem)
	switch {
	case ok && m.detail != nil && m.detail.ID == sel.event.ID:
		right = m.renderEventDetail(*m.detail, rightW)
	case ok:
		right = m.renderEventSummary(sel.event) + "\n\n" + styleMuted().Render("invio: carica dettagli e assegnazioni")
	default:
		right = styleMuted().Render("Nessun evento selezionato.")
	}

	left = normalizePane(left, leftW, bodyH)
	right = normalizePane(right, rightW, bodyH)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

func (m appModel) renderEventSummary(ev model.Event) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(ev.Title) + "\n\n")
	row := func(label, value string) {
		if value != "" {
			b.WriteString(fmt.Sprintf("%-14s %s\n", styleMuted().Render(label), value))
		}
	}
	row("Stato", string(ev.Status))
	row("Inizio", format.DateTime(&ev.StartDatetime))
	row("Fine", format.DateTime(&ev.EndDatetime))
	row("Luogo", ev.Location)
	row("Palco", format.SquareMeters(ev.StageSize))
	row("Richiedente", ev.Requester)
	row("Ricevuta il", format.Date(&ev.RequestReceivedDate))
	row("Montaggio", format.DateTime(ev.AssemblyDatetime))
	row("Smontaggio", format.DateTime(ev.DisassemblyDatetime))
	if ev.TotalCost > 0 {
		row("Costo totale", format.Euro(ev.TotalCost))
		row("Quota Pro Loco", format.Euro(ev.ProLocoShare))
		row("Certificazione", format.Euro(ev.CertificationCost))
	}
	return b.String()
}

func (m appModel) renderEventDetail(ev model.Event, width int) string {
	var b strings.Builder
	b.WriteString(m.renderEventSummary(ev))

	b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("Assegnazioni") + "\n")
	if len(ev.Associations) == 0 {
		b.WriteString(styleMuted().Render("  Nessuna associazione assegnata.") + "\n")
	}
	for i, as := range ev.Associations {
		line := fmt.Sprintf("  %s — %d volontari", as.AssociationName, as.VolunteerCount)
		if m.pane == paneDetail && i == m.assignmentIdx {
			line = lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Render(line)
		}
		b.WriteString(line + "\n")
		for _, v := range as.Volunteers {
			mark := " "
			if v.IsCertified {
				mark = "✓"
			}
			b.WriteString(styleMuted().Render(fmt.Sprintf("      %s %s", mark, v.VolunteerName)) + "\n")
		}
	}
	return b.String()
}

func (m appModel) viewAssociations() string {
	bodyH := m.bodyHeight()
	leftW := m.width / 2
	if leftW < 40 {
		leftW = 40
	}
	rightW := m.width - leftW - 2
	if rightW < 30 {
		rightW = 30
	}

	left := m.associationsList.View()

	var right string
	if sel, ok := m.associationsList.SelectedItem().(associationItem); ok {
		right = m.renderAssociationDetail(sel.association)
	} else {
		right = styleMuted().Render("Nessuna associazione selezionata.")
	}

	left = normalizePane(left, leftW, bodyH)
	right = normalizePane(right, rightW, bodyH)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

func (m appModel) renderAssociationDetail(a model.Association) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(a.Name) + "\n\n")
	row := func(label, value string) {
		if value != "" {
			b.WriteString(fmt.Sprintf("%-16s %s\n", styleMuted().Render(label), value))
		}
	}
	row("Referente", a.ContactPerson)
	row("Codice fiscale", a.TaxCode)
	row("IBAN", a.IBAN)
	row("Sede", a.Headquarters)

	b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("Volontari") + "\n")
	if len(a.Volunteers) == 0 {
		b.WriteString(styleMuted().Render("  Nessun volontario.") + "\n")
	}
	for i, v := range a.Volunteers {
		mark := " "
		if v.IsCertified {
			mark = "✓"
		}
		line := fmt.Sprintf("  %s %s", mark, v.FullName())
		if m.pane == paneDetail && i == m.rosterIdx {
			line = lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Render(line)
		}
		b.WriteString(line + "\n")
	}
	if m.pane == paneDetail {
		b.WriteString("\n" + styleMuted().Render("n: nuovo volontario  e: modifica  d: elimina  tab: lista"))
	}
	return b.String()
}

func (m appModel) viewReports() string {
	var b strings.Builder
	r := m.ctrl.Reports()
	if r == nil {
		b.WriteString("\n" + styleMuted().Render("Riepilogo non ancora disponibile. Premi r per ricaricare."))
		return m.padBody(b.String())
	}

	ot := r.OverallTotals
	b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("Totali complessivi") + "\n")
	b.WriteString(fmt.Sprintf("  Eventi: %d   Ricavi: %s   Pro Loco: %s   Associazioni: %s   Certificazioni: %s\n",
		ot.TotalEvents, format.Euro(ot.TotalRevenue), format.Euro(ot.TotalProLocoEarnings),
		format.Euro(ot.TotalAssociationEarnings), format.Euro(ot.TotalCertificationCosts)))

	b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("Compensi per associazione") + "\n")
	if len(r.AssociationEarnings) == 0 {
		b.WriteString(styleMuted().Render("  Nessun compenso registrato.") + "\n")
	}
	for _, ae := range r.AssociationEarnings {
		b.WriteString(fmt.Sprintf("  %-32s %10s  (%d eventi)\n", ae.AssociationName, format.Euro(ae.TotalEarnings), ae.EventsCount))
	}

	if p := m.ctrl.ProLoco(); p != nil {
		b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("Pro Loco") + "\n")
		b.WriteString(fmt.Sprintf("  Compensi: %s su %d eventi\n", format.Euro(p.TotalEarnings), p.EventsCount))
	}

	if len(r.EventsWithEarnings) > 0 {
		b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("Dettaglio eventi") + "\n")
		for _, d := range r.EventsWithEarnings {
			b.WriteString(fmt.Sprintf("  %-32s costo %s  pro loco %s  cert. %s\n",
				d.EventTitle, format.Euro(d.TotalCost), format.Euro(d.ProLocoShare), format.Euro(d.CertificationCost)))
		}
	}

	return m.padBody(b.String())
}

func (m appModel) bodyHeight() int {
	h := m.height - 7
	if h < 8 {
		h = 8
	}
	return h
}

func (m appModel) padBody(s string) string {
	return normalizePane(s, m.width, m.bodyHeight())
}

// Modal rendering.

func (m appModel) renderModal() string {
	switch m.modal {
	case modalConfirmDelete:
		title, action := "Conferma eliminazione", "Elimina"
		if m.confirmFor == confirmRemoveAssignment {
			title, action = "Conferma rimozione", "Rimuovi"
		}
		return renderConfirmModal(m.width, title, m.confirmBody, action, "Annulla", m.confirmFocus)

	case modalEventForm:
		title := "Nuovo evento"
		if !m.eventForm.IsNew() {
			title = "Modifica evento"
		}
		extra := fmt.Sprintf("%-14s ‹ %s ›", "Stato", model.EventStatuses()[m.statusIdx])
		return m.renderFormModal(title, extra, m.focusIdx == len(m.fields))

	case modalAssociationForm:
		title := "Nuova associazione"
		if !m.assocForm.IsNew() {
			title = "Modifica associazione"
		}
		return m.renderFormModal(title, "", false)

	case modalVolunteerForm:
		title := "Nuovo volontario"
		if !m.volForm.IsNew() {
			title = "Modifica volontario"
		}
		mark := " "
		if m.certified {
			mark = "x"
		}
		extra := fmt.Sprintf("[%s] Certificato (spazio per cambiare)", mark)
		return m.renderFormModal(title, extra, m.focusIdx == len(m.fields))

	case modalProfile:
		return m.renderFormModal("Profilo", "", false)

	case modalAssignment:
		return m.renderAssignmentModal()

	case modalRemoveAssignment:
		return m.renderRemoveAssignmentModal()

	case modalStatusFilter:
		content := m.statusList.View() + "\n" + styleMuted().Render("invio: applica  esc: annulla")
		return renderModalBox(m.width, "Filtra per stato", content)

	case modalHelp:
		return renderModalBox(m.width, "Aiuto", m.helpText())
	}
	return ""
}

func (m appModel) renderFormModal(title, extra string, extraFocused bool) string {
	bodyW := modalBodyWidth(m.width)
	var b strings.Builder
	for i, f := range m.fields {
		label := f.label
		if i == m.focusIdx {
			label = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(label)
		} else {
			label = styleMuted().Render(label)
		}
		b.WriteString(label + "\n")
		b.WriteString(renderInputLine(bodyW, f.input.View()) + "\n")
	}
	if extra != "" {
		line := extra
		if extraFocused {
			line = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(extra)
		}
		b.WriteString("\n" + line + "\n")
	}
	b.WriteString("\n" + styleMuted().Render("tab: campo  ctrl+s/invio: salva  esc: annulla"))
	return renderModalBox(m.width, title, b.String())
}

func (m appModel) renderAssignmentModal() string {
	if m.assignStage == assignPickAssociation {
		content := m.assignList.View() + "\n" + styleMuted().Render("invio: scegli  esc: annulla")
		return renderModalBox(m.width, "Assegna associazione", content)
	}

	bodyW := modalBodyWidth(m.width)
	var b strings.Builder
	b.WriteString("Numero di volontari\n")
	b.WriteString(renderInputLine(bodyW, m.countInput.View()) + "\n\n")
	b.WriteString("Volontari (facoltativo)\n")
	if len(m.assignRoster) == 0 {
		b.WriteString(styleMuted().Render("  Nessun volontario in organico.") + "\n")
	}
	for i, v := range m.assignRoster {
		mark := " "
		if m.assignChecked[v.ID] {
			mark = "x"
		}
		line := fmt.Sprintf("  [%s] %s", mark, v.FullName())
		if !m.countInput.Focused() && i == m.assignCursor {
			line = lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + styleMuted().Render("tab: campo/elenco  spazio: seleziona  invio: assegna  esc: annulla"))
	return renderModalBox(m.width, "Assegna associazione", b.String())
}

func (m appModel) renderRemoveAssignmentModal() string {
	var b strings.Builder
	if m.detail == nil || len(m.detail.Associations) == 0 {
		b.WriteString(styleMuted().Render("Nessuna assegnazione da rimuovere."))
	}
	if m.detail != nil {
		for i, as := range m.detail.Associations {
			line := fmt.Sprintf("  %s — %d volontari", as.AssociationName, as.VolunteerCount)
			if i == m.assignmentIdx {
				line = lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Render(line)
			}
			b.WriteString(line + "\n")
		}
	}
	b.WriteString("\n" + styleMuted().Render("invio: rimuovi  esc: annulla"))
	return renderModalBox(m.width, "Rimuovi assegnazione", b.String())
}

const helpMarkdown = `# Gestione Palchi

## Navigazione
- **1–4** sezioni (il Riepilogo è visibile solo ad admin e superadmin)
- **tab** passa tra lista e pannello dettagli
- **/** filtra la lista corrente

## Eventi
- **invio** carica i dettagli con le assegnazioni
- **n / e / d** nuovo, modifica, elimina (con conferma)
- **a / x** assegna o rimuovi un'associazione
- **f** filtra per stato, **c** esporta CSV

## Associazioni
- **n / e / d** sulla lista; nel pannello dettagli gli stessi tasti
  operano sui volontari

## Sessione
- **p** profilo, **ctrl+l** disconnetti, **r** ricarica tutto
`

func (m appModel) helpText() string {
	style := "light"
	if lipgloss.HasDarkBackground() {
		style = "dark"
	}
	// Avoid WithAutoStyle: it can block waiting on terminal queries.
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(modalBodyWidth(m.width)),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return strings.TrimRight(out, "\n") + "\n\n" + styleMuted().Render("esc: chiudi")
}
