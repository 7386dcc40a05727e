package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"palchi-cli/internal/format"
	"palchi-cli/internal/model"
)

type eventItem struct{ event model.Event }

func (it eventItem) FilterValue() string { return it.event.Title + " " + it.event.Location }

func (it eventItem) Title() string {
	parts := []string{
		format.Date(&it.event.StartDatetime),
		it.event.Title,
		it.event.Location,
		string(it.event.Status),
	}
	return strings.Join(parts, "  ")
}

type associationItem struct{ association model.Association }

func (it associationItem) FilterValue() string { return it.association.Name }

func (it associationItem) Title() string {
	n := len(it.association.Volunteers)
	label := "volontari"
	if n == 1 {
		label = "volontario"
	}
	return fmt.Sprintf("%s  (%d %s)", it.association.Name, n, label)
}

type statusFilterItem struct {
	label  string
	status *model.EventStatus
}

func (it statusFilterItem) FilterValue() string { return it.label }
func (it statusFilterItem) Title() string      { return it.label }

type associationPickItem struct{ association model.Association }

func (it associationPickItem) FilterValue() string { return it.association.Name }
func (it associationPickItem) Title() string       { return it.association.Name }

func newList(title, statusBar string, items []list.Item) list.Model {
	l := list.New(items, newCompactItemDelegate(), 0, 0)
	l.Title = title
	l.SetStatusBarItemName(statusBar, statusBar)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	return l
}

func newPickList(title string, items []list.Item) list.Model {
	l := list.New(items, newCompactItemDelegate(), 0, 0)
	l.Title = title
	l.SetFilteringEnabled(false)
	l.SetShowFilter(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	return l
}

type compactItemDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
}

func newCompactItemDelegate() compactItemDelegate {
	return compactItemDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
	}
}

func (d compactItemDelegate) Height() int  { return 1 }
func (d compactItemDelegate) Spacing() int { return 0 }
func (d compactItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d compactItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	style := d.normal
	if index == m.Index() {
		style = d.selected
	}

	txt := ""
	if t, ok := item.(interface{ Title() string }); ok {
		txt = t.Title()
	} else {
		txt = fmt.Sprint(item)
	}

	line := txt
	lineW := xansi.StringWidth(line)
	if lineW < contentW {
		line += strings.Repeat(" ", contentW-lineW)
	} else if lineW > contentW {
		line = xansi.Cut(line, 0, contentW)
	}

	fmt.Fprint(w, style.Render(line))
}
