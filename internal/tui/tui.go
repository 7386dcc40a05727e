// Package tui is the interactive terminal frontend. It renders the cached
// controller state and translates keys into controller operations; every
// network call runs as a tea command so the UI never blocks.
package tui

import (
	"palchi-cli/internal/state"
	"palchi-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(ctrl *state.Controller, st store.Store) error {
	applyColorProfilePreference()
	applyThemePreference(st)

	m := newAppModel(ctrl, st)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(appModel); ok {
		fm.persistTUIState()
	}
	return nil
}
