package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/recallhq/recall/internal/keys"
	"github.com/recallhq/recall/internal/logger"
	"github.com/recallhq/recall/internal/ui"
	"github.com/recallhq/recall/internal/ui/modals"
)

// handleSettingsModalKey drives the settings form. Tab moves between fields
// inside the form; Enter saves everything at once.
func (m *Model) handleSettingsModalKey(key string, msg tea.KeyPressMsg, state *modals.SettingsState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil

	case keys.Enter:
		return m.saveSettings(state)
	}
	return m.forwardModalKey(msg)
}

// saveSettings applies and persists the settings form.
func (m *Model) saveSettings(state *modals.SettingsState) (tea.Model, tea.Cmd) {
	theme := state.GetSelectedTheme()
	if state.ThemeChanged() {
		ui.SetThemeByName(theme)
	}
	m.config.SetTheme(theme)
	m.config.SetProfile(state.GetProfile())
	m.config.SetExportDir(state.GetExportDir())
	m.config.SetNotificationsEnabled(state.GetNotificationsEnabled())

	if err := m.config.Save(); err != nil {
		logger.Error("app: could not save settings: %v", err)
		m.modal.SetError("Could not save settings")
		return m, nil
	}

	m.header.SetProfile(m.config.GetProfile().DisplayName())
	m.modal.Hide()
	return m, m.ShowFlashSuccess("Settings saved")
}

// handleThemeModalKey drives the theme picker. The highlighted theme is
// applied immediately so the change is visible behind the modal; Esc puts
// the original back.
func (m *Model) handleThemeModalKey(key string, msg tea.KeyPressMsg, state *modals.ThemeState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		ui.SetThemeByName(state.GetOriginalTheme())
		m.modal.Hide()
		return m, nil

	case keys.Enter:
		theme := state.GetSelectedTheme()
		ui.SetThemeByName(theme)
		m.config.SetTheme(theme)
		if err := m.config.Save(); err != nil {
			logger.Error("app: could not save theme: %v", err)
			m.modal.SetError("Could not save theme")
			return m, nil
		}
		m.modal.Hide()
		return m, nil
	}

	model, cmd := m.forwardModalKey(msg)
	if themeState, ok := m.modal.State.(*modals.ThemeState); ok {
		ui.SetThemeByName(themeState.GetSelectedTheme())
	}
	return model, cmd
}
