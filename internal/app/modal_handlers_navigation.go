package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/recallhq/recall/internal/keys"
	"github.com/recallhq/recall/internal/logger"
	"github.com/recallhq/recall/internal/ui/modals"
)

// handleHelpModalKey drives the help modal. While the user types a filter,
// every key belongs to the list.
func (m *Model) handleHelpModalKey(key string, msg tea.KeyPressMsg, state *modals.HelpState) (tea.Model, tea.Cmd) {
	if state.IsFiltering() {
		return m.forwardModalKey(msg)
	}

	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil

	case keys.Enter:
		shortcut := state.GetSelectedShortcut()
		if shortcut == nil {
			return m, nil
		}
		m.modal.Hide()
		// Run the shortcut on the next cycle, once the modal is gone;
		// it may open a modal of its own.
		triggered := shortcut.Key
		return m, func() tea.Msg { return modals.HelpShortcutTriggeredMsg{Key: triggered} }
	}
	return m.forwardModalKey(msg)
}

// executableKeyFor maps a help-modal display key back to the registry key
// it stands for. Display-only rows map to nothing.
func executableKeyFor(display string) string {
	if display == helpShortcut.Key {
		return helpShortcut.Key
	}
	for _, s := range ShortcutRegistry {
		d := s.DisplayKey
		if d == "" {
			d = s.Key
		}
		if d == display || s.Key == display {
			return s.Key
		}
	}
	return ""
}

// handleSearchMessagesModalKey drives the in-conversation search modal.
func (m *Model) handleSearchMessagesModalKey(key string, msg tea.KeyPressMsg, state *modals.SearchMessagesState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil

	case keys.Enter:
		result := state.GetSelectedResult()
		if result == nil {
			return m, nil
		}
		m.modal.Hide()
		m.viewer.ScrollToMessage(result.MessageIndex)
		m.setFocus(FocusViewer)
		return m, nil
	}
	return m.forwardModalKey(msg)
}

// handleWelcomeModalKey dismisses the first-run welcome, then re-runs the
// startup chain in case release notes are waiting behind it.
func (m *Model) handleWelcomeModalKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Enter, keys.Escape:
		m.config.MarkWelcomeShown()
		if err := m.config.Save(); err != nil {
			logger.Warn("app: could not save config: %v", err)
		}
		m.modal.Hide()
		return m.handleStartupModals()
	}
	return m, nil
}

// handleChangelogModalKey dismisses the release notes and records the
// version so they stay dismissed.
func (m *Model) handleChangelogModalKey(key string, msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Enter, keys.Escape:
		m.config.SetLastSeenVersion(m.version)
		if err := m.config.Save(); err != nil {
			logger.Warn("app: could not save config: %v", err)
		}
		m.modal.Hide()
		return m, nil
	}
	return m.forwardModalKey(msg)
}
