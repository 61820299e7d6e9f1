package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/recallhq/recall/internal/ui"
)

// routeScrollAndMouseEvents routes scroll keys and mouse events to the panel
// they belong to, regardless of which one has focus. Returns a command when
// the event was handled, nil otherwise.
func (m *Model) routeScrollAndMouseEvents(msg tea.Msg) tea.Cmd {
	if !m.viewer.HasConversation() {
		return nil
	}

	if m.focus == FocusSidebar {
		if cmd := m.routeSidebarFocusedEvents(msg); cmd != nil {
			return cmd
		}
	}

	if m.focus == FocusViewer {
		if cmd := m.routeMouseEventsToViewer(msg); cmd != nil {
			return cmd
		}
	}

	return nil
}

// routeSidebarFocusedEvents sends transcript scrolling to the viewer while
// the sidebar keeps focus.
func (m *Model) routeSidebarFocusedEvents(msg tea.Msg) tea.Cmd {
	if keyMsg, isKey := msg.(tea.KeyPressMsg); isKey {
		if m.sidebar.IsSearchMode() {
			return nil
		}
		switch keyMsg.String() {
		case "pgup", "pgdown", "page up", "page down", "ctrl+u", "ctrl+d", "home", "end":
			viewer, cmd := m.viewer.Update(msg)
			m.viewer = viewer
			return cmd
		}
	}

	if mouseMsg, isMouse := msg.(tea.MouseWheelMsg); isMouse {
		if mouseMsg.X > m.sidebar.Width() {
			viewer, cmd := m.viewer.Update(msg)
			m.viewer = viewer
			return cmd
		}
	}

	return m.routeMouseEventsToViewer(msg)
}

// routeMouseEventsToViewer forwards click, motion, and release events that
// land on the transcript, shifting coordinates past the sidebar and header.
func (m *Model) routeMouseEventsToViewer(msg tea.Msg) tea.Cmd {
	sidebarWidth := m.sidebar.Width()

	switch mouseMsg := msg.(type) {
	case tea.MouseClickMsg:
		if mouseMsg.X > sidebarWidth {
			adjusted := tea.MouseClickMsg{
				X:      mouseMsg.X - sidebarWidth,
				Y:      mouseMsg.Y - ui.HeaderHeight,
				Button: mouseMsg.Button,
				Mod:    mouseMsg.Mod,
			}
			viewer, cmd := m.viewer.Update(adjusted)
			m.viewer = viewer
			return cmd
		}

	case tea.MouseMotionMsg:
		if mouseMsg.X > sidebarWidth {
			adjusted := tea.MouseMotionMsg{
				X:      mouseMsg.X - sidebarWidth,
				Y:      mouseMsg.Y - ui.HeaderHeight,
				Button: mouseMsg.Button,
				Mod:    mouseMsg.Mod,
			}
			viewer, cmd := m.viewer.Update(adjusted)
			m.viewer = viewer
			return cmd
		}

	case tea.MouseReleaseMsg:
		if mouseMsg.X > sidebarWidth {
			adjusted := tea.MouseReleaseMsg{
				X:      mouseMsg.X - sidebarWidth,
				Y:      mouseMsg.Y - ui.HeaderHeight,
				Button: mouseMsg.Button,
				Mod:    mouseMsg.Mod,
			}
			viewer, cmd := m.viewer.Update(adjusted)
			m.viewer = viewer
			return cmd
		}
	}

	return nil
}
