package ui

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/recallhq/recall/internal/ui/modals"
)

// Space consumed by the modal frame in cells. The width overhead is
// two border columns plus four columns of padding; the height overhead
// is two border rows plus two rows of padding.
const (
	modalFrameWidth  = 6
	modalFrameHeight = 4
)

// Modal represents a popup dialog with type-safe state management.
// The State field is nil when no modal is visible.
type Modal struct {
	State modals.ModalState

	error        string
	screenWidth  int
	screenHeight int
}

// NewModal creates a new modal
func NewModal() *Modal {
	return &Modal{}
}

// Show displays a modal with the given state
func (m *Modal) Show(state modals.ModalState) {
	m.State = state
	m.error = ""
	m.applySize()
}

// Hide hides the modal
func (m *Modal) Hide() {
	m.State = nil
	m.error = ""
}

// IsVisible returns whether the modal is visible
func (m *Modal) IsVisible() bool {
	return m.State != nil
}

// SetError sets an error message
func (m *Modal) SetError(err string) {
	m.error = err
}

// GetError returns the current error message
func (m *Modal) GetError() string {
	return m.error
}

// SetSize records the screen dimensions and propagates them to the
// current state if it sizes its own content.
func (m *Modal) SetSize(width, height int) {
	m.screenWidth = width
	m.screenHeight = height
	m.applySize()
}

func (m *Modal) applySize() {
	sizable, ok := m.State.(modals.ModalWithSize)
	if !ok || m.screenWidth <= 0 {
		return
	}
	height := m.screenHeight - modalFrameHeight - 2
	if height < 4 {
		height = 4
	}
	sizable.SetSize(m.modalWidth(m.screenWidth), height)
}

// modalWidth returns the width the modal box should occupy on a screen of
// the given width: the state's preferred width when it declares one,
// clamped so the frame never overflows the screen.
func (m *Modal) modalWidth(screenWidth int) int {
	width := ModalWidth
	if pw, ok := m.State.(modals.ModalWithPreferredWidth); ok {
		width = pw.PreferredWidth()
	}
	if max := screenWidth - modalFrameWidth; width > max {
		width = max
	}
	if width < 1 {
		width = 1
	}
	return width
}

// Update handles messages by delegating to the current state
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m.State == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.State, cmd = m.State.Update(msg)
	return m, cmd
}

// View renders the modal centered on the screen
func (m *Modal) View(screenWidth, screenHeight int) string {
	if m.State == nil {
		return ""
	}

	content := m.State.Render()

	// Add error if present
	if m.error != "" {
		content += "\n" + StatusErrorStyle.Render(m.error)
	}

	modal := ModalStyle.Width(m.modalWidth(screenWidth)).Render(content)

	return lipgloss.Place(
		screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		modal,
	)
}
