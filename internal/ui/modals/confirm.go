package modals

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/recallhq/recall/internal/keys"
)

// =============================================================================
// ConfirmDeleteState - State for the single-conversation delete confirmation
// =============================================================================

type ConfirmDeleteState struct {
	ConversationID    string
	ConversationTitle string
	Options           []string
	SelectedIndex     int
}

func (*ConfirmDeleteState) modalState() {}

func (s *ConfirmDeleteState) Title() string { return "Delete Conversation" }

func (s *ConfirmDeleteState) Help() string {
	return "up/down: choose  Enter: confirm  Esc: cancel"
}

func (s *ConfirmDeleteState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	name := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		Render("  " + TruncateString(s.ConversationTitle, ModalWidth-8))

	warning := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		MarginTop(1).
		MarginBottom(1).
		Render("This permanently deletes the conversation and its cached snapshot.")

	options := RenderSelectableList(s.Options, s.SelectedIndex)
	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		name,
		warning,
		options,
		help,
	)
}

func (s *ConfirmDeleteState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Up, "k":
			if s.SelectedIndex > 0 {
				s.SelectedIndex--
			}
		case keys.Down, "j":
			if s.SelectedIndex < len(s.Options)-1 {
				s.SelectedIndex++
			}
		}
	}
	return s, nil
}

// IsConfirmed returns whether the destructive option is selected
func (s *ConfirmDeleteState) IsConfirmed() bool {
	return s.SelectedIndex == 1
}

// NewConfirmDeleteState creates a confirmation for deleting one conversation.
// The cursor starts on Cancel so a stray Enter does nothing destructive.
func NewConfirmDeleteState(conversationID, title string) *ConfirmDeleteState {
	return &ConfirmDeleteState{
		ConversationID:    conversationID,
		ConversationTitle: title,
		Options:           []string{"Cancel", "Delete"},
		SelectedIndex:     0,
	}
}

// =============================================================================
// BulkDeleteState - State for the multi-conversation delete confirmation
// =============================================================================

// BulkDeleteState holds the set of conversations a bulk delete will act on.
// The ID list is fixed when the modal opens; selection changes made while the
// modal is up do not alter it.
type BulkDeleteState struct {
	IDs           []string
	Titles        []string
	Options       []string
	SelectedIndex int
}

func (*BulkDeleteState) modalState() {}

func (s *BulkDeleteState) Title() string {
	if len(s.IDs) == 1 {
		return "Delete 1 Conversation"
	}
	return fmt.Sprintf("Delete %d Conversations", len(s.IDs))
}

func (s *BulkDeleteState) Help() string {
	return "up/down: choose  Enter: confirm  Esc: cancel"
}

func (s *BulkDeleteState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	itemStyle := lipgloss.NewStyle().Foreground(ColorTextMuted)
	const maxListed = 8
	var listed string
	for i, t := range s.Titles {
		if i == maxListed {
			listed += itemStyle.Render(fmt.Sprintf("  …and %d more", len(s.Titles)-maxListed)) + "\n"
			break
		}
		listed += itemStyle.Render("  • "+TruncateString(t, ModalWidth-10)) + "\n"
	}

	warning := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		MarginTop(1).
		MarginBottom(1).
		Render("This permanently deletes these conversations and their cached snapshots.")

	options := RenderSelectableList(s.Options, s.SelectedIndex)
	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		listed,
		warning,
		options,
		help,
	)
}

func (s *BulkDeleteState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Up, "k":
			if s.SelectedIndex > 0 {
				s.SelectedIndex--
			}
		case keys.Down, "j":
			if s.SelectedIndex < len(s.Options)-1 {
				s.SelectedIndex++
			}
		}
	}
	return s, nil
}

// IsConfirmed returns whether the destructive option is selected
func (s *BulkDeleteState) IsConfirmed() bool {
	return s.SelectedIndex == 1
}

// ConversationIDs returns the IDs captured when the modal opened
func (s *BulkDeleteState) ConversationIDs() []string {
	return s.IDs
}

// NewBulkDeleteState creates a confirmation for deleting several conversations.
// ids and titles are parallel slices; both are copied so later changes to the
// selection cannot reach the pending confirmation.
func NewBulkDeleteState(ids, titles []string) *BulkDeleteState {
	return &BulkDeleteState{
		IDs:           append([]string(nil), ids...),
		Titles:        append([]string(nil), titles...),
		Options:       []string{"Cancel", "Delete"},
		SelectedIndex: 0,
	}
}
