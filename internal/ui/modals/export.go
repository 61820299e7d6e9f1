package modals

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/recallhq/recall/internal/export"
	"github.com/recallhq/recall/internal/keys"
)

// ExportState is the modal for writing a conversation to a file on disk.
type ExportState struct {
	ConversationID    string
	ConversationTitle string
	Formats           []export.Format
	SelectedIndex     int
	DestDir           string
}

func (*ExportState) modalState() {}

func (s *ExportState) Title() string { return "Export Conversation" }

func (s *ExportState) Help() string {
	return "up/down: format  Ctrl+P: preview  Enter: export  Esc: cancel"
}

func (s *ExportState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	nameLabel := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Render("Exporting:")

	name := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		MarginBottom(1).
		Render("  " + TruncateString(s.ConversationTitle, ModalWidth-8))

	formatLabel := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginTop(1).
		Render("Format:")

	labels := make([]string, len(s.Formats))
	for i, f := range s.Formats {
		labels[i] = f.Label()
	}
	formatList := RenderSelectableList(labels, s.SelectedIndex)

	dest := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		MarginTop(1).
		Render("Destination: " + TruncatePath(s.DestDir, ModalWidth-16))

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		nameLabel,
		name,
		formatLabel,
		formatList,
		dest,
		help,
	)
}

func (s *ExportState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Up, "k":
			if s.SelectedIndex > 0 {
				s.SelectedIndex--
			}
		case keys.Down, "j":
			if s.SelectedIndex < len(s.Formats)-1 {
				s.SelectedIndex++
			}
		}
	}
	return s, nil
}

// GetFormat returns the selected export format
func (s *ExportState) GetFormat() export.Format {
	if s.SelectedIndex >= 0 && s.SelectedIndex < len(s.Formats) {
		return s.Formats[s.SelectedIndex]
	}
	return export.FormatMarkdown
}

// NewExportState creates a new ExportState for a conversation
func NewExportState(conversationID, title, destDir string) *ExportState {
	return &ExportState{
		ConversationID:    conversationID,
		ConversationTitle: title,
		Formats:           export.Formats(),
		DestDir:           destDir,
	}
}
