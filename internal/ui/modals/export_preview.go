package modals

import (
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
)

// ExportPreviewState shows the markdown a conversation would export to,
// rendered for the terminal, before any file is written.
type ExportPreviewState struct {
	ConversationID    string
	ConversationTitle string

	viewport viewport.Model
}

func (*ExportPreviewState) modalState() {}

func (s *ExportPreviewState) PreferredWidth() int { return ModalWidthWide }

func (s *ExportPreviewState) Title() string { return "Export Preview" }

func (s *ExportPreviewState) Help() string {
	return "up/down: scroll  Esc: back"
}

// SetSize fits the preview viewport inside the modal frame.
func (s *ExportPreviewState) SetSize(width, height int) {
	// Title and help each take a line plus a margin line.
	const overhead = 4
	vpHeight := height - overhead
	if vpHeight < 1 {
		vpHeight = 1
	}
	s.viewport.SetWidth(width)
	s.viewport.SetHeight(vpHeight)
}

func (s *ExportPreviewState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	name := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Render(TruncateString(s.ConversationTitle, ModalWidthWide-8))

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, name, s.viewport.View(), help)
}

func (s *ExportPreviewState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return s, cmd
}

// NewExportPreviewState renders the markdown through glamour; when that
// fails the preview falls back to the raw markdown.
func NewExportPreviewState(conversationID, title, markdown string) *ExportPreviewState {
	content, err := glamour.Render(markdown, "dark")
	if err != nil {
		content = markdown
	}

	vp := viewport.New()
	vp.SetWidth(ModalWidthWide - 4)
	vp.SetHeight(ExportPreviewMaxVisible)
	vp.SetContent(content)

	return &ExportPreviewState{
		ConversationID:    conversationID,
		ConversationTitle: title,
		viewport:          vp,
	}
}
