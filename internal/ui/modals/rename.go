package modals

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// RenameState is the modal for editing a conversation title. The slug is
// fixed at creation time and never changes here, so links keep working.
type RenameState struct {
	ConversationID string
	CurrentTitle   string
	TitleInput     textinput.Model
	Generating     bool // a title suggestion request is in flight
}

func (*RenameState) modalState() {}

func (s *RenameState) Title() string { return "Rename Conversation" }

func (s *RenameState) Help() string {
	if s.Generating {
		return "Esc: cancel"
	}
	return "Enter: save  Ctrl+G: suggest title  Esc: cancel"
}

func (s *RenameState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	currentLabel := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Render("Current title:")

	currentTitle := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		MarginBottom(1).
		Render("  " + TruncateString(s.CurrentTitle, ModalWidth-8))

	newLabel := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginTop(1).
		Render("New title:")

	inputStyle := lipgloss.NewStyle().
		BorderLeft(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorPrimary).
		PaddingLeft(1)
	inputView := inputStyle.Render(s.TitleInput.View())

	parts := []string{title, currentLabel, currentTitle, newLabel, inputView}

	if s.Generating {
		generating := lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			MarginTop(1).
			Render("Suggesting a title from the transcript...")
		parts = append(parts, generating)
	}

	help := ModalHelpStyle.Render(s.Help())
	parts = append(parts, help)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *RenameState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.TitleInput, cmd = s.TitleInput.Update(msg)
	return s, cmd
}

// GetNewTitle returns the title entered by the user
func (s *RenameState) GetNewTitle() string {
	return s.TitleInput.Value()
}

// SetGenerating toggles the suggestion-in-flight indicator
func (s *RenameState) SetGenerating(generating bool) {
	s.Generating = generating
}

// ApplySuggestedTitle replaces the input contents with a generated title
func (s *RenameState) ApplySuggestedTitle(title string) {
	s.Generating = false
	if title != "" {
		s.TitleInput.SetValue(title)
	}
}

// NewRenameState creates a new RenameState with the input prefilled
func NewRenameState(conversationID, currentTitle string) *RenameState {
	titleInput := textinput.New()
	titleInput.Placeholder = "enter new title"
	titleInput.CharLimit = ModalInputCharLimit
	titleInput.SetWidth(ModalInputWidth)
	titleInput.SetValue(currentTitle)
	titleInput.Focus()

	return &RenameState{
		ConversationID: conversationID,
		CurrentTitle:   currentTitle,
		TitleInput:     titleInput,
	}
}
