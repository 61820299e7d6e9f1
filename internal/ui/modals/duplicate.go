package modals

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// DuplicateState is the modal for copying a conversation under a new title.
// The copy gets its own ID and slug; the transcript is carried over verbatim.
type DuplicateState struct {
	SourceID    string
	SourceTitle string
	TitleInput  textinput.Model
}

func (*DuplicateState) modalState() {}

func (s *DuplicateState) Title() string { return "Duplicate Conversation" }

func (s *DuplicateState) Help() string {
	return "Enter: duplicate  Esc: cancel"
}

func (s *DuplicateState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	sourceLabel := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Render("Duplicating:")

	sourceTitle := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		MarginBottom(1).
		Render("  " + TruncateString(s.SourceTitle, ModalWidth-8))

	newLabel := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginTop(1).
		Render("Title for the copy:")

	inputStyle := lipgloss.NewStyle().
		BorderLeft(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorPrimary).
		PaddingLeft(1)
	inputView := inputStyle.Render(s.TitleInput.View())

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		sourceLabel,
		sourceTitle,
		newLabel,
		inputView,
		help,
	)
}

func (s *DuplicateState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.TitleInput, cmd = s.TitleInput.Update(msg)
	return s, cmd
}

// GetTitle returns the title entered for the copy
func (s *DuplicateState) GetTitle() string {
	return s.TitleInput.Value()
}

// NewDuplicateState creates a new DuplicateState with a suggested title
func NewDuplicateState(sourceID, sourceTitle string) *DuplicateState {
	titleInput := textinput.New()
	titleInput.Placeholder = "title for the copy"
	titleInput.CharLimit = ModalInputCharLimit
	titleInput.SetWidth(ModalInputWidth)
	titleInput.SetValue(sourceTitle + " (copy)")
	titleInput.Focus()

	return &DuplicateState{
		SourceID:    sourceID,
		SourceTitle: sourceTitle,
		TitleInput:  titleInput,
	}
}
