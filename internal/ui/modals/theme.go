package modals

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/recallhq/recall/internal/keys"
)

// ThemeState is the quick theme picker. The app applies the highlighted
// theme immediately so navigation doubles as a live preview; Esc restores
// the original.
type ThemeState struct {
	Names         []string
	DisplayNames  []string
	OriginalName  string
	SelectedIndex int
}

func (*ThemeState) modalState() {}

func (s *ThemeState) Title() string { return "Theme" }

func (s *ThemeState) Help() string {
	return "up/down: preview  Enter: apply  Esc: revert"
}

func (s *ThemeState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	items := make([]string, len(s.Names))
	for i, name := range s.Names {
		label := s.DisplayNames[i]
		if name == s.OriginalName {
			label += " (current)"
		}
		items[i] = label
	}
	list := RenderSelectableList(items, s.SelectedIndex)

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, list, help)
}

func (s *ThemeState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Up, "k":
			if s.SelectedIndex > 0 {
				s.SelectedIndex--
			}
		case keys.Down, "j":
			if s.SelectedIndex < len(s.Names)-1 {
				s.SelectedIndex++
			}
		}
	}
	return s, nil
}

// GetSelectedTheme returns the highlighted theme key
func (s *ThemeState) GetSelectedTheme() string {
	if s.SelectedIndex >= 0 && s.SelectedIndex < len(s.Names) {
		return s.Names[s.SelectedIndex]
	}
	return s.OriginalName
}

// GetOriginalTheme returns the theme that was active when the picker opened
func (s *ThemeState) GetOriginalTheme() string {
	return s.OriginalName
}

// NewThemeState creates a theme picker with the cursor on the active theme.
// names and displayNames are parallel slices.
func NewThemeState(names, displayNames []string, current string) *ThemeState {
	selected := 0
	for i, name := range names {
		if name == current {
			selected = i
			break
		}
	}
	return &ThemeState{
		Names:         names,
		DisplayNames:  displayNames,
		OriginalName:  current,
		SelectedIndex: selected,
	}
}
