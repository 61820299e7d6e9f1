package modals

import (
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/recallhq/recall/internal/config"
)

// =============================================================================
// SettingsState - State for the Settings modal
// =============================================================================

type SettingsState struct {
	// Bound form values
	selectedTheme        string
	OriginalTheme        string // To detect if theme changed
	profileName          string
	profileEmail         string
	exportDir            string
	NotificationsEnabled bool

	// MultiSelect bindings
	generalOptions []string

	form *huh.Form

	// Size tracking
	availableWidth int
}

const optionNotifications = "notifications"

func (*SettingsState) modalState() {}

func (s *SettingsState) PreferredWidth() int { return ModalWidthWide }

// SetSize updates the available width for rendering content.
func (s *SettingsState) SetSize(width, height int) {
	s.availableWidth = width
	s.form.WithWidth(s.contentWidth())
}

func (s *SettingsState) contentWidth() int {
	if s.availableWidth > 0 {
		return s.availableWidth - 10
	}
	return ModalWidthWide - 10
}

func (s *SettingsState) Title() string { return "Settings" }

func (s *SettingsState) Help() string {
	return "Tab: next field  Enter: save  Esc: cancel"
}

func (s *SettingsState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *SettingsState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	s.syncFromMultiSelect()
	return s, cmd
}

// syncFromMultiSelect updates boolean fields from the MultiSelect bindings.
func (s *SettingsState) syncFromMultiSelect() {
	s.NotificationsEnabled = slices.Contains(s.generalOptions, optionNotifications)
}

// GetSelectedTheme returns the selected theme key.
func (s *SettingsState) GetSelectedTheme() string {
	return s.selectedTheme
}

// ThemeChanged returns true if the selected theme differs from the original.
func (s *SettingsState) ThemeChanged() bool {
	return s.selectedTheme != s.OriginalTheme
}

// GetProfile returns the profile as edited in the form.
func (s *SettingsState) GetProfile() config.Profile {
	return config.Profile{
		Name:  strings.TrimSpace(s.profileName),
		Email: strings.TrimSpace(s.profileEmail),
	}
}

// GetExportDir returns the export directory value.
func (s *SettingsState) GetExportDir() string {
	return strings.TrimSpace(s.exportDir)
}

// GetNotificationsEnabled returns whether notifications are enabled
func (s *SettingsState) GetNotificationsEnabled() bool {
	return s.NotificationsEnabled
}

// NewSettingsState creates a new SettingsState with the current settings values.
func NewSettingsState(themes []string, themeDisplayNames []string, currentTheme string,
	profile config.Profile, notificationsEnabled bool, exportDir string) *SettingsState {

	s := &SettingsState{
		selectedTheme:        currentTheme,
		OriginalTheme:        currentTheme,
		profileName:          profile.Name,
		profileEmail:         profile.Email,
		exportDir:            exportDir,
		NotificationsEnabled: notificationsEnabled,
		availableWidth:       ModalWidthWide,
	}

	// Build theme options
	themeOptions := make([]huh.Option[string], len(themes))
	for i := range themes {
		themeOptions[i] = huh.NewOption(themeDisplayNames[i], themes[i])
	}

	// Build general options MultiSelect
	generalOpts := []huh.Option[string]{
		huh.NewOption("Desktop notifications", optionNotifications).
			Selected(notificationsEnabled),
	}
	// Initialize the bound slice to match
	if notificationsEnabled {
		s.generalOptions = append(s.generalOptions, optionNotifications)
	}

	generalGroup := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Theme").
			Options(themeOptions...).
			Value(&s.selectedTheme),
		huh.NewInput().
			Title("Name").
			Description("Shown in the header badge and export metadata").
			Placeholder("e.g., Ada Lovelace").
			CharLimit(ModalInputCharLimit).
			Value(&s.profileName),
		huh.NewInput().
			Title("Email").
			Placeholder("e.g., ada@example.com").
			CharLimit(ModalInputCharLimit).
			Value(&s.profileEmail),
		huh.NewInput().
			Title("Export directory").
			Description("Where exported conversations are written").
			CharLimit(ModalInputCharLimit).
			Value(&s.exportDir),
		huh.NewMultiSelect[string]().
			Title("Options").
			Options(generalOpts...).
			Height(len(generalOpts)).
			Value(&s.generalOptions),
	)

	s.form = huh.NewForm(generalGroup).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(s.contentWidth()).
		WithLayout(huh.LayoutStack)

	initHuhForm(s.form)
	return s
}
