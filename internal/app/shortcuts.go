package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/recallhq/recall/internal/ui"
	"github.com/recallhq/recall/internal/ui/modals"
)

// Shortcut categories, in help-modal display order.
const (
	CategoryGeneral       = "General"
	CategoryConversations = "Conversations"
	CategorySelection     = "Selection"
	CategoryView          = "View"
)

var categoryOrder = []string{
	CategoryGeneral,
	CategoryConversations,
	CategorySelection,
	CategoryView,
}

// Shortcut declares a single key binding: when it applies, what it does,
// and how the help modal describes it.
type Shortcut struct {
	Key         string // key string as produced by tea.KeyPressMsg.String()
	DisplayKey  string // what the help modal shows, defaults to Key
	Description string
	Category    string

	// RequiresSidebar limits the shortcut to sidebar focus.
	RequiresSidebar bool
	// RequiresConversation requires a target conversation (the open one
	// when the viewer is focused, otherwise the sidebar cursor).
	RequiresConversation bool

	Handler   func(m *Model) (tea.Model, tea.Cmd)
	Condition func(m *Model) bool
}

// ShortcutRegistry holds every executable shortcut except help, which is
// defined separately because its handler renders the registry itself.
var ShortcutRegistry = []Shortcut{
	{
		Key:         "tab",
		Description: "Switch panel",
		Category:    CategoryView,
		Condition:   func(m *Model) bool { return m.viewer.HasConversation() },
		Handler:     shortcutToggleFocus,
	},
	{
		Key:             "/",
		Description:     "Search conversations",
		Category:        CategoryGeneral,
		RequiresSidebar: true,
		Condition:       func(m *Model) bool { return !m.sidebar.IsSearchMode() },
		Handler:         shortcutSearch,
	},
	{
		Key:             "s",
		Description:     "Toggle selection mode",
		Category:        CategorySelection,
		RequiresSidebar: true,
		Handler:         shortcutToggleSelectionMode,
	},
	{
		Key:             "space",
		DisplayKey:      "Space",
		Description:     "Toggle conversation",
		Category:        CategorySelection,
		RequiresSidebar: true,
		Condition:       func(m *Model) bool { return m.sidebar.IsSelectionMode() },
		Handler:         shortcutToggleSelected,
	},
	{
		Key:             "a",
		Description:     "Select all / none",
		Category:        CategorySelection,
		RequiresSidebar: true,
		Condition:       func(m *Model) bool { return m.sidebar.IsSelectionMode() },
		Handler:         shortcutSelectAll,
	},
	{
		Key:             "d",
		Description:     "Delete conversation(s)",
		Category:        CategoryConversations,
		RequiresSidebar: true,
		Handler:         shortcutDelete,
	},
	{
		Key:             "r",
		Description:     "Rename conversation",
		Category:        CategoryConversations,
		RequiresSidebar: true,
		Condition:       func(m *Model) bool { return !m.sidebar.IsSelectionMode() },
		Handler:         shortcutRename,
	},
	{
		Key:             "c",
		Description:     "Duplicate conversation",
		Category:        CategoryConversations,
		RequiresSidebar: true,
		Condition:       func(m *Model) bool { return !m.sidebar.IsSelectionMode() },
		Handler:         shortcutDuplicate,
	},
	{
		Key:             "f",
		Description:     "Star / unstar conversation",
		Category:        CategoryConversations,
		RequiresSidebar: true,
		Condition:       func(m *Model) bool { return !m.sidebar.IsSelectionMode() },
		Handler:         shortcutToggleStar,
	},
	{
		Key:                  "e",
		Description:          "Export conversation",
		Category:             CategoryConversations,
		RequiresConversation: true,
		Handler:              shortcutExport,
	},
	{
		Key:                  "y",
		Description:          "Copy conversation link",
		Category:             CategoryConversations,
		RequiresConversation: true,
		Handler:              shortcutCopyLink,
	},
	{
		Key:         "ctrl+/",
		Description: "Search in conversation",
		Category:    CategoryView,
		Condition:   func(m *Model) bool { return m.viewer.HasConversation() },
		Handler:     shortcutSearchMessages,
	},
	{
		Key:         "t",
		Description: "Change theme",
		Category:    CategoryGeneral,
		Handler:     shortcutTheme,
	},
	{
		Key:         ",",
		Description: "Settings",
		Category:    CategoryGeneral,
		Handler:     shortcutSettings,
	},
	{
		Key:         "w",
		Description: "What's new",
		Category:    CategoryGeneral,
		Handler:     shortcutWhatsNew,
	},
	{
		Key:         "q",
		Description: "Quit",
		Category:    CategoryGeneral,
		Handler:     shortcutQuit,
	},
}

// helpShortcut lives outside the registry to avoid an initialization cycle:
// its handler walks the registry to build the help sections.
var helpShortcut = Shortcut{
	Key:         "?",
	Description: "Help",
	Category:    CategoryGeneral,
}

// The handler is assigned in init() rather than the composite literal above:
// shortcutHelp walks the registry via getApplicableHelpSections, which reads
// helpShortcut, so a direct reference would reintroduce the cycle.
func init() {
	helpShortcut.Handler = shortcutHelp
}

// DisplayOnlyShortcuts appear in the help modal but are handled by the
// panels themselves.
var DisplayOnlyShortcuts = []Shortcut{
	{DisplayKey: "↑/↓, j/k", Description: "Move cursor / scroll", Category: CategoryView},
	{DisplayKey: "PgUp/PgDn", Description: "Scroll transcript", Category: CategoryView},
	{DisplayKey: "Enter", Description: "Open conversation", Category: CategoryConversations},
	{DisplayKey: "Esc", Description: "Back / cancel", Category: CategoryGeneral},
	{DisplayKey: "Mouse drag", Description: "Select transcript text", Category: CategoryView},
}

// isShortcutApplicable reports whether a shortcut may run right now.
func (m *Model) isShortcutApplicable(s Shortcut) bool {
	if s.RequiresSidebar && m.focus != FocusSidebar {
		return false
	}
	if s.RequiresConversation && m.targetConversation() == nil {
		return false
	}
	if s.Condition != nil && !s.Condition(m) {
		return false
	}
	return true
}

// ExecuteShortcut runs the shortcut bound to key. The bool reports whether
// the key was consumed; unconsumed keys propagate to the focused panel.
func (m *Model) ExecuteShortcut(key string) (tea.Model, tea.Cmd, bool) {
	// While typing a search query, letters must reach the text input.
	if m.sidebar.IsSearchMode() && key != "/" {
		return m, nil, false
	}

	if key == helpShortcut.Key {
		model, cmd := helpShortcut.Handler(m)
		return model, cmd, true
	}

	for _, s := range ShortcutRegistry {
		if s.Key != key {
			continue
		}
		if !m.isShortcutApplicable(s) {
			return m, nil, false
		}
		model, cmd := s.Handler(m)
		return model, cmd, true
	}
	return m, nil, false
}

// getApplicableHelpSections builds the help modal contents from the
// registry, keeping only shortcuts that could run in the current state.
func (m *Model) getApplicableHelpSections() []modals.HelpSection {
	byCategory := make(map[string][]modals.HelpShortcut)

	add := func(s Shortcut) {
		display := s.DisplayKey
		if display == "" {
			display = s.Key
		}
		byCategory[s.Category] = append(byCategory[s.Category], modals.HelpShortcut{
			Key:  display,
			Desc: s.Description,
		})
	}

	for _, s := range ShortcutRegistry {
		if m.isShortcutApplicable(s) {
			add(s)
		}
	}
	add(helpShortcut)
	for _, s := range DisplayOnlyShortcuts {
		add(s)
	}

	sections := make([]modals.HelpSection, 0, len(categoryOrder))
	for _, category := range categoryOrder {
		shortcuts := byCategory[category]
		if len(shortcuts) == 0 {
			continue
		}
		sections = append(sections, modals.HelpSection{Title: category, Shortcuts: shortcuts})
	}
	return sections
}

func shortcutToggleFocus(m *Model) (tea.Model, tea.Cmd) {
	m.toggleFocus()
	return m, nil
}

func shortcutSearch(m *Model) (tea.Model, tea.Cmd) {
	return m, m.sidebar.EnterSearchMode()
}

func shortcutToggleSelectionMode(m *Model) (tea.Model, tea.Cmd) {
	m.sidebar.ToggleSelectionMode()
	return m, nil
}

func shortcutToggleSelected(m *Model) (tea.Model, tea.Cmd) {
	m.sidebar.ToggleSelected()
	return m, nil
}

func shortcutSelectAll(m *Model) (tea.Model, tea.Cmd) {
	m.sidebar.SelectAll()
	return m, nil
}

func shortcutDelete(m *Model) (tea.Model, tea.Cmd) {
	if m.sidebar.IsSelectionMode() {
		return m.requestBulkDelete()
	}
	return m.requestDelete()
}

func shortcutRename(m *Model) (tea.Model, tea.Cmd) {
	conv := m.sidebar.SelectedConversation()
	if conv == nil {
		return m, nil
	}
	m.modal.Show(modals.NewRenameState(conv.ID, conv.Title))
	return m, nil
}

func shortcutDuplicate(m *Model) (tea.Model, tea.Cmd) {
	conv := m.sidebar.SelectedConversation()
	if conv == nil {
		return m, nil
	}
	m.modal.Show(modals.NewDuplicateState(conv.ID, conv.Title))
	return m, nil
}

func shortcutToggleStar(m *Model) (tea.Model, tea.Cmd) {
	conv := m.sidebar.SelectedConversation()
	if conv == nil {
		return m, nil
	}
	return m, m.toggleStar(*conv)
}

func shortcutExport(m *Model) (tea.Model, tea.Cmd) {
	conv := m.targetConversation()
	if conv == nil {
		return m, nil
	}
	m.modal.Show(modals.NewExportState(conv.ID, conv.Title, m.config.GetExportDir()))
	return m, nil
}

func shortcutCopyLink(m *Model) (tea.Model, tea.Cmd) {
	return m.copyConversationLink()
}

func shortcutSearchMessages(m *Model) (tea.Model, tea.Cmd) {
	if !m.viewer.HasConversation() {
		return m, nil
	}
	m.modal.Show(modals.NewSearchMessagesState(m.viewer.Messages()))
	return m, nil
}

func shortcutTheme(m *Model) (tea.Model, tea.Cmd) {
	names, displayNames := themeChoices()
	m.modal.Show(modals.NewThemeState(names, displayNames, string(ui.CurrentThemeName())))
	return m, nil
}

func shortcutSettings(m *Model) (tea.Model, tea.Cmd) {
	names, displayNames := themeChoices()
	m.modal.Show(modals.NewSettingsState(
		names,
		displayNames,
		string(ui.CurrentThemeName()),
		m.config.GetProfile(),
		m.config.GetNotificationsEnabled(),
		m.config.GetExportDir(),
	))
	return m, nil
}

func shortcutWhatsNew(m *Model) (tea.Model, tea.Cmd) {
	return m.showChangelogModal()
}

func shortcutQuit(m *Model) (tea.Model, tea.Cmd) {
	return m, tea.Quit
}

func shortcutHelp(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewHelpStateFromSections(m.getApplicableHelpSections()))
	return m, nil
}

// themeChoices returns the theme keys and display names in menu order.
func themeChoices() (names, displayNames []string) {
	for _, n := range ui.ThemeNames() {
		names = append(names, string(n))
		displayNames = append(displayNames, ui.GetTheme(n).Name)
	}
	return names, displayNames
}
