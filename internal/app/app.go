package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/recallhq/recall/internal/changelog"
	"github.com/recallhq/recall/internal/config"
	"github.com/recallhq/recall/internal/history"
	"github.com/recallhq/recall/internal/logger"
	"github.com/recallhq/recall/internal/snapshot"
	"github.com/recallhq/recall/internal/summarize"
	"github.com/recallhq/recall/internal/ui"
	"github.com/recallhq/recall/internal/ui/modals"
)

// Focus identifies which panel keyboard input routes to.
type Focus int

const (
	FocusSidebar Focus = iota
	FocusViewer
)

// Model is the root state for the TUI application.
type Model struct {
	config  *config.Config
	version string

	store      history.Store
	snapshots  *snapshot.Cache
	deleter    *history.Deleter
	summarizer *summarize.Client

	header  *ui.Header
	footer  *ui.Footer
	sidebar *ui.Sidebar
	viewer  *ui.Viewer
	modal   *ui.Modal

	width  int
	height int

	focus         Focus
	windowFocused bool
}

// New creates the application model. The store is required; snapshots may be
// nil when the snapshot cache is unavailable.
func New(cfg *config.Config, version string, store history.Store, snapshots *snapshot.Cache) *Model {
	ui.SetThemeByName(cfg.GetTheme())

	m := &Model{
		config:        cfg,
		version:       version,
		store:         store,
		snapshots:     snapshots,
		summarizer:    summarize.NewFromEnv(),
		header:        ui.NewHeader(),
		footer:        ui.NewFooter(),
		sidebar:       ui.NewSidebar(),
		viewer:        ui.NewViewer(),
		modal:         ui.NewModal(),
		focus:         FocusSidebar,
		windowFocused: true,
	}

	// A nil *snapshot.Cache must not reach the deleter as a non-nil
	// interface value.
	var snaps history.Snapshots
	if snapshots != nil {
		snaps = snapshots
	}
	m.deleter = history.NewDeleter(store, snaps, m.sidebar.ActiveID)

	m.header.SetProfile(cfg.GetProfile().DisplayName())
	m.sidebar.SetFocused(true)

	return m
}

// Init loads the conversation list and schedules the startup modal check.
func (m *Model) Init() tea.Cmd {
	logger.Info("app: starting recall %s", m.version)
	return tea.Batch(
		m.loadConversations(),
		func() tea.Msg { return StartupModalMsg{} },
	)
}

// setFocus moves keyboard focus between the sidebar and the viewer.
func (m *Model) setFocus(focus Focus) {
	m.focus = focus
	m.sidebar.SetFocused(focus == FocusSidebar)
	m.viewer.SetFocused(focus == FocusViewer)
}

// toggleFocus switches panels. The viewer only takes focus when a
// conversation is open.
func (m *Model) toggleFocus() {
	if m.focus == FocusSidebar && !m.viewer.HasConversation() {
		return
	}
	if m.focus == FocusSidebar {
		m.setFocus(FocusViewer)
	} else {
		m.setFocus(FocusSidebar)
	}
}

// navigateHome returns to the root view: no open conversation, sidebar
// focused.
func (m *Model) navigateHome() {
	m.viewer.ClearConversation()
	m.sidebar.SetActive("")
	m.header.SetConversationTitle("")
	m.header.SetStats(nil)
	m.setFocus(FocusSidebar)
}

// targetConversation returns the conversation an action should apply to:
// the open one when the viewer is focused, otherwise the sidebar cursor.
func (m *Model) targetConversation() *history.Conversation {
	if m.focus == FocusViewer {
		return m.viewer.Conversation()
	}
	return m.sidebar.SelectedConversation()
}

// handleStartupModals shows the welcome modal on first run, then the
// changelog when the app has been upgraded since the last session.
func (m *Model) handleStartupModals() (tea.Model, tea.Cmd) {
	if !m.config.HasSeenWelcome() {
		m.modal.Show(modals.NewWelcomeState())
		return m, nil
	}

	entries := changelog.Parse(changelog.Content)
	changes := changelog.GetChangesSince(m.config.GetLastSeenVersion(), entries)
	if len(changes) == 0 {
		return m, nil
	}

	m.modal.Show(modals.NewChangelogState(changelogDisplayEntries(changes)))
	return m, nil
}

// showChangelogModal opens the full version history, not just the unseen
// part.
func (m *Model) showChangelogModal() (tea.Model, tea.Cmd) {
	entries := changelog.Parse(changelog.Content)
	if len(entries) == 0 {
		return m, m.ShowFlashInfo("No release notes available")
	}
	m.modal.Show(modals.NewChangelogState(changelogDisplayEntries(entries)))
	return m, nil
}

func changelogDisplayEntries(entries []changelog.Entry) []modals.ChangelogEntry {
	display := make([]modals.ChangelogEntry, len(entries))
	for i, e := range entries {
		display[i] = modals.ChangelogEntry{Version: e.Version, Date: e.Date, Changes: e.Changes}
	}
	return display
}
