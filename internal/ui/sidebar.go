package ui

import (
	"hash/fnv"
	"image/color"
	"strconv"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/recallhq/recall/internal/history"
	"github.com/recallhq/recall/internal/keys"
)

// Date bucket labels, in display order.
const (
	bucketToday     = "Today"
	bucketYesterday = "Yesterday"
	bucketWeek      = "Previous 7 Days"
	bucketMonth     = "Previous 30 Days"
	bucketOlder     = "Older"
)

// bucketOrder fixes the order buckets appear in the sidebar.
var bucketOrder = []string{bucketToday, bucketYesterday, bucketWeek, bucketMonth, bucketOlder}

// bucketFor assigns a timestamp to a date bucket relative to now.
// Future timestamps (clock skew, imports) land in Today.
func bucketFor(ts, now time.Time) string {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch {
	case !ts.Before(today):
		return bucketToday
	case !ts.Before(today.AddDate(0, 0, -1)):
		return bucketYesterday
	case !ts.Before(today.AddDate(0, 0, -7)):
		return bucketWeek
	case !ts.Before(today.AddDate(0, 0, -30)):
		return bucketMonth
	default:
		return bucketOlder
	}
}

// bucketGroup holds the conversations for a single date bucket.
type bucketGroup struct {
	Label         string
	Conversations []history.Conversation
}

// Sidebar represents the left panel with the conversation list grouped by
// date. Bucket headers are labels only; navigation moves between
// conversations.
type Sidebar struct {
	conversations []history.Conversation // full list, newest first
	groups        []bucketGroup
	filtered      []history.Conversation // conversations matching the search query
	selectedIdx   int                    // index into visibleConversations()
	width         int
	height        int
	focused       bool
	scrollOffset  int
	activeID      string // conversation currently open in the viewer

	// Multi-select state for bulk actions
	selection history.Selection

	// Cache for incremental updates
	lastHash uint64 // Hash of last conversation list for change detection

	// Search mode
	searchMode  bool
	searchInput textinput.Model

	// now is injectable so bucket assignment is testable
	now func() time.Time
}

// NewSidebar creates a new sidebar
func NewSidebar() *Sidebar {
	ti := textinput.New()
	ti.Placeholder = "search..."
	ti.CharLimit = SidebarSearchCharLimit

	return &Sidebar{
		selectedIdx: 0,
		searchInput: ti,
		now:         time.Now,
	}
}

// SetSize sets the sidebar dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height

	ctx := GetViewContext()
	ctx.Log("Sidebar.SetSize",
		"outerWidth", width,
		"outerHeight", height,
		"innerWidth", ctx.InnerWidth(width),
		"innerHeight", ctx.InnerHeight(height),
	)
}

// Width returns the sidebar width
func (s *Sidebar) Width() int {
	return s.width
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state
func (s *Sidebar) IsFocused() bool {
	return s.focused
}

// hashConversations computes a fast hash of the list to detect changes
func hashConversations(conversations []history.Conversation) uint64 {
	h := fnv.New64a()
	for _, conv := range conversations {
		h.Write([]byte(conv.ID))
		h.Write([]byte{0})
		h.Write([]byte(conv.Title))
		h.Write([]byte{0})
		h.Write([]byte(conv.Slug))
		h.Write([]byte{0})
		if conv.Starred {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
		h.Write([]byte(strconv.FormatInt(conv.UpdatedAt.UnixNano(), 10)))
		h.Write([]byte{0})
	}
	return h.Sum64()
}

// SetConversations updates the conversation list, grouping by date bucket.
// The list is expected newest first, as the store returns it.
func (s *Sidebar) SetConversations(conversations []history.Conversation) {
	// Fast path: skip the rebuild when nothing changed
	newHash := hashConversations(conversations)
	if newHash == s.lastHash && len(conversations) == len(s.conversations) {
		return
	}
	s.lastHash = newHash

	s.conversations = conversations
	s.rebuildGroups()

	// Re-apply the search filter against the fresh list. The filter can
	// outlive search mode, so check it too.
	if s.searchMode || s.filtered != nil {
		s.applyFilter(s.searchInput.Value())
	}

	s.clampSelection()
}

// rebuildGroups assigns conversations to date buckets, preserving list order
// within each bucket.
func (s *Sidebar) rebuildGroups() {
	now := s.now()
	byBucket := make(map[string][]history.Conversation)
	for _, conv := range s.conversations {
		label := bucketFor(conv.UpdatedAt, now)
		byBucket[label] = append(byBucket[label], conv)
	}

	s.groups = s.groups[:0]
	for _, label := range bucketOrder {
		if convs, ok := byBucket[label]; ok {
			s.groups = append(s.groups, bucketGroup{Label: label, Conversations: convs})
		}
	}
}

// Conversations returns the full list as last set, newest first.
func (s *Sidebar) Conversations() []history.Conversation {
	return s.conversations
}

// clampSelection keeps selectedIdx within the visible list.
func (s *Sidebar) clampSelection() {
	visible := s.visibleConversations()
	if s.selectedIdx >= len(visible) {
		s.selectedIdx = len(visible) - 1
	}
	if s.selectedIdx < 0 {
		s.selectedIdx = 0
	}
}

// SelectedConversation returns the currently highlighted conversation, or
// nil when the list is empty.
func (s *Sidebar) SelectedConversation() *history.Conversation {
	visible := s.visibleConversations()
	if s.selectedIdx < 0 || s.selectedIdx >= len(visible) {
		return nil
	}
	return &visible[s.selectedIdx]
}

// SelectConversation moves the highlight to the conversation with the given ID
func (s *Sidebar) SelectConversation(id string) {
	for i, conv := range s.visibleConversations() {
		if conv.ID == id {
			s.selectedIdx = i
			return
		}
	}
}

// SetActive marks the conversation currently open in the viewer
func (s *Sidebar) SetActive(id string) {
	s.activeID = id
}

// ActiveID returns the ID of the conversation open in the viewer
func (s *Sidebar) ActiveID() string {
	return s.activeID
}

// =============================================================================
// Selection mode
// =============================================================================

// EnterSelectionMode starts multi-select. Any previously marked
// conversations stay marked; exiting is what clears them.
func (s *Sidebar) EnterSelectionMode() {
	if !s.selection.Active() {
		s.selection.ToggleMode()
	}
}

// ExitSelectionMode leaves multi-select and clears every mark.
func (s *Sidebar) ExitSelectionMode() {
	if s.selection.Active() {
		s.selection.ToggleMode()
	}
}

// ToggleSelectionMode flips multi-select on or off.
func (s *Sidebar) ToggleSelectionMode() {
	s.selection.ToggleMode()
}

// IsSelectionMode returns whether multi-select mode is active
func (s *Sidebar) IsSelectionMode() bool {
	return s.selection.Active()
}

// ToggleSelected flips the mark on the currently highlighted conversation
func (s *Sidebar) ToggleSelected() {
	if conv := s.SelectedConversation(); conv != nil {
		s.selection.Toggle(conv.ID)
	}
}

// SelectAll marks every visible conversation. When all of them are already
// marked it unmarks them instead, leaving marks on filtered-out
// conversations untouched.
func (s *Sidebar) SelectAll() {
	s.selection.SelectAllVisible(s.visibleIDs())
}

// IsMarked returns whether a conversation is marked for bulk action
func (s *Sidebar) IsMarked(id string) bool {
	return s.selection.Has(id)
}

// SelectedIDs returns the IDs of all marked conversations, sorted
func (s *Sidebar) SelectedIDs() []string {
	return s.selection.IDs()
}

// SelectedCount returns the number of marked conversations
func (s *Sidebar) SelectedCount() int {
	return s.selection.Count()
}

// visibleConversations returns the conversations currently visible: the
// filtered set while a filter is applied, otherwise all. A filter that
// matches nothing means an empty visible set, not the full list.
func (s *Sidebar) visibleConversations() []history.Conversation {
	if s.filtered != nil {
		return s.filtered
	}
	return s.conversations
}

// visibleIDs returns the IDs of the visible conversations in list order
func (s *Sidebar) visibleIDs() []string {
	visible := s.visibleConversations()
	ids := make([]string, 0, len(visible))
	for _, conv := range visible {
		ids = append(ids, conv.ID)
	}
	return ids
}

// =============================================================================
// Search mode
// =============================================================================

// EnterSearchMode activates search mode
func (s *Sidebar) EnterSearchMode() tea.Cmd {
	s.searchMode = true
	s.searchInput.SetValue("")
	s.searchInput.Focus()
	s.applyFilter("")
	return nil
}

// ExitSearchMode deactivates search mode and clears the filter
func (s *Sidebar) ExitSearchMode() {
	s.searchMode = false
	s.searchInput.Blur()
	s.searchInput.SetValue("")
	s.filtered = nil
	s.clampSelection()
}

// IsSearchMode returns whether the search input is focused
func (s *Sidebar) IsSearchMode() bool {
	return s.searchMode
}

// HasFilter reports whether a search filter is narrowing the list. The
// filter stays applied after Enter leaves the search input, so this can be
// true while IsSearchMode is false.
func (s *Sidebar) HasFilter() bool {
	return s.filtered != nil
}

// GetSearchQuery returns the current search query
func (s *Sidebar) GetSearchQuery() string {
	return s.searchInput.Value()
}

// applyFilter filters conversations based on the search query. A non-empty
// query always leaves filtered non-nil, so a query matching nothing gives an
// empty visible set instead of falling back to the full list.
func (s *Sidebar) applyFilter(query string) {
	if query == "" {
		s.filtered = nil
		return
	}

	query = strings.ToLower(query)
	matches := make([]history.Conversation, 0, len(s.conversations))

	for _, conv := range s.conversations {
		if strings.Contains(strings.ToLower(conv.Title), query) {
			matches = append(matches, conv)
			continue
		}
		if strings.Contains(strings.ToLower(conv.Slug), query) {
			matches = append(matches, conv)
			continue
		}
	}
	s.filtered = matches

	// Reset selection to stay within bounds of the filtered list
	if len(s.filtered) > 0 {
		if s.selectedIdx >= len(s.filtered) {
			s.selectedIdx = len(s.filtered) - 1
		}
	} else {
		s.selectedIdx = 0
	}
	s.scrollOffset = 0
}

// Update handles messages
func (s *Sidebar) Update(msg tea.Msg) (*Sidebar, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if !s.focused {
			return s, nil
		}

		// Handle search mode input
		if s.searchMode {
			switch msg.String() {
			case keys.Escape:
				s.ExitSearchMode()
				return s, nil
			case keys.Enter:
				// Leave the search input but keep the filter applied;
				// Esc is what clears it
				s.searchMode = false
				s.searchInput.Blur()
				return s, nil
			case keys.Up, keys.CtrlP:
				if s.selectedIdx > 0 {
					s.selectedIdx--
				}
				return s, nil
			case keys.Down, keys.CtrlN:
				if s.selectedIdx < len(s.visibleConversations())-1 {
					s.selectedIdx++
				}
				return s, nil
			default:
				// Forward to text input
				var cmd tea.Cmd
				s.searchInput, cmd = s.searchInput.Update(msg)
				s.applyFilter(s.searchInput.Value())
				return s, cmd
			}
		}

		// Normal mode navigation
		switch msg.String() {
		case keys.Up, "k":
			if s.selectedIdx > 0 {
				s.selectedIdx--
			}
		case keys.Down, "j":
			if s.selectedIdx < len(s.visibleConversations())-1 {
				s.selectedIdx++
			}
		}
	}

	return s, nil
}

// View renders the sidebar
func (s *Sidebar) View() string {
	ctx := GetViewContext()

	style := PanelStyle
	if s.focused {
		style = PanelFocusedStyle
	}

	innerHeight := ctx.InnerHeight(s.height)
	innerWidth := ctx.InnerWidth(s.width)

	var content string

	// Render the query line while searching or while a kept filter is live
	showSearch := s.searchMode || s.filtered != nil
	var searchLine string
	if showSearch {
		searchStyle := lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)
		s.searchInput.SetWidth(innerWidth - 3) // Leave room for "/ "
		searchLine = searchStyle.Render("/") + " " + s.searchInput.View()
		innerHeight-- // Reserve one line for search
	}

	visible := s.visibleConversations()

	if len(visible) == 0 {
		var emptyMsg string
		if s.filtered != nil {
			emptyMsg = lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				Italic(true).
				Render("No matches.")
		} else {
			emptyMsg = lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				Italic(true).
				Render("No conversations.")
		}
		content = emptyMsg
	} else if s.filtered != nil {
		// Flat filtered list, no bucket headers.
		// Track actual lines so text wrapping scrolls correctly.
		var allLines []string
		selectedStartLine := 0

		for idx, conv := range s.filtered {
			isSelected := idx == s.selectedIdx
			row := s.renderConversationRow(conv, isSelected)
			itemStyle := SidebarItemStyle.Width(innerWidth)
			if isSelected {
				itemStyle = SidebarSelectedStyle.Width(innerWidth)
				selectedStartLine = len(allLines)
			}
			rendered := itemStyle.Render(row)
			allLines = append(allLines, strings.Split(rendered, "\n")...)
		}

		content = s.scrollLines(allLines, selectedStartLine, innerHeight)
	} else {
		// Grouped list with date bucket headers
		var allLines []string
		selectedStartLine := 0

		convIdx := 0
		for i, group := range s.groups {
			// Blank line between buckets (not before the first one)
			if i > 0 {
				allLines = append(allLines, "")
			}

			allLines = append(allLines, SidebarDateStyle.Render(group.Label))

			for _, conv := range group.Conversations {
				isSelected := convIdx == s.selectedIdx
				row := s.renderConversationRow(conv, isSelected)

				itemStyle := SidebarItemStyle.Width(innerWidth)
				if isSelected {
					itemStyle = SidebarSelectedStyle.Width(innerWidth)
					selectedStartLine = len(allLines)
				}

				rendered := itemStyle.Render(row)
				allLines = append(allLines, strings.Split(rendered, "\n")...)
				convIdx++
			}
		}

		content = s.scrollLines(allLines, selectedStartLine, innerHeight)
	}

	// Ensure content fits
	lines := strings.Split(content, "\n")
	if len(lines) > innerHeight && innerHeight > 0 {
		lines = lines[:innerHeight]
		content = strings.Join(lines, "\n")
	}

	// Prepend the query line when it is showing
	if showSearch {
		if content != "" {
			content = searchLine + "\n" + content
		} else {
			content = searchLine
		}
	}

	// In lipgloss v2, Width/Height include borders, so pass full panel size
	return style.Width(s.width).Height(s.height).Render(content)
}

// scrollLines adjusts the scroll offset so the selected row stays visible
// and returns the visible slice of lines joined for display.
func (s *Sidebar) scrollLines(allLines []string, selectedStartLine, visibleHeight int) string {
	if selectedStartLine < s.scrollOffset {
		s.scrollOffset = selectedStartLine
	} else if selectedStartLine >= s.scrollOffset+visibleHeight {
		s.scrollOffset = selectedStartLine - visibleHeight + 1
	}

	if s.scrollOffset < 0 {
		s.scrollOffset = 0
	}
	maxScroll := len(allLines) - visibleHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	if s.scrollOffset > maxScroll {
		s.scrollOffset = maxScroll
	}

	if s.scrollOffset > 0 && s.scrollOffset < len(allLines) {
		allLines = allLines[s.scrollOffset:]
	}
	if len(allLines) > visibleHeight {
		allLines = allLines[:visibleHeight]
	}
	return strings.Join(allLines, "\n")
}

// renderConversationRow builds the display row for a conversation.
// Symbol priority: open in viewer (◆), starred (★), otherwise ◇.
func (s *Sidebar) renderConversationRow(conv history.Conversation, isSelected bool) string {
	var symbol string
	var symbolColor color.Color

	switch {
	case conv.ID == s.activeID:
		symbol = "◆"
		symbolColor = ColorPrimary
	case conv.Starred:
		symbol = "★"
		symbolColor = ColorWarning
	default:
		symbol = "◇"
		symbolColor = ColorTextMuted
	}

	var display string
	if isSelected {
		// Selected - let the row style handle colors
		display = " " + symbol + " " + conv.Title
	} else {
		symbolStyle := lipgloss.NewStyle().Foreground(symbolColor)
		display = " " + symbolStyle.Render(symbol) + " " + conv.Title
	}

	// In selection mode, prepend a checkbox
	if s.selection.Active() {
		checkbox := "[ ] "
		if s.selection.Has(conv.ID) {
			checkbox = "[x] "
		}
		if isSelected {
			display = checkbox + display
		} else {
			checkStyle := lipgloss.NewStyle().Foreground(ColorTextMuted)
			if s.selection.Has(conv.ID) {
				checkStyle = checkStyle.Foreground(ColorSecondary)
			}
			display = checkStyle.Render(checkbox) + display
		}
	}

	return display
}
