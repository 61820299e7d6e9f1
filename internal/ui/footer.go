package ui

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FlashType identifies the severity of a flash message
type FlashType int

const (
	FlashError FlashType = iota
	FlashWarning
	FlashInfo
	FlashSuccess
)

// DefaultFlashDuration is how long a flash message stays visible
const DefaultFlashDuration = 5 * time.Second

// FlashMessage is a transient notice shown in the footer in place of keybindings
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has outlived its duration
func (m *FlashMessage) IsExpired() bool {
	return time.Since(m.CreatedAt) > m.Duration
}

// FlashTickMsg is sent periodically while a flash message is visible
type FlashTickMsg time.Time

// FlashTick returns a command that ticks once a second so expired
// flash messages get cleared promptly
func FlashTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width           int
	bindings        []KeyBinding
	flashMessage    *FlashMessage
	hasConversation bool // Whether a conversation is open in the viewer
	sidebarFocused  bool // Whether sidebar has focus
	searching       bool // Whether sidebar search input is active
	selectionMode   bool // Whether sidebar is in selection mode
	selectedCount   int  // Number of conversations marked in selection mode
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{
		bindings: []KeyBinding{
			{Key: "tab", Desc: "switch pane"},
			{Key: "enter", Desc: "open"},
			{Key: "/", Desc: "search"},
			{Key: "s", Desc: "select"},
			{Key: "r", Desc: "rename"},
			{Key: "e", Desc: "export"},
			{Key: "d", Desc: "delete"},
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		},
	}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(hasConversation, sidebarFocused, searching, selectionMode bool, selectedCount int) {
	f.hasConversation = hasConversation
	f.sidebarFocused = sidebarFocused
	f.searching = searching
	f.selectionMode = selectionMode
	f.selectedCount = selectedCount
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetBindings allows custom keybindings
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// SetFlash shows a flash message with the default duration
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a flash message for a custom duration
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, duration time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  duration,
	}
}

// Flash returns the current flash message, or nil when none is showing.
func (f *Footer) Flash() *FlashMessage {
	return f.flashMessage
}

// ClearFlash removes the current flash message
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is set
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearIfExpired clears the flash message if it has expired.
// Returns true if a message was cleared.
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

// flashIcon returns the icon for a flash type
func flashIcon(t FlashType) string {
	switch t {
	case FlashError:
		return "✕"
	case FlashWarning:
		return "⚠"
	case FlashInfo:
		return "ℹ"
	case FlashSuccess:
		return "✓"
	}
	return ""
}

// flashColor returns the accent color for a flash type
func flashColor(t FlashType) color.Color {
	switch t {
	case FlashError:
		return lipgloss.Color(CurrentTheme().Error)
	case FlashWarning:
		return lipgloss.Color(CurrentTheme().Warning)
	case FlashInfo:
		return lipgloss.Color(CurrentTheme().Info)
	case FlashSuccess:
		return lipgloss.Color(CurrentTheme().Success)
	}
	return lipgloss.Color(CurrentTheme().Text)
}

// View renders the footer
func (f *Footer) View() string {
	// Flash messages replace keybindings until they expire
	if f.flashMessage != nil {
		accent := lipgloss.NewStyle().Foreground(flashColor(f.flashMessage.Type)).Bold(true)
		text := lipgloss.NewStyle().Foreground(ColorText)
		content := accent.Render(flashIcon(f.flashMessage.Type)) + " " + text.Render(f.flashMessage.Text)
		return FooterStyle.Width(f.width).Render(content)
	}

	var parts []string

	renderBindings := func(bindings []KeyBinding) {
		for _, b := range bindings {
			key := FooterKeyStyle.Render(b.Key)
			desc := FooterDescStyle.Render(": " + b.Desc)
			parts = append(parts, key+desc)
		}
	}

	switch {
	case f.selectionMode && f.sidebarFocused:
		// Selection mode: show a count plus the bulk action shortcuts
		countStyle := lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true)
		parts = append(parts, countStyle.Render(fmt.Sprintf("%d selected", f.selectedCount)))
		renderBindings([]KeyBinding{
			{Key: "space", Desc: "toggle"},
			{Key: "a", Desc: "select all"},
			{Key: "d", Desc: "delete selected"},
			{Key: "↑/↓", Desc: "navigate"},
			{Key: "esc", Desc: "exit"},
			{Key: "?", Desc: "help"},
		})

	case f.searching && f.sidebarFocused:
		renderBindings([]KeyBinding{
			{Key: "esc", Desc: "cancel"},
			{Key: "enter", Desc: "keep filter"},
			{Key: "↑/↓", Desc: "navigate"},
		})

	case !f.sidebarFocused && f.hasConversation:
		// Viewer focused - scrolling and per-conversation actions
		renderBindings([]KeyBinding{
			{Key: "tab", Desc: "switch pane"},
			{Key: "↑/↓/j/k", Desc: "scroll"},
			{Key: "pgup/dn", Desc: "page"},
			{Key: "y", Desc: "copy link"},
			{Key: "e", Desc: "export"},
			{Key: "esc", Desc: "back"},
		})

	default:
		for _, b := range f.bindings {
			// Skip tab when nothing is open (can't switch to the viewer)
			if b.Key == "tab" && !f.hasConversation {
				continue
			}
			key := FooterKeyStyle.Render(b.Key)
			desc := FooterDescStyle.Render(": " + b.Desc)
			parts = append(parts, key+desc)
		}
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")

	return FooterStyle.Width(f.width).Render(content)
}
