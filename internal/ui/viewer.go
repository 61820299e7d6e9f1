package ui

import (
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/recallhq/recall/internal/history"
)

// Viewer represents the right panel showing the open conversation's transcript.
// It is read-only: keyboard input scrolls, the mouse selects text for copying.
type Viewer struct {
	viewport viewport.Model
	width    int
	height   int
	focused  bool

	conversation *history.Conversation
	messages     []history.Message
	loading      bool

	// msgOffsets[i] is the rendered line the i-th message starts on,
	// recomputed on every re-wrap
	msgOffsets []int

	selection TextSelection
}

// NewViewer creates a new transcript viewer panel
func NewViewer() *Viewer {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	v := &Viewer{
		viewport: vp,
		selection: TextSelection{
			StartCol:   -1,
			StartLine:  -1,
			EndCol:     -1,
			EndLine:    -1,
			FlashFrame: -1,
		},
	}
	v.updateContent()
	return v
}

// SetSize sets the viewer panel dimensions
func (v *Viewer) SetSize(width, height int) {
	v.width = width
	v.height = height

	ctx := GetViewContext()
	v.viewport.SetWidth(ctx.InnerWidth(width))
	v.viewport.SetHeight(ctx.InnerHeight(height))

	ctx.Log("Viewer.SetSize: outer=%dx%d, viewport=%dx%d", width, height, v.viewport.Width(), v.viewport.Height())

	// Re-wrap the transcript for the new width
	v.updateContent()
}

// SetFocused sets the focus state
func (v *Viewer) SetFocused(focused bool) {
	v.focused = focused
}

// IsFocused returns the focus state
func (v *Viewer) IsFocused() bool {
	return v.focused
}

// SetConversation opens a conversation's transcript in the viewer
func (v *Viewer) SetConversation(conv history.Conversation, messages []history.Message) {
	v.conversation = &conv
	v.messages = messages
	v.loading = false
	v.SelectionClear()
	v.updateContent()
	v.viewport.GotoTop()
}

// ClearConversation closes the open conversation
func (v *Viewer) ClearConversation() {
	v.conversation = nil
	v.messages = nil
	v.loading = false
	v.SelectionClear()
	v.updateContent()
}

// HasConversation reports whether a conversation is open
func (v *Viewer) HasConversation() bool {
	return v.conversation != nil
}

// Conversation returns the open conversation, or nil
func (v *Viewer) Conversation() *history.Conversation {
	return v.conversation
}

// Messages returns the open conversation's transcript
func (v *Viewer) Messages() []history.Message {
	return v.messages
}

// SetLoading toggles the loading placeholder
func (v *Viewer) SetLoading(loading bool) {
	v.loading = loading
}

// Stats returns transcript stats for the header, or nil when nothing is open
func (v *Viewer) Stats() *TranscriptStats {
	if v.conversation == nil {
		return nil
	}
	words := 0
	for _, msg := range v.messages {
		words += len(strings.Fields(msg.Content))
	}
	return &TranscriptStats{Messages: len(v.messages), Words: words}
}

func (v *Viewer) updateContent() {
	var sb strings.Builder
	v.msgOffsets = nil

	// Get wrap width (use viewport width, fallback to reasonable default)
	wrapWidth := v.viewport.Width()
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}

	if v.conversation == nil {
		sb.WriteString(renderNoConversationMessage())
	} else if len(v.messages) == 0 {
		sb.WriteString(lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("This conversation has no messages."))
	} else {
		timeStyle := lipgloss.NewStyle().Foreground(ColorTextMuted)
		v.msgOffsets = make([]int, 0, len(v.messages))
		blocks := make([]string, 0, len(v.messages))
		line := 0
		for _, msg := range v.messages {
			var roleStyle lipgloss.Style
			var roleName string
			if msg.Role == history.RoleUser {
				roleStyle = ViewerUserStyle
				roleName = "You"
			} else {
				roleStyle = ViewerAssistantStyle
				roleName = "Assistant"
			}

			var b strings.Builder
			b.WriteString(roleStyle.Render(roleName))
			if !msg.CreatedAt.IsZero() {
				b.WriteString(timeStyle.Render(" · " + msg.CreatedAt.Format("Jan 2 15:04")))
			}
			b.WriteString("\n")
			b.WriteString(renderMarkdown(strings.TrimSpace(msg.Content), wrapWidth))

			block := b.String()
			v.msgOffsets = append(v.msgOffsets, line)
			// +2 for the blank separator line between messages
			line += strings.Count(block, "\n") + 2
			blocks = append(blocks, block)
		}
		sb.WriteString(strings.Join(blocks, "\n\n"))
	}

	v.viewport.SetContent(sb.String())
}

// ScrollToMessage scrolls the transcript so the given message's header line
// is at the top of the visible area.
func (v *Viewer) ScrollToMessage(index int) {
	if index < 0 || index >= len(v.msgOffsets) {
		return
	}
	v.viewport.SetYOffset(v.msgOffsets[index])
}

// Update handles messages
func (v *Viewer) Update(msg tea.Msg) (*Viewer, tea.Cmd) {
	switch msg := msg.(type) {
	case SelectionFlashTickMsg:
		return v, v.handleSelectionFlashTick()

	case tea.MouseClickMsg:
		if v.conversation != nil {
			// Adjust for the panel border
			return v, v.handleMouseClick(msg.X-1, msg.Y-1)
		}
		return v, nil

	case tea.MouseMotionMsg:
		if v.selection.Active {
			v.EndSelection(msg.X-1, msg.Y-1)
		}
		return v, nil

	case tea.MouseReleaseMsg:
		if v.selection.Active {
			v.SelectionStop()
			if v.HasTextSelection() {
				return v, v.CopySelectedText()
			}
		}
		return v, nil
	}

	// Ignore key input when the panel is not focused
	if _, isKey := msg.(tea.KeyPressMsg); isKey && !v.focused {
		return v, nil
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View renders the viewer panel
func (v *Viewer) View() string {
	panelStyle := PanelStyle
	if v.focused {
		panelStyle = PanelFocusedStyle
	}

	var content string
	switch {
	case v.loading:
		content = StatusLoadingStyle.Render("Loading...")
	case v.conversation == nil:
		content = renderNoConversationMessage()
	default:
		content = v.selectionView(v.viewport.View())
	}

	return panelStyle.Width(v.width).Height(v.height).Render(content)
}
