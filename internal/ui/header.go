package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"charm.land/lipgloss/v2"
)

// TranscriptStats summarizes the transcript of the open conversation.
type TranscriptStats struct {
	Messages int
	Words    int
}

// Header represents the top header bar
type Header struct {
	width             int
	conversationTitle string
	profile           string
	stats             *TranscriptStats
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetConversationTitle sets the open conversation's title to display
func (h *Header) SetConversationTitle(title string) {
	h.conversationTitle = title
}

// SetProfile sets the active profile name to display
func (h *Header) SetProfile(profile string) {
	h.profile = profile
}

// SetStats sets the transcript stats to display. Pass nil to clear.
func (h *Header) SetStats(stats *TranscriptStats) {
	h.stats = stats
}

// View renders the header
func (h *Header) View() string {
	// Build the content string (without styling)
	titleText := " recall"
	var rightText string
	if h.stats != nil && h.stats.Messages > 0 {
		noun := "messages"
		if h.stats.Messages == 1 {
			noun = "message"
		}
		rightText = fmt.Sprintf("%d %s, %d words  ", h.stats.Messages, noun, h.stats.Words)
	}
	if h.conversationTitle != "" {
		rightText += h.conversationTitle
		if h.profile != "" {
			rightText += " (" + h.profile + ")"
		}
		rightText += " "
	}

	// Calculate padding in runes so multi-byte titles don't shrink the bar
	paddingLen := h.width - utf8.RuneCountInString(titleText) - utf8.RuneCountInString(rightText)
	if paddingLen < 0 {
		paddingLen = 0
	}

	fullContent := titleText + strings.Repeat(" ", paddingLen) + rightText

	// Render with gradient background
	return h.renderGradient(fullContent, h.profile)
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders the content with a theme-aware gradient background.
// profile is used to identify and mute the profile portion of the text.
func (h *Header) renderGradient(content string, profile string) string {
	if len(content) == 0 {
		return ""
	}

	// Get colors from current theme
	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	// End color: fade to the main background
	endR, endG, endB := parseHexColor(theme.Bg)

	// Text color from theme
	textColor := lipgloss.Color(theme.Text)
	mutedColor := lipgloss.Color(theme.TextMuted)

	runes := []rune(content)

	// Find where the profile portion starts (if present)
	profileStart := -1
	if profile != "" {
		marker := []rune("(" + profile + ")")
		for i := 0; i+len(marker) <= len(runes); i++ {
			if string(runes[i:i+len(marker)]) == string(marker) {
				profileStart = i
				break
			}
		}
	}

	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		// Calculate interpolation factor (0.0 to 1.0)
		t := float64(i) / float64(width)

		// Interpolate colors
		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		// Create color string
		bgColor := lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))

		// Determine if this character is in the profile portion
		inProfile := profileStart >= 0 && i >= profileStart

		// Style for this character
		style := lipgloss.NewStyle().
			Background(bgColor).
			Bold(i < 7) // Bold for " recall" title

		if inProfile {
			style = style.Foreground(mutedColor)
		} else {
			style = style.Foreground(textColor)
		}

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
