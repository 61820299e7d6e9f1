package ui

import (
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"
)

// stripANSI removes ANSI escape codes from a string for testing
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

func TestNewHeader(t *testing.T) {
	header := NewHeader()

	if header == nil {
		t.Fatal("NewHeader() returned nil")
	}

	if header.conversationTitle != "" {
		t.Error("Expected empty conversation title initially")
	}

	if header.profile != "" {
		t.Error("Expected empty profile initially")
	}
}

func TestHeader_SetWidth(t *testing.T) {
	header := NewHeader()

	header.SetWidth(120)

	if header.width != 120 {
		t.Errorf("Expected width 120, got %d", header.width)
	}
}

func TestHeader_SetConversationTitle(t *testing.T) {
	header := NewHeader()

	header.SetConversationTitle("Fixing the build")

	if header.conversationTitle != "Fixing the build" {
		t.Errorf("Expected conversation title 'Fixing the build', got %q", header.conversationTitle)
	}
}

func TestHeader_SetProfile(t *testing.T) {
	header := NewHeader()

	header.SetProfile("work")

	if header.profile != "work" {
		t.Errorf("Expected profile 'work', got %q", header.profile)
	}
}

func TestHeader_View_NoConversation(t *testing.T) {
	header := NewHeader()
	header.SetWidth(80)

	view := stripANSI(header.View())

	if !strings.Contains(view, "recall") {
		t.Errorf("Header should contain 'recall' title, got: %q", view)
	}
}

func TestHeader_View_WithConversation(t *testing.T) {
	header := NewHeader()
	header.SetWidth(120)
	header.SetConversationTitle("Fixing the build")

	view := stripANSI(header.View())

	if !strings.Contains(view, "recall") {
		t.Error("Header should contain 'recall' title")
	}

	if !strings.Contains(view, "Fixing the build") {
		t.Errorf("Header should contain conversation title, got: %q", view)
	}
}

func TestHeader_View_WithProfile(t *testing.T) {
	header := NewHeader()
	header.SetWidth(120)
	header.SetConversationTitle("Fixing the build")
	header.SetProfile("work")

	view := stripANSI(header.View())

	if !strings.Contains(view, "Fixing the build") {
		t.Error("Header should contain conversation title")
	}

	if !strings.Contains(view, "(work)") {
		t.Errorf("Header should contain profile indicator, got: %q", view)
	}
}

func TestHeader_View_NoProfile(t *testing.T) {
	header := NewHeader()
	header.SetWidth(120)
	header.SetConversationTitle("Fixing the build")

	view := stripANSI(header.View())

	if strings.Contains(view, "(") {
		t.Error("Header should not contain profile indicator when not set")
	}
}

func TestHeader_ClearProfile(t *testing.T) {
	header := NewHeader()
	header.SetWidth(120)
	header.SetConversationTitle("Fixing the build")
	header.SetProfile("work")

	// Clear the profile
	header.SetProfile("")

	view := stripANSI(header.View())

	if strings.Contains(view, "(work)") {
		t.Error("Header should not show profile after clearing")
	}
}

func TestHeader_SetStats(t *testing.T) {
	header := NewHeader()
	header.SetStats(&TranscriptStats{
		Messages: 12,
		Words:    3400,
	})

	if header.stats == nil {
		t.Fatal("Expected stats to be set")
	}

	if header.stats.Messages != 12 {
		t.Errorf("Expected Messages 12, got %d", header.stats.Messages)
	}

	if header.stats.Words != 3400 {
		t.Errorf("Expected Words 3400, got %d", header.stats.Words)
	}
}

func TestHeader_SetStats_Nil(t *testing.T) {
	header := NewHeader()
	header.SetStats(&TranscriptStats{Messages: 12})
	header.SetStats(nil)

	if header.stats != nil {
		t.Error("Expected stats to be nil after clearing")
	}
}

func TestHeader_View_WithStats(t *testing.T) {
	header := NewHeader()
	header.SetWidth(120)
	header.SetConversationTitle("Fixing the build")
	header.SetStats(&TranscriptStats{
		Messages: 12,
		Words:    3400,
	})

	view := stripANSI(header.View())

	if !strings.Contains(view, "12 messages") {
		t.Errorf("Header should contain message count, got: %q", view)
	}

	if !strings.Contains(view, "3400 words") {
		t.Errorf("Header should contain word count, got: %q", view)
	}
}

func TestHeader_View_WithStats_SingleMessage(t *testing.T) {
	header := NewHeader()
	header.SetWidth(120)
	header.SetConversationTitle("Fixing the build")
	header.SetStats(&TranscriptStats{
		Messages: 1,
		Words:    42,
	})

	view := stripANSI(header.View())

	// Should use singular "message" not "messages"
	if !strings.Contains(view, "1 message,") {
		t.Errorf("Header should contain singular 'message', got: %q", view)
	}
}

func TestHeader_View_ZeroStats(t *testing.T) {
	header := NewHeader()
	header.SetWidth(120)
	header.SetConversationTitle("Fixing the build")
	header.SetStats(&TranscriptStats{
		Messages: 0,
		Words:    0,
	})

	view := stripANSI(header.View())

	// Should not show stats when the transcript is empty
	if strings.Contains(view, "0 message") {
		t.Errorf("Header should not show stats with zero messages, got: %q", view)
	}
}

func TestHeader_View_WithStatsAndProfile(t *testing.T) {
	header := NewHeader()
	header.SetWidth(150)
	header.SetConversationTitle("Fixing the build")
	header.SetProfile("work")
	header.SetStats(&TranscriptStats{
		Messages: 2,
		Words:    96,
	})

	view := stripANSI(header.View())

	// All elements should be present
	if !strings.Contains(view, "2 messages") {
		t.Error("Header should contain message count")
	}

	if !strings.Contains(view, "96 words") {
		t.Error("Header should contain word count")
	}

	if !strings.Contains(view, "Fixing the build") {
		t.Error("Header should contain conversation title")
	}

	if !strings.Contains(view, "(work)") {
		t.Error("Header should contain profile")
	}
}

func TestHeader_View_UnicodeTitle(t *testing.T) {
	header := NewHeader()
	header.SetWidth(80)
	// Title with multi-byte Unicode characters (Japanese: "test")
	header.SetConversationTitle("テスト")

	view := stripANSI(header.View())

	if !strings.Contains(view, "recall") {
		t.Error("Header should contain 'recall' title")
	}

	if !strings.Contains(view, "テスト") {
		t.Errorf("Header should contain Unicode title, got: %q", view)
	}

	// The rendered width in runes should match the header width
	runeCount := utf8.RuneCountInString(view)
	if runeCount != 80 {
		t.Errorf("Header rune width should be 80, got %d", runeCount)
	}
}

func TestHeader_View_UnicodeTitle_WithProfile(t *testing.T) {
	header := NewHeader()
	header.SetWidth(80)
	header.SetConversationTitle("休暇の計画")
	header.SetProfile("work")

	view := stripANSI(header.View())

	if !strings.Contains(view, "休暇の計画") {
		t.Errorf("Header should contain Unicode title, got: %q", view)
	}

	if !strings.Contains(view, "(work)") {
		t.Errorf("Header should contain profile, got: %q", view)
	}

	runeCount := utf8.RuneCountInString(view)
	if runeCount != 80 {
		t.Errorf("Header rune width should be 80, got %d", runeCount)
	}
}

func TestHeader_View_MixedASCIIAndUnicode(t *testing.T) {
	header := NewHeader()
	header.SetWidth(100)
	// Mix of ASCII and multi-byte characters
	header.SetConversationTitle("Planning the café résumé")

	view := stripANSI(header.View())

	if !strings.Contains(view, "Planning the café résumé") {
		t.Errorf("Header should contain mixed title, got: %q", view)
	}

	runeCount := utf8.RuneCountInString(view)
	if runeCount != 100 {
		t.Errorf("Header rune width should be 100, got %d", runeCount)
	}
}
