package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/recallhq/recall/internal/history"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		expected string
	}{
		{
			name:     "short text within width",
			text:     "hello world",
			width:    20,
			expected: "hello world",
		},
		{
			name:     "long text needs wrap",
			text:     "this is a longer text that needs wrapping",
			width:    20,
			expected: "this is a longer\ntext that needs\nwrapping",
		},
		{
			name:     "zero width returns original",
			text:     "hello world",
			width:    0,
			expected: "hello world",
		},
		{
			name:     "negative width returns original",
			text:     "hello world",
			width:    -1,
			expected: "hello world",
		},
		{
			name:     "empty string",
			text:     "",
			width:    20,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := wrapText(tt.text, tt.width)
			if result != tt.expected {
				t.Errorf("wrapText(%q, %d) = %q, want %q", tt.text, tt.width, result, tt.expected)
			}
		})
	}
}

func TestRenderMarkdownLine(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		width int
		check func(string) bool
	}{
		{
			name:  "h1 header",
			line:  "# Header One",
			width: 80,
			check: func(s string) bool { return strings.Contains(s, "Header One") },
		},
		{
			name:  "h2 header",
			line:  "## Header Two",
			width: 80,
			check: func(s string) bool { return strings.Contains(s, "Header Two") },
		},
		{
			name:  "h3 header",
			line:  "### Header Three",
			width: 80,
			check: func(s string) bool { return strings.Contains(s, "Header Three") },
		},
		{
			name:  "h4 header",
			line:  "#### Header Four",
			width: 80,
			check: func(s string) bool { return strings.Contains(s, "Header Four") },
		},
		{
			name:  "horizontal rule dash",
			line:  "---",
			width: 80,
			check: func(s string) bool { return strings.Contains(s, "─") },
		},
		{
			name:  "horizontal rule asterisk",
			line:  "***",
			width: 80,
			check: func(s string) bool { return strings.Contains(s, "─") },
		},
		{
			name:  "horizontal rule underscore",
			line:  "___",
			width: 80,
			check: func(s string) bool { return strings.Contains(s, "─") },
		},
		{
			name:  "blockquote",
			line:  "> This is a quote",
			width: 80,
			check: func(s string) bool { return strings.Contains(s, "This is a quote") },
		},
		{
			name:  "unordered list dash",
			line:  "- List item",
			width: 80,
			check: func(s string) bool { return strings.Contains(s, "•") && strings.Contains(s, "List item") },
		},
		{
			name:  "unordered list asterisk",
			line:  "* List item",
			width: 80,
			check: func(s string) bool { return strings.Contains(s, "•") && strings.Contains(s, "List item") },
		},
		{
			name:  "numbered list",
			line:  "1. First item",
			width: 80,
			check: func(s string) bool { return strings.Contains(s, "1.") && strings.Contains(s, "First item") },
		},
		{
			name:  "regular text",
			line:  "This is regular text",
			width: 80,
			check: func(s string) bool { return strings.Contains(s, "This is regular text") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := renderMarkdownLine(tt.line, tt.width)
			if !tt.check(result) {
				t.Errorf("renderMarkdownLine(%q, %d) = %q, check failed", tt.line, tt.width, result)
			}
		})
	}
}

func TestRenderInlineMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		check func(string) bool
	}{
		{
			name:  "bold text",
			line:  "This is **bold** text",
			check: func(s string) bool { return strings.Contains(s, "bold") },
		},
		{
			name:  "inline code",
			line:  "Use `code` here",
			check: func(s string) bool { return strings.Contains(s, "code") },
		},
		{
			name: "link",
			line: "Click [here](https://example.com)",
			// The link is formatted with styled text and URL, contains ANSI codes
			// Just check that Click and example.com are present (may have ANSI between chars)
			check: func(s string) bool { return strings.Contains(s, "Click") },
		},
		{
			name:  "italic text",
			line:  "Some _emphasized_ words",
			check: func(s string) bool { return strings.Contains(s, "emphasized") },
		},
		{
			name:  "plain text unchanged",
			line:  "Just plain text",
			check: func(s string) bool { return strings.Contains(s, "Just plain text") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := renderInlineMarkdown(tt.line)
			if !tt.check(result) {
				t.Errorf("renderInlineMarkdown(%q) = %q, check failed", tt.line, result)
			}
		})
	}
}

func TestRenderMarkdown(t *testing.T) {
	tests := []struct {
		name    string
		content string
		width   int
		check   func(string) bool
	}{
		{
			name:    "simple text",
			content: "Hello world",
			width:   80,
			check:   func(s string) bool { return strings.Contains(s, "Hello world") },
		},
		{
			name:    "code block",
			content: "```go\nfunc main() {}\n```",
			width:   80,
			// Code blocks use syntax highlighting, so check for "main" which should be highlighted
			check: func(s string) bool { return strings.Contains(s, "main") },
		},
		{
			name:    "mixed content",
			content: "# Title\n\nSome text\n\n```python\nprint('hi')\n```\n\nMore text",
			width:   80,
			check: func(s string) bool {
				return strings.Contains(s, "Title") && strings.Contains(s, "print")
			},
		},
		{
			name:    "zero width uses default",
			content: "Test content",
			width:   0,
			check:   func(s string) bool { return strings.Contains(s, "Test content") },
		},
		{
			name:    "unclosed code block",
			content: "```go\nsome code",
			width:   80,
			// Check for "code" which should be present even in highlighted output
			check: func(s string) bool { return strings.Contains(s, "code") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := renderMarkdown(tt.content, tt.width)
			if !tt.check(result) {
				t.Errorf("renderMarkdown check failed for %s, got: %q", tt.name, result)
			}
		})
	}
}

func testTranscript() (history.Conversation, []history.Message) {
	conv := history.Conversation{
		ID:    "conv-1",
		Title: "Trip planning",
		Slug:  "trip-planning",
	}
	messages := []history.Message{
		{ID: "m1", ConversationID: "conv-1", Role: "user", Content: "Hello world"},
		{ID: "m2", ConversationID: "conv-1", Role: "assistant", Content: "Hi there! How are you?"},
	}
	return conv, messages
}

func TestNewViewer(t *testing.T) {
	v := NewViewer()

	if v == nil {
		t.Fatal("NewViewer() returned nil")
	}

	if v.HasConversation() {
		t.Error("New viewer should not have a conversation")
	}

	if v.Conversation() != nil {
		t.Error("New viewer should return nil conversation")
	}

	if v.Stats() != nil {
		t.Error("New viewer should return nil stats")
	}

	if v.IsFocused() {
		t.Error("New viewer should not be focused")
	}

	if v.HasTextSelection() {
		t.Error("New viewer should not have a text selection")
	}
}

func TestViewer_SetConversation(t *testing.T) {
	v := newTestViewer()
	conv, messages := testTranscript()

	v.SetConversation(conv, messages)

	if !v.HasConversation() {
		t.Error("Viewer should have a conversation after SetConversation")
	}

	if v.Conversation().ID != "conv-1" {
		t.Errorf("Expected conversation ID 'conv-1', got %q", v.Conversation().ID)
	}

	if len(v.Messages()) != 2 {
		t.Errorf("Expected 2 messages, got %d", len(v.Messages()))
	}
}

func TestViewer_ClearConversation(t *testing.T) {
	v := newTestViewer()
	conv, messages := testTranscript()
	v.SetConversation(conv, messages)

	v.ClearConversation()

	if v.HasConversation() {
		t.Error("Viewer should not have a conversation after ClearConversation")
	}

	if len(v.Messages()) != 0 {
		t.Errorf("Expected 0 messages after clear, got %d", len(v.Messages()))
	}

	if v.Stats() != nil {
		t.Error("Expected nil stats after clear")
	}
}

func TestViewer_SetConversation_ClearsSelection(t *testing.T) {
	v := newTestViewer()
	conv, messages := testTranscript()
	v.SetConversation(conv, messages)

	v.StartSelection(0, 0)
	v.EndSelection(5, 1)
	if !v.HasTextSelection() {
		t.Fatal("expected a selection before switching conversations")
	}

	v.SetConversation(history.Conversation{ID: "conv-2", Title: "Other", Slug: "other"}, nil)

	if v.HasTextSelection() {
		t.Error("expected selection cleared when opening another conversation")
	}
}

func TestViewer_Stats(t *testing.T) {
	v := newTestViewer()
	conv, messages := testTranscript()
	v.SetConversation(conv, messages)

	stats := v.Stats()
	if stats == nil {
		t.Fatal("expected non-nil stats")
	}

	if stats.Messages != 2 {
		t.Errorf("Expected 2 messages, got %d", stats.Messages)
	}

	// "Hello world" (2) + "Hi there! How are you?" (5)
	if stats.Words != 7 {
		t.Errorf("Expected 7 words, got %d", stats.Words)
	}
}

func TestViewer_Stats_EmptyTranscript(t *testing.T) {
	v := newTestViewer()
	v.SetConversation(history.Conversation{ID: "conv-1", Title: "Empty", Slug: "empty"}, nil)

	stats := v.Stats()
	if stats == nil {
		t.Fatal("expected non-nil stats for an open empty conversation")
	}

	if stats.Messages != 0 || stats.Words != 0 {
		t.Errorf("Expected zero stats, got %d messages, %d words", stats.Messages, stats.Words)
	}
}

func TestViewer_FocusState(t *testing.T) {
	v := NewViewer()

	// Initially not focused
	if v.IsFocused() {
		t.Error("Should not be focused initially")
	}

	// Set focused
	v.SetFocused(true)
	if !v.IsFocused() {
		t.Error("Should be focused after SetFocused(true)")
	}

	// Unfocus
	v.SetFocused(false)
	if v.IsFocused() {
		t.Error("Should not be focused after SetFocused(false)")
	}
}

func TestViewer_SetSize(t *testing.T) {
	v := NewViewer()

	// Should not panic with various sizes
	v.SetSize(80, 24)
	v.SetSize(120, 40)
	v.SetSize(40, 10)
	v.SetSize(1, 1) // Minimum size

	if v.width != 1 {
		t.Errorf("Expected width 1, got %d", v.width)
	}

	if v.height != 1 {
		t.Errorf("Expected height 1, got %d", v.height)
	}
}

func TestViewer_View_NoConversation(t *testing.T) {
	v := newTestViewer()

	view := stripANSI(v.View())
	if !strings.Contains(view, "No conversation open") {
		t.Errorf("Expected placeholder in view, got %q", view)
	}
}

func TestViewer_View_WithConversation(t *testing.T) {
	v := newTestViewer()
	conv, messages := testTranscript()
	v.SetConversation(conv, messages)

	view := stripANSI(v.View())

	if !strings.Contains(view, "You") {
		t.Error("Expected 'You' role label in view")
	}
	if !strings.Contains(view, "Assistant") {
		t.Error("Expected 'Assistant' role label in view")
	}
	if !strings.Contains(view, "Hello world") {
		t.Error("Expected user message content in view")
	}
}

func TestViewer_View_WithTimestamps(t *testing.T) {
	v := newTestViewer()
	conv, messages := testTranscript()
	messages[0].CreatedAt = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	v.SetConversation(conv, messages)

	view := stripANSI(v.View())
	if !strings.Contains(view, "Mar 14 09:30") {
		t.Errorf("Expected message timestamp in view, got %q", view)
	}
}

func TestViewer_View_EmptyTranscript(t *testing.T) {
	v := newTestViewer()
	v.SetConversation(history.Conversation{ID: "conv-1", Title: "Empty", Slug: "empty"}, nil)

	view := stripANSI(v.View())
	if !strings.Contains(view, "no messages") {
		t.Errorf("Expected empty transcript placeholder, got %q", view)
	}
}

func TestViewer_View_Loading(t *testing.T) {
	v := newTestViewer()
	v.SetLoading(true)

	view := stripANSI(v.View())
	if !strings.Contains(view, "Loading") {
		t.Errorf("Expected loading placeholder, got %q", view)
	}
}

func TestViewer_MessageOffsets(t *testing.T) {
	v := newTestViewer()
	long := strings.TrimSpace(strings.Repeat("filler line\n", 30))
	messages := []history.Message{
		{ID: "m1", ConversationID: "conv-1", Role: "user", Content: long},
		{ID: "m2", ConversationID: "conv-1", Role: "assistant", Content: long},
		{ID: "m3", ConversationID: "conv-1", Role: "user", Content: "tail message"},
	}
	v.SetConversation(history.Conversation{ID: "conv-1", Title: "Long", Slug: "long"}, messages)

	if len(v.msgOffsets) != 3 {
		t.Fatalf("expected 3 message offsets, got %d", len(v.msgOffsets))
	}
	if v.msgOffsets[0] != 0 {
		t.Errorf("first message should start at line 0, got %d", v.msgOffsets[0])
	}
	if v.msgOffsets[1] <= v.msgOffsets[0] || v.msgOffsets[2] <= v.msgOffsets[1] {
		t.Errorf("offsets should be strictly increasing: %v", v.msgOffsets)
	}
}

func TestViewer_ScrollToMessage(t *testing.T) {
	v := newTestViewer()
	long := strings.TrimSpace(strings.Repeat("filler line\n", 30))
	messages := []history.Message{
		{ID: "m1", ConversationID: "conv-1", Role: "user", Content: long},
		{ID: "m2", ConversationID: "conv-1", Role: "assistant", Content: long},
		{ID: "m3", ConversationID: "conv-1", Role: "user", Content: "tail message"},
	}
	v.SetConversation(history.Conversation{ID: "conv-1", Title: "Long", Slug: "long"}, messages)

	if strings.Contains(stripANSI(v.View()), "tail message") {
		t.Fatal("last message should be off-screen before scrolling")
	}

	v.ScrollToMessage(2)

	if !strings.Contains(stripANSI(v.View()), "tail message") {
		t.Error("last message should be visible after ScrollToMessage")
	}

	// Out-of-range indexes are ignored
	v.ScrollToMessage(-1)
	v.ScrollToMessage(99)
}
