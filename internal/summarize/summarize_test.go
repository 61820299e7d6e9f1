package summarize

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"

	"github.com/recallhq/recall/internal/errors"
	"github.com/recallhq/recall/internal/history"
)

func TestNewFromEnv(t *testing.T) {
	t.Run("no key returns nil", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")
		if c := NewFromEnv(); c != nil {
			t.Error("expected nil client without API key")
		}
	})

	t.Run("key returns client", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "test-key")
		c := NewFromEnv()
		if !c.Available() {
			t.Error("expected available client with API key")
		}
		if c.model != defaultModel {
			t.Errorf("expected default model, got %s", c.model)
		}
	})

	t.Run("model override", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "test-key")
		t.Setenv("RECALL_OPENAI_MODEL", "gpt-4o")
		c := NewFromEnv()
		if c.model != "gpt-4o" {
			t.Errorf("expected model override, got %s", c.model)
		}
	})
}

func TestAvailableNilClient(t *testing.T) {
	var c *Client
	if c.Available() {
		t.Error("nil client must not report available")
	}
}

func TestTitle(t *testing.T) {
	var gotModel string
	var gotMessages []openai.ChatCompletionMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		gotModel = req.Model
		gotMessages = req.Messages
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{
					Role:    openai.ChatMessageRoleAssistant,
					Content: "\"Fixing the Flaky CI Test.\"\n",
				}},
			},
		})
	}))
	defer server.Close()

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL + "/v1"
	c := NewWithConfig(cfg, "test-model")

	messages := []history.Message{
		{Role: history.RoleUser, Content: "Why does this test only fail on CI?"},
		{Role: history.RoleAssistant, Content: "Check for a time zone dependency."},
	}

	title, err := c.Title(context.Background(), messages)
	if err != nil {
		t.Fatalf("Title() error: %v", err)
	}
	if title != "Fixing the Flaky CI Test" {
		t.Errorf("expected cleaned title, got %q", title)
	}

	if gotModel != "test-model" {
		t.Errorf("expected model test-model, got %s", gotModel)
	}
	if len(gotMessages) != 2 {
		t.Fatalf("expected system + user message, got %d", len(gotMessages))
	}
	if gotMessages[0].Role != openai.ChatMessageRoleSystem {
		t.Errorf("expected first message to be the system prompt")
	}
	if !strings.Contains(gotMessages[1].Content, "User: Why does this test only fail on CI?") {
		t.Errorf("transcript missing user line: %q", gotMessages[1].Content)
	}
	if !strings.Contains(gotMessages[1].Content, "Assistant: Check for a time zone dependency.") {
		t.Errorf("transcript missing assistant line: %q", gotMessages[1].Content)
	}
}

func TestTitleNoMessages(t *testing.T) {
	cfg := openai.DefaultConfig("test-key")
	c := NewWithConfig(cfg, "")

	_, err := c.Title(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error for empty transcript")
	}
	if !errors.Is(err, errors.KindInvalid) {
		t.Errorf("expected KindInvalid, got %v", errors.GetKind(err))
	}
}

func TestTitleUnavailableClient(t *testing.T) {
	var c *Client
	_, err := c.Title(context.Background(), []history.Message{{Role: history.RoleUser, Content: "hi"}})
	if err == nil {
		t.Fatal("expected error from unavailable client")
	}
}

func TestBuildTranscriptTruncatesFromFront(t *testing.T) {
	long := strings.Repeat("x", maxTranscriptChars)
	messages := []history.Message{
		{Role: history.RoleUser, Content: long},
		{Role: history.RoleAssistant, Content: "the recent part"},
	}

	got := buildTranscript(messages)
	if len(got) > maxTranscriptChars {
		t.Errorf("transcript length %d exceeds cap %d", len(got), maxTranscriptChars)
	}
	if !strings.Contains(got, "the recent part") {
		t.Error("truncation dropped the most recent message")
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain title",
			input: "Fixing the build",
			want:  "Fixing the build",
		},
		{
			name:  "quoted with trailing period",
			input: "\"Fixing the build.\"",
			want:  "Fixing the build",
		},
		{
			name:  "surrounding whitespace",
			input: "  Fixing the build \n",
			want:  "Fixing the build",
		},
		{
			name:  "multiline keeps first line",
			input: "Fixing the build\nHere is why I chose this title",
			want:  "Fixing the build",
		},
		{
			name:  "backtick quotes",
			input: "`Fixing the build`",
			want:  "Fixing the build",
		},
		{
			name:  "overlong input is capped",
			input: strings.Repeat("a", 200),
			want:  strings.Repeat("a", maxTitleLength),
		},
		{
			name:  "empty",
			input: "   ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanTitle(tt.input); got != tt.want {
				t.Errorf("cleanTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
