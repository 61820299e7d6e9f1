// Package summarize suggests conversation titles using an OpenAI-compatible
// chat completion endpoint. The client is optional: without an API key the
// rename modal simply works without suggestions.
package summarize

import (
	"context"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/recallhq/recall/internal/errors"
	"github.com/recallhq/recall/internal/history"
	"github.com/recallhq/recall/internal/logger"
)

const (
	defaultModel = "gpt-4o-mini"

	// maxTranscriptChars keeps the prompt small; titles only need the gist.
	maxTranscriptChars = 4000

	maxTitleLength = 80
)

const titlePrompt = "You name chat conversations. Reply with a short, specific title " +
	"for the conversation below. Use at most six words. Reply with the title " +
	"only, no quotes and no trailing punctuation."

// Client wraps the completion API for title suggestions.
type Client struct {
	api   *openai.Client
	model string
}

// NewFromEnv builds a Client from the environment. OPENAI_API_KEY is
// required; RECALL_OPENAI_BASE_URL and RECALL_OPENAI_MODEL are optional
// overrides for proxies and self-hosted endpoints. Returns nil when no key
// is set.
func NewFromEnv() *Client {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil
	}

	cfg := openai.DefaultConfig(key)
	if base := os.Getenv("RECALL_OPENAI_BASE_URL"); base != "" {
		cfg.BaseURL = base
	}

	model := os.Getenv("RECALL_OPENAI_MODEL")
	if model == "" {
		model = defaultModel
	}

	return &Client{api: openai.NewClientWithConfig(cfg), model: model}
}

// NewWithConfig builds a Client from an explicit go-openai config.
func NewWithConfig(cfg openai.ClientConfig, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{api: openai.NewClientWithConfig(cfg), model: model}
}

// Available reports whether suggestions can be requested.
func (c *Client) Available() bool {
	return c != nil && c.api != nil
}

// Title asks the model for a title suggestion based on the transcript.
func (c *Client) Title(ctx context.Context, messages []history.Message) (string, error) {
	const op = errors.Op("summarize.Title")

	if !c.Available() {
		return "", errors.E(op, errors.KindInvalid, "no API key configured")
	}
	if len(messages) == 0 {
		return "", errors.E(op, errors.KindInvalid, "conversation has no messages")
	}

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: titlePrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildTranscript(messages)},
		},
		MaxTokens: 32,
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		logger.Warn("Title suggestion failed: %v", err)
		return "", errors.E(op, errors.KindTimeout, "completion request failed", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.E(op, errors.KindUnknown, "completion returned no choices")
	}

	title := cleanTitle(resp.Choices[0].Message.Content)
	if title == "" {
		return "", errors.E(op, errors.KindUnknown, "completion returned an empty title")
	}

	logger.Debug("Title suggestion: %q", title)
	return title, nil
}

// buildTranscript flattens messages into a plain text prompt, truncated from
// the front so the most recent exchange survives.
func buildTranscript(messages []history.Message) string {
	var b strings.Builder
	for _, msg := range messages {
		label := "User"
		if msg.Role == history.RoleAssistant {
			label = "Assistant"
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}

	transcript := b.String()
	if len(transcript) > maxTranscriptChars {
		transcript = transcript[len(transcript)-maxTranscriptChars:]
	}
	return transcript
}

// cleanTitle normalizes model output into something usable as a title.
func cleanTitle(s string) string {
	s = strings.TrimSpace(s)

	// Models like to quote their answers despite instructions
	s = strings.Trim(s, "\"'`")
	s = strings.TrimSpace(s)

	// Keep only the first line
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = strings.TrimSpace(s[:idx])
	}

	s = strings.TrimSuffix(s, ".")

	if len(s) > maxTitleLength {
		s = strings.TrimSpace(s[:maxTitleLength])
	}
	return s
}
