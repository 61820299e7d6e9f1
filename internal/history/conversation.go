// Package history defines the conversation domain model and the
// selection/deletion workflow that operates on it. The types here are
// UI-agnostic; the terminal front end in internal/app consumes them.
package history

import (
	"strings"
	"time"
)

// Message roles as stored.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Conversation is one chat transcript's metadata as held by the store.
// ID is opaque and unique; Title is the human-readable name shown in the
// sidebar; Slug is the URL-safe identifier used for links, exports, and CLI
// lookup. UpdatedAt drives the sidebar's date grouping.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Starred   bool      `json:"starred,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is a single turn within a conversation.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// Slugify derives a URL-safe identifier from a title: lowercase, runs of
// anything outside [a-z0-9] collapse to single hyphens, leading and trailing
// hyphens trimmed. An empty result falls back to "conversation".
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "conversation"
	}
	return slug
}

// Resolve maps the given IDs to conversations from list, preserving list
// order and silently dropping IDs with no match. This is how a selection set
// (which may hold stale IDs) becomes a deletion snapshot.
func Resolve(list []Conversation, ids []string) []Conversation {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	var resolved []Conversation
	for _, c := range list {
		if want[c.ID] {
			resolved = append(resolved, c)
		}
	}
	return resolved
}
