package app

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/recallhq/recall/internal/config"
	"github.com/recallhq/recall/internal/history"
	"github.com/recallhq/recall/internal/keys"
)

// fakeStore is an in-memory history.Store. Deletions of IDs listed in
// failDeletes return an error; every call is recorded for assertions.
type fakeStore struct {
	conversations []history.Conversation
	messages      map[string][]history.Message
	failDeletes   map[string]bool

	deleteCalls []string
	listCalls   int
}

func newFakeStore(conversations ...history.Conversation) *fakeStore {
	return &fakeStore{
		conversations: conversations,
		messages:      make(map[string][]history.Message),
		failDeletes:   make(map[string]bool),
	}
}

func (f *fakeStore) List(ctx context.Context) ([]history.Conversation, error) {
	f.listCalls++
	out := make([]history.Conversation, len(f.conversations))
	copy(out, f.conversations)
	return out, nil
}

func (f *fakeStore) Get(ctx context.Context, id string) (history.Conversation, error) {
	for _, c := range f.conversations {
		if c.ID == id {
			return c, nil
		}
	}
	return history.Conversation{}, fmt.Errorf("conversation %s not found", id)
}

func (f *fakeStore) GetBySlug(ctx context.Context, slug string) (history.Conversation, error) {
	for _, c := range f.conversations {
		if c.Slug == slug {
			return c, nil
		}
	}
	return history.Conversation{}, fmt.Errorf("conversation %s not found", slug)
}

func (f *fakeStore) Messages(ctx context.Context, conversationID string) ([]history.Message, error) {
	return f.messages[conversationID], nil
}

func (f *fakeStore) Create(ctx context.Context, title string) (history.Conversation, error) {
	c := history.Conversation{
		ID:        fmt.Sprintf("conv-%d", len(f.conversations)+1),
		Title:     title,
		Slug:      history.Slugify(title),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.conversations = append(f.conversations, c)
	return c, nil
}

func (f *fakeStore) AddMessage(ctx context.Context, msg history.Message) error {
	f.messages[msg.ConversationID] = append(f.messages[msg.ConversationID], msg)
	return nil
}

func (f *fakeStore) Rename(ctx context.Context, id, title string) (history.Conversation, error) {
	for i, c := range f.conversations {
		if c.ID == id {
			f.conversations[i].Title = title
			return f.conversations[i], nil
		}
	}
	return history.Conversation{}, fmt.Errorf("conversation %s not found", id)
}

func (f *fakeStore) SetStarred(ctx context.Context, id string, starred bool) (history.Conversation, error) {
	for i, c := range f.conversations {
		if c.ID == id {
			f.conversations[i].Starred = starred
			return f.conversations[i], nil
		}
	}
	return history.Conversation{}, fmt.Errorf("conversation %s not found", id)
}

func (f *fakeStore) Duplicate(ctx context.Context, id string) (history.Conversation, error) {
	src, err := f.Get(ctx, id)
	if err != nil {
		return history.Conversation{}, err
	}
	return f.Create(ctx, src.Title+" (copy)")
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	f.deleteCalls = append(f.deleteCalls, id)
	if f.failDeletes[id] {
		return fmt.Errorf("delete failed for %s", id)
	}
	for i, c := range f.conversations {
		if c.ID == id {
			f.conversations = append(f.conversations[:i], f.conversations[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("conversation %s not found", id)
}

func (f *fakeStore) Close() error { return nil }

// fakeSnapshots records removals and optionally fails them all.
type fakeSnapshots struct {
	removed []string
	fail    bool
}

func (f *fakeSnapshots) Remove(id string) error {
	f.removed = append(f.removed, id)
	if f.fail {
		return fmt.Errorf("snapshot removal failed for %s", id)
	}
	return nil
}

// testConfig creates a minimal config for testing.
func testConfig() *config.Config {
	cfg := &config.Config{
		WelcomeShown:    true, // Skip welcome modal in tests
		LastSeenVersion: "0.0.0-test",
	}
	return cfg
}

// testConversations returns a small list spanning stable IDs a, b, c.
func testConversations() []history.Conversation {
	now := time.Now()
	return []history.Conversation{
		{ID: "a", Title: "Alpha", Slug: "alpha", CreatedAt: now, UpdatedAt: now},
		{ID: "b", Title: "Beta", Slug: "beta", CreatedAt: now, UpdatedAt: now.Add(-time.Hour)},
		{ID: "c", Title: "Gamma", Slug: "gamma", CreatedAt: now, UpdatedAt: now.Add(-2 * time.Hour)},
	}
}

// testModel creates a Model wired to the given fakes, sized, and with the
// conversation list already loaded.
func testModel(cfg *config.Config, store *fakeStore, snapshots *fakeSnapshots) *Model {
	m := New(cfg, "0.0.0-test", store, nil)
	if snapshots != nil {
		m.deleter = history.NewDeleter(store, snapshots, m.sidebar.ActiveID)
	}
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.sidebar.SetConversations(store.conversations)
	return m
}

// keyPress creates a tea.KeyPressMsg for the given key string.
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case keys.Space:
		return tea.KeyPressMsg{Code: tea.KeySpace}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	default:
		if len(key) == 1 {
			r := rune(key[0])
			return tea.KeyPressMsg{Code: r, Text: key}
		}
		return tea.KeyPressMsg{}
	}
}
