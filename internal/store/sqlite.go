package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/recallhq/recall/internal/errors"
	"github.com/recallhq/recall/internal/history"
)

// SQLite stores conversations in a single database file. The schema is
// created on open, so a fresh path just works.
type SQLite struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS conversations (
    id         TEXT PRIMARY KEY,
    title      TEXT NOT NULL,
    slug       TEXT NOT NULL,
    starred    INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_conversations_updated_at ON conversations(updated_at);
CREATE INDEX IF NOT EXISTS idx_conversations_slug ON conversations(slug);

CREATE TABLE IF NOT EXISTS messages (
    id              TEXT PRIMARY KEY,
    conversation_id TEXT NOT NULL,
    role            TEXT NOT NULL,
    content         TEXT NOT NULL,
    created_at      TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_conversation_id ON messages(conversation_id);
`

// OpenSQLite opens (creating if necessary) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	op := errors.Op("store.OpenSQLite")

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.StoreUnavailable(op, err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.StoreUnavailable(op, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.StoreUnavailable(op, err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, errors.StoreUnavailable(op, err)
	}

	return &SQLite{db: db}, nil
}

// List returns all conversations, newest activity first.
func (s *SQLite) List(ctx context.Context) ([]history.Conversation, error) {
	op := errors.Op("store.List")

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, slug, starred, created_at, updated_at FROM conversations ORDER BY updated_at DESC")
	if err != nil {
		return nil, errors.StoreQueryFailed(op, err)
	}

	conversations, err := collectConversations(rows)
	if err != nil {
		return nil, errors.StoreQueryFailed(op, err)
	}
	return conversations, nil
}

// Get returns the conversation with the given ID.
func (s *SQLite) Get(ctx context.Context, id string) (history.Conversation, error) {
	var c history.Conversation
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, slug, starred, created_at, updated_at FROM conversations WHERE id = ?", id).
		Scan(&c.ID, &c.Title, &c.Slug, &c.Starred, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return history.Conversation{}, errors.ConversationNotFound(id)
	}
	if err != nil {
		return history.Conversation{}, errors.StoreQueryFailed(errors.Op("store.Get"), err)
	}
	return c, nil
}

// GetBySlug returns the conversation with the given slug. With duplicate
// slugs the most recently active one wins.
func (s *SQLite) GetBySlug(ctx context.Context, slug string) (history.Conversation, error) {
	var c history.Conversation
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, slug, starred, created_at, updated_at FROM conversations WHERE slug = ? ORDER BY updated_at DESC LIMIT 1", slug).
		Scan(&c.ID, &c.Title, &c.Slug, &c.Starred, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return history.Conversation{}, errors.E(errors.Op("store.GetBySlug"), errors.KindNotFound,
			fmt.Errorf("no conversation with slug %q", slug))
	}
	if err != nil {
		return history.Conversation{}, errors.StoreQueryFailed(errors.Op("store.GetBySlug"), err)
	}
	return c, nil
}

// Messages returns a conversation's messages oldest-first.
func (s *SQLite) Messages(ctx context.Context, conversationID string) ([]history.Message, error) {
	op := errors.Op("store.Messages")

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, conversation_id, role, content, created_at FROM messages WHERE conversation_id = ? ORDER BY created_at ASC, id ASC", conversationID)
	if err != nil {
		return nil, errors.StoreQueryFailed(op, err)
	}

	messages, err := collectMessages(rows)
	if err != nil {
		return nil, errors.StoreQueryFailed(op, err)
	}
	return messages, nil
}

// Create inserts a new conversation with a derived, de-duplicated slug.
func (s *SQLite) Create(ctx context.Context, title string) (history.Conversation, error) {
	op := errors.Op("store.Create")

	title = strings.TrimSpace(title)
	if title == "" {
		return history.Conversation{}, errors.E(op, errors.KindInvalid, fmt.Errorf("conversation title required"))
	}

	slug, err := s.uniqueSlug(ctx, history.Slugify(title))
	if err != nil {
		return history.Conversation{}, errors.StoreQueryFailed(op, err)
	}

	now := time.Now().UTC()
	c := history.Conversation{
		ID:        uuid.New().String(),
		Title:     title,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO conversations (id, title, slug, starred, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		c.ID, c.Title, c.Slug, c.Starred, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return history.Conversation{}, errors.StoreQueryFailed(op, err)
	}
	return c, nil
}

// uniqueSlug appends -2, -3, ... until the slug is unused.
func (s *SQLite) uniqueSlug(ctx context.Context, base string) (string, error) {
	slug := base
	for n := 2; ; n++ {
		var exists int
		err := s.db.QueryRowContext(ctx, "SELECT 1 FROM conversations WHERE slug = ?", slug).Scan(&exists)
		if err == sql.ErrNoRows {
			return slug, nil
		}
		if err != nil {
			return "", err
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}

// AddMessage appends a message and bumps the conversation's activity time.
func (s *SQLite) AddMessage(ctx context.Context, msg history.Message) error {
	op := errors.Op("store.AddMessage")

	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.StoreQueryFailed(op, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO messages (id, conversation_id, role, content, created_at) VALUES (?, ?, ?, ?, ?)",
		msg.ID, msg.ConversationID, msg.Role, msg.Content, msg.CreatedAt)
	if err != nil {
		return errors.StoreQueryFailed(op, err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE conversations SET updated_at = ? WHERE id = ?", msg.CreatedAt, msg.ConversationID)
	if err != nil {
		return errors.StoreQueryFailed(op, err)
	}

	if err := tx.Commit(); err != nil {
		return errors.StoreQueryFailed(op, err)
	}
	return nil
}

// Rename updates a conversation's title. The slug stays stable so existing
// links keep working.
func (s *SQLite) Rename(ctx context.Context, id, title string) (history.Conversation, error) {
	op := errors.Op("store.Rename")

	title = strings.TrimSpace(title)
	if title == "" {
		return history.Conversation{}, errors.E(op, errors.KindInvalid, fmt.Errorf("conversation title required"))
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE conversations SET title = ?, updated_at = ? WHERE id = ?", title, time.Now().UTC(), id)
	if err != nil {
		return history.Conversation{}, errors.StoreQueryFailed(op, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return history.Conversation{}, errors.ConversationNotFound(id)
	}

	return s.Get(ctx, id)
}

// SetStarred flips the star without touching updated_at, so starring never
// reorders the sidebar.
func (s *SQLite) SetStarred(ctx context.Context, id string, starred bool) (history.Conversation, error) {
	op := errors.Op("store.SetStarred")

	res, err := s.db.ExecContext(ctx,
		"UPDATE conversations SET starred = ? WHERE id = ?", starred, id)
	if err != nil {
		return history.Conversation{}, errors.StoreQueryFailed(op, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return history.Conversation{}, errors.ConversationNotFound(id)
	}

	return s.Get(ctx, id)
}

// Duplicate copies a conversation and its messages under a new ID. The copy
// gets " (copy)" appended to its title and lands at the top of the list.
func (s *SQLite) Duplicate(ctx context.Context, id string) (history.Conversation, error) {
	op := errors.Op("store.Duplicate")

	src, err := s.Get(ctx, id)
	if err != nil {
		return history.Conversation{}, err
	}

	msgs, err := s.Messages(ctx, id)
	if err != nil {
		return history.Conversation{}, err
	}

	title := src.Title + " (copy)"
	slug, err := s.uniqueSlug(ctx, history.Slugify(title))
	if err != nil {
		return history.Conversation{}, errors.StoreQueryFailed(op, err)
	}

	now := time.Now().UTC()
	dup := history.Conversation{
		ID:        uuid.New().String(),
		Title:     title,
		Slug:      slug,
		Starred:   src.Starred,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return history.Conversation{}, errors.StoreQueryFailed(op, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO conversations (id, title, slug, starred, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		dup.ID, dup.Title, dup.Slug, dup.Starred, dup.CreatedAt, dup.UpdatedAt)
	if err != nil {
		return history.Conversation{}, errors.StoreQueryFailed(op, err)
	}

	for _, m := range msgs {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO messages (id, conversation_id, role, content, created_at) VALUES (?, ?, ?, ?, ?)",
			uuid.New().String(), dup.ID, m.Role, m.Content, m.CreatedAt)
		if err != nil {
			return history.Conversation{}, errors.StoreQueryFailed(op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return history.Conversation{}, errors.StoreQueryFailed(op, err)
	}
	return dup, nil
}

// Delete removes a conversation and all of its messages. Deleting an
// unknown ID reports KindNotFound.
func (s *SQLite) Delete(ctx context.Context, id string) error {
	op := errors.Op("store.Delete")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.StoreQueryFailed(op, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM messages WHERE conversation_id = ?", id); err != nil {
		return errors.StoreQueryFailed(op, err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM conversations WHERE id = ?", id)
	if err != nil {
		return errors.StoreQueryFailed(op, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return errors.ConversationNotFound(id)
	}

	if err := tx.Commit(); err != nil {
		return errors.StoreQueryFailed(op, err)
	}
	return nil
}

// Vacuum reclaims file space after deletions. Only meaningful for the
// sqlite backend, so it lives off the Store interface.
func (s *SQLite) Vacuum(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "VACUUM"); err != nil {
		return errors.StoreQueryFailed(errors.Op("store.Vacuum"), err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}
