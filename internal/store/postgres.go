package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/recallhq/recall/internal/errors"
	"github.com/recallhq/recall/internal/history"
)

// Postgres mirrors the SQLite store for shared deployments.
type Postgres struct {
	db *sql.DB
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS conversations (
    id         TEXT PRIMARY KEY,
    title      TEXT NOT NULL,
    slug       TEXT NOT NULL,
    starred    BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_conversations_updated_at ON conversations(updated_at);
CREATE INDEX IF NOT EXISTS idx_conversations_slug ON conversations(slug);

CREATE TABLE IF NOT EXISTS messages (
    id              TEXT PRIMARY KEY,
    conversation_id TEXT NOT NULL,
    role            TEXT NOT NULL,
    content         TEXT NOT NULL,
    created_at      TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_conversation_id ON messages(conversation_id);
`

// OpenPostgres connects with the given DSN and ensures the schema exists.
func OpenPostgres(dsn string) (*Postgres, error) {
	op := errors.Op("store.OpenPostgres")

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.StoreUnavailable(op, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.StoreUnavailable(op, err)
	}

	if _, err := db.Exec(postgresSchema); err != nil {
		db.Close()
		return nil, errors.StoreUnavailable(op, err)
	}

	return &Postgres{db: db}, nil
}

func (p *Postgres) List(ctx context.Context) ([]history.Conversation, error) {
	op := errors.Op("store.List")

	rows, err := p.db.QueryContext(ctx,
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

func (p *Postgres) Get(ctx context.Context, id string) (history.Conversation, error) {
	var c history.Conversation
	err := p.db.QueryRowContext(ctx,
		"SELECT id, title, slug, starred, created_at, updated_at FROM conversations WHERE id = $1", id).
		Scan(&c.ID, &c.Title, &c.Slug, &c.Starred, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return history.Conversation{}, errors.ConversationNotFound(id)
	}
	if err != nil {
		return history.Conversation{}, errors.StoreQueryFailed(errors.Op("store.Get"), err)
	}
	return c, nil
}

func (p *Postgres) GetBySlug(ctx context.Context, slug string) (history.Conversation, error) {
	var c history.Conversation
	err := p.db.QueryRowContext(ctx,
		"SELECT id, title, slug, starred, created_at, updated_at FROM conversations WHERE slug = $1 ORDER BY updated_at DESC LIMIT 1", slug).
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

func (p *Postgres) Messages(ctx context.Context, conversationID string) ([]history.Message, error) {
	op := errors.Op("store.Messages")

	rows, err := p.db.QueryContext(ctx,
		"SELECT id, conversation_id, role, content, created_at FROM messages WHERE conversation_id = $1 ORDER BY created_at ASC, id ASC", conversationID)
	if err != nil {
		return nil, errors.StoreQueryFailed(op, err)
	}

	messages, err := collectMessages(rows)
	if err != nil {
		return nil, errors.StoreQueryFailed(op, err)
	}
	return messages, nil
}

func (p *Postgres) Create(ctx context.Context, title string) (history.Conversation, error) {
	op := errors.Op("store.Create")

	title = strings.TrimSpace(title)
	if title == "" {
		return history.Conversation{}, errors.E(op, errors.KindInvalid, fmt.Errorf("conversation title required"))
	}

	slug, err := p.uniqueSlug(ctx, history.Slugify(title))
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

	_, err = p.db.ExecContext(ctx,
		"INSERT INTO conversations (id, title, slug, starred, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)",
		c.ID, c.Title, c.Slug, c.Starred, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return history.Conversation{}, errors.StoreQueryFailed(op, err)
	}
	return c, nil
}

func (p *Postgres) uniqueSlug(ctx context.Context, base string) (string, error) {
	slug := base
	for n := 2; ; n++ {
		var exists int
		err := p.db.QueryRowContext(ctx, "SELECT 1 FROM conversations WHERE slug = $1", slug).Scan(&exists)
		if err == sql.ErrNoRows {
			return slug, nil
		}
		if err != nil {
			return "", err
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}

func (p *Postgres) AddMessage(ctx context.Context, msg history.Message) error {
	op := errors.Op("store.AddMessage")

	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.StoreQueryFailed(op, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO messages (id, conversation_id, role, content, created_at) VALUES ($1, $2, $3, $4, $5)",
		msg.ID, msg.ConversationID, msg.Role, msg.Content, msg.CreatedAt)
	if err != nil {
		return errors.StoreQueryFailed(op, err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE conversations SET updated_at = $1 WHERE id = $2", msg.CreatedAt, msg.ConversationID)
	if err != nil {
		return errors.StoreQueryFailed(op, err)
	}

	if err := tx.Commit(); err != nil {
		return errors.StoreQueryFailed(op, err)
	}
	return nil
}

func (p *Postgres) Rename(ctx context.Context, id, title string) (history.Conversation, error) {
	op := errors.Op("store.Rename")

	title = strings.TrimSpace(title)
	if title == "" {
		return history.Conversation{}, errors.E(op, errors.KindInvalid, fmt.Errorf("conversation title required"))
	}

	res, err := p.db.ExecContext(ctx,
		"UPDATE conversations SET title = $1, updated_at = $2 WHERE id = $3", title, time.Now().UTC(), id)
	if err != nil {
		return history.Conversation{}, errors.StoreQueryFailed(op, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return history.Conversation{}, errors.ConversationNotFound(id)
	}

	return p.Get(ctx, id)
}

func (p *Postgres) SetStarred(ctx context.Context, id string, starred bool) (history.Conversation, error) {
	op := errors.Op("store.SetStarred")

	res, err := p.db.ExecContext(ctx,
		"UPDATE conversations SET starred = $1 WHERE id = $2", starred, id)
	if err != nil {
		return history.Conversation{}, errors.StoreQueryFailed(op, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return history.Conversation{}, errors.ConversationNotFound(id)
	}

	return p.Get(ctx, id)
}

func (p *Postgres) Duplicate(ctx context.Context, id string) (history.Conversation, error) {
	op := errors.Op("store.Duplicate")

	src, err := p.Get(ctx, id)
	if err != nil {
		return history.Conversation{}, err
	}

	msgs, err := p.Messages(ctx, id)
	if err != nil {
		return history.Conversation{}, err
	}

	title := src.Title + " (copy)"
	slug, err := p.uniqueSlug(ctx, history.Slugify(title))
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

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return history.Conversation{}, errors.StoreQueryFailed(op, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO conversations (id, title, slug, starred, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)",
		dup.ID, dup.Title, dup.Slug, dup.Starred, dup.CreatedAt, dup.UpdatedAt)
	if err != nil {
		return history.Conversation{}, errors.StoreQueryFailed(op, err)
	}

	for _, m := range msgs {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO messages (id, conversation_id, role, content, created_at) VALUES ($1, $2, $3, $4, $5)",
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

func (p *Postgres) Delete(ctx context.Context, id string) error {
	op := errors.Op("store.Delete")

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.StoreQueryFailed(op, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM messages WHERE conversation_id = $1", id); err != nil {
		return errors.StoreQueryFailed(op, err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM conversations WHERE id = $1", id)
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

func (p *Postgres) Close() error {
	return p.db.Close()
}
