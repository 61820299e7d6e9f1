// Package store provides the SQL-backed implementations of history.Store.
// SQLite is the default single-user backend; postgres serves shared setups.
// Both speak database/sql and keep the same schema shape.
package store

import (
	"database/sql"
	"fmt"

	"github.com/recallhq/recall/internal/errors"
	"github.com/recallhq/recall/internal/history"
)

// Open returns a store for the configured driver. The DSN is a file path for
// sqlite and a connection string for postgres.
func Open(driver, dsn string) (history.Store, error) {
	switch driver {
	case "sqlite":
		return OpenSQLite(dsn)
	case "postgres":
		return OpenPostgres(dsn)
	default:
		return nil, errors.E(errors.Op("store.Open"), errors.KindConfig, fmt.Errorf("unknown database driver: %s", driver))
	}
}

// collectConversations drains rows into a slice. The caller owns rows and
// the column order: id, title, slug, starred, created_at, updated_at.
func collectConversations(rows *sql.Rows) ([]history.Conversation, error) {
	defer rows.Close()

	var conversations []history.Conversation
	for rows.Next() {
		var c history.Conversation
		if err := rows.Scan(&c.ID, &c.Title, &c.Slug, &c.Starred, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		conversations = append(conversations, c)
	}
	return conversations, rows.Err()
}

// collectMessages drains rows into a slice. Column order: id,
// conversation_id, role, content, created_at.
func collectMessages(rows *sql.Rows) ([]history.Message, error) {
	defer rows.Close()

	var messages []history.Message
	for rows.Next() {
		var m history.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
