package history

import "context"

// Store is the persistence boundary for conversations. The SQL
// implementations live in internal/store; tests substitute fakes.
//
// List returns conversations newest-first by UpdatedAt. Delete removes a
// conversation and its messages; deleting an unknown ID is an error.
type Store interface {
	List(ctx context.Context) ([]Conversation, error)
	Get(ctx context.Context, id string) (Conversation, error)
	GetBySlug(ctx context.Context, slug string) (Conversation, error)
	Messages(ctx context.Context, conversationID string) ([]Message, error)
	Create(ctx context.Context, title string) (Conversation, error)
	AddMessage(ctx context.Context, msg Message) error
	Rename(ctx context.Context, id, title string) (Conversation, error)
	SetStarred(ctx context.Context, id string, starred bool) (Conversation, error)
	Duplicate(ctx context.Context, id string) (Conversation, error)
	Delete(ctx context.Context, id string) error
	Close() error
}
