package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/recallhq/recall/internal/export"
	"github.com/recallhq/recall/internal/history"
	"github.com/recallhq/recall/internal/logger"
)

// loadConversations fetches the full conversation list from the store.
func (m *Model) loadConversations() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		if store == nil {
			return conversationsLoadedMsg{}
		}
		conversations, err := store.List(context.Background())
		return conversationsLoadedMsg{conversations: conversations, err: err}
	}
}

// openConversation loads a conversation's transcript for the viewer.
func (m *Model) openConversation(conv history.Conversation) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		messages, err := store.Messages(context.Background(), conv.ID)
		return messagesLoadedMsg{conversation: conv, messages: messages, err: err}
	}
}

// deleteConversation removes one conversation, then reloads the list so the
// sidebar reflects what the store now holds.
func (m *Model) deleteConversation(conv history.Conversation) tea.Cmd {
	deleter := m.deleter
	store := m.store
	return func() tea.Msg {
		ctx := context.Background()
		navigate, err := deleter.DeleteOne(ctx, conv)

		msg := conversationDeletedMsg{title: conv.Title, navigateHome: navigate, err: err}
		msg.conversations, msg.loadErr = store.List(ctx)
		return msg
	}
}

// deleteConversations removes the given conversations one at a time, then
// reloads the list. Individual failures do not stop the run.
func (m *Model) deleteConversations(convs []history.Conversation) tea.Cmd {
	deleter := m.deleter
	store := m.store
	return func() tea.Msg {
		ctx := context.Background()
		result := deleter.DeleteMany(ctx, convs)

		msg := bulkDeleteDoneMsg{result: result}
		msg.conversations, msg.loadErr = store.List(ctx)
		return msg
	}
}

// renameConversation applies a new title, then reloads the list.
func (m *Model) renameConversation(id, title string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx := context.Background()
		conv, err := store.Rename(ctx, id, title)

		msg := conversationRenamedMsg{conversation: conv, err: err}
		msg.conversations, msg.loadErr = store.List(ctx)
		return msg
	}
}

// suggestTitle asks the summarizer for a title based on the transcript.
func (m *Model) suggestTitle(conversationID string) tea.Cmd {
	store := m.store
	summarizer := m.summarizer
	return func() tea.Msg {
		ctx := context.Background()
		messages, err := store.Messages(ctx, conversationID)
		if err != nil {
			return titleSuggestedMsg{conversationID: conversationID, err: err}
		}

		title, err := summarizer.Title(ctx, messages)
		return titleSuggestedMsg{conversationID: conversationID, title: title, err: err}
	}
}

// duplicateConversation copies a conversation and its messages. When the
// user edited the proposed title, a rename follows the copy.
func (m *Model) duplicateConversation(sourceID, title string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx := context.Background()
		conv, err := store.Duplicate(ctx, sourceID)
		if err == nil && title != "" && title != conv.Title {
			conv, err = store.Rename(ctx, conv.ID, title)
		}

		msg := conversationDuplicatedMsg{conversation: conv, err: err}
		msg.conversations, msg.loadErr = store.List(ctx)
		return msg
	}
}

// toggleStar flips a conversation's starred flag, then reloads the list.
func (m *Model) toggleStar(conv history.Conversation) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx := context.Background()
		updated, err := store.SetStarred(ctx, conv.ID, !conv.Starred)

		msg := starToggledMsg{conversation: updated, err: err}
		msg.conversations, msg.loadErr = store.List(ctx)
		return msg
	}
}

// exportConversation writes the transcript to disk in the chosen format and
// refreshes the snapshot cache with the rendered markdown.
func (m *Model) exportConversation(conv history.Conversation, format export.Format, destDir string) tea.Cmd {
	store := m.store
	snapshots := m.snapshots
	return func() tea.Msg {
		ctx := context.Background()
		messages, err := store.Messages(ctx, conv.ID)
		if err != nil {
			return exportDoneMsg{err: err}
		}

		path, err := export.NewWriter(destDir).WriteAs(conv, messages, format)
		if err != nil {
			return exportDoneMsg{err: err}
		}

		if snapshots != nil {
			if rendered, renderErr := export.Render(conv, messages); renderErr == nil {
				if putErr := snapshots.Put(conv.ID, []byte(rendered)); putErr != nil {
					logger.Warn("app: could not cache snapshot for %s: %v", conv.ID, putErr)
				}
			}
		}

		return exportDoneMsg{path: path}
	}
}

// loadExportPreview renders the transcript as markdown for the preview
// modal.
func (m *Model) loadExportPreview(conv history.Conversation) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx := context.Background()
		messages, err := store.Messages(ctx, conv.ID)
		if err != nil {
			return exportPreviewMsg{conversationID: conv.ID, title: conv.Title, err: err}
		}

		markdown, err := export.Render(conv, messages)
		return exportPreviewMsg{conversationID: conv.ID, title: conv.Title, markdown: markdown, err: err}
	}
}
