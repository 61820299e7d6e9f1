package app

import (
	"github.com/recallhq/recall/internal/history"
)

// StartupModalMsg triggers the welcome/what's-new check once the program
// is running.
type StartupModalMsg struct{}

// conversationsLoadedMsg carries a fresh conversation list from the store.
type conversationsLoadedMsg struct {
	conversations []history.Conversation
	err           error
}

// messagesLoadedMsg carries an opened conversation's transcript.
type messagesLoadedMsg struct {
	conversation history.Conversation
	messages     []history.Message
	err          error
}

// conversationDeletedMsg reports a single delete plus the follow-up reload.
type conversationDeletedMsg struct {
	title        string
	navigateHome bool
	err          error

	conversations []history.Conversation
	loadErr       error
}

// bulkDeleteDoneMsg reports a bulk delete plus the follow-up reload.
type bulkDeleteDoneMsg struct {
	result history.DeleteResult

	conversations []history.Conversation
	loadErr       error
}

// conversationRenamedMsg reports a rename plus the follow-up reload.
type conversationRenamedMsg struct {
	conversation history.Conversation
	err          error

	conversations []history.Conversation
	loadErr       error
}

// titleSuggestedMsg carries a generated title for the rename modal.
type titleSuggestedMsg struct {
	conversationID string
	title          string
	err            error
}

// conversationDuplicatedMsg reports a duplication plus the follow-up reload.
type conversationDuplicatedMsg struct {
	conversation history.Conversation
	err          error

	conversations []history.Conversation
	loadErr       error
}

// starToggledMsg reports a star/unstar plus the follow-up reload.
type starToggledMsg struct {
	conversation history.Conversation
	err          error

	conversations []history.Conversation
	loadErr       error
}

// exportDoneMsg reports a transcript export.
type exportDoneMsg struct {
	path string
	err  error
}

// exportPreviewMsg carries a rendered markdown transcript for the preview
// modal.
type exportPreviewMsg struct {
	conversationID string
	title          string
	markdown       string
	err            error
}
