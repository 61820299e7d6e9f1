// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/recallhq/recall/internal/logger"
)

// notifier is swappable so tests never fire real desktop notifications.
var notifier = beeepNotify

func beeepNotify(title, message string) error {
	// Empty icon - beeep handles platform defaults
	return beeep.Notify(title, message, "")
}

// SetNotifier replaces the notification backend.
func SetNotifier(fn func(title, message string) error) {
	notifier = fn
}

// ResetNotifier restores the beeep backend.
func ResetNotifier() {
	notifier = beeepNotify
}

// Send sends a desktop notification with the given title and message.
// On macOS, it uses terminal-notifier or AppleScript.
// On Linux, it uses D-Bus or notify-send.
// On Windows, it uses the Windows Runtime COM API.
func Send(title, message string) error {
	logger.Debug("notification: title=%q message=%q", title, message)
	err := notifier(title, message)
	if err != nil {
		logger.Warn("notification failed: %v", err)
	}
	return err
}

// DeletionCompleted announces a finished bulk deletion.
func DeletionCompleted(count int) error {
	if count == 1 {
		return Send("Recall", "Deleted 1 conversation")
	}
	return Send("Recall", fmt.Sprintf("Deleted %d conversations", count))
}

// ExportCompleted announces a finished export with the written path.
func ExportCompleted(path string) error {
	return Send("Recall", "Exported to "+path)
}
