//go:build !darwin || (darwin && !cgo)

package clipboard

import (
	"fmt"

	"golang.design/x/clipboard"

	"github.com/recallhq/recall/internal/logger"
)

// initialized tracks whether the clipboard has been initialized
var initialized bool

func ensureInit() error {
	if initialized {
		return nil
	}

	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard: failed to initialize: %v", err)
		return fmt.Errorf("failed to initialize clipboard: %w", err)
	}

	initialized = true
	return nil
}

// WriteText writes text to the clipboard.
func WriteText(text string) error {
	if err := ensureInit(); err != nil {
		return err
	}

	clipboard.Write(clipboard.FmtText, []byte(text))
	logger.Debug("clipboard: wrote %d bytes of text", len(text))
	return nil
}
