package modals

import (
	"os"
	"testing"

	"github.com/recallhq/recall/internal/logger"
)

func TestMain(m *testing.M) {
	// Disable logging during tests to avoid polluting /tmp/recall-debug.log
	logger.Reset()
	logger.Init(os.DevNull)

	// Initialize modal constants for tests
	ModalWidth = 60
	ModalWidthWide = 90
	ModalInputWidth = 50
	ModalInputCharLimit = 256

	code := m.Run()

	logger.Reset()
	os.Exit(code)
}
