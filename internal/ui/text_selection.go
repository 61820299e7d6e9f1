package ui

import (
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"

	"github.com/recallhq/recall/internal/clipboard"
	"github.com/recallhq/recall/internal/logger"
)

// TextSelection tracks mouse-based text selection state in the transcript viewport.
//
// Selection coordinates are relative to the viewport's inner content area:
//
//	┌─────────────────────────────────────────────┐
//	│ ← 1px border                                │
//	│  ┌─────────────────────────────────────────┐│
//	│  │ (0,0)   Viewport content area           ││
//	│  │                                         ││
//	│  │    Selection coordinates are            ││
//	│  │    relative to this inner area          ││
//	│  │                                         ││
//	│  │                             (width, height)
//	│  └─────────────────────────────────────────┘│
//	│                                 1px border → │
//	└─────────────────────────────────────────────┘
//
// Mouse events from Bubble Tea arrive in terminal coordinates (0,0 = top-left of
// the terminal). The app routes them to the Viewer pre-adjusted to panel
// coordinates (0,0 = top-left of the viewer panel), and the Viewer's Update
// subtracts 1 from both X and Y to account for the panel border, yielding
// viewport-relative coordinates.
//
// When extracting selected text, the coordinates index into the viewport's
// rendered lines. ANSI escape codes are stripped first so that coordinates
// align with visible character positions.
type TextSelection struct {
	StartCol, StartLine int  // Start position (column, line in viewport)
	EndCol, EndLine     int  // End position (column, line in viewport)
	Active              bool // True during drag operation

	// Click tracking for double/triple click detection
	LastClickTime time.Time
	LastClickX    int
	LastClickY    int
	ClickCount    int

	// Selection flash animation (brief highlight after copy, then clear)
	FlashFrame int // -1 = inactive, 0 = flash visible
}

// ClipboardErrorMsg is sent when clipboard operations fail
type ClipboardErrorMsg struct {
	Error error
}

// SelectionFlashTickMsg signals the end of the copy flash highlight
type SelectionFlashTickMsg time.Time

const (
	doubleClickThreshold   = 500 * time.Millisecond
	clickTolerance         = 2 // pixels
	selectionFlashInterval = 150 * time.Millisecond
)

// SelectionFlashTick returns a command that ends the copy flash after one interval
func SelectionFlashTick() tea.Cmd {
	return tea.Tick(selectionFlashInterval, func(t time.Time) tea.Msg {
		return SelectionFlashTickMsg(t)
	})
}

// handleSelectionFlashTick dismisses the selection once the copy flash has shown
func (v *Viewer) handleSelectionFlashTick() tea.Cmd {
	if v.selection.FlashFrame < 0 {
		return nil
	}
	v.selection.FlashFrame = -1
	v.SelectionClear()
	return nil
}

// StartSelection begins a text selection at the given coordinates
func (v *Viewer) StartSelection(col, line int) {
	v.selection.StartCol = col
	v.selection.StartLine = line
	v.selection.EndCol = col
	v.selection.EndLine = line
	v.selection.Active = true
}

// EndSelection updates the end position of the selection during drag
func (v *Viewer) EndSelection(col, line int) {
	if !v.selection.Active {
		return
	}
	v.selection.EndCol = col
	v.selection.EndLine = line
}

// SelectionStop ends the drag but keeps the selection visible
func (v *Viewer) SelectionStop() {
	v.selection.Active = false
}

// SelectionClear clears the selection entirely
func (v *Viewer) SelectionClear() {
	v.selection.StartCol = -1
	v.selection.StartLine = -1
	v.selection.EndCol = -1
	v.selection.EndLine = -1
	v.selection.Active = false
}

// HasTextSelection returns true if there is an active or completed selection
func (v *Viewer) HasTextSelection() bool {
	return v.selection.StartCol >= 0 && v.selection.StartLine >= 0 &&
		(v.selection.EndCol != v.selection.StartCol || v.selection.EndLine != v.selection.StartLine)
}

// handleMouseClick handles mouse click events and detects double/triple clicks
func (v *Viewer) handleMouseClick(x, y int) tea.Cmd {
	now := time.Now()

	// Check if this is a potential multi-click
	if now.Sub(v.selection.LastClickTime) <= doubleClickThreshold &&
		abs(x-v.selection.LastClickX) <= clickTolerance &&
		abs(y-v.selection.LastClickY) <= clickTolerance {
		v.selection.ClickCount++
	} else {
		v.selection.ClickCount = 1
	}

	v.selection.LastClickTime = now
	v.selection.LastClickX = x
	v.selection.LastClickY = y

	switch v.selection.ClickCount {
	case 1:
		// Single click - start selection
		v.StartSelection(x, y)
	case 2:
		// Double click - select word and copy immediately
		v.SelectWord(x, y)
		return v.CopySelectedText()
	case 3:
		// Triple click - select line/paragraph and copy immediately
		v.SelectParagraph(x, y)
		v.selection.ClickCount = 0 // Reset after triple click
		return v.CopySelectedText()
	}

	return nil
}

// abs returns the absolute value of an integer
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// SelectWord selects the word at the given position
func (v *Viewer) SelectWord(col, line int) {
	// Get the content from the viewport
	content := v.viewport.View()
	lines := strings.Split(content, "\n")

	if line < 0 || line >= len(lines) {
		return
	}

	currentLine := ansi.Strip(lines[line])
	if col < 0 || col >= len(currentLine) {
		return
	}

	// Find word boundaries using uniseg
	startCol := col
	endCol := col

	// Search backward for word start
	gr := uniseg.NewGraphemes(currentLine[:col])
	pos := 0
	lastBoundary := 0
	for gr.Next() {
		if gr.IsWordBoundary() {
			lastBoundary = pos
		}
		pos += len(gr.Str())
	}
	startCol = lastBoundary

	// Search forward for word end
	gr = uniseg.NewGraphemes(currentLine[col:])
	pos = col
	for gr.Next() {
		if gr.IsWordBoundary() {
			endCol = pos
			break
		}
		pos += len(gr.Str())
	}
	if endCol <= col {
		endCol = len(currentLine)
	}

	v.selection.StartCol = startCol
	v.selection.StartLine = line
	v.selection.EndCol = endCol
	v.selection.EndLine = line
	v.selection.Active = false
}

// SelectParagraph selects the paragraph/line at the given position
func (v *Viewer) SelectParagraph(col, line int) {
	// Get the content from the viewport
	content := v.viewport.View()
	lines := strings.Split(content, "\n")

	if line < 0 || line >= len(lines) {
		return
	}

	// Find paragraph boundaries (search for empty lines)
	startLine := line
	endLine := line

	// Search backward for paragraph start
	for startLine > 0 {
		prevLine := ansi.Strip(lines[startLine-1])
		if strings.TrimSpace(prevLine) == "" {
			break
		}
		startLine--
	}

	// Search forward for paragraph end
	for endLine < len(lines)-1 {
		nextLine := ansi.Strip(lines[endLine+1])
		if strings.TrimSpace(nextLine) == "" {
			break
		}
		endLine++
	}

	// Get the width of the last line in the paragraph
	lastLineWidth := len(ansi.Strip(lines[endLine]))

	v.selection.StartCol = 0
	v.selection.StartLine = startLine
	v.selection.EndCol = lastLineWidth
	v.selection.EndLine = endLine
	v.selection.Active = false
}

// selectionArea returns the normalized selection area (start < end).
//
// Selection can happen in any direction - the user might drag from bottom-right
// to top-left. This function normalizes the coordinates so that (startCol, startLine)
// is always before (endCol, endLine) in reading order.
//
// The normalization handles two cases:
//  1. Multi-line backward selection: startLine > endLine - swap both lines and columns
//  2. Same-line backward selection: startLine == endLine && startCol > endCol - swap columns
//
// This ensures text extraction and rendering always process from start to end.
func (v *Viewer) selectionArea() (startCol, startLine, endCol, endLine int) {
	startCol = v.selection.StartCol
	startLine = v.selection.StartLine
	endCol = v.selection.EndCol
	endLine = v.selection.EndLine

	// Normalize so start is before end in reading order (top-to-bottom, left-to-right)
	if startLine > endLine || (startLine == endLine && startCol > endCol) {
		startCol, endCol = endCol, startCol
		startLine, endLine = endLine, startLine
	}

	return
}

// GetSelectedText returns the currently selected text.
//
// The text extraction process:
//  1. Get the viewport's rendered content (which contains ANSI escape codes)
//  2. Split into lines
//  3. For each line in the selection range, strip ANSI codes before extracting substring
//  4. Join lines with newlines
//
// ANSI codes are stripped because selection coordinates correspond to visible character
// positions, not raw string positions. For example, a bold "Hello" might be stored as
// "\x1b[1mHello\x1b[0m" (15 bytes) but displays as 5 characters. When the user selects
// characters 0-5, they expect "Hello", not a partial escape sequence.
func (v *Viewer) GetSelectedText() string {
	if !v.HasTextSelection() {
		return ""
	}

	content := v.viewport.View()
	lines := strings.Split(content, "\n")

	startCol, startLine, endCol, endLine := v.selectionArea()

	// Dragging onto the panel border can yield negative coordinates
	if startLine < 0 {
		startLine = 0
	}

	var result strings.Builder

	for y := startLine; y <= endLine && y < len(lines); y++ {
		line := ansi.Strip(lines[y])

		var lineStart, lineEnd int
		if y == startLine {
			lineStart = startCol
		} else {
			lineStart = 0
		}
		if y == endLine {
			lineEnd = endCol
		} else {
			lineEnd = len(line)
		}

		// Ensure bounds are valid
		if lineStart < 0 {
			lineStart = 0
		}
		if lineEnd > len(line) {
			lineEnd = len(line)
		}
		if lineStart > lineEnd {
			lineStart = lineEnd
		}

		if lineStart < len(line) {
			result.WriteString(line[lineStart:lineEnd])
		}
		if y < endLine {
			result.WriteString("\n")
		}
	}

	return strings.TrimSpace(result.String())
}

// CopySelectedText copies the selected text to the clipboard and starts flash animation
func (v *Viewer) CopySelectedText() tea.Cmd {
	if !v.HasTextSelection() {
		return nil
	}

	selectedText := v.GetSelectedText()
	if selectedText == "" {
		return nil
	}

	// Start the selection flash animation
	v.selection.FlashFrame = 0

	return tea.Batch(
		// OSC 52 escape sequence (works in modern terminals)
		tea.SetClipboard(selectedText),
		// Native clipboard fallback - returns error message if it fails
		func() tea.Msg {
			if err := clipboard.WriteText(selectedText); err != nil {
				logger.Warn("Failed to write to clipboard: %v", err)
				return ClipboardErrorMsg{Error: err}
			}
			return nil
		},
		// Start flash animation timer
		SelectionFlashTick(),
	)
}

// selectionView applies selection highlighting to the rendered view using ultraviolet
func (v *Viewer) selectionView(view string) string {
	if !v.HasTextSelection() {
		return view
	}

	width := v.viewport.Width()
	height := v.viewport.Height()
	if width <= 0 || height <= 0 {
		return view
	}

	// Create screen buffer from the rendered view
	area := uv.Rect(0, 0, width, height)
	scr := uv.NewScreenBuffer(area.Dx(), area.Dy())
	uv.NewStyledString(view).Draw(scr, area)

	// Get normalized selection coordinates
	startCol, startLine, endCol, endLine := v.selectionArea()

	// Dragging onto the panel border can yield negative coordinates
	if startLine < 0 {
		startLine = 0
	}

	// Get selection style colors - use flash style during copy animation
	var selBg, selFg color.Color
	if v.selection.FlashFrame == 0 {
		// Flash frame - use bright green to indicate successful copy
		selBg = TextSelectionFlashStyle.GetBackground()
		selFg = TextSelectionFlashStyle.GetForeground()
	} else {
		// Normal selection
		selBg = TextSelectionStyle.GetBackground()
		selFg = TextSelectionStyle.GetForeground()
	}

	// Apply selection highlighting
	for y := startLine; y <= endLine && y < height; y++ {
		var xStart, xEnd int
		if y == startLine && y == endLine {
			// Single line selection
			xStart = startCol
			xEnd = endCol
		} else if y == startLine {
			// First line of multi-line selection
			xStart = startCol
			xEnd = width
		} else if y == endLine {
			// Last line of multi-line selection
			xStart = 0
			xEnd = endCol
		} else {
			// Middle lines
			xStart = 0
			xEnd = width
		}
		if xStart < 0 {
			xStart = 0
		}

		for x := xStart; x < xEnd && x < width; x++ {
			cell := scr.CellAt(x, y)
			if cell != nil {
				cell = cell.Clone()
				cell.Style.Bg = selBg
				cell.Style.Fg = selFg
				scr.SetCell(x, y, cell)
			}
		}
	}

	return scr.Render()
}
