// Package ui provides the user interface components for the Recall TUI.
//
// # Overview
//
// The ui package implements the visual components of Recall using the Bubble Tea
// framework and Lipgloss styling library. It follows the Model-Update-View pattern
// established by Bubble Tea.
//
// # Layout System
//
// The layout is organized as follows:
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├─────────────────┬───────────────────────────────────┤
//	│                 │                                   │
//	│   Sidebar       │         Viewer Panel              │
//	│   (1/3 width)   │         (2/3 width)               │
//	│                 │                                   │
//	├─────────────────┴───────────────────────────────────┤
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// # Components
//
// ViewContext: Singleton that manages centralized layout calculations.
// All size calculations should go through ViewContext to ensure consistency.
//
// Header: Displays the application title and optionally the open conversation's
// title. Uses a gradient background with the primary color.
//
// Footer: Shows context-aware keyboard shortcuts. The displayed shortcuts
// change based on focus state, search mode, and selection mode. Transient
// flash notices (errors, warnings, confirmations) temporarily replace the
// shortcuts.
//
// Sidebar: Lists all conversations grouped by date (Today, Yesterday,
// Previous 7 Days, Previous 30 Days, Older). Supports keyboard navigation
// (j/k or arrow keys), incremental search, and a selection mode for bulk
// operations.
//
// Viewer: The main transcript panel showing the messages of the open
// conversation. Read-only, with viewport-style scrolling and mouse text
// selection for copying.
//
// Modal: Popup dialogs for various operations (delete confirmation, bulk
// delete confirmation, rename, duplicate, export, settings, theme picker).
// The concrete modal contents live in the modals subpackage.
//
// # Focus System
//
// The application has two focus states:
//   - FocusSidebar: Conversation list is focused, keyboard controls navigation
//   - FocusViewer: Viewer panel is focused, keyboard input scrolls the transcript
//
// Tab key toggles between focus states. The 'q' key only quits when
// the sidebar is focused.
//
// # Constants
//
// Layout constants are defined in constants.go:
//   - HeaderHeight, FooterHeight: Fixed at 1 line each
//   - BorderSize: 2 (1 on each side)
//   - SidebarWidthRatio: 3 (sidebar gets 1/3 of width)
//   - MaxTranscriptLines: Cap on rendered transcript lines
//
// # Styles
//
// All styles are defined in styles.go using Lipgloss and regenerated from the
// active theme (see theme.go). The default palette uses:
//   - ColorPrimary (#7C3AED): Purple, used for highlights and focused elements
//   - ColorSecondary (#06B6D4): Cyan, used for accents and assistant messages
//   - ColorBg (#1F2937): Dark background
//   - ColorText (#F9FAFB): Light text
//   - ColorTextMuted: Muted text for secondary content
package ui
