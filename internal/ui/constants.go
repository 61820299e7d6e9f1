// Package ui provides constants for layout calculations and configuration.
package ui

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// SidebarWidthRatio is the denominator for sidebar width (1/3 of total width)
	SidebarWidthRatio = 3

	// TitleHeight is the height of panel titles
	TitleHeight = 1

	// SeparatorHeight is the height of separators between sections
	SeparatorHeight = 1

	// DefaultWrapWidth is the default width for text wrapping when viewport width is unknown
	DefaultWrapWidth = 80

	// MinTerminalWidth is the smallest width layout calculations accept
	MinTerminalWidth = 40

	// MinTerminalHeight is the smallest height layout calculations accept
	MinTerminalHeight = 10
)

// Transcript limits
const (
	// MaxTranscriptLines is the maximum number of rendered lines kept in the viewer
	MaxTranscriptLines = 10000
)

// Sidebar constants
const (
	// SidebarSearchCharLimit is the character limit for the search input
	SidebarSearchCharLimit = 64
)

// Modal dimensions
const (
	// ModalWidth is the default width of modals
	ModalWidth = 60

	// ModalInputCharLimit is the character limit for modal text inputs
	ModalInputCharLimit = 256

	// ModalInputWidth is the width of modal text inputs
	ModalInputWidth = 50
)
