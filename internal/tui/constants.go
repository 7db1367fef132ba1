package tui

import "time"

// UI Layout Constants
// These constants define spacing, margins, and dimensions for the TUI layout

const (
	// Sidebar
	SidebarMinWidth    = 32 // Minimum sidebar width on wide terminals
	SidebarWidthRatio  = 35 // Sidebar share of the width, in percent
	SidebarNarrowWidth = 90 // Below this width the sidebar takes half
	SidebarListTop     = 4  // Screen row of the first entry: border + padding + title + blank
	SidebarChrome      = 8  // Rows used by border, padding, title and footer

	// Request pane
	RequestPaneHeight = 8 // Rows of the body/headers editor
	RequestPaneChrome = 4 // Method/URL line + pane tabs + editor border

	// Viewport Padding and Borders
	ViewportBorderWidth = 2 // Width consumed by borders
	StatusBarHeight     = 1

	// Split Pane Layout
	SplitPaneBorderWidth = 4 // Borders of the two side-by-side boxes

	// Help modal
	ModalWidthMargin  = 6
	ModalHeightMargin = 3
)

const (
	// DoubleClickInterval is the longest gap between two clicks on the
	// same entry that still counts as a double click
	DoubleClickInterval = 400 * time.Millisecond

	// MessageTimeout clears status and error messages
	MessageTimeout = 5 * time.Second

	// MaxStatusLength truncates footer messages
	MaxStatusLength = 100
)

const (
	panelSidebar  = "sidebar"
	panelResponse = "response"

	paneBody    = "body"
	paneHeaders = "headers"
)
