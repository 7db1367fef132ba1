package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	ContextGlobal   Context = "global"   // Available everywhere except text input
	ContextSidebar  Context = "sidebar"  // Request list focused
	ContextResponse Context = "response" // Response pane focused
	ContextInput    Context = "input"    // Any text field being edited
)

// Contexts lists every known context in config order
var Contexts = []Context{ContextGlobal, ContextSidebar, ContextResponse, ContextInput}

const (
	// Global actions
	ActionQuit      Action = "quit"
	ActionQuitForce Action = "quit_force"
	ActionOpenHelp  Action = "open_help"

	// Navigation actions
	ActionNavigateUp   Action = "navigate_up"
	ActionNavigateDown Action = "navigate_down"
	ActionPageUp       Action = "page_up"
	ActionPageDown     Action = "page_down"
	ActionGoToTop      Action = "go_to_top"
	ActionGoToBottom   Action = "go_to_bottom"
	ActionSwitchFocus  Action = "switch_focus"

	// Request list actions
	ActionNewRequest  Action = "new_request"
	ActionSelect      Action = "select"
	ActionEditTitle   Action = "edit_title"
	ActionCycleMethod Action = "cycle_method"
	ActionEditURL     Action = "edit_url"
	ActionEditBody    Action = "edit_body"
	ActionTogglePane  Action = "toggle_request_pane"
	ActionSend        Action = "send"
	ActionOpenSearch  Action = "open_search"

	// Response actions
	ActionCopyToClipboard Action = "copy_to_clipboard"
	ActionFilterResponse  Action = "filter_response"
	ActionClearFilter     Action = "clear_filter"
	ActionToggleHeaders   Action = "toggle_headers"

	// Text input actions
	ActionTextSubmit Action = "text_submit"
	ActionTextCancel Action = "text_cancel"
	ActionTextBlur   Action = "text_blur"
)

// ActionInfo contains metadata about an action
type ActionInfo struct {
	Action      Action
	Description string
	Category    string
}

var actionInfos = map[Action]ActionInfo{
	ActionQuit:            {ActionQuit, "Quit", "Global"},
	ActionQuitForce:       {ActionQuitForce, "Force quit", "Global"},
	ActionOpenHelp:        {ActionOpenHelp, "Toggle help", "Global"},
	ActionNavigateUp:      {ActionNavigateUp, "Move up", "Navigation"},
	ActionNavigateDown:    {ActionNavigateDown, "Move down", "Navigation"},
	ActionPageUp:          {ActionPageUp, "Page up", "Navigation"},
	ActionPageDown:        {ActionPageDown, "Page down", "Navigation"},
	ActionGoToTop:         {ActionGoToTop, "Go to top", "Navigation"},
	ActionGoToBottom:      {ActionGoToBottom, "Go to bottom", "Navigation"},
	ActionSwitchFocus:     {ActionSwitchFocus, "Switch panel", "Navigation"},
	ActionNewRequest:      {ActionNewRequest, "New request", "Requests"},
	ActionSelect:          {ActionSelect, "Select request", "Requests"},
	ActionEditTitle:       {ActionEditTitle, "Edit title", "Requests"},
	ActionCycleMethod:     {ActionCycleMethod, "Cycle method", "Requests"},
	ActionEditURL:         {ActionEditURL, "Edit URL", "Requests"},
	ActionEditBody:        {ActionEditBody, "Edit body or headers", "Requests"},
	ActionTogglePane:      {ActionTogglePane, "Toggle body/headers pane", "Requests"},
	ActionSend:            {ActionSend, "Send request", "Requests"},
	ActionOpenSearch:      {ActionOpenSearch, "Search titles", "Requests"},
	ActionCopyToClipboard: {ActionCopyToClipboard, "Copy response body", "Response"},
	ActionFilterResponse:  {ActionFilterResponse, "Filter with JMESPath", "Response"},
	ActionClearFilter:     {ActionClearFilter, "Clear filter", "Response"},
	ActionToggleHeaders:   {ActionToggleHeaders, "Toggle response headers", "Response"},
	ActionTextSubmit:      {ActionTextSubmit, "Commit field", "Input"},
	ActionTextCancel:      {ActionTextCancel, "Leave field", "Input"},
	ActionTextBlur:        {ActionTextBlur, "Leave field", "Input"},
}

// GetActionInfo returns human-readable information about an action
func GetActionInfo(action Action) ActionInfo {
	if info, ok := actionInfos[action]; ok {
		return info
	}
	return ActionInfo{action, string(action), "Unknown"}
}

// IsKnownAction reports whether action is one the application handles
func IsKnownAction(action Action) bool {
	_, ok := actionInfos[action]
	return ok
}
